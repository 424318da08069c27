// Copyright 2022  Il Sub Bang
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package h3go

import "math"

// GeoLoop is an array-backed ring of lat/lng vertices. The closing edge from
// the last vertex back to the first is implicit.
type GeoLoop struct {
	verts    []GeoCoord
	numVerts int
}

// GeoPolygon is an outer GeoLoop plus zero or more hole loops.
type GeoPolygon struct {
	geoloop GeoLoop
	holes   []GeoLoop
}

// loopView is the capability a loop algorithm needs: enumerate (vertex,
// nextVertex) pairs and report emptiness. GeoLoop is the only instantiation
// built here; a linked-list-backed loop would implement the same interface.
type loopView interface {
	isEmpty() bool
	vertsLen() int
	vertAt(i int) GeoCoord
}

func (l *GeoLoop) isEmpty() bool         { return l.numVerts == 0 }
func (l *GeoLoop) vertsLen() int         { return l.numVerts }
func (l *GeoLoop) vertAt(i int) GeoCoord { return l.verts[i] }

// NewGeoLoop builds a GeoLoop from an ordered slice of lat/lng vertices
// (radians). The slice is borrowed, not copied; callers must not mutate it
// while a PolygonIter built from it is in use.
func NewGeoLoop(verts []GeoCoord) GeoLoop {
	return GeoLoop{verts: verts, numVerts: len(verts)}
}

// NewGeoPolygon builds a GeoPolygon from an outer loop and zero or more hole
// loops.
func NewGeoPolygon(outer GeoLoop, holes []GeoLoop) GeoPolygon {
	return GeoPolygon{geoloop: outer, holes: holes}
}

// pointInsideLoop performs ray-casting point-in-polygon with a deterministic
// epsilon tie-break: rays through a vertex are nudged north, and longitudes
// exactly matching an endpoint (post transmeridian-normalization) are nudged
// west, so two polygons sharing only a boundary edge never both claim a point
// on it. Poles are never contained.
func pointInsideLoop(loop loopView, bbox *BBox, point *GeoCoord) bool {
	if loop.isEmpty() {
		return false
	}
	if !bboxContains(bbox, point) {
		return false
	}
	if math.Abs(point.lat) >= M_PI_2 {
		return false
	}

	isTransmeridian := bboxIsTransmeridian(bbox)
	contains := false

	n := loop.vertsLen()
	lat := point.lat
	lng := point.lon

	for i := 0; i < n; i++ {
		a := loop.vertAt(i)
		b := loop.vertAt((i + 1) % n)

		if a.lat > b.lat {
			a, b = b, a
		}

		aLng, bLng := a.lon, b.lon
		if isTransmeridian {
			if aLng < 0 {
				aLng += M_2PI
			}
			if bLng < 0 {
				bLng += M_2PI
			}
		}
		testLng := lng
		if isTransmeridian && testLng < 0 {
			testLng += M_2PI
		}

		testLat := lat
		if testLat == a.lat || testLat == b.lat {
			testLat += EPSILON_RAD
		}
		if testLng == aLng || testLng == bLng {
			testLng -= EPSILON_RAD
		}

		if testLat < a.lat || testLat > b.lat {
			continue
		}

		// Longitude at which the edge crosses testLat, via linear
		// interpolation of (lat, lng).
		crossLng := aLng + (bLng-aLng)*(testLat-a.lat)/(b.lat-a.lat)
		if crossLng > testLng {
			contains = !contains
		}
	}

	return contains
}

// loopIsClockwise reports whether a loop is wound clockwise, using the
// signed-area-by-edges test. Clockwise loops are interpreted as holes.
func loopIsClockwise(loop loopView, isTransmeridian bool) bool {
	var sum float64
	n := loop.vertsLen()
	for i := 0; i < n; i++ {
		a := loop.vertAt(i)
		b := loop.vertAt((i + 1) % n)

		aLng, bLng := a.lon, b.lon
		if isTransmeridian {
			if aLng < 0 {
				aLng += M_2PI
			}
			if bLng < 0 {
				bLng += M_2PI
			}
		}
		sum += (bLng - aLng) * (a.lat + b.lat)
	}
	return sum > 0
}

// segmentsCross is a purely planar test of whether lat/lng segments (a1,a2)
// and (b1,b2) cross; used by the planar containment predicates.
func segmentsCross(a1, a2, b1, b2 *GeoCoord) bool {
	d1x := a2.lon - a1.lon
	d1y := a2.lat - a1.lat
	d2x := b2.lon - b1.lon
	d2y := b2.lat - b1.lat

	denom := d1x*d2y - d1y*d2x
	if denom == 0 {
		return false
	}

	dx := b1.lon - a1.lon
	dy := b1.lat - a1.lat

	t := (dx*d2y - dy*d2x) / denom
	u := (dx*d1y - dy*d1x) / denom

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// polygonHasNonFiniteVertex reports whether polygon's outer loop or any hole
// contains a NaN or infinite lat/lng vertex.
func polygonHasNonFiniteVertex(polygon *GeoPolygon) bool {
	if geoLoopHasNonFiniteVertex(&polygon.geoloop) {
		return true
	}
	for i := range polygon.holes {
		if geoLoopHasNonFiniteVertex(&polygon.holes[i]) {
			return true
		}
	}
	return false
}

// pointInsidePolygon reports whether point is inside polygon's outer loop
// and outside every hole, given the outer loop's precomputed bbox and one
// bbox per hole (indices aligned with polygon.holes).
func pointInsidePolygon(polygon *GeoPolygon, outerBBox *BBox, holeBBoxes []BBox, point *GeoCoord) bool {
	if !pointInsideLoop(&polygon.geoloop, outerBBox, point) {
		return false
	}
	for i := range polygon.holes {
		if pointInsideLoop(&polygon.holes[i], &holeBBoxes[i], point) {
			return false
		}
	}
	return true
}

// boundaryCrossesLoop reports whether any edge of loop crosses any edge of
// the cell boundary.
func boundaryCrossesLoop(boundary *GeoBoundary, loop *GeoLoop) bool {
	n := loop.numVerts
	for i := 0; i < n; i++ {
		pa := loop.verts[i]
		pb := loop.verts[(i+1)%n]
		for j := 0; j < boundary.numVerts; j++ {
			a := boundary.verts[j]
			b := boundary.verts[(j+1)%boundary.numVerts]
			if segmentsCross(&pa, &pb, &a, &b) {
				return true
			}
		}
	}
	return false
}

// boundaryCrossesPolygon reports whether any edge of the polygon (outer
// loop or any hole) crosses any edge of the cell boundary.
func boundaryCrossesPolygon(boundary *GeoBoundary, polygon *GeoPolygon) bool {
	if boundaryCrossesLoop(boundary, &polygon.geoloop) {
		return true
	}
	for i := range polygon.holes {
		if boundaryCrossesLoop(boundary, &polygon.holes[i]) {
			return true
		}
	}
	return false
}

// cellBoundaryInsidePolygon reports whether an entire cell boundary lies
// inside the polygon: its first vertex is inside the outer loop and no
// hole, no polygon edge (outer or hole) crosses any cell-boundary edge, and
// no hole is wholly enclosed by the cell boundary.
func cellBoundaryInsidePolygon(boundary *GeoBoundary, polygon *GeoPolygon, outerBBox *BBox, holeBBoxes []BBox) bool {
	if boundary.numVerts == 0 {
		return false
	}

	first := boundary.verts[0]
	if !pointInsidePolygon(polygon, outerBBox, holeBBoxes, &first) {
		return false
	}

	if boundaryCrossesPolygon(boundary, polygon) {
		return false
	}

	for i := range polygon.holes {
		hole := &polygon.holes[i]
		// If the cell boundary encloses the hole's first vertex using the
		// same ray-casting test against the boundary-as-loop, the hole is
		// swallowed whole by this cell and it cannot be FULL-contained.
		boundaryLoop := GeoLoop{verts: boundary.verts[:boundary.numVerts], numVerts: boundary.numVerts}
		bbox := bboxFromGeoLoop(&boundaryLoop)
		if hole.numVerts > 0 && pointInsideLoop(&boundaryLoop, &bbox, &hole.verts[0]) {
			return false
		}
	}

	return true
}
