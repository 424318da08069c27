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

import "github.com/golang/geo/r3"

// Containment mode occupies the low 3 bits of the flag word.
const (
	CONTAINMENT_CENTER           uint32 = 0
	CONTAINMENT_FULL             uint32 = 1
	CONTAINMENT_OVERLAPPING      uint32 = 2
	CONTAINMENT_OVERLAPPING_BBOX uint32 = 3
	CONTAINMENT_INVALID          uint32 = 4

	containmentMask uint32 = 0x7

	// FLAG_GEODESIC selects great-circle edge semantics over planar lat/lng.
	FLAG_GEODESIC uint32 = 1 << 3

	// POLYGON_TO_CELLS_BUFFER is slack added to the hex estimate for
	// line-trace imprecision near icosahedron edges.
	POLYGON_TO_CELLS_BUFFER = 12
)

func parseFlags(flags uint32) (mode uint32, geodesic bool, err H3Error) {
	mode = flags & containmentMask
	geodesic = flags&FLAG_GEODESIC != 0
	rest := flags &^ (containmentMask | FLAG_GEODESIC)

	if mode >= CONTAINMENT_INVALID || rest != 0 {
		return 0, false, E_OPTION_INVALID
	}
	if geodesic && (mode == CONTAINMENT_CENTER || mode == CONTAINMENT_OVERLAPPING_BBOX) {
		return 0, false, E_OPTION_INVALID
	}
	return mode, geodesic, E_SUCCESS
}

// PolygonIter is a cursor over the cells that cover a polygon at a target
// resolution, walking the 122-base-cell forest depth-first with a single
// cursor cell and no heap-allocated traversal stack. Step itself does not
// recurse; nextSiblingOrAncestor climbs to an ancestor by recursion, at
// most one call per resolution level.
type PolygonIter struct {
	Cell H3Index
	Err  H3Error

	polygon    *GeoPolygon
	res        int
	mode       uint32
	geodesic   *GeodesicPolygon
	outerBBox  BBox
	holeBBoxes []BBox

	started     bool
	pos         H3Index
	descendNext bool
}

// NewPolygonIter validates res and flags, precomputes loop bboxes, and
// (for GEODESIC) builds the geodesic acceleration structure. The returned
// iterator's Cell is not yet populated; call Step to advance to the first
// candidate.
func NewPolygonIter(polygon *GeoPolygon, res int, flags uint32) (*PolygonIter, H3Error) {
	mode, geodesic, err := parseFlags(flags)
	if err != E_SUCCESS {
		return nil, err
	}
	if res < 0 || res > MAX_H3_RES {
		return nil, E_RES_DOMAIN
	}
	for i := range polygon.holes {
		if polygon.holes[i].numVerts == 0 {
			return nil, E_DOMAIN
		}
	}
	if !geodesic && polygonHasNonFiniteVertex(polygon) {
		return nil, E_FAILED
	}

	it := &PolygonIter{
		polygon: polygon,
		res:     res,
		mode:    mode,
	}

	if polygon.geoloop.numVerts > 0 {
		it.outerBBox = bboxFromGeoLoop(&polygon.geoloop)
	}
	it.holeBBoxes = make([]BBox, len(polygon.holes))
	for i := range polygon.holes {
		it.holeBBoxes[i] = bboxFromGeoLoop(&polygon.holes[i])
	}

	if geodesic {
		gp, err := NewGeodesicPolygon(polygon)
		if err != E_SUCCESS {
			return nil, err
		}
		it.geodesic = gp
	}

	return it, E_SUCCESS
}

// Step advances the iterator to the next cell satisfying the containment
// mode, or to H3_NULL when exhausted. There is no built-in cancellation;
// callers stop early simply by no longer calling Step, which is always safe.
func (it *PolygonIter) Step() {
	if it.Err != E_SUCCESS {
		it.Cell = H3_NULL
		return
	}

	if polygonIsEmpty(it.polygon) {
		it.Cell = H3_NULL
		return
	}

	for {
		var candidate H3Index
		switch {
		case !it.started:
			it.started = true
			candidate = _setH3Index(0, 0, CENTER_DIGIT)
		case it.descendNext:
			candidate = firstChildCell(it.pos)
		default:
			candidate = nextSiblingOrAncestor(it.pos)
		}

		if candidate == H3_NULL {
			it.Cell = H3_NULL
			return
		}
		it.pos = candidate

		coverChildren := candidate.GetResolution() < it.res
		bbox := cellToBBox(candidate, coverChildren)
		if !bboxOverlaps(&bbox, &it.outerBBox) {
			it.descendNext = false
			continue
		}

		if it.geodesic != nil {
			cap := cellToSphereCap(candidate)
			if !it.geodesic.capIntersectsPolygon(cap) {
				it.descendNext = false
				continue
			}
		}

		if candidate.GetResolution() == it.res {
			it.descendNext = false
			if it.emits(candidate) {
				it.Cell = candidate
				return
			}
			continue
		}

		// Above target resolution: only FULL mode may compact-emit.
		if it.mode == CONTAINMENT_FULL && it.geodesic == nil {
			var gb GeoBoundary
			H3ToGeoBoundary(candidate, &gb)
			if cellBoundaryInsidePolygon(&gb, it.polygon, &it.outerBBox, it.holeBBoxes) {
				it.descendNext = false
				it.Cell = candidate
				return
			}
		}

		it.descendNext = true
	}
}

func polygonIsEmpty(p *GeoPolygon) bool {
	return p == nil || p.geoloop.numVerts == 0
}

// emits applies the containment-mode predicate to a cell at target
// resolution.
func (it *PolygonIter) emits(cell H3Index) bool {
	var center GeoCoord
	H3ToGeo(cell, &center)

	switch it.mode {
	case CONTAINMENT_CENTER:
		return pointInsidePolygon(it.polygon, &it.outerBBox, it.holeBBoxes, &center)

	case CONTAINMENT_FULL:
		var gb GeoBoundary
		H3ToGeoBoundary(cell, &gb)
		if it.geodesic != nil {
			return it.geodesic.boundaryInsideGeodesicPolygon(boundaryToVectors(&gb))
		}
		return cellBoundaryInsidePolygon(&gb, it.polygon, &it.outerBBox, it.holeBBoxes)

	case CONTAINMENT_OVERLAPPING:
		if it.geodesic != nil {
			p := geoToUnitVector(&center)
			if it.geodesic.pointInGeodesicPolygon(p) {
				return true
			}
			var gb GeoBoundary
			H3ToGeoBoundary(cell, &gb)
			return it.geodesic.boundaryIntersectsPolygon(boundaryToVectors(&gb))
		}
		if pointInsidePolygon(it.polygon, &it.outerBBox, it.holeBBoxes, &center) {
			return true
		}
		var gb GeoBoundary
		H3ToGeoBoundary(cell, &gb)
		return boundaryCrossesPolygon(&gb, it.polygon)

	case CONTAINMENT_OVERLAPPING_BBOX:
		cellBBox := cellToBBox(cell, false)
		for i := range it.polygon.holes {
			if bboxWithin(&cellBBox, &it.holeBBoxes[i]) &&
				pointInsideLoop(&it.polygon.holes[i], &it.holeBBoxes[i], &center) {
				return false
			}
		}
		return bboxOverlaps(&cellBBox, &it.outerBBox)
	}
	return false
}

func boundaryToVectors(gb *GeoBoundary) []r3.Vector {
	out := make([]r3.Vector, gb.numVerts)
	for i := 0; i < gb.numVerts; i++ {
		out[i] = geoToUnitVector(&gb.verts[i])
	}
	return out
}

// bboxWithin reports whether a is fully contained within b (non-transmeridian
// fast path used only for the small hole bboxes).
func bboxWithin(a, b *BBox) bool {
	return a.north <= b.north && a.south >= b.south && a.east <= b.east && a.west >= b.west
}

// ExpandingIter wraps a PolygonIter so every Step yields a cell at exactly
// the target resolution, materializing the children of any compact cell the
// inner iterator produced.
type ExpandingIter struct {
	Cell H3Index
	Err  H3Error

	inner    *PolygonIter
	pending  []H3Index
	pendingI int
}

// NewExpandingIter wraps it as an expanding iterator.
func NewExpandingIter(it *PolygonIter) *ExpandingIter {
	return &ExpandingIter{inner: it}
}

// Step advances to the next cell at target resolution.
func (e *ExpandingIter) Step() {
	for e.pendingI >= len(e.pending) {
		e.inner.Step()
		if e.inner.Err != E_SUCCESS {
			e.Err = e.inner.Err
			e.Cell = H3_NULL
			return
		}
		if e.inner.Cell == H3_NULL {
			e.Cell = H3_NULL
			return
		}
		// Uncompact handles both the already-at-target-resolution case and
		// the coarser compact-cell case uniformly.
		pending, err := Uncompact([]H3Index{e.inner.Cell}, e.inner.res)
		if err != nil {
			e.Err = E_FAILED
			e.Cell = H3_NULL
			return
		}
		e.pending = pending
		e.pendingI = 0
	}
	e.Cell = e.pending[e.pendingI]
	e.pendingI++
}

// MaxPolygonToCellsSize returns an upper bound on the number of cells
// PolygonToCells could produce, so callers may pre-allocate an output slice.
func MaxPolygonToCellsSize(polygon *GeoPolygon, res int, flags uint32) (int, H3Error) {
	_, geodesic, err := parseFlags(flags)
	if err != E_SUCCESS {
		return 0, err
	}
	if res < 0 || res > MAX_H3_RES {
		return 0, E_RES_DOMAIN
	}
	if polygonIsEmpty(polygon) {
		return 0, E_SUCCESS
	}
	if !geodesic && polygonHasNonFiniteVertex(polygon) {
		return 0, E_FAILED
	}

	if geodesic {
		probeFlags := (flags &^ containmentMask &^ FLAG_GEODESIC) | CONTAINMENT_OVERLAPPING_BBOX
		it, err := NewPolygonIter(polygon, res, probeFlags)
		if err != E_SUCCESS {
			return 0, err
		}
		total := 0
		for {
			it.Step()
			if it.Err != E_SUCCESS {
				return 0, it.Err
			}
			if it.Cell == H3_NULL {
				break
			}
			if it.Cell.GetResolution() == res {
				total++
			} else {
				total += MaxH3ToChildrenSize(it.Cell, res)
			}
		}
		return total, E_SUCCESS
	}

	bbox := bboxFromGeoLoop(&polygon.geoloop)
	estimate, err := bboxHexEstimateChecked(&bbox, res)
	if err != E_SUCCESS {
		return 0, err
	}
	estimate += POLYGON_TO_CELLS_BUFFER

	vertCount := polygon.geoloop.numVerts
	for i := range polygon.holes {
		vertCount += polygon.holes[i].numVerts
	}
	if vertCount > estimate {
		estimate = vertCount
	}

	return estimate, E_SUCCESS
}

// PolygonToCells fills out with the cells covering polygon at res under
// flags, returning the number of cells written. Returns E_MEMORY_BOUNDS if
// out is too small for a non-empty result.
func PolygonToCells(polygon *GeoPolygon, res int, flags uint32, out []H3Index) (int, H3Error) {
	if _, _, err := parseFlags(flags); err != E_SUCCESS {
		return 0, err
	}
	if polygonIsEmpty(polygon) {
		return 0, E_SUCCESS
	}

	it, err := NewPolygonIter(polygon, res, flags)
	if err != E_SUCCESS {
		return 0, err
	}
	expanding := NewExpandingIter(it)

	count := 0
	for {
		expanding.Step()
		if expanding.Err != E_SUCCESS {
			return count, expanding.Err
		}
		if expanding.Cell == H3_NULL {
			return count, E_SUCCESS
		}
		if count >= len(out) {
			return count, E_MEMORY_BOUNDS
		}
		out[count] = expanding.Cell
		count++
	}
}
