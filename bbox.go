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

// BBox is geographic bounding box with coordinates defined in radians
type BBox struct {
	north float64 // north latitude
	south float64 // south latitude
	east  float64 // east longitude
	west  float64 // west longitude
}

/**
 * Whether the given bounding box crosses the antimeridian
 * @param  bbox Bounding box to inspect
 * @return      is transmeridian
 */
func bboxIsTransmeridian(bbox *BBox) bool {
	return bbox.east < bbox.west
}

/**
 * Get the center of a bounding box
 * @param bbox   Input bounding box
 * @param center Output center coordinate
 */
func bboxCenter(bbox *BBox, center *GeoCoord) {
	center.lat = (bbox.north + bbox.south) / 2.0
	// If the bbox crosses the antimeridian, shift east 360 degrees
	east := bbox.east
	if bboxIsTransmeridian(bbox) {
		east = bbox.east + M_2PI
	}
	center.lon = constrainLng((east + bbox.west) / 2.0)
}

/**
 * Whether the bounding box contains a given point
 * @param  bbox  Bounding box
 * @param  point Point to test
 * @return       Whether the point is contained
 */
func bboxContains(bbox *BBox, point *GeoCoord) bool {
	if bboxIsTransmeridian(bbox) {
		return point.lat >= bbox.south && point.lat <= bbox.north &&
			(point.lon >= bbox.west || point.lon <= bbox.east)
	}
	return point.lat >= bbox.south && point.lat <= bbox.north &&
		(point.lon >= bbox.west && point.lon <= bbox.east)
}

/**
 * Whether two bounding boxes are strictly equal
 * @param  b1 Bounding box 1
 * @param  b2 Bounding box 2
 * @return    Whether the boxes are equal
 */
func bboxEquals(b1, b2 *BBox) bool {
	return b1.north == b2.north && b1.south == b2.south &&
		b1.east == b2.east && b1.west == b2.west
}

/**
 * bboxOverlaps returns whether two bounding boxes overlap
 * @param  a  Bounding box 1
 * @param  b  Bounding box 2
 * @return    Whether the boxes overlap
 */
func bboxOverlaps(a, b *BBox) bool {
	if a.north < b.south || a.south > b.north {
		return false
	}

	aEast, aWest := a.east, a.west
	bEast, bWest := b.east, b.west
	aTrans := bboxIsTransmeridian(a)
	bTrans := bboxIsTransmeridian(b)

	switch {
	case aTrans && bTrans:
		// both normalize east
		aEast += M_2PI
		bEast += M_2PI
	case !aTrans && !bTrans:
		// nothing to normalize
	case aTrans && !bTrans:
		if (aWest - bEast) < (bWest - aEast) {
			aEast += M_2PI
		} else {
			aWest -= M_2PI
		}
	default: // bTrans && !aTrans
		if (bWest - aEast) < (aWest - bEast) {
			bEast += M_2PI
		} else {
			bWest -= M_2PI
		}
	}

	return aWest <= bEast && bWest <= aEast
}

/**
 * bboxWidth returns the width of a bounding box in radians, accounting for
 * transmeridian wrap.
 */
func bboxWidth(bbox *BBox) float64 {
	if bboxIsTransmeridian(bbox) {
		return bbox.east - bbox.west + M_2PI
	}
	return bbox.east - bbox.west
}

/**
 * bboxHeight returns the height of a bounding box in radians.
 */
func bboxHeight(bbox *BBox) float64 {
	return bbox.north - bbox.south
}

/**
 * bboxScale scales a bounding box's width and height symmetrically about its
 * center by the given factor. North/south are clamped to the poles; east/west
 * wrap modulo 2*pi.
 */
func bboxScale(bbox *BBox, factor float64) BBox {
	var center GeoCoord
	bboxCenter(bbox, &center)

	halfHeight := bboxHeight(bbox) * factor / 2.0
	halfWidth := bboxWidth(bbox) * factor / 2.0

	out := BBox{
		north: math.Min(center.lat+halfHeight, M_PI_2),
		south: math.Max(center.lat-halfHeight, -M_PI_2),
		east:  _posAngleRads(center.lon + halfWidth + M_PI) - M_PI,
		west:  _posAngleRads(center.lon - halfWidth + M_PI) - M_PI,
	}
	return out
}

// geoLoopHasNonFiniteVertex reports whether any vertex of loop has a NaN or
// infinite lat/lng. IEEE754 comparisons against such a vertex are always
// false, so bboxFromGeoLoop would otherwise silently treat it as absent
// rather than surfacing the invalid input.
func geoLoopHasNonFiniteVertex(loop *GeoLoop) bool {
	for i := 0; i < loop.numVerts; i++ {
		v := loop.verts[i]
		if math.IsNaN(v.lat) || math.IsInf(v.lat, 0) || math.IsNaN(v.lon) || math.IsInf(v.lon, 0) {
			return true
		}
	}
	return false
}

/**
 * bboxFromGeoLoop computes the axis-aligned bounding box of a geo loop,
 * detecting antimeridian crossings in a single pass.
 */
func bboxFromGeoLoop(loop *GeoLoop) BBox {
	var bbox BBox
	if loop.numVerts == 0 {
		return bbox
	}

	north := -M_PI_2
	south := M_PI_2
	east := -M_PI
	west := M_PI
	minPositiveLng := M_2PI
	maxNegativeLng := -M_2PI
	isTransmeridian := false

	n := loop.numVerts
	for i := 0; i < n; i++ {
		coord := loop.verts[i]
		next := loop.verts[(i+1)%n]

		if coord.lat < south {
			south = coord.lat
		}
		if coord.lat > north {
			north = coord.lat
		}
		if coord.lon >= 0 && coord.lon < minPositiveLng {
			minPositiveLng = coord.lon
		}
		if coord.lon < 0 && coord.lon > maxNegativeLng {
			maxNegativeLng = coord.lon
		}
		if coord.lon < west {
			west = coord.lon
		}
		if coord.lon > east {
			east = coord.lon
		}

		if math.Abs(coord.lon-next.lon) > M_PI {
			isTransmeridian = true
		}
	}

	bbox.north = north
	bbox.south = south
	if isTransmeridian {
		bbox.east = maxNegativeLng
		bbox.west = minPositiveLng
	} else {
		bbox.east = east
		bbox.west = west
	}
	return bbox
}

/**
 * _hexRadiusKm returns the radius of a given hexagon in Km
 *
 * @param h3Index the index of the hexagon
 * @return the radius of the hexagon in Km
 */
func _hexRadiusKm(h3Index H3Index) float64 {
	// There is probably a cheaper way to determine the radius of a
	// hexagon, but this way is conceptually simple
	var h3Center GeoCoord
	var h3Boundary GeoBoundary
	H3ToGeo(h3Index, &h3Center)
	H3ToGeoBoundary(h3Index, &h3Boundary)
	return PointDistKm(&h3Center, &h3Boundary.verts[0])
}

/**
 * bboxHexEstimate returns an estimated number of hexagons that fit
 *                 within the cartesian-projected bounding box
 *
 * @param bbox the bounding box to estimate the hexagon fill level
 * @param res the resolution of the H3 hexagons to fill the bounding box
 * @return the estimated number of hexagons to fill the bounding box
 */
func bboxHexEstimate(bbox *BBox, res int) int {
	// Get the area of the pentagon as the maximally-distorted area possible
	pentagons := make([]H3Index, 12)
	GetPentagonIndexes(res, &pentagons)
	pentagonRadiusKm := _hexRadiusKm(pentagons[0])
	// Area of a regular hexagon is 3/2*sqrt(3) * r * r
	// The pentagon has the most distortion (smallest edges) and shares its
	// edges with hexagons, so the most-distorted hexagons have this area,
	// shrunk by 20% off chance that the bounding box perfectly bounds a
	// pentagon.
	pentagonAreaKm2 := 0.8 * (2.59807621135 * pentagonRadiusKm * pentagonRadiusKm)

	// Then get the area of the bounding box of the geofence in question
	var p1, p2 GeoCoord
	p1.lat = bbox.north
	p1.lon = bbox.east
	p2.lat = bbox.south
	p2.lon = bbox.west
	d := PointDistKm(&p1, &p2)
	// Derived constant based on: https://math.stackexchange.com/a/1921940
	// Clamped to 3 as higher values tend to rapidly drag the estimate to zero.
	a := d * d / math.Min(3.0, math.Abs((p1.lon-p2.lon)/(p1.lat-p2.lat)))

	// Divide the two to get an estimate of the number of hexagons needed
	estimate := int(math.Ceil(a / pentagonAreaKm2))
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}

/**
 * lineHexEstimate returns an estimated number of hexagons that trace
 *                 the cartesian-projected line
 *
 *  @param origin the origin coordinates
 *  @param destination the destination coordinates
 *  @param res the resolution of the H3 hexagons to trace the line
 *  @return the estimated number of hexagons required to trace the line
 */
func lineHexEstimate(origin *GeoCoord, destination *GeoCoord, res int) int {
	// Get the area of the pentagon as the maximally-distorted area possible
	pentagons := make([]H3Index, 12)
	GetPentagonIndexes(res, &pentagons)
	pentagonRadiusKm := _hexRadiusKm(pentagons[0])

	dist := PointDistKm(origin, destination)
	estimate := int(math.Ceil(dist / (2 * pentagonRadiusKm)))
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}

// bboxHexEstimateChecked wraps bboxHexEstimate with the resolution and
// numeric-degeneracy checks the polygon-to-cells estimator needs.
func bboxHexEstimateChecked(bbox *BBox, res int) (int, H3Error) {
	if res < 0 || res > MAX_H3_RES {
		return 0, E_RES_DOMAIN
	}
	if bboxWidth(bbox) == 0 || bboxHeight(bbox) == 0 {
		return 0, E_FAILED
	}
	estimate := bboxHexEstimate(bbox, res)
	if estimate <= 0 {
		return 0, E_FAILED
	}
	return estimate, E_SUCCESS
}

// lineHexEstimateChecked wraps lineHexEstimate with the resolution check the
// polygon-to-cells estimator needs.
func lineHexEstimateChecked(origin, destination *GeoCoord, res int) (int, H3Error) {
	if res < 0 || res > MAX_H3_RES {
		return 0, E_RES_DOMAIN
	}
	estimate := lineHexEstimate(origin, destination, res)
	if estimate <= 0 {
		return 0, E_FAILED
	}
	return estimate, E_SUCCESS
}
