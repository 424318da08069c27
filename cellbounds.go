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

import (
	"math"

	"github.com/golang/geo/r3"
)

// CHILD_COVER_SCALE_FACTOR inflates a cell's bbox so it is guaranteed to
// contain the boundary of every descendant down to the finest resolution.
const CHILD_COVER_SCALE_FACTOR = 1.4

// CAP_SCALE_FACTOR inflates a cell's angular radius so its spherical cap
// strictly encloses every vertex and edge midpoint of the cell and its
// descendants at the same resolution.
const CAP_SCALE_FACTOR = 1.1

// maxEdgeLengthRads holds, per resolution, an upper bound on cell edge
// length in radians, derived from the grid's own edge-length table.
var maxEdgeLengthRads [MAX_H3_RES + 1]float64

// PRECOMPUTED_COS_RADIUS holds, per resolution, the cosine of the scaled
// angular radius used by cellToSphereCap. It must equal
// cos(maxEdgeLengthRads[res] * CAP_SCALE_FACTOR) to within 1e-15 -- verified
// by a recomputation test.
var PRECOMPUTED_COS_RADIUS [MAX_H3_RES + 1]float64

func init() {
	for res := 0; res <= MAX_H3_RES; res++ {
		maxEdgeLengthRads[res] = EdgeLengthKm(res) / EARTH_RADIUS_KM
		PRECOMPUTED_COS_RADIUS[res] = math.Cos(maxEdgeLengthRads[res] * CAP_SCALE_FACTOR)
	}
}

// cellToBBox computes the lat/lng bounding box of a cell's boundary. When
// coverChildren is true the box is scaled by CHILD_COVER_SCALE_FACTOR so it
// is guaranteed to contain every descendant down to the finest resolution.
func cellToBBox(cell H3Index, coverChildren bool) BBox {
	var gb GeoBoundary
	H3ToGeoBoundary(cell, &gb)

	loop := GeoLoop{verts: gb.verts[:gb.numVerts], numVerts: gb.numVerts}
	bbox := bboxFromGeoLoop(&loop)
	if coverChildren {
		bbox = bboxScale(&bbox, CHILD_COVER_SCALE_FACTOR)
	}
	return bbox
}

// cellToSphereCap derives a spherical cap (unit center + cosine radius) that
// tightly covers the given cell's boundary.
func cellToSphereCap(cell H3Index) SphereCap {
	var center GeoCoord
	H3ToGeo(cell, &center)

	res := cell.GetResolution()
	return SphereCap{
		center:    geoToUnitVector(&center),
		cosRadius: PRECOMPUTED_COS_RADIUS[res],
	}
}

// SphereCap is the set of unit vectors within a fixed angular radius of a
// center vector, represented for fast dot-product membership tests.
type SphereCap struct {
	center    r3.Vector
	cosRadius float64
}

// contains reports whether p lies within the cap.
func (c *SphereCap) contains(p r3.Vector) bool {
	return c.center.Dot(p) >= c.cosRadius
}
