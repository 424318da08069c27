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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPrecomputedCosRadiusRecomputes is the §9-mandated recomputation test:
// PRECOMPUTED_COS_RADIUS must equal cos(maxEdgeLengthRads[res]*CAP_SCALE_FACTOR)
// to within 1e-15.
func TestPrecomputedCosRadiusRecomputes(t *testing.T) {
	for res := 0; res <= MAX_H3_RES; res++ {
		want := math.Cos(maxEdgeLengthRads[res] * CAP_SCALE_FACTOR)
		assert.InDelta(t, want, PRECOMPUTED_COS_RADIUS[res], 1e-15)
	}
}

// pentagonCellAtRes builds a pentagon cell at res by descending straight
// through digit 0 from a known pentagon base cell (base cell 4), mirroring
// how GetPentagonIndexes seeds a pentagon H3Index.
func pentagonCellAtRes(t *testing.T, res int) H3Index {
	t.Helper()
	const pentagonBaseCell = 4
	cell := _setH3Index(res, pentagonBaseCell, CENTER_DIGIT)
	require.True(t, cell.IsPentagon(), "base cell %d is expected to be a pentagon", pentagonBaseCell)
	return cell
}

// assertCellCapContainsBoundary is the shared body of P1: every boundary
// vertex of cell lies within its own spherical cap.
func assertCellCapContainsBoundary(t *testing.T, cell H3Index) {
	t.Helper()
	cap := cellToSphereCap(cell)

	var gb GeoBoundary
	H3ToGeoBoundary(cell, &gb)
	for i := 0; i < gb.numVerts; i++ {
		v := geoToUnitVector(&gb.verts[i])
		assert.True(t, cap.contains(v), "vertex %d outside its cell's cap", i)
	}
}

// TestCellToSphereCapContainsBoundary checks P1: every boundary vertex of a
// cell lies within its own spherical cap, for both an ordinary hexagon cell
// and a pentagon cell (whose cap needs the CAP_SCALE_FACTOR margin to absorb
// pentagon distortion).
func TestCellToSphereCapContainsBoundary(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	assertCellCapContainsBoundary(t, GeoToH3(&origin, 9))

	for res := 0; res <= 5; res++ {
		assertCellCapContainsBoundary(t, pentagonCellAtRes(t, res))
	}
}

// assertCellBBoxContainsBoundary is the shared body of P2: every boundary
// vertex of cell lies within its own (non-inflated) bbox.
func assertCellBBoxContainsBoundary(t *testing.T, cell H3Index) {
	t.Helper()
	bbox := cellToBBox(cell, false)

	var gb GeoBoundary
	H3ToGeoBoundary(cell, &gb)
	for i := 0; i < gb.numVerts; i++ {
		assert.True(t, bboxContains(&bbox, &gb.verts[i]), "vertex %d outside cellToBBox", i)
	}
}

// TestCellToBBoxContainsBoundary checks P2 for both an ordinary hexagon cell
// and a pentagon cell.
func TestCellToBBoxContainsBoundary(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	assertCellBBoxContainsBoundary(t, GeoToH3(&origin, 7))

	for res := 0; res <= 5; res++ {
		assertCellBBoxContainsBoundary(t, pentagonCellAtRes(t, res))
	}
}

// assertCoverChildrenContainsDescendants is the shared body of P3: a
// parent's children-covering bbox contains every descendant boundary vertex
// a few levels down.
func assertCoverChildrenContainsDescendants(t *testing.T, parent H3Index, childRes int) {
	t.Helper()
	bbox := cellToBBox(parent, true)

	for _, child := range parent.ToChildren(childRes) {
		var gb GeoBoundary
		H3ToGeoBoundary(child, &gb)
		for i := 0; i < gb.numVerts; i++ {
			assert.True(t, bboxContains(&bbox, &gb.verts[i]),
				"descendant vertex outside coverChildren bbox")
		}
	}
}

// TestCellToBBoxCoverChildrenContainsDescendants checks P3 for both an
// ordinary hexagon parent and a pentagon parent, whose children-covering
// bbox relies on CHILD_COVER_SCALE_FACTOR to absorb pentagon distortion.
func TestCellToBBoxCoverChildrenContainsDescendants(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	assertCoverChildrenContainsDescendants(t, GeoToH3(&origin, 5), 8)

	assertCoverChildrenContainsDescendants(t, pentagonCellAtRes(t, 1), 6)
}
