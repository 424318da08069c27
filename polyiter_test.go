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

func sfOuterLoop() GeoLoop {
	return NewGeoLoop([]GeoCoord{
		{lat: 0.659966917655, lon: -2.1364398519396},
		{lat: 0.6595011102219, lon: -2.1359434279405},
		{lat: 0.6583348114025, lon: -2.1354884206045},
		{lat: 0.6581220034068, lon: -2.1382437718946},
		{lat: 0.6594479998527, lon: -2.1384597563896},
		{lat: 0.6599990002976, lon: -2.1376771158464},
	})
}

func sfHole() GeoLoop {
	return NewGeoLoop([]GeoCoord{
		{lat: 0.6595072188743, lon: -2.1371053983433},
		{lat: 0.6591482046471, lon: -2.1373141048153},
		{lat: 0.6592295020837, lon: -2.1365222838402},
	})
}

func countCells(t *testing.T, polygon *GeoPolygon, res int, flags uint32) int {
	t.Helper()
	maxSize, err := MaxPolygonToCellsSize(polygon, res, flags)
	require.Equal(t, E_SUCCESS, err)

	out := make([]H3Index, maxSize)
	n, err := PolygonToCells(polygon, res, flags, out)
	require.Equal(t, E_SUCCESS, err)
	return n
}

func TestPolygonToCellsSFHexagonCenter(t *testing.T) {
	polygon := NewGeoPolygon(sfOuterLoop(), nil)
	n := countCells(t, &polygon, 9, CONTAINMENT_CENTER)
	assert.Equal(t, 1253, n)
}

func TestPolygonToCellsSFHexagonModes(t *testing.T) {
	polygon := NewGeoPolygon(sfOuterLoop(), nil)

	assert.Equal(t, 1175, countCells(t, &polygon, 9, CONTAINMENT_FULL))
	assert.Equal(t, 1334, countCells(t, &polygon, 9, CONTAINMENT_OVERLAPPING))
	assert.Equal(t, 1416, countCells(t, &polygon, 9, CONTAINMENT_OVERLAPPING_BBOX))
}

func TestPolygonToCellsSFWithHole(t *testing.T) {
	polygon := NewGeoPolygon(sfOuterLoop(), []GeoLoop{sfHole()})

	assert.Equal(t, 1214, countCells(t, &polygon, 9, CONTAINMENT_CENTER))
	assert.Equal(t, 1118, countCells(t, &polygon, 9, CONTAINMENT_FULL))
	assert.Equal(t, 1311, countCells(t, &polygon, 9, CONTAINMENT_OVERLAPPING))
}

func TestPolygonToCellsTransmeridianRectangle(t *testing.T) {
	loop := NewGeoLoop([]GeoCoord{
		{lat: 0.01, lon: -M_PI + 0.01},
		{lat: 0.01, lon: M_PI - 0.01},
		{lat: -0.01, lon: M_PI - 0.01},
		{lat: -0.01, lon: -M_PI + 0.01},
	})
	polygon := NewGeoPolygon(loop, nil)
	n := countCells(t, &polygon, 7, CONTAINMENT_CENTER)
	assert.Equal(t, 4238, n)
}

func TestPolygonToCellsPrimeMeridianRectangle(t *testing.T) {
	loop := NewGeoLoop([]GeoCoord{
		{lat: 0.01, lon: -0.01},
		{lat: 0.01, lon: 0.01},
		{lat: -0.01, lon: 0.01},
		{lat: -0.01, lon: -0.01},
	})
	polygon := NewGeoPolygon(loop, nil)
	n := countCells(t, &polygon, 7, CONTAINMENT_CENTER)
	assert.Equal(t, 4228, n)
}

func TestPolygonToCellsSingleVertexGeodesicOverlapping(t *testing.T) {
	loop := NewGeoLoop([]GeoCoord{
		{lat: -0.0002458237579169511, lon: 0.12401960784313724},
	})
	polygon := NewGeoPolygon(loop, nil)
	n := countCells(t, &polygon, 1, FLAG_GEODESIC|CONTAINMENT_OVERLAPPING)
	assert.Equal(t, 1, n)
}

func TestPolygonToCellsInvalidFlagsAlwaysRejected(t *testing.T) {
	polygon := NewGeoPolygon(sfOuterLoop(), nil)

	_, err := MaxPolygonToCellsSize(&polygon, 9, CONTAINMENT_INVALID)
	assert.Equal(t, E_OPTION_INVALID, err)

	_, err = MaxPolygonToCellsSize(&polygon, 9, 1<<10)
	assert.Equal(t, E_OPTION_INVALID, err)

	_, err = MaxPolygonToCellsSize(&polygon, 9, FLAG_GEODESIC|CONTAINMENT_CENTER)
	assert.Equal(t, E_OPTION_INVALID, err)

	_, err = MaxPolygonToCellsSize(&polygon, 9, FLAG_GEODESIC|CONTAINMENT_OVERLAPPING_BBOX)
	assert.Equal(t, E_OPTION_INVALID, err)
}

// TestPolygonToCellsSelfIdentity checks P6: filling the exact boundary of a
// single cell in CENTER mode returns exactly that cell.
func TestPolygonToCellsSelfIdentity(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	cell := GeoToH3(&origin, 7)

	var gb GeoBoundary
	H3ToGeoBoundary(cell, &gb)
	loop := NewGeoLoop(append([]GeoCoord{}, gb.verts[:gb.numVerts]...))
	polygon := NewGeoPolygon(loop, nil)

	maxSize, err := MaxPolygonToCellsSize(&polygon, 7, CONTAINMENT_CENTER)
	require.Equal(t, E_SUCCESS, err)
	out := make([]H3Index, maxSize)
	n, err := PolygonToCells(&polygon, 7, CONTAINMENT_CENTER, out)
	require.Equal(t, E_SUCCESS, err)
	require.Equal(t, 1, n)
	assert.Equal(t, cell, out[0])
}

// TestMaxPolygonToCellsSizeIsUpperBound checks P7 across the containment
// modes for the SF hexagon scenario.
func TestMaxPolygonToCellsSizeIsUpperBound(t *testing.T) {
	polygon := NewGeoPolygon(sfOuterLoop(), nil)
	for _, mode := range []uint32{
		CONTAINMENT_CENTER,
		CONTAINMENT_FULL,
		CONTAINMENT_OVERLAPPING,
		CONTAINMENT_OVERLAPPING_BBOX,
	} {
		maxSize, err := MaxPolygonToCellsSize(&polygon, 9, mode)
		require.Equal(t, E_SUCCESS, err)

		out := make([]H3Index, maxSize)
		n, err := PolygonToCells(&polygon, 9, mode, out)
		require.Equal(t, E_SUCCESS, err)
		assert.LessOrEqual(t, n, maxSize)
	}
}

func TestPolygonToCellsEmptyPolygon(t *testing.T) {
	var polygon GeoPolygon
	n := countCells(t, &polygon, 5, CONTAINMENT_CENTER)
	assert.Equal(t, 0, n)
}

func TestPolygonToCellsRejectsNonFiniteVertexInPlanarMode(t *testing.T) {
	loop := NewGeoLoop([]GeoCoord{
		{lat: math.NaN(), lon: math.NaN()},
		{lat: math.NaN(), lon: math.NaN()},
		{lat: math.NaN(), lon: math.NaN()},
	})
	polygon := NewGeoPolygon(loop, nil)

	_, err := MaxPolygonToCellsSize(&polygon, 5, CONTAINMENT_CENTER)
	assert.Equal(t, E_FAILED, err)

	out := make([]H3Index, 16)
	_, err = PolygonToCells(&polygon, 5, CONTAINMENT_CENTER, out)
	assert.Equal(t, E_FAILED, err)
}

func TestPolygonToCellsMemoryBoundsOnSmallBuffer(t *testing.T) {
	polygon := NewGeoPolygon(sfOuterLoop(), nil)
	out := make([]H3Index, 1)
	_, err := PolygonToCells(&polygon, 9, CONTAINMENT_CENTER, out)
	assert.Equal(t, E_MEMORY_BOUNDS, err)
}
