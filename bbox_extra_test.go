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

func TestBBoxOverlapsDisjointLatitude(t *testing.T) {
	a := BBox{north: 1, south: 0.5, east: 1, west: 0}
	b := BBox{north: 0.1, south: -0.1, east: 1, west: 0}
	assert.False(t, bboxOverlaps(&a, &b))
}

func TestBBoxOverlapsSimple(t *testing.T) {
	a := BBox{north: 1, south: 0, east: 1, west: 0}
	b := BBox{north: 0.5, south: -0.5, east: 0.5, west: -0.5}
	assert.True(t, bboxOverlaps(&a, &b))
}

func TestBBoxOverlapsTransmeridian(t *testing.T) {
	// a crosses the antimeridian (east < west); b starts inside a's eastern
	// end, just past the antimeridian.
	a := BBox{north: 0.1, south: -0.1, east: -M_PI + 0.05, west: M_PI - 0.05}
	b := BBox{north: 0.1, south: -0.1, east: -M_PI + 0.2, west: -M_PI + 0.01}
	assert.True(t, bboxOverlaps(&a, &b))
}

func TestBBoxWidthHeight(t *testing.T) {
	bbox := BBox{north: 0.2, south: -0.2, east: 0.3, west: -0.3}
	assert.InDelta(t, 0.6, bboxWidth(&bbox), 1e-12)
	assert.InDelta(t, 0.4, bboxHeight(&bbox), 1e-12)

	trans := BBox{north: 0.2, south: -0.2, east: -M_PI + 0.1, west: M_PI - 0.1}
	assert.InDelta(t, 0.2, bboxWidth(&trans), 1e-9)
}

func TestBBoxScaleClampsPoles(t *testing.T) {
	bbox := BBox{north: M_PI_2 - 0.01, south: M_PI_2 - 0.2, east: 0.1, west: -0.1}
	scaled := bboxScale(&bbox, 10.0)
	assert.LessOrEqual(t, scaled.north, M_PI_2)
}

func TestBBoxHexEstimateCheckedRejectsBadRes(t *testing.T) {
	bbox := BBox{north: 0.1, south: -0.1, east: 0.1, west: -0.1}
	_, err := bboxHexEstimateChecked(&bbox, 16)
	assert.Equal(t, E_RES_DOMAIN, err)

	_, err = bboxHexEstimateChecked(&bbox, -1)
	assert.Equal(t, E_RES_DOMAIN, err)
}

func TestBBoxHexEstimateCheckedRejectsDegenerate(t *testing.T) {
	bbox := BBox{north: 0.1, south: 0.1, east: 0.1, west: -0.1}
	_, err := bboxHexEstimateChecked(&bbox, 5)
	assert.Equal(t, E_FAILED, err)
}

func TestBBoxHexEstimateCheckedSucceeds(t *testing.T) {
	bbox := BBox{north: 0.1, south: -0.1, east: 0.1, west: -0.1}
	estimate, err := bboxHexEstimateChecked(&bbox, 5)
	require.Equal(t, E_SUCCESS, err)
	assert.Greater(t, estimate, 0)
}

func TestGeoLoopHasNonFiniteVertexDetectsNaNAndInf(t *testing.T) {
	nanLoop := NewGeoLoop([]GeoCoord{
		{lat: math.NaN(), lon: 0},
		{lat: 0.1, lon: 0.1},
		{lat: -0.1, lon: -0.1},
	})
	assert.True(t, geoLoopHasNonFiniteVertex(&nanLoop))

	infLoop := NewGeoLoop([]GeoCoord{
		{lat: 0, lon: math.Inf(1)},
		{lat: 0.1, lon: 0.1},
		{lat: -0.1, lon: -0.1},
	})
	assert.True(t, geoLoopHasNonFiniteVertex(&infLoop))

	finiteLoop := squareLoop()
	assert.False(t, geoLoopHasNonFiniteVertex(&finiteLoop))
}

func TestBBoxFromGeoLoopDetectsTransmeridian(t *testing.T) {
	loop := NewGeoLoop([]GeoCoord{
		{lat: 0.01, lon: -M_PI + 0.01},
		{lat: 0.01, lon: M_PI - 0.01},
		{lat: -0.01, lon: M_PI - 0.01},
		{lat: -0.01, lon: -M_PI + 0.01},
	})
	bbox := bboxFromGeoLoop(&loop)
	assert.True(t, bboxIsTransmeridian(&bbox))
}
