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
	"testing"

	"github.com/stretchr/testify/assert"
)

func squareLoop() GeoLoop {
	return NewGeoLoop([]GeoCoord{
		{lat: 1, lon: 1},
		{lat: 1, lon: -1},
		{lat: -1, lon: -1},
		{lat: -1, lon: 1},
	})
}

func TestPointInsideLoopCenter(t *testing.T) {
	loop := squareLoop()
	bbox := bboxFromGeoLoop(&loop)
	p := GeoCoord{lat: 0, lon: 0}
	assert.True(t, pointInsideLoop(&loop, &bbox, &p))
}

func TestPointInsideLoopOutside(t *testing.T) {
	loop := squareLoop()
	bbox := bboxFromGeoLoop(&loop)
	p := GeoCoord{lat: 5, lon: 5}
	assert.False(t, pointInsideLoop(&loop, &bbox, &p))
}

func TestPointInsideLoopPoleNeverContained(t *testing.T) {
	loop := NewGeoLoop([]GeoCoord{
		{lat: M_PI_2 - 0.001, lon: -M_PI},
		{lat: M_PI_2 - 0.001, lon: 0},
		{lat: M_PI_2 - 0.001, lon: M_PI - 0.001},
	})
	bbox := bboxFromGeoLoop(&loop)
	pole := GeoCoord{lat: M_PI_2, lon: 0}
	assert.False(t, pointInsideLoop(&loop, &bbox, &pole))
}

func TestLoopIsClockwise(t *testing.T) {
	cw := NewGeoLoop([]GeoCoord{
		{lat: 1, lon: 1},
		{lat: -1, lon: 1},
		{lat: -1, lon: -1},
		{lat: 1, lon: -1},
	})
	assert.True(t, loopIsClockwise(&cw, false))

	ccw := squareLoop()
	assert.False(t, loopIsClockwise(&ccw, false))
}

func TestSegmentsCross(t *testing.T) {
	a1 := &GeoCoord{lat: 0, lon: -1}
	a2 := &GeoCoord{lat: 0, lon: 1}
	b1 := &GeoCoord{lat: -1, lon: 0}
	b2 := &GeoCoord{lat: 1, lon: 0}
	assert.True(t, segmentsCross(a1, a2, b1, b2))

	c1 := &GeoCoord{lat: 5, lon: -1}
	c2 := &GeoCoord{lat: 5, lon: 1}
	assert.False(t, segmentsCross(a1, a2, c1, c2))
}

func TestPointInsidePolygonExcludesHole(t *testing.T) {
	outer := squareLoop()
	hole := NewGeoLoop([]GeoCoord{
		{lat: 0.5, lon: 0.5},
		{lat: 0.5, lon: -0.5},
		{lat: -0.5, lon: -0.5},
		{lat: -0.5, lon: 0.5},
	})
	polygon := NewGeoPolygon(outer, []GeoLoop{hole})

	outerBBox := bboxFromGeoLoop(&outer)
	holeBBoxes := []BBox{bboxFromGeoLoop(&hole)}

	inHole := GeoCoord{lat: 0, lon: 0}
	assert.False(t, pointInsidePolygon(&polygon, &outerBBox, holeBBoxes, &inHole))

	inRing := GeoCoord{lat: 0.9, lon: 0}
	assert.True(t, pointInsidePolygon(&polygon, &outerBBox, holeBBoxes, &inRing))
}
