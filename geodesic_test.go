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
	"github.com/stretchr/testify/require"
)

func TestNewGeodesicPolygonRejectsEmptyHole(t *testing.T) {
	outer := squareLoop()
	polygon := NewGeoPolygon(outer, []GeoLoop{{}})
	_, err := NewGeodesicPolygon(&polygon)
	assert.Equal(t, E_DOMAIN, err)
}

func TestGeodesicPointInPolygon(t *testing.T) {
	outer := squareLoop()
	polygon := NewGeoPolygon(outer, nil)
	gp, err := NewGeodesicPolygon(&polygon)
	require.Equal(t, E_SUCCESS, err)

	center := GeoCoord{lat: 0, lon: 0}
	assert.True(t, gp.pointInGeodesicPolygon(geoToUnitVector(&center)))

	far := GeoCoord{lat: -M_PI_2 + 0.01, lon: 0}
	assert.False(t, gp.pointInGeodesicPolygon(geoToUnitVector(&far)))
}

func TestArcAABBContainsEndpoints(t *testing.T) {
	v := geoToUnitVector(&GeoCoord{lat: 0, lon: 0})
	w := geoToUnitVector(&GeoCoord{lat: 0.2, lon: 0.3})
	box := arcAABB(v, w)

	assert.True(t, box.min.X <= v.X && v.X <= box.max.X)
	assert.True(t, box.min.X <= w.X && w.X <= box.max.X)
}

func TestGreatCircleArcsIntersect(t *testing.T) {
	v1 := geoToUnitVector(&GeoCoord{lat: 0, lon: -0.1})
	w1 := geoToUnitVector(&GeoCoord{lat: 0, lon: 0.1})
	v2 := geoToUnitVector(&GeoCoord{lat: -0.1, lon: 0})
	w2 := geoToUnitVector(&GeoCoord{lat: 0.1, lon: 0})
	assert.True(t, greatCircleArcsIntersect(v1, w1, v2, w2))

	v3 := geoToUnitVector(&GeoCoord{lat: 1, lon: -0.1})
	w3 := geoToUnitVector(&GeoCoord{lat: 1, lon: 0.1})
	assert.False(t, greatCircleArcsIntersect(v1, w1, v3, w3))
}
