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

// TestCompactUncompactRoundTrip checks that uncompacting a single parent
// cell to its children and then compacting the result recovers the
// original parent, the same pattern ExpandingIter/PolygonToCells relies on
// for every compact cell the traversal emits.
func TestCompactUncompactRoundTrip(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	parent := GeoToH3(&origin, 5)

	children, err := Uncompact([]H3Index{parent}, 7)
	require.NoError(t, err)
	assert.Len(t, children, MaxH3ToChildrenSize(parent, 7))

	compacted, err := Compact(children)
	require.NoError(t, err)
	assert.Equal(t, []H3Index{parent}, compacted)
}

// TestCompactPartialSetLeavesCellsUncompacted checks that a proper subset of
// a parent's children (missing one) cannot be compacted past that parent.
func TestCompactPartialSetLeavesCellsUncompacted(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	parent := GeoToH3(&origin, 5)

	children := parent.ToChildren(6)
	partial := children[:len(children)-1]

	compacted, err := Compact(partial)
	require.NoError(t, err)
	assert.Equal(t, len(partial), len(compacted))
}

// TestUncompactRejectsSmallerOutputResolution checks MaxUncompactSize's
// ErrUncompactResExceeded path.
func TestUncompactRejectsSmallerOutputResolution(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	cell := GeoToH3(&origin, 7)

	_, err := Uncompact([]H3Index{cell}, 5)
	assert.ErrorIs(t, err, ErrUncompactResExceeded)
}
