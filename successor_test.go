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

func TestNextSiblingOrAncestorWalksAllBaseCells(t *testing.T) {
	cur := _setH3Index(0, 0, CENTER_DIGIT)
	count := 1
	for {
		next := nextSiblingOrAncestor(cur)
		if next == H3_NULL {
			break
		}
		assert.Equal(t, 0, next.GetResolution())
		cur = next
		count++
	}
	assert.Equal(t, NUM_BASE_CELLS, count)
}

func TestFirstChildCellThenSiblingsCoversSevenOrSixChildren(t *testing.T) {
	var origin GeoCoord
	origin.setGeoDegs(37.77, -122.41)
	parent := GeoToH3(&origin, 3)
	childRes := parent.GetResolution() + 1

	child := firstChildCell(parent)
	count := 1
	for {
		next := nextSiblingOrAncestor(child)
		if next == H3_NULL {
			break
		}
		if next.GetResolution() != childRes || next.ToParent(parent.GetResolution()) != parent {
			break
		}
		child = next
		count++
	}

	if parent.IsPentagon() {
		assert.Equal(t, 6, count)
	} else {
		assert.Equal(t, 7, count)
	}
}
