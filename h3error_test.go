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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestH3ErrorIsSuccess(t *testing.T) {
	assert.True(t, E_SUCCESS.IsSuccess())
	assert.False(t, E_FAILED.IsSuccess())
}

func TestH3ErrorComposesWithErrorsIs(t *testing.T) {
	var err error = E_OPTION_INVALID
	assert.True(t, errors.Is(err, E_OPTION_INVALID))
	assert.False(t, errors.Is(err, E_DOMAIN))
}

func TestH3ErrorStringsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for e := E_SUCCESS; e <= E_FAILED; e++ {
		msg := e.Error()
		assert.False(t, seen[msg], "duplicate H3Error message: %s", msg)
		seen[msg] = true
	}
}
