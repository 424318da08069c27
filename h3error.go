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

// H3Error is a value-typed error code returned by the polygon-to-cells
// engine. It implements the error interface so it composes with errors.Is,
// while remaining a plain comparable integer for callers that want to switch
// on the code directly.
type H3Error int

const (
	E_SUCCESS H3Error = iota
	E_RES_DOMAIN
	E_OPTION_INVALID
	E_DOMAIN
	E_LATLNG_DOMAIN
	E_CELL_INVALID
	E_MEMORY_ALLOC
	E_MEMORY_BOUNDS
	E_FAILED
)

var h3ErrorStrings = [...]string{
	E_SUCCESS:         "success",
	E_RES_DOMAIN:      "resolution domain error",
	E_OPTION_INVALID:  "invalid option or flag",
	E_DOMAIN:          "argument domain error",
	E_LATLNG_DOMAIN:   "latitude/longitude domain error",
	E_CELL_INVALID:    "cell index invalid",
	E_MEMORY_ALLOC:    "allocation failure",
	E_MEMORY_BOUNDS:   "buffer too small",
	E_FAILED:          "failed for unspecified reason",
}

func (e H3Error) Error() string {
	if e < 0 || int(e) >= len(h3ErrorStrings) {
		return "unknown H3 error"
	}
	return h3ErrorStrings[e]
}

// IsSuccess reports whether the code represents success.
func (e H3Error) IsSuccess() bool {
	return e == E_SUCCESS
}
