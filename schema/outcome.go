/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package schema

import (
	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
)

// Outcome is the result of one validation run.
type Outcome struct {
	// Valid is true iff Diagnostics is empty.
	Valid bool `json:"valid"`
	// Diagnostics lists every finding in report order.
	Diagnostics []apis.Diagnostic `json:"diagnostics,omitempty"`
}

// Err converts a failed outcome into a *denvelope.Error with code
// VALIDATION_FAILED. It returns nil for a valid outcome.
func (o Outcome) Err() error {
	if o.Valid {
		return nil
	}
	return denvelope.E(code.ValidationFailed, "envelope failed validation",
		denvelope.WithDiagnosticsOption(o.Diagnostics...),
	)
}

// First returns the first diagnostic, if any.
func (o Outcome) First() (apis.Diagnostic, bool) {
	if len(o.Diagnostics) == 0 {
		return apis.Diagnostic{}, false
	}
	return o.Diagnostics[0], true
}
