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

package apis

import "dirpx.dev/denvelope/reason"

// Diagnostic is a single validation finding. It is a view type: small,
// comparable, and safe to marshal to JSON.
type Diagnostic struct {
	// Field is the dotted path of the offending field, e.g. "traceId",
	// "message.code" or "result.1.success". It is empty when the finding is
	// about the candidate value as a whole.
	Field string `json:"field"`

	// Reason classifies the finding (see package reason).
	Reason reason.Reason `json:"reason"`

	// Message is a human-readable explanation.
	Message string `json:"message"`
}

// String renders the diagnostic as "<field>: <message> (<reason>)".
func (d Diagnostic) String() string {
	f := d.Field
	if f == "" {
		f = "<root>"
	}
	return f + ": " + d.Message + " (" + string(d.Reason) + ")"
}
