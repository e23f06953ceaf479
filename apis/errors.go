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

// CodedError represents an error that carries an envelope message code,
// e.g. "VALIDATION_FAILED". Adapters use it as the code of the error
// envelope they emit.
type CodedError interface {
	error

	// ErrorCode returns the upper-snake message code. It MUST be non-empty.
	ErrorCode() string
}

// ReasonedError represents an error that provides a dot-separated reason in
// addition to the code.
//
// While the code answers "what kind of failure is this?", the reason answers
// "which rule was violated?", e.g. "conditional.required".
type ReasonedError interface {
	error

	// ErrorReason returns the specific error reason. It MAY be empty.
	ErrorReason() string
}

// DiagnosedError represents an error that exposes zero or more validation
// diagnostics. Validators collecting all findings in one run return
// errors implementing it so that callers can report every violation.
//
// Implementations SHOULD return a slice that is safe to iterate over and
// that will not be modified by the callee. Returning nil is allowed.
type DiagnosedError interface {
	error

	// ErrorDiagnostics returns the findings. May return nil.
	ErrorDiagnostics() []Diagnostic
}
