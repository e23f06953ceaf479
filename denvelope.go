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

// Package denvelope defines the standardized backend response envelope and
// the error type its validator reports.
//
// The envelope rules themselves live in package schema; the value types it
// checks live in packages code, version and ident; settings live in package
// config. This root package only carries the rich Error that ties a
// message code, a reason and the full list of diagnostics together.
package denvelope

import (
	"fmt"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/reason"
)

// Error is the rich error returned when an envelope fails validation, and
// the error type adapters turn into error envelopes.
//
// It carries:
//   - Code: upper-snake message code (required), e.g. VALIDATION_FAILED;
//   - Reason: optional classification of the first violated rule;
//   - Message: human-oriented description;
//   - Diagnostics: every finding, in report order;
//   - Cause: wrapped underlying error.
//
// All mutation helpers (WithX) return a shallow copy, so Error values can be
// shared and refined in a functional style.
type Error struct {
	Code        code.Code
	Reason      reason.Reason
	Message     string
	Diagnostics []apis.Diagnostic
	Cause       error
}

var (
	_ apis.CodedError     = (*Error)(nil)
	_ apis.ReasonedError  = (*Error)(nil)
	_ apis.DiagnosedError = (*Error)(nil)
)

// E is a convenience constructor for Error.
//
// Usage:
//
//	return denvelope.E(code.ValidationFailed, "envelope rejected",
//	    denvelope.WithReasonOption(reason.ConditionalRequired),
//	    denvelope.WithDiagnosticsOption(diags),
//	)
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<CODE>: <message>
//
// or, when Reason is present:
//
//	<CODE>:<reason>: <message>
//
// followed by " [n diagnostics]" when more than one finding is attached.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Reason != "" {
		s = fmt.Sprintf("%s:%s: %s", e.Code, e.Reason, e.Message)
	}
	if n := len(e.Diagnostics); n > 1 {
		s += fmt.Sprintf(" [%d diagnostics]", n)
	}
	return s
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason) }

// ErrorDiagnostics implements apis.DiagnosedError. The returned slice is a
// copy.
func (e *Error) ErrorDiagnostics() []apis.Diagnostic {
	if len(e.Diagnostics) == 0 {
		return nil
	}
	out := make([]apis.Diagnostic, len(e.Diagnostics))
	copy(out, e.Diagnostics)
	return out
}

// WithReason returns a shallow copy of e with the given Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced human message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDiagnostics returns a shallow copy of e with ds appended to its
// diagnostics. The existing slice is never written to.
func (e *Error) WithDiagnostics(ds ...apis.Diagnostic) *Error {
	if len(ds) == 0 {
		return e
	}
	cp := *e
	merged := make([]apis.Diagnostic, 0, len(e.Diagnostics)+len(ds))
	merged = append(merged, e.Diagnostics...)
	merged = append(merged, ds...)
	cp.Diagnostics = merged
	if cp.Reason == "" {
		cp.Reason = merged[0].Reason
	}
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause
// attached. If err is nil, e is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
