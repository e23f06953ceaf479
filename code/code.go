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

package code

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated representation of a message code.
//
// It is a separate type (not just string) so that envelope producers can
// declare which values they expect and to avoid mixing raw user input with
// validated codes.
type Code string

const (
	// codeFmt is the canonical pattern for message codes.
	//
	// Pattern breakdown:
	//
	//	^[A-Z]+     - first word, one or more upper-case letters;
	//	(_[A-Z]+)*  - any number of further words, each introduced by exactly
	//	              one underscore;
	//	$           - end of string.
	//
	// "SUCCESS" and "INVALID_CODE" match; "success", "INVALID__CODE",
	// "_CODE", "CODE_" and "CODE1" do not.
	codeFmt = `^[A-Z]+(_[A-Z]+)*$`
)

var codeRe = regexp.MustCompile(codeFmt)

var (
	// ErrCodeInvalid is returned when a value cannot be parsed or validated
	// as a message code.
	ErrCodeInvalid = errors.New("denvelope: invalid message code")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It is never valid.
var Empty Code = ""

// Well-known codes used by the adapters in this module.
const (
	Success          Code = "SUCCESS"
	PartialSuccess   Code = "PARTIAL_SUCCESS"
	ValidationFailed Code = "VALIDATION_FAILED"
	InternalError    Code = "INTERNAL_ERROR"
)

// Valid reports whether s is a well-formed message code.
func Valid(s string) bool {
	return validate(s) == nil
}

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Code value.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings s closer to the canonical form: it trims surrounding
// spaces, upper-cases the value and replaces '-' and ' ' with '_'.
//
// It does NOT guarantee that the result is valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return s
}

// Validate checks whether the provided Code is valid.
func Validate(c Code) error {
	return validate(string(c))
}

// String returns the canonical string representation of the code.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler. Invalid codes refuse to
// marshal so that a malformed envelope cannot be produced silently.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if s == "" || !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
