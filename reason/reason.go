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

package reason

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Reason is the canonical, validated representation of a diagnostic reason.
type Reason string

// MinLength and MaxLength bound a non-empty reason.
const (
	MinLength = 3
	MaxLength = 128
)

const (
	// reasonFmt accepts 1 to 4 dot-separated segments, each starting with a
	// lower-case ASCII letter followed by lower-case letters, digits or
	// underscores. The empty string is handled separately.
	reasonFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`
)

var reasonRe = regexp.MustCompile(reasonFmt)

var (
	// ErrReasonInvalidFormat is returned when a reason does not conform to
	// the expected format.
	ErrReasonInvalidFormat = errors.New("denvelope: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("denvelope: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty is the zero-value reason, meaning "not classified".
var Empty Reason = ""

// Kind is the top-level diagnostic class encoded in the first segment.
type Kind string

const (
	KindUnknown     Kind = ""
	KindStructural  Kind = "structural"
	KindFormat      Kind = "format"
	KindConditional Kind = "conditional"
)

// Reasons emitted by the schema validator.
const (
	NotAllowed Reason = "structural.not_allowed"
	Required   Reason = "structural.required"
	Type       Reason = "structural.type"
	Decode     Reason = "structural.decode"

	Pattern    Reason = "format.pattern"
	Blank      Reason = "format.blank"
	Identifier Reason = "format.identifier"
	Timestamp  Reason = "format.timestamp"
	Number     Reason = "format.number"
	Enum       Reason = "format.enum"

	ConditionalRequired  Reason = "conditional.required"
	ConditionalForbidden Reason = "conditional.forbidden"
)

// Normalize trims, lower-cases, turns "/" into "." and "-" into "_".
// It does NOT guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s. The empty string yields Empty.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is the panic-on-error variant of Parse. Unlike Parse it rejects
// the empty string.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("denvelope: empty reason in MustParse")
	}
	return r
}

// Validate checks whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// Kind returns the diagnostic class named by the first segment, or
// KindUnknown when the segment is not one of the known classes.
func (r Reason) Kind() Kind {
	head, _, _ := strings.Cut(string(r), ".")
	switch k := Kind(head); k {
	case KindStructural, KindFormat, KindConditional:
		return k
	default:
		return KindUnknown
	}
}

func (r Reason) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}
