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

// Package version validates the semantic version string carried by every
// envelope.
//
// A version is a dot-triple of non-negative integers without leading zeros:
// "1.2.3" and "0.0.0" are valid, "01.2.3", "1.2" and "1.2.3.4" are not.
package version

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Version is a validated major.minor.patch string.
type Version string

const versionFmt = `^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`

var versionRe = regexp.MustCompile(versionFmt)

var (
	// ErrVersionInvalid is returned when a value is not a major.minor.patch
	// triple.
	ErrVersionInvalid = errors.New("denvelope: invalid version")
)

var (
	_ encoding.TextMarshaler   = (*Version)(nil)
	_ encoding.TextUnmarshaler = (*Version)(nil)
)

// Default is the version stamped on envelopes whose producer did not set one.
const Default Version = "1.0.0"

// Valid reports whether s is a well-formed version string.
func Valid(s string) bool {
	return versionRe.MatchString(s)
}

// Parse trims s and validates it.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if !Valid(s) {
		return "", ErrVersionInvalid
	}
	return Version(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks whether v is well-formed.
func Validate(v Version) error {
	if !Valid(string(v)) {
		return ErrVersionInvalid
	}
	return nil
}

func (v Version) String() string { return string(v) }

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
