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

package ident

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/denvelope/config"
	"github.com/google/uuid"
)

// Role distinguishes what an identifier is used for.
type Role int

const (
	// Request identifies the request an envelope answers.
	Request Role = iota
	// Trace identifies the distributed trace an envelope belongs to.
	Trace
)

func (r Role) String() string {
	switch r {
	case Request:
		return "request"
	case Trace:
		return "trace"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// KindName returns the kind segment configured for r.
func (r Role) KindName(cfg config.Config) string {
	if r == Trace {
		return cfg.TraceIDKind
	}
	return cfg.RequestIDKind
}

var (
	// ErrMalformed is returned when a value does not split into exactly three
	// non-empty dot-separated segments.
	ErrMalformed = errors.New("ident: malformed identifier")
	// ErrUUID is returned when the third segment is not an acceptable UUID.
	ErrUUID = errors.New("ident: invalid uuid segment")
	// ErrScope is returned when the scope segment does not match the
	// configured scope identifier.
	ErrScope = errors.New("ident: scope mismatch")
	// ErrKind is returned when the kind segment does not match the kind name
	// configured for the role.
	ErrKind = errors.New("ident: kind mismatch")
)

// Identifier is the parsed form of a structured identifier.
type Identifier struct {
	Scope string
	Kind  string
	UUID  string
}

// String renders the identifier as scope.kind.uuid.
func (id Identifier) String() string {
	return id.Scope + "." + id.Kind + "." + id.UUID
}

// Parse splits value into its three segments and checks the uuid segment.
// It does not consult any configuration.
func Parse(value string) (Identifier, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return Identifier{}, fmt.Errorf("%w: want 3 segments, got %d", ErrMalformed, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return Identifier{}, fmt.Errorf("%w: empty segment", ErrMalformed)
		}
	}
	if !ValidUUID(parts[2]) {
		return Identifier{}, fmt.Errorf("%w: %q", ErrUUID, parts[2])
	}
	return Identifier{Scope: parts[0], Kind: parts[1], UUID: parts[2]}, nil
}

// Check parses value and verifies scope and kind against cfg for role.
// The returned error wraps one of ErrMalformed, ErrUUID, ErrScope, ErrKind.
func Check(value string, role Role, cfg config.Config) (Identifier, error) {
	id, err := Parse(value)
	if err != nil {
		return Identifier{}, err
	}
	if id.Scope != cfg.ScopeIdentifier {
		return Identifier{}, fmt.Errorf("%w: got %q, want %q", ErrScope, id.Scope, cfg.ScopeIdentifier)
	}
	if want := role.KindName(cfg); id.Kind != want {
		return Identifier{}, fmt.Errorf("%w: got %q, want %q", ErrKind, id.Kind, want)
	}
	return id, nil
}

// Validate reports whether value is a well-formed identifier for role under
// cfg. It never panics.
func Validate(value string, role Role, cfg config.Config) bool {
	_, err := Check(value, role, cfg)
	return err == nil
}

// New mints a fresh identifier for role with a random version 4 UUID.
func New(role Role, cfg config.Config) Identifier {
	return Identifier{
		Scope: cfg.ScopeIdentifier,
		Kind:  role.KindName(cfg),
		UUID:  uuid.NewString(),
	}
}
