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
	"testing"

	"dirpx.dev/denvelope/config"
)

const validUUID = "22680f70-2f03-46c7-b230-14f4babbfbda"

func testConfig() config.Config {
	return config.Config{ScopeIdentifier: "test", RequestIDKind: "requestId", TraceIDKind: "traceId"}
}

func TestValidUUID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"v4 lower", validUUID, true},
		{"v4 upper", "22680F70-2F03-46C7-B230-14F4BABBFBDA", true},
		{"v1", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"v5", "886313e1-3b8a-5372-9b90-0c9aee199e5d", true},
		{"version 0", "22680f70-2f03-06c7-b230-14f4babbfbda", false},
		{"version 6", "22680f70-2f03-66c7-b230-14f4babbfbda", false},
		{"variant c", "22680f70-2f03-46c7-c230-14f4babbfbda", false},
		{"variant 7", "22680f70-2f03-46c7-7230-14f4babbfbda", false},
		{"bad char", "22680f70-2f03-46c7-b230-14f4b*bbfbda", false},
		{"short group", "22680f70-2f03-46c7-b230-14f4bbBfbda", false},
		{"no hyphens", "22680f702f0346c7b23014f4babbfbda", false},
		{"braces", "{22680f70-2f03-46c7-b230-14f4babbfbda}", false},
		{"urn", "urn:uuid:22680f70-2f03-46c7-b230-14f4babbfbda", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUUID(tt.in); got != tt.want {
				t.Fatalf("ValidUUID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := testConfig()
	good := "test.requestId." + validUUID

	if !Validate(good, Request, cfg) {
		t.Fatalf("Validate(%q, Request) = false, want true", good)
	}
	if Validate(good, Trace, cfg) {
		t.Fatalf("request id must not validate in the trace role")
	}
	if !Validate("test.traceId."+validUUID, Trace, cfg) {
		t.Fatalf("trace id must validate in the trace role")
	}

	bad := []string{
		"other.requestId." + validUUID,
		"test.traceId." + validUUID,
		"test.requestId.22680f70-2f03-46c7-b230-14f4b*bbfbda",
		"test.requestId",
		"test..requestId",
		"test.requestId." + validUUID + ".extra",
		".requestId." + validUUID,
		"",
	}
	for _, v := range bad {
		if Validate(v, Request, cfg) {
			t.Fatalf("Validate(%q, Request) = true, want false", v)
		}
	}
}

func TestValidate_ConfigChangeFlipsResult(t *testing.T) {
	v := "test.requestId." + validUUID

	cfg := testConfig()
	cfg.ScopeIdentifier = "prod"
	if Validate(v, Request, cfg) {
		t.Fatalf("scope change must invalidate %q", v)
	}

	cfg = testConfig()
	cfg.RequestIDKind = "req"
	if Validate(v, Request, cfg) {
		t.Fatalf("kind change must invalidate %q", v)
	}

	cfg = testConfig()
	cfg.RequestIDKind = ""
	if Validate(v, Request, cfg) {
		t.Fatalf("empty kind must invalidate every id")
	}
}

func TestCheck_Errors(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		in   string
		want error
	}{
		{"a.b", ErrMalformed},
		{"a..c", ErrMalformed},
		{"test.requestId.nope", ErrUUID},
		{"prod.requestId." + validUUID, ErrScope},
		{"test.trace." + validUUID, ErrKind},
	}
	for _, tt := range tests {
		if _, err := Check(tt.in, Request, cfg); !errors.Is(err, tt.want) {
			t.Fatalf("Check(%q) err = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestNew_RoundTrip(t *testing.T) {
	cfg := testConfig()
	for _, role := range []Role{Request, Trace} {
		id := New(role, cfg)
		if !Validate(id.String(), role, cfg) {
			t.Fatalf("minted %s id %q does not validate", role, id)
		}
		parsed, err := Parse(id.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", id, err)
		}
		if parsed != id {
			t.Fatalf("Parse(%q) = %+v, want %+v", id, parsed, id)
		}
	}
}
