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

package mapper

import (
	"fmt"
	"maps"
	"net/http"
	"strings"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/mapper/internal/segmenttrie"
	"dirpx.dev/denvelope/reason"
	"google.golang.org/grpc/codes"
)

var _ apis.Mapper = (*mapper)(nil)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process:
//
//  1. seed the builder with library defaults;
//  2. apply user options;
//  3. normalize and validate every reason prefix and build the HTTP and
//     gRPC tries;
//  4. freeze all maps into fresh copies.
//
// Errors indicate invalid prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpTrie, err := buildTrie(b.httpPrefixes, func(v int) int { return v })
	if err != nil {
		return nil, fmt.Errorf("mapper: HTTP %w", err)
	}
	grpcTrie, err := buildTrie(b.grpcPrefixes, func(v int) codes.Code { return codes.Code(v) })
	if err != nil {
		return nil, fmt.Errorf("mapper: gRPC %w", err)
	}

	m := &mapper{
		httpDefault:  maps.Clone(b.httpDefaults),
		grpcDefault:  make(map[reason.Kind]codes.Code, len(b.grpcDefaults)),
		httpOverride: maps.Clone(b.httpOverride),
		grpcOverride: make(map[reason.Reason]codes.Code, len(b.grpcOverride)),
		httpTrie:     httpTrie,
		grpcTrie:     grpcTrie,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}
	for k, v := range b.grpcDefaults {
		m.grpcDefault[k] = codes.Code(v)
	}
	for k, v := range b.grpcOverride {
		m.grpcOverride[k] = codes.Code(v)
	}
	return m, nil
}

func buildTrie[T any](rules []prefixRule, conv func(int) T) (*segmenttrie.Trie[T], error) {
	if len(rules) == 0 {
		return nil, nil
	}
	t := segmenttrie.New[T]()
	for _, r := range rules {
		p, err := normalizeAndValidatePrefix(r.prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid reason-prefix %q: %w", r.prefix, err)
		}
		if err := t.Insert(p, conv(r.val)); err != nil {
			return nil, fmt.Errorf("cannot insert prefix %q: %w", p, err)
		}
	}
	return t, nil
}

// mapper combines per-reason overrides, a segment trie of reason prefixes
// and per-kind defaults. Lookups are O(depth) and safe for concurrent use.
type mapper struct {
	httpDefault map[reason.Kind]int
	grpcDefault map[reason.Kind]codes.Code

	httpOverride map[reason.Reason]int
	grpcOverride map[reason.Reason]codes.Code

	// nil when no prefix rules were given
	httpTrie *segmenttrie.Trie[int]
	grpcTrie *segmenttrie.Trie[codes.Code]

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for r.
func (m *mapper) HTTPStatus(r reason.Reason) int {
	v, _, _ := m.resolveHTTP(r)
	return v
}

// GRPCStatus resolves a gRPC status for r.
func (m *mapper) GRPCStatus(r reason.Reason) codes.Code {
	v, _, _ := m.resolveGRPC(r)
	return v
}

// Status resolves both HTTP and gRPC using the same reason.
func (m *mapper) Status(r reason.Reason) apis.Status {
	return apis.Status{HTTP: m.HTTPStatus(r), GRPC: m.GRPCStatus(r)}
}

// Resolve returns the status of the first diagnostic, or 200 / OK when
// there is none.
func (m *mapper) Resolve(diags []apis.Diagnostic) apis.Status {
	if len(diags) == 0 {
		return apis.Status{HTTP: http.StatusOK, GRPC: codes.OK}
	}
	return m.Status(diags[0].Reason)
}

// Explain produces a textual trace of how r was resolved.
//
// Example output:
//
//	reason="format.identifier" kind="format"
//	http: source=prefix pattern="format.identifier" -> 422
//	grpc: source=default -> INVALIDARGUMENT(3)
//
// source is one of override, prefix, default or fallback.
func (m *mapper) Explain(r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "reason=%q kind=%q\n", r, r.Kind())

	hv, hsrc, hpat := m.resolveHTTP(r)
	_, _ = fmt.Fprintf(&b, "http: source=%s%s -> %d\n", hsrc, patternSuffix(hpat), hv)

	gv, gsrc, gpat := m.resolveGRPC(r)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s%s -> %s(%d)", gsrc, patternSuffix(gpat), strings.ToUpper(gv.String()), int(gv))

	return b.String()
}

func patternSuffix(p string) string {
	if p == "" {
		return ""
	}
	return fmt.Sprintf(" pattern=%q", p)
}

func (m *mapper) resolveHTTP(r reason.Reason) (v int, source, pattern string) {
	if v, ok := m.httpOverride[r]; ok {
		return v, "override", ""
	}
	if m.httpTrie != nil {
		if v, ok, pat := m.httpTrie.MatchWithPattern(string(r)); ok {
			return v, "prefix", pat
		}
	}
	if v, ok := m.httpDefault[r.Kind()]; ok {
		return v, "default", ""
	}
	return m.fallbackHTTP, "fallback", ""
}

func (m *mapper) resolveGRPC(r reason.Reason) (v codes.Code, source, pattern string) {
	if v, ok := m.grpcOverride[r]; ok {
		return v, "override", ""
	}
	if m.grpcTrie != nil {
		if v, ok, pat := m.grpcTrie.MatchWithPattern(string(r)); ok {
			return v, "prefix", pat
		}
	}
	if v, ok := m.grpcDefault[r.Kind()]; ok {
		return v, "default", ""
	}
	return m.fallbackGRPC, "fallback", ""
}

// normalizeAndValidatePrefix makes a reason prefix canonical. It forbids
// empty prefixes and prefixes made only of wildcards.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	allWild := true
	for _, seg := range strings.Split(p, ".") {
		if seg == "" {
			return "", fmt.Errorf("empty segment")
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}
