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
	"dirpx.dev/denvelope/reason"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the library-level default HTTP status
// for a diagnostic kind. It applies when no override or prefix rule
// matches the reason.
func WithHTTPDefault(k reason.Kind, http int) Option {
	return func(b *builder) { b.httpDefaults[k] = http }
}

// WithGRPCDefault sets or replaces the library-level default gRPC status
// for a diagnostic kind. It applies when no override or prefix rule
// matches the reason.
func WithGRPCDefault(k reason.Kind, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[k] = grpc }
}

// WithHTTPOverride registers an exact HTTP status for one reason.
// Overrides beat every other rule.
func WithHTTPOverride(r reason.Reason, http int) Option {
	return func(b *builder) { b.httpOverride[r] = http }
}

// WithGRPCOverride registers an exact gRPC status for one reason.
// Overrides beat every other rule.
func WithGRPCOverride(r reason.Reason, grpc int) Option {
	return func(b *builder) { b.grpcOverride[r] = grpc }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule. The rule is
// evaluated against the dot-separated reason and the more specific prefix
// wins. Use "*" to match a single segment. The prefix is normalized with
// reason.Normalize; an invalid prefix makes New fail.
func WithHTTPPrefix(prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes = append(b.httpPrefixes, prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule with the same
// matching and normalization as WithHTTPPrefix.
func WithGRPCPrefix(prefix string, grpc int) Option {
	return func(b *builder) { b.grpcPrefixes = append(b.grpcPrefixes, prefixRule{prefix, grpc}) }
}

// WithFallback replaces the statuses used when nothing else matches,
// i.e. for reasons of an unknown kind. The defaults are 500 and
// codes.Internal.
func WithFallback(http int, grpc codes.Code) Option {
	return func(b *builder) {
		b.fallbackHTTP = http
		b.fallbackGRPC = grpc
	}
}
