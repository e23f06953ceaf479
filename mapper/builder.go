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
	"net/http"

	"dirpx.dev/denvelope/reason"
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw, dot-separated reason prefix (may contain "*").
	// It is normalized and validated when the trie is built.
	prefix string
	// val is the numeric transport status to apply when this prefix matches.
	// For HTTP this is the final value; gRPC values are stored as ints and
	// converted to codes.Code in New().
	val int
}

// builder collects options before New freezes them.
type builder struct {
	// seeded with library defaults, then adjusted by options

	// httpDefaults holds the HTTP status per diagnostic kind.
	httpDefaults map[reason.Kind]int
	// grpcDefaults holds the gRPC status per kind as ints; converted in New().
	grpcDefaults map[reason.Kind]int

	// httpOverride holds exact per-reason HTTP statuses (highest priority).
	httpOverride map[reason.Reason]int
	// grpcOverride holds exact per-reason gRPC statuses as ints.
	grpcOverride map[reason.Reason]int

	// httpPrefixes holds LPM rules for HTTP, compiled into a segment trie.
	httpPrefixes []prefixRule
	// grpcPrefixes holds LPM rules for gRPC.
	grpcPrefixes []prefixRule

	// global fallbacks used when a reason's kind has no default.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates a builder seeded with the per-kind library defaults.
func newBuilder() *builder {
	b := &builder{
		// one entry per known kind
		httpDefaults: make(map[reason.Kind]int, len(defaultHTTP)),
		grpcDefaults: make(map[reason.Kind]int, len(defaultGRPC)),

		// overrides are usually few
		httpOverride: make(map[reason.Reason]int),
		grpcOverride: make(map[reason.Reason]int),

		// hard fallbacks for unknown kinds
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}
	return b
}
