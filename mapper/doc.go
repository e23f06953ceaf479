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

// Package mapper provides deterministic, immutable mappings from envelope
// diagnostic reasons (dirpx.dev/denvelope/reason) to transport-level
// statuses for HTTP and gRPC.
//
// # Resolution model
//
// A Mapper resolves statuses for a reason in the following order:
//
//  1. exact override for the reason;
//  2. longest-prefix match (LPM) on the reason;
//  3. default for the reason's kind (structural, format, conditional);
//  4. global fallback (500 / codes.Internal unless changed).
//
// Prefix rules are segment-aware: reasons are treated as "."-separated
// segments and "*" matches exactly one segment:
//
//	WithHTTPPrefix("format.identifier", http.StatusUnprocessableEntity)
//	WithHTTPPrefix("*.required", http.StatusBadRequest)
//
// The more specific prefix wins.
//
// # Library defaults
//
//	structural.*   400 / InvalidArgument
//	format.*       400 / InvalidArgument
//	conditional.*  422 / FailedPrecondition
//
// A service validating its own outgoing envelopes would typically override
// all three with 500 / Internal, since a violation there is a server bug.
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a reason was
// resolved. It is intended for inspection and logging, not for stable
// machine parsing.
//
// # Immutability
//
// All user-provided inputs are copied during New. After construction, the
// Mapper is safe to share across handlers, goroutines and requests.
package mapper
