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

// Package schema validates candidate response envelopes.
//
// # Envelope shape
//
// An envelope is a closed JSON object with exactly these keys:
//
//	status      required  "success" | "error" | "partial"
//	message     required  {code, message}
//	data        optional  any value, including null
//	requestId   required  <scope>.<requestKind>.<uuid>
//	traceId     optional  <scope>.<traceKind>.<uuid> (see status rules)
//	timestamp   required  ISO-8601 date or date-time
//	warnings    optional  {code, message} or a list of them
//	version     required  major.minor.patch
//	pagination  optional  {totalItems, currentPage, itemsPerPage, totalPages}
//	metadata    optional  any object
//	result      optional  list (see status rules)
//
// # Validation order
//
// A run has three passes:
//
//  1. structural: every key must be declared, otherwise "not allowed";
//  2. fields: each declared field is checked on its own, in the order above;
//  3. status rules: when status is valid, its rule set adds required and
//     forbidden fields (see statusRules).
//
// Unrelated field checks always run, even when status itself is invalid.
//
// # Diagnostics policy
//
// By default every finding is collected, in pass order. WithFailFast(true)
// stops at the first finding, which matches what most schema libraries
// report by default.
//
// # Concurrency
//
// A Validator is immutable once built and safe for concurrent use. Without
// WithConfig it reads a snapshot of config.Shared at the start of each run.
package schema
