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

// Package code provides parsing, normalization and validation for envelope
// message codes.
//
// A message code is the machine-readable half of an envelope message (the
// other half is the human-readable text). Codes are:
//
//   - upper-case ASCII letters only;
//   - underscore-separated words, e.g. "SUCCESS", "INVALID_CODE";
//   - without leading, trailing or doubled underscores;
//   - without digits.
//
// IMPORTANT: Empty codes ("") are NOT allowed. Every message MUST carry a
// non-empty code.
package code
