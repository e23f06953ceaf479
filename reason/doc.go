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

// Package reason defines the machine-readable classification attached to
// every envelope diagnostic.
//
// A reason is a dot-separated, lower-case identifier whose first segment is
// the diagnostic kind:
//
//   - "structural.*"  - the shape of the envelope is wrong: an unknown
//     field is present, a required field is missing, or a value has the
//     wrong JSON type;
//   - "format.*"      - a field is present with the right type but fails its
//     pattern (message code, version, identifier, timestamp, number);
//   - "conditional.*" - a field is required or forbidden by the envelope's
//     status and that rule is violated.
//
// Transport adapters match on these prefixes (see package mapper).
package reason
