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

// Package ident parses, validates and mints structured identifiers.
//
// A structured identifier has three dot-separated segments:
//
//	<scope>.<kind>.<uuid>
//
// e.g. "billing.requestId.22680f70-2f03-46c7-b230-14f4babbfbda". The scope
// names the issuing deployment, the kind names the identifier's role
// (request or trace) and the uuid is an RFC 4122 UUID of version 1 to 5 in
// canonical 8-4-4-4-12 form.
//
// Which scope and kind names are acceptable comes from a config.Config that
// callers pass explicitly.
package ident
