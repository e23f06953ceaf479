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
	"regexp"

	"github.com/google/uuid"
)

// uuidShapeRe accepts only the canonical hyphenated form. uuid.Parse alone
// would also accept the urn:uuid: prefix, braces and the 32-digit raw form.
var uuidShapeRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidUUID reports whether s is a canonical UUID with version 1..5 and the
// RFC 4122 variant. Hex digits are case-insensitive.
func ValidUUID(s string) bool {
	if !uuidShapeRe.MatchString(s) {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	if v := u.Version(); v < 1 || v > 5 {
		return false
	}
	return u.Variant() == uuid.RFC4122
}
