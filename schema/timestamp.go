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

package schema

import "time"

// timestampLayouts are the ISO 8601 profiles accepted for "timestamp",
// tried in order.
//
// Extended form: a calendar date alone, or followed by "T" or a single
// space and a time of hh, hh:mm or hh:mm:ss with optional fractional
// seconds ("." or ","). Basic form: yyyymmddThh, yyyymmddThhmm or
// yyyymmddThhmmss with optional fraction. Either form takes an optional
// offset of "Z", "+hh:mm", "+hhmm" or "+hh". A basic-form date without a
// time is not accepted, so that bare eight-digit numbers do not pass.
var timestampLayouts = buildTimestampLayouts()

func buildTimestampLayouts() []string {
	offsets := []string{"Z07:00", "Z0700", "Z07", ""}

	layouts := []string{time.RFC3339Nano}
	for _, sep := range []string{"T", " "} {
		for _, clock := range []string{"15:04:05.999999999", "15:04", "15"} {
			for _, off := range offsets {
				layouts = append(layouts, "2006-01-02"+sep+clock+off)
			}
		}
	}
	for _, clock := range []string{"150405.999999999", "1504", "15"} {
		for _, off := range offsets {
			layouts = append(layouts, "20060102T"+clock+off)
		}
	}
	return append(layouts, "2006-01-02")
}

// ValidTimestamp reports whether s is an ISO 8601 calendar date or
// date-time, with or without a UTC offset.
func ValidTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
