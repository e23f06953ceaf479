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

import (
	"slices"

	"dirpx.dev/denvelope/reason"
)

// Status is the envelope discriminant.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusPartial Status = "partial"
)

// Statuses lists every accepted status value.
func Statuses() []Status {
	return []Status{StatusSuccess, StatusError, StatusPartial}
}

func parseStatus(v any) (Status, bool) {
	s, ok := plain(v).(string)
	if !ok {
		return "", false
	}
	switch st := Status(s); st {
	case StatusSuccess, StatusError, StatusPartial:
		return st, true
	default:
		return "", false
	}
}

// ruleSet is the status-dependent layer applied after the base passes.
type ruleSet struct {
	// require lists fields that must be present.
	require []string
	// forbid lists fields that must be absent. Presence of any value,
	// including null or "", is a violation.
	forbid []string
	// items validates each element of an array field.
	items map[string]func(c *checker, path string, v any)
}

func (r ruleSet) forbids(name string) bool {
	return slices.Contains(r.forbid, name)
}

// statusRules maps each status to its additional rules.
var statusRules = map[Status]ruleSet{
	StatusSuccess: {
		forbid: []string{FieldTraceID},
	},
	StatusError: {
		require: []string{FieldTraceID},
	},
	StatusPartial: {
		require: []string{FieldResult, FieldTraceID},
		items: map[string]func(*checker, string, any){
			FieldResult: checkResultItem,
		},
	},
}

// RequiredFor returns the fields that the status rules add as required.
func RequiredFor(s Status) []string {
	return slices.Clone(statusRules[s].require)
}

// ForbiddenFor returns the fields that the status rules forbid.
func ForbiddenFor(s Status) []string {
	return slices.Clone(statusRules[s].forbid)
}

func (c *checker) applyRules(obj map[string]any, rules ruleSet) {
	for _, name := range rules.require {
		if _, present := obj[name]; !present {
			c.add(name, reason.ConditionalRequired, quote(name)+" is required")
		}
	}
	for _, name := range rules.forbid {
		if _, present := obj[name]; present {
			c.add(name, reason.ConditionalForbidden, quote(name)+" is not allowed")
		}
	}
	for _, name := range sortedKeys(rules.items) {
		arr, ok := asArray(obj[name])
		if !ok {
			// absent or wrong type: already reported
			continue
		}
		check := rules.items[name]
		for i, item := range arr {
			if c.full() {
				return
			}
			check(c, index(name, i), item)
		}
	}
}

func sortedKeys(m map[string]func(*checker, string, any)) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
