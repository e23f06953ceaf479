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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/reason"
)

// checker accumulates diagnostics for a single run.
type checker struct {
	cfg      config.Config
	failFast bool
	diags    []apis.Diagnostic
}

func (c *checker) add(field string, r reason.Reason, msg string) {
	if c.full() {
		return
	}
	c.diags = append(c.diags, apis.Diagnostic{Field: field, Reason: r, Message: msg})
}

// full reports whether no more findings should be recorded.
func (c *checker) full() bool {
	return c.failFast && len(c.diags) > 0
}

// closed reports every key of obj that is not in allowed, in sorted order.
func (c *checker) closed(prefix string, obj map[string]any, allowed map[string]struct{}) {
	var unknown []string
	for k := range obj {
		if _, ok := allowed[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		p := join(prefix, k)
		c.add(p, reason.NotAllowed, quote(p)+" is not allowed")
	}
}

// requireString checks that v is a non-empty string and returns it.
func (c *checker) requireString(path string, v any) (string, bool) {
	s, ok := plain(v).(string)
	if !ok {
		c.add(path, reason.Type, quote(path)+" must be a string")
		return "", false
	}
	if s == "" {
		c.add(path, reason.Blank, quote(path)+" is not allowed to be empty")
		return "", false
	}
	return s, true
}

// requireObject checks that v is a JSON object and returns it.
func (c *checker) requireObject(path string, v any) (map[string]any, bool) {
	obj, ok := asObject(v)
	if !ok {
		c.add(path, reason.Type, quote(path)+" must be of type object")
		return nil, false
	}
	return obj, true
}

// requireArray checks that v is a JSON array and returns it.
func (c *checker) requireArray(path string, v any) ([]any, bool) {
	arr, ok := asArray(v)
	if !ok {
		c.add(path, reason.Type, quote(path)+" must be an array")
		return nil, false
	}
	return arr, true
}

// requireNumber checks that v is a finite number.
func (c *checker) requireNumber(path string, v any) bool {
	f, ok := asNumber(v)
	if !ok {
		c.add(path, reason.Type, quote(path)+" must be a number")
		return false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		c.add(path, reason.Number, quote(path)+" must be a finite number")
		return false
	}
	return true
}

// asObject returns v as a JSON object, reshaping Go values (structs, typed
// maps) through their JSON encoding.
func asObject(v any) (map[string]any, bool) {
	obj, ok := plain(v).(map[string]any)
	return obj, ok
}

// asArray returns v as a JSON array, reshaping typed slices as needed.
func asArray(v any) ([]any, bool) {
	arr, ok := plain(v).([]any)
	return arr, ok
}

// asNumber returns v as float64 for any Go or JSON numeric representation.
// NaN and infinities are returned as-is for the caller to reject.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			// Overflowing literals are still numbers, just not finite ones.
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return f, true
			}
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// plain returns v unchanged when it already has a decoded-JSON shape and
// otherwise reshapes it through encoding/json. Values that fail to encode
// are returned unchanged and fail later type checks.
func plain(v any) any {
	switch v.(type) {
	case nil, bool, string, json.Number, float64, map[string]any, []any:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return v
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return v
	}
	return out
}

// encodeErr reports why a Go value that plain left unchanged could not be
// reshaped through encoding/json. It is nil for values that encode.
func encodeErr(v any) error {
	switch v.(type) {
	case nil, bool, string, json.Number, float64, map[string]any, []any:
		return nil
	}
	_, err := json.Marshal(v)
	return err
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func index(prefix string, i int) string {
	return prefix + "." + strconv.Itoa(i)
}

func quote(path string) string {
	return fmt.Sprintf("%q", path)
}
