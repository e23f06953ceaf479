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
	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/ident"
	"dirpx.dev/denvelope/reason"
	"dirpx.dev/denvelope/version"
)

// Envelope field names.
const (
	FieldStatus     = "status"
	FieldMessage    = "message"
	FieldData       = "data"
	FieldRequestID  = "requestId"
	FieldTraceID    = "traceId"
	FieldTimestamp  = "timestamp"
	FieldWarnings   = "warnings"
	FieldVersion    = "version"
	FieldPagination = "pagination"
	FieldMetadata   = "metadata"
	FieldResult     = "result"
)

// Messages kept stable for clients that match on them.
const (
	msgInvalidMessageCode = "Invalid message code"
	msgInvalidRequestID   = "Invalid request id"
	msgInvalidTraceID     = "Invalid trace id"
	msgInvalidVersion     = "Invalid version"
)

// field declares one envelope key. check runs only when the key is present.
type field struct {
	name     string
	required bool
	check    func(c *checker, path string, v any)
}

// envelopeFields is the declared, ordered envelope shape.
var envelopeFields = []field{
	{FieldStatus, true, checkStatus},
	{FieldMessage, true, checkMessage},
	{FieldData, false, nil},
	{FieldRequestID, true, checkIdentifier(ident.Request, msgInvalidRequestID)},
	{FieldTraceID, false, checkIdentifier(ident.Trace, msgInvalidTraceID)},
	{FieldTimestamp, true, checkTimestamp},
	{FieldWarnings, false, checkWarnings},
	{FieldVersion, true, checkVersion},
	{FieldPagination, false, checkPagination},
	{FieldMetadata, false, checkMetadata},
	{FieldResult, false, checkResultBase},
}

var (
	envelopeKeys   = keySet(FieldStatus, FieldMessage, FieldData, FieldRequestID, FieldTraceID, FieldTimestamp, FieldWarnings, FieldVersion, FieldPagination, FieldMetadata, FieldResult)
	messageKeys    = keySet("code", "message")
	paginationKeys = keySet("totalItems", "currentPage", "itemsPerPage", "totalPages")
	resultItemKeys = keySet("data", "success", "errorMessage")
)

// Fields returns the declared envelope keys in declaration order.
func Fields() []string {
	out := make([]string, len(envelopeFields))
	for i, f := range envelopeFields {
		out[i] = f.name
	}
	return out
}

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// run performs the three validation passes over obj.
func (c *checker) run(obj map[string]any) {
	c.closed("", obj, envelopeKeys)

	status, statusOK := parseStatus(obj[FieldStatus])
	var rules ruleSet
	if statusOK {
		rules = statusRules[status]
	}

	for _, f := range envelopeFields {
		if c.full() {
			return
		}
		v, present := obj[f.name]
		if !present {
			if f.required {
				c.add(f.name, reason.Required, quote(f.name)+" is required")
			}
			continue
		}
		if rules.forbids(f.name) {
			// reported once by the status pass
			continue
		}
		if f.check != nil {
			f.check(c, f.name, v)
		}
	}

	if statusOK {
		c.applyRules(obj, rules)
	}
}

func checkStatus(c *checker, path string, v any) {
	s, ok := plain(v).(string)
	if !ok {
		c.add(path, reason.Type, quote(path)+" must be a string")
		return
	}
	if _, ok := parseStatus(s); !ok {
		c.add(path, reason.Enum, quote(path)+" must be one of [success, error, partial]")
	}
}

func checkMessage(c *checker, path string, v any) {
	obj, ok := c.requireObject(path, v)
	if !ok {
		return
	}
	c.closed(path, obj, messageKeys)

	codePath := join(path, "code")
	if raw, present := obj["code"]; !present {
		c.add(codePath, reason.Required, quote(codePath)+" is required")
	} else if s, ok := c.requireString(codePath, raw); ok && !code.Valid(s) {
		c.add(codePath, reason.Pattern, msgInvalidMessageCode)
	}

	textPath := join(path, "message")
	if raw, present := obj["message"]; !present {
		c.add(textPath, reason.Required, quote(textPath)+" is required")
	} else {
		c.requireString(textPath, raw)
	}
}

func checkIdentifier(role ident.Role, msg string) func(*checker, string, any) {
	return func(c *checker, path string, v any) {
		s, ok := c.requireString(path, v)
		if !ok {
			return
		}
		if !ident.Validate(s, role, c.cfg) {
			c.add(path, reason.Identifier, msg)
		}
	}
}

func checkTimestamp(c *checker, path string, v any) {
	s, ok := c.requireString(path, v)
	if !ok {
		return
	}
	if !ValidTimestamp(s) {
		c.add(path, reason.Timestamp, quote(path)+" must be in ISO 8601 date format")
	}
}

// checkWarnings accepts a single message object or a list of them.
func checkWarnings(c *checker, path string, v any) {
	if arr, ok := asArray(v); ok {
		for i, item := range arr {
			if c.full() {
				return
			}
			checkMessage(c, index(path, i), item)
		}
		return
	}
	if _, ok := asObject(v); !ok {
		c.add(path, reason.Type, quote(path)+" must be a message object or an array of message objects")
		return
	}
	checkMessage(c, path, v)
}

func checkVersion(c *checker, path string, v any) {
	s, ok := c.requireString(path, v)
	if !ok {
		return
	}
	if !version.Valid(s) {
		c.add(path, reason.Pattern, msgInvalidVersion)
	}
}

func checkPagination(c *checker, path string, v any) {
	obj, ok := c.requireObject(path, v)
	if !ok {
		return
	}
	c.closed(path, obj, paginationKeys)
	for _, k := range []string{"totalItems", "currentPage", "itemsPerPage", "totalPages"} {
		p := join(path, k)
		raw, present := obj[k]
		if !present {
			c.add(p, reason.Required, quote(p)+" is required")
			continue
		}
		c.requireNumber(p, raw)
	}
}

func checkMetadata(c *checker, path string, v any) {
	c.requireObject(path, v)
}

// checkResultBase only checks the container; items are checked by the
// partial status rules.
func checkResultBase(c *checker, path string, v any) {
	c.requireArray(path, v)
}

func checkResultItem(c *checker, path string, v any) {
	obj, ok := c.requireObject(path, v)
	if !ok {
		return
	}
	c.closed(path, obj, resultItemKeys)

	if _, present := obj["data"]; !present {
		p := join(path, "data")
		c.add(p, reason.Required, quote(p)+" is required")
	}

	p := join(path, "success")
	if raw, present := obj["success"]; !present {
		c.add(p, reason.Required, quote(p)+" is required")
	} else if _, ok := plain(raw).(bool); !ok {
		c.add(p, reason.Type, quote(p)+" must be a boolean")
	}

	if raw, present := obj["errorMessage"]; present {
		c.requireString(join(path, "errorMessage"), raw)
	}
}
