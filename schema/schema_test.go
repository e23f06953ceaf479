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
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/reason"
	"github.com/rs/zerolog"
)

const (
	testUUID      = "22680f70-2f03-46c7-b230-14f4babbfbda"
	testRequestID = "test.requestId." + testUUID
	testTraceID   = "test.traceId." + testUUID
)

func testConfig() config.Config {
	return config.Config{ScopeIdentifier: "test", RequestIDKind: "requestId", TraceIDKind: "traceId"}
}

func newValidator(opts ...Option) *Validator {
	return New(append([]Option{WithConfig(testConfig())}, opts...)...)
}

// minimal returns the smallest valid success envelope.
func minimal() map[string]any {
	return map[string]any{
		"status":    "success",
		"message":   map[string]any{"code": "SUCCESS", "message": "Success"},
		"requestId": testRequestID,
		"timestamp": "2022-01-01T00:00:00Z",
		"version":   "1.0.0",
	}
}

// full returns a success envelope using every optional field except
// traceId and result.
func full() map[string]any {
	e := minimal()
	e["data"] = nil
	e["warnings"] = map[string]any{"code": "TEST", "message": "This is a test."}
	e["metadata"] = map[string]any{"test": "test"}
	e["pagination"] = map[string]any{
		"totalItems":   1,
		"currentPage":  1,
		"itemsPerPage": 1,
		"totalPages":   1,
	}
	return e
}

func partialItems() []any {
	return []any{
		map[string]any{
			"data":         map[string]any{"id": "1", "name": "test.jpg"},
			"success":      false,
			"errorMessage": "Test - invalid format",
		},
		map[string]any{
			"data":    map[string]any{"id": "2", "name": "test.png"},
			"success": true,
		},
	}
}

func mustValid(t *testing.T, o Outcome) {
	t.Helper()
	if !o.Valid || len(o.Diagnostics) != 0 {
		t.Fatalf("want valid outcome, got %+v", o.Diagnostics)
	}
}

// mustFind asserts that o is invalid and carries a diagnostic for field with
// reason r.
func mustFind(t *testing.T, o Outcome, field string, r reason.Reason) apis.Diagnostic {
	t.Helper()
	if o.Valid {
		t.Fatalf("want invalid outcome for %s/%s, got valid", field, r)
	}
	for _, d := range o.Diagnostics {
		if d.Field == field && d.Reason == r {
			return d
		}
	}
	t.Fatalf("no diagnostic %s/%s in %+v", field, r, o.Diagnostics)
	return apis.Diagnostic{}
}

func TestValidate_MinimalSuccess(t *testing.T) {
	mustValid(t, newValidator().Validate(minimal()))
}

func TestValidate_AllOptionalFields(t *testing.T) {
	mustValid(t, newValidator().Validate(full()))
}

func TestValidate_MissingStatus(t *testing.T) {
	e := full()
	delete(e, "status")
	o := newValidator().Validate(e)
	mustFind(t, o, "status", reason.Required)
	if len(o.Diagnostics) != 1 {
		t.Fatalf("status rules must not run without status, got %+v", o.Diagnostics)
	}
}

func TestValidate_InvalidStatusSkipsStatusRules(t *testing.T) {
	e := minimal()
	e["status"] = "pending"
	e["traceId"] = "garbage"

	o := newValidator().Validate(e)
	mustFind(t, o, "status", reason.Enum)
	// unrelated field checks still run
	mustFind(t, o, "traceId", reason.Identifier)
	for _, d := range o.Diagnostics {
		if d.Reason.Kind() == reason.KindConditional {
			t.Fatalf("unexpected conditional diagnostic %+v", d)
		}
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	for _, f := range []string{"status", "message", "requestId", "timestamp", "version"} {
		t.Run(f, func(t *testing.T) {
			e := minimal()
			delete(e, f)
			d := mustFind(t, newValidator().Validate(e), f, reason.Required)
			if !strings.Contains(d.Message, "is required") {
				t.Fatalf("message = %q", d.Message)
			}
		})
	}
}

func TestValidate_SuccessForbidsTraceID(t *testing.T) {
	for _, v := range []any{testTraceID, "", nil, "junk", 42} {
		e := minimal()
		e["traceId"] = v
		o := newValidator().Validate(e)
		d := mustFind(t, o, "traceId", reason.ConditionalForbidden)
		if !strings.Contains(d.Message, "is not allowed") {
			t.Fatalf("message = %q", d.Message)
		}
		if len(o.Diagnostics) != 1 {
			t.Fatalf("traceId=%v: want a single diagnostic, got %+v", v, o.Diagnostics)
		}
	}
}

func TestValidate_ErrorRequiresTraceID(t *testing.T) {
	e := full()
	e["status"] = "error"

	d := mustFind(t, newValidator().Validate(e), "traceId", reason.ConditionalRequired)
	if d.Message != "\"traceId\" is required" {
		t.Fatalf("message = %q", d.Message)
	}

	e["traceId"] = testTraceID
	mustValid(t, newValidator().Validate(e))
}

func TestValidate_ErrorInvalidTraceIDs(t *testing.T) {
	for _, v := range []string{
		"invalid.traceId." + testUUID,
		"test.traceId.22680f70-2f03-46c7-b230-14f4b*bbfbda",
		"test.traceId.22680f70-2f03-46c7-b230-14f4bbBfbda",
		"test.requestId." + testUUID,
		"invalid.traceId",
	} {
		e := minimal()
		e["status"] = "error"
		e["traceId"] = v
		d := mustFind(t, newValidator().Validate(e), "traceId", reason.Identifier)
		if d.Message != "Invalid trace id" {
			t.Fatalf("message = %q", d.Message)
		}
	}
}

func TestValidate_Partial(t *testing.T) {
	e := full()
	e["status"] = "partial"

	o := newValidator().Validate(e)
	mustFind(t, o, "result", reason.ConditionalRequired)
	mustFind(t, o, "traceId", reason.ConditionalRequired)

	e["traceId"] = testTraceID
	o = newValidator().Validate(e)
	mustFind(t, o, "result", reason.ConditionalRequired)

	e["result"] = partialItems()
	mustValid(t, newValidator().Validate(e))

	delete(e, "traceId")
	mustFind(t, newValidator().Validate(e), "traceId", reason.ConditionalRequired)
}

func TestValidate_PartialEmptyResultAccepted(t *testing.T) {
	e := minimal()
	e["status"] = "partial"
	e["traceId"] = testTraceID
	e["result"] = []any{}
	mustValid(t, newValidator().Validate(e))
}

func TestValidate_PartialResultItems(t *testing.T) {
	e := minimal()
	e["status"] = "partial"
	e["traceId"] = testTraceID
	e["result"] = []any{
		map[string]any{"success": "yes", "extra": 1},
		"not an object",
		map[string]any{"data": nil, "success": true, "errorMessage": 5},
	}

	o := newValidator().Validate(e)
	mustFind(t, o, "result.0.extra", reason.NotAllowed)
	mustFind(t, o, "result.0.data", reason.Required)
	mustFind(t, o, "result.0.success", reason.Type)
	mustFind(t, o, "result.1", reason.Type)
	mustFind(t, o, "result.2.errorMessage", reason.Type)
}

func TestValidate_ResultItemsIgnoredOutsidePartial(t *testing.T) {
	e := minimal()
	e["result"] = []any{"anything"}
	mustValid(t, newValidator().Validate(e))

	e["result"] = "not a list"
	mustFind(t, newValidator().Validate(e), "result", reason.Type)
}

func TestValidate_UnknownField(t *testing.T) {
	e := full()
	e["test"] = "This is a additional test field"

	o := newValidator().Validate(e)
	d := mustFind(t, o, "test", reason.NotAllowed)
	if !strings.Contains(d.Message, "is not allowed") {
		t.Fatalf("message = %q", d.Message)
	}
	if o.Diagnostics[0] != d {
		t.Fatalf("structural findings must come first, got %+v", o.Diagnostics)
	}
}

func TestValidate_UnknownFieldsSorted(t *testing.T) {
	e := minimal()
	e["zeta"] = 1
	e["alpha"] = 2
	o := newValidator().Validate(e)
	if len(o.Diagnostics) != 2 || o.Diagnostics[0].Field != "alpha" || o.Diagnostics[1].Field != "zeta" {
		t.Fatalf("diagnostics = %+v", o.Diagnostics)
	}
}

func TestValidate_Message(t *testing.T) {
	tests := []struct {
		name  string
		msg   any
		field string
		r     reason.Reason
	}{
		{"not object", "hello", "message", reason.Type},
		{"lower code", map[string]any{"code": "success", "message": "x"}, "message.code", reason.Pattern},
		{"double underscore", map[string]any{"code": "INVALID__CODE", "message": "x"}, "message.code", reason.Pattern},
		{"empty code", map[string]any{"code": "", "message": "x"}, "message.code", reason.Blank},
		{"missing code", map[string]any{"message": "x"}, "message.code", reason.Required},
		{"missing text", map[string]any{"code": "OK"}, "message.message", reason.Required},
		{"empty text", map[string]any{"code": "OK", "message": ""}, "message.message", reason.Blank},
		{"text not string", map[string]any{"code": "OK", "message": 1}, "message.message", reason.Type},
		{"extra key", map[string]any{"code": "OK", "message": "x", "hint": "y"}, "message.hint", reason.NotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := minimal()
			e["message"] = tt.msg
			d := mustFind(t, newValidator().Validate(e), tt.field, tt.r)
			if tt.r == reason.Pattern && d.Message != "Invalid message code" {
				t.Fatalf("message = %q", d.Message)
			}
		})
	}
}

func TestValidate_RequestID(t *testing.T) {
	for _, v := range []any{
		"other.requestId." + testUUID,
		"test.traceId." + testUUID,
		"test.requestId.not-a-uuid",
		"test.requestId",
	} {
		e := minimal()
		e["requestId"] = v
		d := mustFind(t, newValidator().Validate(e), "requestId", reason.Identifier)
		if d.Message != "Invalid request id" {
			t.Fatalf("message = %q", d.Message)
		}
	}

	e := minimal()
	e["requestId"] = 12
	mustFind(t, newValidator().Validate(e), "requestId", reason.Type)
}

func TestValidate_Version(t *testing.T) {
	for _, v := range []string{"01.2.3", "1.2", "1.2.3.4", "1.0"} {
		e := minimal()
		e["version"] = v
		d := mustFind(t, newValidator().Validate(e), "version", reason.Pattern)
		if d.Message != "Invalid version" {
			t.Fatalf("message = %q", d.Message)
		}
	}
	e := minimal()
	e["version"] = "0.0.0"
	mustValid(t, newValidator().Validate(e))
}

func TestValidate_Timestamp(t *testing.T) {
	valid := []string{
		"2022-01-01T00:00:00Z",
		"2022-01-01T00:00:00.123Z",
		"2022-01-01T00:00:00+02:00",
		"2022-01-01T00:00:00.123456789-0530",
		"2022-01-01T00:00",
		"2022-01-01T00:00:00",
		"2022-01-01",
		"2022-01-01T00:00:00+01",
		"2022-01-01T00:00:00,5Z",
		"2022-01-01 00:00:00Z",
		"2022-01-01 00:00:00.250+02:00",
		"2022-01-01T10Z",
		"2022-01-01T10",
		"20220101T000000Z",
		"20220101T0000+0100",
		"20220101T101530.5-05",
	}
	for _, ts := range valid {
		e := minimal()
		e["timestamp"] = ts
		if o := newValidator().Validate(e); !o.Valid {
			t.Fatalf("timestamp %q rejected: %+v", ts, o.Diagnostics)
		}
	}

	invalid := []string{"yesterday", "2022-13-01T00:00:00Z", "2022-01-01T25:00:00Z", "01/01/2022", "1641000000", "20220101", "2022-01-01  00:00Z", "2022-01-01T00:00:00+1"}
	for _, ts := range invalid {
		e := minimal()
		e["timestamp"] = ts
		mustFind(t, newValidator().Validate(e), "timestamp", reason.Timestamp)
	}
}

func TestValidate_Warnings(t *testing.T) {
	e := minimal()
	e["warnings"] = []any{
		map[string]any{"code": "DEPRECATED", "message": "use v2"},
		map[string]any{"code": "SLOW", "message": "took a while"},
	}
	mustValid(t, newValidator().Validate(e))

	e["warnings"] = []any{map[string]any{"code": "ok", "message": "x"}}
	mustFind(t, newValidator().Validate(e), "warnings.0.code", reason.Pattern)

	e["warnings"] = "invalid warnings"
	d := mustFind(t, newValidator().Validate(e), "warnings", reason.Type)
	if !strings.Contains(d.Message, "warnings") {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestValidate_Pagination(t *testing.T) {
	e := minimal()
	e["pagination"] = "invalidate pagination"
	d := mustFind(t, newValidator().Validate(e), "pagination", reason.Type)
	if !strings.Contains(d.Message, "pagination") {
		t.Fatalf("message = %q", d.Message)
	}

	e["pagination"] = map[string]any{"totalItems": 1, "currentPage": "1", "itemsPerPage": math.Inf(1)}
	o := newValidator().Validate(e)
	mustFind(t, o, "pagination.currentPage", reason.Type)
	mustFind(t, o, "pagination.itemsPerPage", reason.Number)
	mustFind(t, o, "pagination.totalPages", reason.Required)

	// integer-ness is not enforced
	e["pagination"] = map[string]any{"totalItems": 1.5, "currentPage": 1, "itemsPerPage": 10, "totalPages": 1}
	mustValid(t, newValidator().Validate(e))
}

func TestValidate_MetadataAndData(t *testing.T) {
	e := minimal()
	e["metadata"] = map[string]any{"nested": map[string]any{"a": []any{1, 2}}}
	e["data"] = []any{"any", 1, nil}
	mustValid(t, newValidator().Validate(e))

	e["metadata"] = []any{}
	mustFind(t, newValidator().Validate(e), "metadata", reason.Type)
}

func TestValidate_NotAnObject(t *testing.T) {
	for _, v := range []any{nil, "envelope", 3, []any{}} {
		o := newValidator().Validate(v)
		mustFind(t, o, "", reason.Type)
	}
}

func TestValidate_UnencodableCandidate(t *testing.T) {
	type envelopeLike struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	o := newValidator().Validate(envelopeLike{Status: "success", Data: json.RawMessage(`{broken`)})
	if len(o.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", o.Diagnostics)
	}
	d := mustFind(t, o, "", reason.Decode)
	if !strings.Contains(d.Message, "cannot be encoded as JSON") {
		t.Fatalf("message = %q", d.Message)
	}

	mustFind(t, newValidator().Validate(map[string]chan int{"status": nil}), "", reason.Decode)
}

func TestValidate_CollectAllVsFailFast(t *testing.T) {
	e := minimal()
	e["extra"] = true
	e["version"] = "1.0"
	e["status"] = "error"

	all := newValidator().Validate(e)
	if len(all.Diagnostics) != 3 {
		t.Fatalf("collect-all: want 3 diagnostics, got %+v", all.Diagnostics)
	}
	wantOrder := []string{"extra", "version", "traceId"}
	for i, f := range wantOrder {
		if all.Diagnostics[i].Field != f {
			t.Fatalf("diagnostic %d = %q, want %q", i, all.Diagnostics[i].Field, f)
		}
	}

	first := newValidator(WithFailFast(true)).Validate(e)
	if len(first.Diagnostics) != 1 || first.Diagnostics[0] != all.Diagnostics[0] {
		t.Fatalf("fail-fast: got %+v", first.Diagnostics)
	}
}

func TestValidateJSON(t *testing.T) {
	v := newValidator()
	doc := []byte(`{"status":"success","message":{"code":"SUCCESS","message":"Success"},"requestId":"` + testRequestID + `","timestamp":"2022-01-01T00:00:00Z","version":"1.0.0","pagination":{"totalItems":10,"currentPage":1,"itemsPerPage":5,"totalPages":2}}`)
	mustValid(t, v.ValidateJSON(doc))

	mustFind(t, v.ValidateJSON([]byte("{")), "", reason.Decode)
	mustFind(t, v.ValidateJSON([]byte("{} {}")), "", reason.Decode)
	mustFind(t, v.ValidateJSON([]byte(`{"pagination":{"totalItems":1e400}}`)), "pagination.totalItems", reason.Number)

	// Validate dispatches raw bytes to ValidateJSON.
	mustValid(t, v.Validate(doc))
}

type typedMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type typedEnvelope struct {
	Status    Status       `json:"status"`
	Message   typedMessage `json:"message"`
	RequestID string       `json:"requestId"`
	TraceID   *string      `json:"traceId,omitempty"`
	Timestamp string       `json:"timestamp"`
	Version   string       `json:"version"`
}

func TestValidate_TypedValues(t *testing.T) {
	env := typedEnvelope{
		Status:    StatusSuccess,
		Message:   typedMessage{Code: "SUCCESS", Message: "ok"},
		RequestID: testRequestID,
		Timestamp: "2022-01-01T00:00:00Z",
		Version:   "1.0.0",
	}
	mustValid(t, newValidator().Validate(env))
	mustValid(t, newValidator().Validate(&env))

	tr := ""
	env.TraceID = &tr
	mustFind(t, newValidator().Validate(env), "traceId", reason.ConditionalForbidden)

	// typed values nested in a plain map
	e := minimal()
	e["status"] = StatusSuccess
	e["message"] = typedMessage{Code: "SUCCESS", Message: "ok"}
	mustValid(t, newValidator().Validate(e))
}

func TestValidate_SharedConfigFallback(t *testing.T) {
	t.Cleanup(config.Reset)
	config.Reset()

	v := New()
	mustFind(t, v.Validate(minimal()), "requestId", reason.Identifier)

	config.SetScopeIdentifier("test")
	mustValid(t, v.Validate(minimal()))

	config.SetRequestIDKind("req")
	mustFind(t, v.Validate(minimal()), "requestId", reason.Identifier)
}

func TestValidate_ConfigChangeFlipsIdentifier(t *testing.T) {
	cfg := testConfig()
	cfg.ScopeIdentifier = "prod"
	mustFind(t, New(WithConfig(cfg)).Validate(minimal()), "requestId", reason.Identifier)
}

func TestOutcome_Err(t *testing.T) {
	if err := newValidator().Validate(minimal()).Err(); err != nil {
		t.Fatalf("valid outcome must have nil Err, got %v", err)
	}

	e := minimal()
	e["status"] = "error"
	err := newValidator().Validate(e).Err()

	var de *denvelope.Error
	if !errors.As(err, &de) {
		t.Fatalf("Err() = %T, want *denvelope.Error", err)
	}
	if de.Code != "VALIDATION_FAILED" || de.Reason != reason.ConditionalRequired {
		t.Fatalf("Err() = %+v", de)
	}
	if len(de.Diagnostics) != 1 || de.Diagnostics[0].Field != "traceId" {
		t.Fatalf("diagnostics = %+v", de.Diagnostics)
	}
}

func TestValidate_LogsRejections(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)

	e := minimal()
	e["status"] = "error"
	newValidator(WithLogger(l)).Validate(e)

	out := buf.String()
	for _, want := range []string{"envelope rejected", "\"status\":\"error\"", "conditional.required"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}

	buf.Reset()
	newValidator(WithLogger(l)).Validate(minimal())
	if buf.Len() != 0 {
		t.Fatalf("valid envelopes must not be logged, got %q", buf.String())
	}
}

func TestValidate_Concurrent(t *testing.T) {
	v := newValidator()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := minimal()
			if i%2 == 0 {
				e["traceId"] = testTraceID
				if v.Validate(e).Valid {
					t.Errorf("success with traceId must fail")
				}
				return
			}
			if !v.Validate(e).Valid {
				t.Errorf("minimal envelope must pass")
			}
		}(i)
	}
	wg.Wait()
}

func TestStatusRuleTable(t *testing.T) {
	for _, s := range Statuses() {
		req, forb := RequiredFor(s), ForbiddenFor(s)
		for _, f := range req {
			for _, g := range forb {
				if f == g {
					t.Fatalf("status %q both requires and forbids %q", s, f)
				}
			}
		}
	}
	if got := ForbiddenFor(StatusSuccess); len(got) != 1 || got[0] != "traceId" {
		t.Fatalf("ForbiddenFor(success) = %v", got)
	}
	if got := RequiredFor(StatusPartial); len(got) != 2 {
		t.Fatalf("RequiredFor(partial) = %v", got)
	}
	if len(Fields()) != 11 {
		t.Fatalf("Fields() = %v", Fields())
	}
}
