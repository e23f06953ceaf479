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

package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/schema"
	"dirpx.dev/denvelope/version"
)

// Message is the structured {code, message} pair used for the main message
// and for warnings. Code is kept as a plain string so that an envelope with
// a malformed code still encodes and can be reported by the validator.
type Message struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Msg builds a Message from a well-known code.
func Msg(c code.Code, text string) Message {
	return Message{Code: string(c), Message: text}
}

// Pagination describes the page an envelope's data belongs to.
type Pagination struct {
	TotalItems   int `json:"totalItems"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
}

// ResultItem is one per-item outcome of a partial envelope. Data is always
// encoded; a nil Data encodes as null.
type ResultItem struct {
	Data         json.RawMessage `json:"data"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}

// Envelope is the response envelope.
type Envelope struct {
	Status     schema.Status   `json:"status"`
	Message    Message         `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	RequestID  string          `json:"requestId"`
	TraceID    *string         `json:"traceId,omitempty"`
	Timestamp  string          `json:"timestamp"`
	Warnings   []Message       `json:"warnings,omitempty"`
	Version    string          `json:"version"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
	Result     []ResultItem    `json:"result,omitempty"`
}

// now is replaced in tests.
var now = time.Now

// New builds an envelope. Timestamp defaults to the current UTC time in
// RFC 3339 form and Version to version.Default.
func New(status schema.Status, msg Message, opts ...Option) *Envelope {
	e := &Envelope{Status: status, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	if e.Timestamp == "" {
		e.Timestamp = now().UTC().Format(time.RFC3339Nano)
	}
	if e.Version == "" {
		e.Version = string(version.Default)
	}
	return e
}

// Decode parses a JSON envelope. Unknown keys are rejected; use
// schema.Validator for a full report of what is wrong with a document.
func Decode(data []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var e Envelope
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("envelope: decode: %w", err)
	}
	return &e, nil
}

// Validate checks e with v.
func (e *Envelope) Validate(v *schema.Validator) schema.Outcome {
	return v.Validate(e)
}
