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
	"encoding/json"
	"maps"
	"time"

	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/ident"
	"dirpx.dev/denvelope/schema"
)

// Option mutates an envelope under construction.
type Option func(*Envelope)

// WithData sets the raw payload.
func WithData(raw json.RawMessage) Option {
	return func(e *Envelope) { e.Data = raw }
}

// WithRequestID sets the request identifier.
func WithRequestID(id string) Option {
	return func(e *Envelope) { e.RequestID = id }
}

// WithTraceID sets the trace identifier.
func WithTraceID(id string) Option {
	return func(e *Envelope) { e.TraceID = &id }
}

// WithIdentifiers mints a fresh request identifier for cfg, and a trace
// identifier when the envelope's status requires one. Options applied
// later may still override either.
func WithIdentifiers(cfg config.Config) Option {
	return func(e *Envelope) {
		e.RequestID = ident.New(ident.Request, cfg).String()
		if e.Status == schema.StatusError || e.Status == schema.StatusPartial {
			t := ident.New(ident.Trace, cfg).String()
			e.TraceID = &t
		}
	}
}

// WithTimestamp sets the timestamp from t, in UTC.
func WithTimestamp(t time.Time) Option {
	return func(e *Envelope) { e.Timestamp = t.UTC().Format(time.RFC3339Nano) }
}

// WithVersion sets the envelope version.
func WithVersion(v string) Option {
	return func(e *Envelope) { e.Version = v }
}

// WithWarnings appends warnings.
func WithWarnings(ws ...Message) Option {
	return func(e *Envelope) { e.Warnings = append(e.Warnings, ws...) }
}

// WithPagination sets the pagination block.
func WithPagination(p Pagination) Option {
	return func(e *Envelope) { e.Pagination = &p }
}

// WithMetadata sets a copy of md as metadata.
func WithMetadata(md map[string]any) Option {
	return func(e *Envelope) { e.Metadata = maps.Clone(md) }
}

// WithResult appends per-item outcomes.
func WithResult(items ...ResultItem) Option {
	return func(e *Envelope) { e.Result = append(e.Result, items...) }
}
