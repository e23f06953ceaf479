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
	"sort"

	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/reason"
	"github.com/rs/zerolog"
)

// Validator checks candidate envelopes. Build it with New.
type Validator struct {
	cfg      *config.Config
	failFast bool
	log      zerolog.Logger
}

// Option configures a Validator at build time.
type Option func(*Validator)

// WithConfig pins the identifier settings used by every run. Without it the
// validator reads config.Shared per run.
func WithConfig(c config.Config) Option {
	return func(v *Validator) { v.cfg = &c }
}

// WithFailFast makes a run stop at the first finding.
func WithFailFast(on bool) Option {
	return func(v *Validator) { v.failFast = on }
}

// WithLogger sets the logger used to report rejected envelopes at debug
// level. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) { v.log = l }
}

// New builds an immutable Validator.
func New(opts ...Option) *Validator {
	v := &Validator{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Config returns the settings the next run would use.
func (v *Validator) Config() config.Config {
	if v.cfg != nil {
		return *v.cfg
	}
	return config.Shared()
}

// Validate checks candidate and reports every finding (or the first one in
// fail-fast mode).
//
// candidate is normally a map[string]any produced by decoding JSON. Raw
// JSON ([]byte, json.RawMessage) is decoded first, and any other value is
// reshaped through its JSON encoding, so typed envelopes can be validated
// too. A candidate that is not a JSON object fails with a single
// structural diagnostic.
func (v *Validator) Validate(candidate any) Outcome {
	switch raw := candidate.(type) {
	case []byte:
		return v.ValidateJSON(raw)
	case json.RawMessage:
		return v.ValidateJSON(raw)
	}

	c := &checker{cfg: v.Config(), failFast: v.failFast}
	obj, ok := asObject(candidate)
	if !ok {
		if err := encodeErr(candidate); err != nil {
			c.add("", reason.Decode, "envelope cannot be encoded as JSON: "+err.Error())
		} else {
			c.add("", reason.Type, "envelope must be of type object")
		}
		return v.finish(c, nil)
	}
	c.run(obj)
	return v.finish(c, obj)
}

// ValidateJSON decodes data and validates the result. Numbers are decoded
// as json.Number so that no precision is lost before the numeric checks.
func (v *Validator) ValidateJSON(data []byte) Outcome {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		c := &checker{failFast: v.failFast}
		c.add("", reason.Decode, "envelope is not valid JSON: "+err.Error())
		return v.finish(c, nil)
	}
	if dec.More() {
		c := &checker{failFast: v.failFast}
		c.add("", reason.Decode, "envelope has trailing data after the JSON value")
		return v.finish(c, nil)
	}
	return v.Validate(doc)
}

func (v *Validator) finish(c *checker, obj map[string]any) Outcome {
	if len(c.diags) == 0 {
		return Outcome{Valid: true}
	}
	if e := v.log.Debug(); e.Enabled() {
		status, _ := obj["status"].(string)
		fields := make([]string, 0, len(c.diags))
		for _, d := range c.diags {
			fields = append(fields, d.Field)
		}
		sort.Strings(fields)
		e.Str("status", status).
			Int("diagnostics", len(c.diags)).
			Strs("fields", fields).
			Str("first_reason", string(c.diags[0].Reason)).
			Msg("envelope rejected")
	}
	return Outcome{Valid: false, Diagnostics: c.diags}
}
