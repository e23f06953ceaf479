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

// Package httpx renders validation failures as error envelopes over HTTP
// and checks the envelopes an HTTP handler produces.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/adapter"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/envelope"
	"dirpx.dev/denvelope/mapper"
	"dirpx.dev/denvelope/schema"
	"google.golang.org/protobuf/encoding/protojson"
)

// Writer is a thin adapter that knows how to turn a denvelope.Error into an
// error envelope using the provided status mapper.
type Writer struct {
	// Mapper resolves the response status. Nil means the library defaults
	// of mapper.New.
	Mapper apis.Mapper
	// Config is used to mint the request and trace identifiers of the
	// written envelope. Nil means config.Shared.
	Config *config.Config
}

// defaultMapper is built on first use by a Writer without a Mapper.
var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, err := mapper.New()
	if err != nil {
		// no options, no prefixes to reject
		panic(err)
	}
	return m
})

func (w Writer) resolver() apis.Mapper {
	if w.Mapper != nil {
		return w.Mapper
	}
	return defaultMapper()
}

func (w Writer) config() config.Config {
	if w.Config != nil {
		return *w.Config
	}
	return config.Shared()
}

// WriteOutcome writes an error envelope for a failed outcome and reports
// whether anything was written. A valid outcome writes nothing.
func (w Writer) WriteOutcome(rw http.ResponseWriter, out schema.Outcome) bool {
	var de *denvelope.Error
	if !errors.As(out.Err(), &de) {
		return false
	}
	w.WriteError(rw, de)
	return true
}

// WriteError writes err as an error envelope. The HTTP status is resolved
// via the Mapper from the first diagnostic, or from the error's reason when
// it carries none. Diagnostics are rendered into data as a
// google.rpc.BadRequest.
//
// No redaction is performed: every diagnostic message is exposed as-is.
func (w Writer) WriteError(rw http.ResponseWriter, err *denvelope.Error) {
	if err == nil {
		return
	}

	st := statusOf(w.resolver(), err)

	c := err.Code
	if code.Validate(c) != nil {
		c = code.InternalError
	}
	msg := err.Message
	if strings.TrimSpace(msg) == "" {
		msg = fallbackMessage(st.HTTP)
	}
	opts := []envelope.Option{envelope.WithIdentifiers(w.config())}

	// protojson is required so that field names follow the proto json_name
	// mapping of google.rpc.BadRequest.
	if br := adapter.ToBadRequest(err.Diagnostics); br != nil {
		if b, mErr := protojson.Marshal(br); mErr == nil {
			opts = append(opts, envelope.WithData(b))
		}
	}
	env := envelope.New(schema.StatusError, envelope.Msg(c, msg), opts...)

	rw.Header().Set("Content-Type", "application/json")
	if env.TraceID != nil {
		rw.Header().Set(HeaderTraceID, *env.TraceID)
	}
	rw.Header().Set(HeaderRequestID, env.RequestID)
	rw.WriteHeader(st.HTTP)
	_ = json.NewEncoder(rw).Encode(env)
}

// Response headers echoing the identifiers of a written error envelope.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderTraceID   = "X-Trace-Id"
)

// fallbackMessage stands in for an empty error message, which the
// envelope rules reject.
func fallbackMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "envelope error"
}

func statusOf(m apis.Mapper, err *denvelope.Error) apis.Status {
	if len(err.Diagnostics) > 0 {
		return m.Resolve(err.Diagnostics)
	}
	return m.Status(err.Reason)
}
