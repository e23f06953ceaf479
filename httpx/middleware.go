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

package httpx

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"time"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/schema"
	"github.com/rs/zerolog"
)

// Middleware validates the JSON envelopes written by a handler.
//
// The handler's response is buffered. Non-JSON responses pass through
// untouched. A valid envelope is forwarded as written. An invalid one is
// logged at warn level and either forwarded (the default) or, in Strict
// mode, replaced by an error envelope written with Writer.
type Middleware struct {
	Validator *schema.Validator
	Writer    Writer
	Strict    bool
	Logger    zerolog.Logger
	// Metrics is optional.
	Metrics *Metrics
}

// Wrap returns next wrapped by the middleware.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	v := m.Validator
	if v == nil {
		v = schema.New()
	}
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		buf := &bufferedWriter{header: make(http.Header)}
		next.ServeHTTP(buf, r)

		if !isJSON(buf.header.Get("Content-Type")) {
			buf.flush(rw)
			return
		}

		out := v.ValidateJSON(buf.body.Bytes())
		m.Metrics.Observe(out)
		if out.Valid {
			buf.flush(rw)
			return
		}

		first, _ := out.First()
		m.Logger.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", buf.statusCode()).
			Int("diagnostics", len(out.Diagnostics)).
			Str("field", first.Field).
			Str("reason", string(first.Reason)).
			Bool("replaced", m.Strict).
			Dur("duration", time.Since(start)).
			Msg("invalid_envelope")

		var de *denvelope.Error
		if !m.Strict || !errors.As(out.Err(), &de) {
			buf.flush(rw)
			return
		}
		m.Writer.WriteError(rw, de)
	})
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json"
}

// bufferedWriter holds a handler's response until it has been checked.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

func (b *bufferedWriter) flush(rw http.ResponseWriter) {
	dst := rw.Header()
	for k, vs := range b.header {
		dst[k] = vs
	}
	rw.WriteHeader(b.statusCode())
	_, _ = rw.Write(b.body.Bytes())
}
