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
	"errors"

	"dirpx.dev/denvelope/schema"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts envelopes checked by Middleware.
type Metrics struct {
	envelopes   *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A
// collector already registered under the same name is reused, so several
// middlewares can share one registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	envelopes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "denvelope",
			Subsystem: "http",
			Name:      "envelopes_total",
			Help:      "Response envelopes checked, by result.",
		},
		[]string{"result"},
	)
	diagnostics := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "denvelope",
			Subsystem: "http",
			Name:      "diagnostics_total",
			Help:      "Envelope diagnostics reported, by reason.",
		},
		[]string{"reason"},
	)

	var err error
	if envelopes, err = register(reg, envelopes); err != nil {
		return nil, err
	}
	if diagnostics, err = register(reg, diagnostics); err != nil {
		return nil, err
	}
	return &Metrics{envelopes: envelopes, diagnostics: diagnostics}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

// Observe records one checked envelope. A nil Metrics records nothing.
func (m *Metrics) Observe(out schema.Outcome) {
	if m == nil {
		return
	}
	if out.Valid {
		m.envelopes.WithLabelValues("valid").Inc()
		return
	}
	m.envelopes.WithLabelValues("invalid").Inc()
	for _, d := range out.Diagnostics {
		m.diagnostics.WithLabelValues(string(d.Reason)).Inc()
	}
}
