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

package config

import (
	"sync"
	"sync/atomic"
)

var (
	sharedOnce sync.Once
	sharedCur  atomic.Pointer[Config]
)

func sharedPtr() *atomic.Pointer[Config] {
	sharedOnce.Do(func() {
		c := Default()
		sharedCur.Store(&c)
	})
	return &sharedCur
}

// Shared returns a snapshot of the process-wide configuration, initializing
// it with Default on first access.
func Shared() Config {
	return *sharedPtr().Load()
}

// SetShared replaces the whole process-wide configuration.
func SetShared(c Config) {
	sharedPtr().Store(&c)
}

// Reset restores the process-wide configuration to Default.
func Reset() {
	SetShared(Default())
}

// ScopeIdentifier returns the shared scope identifier.
func ScopeIdentifier() string { return Shared().ScopeIdentifier }

// RequestIDKind returns the shared request-id kind name.
func RequestIDKind() string { return Shared().RequestIDKind }

// TraceIDKind returns the shared trace-id kind name.
func TraceIDKind() string { return Shared().TraceIDKind }

// SetScopeIdentifier updates the shared scope identifier.
func SetScopeIdentifier(s string) { update(func(c *Config) { c.ScopeIdentifier = s }) }

// SetRequestIDKind updates the shared request-id kind name.
func SetRequestIDKind(s string) { update(func(c *Config) { c.RequestIDKind = s }) }

// SetTraceIDKind updates the shared trace-id kind name.
func SetTraceIDKind(s string) { update(func(c *Config) { c.TraceIDKind = s }) }

// update applies fn to a copy of the current snapshot and publishes it,
// retrying if another setter won the race.
func update(fn func(*Config)) {
	p := sharedPtr()
	for {
		old := p.Load()
		next := *old
		fn(&next)
		if p.CompareAndSwap(old, &next) {
			return
		}
	}
}
