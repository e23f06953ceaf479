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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Defaults applied when nothing else is configured.
const (
	DefaultScopeIdentifier = "unknown"
	DefaultRequestIDKind   = "requestId"
	DefaultTraceIDKind     = "traceId"
)

// Config is an immutable-by-convention settings value. It is passed by value.
type Config struct {
	// ScopeIdentifier is the first segment of every structured identifier,
	// naming the deployment or service that issued it.
	ScopeIdentifier string `env:"DENVELOPE_SCOPE_IDENTIFIER" toml:"scope_identifier" yaml:"scope_identifier"`
	// RequestIDKind is the middle segment expected in requestId values.
	RequestIDKind string `env:"DENVELOPE_REQUEST_ID_KIND" toml:"request_id_kind" yaml:"request_id_kind"`
	// TraceIDKind is the middle segment expected in traceId values.
	TraceIDKind string `env:"DENVELOPE_TRACE_ID_KIND" toml:"trace_id_kind" yaml:"trace_id_kind"`
}

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Default returns the documented defaults.
func Default() Config {
	return Config{
		ScopeIdentifier: DefaultScopeIdentifier,
		RequestIDKind:   DefaultRequestIDKind,
		TraceIDKind:     DefaultTraceIDKind,
	}
}

// FromEnv returns Default overlaid with any DENVELOPE_* environment
// variables that are set.
func FromEnv() (Config, error) {
	c := Default()
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load resolves configuration with precedence defaults < file < environment.
// An empty path skips the file layer.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		c = fc
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile reads a TOML (.toml) or YAML (.yaml, .yml) file on top of the
// defaults. Keys missing from the file keep their default values.
func LoadFile(path string) (Config, error) {
	c := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return Config{}, fmt.Errorf("decode toml %s: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("decode yaml %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return c, nil
}

// applyEnv overwrites fields whose environment variable is set.
func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
