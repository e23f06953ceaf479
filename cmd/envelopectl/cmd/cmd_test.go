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

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/envelope"
	"dirpx.dev/denvelope/ident"
	"dirpx.dev/denvelope/schema"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func validEnvelope(t *testing.T, cfg config.Config) []byte {
	t.Helper()
	b, err := json.Marshal(envelope.New(schema.StatusSuccess, envelope.Msg(code.Success, "ok"), envelope.WithIdentifiers(cfg)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return b
}

func TestValidate_File(t *testing.T) {
	p := writeFile(t, "ok.json", validEnvelope(t, config.Default()))
	out, _, err := run(t, "", "validate", p)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out != p+": ok\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestValidate_StdinInvalid(t *testing.T) {
	out, _, err := run(t, `{"status":"success","extra":1}`, "validate")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.HasPrefix(out, "-: invalid\n") || !strings.Contains(out, "extra: \"extra\" is not allowed (structural.not_allowed)") {
		t.Fatalf("output = %q", out)
	}
}

func TestValidate_FailFastJSON(t *testing.T) {
	out, _, err := run(t, `{"status":"success","extra":1}`, "validate", "--fail-fast", "--json")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	var rep report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rep.File != "-" || rep.Valid || len(rep.Diagnostics) != 1 || rep.Diagnostics[0].Field != "extra" {
		t.Fatalf("report = %+v", rep)
	}
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "validate", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want read error", err)
	}
}

func TestValidate_ConfigFileAndEnv(t *testing.T) {
	cfgPath := writeFile(t, "denvelope.toml", []byte("scope_identifier = \"billing\"\n"))
	billing := config.Config{ScopeIdentifier: "billing", RequestIDKind: "requestId", TraceIDKind: "traceId"}
	p := writeFile(t, "billing.json", validEnvelope(t, billing))

	if _, _, err := run(t, "", "validate", p); !errors.Is(err, ErrInvalid) {
		t.Fatalf("default scope must reject billing ids, err = %v", err)
	}
	if _, _, err := run(t, "", "--config", cfgPath, "validate", p); err != nil {
		t.Fatalf("file scope: %v", err)
	}

	t.Setenv("DENVELOPE_SCOPE_IDENTIFIER", "orders")
	if _, _, err := run(t, "", "--config", cfgPath, "validate", p); !errors.Is(err, ErrInvalid) {
		t.Fatalf("env must override file, err = %v", err)
	}
}

func TestMint(t *testing.T) {
	t.Setenv("DENVELOPE_SCOPE_IDENTIFIER", "orders")
	cfg := config.Config{ScopeIdentifier: "orders", RequestIDKind: "requestId", TraceIDKind: "traceId"}

	out, _, err := run(t, "", "mint", "trace", "-n", "3")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) != 3 {
		t.Fatalf("got %d ids: %q", len(lines), out)
	}
	for _, id := range lines {
		if !ident.Validate(id, ident.Trace, cfg) {
			t.Fatalf("minted %q does not validate", id)
		}
	}

	if _, _, err := run(t, "", "mint", "span"); err == nil {
		t.Fatal("unknown role must fail")
	}
	if _, _, err := run(t, "", "mint", "request", "-n", "0"); err == nil {
		t.Fatal("zero count must fail")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "envelopectl dev (envelope 1.0.0)\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, _, err := run(t, "", "--log-level", "loud", "version"); err == nil {
		t.Fatal("bad log level must fail")
	}
}
