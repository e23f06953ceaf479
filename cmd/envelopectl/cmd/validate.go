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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/schema"
	"github.com/spf13/cobra"
)

// ErrInvalid is returned by validate when at least one envelope failed.
var ErrInvalid = errors.New("invalid envelope")

type report struct {
	File        string            `json:"file"`
	Valid       bool              `json:"valid"`
	Diagnostics []apis.Diagnostic `json:"diagnostics,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var (
		failFast bool
		asJSON   bool
	)
	c := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate JSON envelopes",
		Long: `Validate one or more JSON envelopes. With no file, or with "-", the
envelope is read from standard input.

Exits non-zero when any envelope is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			v := schema.New(
				schema.WithConfig(a.cfg),
				schema.WithFailFast(failFast),
				schema.WithLogger(a.log),
			)

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			failed := 0
			for _, name := range args {
				data, err := readInput(cmd.InOrStdin(), name)
				if err != nil {
					return err
				}
				res := v.ValidateJSON(data)
				if !res.Valid {
					failed++
				}
				rep := report{File: name, Valid: res.Valid, Diagnostics: res.Diagnostics}
				if asJSON {
					if err := enc.Encode(rep); err != nil {
						return fmt.Errorf("write report: %w", err)
					}
					continue
				}
				printReport(out, rep)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalid, failed, len(args))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first finding per envelope")
	c.Flags().BoolVar(&asJSON, "json", false, "print one JSON report per line")
	return c
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

func printReport(w io.Writer, rep report) {
	if rep.Valid {
		fmt.Fprintf(w, "%s: ok\n", rep.File)
		return
	}
	fmt.Fprintf(w, "%s: invalid\n", rep.File)
	for _, d := range rep.Diagnostics {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
