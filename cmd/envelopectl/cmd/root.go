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

// Package cmd implements the envelopectl command tree.
package cmd

import (
	"fmt"
	"os"

	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the state resolved by the root command for its children.
type app struct {
	cfgFile  string
	logLevel string

	cfg config.Config
	log zerolog.Logger
}

// NewRootCmd builds the envelopectl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "envelopectl",
		Short: "Validate and inspect standardized response envelopes",
		Long: `envelopectl checks JSON response envelopes against the standard
envelope rules and mints identifiers in the configured shape.

Configuration is resolved as defaults < --config file < DENVELOPE_* environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.New("envelopectl", a.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.log = log
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.log.Debug().
				Str("scope", cfg.ScopeIdentifier).
				Str("request_kind", cfg.RequestIDKind).
				Str("trace_kind", cfg.TraceIDKind).
				Msg("config loaded")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newValidateCmd(a),
		newMintCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
