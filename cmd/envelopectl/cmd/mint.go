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
	"fmt"

	"dirpx.dev/denvelope/ident"
	"github.com/spf13/cobra"
)

func newMintCmd(a *app) *cobra.Command {
	var count int
	c := &cobra.Command{
		Use:       "mint request|trace",
		Short:     "Mint identifiers in the configured shape",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"request", "trace"},
		RunE: func(cmd *cobra.Command, args []string) error {
			role := ident.Request
			if args[0] == "trace" {
				role = ident.Trace
			}
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), ident.New(role, a.cfg))
			}
			return nil
		},
	}
	c.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers")
	return c
}
