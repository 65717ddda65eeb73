// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/descware/pyplan/pkg/cliutil"
	"github.com/descware/pyplan/pkg/descriptor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list DESCRIPTOR_FILE",
		Short: "List the pre-flatten requirement specifiers",
		Long: "List the descriptor's requirement specifiers in resolution order: the " +
			"manifest's build-system requirements first, then the runtime dependencies, " +
			"exactly as declared and without deduplication.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := descriptor.LoadFile(args[0])
			if err != nil {
				return err
			}
			plan, err := desc.Evaluate(cmd.Context())
			if err != nil {
				return err
			}
			// Parse purely for validation; what is printed is what was
			// declared.
			if _, err := plan.Requirements.Parsed(); err != nil {
				return err
			}
			for _, spec := range plan.Requirements.Specs {
				if _, err := fmt.Fprintln(os.Stdout, spec); err != nil {
					return err
				}
			}
			return nil
		},
	}
	argparserDeps.AddCommand(cmd)
}
