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
	"github.com/descware/pyplan/pkg/python/pep503"
	"github.com/descware/pyplan/pkg/resolver"
)

func init() {
	var flags struct {
		IndexServer string
	}
	cmd := &cobra.Command{
		Use:   "resolve [flags] DESCRIPTOR_FILE",
		Short: "Resolve the requirement list to pinned versions",
		Long: "Resolve the descriptor's requirement list against a package index, printing " +
			"one name==version pin per line.  When the plan calls for flattening, the pins " +
			"cover the transitive closure with duplicates merged; override build " +
			"requirements are injected for the dependencies they target.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			desc, err := descriptor.LoadFile(args[0])
			if err != nil {
				return err
			}
			plan, err := desc.Evaluate(ctx)
			if err != nil {
				return err
			}
			provider := resolver.IndexProvider{
				Client: pep503.Client{BaseURL: flags.IndexServer},
			}
			pins, err := resolver.Resolve(ctx, provider, plan.Requirements.Specs, resolver.Options{
				Flatten:   plan.Requirements.Flatten,
				Overrides: plan.Overrides.BuildRequirements(),
			})
			if err != nil {
				return err
			}
			for _, pin := range pins {
				if _, err := fmt.Fprintln(os.Stdout, pin.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.IndexServer, "index-server", pep503.PyPIBaseURL,
		"Resolve against the package index at `URL` (PEP 503 simple repository layout)")
	argparserDeps.AddCommand(cmd)
}
