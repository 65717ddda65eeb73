// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/descware/pyplan/pkg/cliutil"
	"github.com/descware/pyplan/pkg/descriptor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "eval DESCRIPTOR_FILE >PLAN.yml",
		Short: "Evaluate a descriptor in to a build plan",
		Long: "Evaluate a build descriptor: collect the filtered source file set, parse the " +
			"dependency manifest, and derive the requirement list.  The resulting plan is " +
			"written to stdout as YAML.",
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
			bs, err := yaml.Marshal(plan.Doc())
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write(bs); err != nil {
				return err
			}
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
