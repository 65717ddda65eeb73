// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/descware/pyplan/pkg/cliutil"
	"github.com/descware/pyplan/pkg/descriptor"
	"github.com/descware/pyplan/pkg/python"
)

func init() {
	var flags struct {
		Interpreter string
	}
	cmd := &cobra.Command{
		Use:   "check [flags] DESCRIPTOR_FILE",
		Short: "Import-check a descriptor's declared modules",
		Long: "Verify an installed package by importing each module the descriptor " +
			"declares, using the given Python interpreter.  Any import failure is an " +
			"error.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			desc, err := descriptor.LoadFile(args[0])
			if err != nil {
				return err
			}
			runtime, err := python.NewRuntime(flags.Interpreter)
			if err != nil {
				return err
			}
			return runtime.CheckImports(ctx, desc.Imports)
		},
	}
	cmd.Flags().StringVar(&flags.Interpreter, "python", "python3",
		"The Python interpreter to import with")
	argparser.AddCommand(cmd)
}
