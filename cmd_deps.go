// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/descware/pyplan/pkg/cliutil"
)

var argparserDeps = &cobra.Command{
	Use:   "deps {[flags]|SUBCOMMAND...}",
	Short: "Work with a descriptor's dependency requirements",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserDeps)
}
