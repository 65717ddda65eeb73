// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/descware/pyplan/pkg/cliutil"
)

var argparserSource = &cobra.Command{
	Use:   "source {[flags]|SUBCOMMAND...}",
	Short: "Work with a descriptor's source file set",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserSource)
}
