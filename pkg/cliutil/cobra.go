// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package cliutil has helpers for assembling a consistent cobra CLI:
// GNU-ish usage-error reporting, and a help template that wraps to the
// terminal.
package cliutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// OnlySubcommands is a cobra.PositionalArgs similar to cobra.NoArgs, but
// with a better error message.
func OnlySubcommands(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	err := fmt.Errorf("invalid subcommand %q", args[0])
	if cmd.SuggestionsMinimumDistance <= 0 {
		cmd.SuggestionsMinimumDistance = 2
	}
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		err = fmt.Errorf("%w\nDid you mean one of these?\n\t%s", err, strings.Join(suggestions, "\n\t"))
	}
	return cmd.FlagErrorFunc()(cmd, err)
}

// WrapPositionalArgs wraps a cobra.PositionalArgs to pass its errors
// through FlagErrorFunc, so bad positional usage and bad flag usage report
// the same way.
func WrapPositionalArgs(inner cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return FlagErrorFunc(cmd, inner(cmd, args))
	}
}

// RunSubcommands is a cobra.Command.RunE for commands that exist only to
// hold subcommands.  Setting RunE matters even with nothing to run, because
// otherwise cobra treats a bare invocation as success.
func RunSubcommands(cmd *cobra.Command, args []string) error {
	cmd.SetOutput(cmd.ErrOrStderr())
	cmd.HelpFunc()(cmd, args)
	os.Exit(2)
	return nil
}

// FlagErrorFunc is for (*cobra.Command).SetFlagErrorFunc, and establishes
// GNU-ish behavior for invalid usage.
//
// On error it calls os.Exit and does NOT return, so every error that comes
// back from (*cobra.Command).Execute is an execution error, not a usage
// error.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	// A multi-line error gets a blank line before the "See --help" line.
	errStr := strings.TrimRight(err.Error(), "\n")
	if strings.Contains(errStr, "\n") {
		errStr += "\n"
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\nSee '%s --help' for more information.\n",
		cmd.CommandPath(), errStr, cmd.CommandPath())
	os.Exit(2)
	return nil
}
