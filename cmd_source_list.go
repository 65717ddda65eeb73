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
	"github.com/descware/pyplan/pkg/fsutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list DESCRIPTOR_FILE",
		Short: "List the files in the filtered source set",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := descriptor.LoadFile(args[0])
			if err != nil {
				return err
			}
			files, err := desc.CollectSource("")
			if err != nil {
				return err
			}
			fsutil.SortFileReferences(files)
			for _, file := range files {
				if _, err := fmt.Fprintln(os.Stdout, file.FullName()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	argparserSource.AddCommand(cmd)
}
