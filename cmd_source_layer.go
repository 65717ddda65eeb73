// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/descware/pyplan/pkg/cliutil"
	"github.com/descware/pyplan/pkg/descriptor"
	"github.com/descware/pyplan/pkg/fsutil"
	"github.com/descware/pyplan/pkg/reproducible"
)

func init() {
	var flagPrefix string
	cmd := &cobra.Command{
		Use:   "layer [flags] DESCRIPTOR_FILE >OUT_LAYERFILE",
		Short: "Pack the filtered source set in to a layer",
		Long: "Pack the descriptor's filtered source file set in to an OCI layer on stdout.  " +
			"File timestamps are clamped to SOURCE_DATE_EPOCH (when set) so that the same " +
			"source set always produces the same layer bytes.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := descriptor.LoadFile(args[0])
			if err != nil {
				return err
			}
			files, err := desc.CollectSource(flagPrefix)
			if err != nil {
				return err
			}
			layer, err := fsutil.LayerFromFileReferences(files, reproducible.Now())
			if err != nil {
				return err
			}
			if err := fsutil.WriteLayer(layer, os.Stdout); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagPrefix, "add-prefix", "",
		`Add a prefix to the filenames in the source set, forward-slash separated and absolute but NOT starting with a slash.  For example, "usr/lib/app".`)
	argparserSource.AddCommand(cmd)
}
