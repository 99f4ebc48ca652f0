// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/compaqt"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var in string
	var offset int64

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether input holds a structurally well-formed item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []compaqt.ValidateOption
			if in != "" {
				opts = append(opts, compaqt.ValidateFile(in), compaqt.AtOffset(offset))
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				opts = append(opts, compaqt.ValidateBytes(data))
			}

			ok, err := compaqt.Validate(opts...)
			if err != nil {
				return fmt.Errorf("validating: %w", err)
			}
			if ok {
				fmt.Fprintln(os.Stdout, "valid")
				return nil
			}
			fmt.Fprintln(os.Stdout, "invalid")
			os.Exit(1)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "input", "i", "", "validate this file instead of stdin")
	cmd.Flags().Int64Var(&offset, "offset", 0, "byte offset of the root item when validating a file")
	return cmd
}
