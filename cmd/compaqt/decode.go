// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/compaqt"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode Compaqt wire format to a JSON value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opt compaqt.DecodeOption
			if in != "" {
				opt = compaqt.FromFile(in)
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				opt = compaqt.FromBytes(data)
			}

			value, err := compaqt.Decode(opt)
			if err != nil {
				return fmt.Errorf("decoding: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(valueToJSON(value))
		},
	}
	cmd.Flags().StringVarP(&in, "input", "i", "", "read the encoded bytes from this file instead of stdin")
	return cmd
}
