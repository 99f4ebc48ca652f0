// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/compaqt"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var out string
	var streamCompatible bool

	cmd := &cobra.Command{
		Use:   "encode [input.json]",
		Short: "Encode a JSON value to Compaqt wire format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args)
			if err != nil {
				return err
			}
			value, err := decodeJSON(raw)
			if err != nil {
				return err
			}

			opts := []compaqt.EncodeOption{}
			if streamCompatible {
				opts = append(opts, compaqt.StreamCompatible())
			}
			if out != "" {
				opts = append(opts, compaqt.ToFile(out))
				if _, err := compaqt.Encode(value, opts...); err != nil {
					return fmt.Errorf("encoding: %w", err)
				}
				return nil
			}

			encoded, err := compaqt.Encode(value, opts...)
			if err != nil {
				return fmt.Errorf("encoding: %w", err)
			}
			_, err = os.Stdout.Write(encoded)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the encoded bytes to this file instead of stdout")
	cmd.Flags().BoolVar(&streamCompatible, "stream-compatible", false, "prefix the output with a stream-top header")
	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
