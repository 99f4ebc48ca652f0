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

func newStreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Append to or read from a stream-compatible file",
	}
	cmd.AddCommand(newStreamAppendCmd())
	cmd.AddCommand(newStreamReadCmd())
	return cmd
}

func newStreamAppendCmd() *cobra.Command {
	var mapping bool
	var resume bool

	cmd := &cobra.Command{
		Use:   "append <file>",
		Short: "Append a JSON array (or object, with --mapping) of items to a stream file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			value, err := decodeJSON(raw)
			if err != nil {
				return err
			}

			var opts []compaqt.StreamEncoderOption
			if mapping {
				opts = append(opts, compaqt.AsMapping())
			}
			if resume {
				opts = append(opts, compaqt.ResumeStream())
			} else {
				opts = append(opts, compaqt.PreserveFile())
			}

			enc, err := compaqt.NewStreamEncoder(args[0], opts...)
			if err != nil {
				return fmt.Errorf("opening stream: %w", err)
			}
			defer enc.Finalize()

			if err := enc.Write(value); err != nil {
				return fmt.Errorf("appending: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&mapping, "mapping", false, "the stream's top-level value is a mapping, not a sequence")
	cmd.Flags().BoolVar(&resume, "resume", false, "reopen an existing stream file instead of starting a fresh one")
	return cmd
}

func newStreamReadCmd() *cobra.Command {
	var numItems int

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read items from a stream file and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := compaqt.NewStreamDecoder(args[0])
			if err != nil {
				return fmt.Errorf("opening stream: %w", err)
			}
			defer dec.Finalize()

			var opts []compaqt.ReadOption
			if numItems > 0 {
				opts = append(opts, compaqt.NumItems(numItems))
			}

			value, err := dec.Read(opts...)
			if err != nil {
				return fmt.Errorf("reading: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(valueToJSON(value))
		},
	}
	cmd.Flags().IntVar(&numItems, "num-items", 0, "number of items to read (0 means all remaining)")
	return cmd
}
