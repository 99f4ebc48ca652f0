// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "compaqt",
		Short: "Encode, decode, and validate Compaqt-format data",
	}
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newStreamCmd())
	return root
}
