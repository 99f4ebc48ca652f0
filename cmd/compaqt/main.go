// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Command compaqt is a small front-end over the package's encode, decode,
// validate, and streaming operations, reading and writing JSON on stdin
// and stdout so the wire format can be inspected without writing Go.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
