// Package main provides the CLI entry point for propbook.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "operation failed: %v\n", err)
		os.Exit(1)
	}
}
