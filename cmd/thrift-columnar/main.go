// Package main provides the CLI entrypoint for thrift-columnar.
//
// thrift-columnar loads thrift struct descriptors and:
//   - Prints the columnar schema of a record type, optionally projected
//   - Reconciles a stored schema's collection layouts with a record type
//   - Validates descriptor files
package main

import (
	"fmt"
	"os"

	"thrift-columnar/internal/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
