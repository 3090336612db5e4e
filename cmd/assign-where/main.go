// Package main provides the CLI entrypoint for assign-where.
//
// assign-where merges the top-level entries of YAML or JSON documents onto a
// target document, keeping only the entries selected by key globs and value
// patterns:
//
//	assign-where --key 'a*' target.yaml source1.yaml source2.json
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
