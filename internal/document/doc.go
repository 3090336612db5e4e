// Package document loads and renders the YAML and JSON documents the CLI merges.
package document
