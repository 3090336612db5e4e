package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Stdin is the path that reads from the provided reader instead of a file.
const Stdin = "-"

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected yaml or json)", s)
	}
}

// LoadFile loads and parses a document from path, or from stdin when path is "-".
func LoadFile(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)

	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse parses YAML data, JSON being a subset of it. An empty document is nil.
func Parse(data []byte) (any, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return doc, nil
}

// LoadTarget loads a document that must be a mapping. An empty document is an empty mapping.
func LoadTarget(path string, stdin io.Reader) (map[string]any, error) {
	doc, err := LoadFile(path, stdin)
	if err != nil {
		return nil, err
	}

	switch d := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return d, nil
	default:
		return nil, fmt.Errorf("%s: target document must be a mapping, got %T", path, doc)
	}
}

// Marshal serializes a document in the given format.
func Marshal(doc any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		return data, nil
	}
}
