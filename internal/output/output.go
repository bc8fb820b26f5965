// Package output renders command results as JSON or YAML, with an
// optional jq filter applied before encoding. The default text format
// has no generic rendering here; each command produces its own.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the human-readable tree rendering (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value to a Format type.
// Empty string defaults to FormatText.
// Returns error if the format is invalid.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --format (expected text|json|yaml)")
	}
}

// IsStructured reports whether the format is machine-readable
// structured output.
func IsStructured(format Format) bool {
	return format == FormatJSON || format == FormatYAML
}

// Printer handles structured output formatting. Query holds an
// optional jq program applied to the data before encoding.
type Printer struct {
	W      io.Writer
	Format Format
	Query  string
}

// Print outputs data in the configured format.
func (p *Printer) Print(data interface{}) error {
	switch p.Format {
	case FormatJSON:
		return p.printJSON(data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatText:
		return errors.New("text format is rendered by each command")
	default:
		return fmt.Errorf("unsupported format: %s", p.Format)
	}
}

// printJSON outputs data as pretty-printed JSON. With a query, each
// query result is emitted as one compact JSON document.
func (p *Printer) printJSON(data interface{}) error {
	enc := json.NewEncoder(p.W)
	enc.SetEscapeHTML(false)

	if p.Query == "" {
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	results, err := p.runQuery(data)
	if err != nil {
		return err
	}
	for _, v := range results {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// printYAML outputs data as YAML. With a query, each query result
// becomes its own YAML document.
func (p *Printer) printYAML(data interface{}) error {
	enc := yaml.NewEncoder(p.W)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	if p.Query == "" {
		return enc.Encode(data)
	}

	results, err := p.runQuery(data)
	if err != nil {
		return err
	}
	for _, v := range results {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// runQuery applies the jq program to data and collects the results.
// Data is round-tripped through JSON first because gojq only accepts
// plain maps and slices, not Go structs.
func (p *Printer) runQuery(data interface{}) ([]interface{}, error) {
	parsed, err := gojq.Parse(p.Query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal for query: %w", err)
	}
	var input interface{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("unmarshal for query: %w", err)
	}

	var results []interface{}
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}

	return results, nil
}
