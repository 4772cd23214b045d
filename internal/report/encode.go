// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Format is the output format of a command.
type Format string

const (
	// FormatText prints human readable lines while probing.
	FormatText Format = "text"
	// FormatJSON prints a JSON document once probing is done.
	FormatJSON Format = "json"
	// FormatYAML prints a YAML document once probing is done.
	FormatYAML Format = "yaml"
)

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return slices.Contains([]Format{FormatText, FormatJSON, FormatYAML}, f)
}

// IsStructured reports whether f renders a document instead of lines.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Encode writes v to w as a document in the given format.
// [FormatText] writes nothing, since text output is streamed by the [Printer].
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatText:
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}
