package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-build-keeper/models"
)

// Output formats.
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatEnv   = "env"
	formatTable = "table"
)

var errUnknownFormat = errors.New("unknown output format")

func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("%w %q, want one of %v", errUnknownFormat, format, allowed)
}

// writeDocument encodes v as JSON or YAML.
func writeDocument(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}

// writeResult prints a resolution. The env format is a properties-style
// key=value file of the settings alone.
func writeResult(w io.Writer, format string, result models.ResolveResult) error {
	if format != formatEnv {
		return writeDocument(w, format, result)
	}

	values := make(map[string]string, len(result.Settings))
	for k, v := range result.Settings {
		values[string(k)] = fmt.Sprint(v)
	}
	content, err := godotenv.Marshal(values)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, content)
	return err
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// writeTable renders rows under headers.
func writeTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}
