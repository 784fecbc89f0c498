// Package tui implements the interactive inspector for resolved build
// configurations.
package tui

import (
	"io"

	"github.com/MKhiriev/go-build-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Inspect runs the inspector for cfg until the user quits. Options are passed
// to the underlying program, e.g. tea.WithInput in tests.
func Inspect(cfg models.ResolvedConfig, fingerprint string, out io.Writer, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(out)}, opts...)

	_, err := tea.NewProgram(newInspectorModel(cfg, fingerprint), opts...).Run()
	return err
}
