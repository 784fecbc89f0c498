// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-build-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 2 * time.Second

// inspectorModel shows one resolved configuration as a table of setting,
// value and source fragment. Secret values are masked until revealed.
type inspectorModel struct {
	cfg         models.ResolvedConfig
	fingerprint string

	table    table.Model
	revealed bool
	status   string
	lastErr  error

	copyFn func(string) error
}

func newInspectorModel(cfg models.ResolvedConfig, fingerprint string) inspectorModel {
	settingKeys := cfg.Keys()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 18},
			{Title: "Value", Width: 40},
			{Title: "Source", Width: 24},
		}),
		table.WithFocused(true),
		table.WithHeight(min(len(settingKeys)+1, 20)),
	)

	m := inspectorModel{
		cfg:         cfg,
		fingerprint: fingerprint,
		table:       t,
		copyFn:      clipboard.WriteAll,
	}
	m.table.SetRows(m.rows())
	return m
}

func (m inspectorModel) rows() []table.Row {
	values := m.cfg.Strings(m.revealed)

	rows := make([]table.Row, 0, len(values))
	for _, k := range m.cfg.Keys() {
		rows = append(rows, table.Row{string(k), values[string(k)], m.cfg.Origin(k)})
	}
	return rows
}

// selected returns the key under the cursor.
func (m inspectorModel) selected() (models.SettingKey, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return "", false
	}
	return models.SettingKey(row[0]), true
}

func (m inspectorModel) Init() tea.Cmd {
	return nil
}

func (m inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.reveal):
			m.revealed = !m.revealed
			m.table.SetRows(m.rows())
			return m, nil
		case key.Matches(msg, keys.copy):
			return m.copySelected()
		}
	case copiedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.status = fmt.Sprintf("copied %s", msg.key)
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m inspectorModel) copySelected() (tea.Model, tea.Cmd) {
	k, ok := m.selected()
	if !ok {
		return m, nil
	}
	if models.IsSecret(k) && !m.revealed {
		m.status = "press r to reveal secrets before copying"
		return m, cmdClearStatus()
	}

	v, _ := m.cfg.Get(k)
	return m, cmdCopyToClipboard(m.copyFn, string(k), v.String())
}

func (m inspectorModel) View() string {
	var b strings.Builder

	variant := m.cfg.Variant()
	b.WriteString(titleStyle.Render(fmt.Sprintf("variant %s", variant.Name)))
	if variant.RequiresSigning {
		b.WriteString(secretStyle.Render("  signed"))
	}
	b.WriteString("\n")
	if m.fingerprint != "" {
		b.WriteString(helpStyle.Render("credential fingerprint " + m.fingerprint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tableBorder.Render(m.table.View()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.lastErr != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.lastErr.Error()) + "\n")
	}

	reveal := "r reveal"
	if m.revealed {
		reveal = "r hide"
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ move  "+reveal+"  c copy  q quit"))

	return appStyle.Render(b.String())
}

func cmdCopyToClipboard(copyFn func(string) error, key, text string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return copiedMsg{key: key, err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{key: key}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
