package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// writeTable prints rows as aligned columns with a styled header.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range header {
			if i < len(row) && lipgloss.Width(row[i]) > widths[i] {
				widths[i] = lipgloss.Width(row[i])
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(header))
		for i := range header {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			s := cellStyle.Width(widths[i] + 2)
			if i == len(header)-1 {
				s = lipgloss.NewStyle()
			}
			parts[i] = s.Render(style.Render(cell))
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
	}

	if _, err := fmt.Fprintln(w, line(header, headerStyle)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, line(row, lipgloss.NewStyle())); err != nil {
			return err
		}
	}
	return nil
}

// encode writes v as YAML or JSON.
func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (want yaml or json)", format)
	}
}
