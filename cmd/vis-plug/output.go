package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderState colors a plugin state for terminal output.
func renderState(s plugin.State) string {
	switch s {
	case plugin.StateInstalled, plugin.StateUpToDate:
		return styleOK.Render(string(s))
	case plugin.StateNeedsUpdate:
		return styleWarn.Render(string(s))
	case plugin.StateError:
		return styleErr.Render(string(s))
	default:
		return styleDim.Render(string(s))
	}
}

// renderStatusTable writes an aligned status table.
func renderStatusTable(w io.Writer, statuses []plugin.Status) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tSTATE")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.ShortURL, renderState(s.State))
		if s.Error != "" {
			fmt.Fprintf(tw, "\t\t%s\n", styleDim.Render(s.Error))
		}
	}
	tw.Flush()
}

// renderStatusYAML writes the statuses as a YAML document.
func renderStatusYAML(w io.Writer, statuses []plugin.Status) error {
	out, err := yaml.Marshal(statuses)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// renderStatuses dispatches on the --format flag value.
func renderStatuses(w io.Writer, statuses []plugin.Status, format string) error {
	switch format {
	case "yaml":
		return renderStatusYAML(w, statuses)
	case "", "table":
		renderStatusTable(w, statuses)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s (must be 'table' or 'yaml')", format)
	}
}
