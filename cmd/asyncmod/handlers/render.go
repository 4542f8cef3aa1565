package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderImportSummary produces a lipgloss-styled import summary.
func renderImportSummary(r importReport) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  asyncmod import: %d loaded, %d failed", len(r.Imported), len(r.Failed))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 35)))
	b.WriteString("\n")

	if len(r.Imported) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Loaded"))
		b.WriteString("\n")
		for _, m := range r.Imported {
			b.WriteString("    ")
			b.WriteString(okStyle.Render("✓"))
			b.WriteString(fmt.Sprintf(" %-24s %-10s", m.Name, m.Version))
			b.WriteString(dimStyle.Render(fmt.Sprintf(" %d exports", len(m.Exports))))
			b.WriteString("\n")
		}
	}

	if len(r.Failed) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Failed"))
		b.WriteString("\n")
		for _, f := range r.Failed {
			b.WriteString("    ")
			b.WriteString(failStyle.Render("✗"))
			b.WriteString(fmt.Sprintf(" %-24s ", displayName(f.Name)))
			b.WriteString(dimStyle.Render(f.Message))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// printImportSummary writes one tab-separated line per module.
func printImportSummary(w io.Writer, r importReport) {
	for _, m := range r.Imported {
		fmt.Fprintf(w, "ok\t%s\t%s\n", m.Name, m.Version)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(w, "failed\t%s\t%s\n", displayName(f.Name), f.Message)
	}
}

func displayName(name string) string {
	if name == "" {
		return `""`
	}
	return name
}
