// Package ui centralizes terminal styling for cjv output.
//
// All styling goes through the Render* helpers so commands never touch
// lipgloss directly; when stdout is not a terminal, or color is disabled via
// --no-color / NO_COLOR, every helper degrades to plain text.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // bright green
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // bright red
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mergeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Styling is opt-in: until Init runs, every helper returns plain text, which
// keeps output deterministic for library consumers and tests.
var colorEnabled = false

// Init decides whether styled output is produced. Called once from the root
// command before any rendering happens.
func Init(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		colorEnabled = false
		return
	}
	colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// RenderAccent styles informational highlights.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderPass styles success markers.
func RenderPass(s string) string { return render(passStyle, s) }

// RenderWarn styles warnings.
func RenderWarn(s string) string { return render(warnStyle, s) }

// RenderErr styles error markers.
func RenderErr(s string) string { return render(errStyle, s) }

// RenderVersion styles version names in log output.
func RenderVersion(s string) string { return render(versionStyle, s) }

// RenderBranch styles branch labels.
func RenderBranch(s string) string { return render(branchStyle, s) }

// RenderTag styles tag labels.
func RenderTag(s string) string { return render(tagStyle, s) }

// RenderMerge styles the merge marker.
func RenderMerge(s string) string { return render(mergeStyle, s) }

// RenderDim styles secondary detail lines.
func RenderDim(s string) string { return render(dimStyle, s) }
