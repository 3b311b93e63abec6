package history

import (
	"fmt"
	"strings"

	"github.com/cityjson/cjv/internal/ui"
)

// Render formats log entries for the terminal, one block per version in
// traversal order:
//
//	* v2 (main, tag: release-1)
//	  Author: alice
//	  Date:   2024-03-01T10:00:00Z
//
//	      Added the new railway station
func Render(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderEntry(e))
	}
	return b.String()
}

func renderEntry(e Entry) string {
	var b strings.Builder

	b.WriteString("* ")
	b.WriteString(ui.RenderVersion(e.Name))
	if labels := renderLabels(e); labels != "" {
		fmt.Fprintf(&b, " (%s)", labels)
	}
	if e.Merge {
		b.WriteString(" ")
		b.WriteString(ui.RenderMerge(fmt.Sprintf("[merge of %s]", strings.Join(e.Parents, ", "))))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  Author: %s\n", e.Author)
	fmt.Fprintf(&b, "  Date:   %s\n", e.Date)
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(e.Message, "\n"), "\n") {
		fmt.Fprintf(&b, "      %s\n", line)
	}

	return b.String()
}

func renderLabels(e Entry) string {
	var labels []string
	for _, branch := range e.Branches {
		labels = append(labels, ui.RenderBranch(branch))
	}
	for _, tag := range e.Tags {
		labels = append(labels, ui.RenderTag("tag: "+tag))
	}
	return strings.Join(labels, ", ")
}
