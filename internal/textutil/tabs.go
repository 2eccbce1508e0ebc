package textutil

import (
	"strings"

	"github.com/kk-code-lab/rpager/internal/styled"
	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}
	var builder strings.Builder
	expandInto(&builder, text, tabWidth, 0)
	return builder.String()
}

// ExpandTabsRuns expands tabs across a styled line. Tab stops are computed
// from the start of the line, not the start of each run, and a tab's spaces
// keep the style of the run it appeared in.
func ExpandTabsRuns(runs []styled.Run, tabWidth int) []styled.Run {
	if tabWidth <= 0 {
		return runs
	}
	hasTab := false
	for _, run := range runs {
		if strings.ContainsRune(run.Text, '\t') {
			hasTab = true
			break
		}
	}
	if !hasTab {
		return runs
	}

	out := make([]styled.Run, 0, len(runs))
	column := 0
	for _, run := range runs {
		var builder strings.Builder
		column = expandInto(&builder, run.Text, tabWidth, column)
		out = append(out, styled.Run{Style: run.Style, Text: builder.String()})
	}
	return out
}

func expandInto(builder *strings.Builder, text string, tabWidth, column int) int {
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				builder.WriteByte(' ')
			}
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		width := runewidth.RuneWidth(ru)
		if width < 1 {
			width = 1
		}
		column += width
	}
	return column
}
