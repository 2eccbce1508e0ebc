package render

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/rpager/internal/pager"
	textutil "github.com/kk-code-lab/rpager/internal/textutil"
)

const titleHint = "(press h for help or q to quit)"

// titleText prepares a file name or message for the single-line title bar.
func titleText(s string) string {
	return textutil.ExpandTabs(textutil.SanitizeTerminalText(s), textutil.DefaultTabWidth)
}

func formatTitleLeft(v View) string {
	var parts []string
	if v.Count > 1 {
		parts = append(parts, fmt.Sprintf("[%d/%d]", v.Index+1, v.Count))
	}
	if v.Doc != nil && v.Doc.Name() != "" {
		parts = append(parts, titleText(v.Doc.Name()))
	}
	parts = append(parts, titleHint)
	return " " + strings.Join(parts, " ")
}

// formatTitleRight renders the cursor position, with a percentage once the
// total line count is final. A repeat count being typed is shown first.
func formatTitleRight(doc *pager.Document, arg int) string {
	if doc == nil {
		return ""
	}
	row := doc.Position().Cursor + 1
	col := 1

	var b strings.Builder
	if arg > 0 {
		fmt.Fprintf(&b, " %d", arg)
	}
	if doc.Following() {
		b.WriteString(" FOLLOW")
	}
	if doc.EOF() {
		total := doc.Buffer().Len()
		percentage := 100
		if total > 0 {
			percentage = 100 * row / total
		}
		fmt.Fprintf(&b, " (%d,%d) %d%% ", row, col, percentage)
	} else {
		fmt.Fprintf(&b, " (%d,%d) ", row, col)
	}
	return b.String()
}
