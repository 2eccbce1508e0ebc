package render

import (
	"fmt"
	"strings"

	textutil "github.com/kk-code-lab/rpager/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpOverlaySections = []helpOverlaySection{
	{
		title: "Moving",
		entries: []helpOverlayEntry{
			{keys: "j ↓ ↵", desc: "Forward one line"},
			{keys: "k ↑", desc: "Backward one line"},
			{keys: "Space f PgDn", desc: "Forward one window"},
			{keys: "b PgUp", desc: "Backward one window"},
			{keys: "g Home", desc: "Go to first line"},
			{keys: "G End", desc: "Go to last line"},
			{keys: "<n>g <n>G", desc: "Go to line n"},
			{keys: "F", desc: "Follow new input (toggle)"},
			{keys: "<n>", desc: "Repeat count for the moves above"},
		},
	},
	{
		title: "Marks",
		entries: []helpOverlayEntry{
			{keys: "m<letter>", desc: "Mark the current position"},
			{keys: "'<letter>", desc: "Go to a marked position"},
			{keys: "'^ '$", desc: "Go to start / end"},
		},
	},
	{
		title: "Files",
		entries: []helpOverlayEntry{
			{keys: ":n ]", desc: "Examine the next file"},
			{keys: ":p [", desc: "Examine the previous file"},
			{keys: ":1 … :9", desc: "Examine file N"},
		},
	},
	{
		title: "Exit",
		entries: []helpOverlayEntry{
			{keys: "q Q ZZ", desc: "Quit"},
			{keys: "Ctrl+C", desc: "Quit immediately"},
			{keys: "h", desc: "Close this help"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 32)
	for i, section := range helpOverlaySections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := r.theme.baseStyle()
	headerStyle := r.theme.titlebarStyle().Bold(true)

	title := " Help "
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines() {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		r.fillRow(0, h-1, w, headerStyle)
		footer := r.truncateTextToWidth(" h/Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
