package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/pager"
	textutil "github.com/kk-code-lab/rpager/internal/textutil"
)

// Renderer draws the active document and the title bar.
type Renderer struct {
	screen         tcell.Screen
	theme          ColorTheme
	tabWidth       int
	runeWidthCache [128]int // ASCII cache (0-127), width+1
	runeWidthWide  map[rune]int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme replaces the default colours.
func WithTheme(theme ColorTheme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithTabWidth sets the tab stop distance; values below 1 keep the default.
func WithTabWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.tabWidth = width
		}
	}
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{
		screen:        screen,
		theme:         GetColorTheme(),
		tabWidth:      textutil.DefaultTabWidth,
		runeWidthWide: make(map[rune]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// View is everything needed to draw one frame.
type View struct {
	Doc   *pager.Document
	Index int
	Count int
	// Message replaces the title bar hint for one frame.
	Message  string
	ShowHelp bool
	// Arg is a repeat count being typed, 0 when none.
	Arg int
}

// Render draws v and reports what became visible. The returned info is
// computed even while the help overlay hides the document.
func (r *Renderer) Render(v View) pager.RenderInfo {
	r.screen.Clear()
	w, h := r.screen.Size()

	info := ContentInfo(v.Doc, h-1)
	if v.ShowHelp {
		r.drawHelpOverlay(w, h)
	} else {
		r.drawDocument(v.Doc, info, w)
		r.drawTitlebar(v, w, h)
	}

	r.screen.Show()
	return info
}

// ContentInfo reports the visible range of doc for a viewport of height rows.
func ContentInfo(doc *pager.Document, height int) pager.RenderInfo {
	if height < 1 {
		height = 1
	}
	info := pager.RenderInfo{Height: height}
	if doc == nil {
		return info
	}
	info.TotalLines = doc.Buffer().Len()
	last := doc.Position().Scroll + height - 1
	if last > info.TotalLines-1 {
		last = info.TotalLines - 1
	}
	if last < 0 {
		last = 0
	}
	info.LastVisible = last
	info.BottomVisible = last >= info.TotalLines-1
	return info
}

func (r *Renderer) drawDocument(doc *pager.Document, info pager.RenderInfo, w int) {
	if doc == nil {
		return
	}
	buf := doc.Buffer()
	scroll := doc.Position().Scroll
	fillerStyle := r.theme.baseStyle().Foreground(r.theme.FillerFg)

	for y := 0; y < info.Height; y++ {
		idx := scroll + y
		if idx >= info.TotalLines {
			r.drawTextLine(0, y, w, "~", fillerStyle)
			continue
		}

		x := 0
		for _, run := range textutil.ExpandTabsRuns(buf.Line(idx), r.tabWidth) {
			if x >= w {
				break
			}
			text := textutil.SanitizeTerminalText(run.Text)
			x = r.drawTextLine(x, y, w-x, text, r.theme.runStyle(run.Style))
		}
	}
}

func (r *Renderer) drawTitlebar(v View, w, h int) {
	if h <= 0 || w <= 0 {
		return
	}
	y := h - 1
	style := r.theme.titlebarStyle()
	r.fillRow(0, y, w, style)

	right := formatTitleRight(v.Doc, v.Arg)
	rightWidth := r.measureTextWidth(right)
	if rightWidth > w {
		right = r.truncateTextToWidth(right, w)
		rightWidth = r.measureTextWidth(right)
	}

	leftWidth := w - rightWidth
	if v.Message != "" {
		msg := r.truncateTextToWidth(" "+titleText(v.Message), leftWidth)
		r.drawTextLine(0, y, leftWidth, msg, style.Foreground(r.theme.MessageFg).Bold(true))
	} else {
		left := r.truncateTextToWidth(formatTitleLeft(v), leftWidth)
		r.drawTextLine(0, y, leftWidth, left, style)
	}

	r.drawTextLine(w-rightWidth, y, rightWidth, right, style.Bold(true))
}
