package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/pager"
)

// wheelStep is how many lines one mouse wheel notch scrolls.
const wheelStep = 3

// maxCount bounds a typed repeat count.
const maxCount = 99999

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan  chan pager.Action
	helpVisible bool
	// pending holds the first key of a two-key command (m, ', :, Z).
	pending rune
	// count is a numeric prefix typed before a movement key, 0 when none.
	count int
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan pager.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetHelpVisible tells the handler whether the help overlay is shown.
func (ih *InputHandler) SetHelpVisible(visible bool) {
	ih.helpVisible = visible
}

// Pending returns the first key of an unfinished two-key command, or 0.
func (ih *InputHandler) Pending() rune {
	return ih.pending
}

// Count returns the repeat count typed so far, or 0.
func (ih *InputHandler) Count() int {
	return ih.count
}

// takeCount returns the typed count and clears it.
func (ih *InputHandler) takeCount() int {
	n := ih.count
	ih.count = 0
	return n
}

// lines scales a one-line move by the typed count.
func (ih *InputHandler) lines(dir int) int {
	return dir * max(ih.takeCount(), 1)
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asked the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventMouse:
		ih.processMouseEvent(ev)
		return true
	case *tcell.EventResize:
		ih.actionChan <- pager.RedrawAction{}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		ih.actionChan <- pager.ScrollLinesAction{Delta: -wheelStep}
	case buttons&tcell.WheelDown != 0:
		ih.actionChan <- pager.ScrollLinesAction{Delta: wheelStep}
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.pending = 0
		ih.count = 0
		ih.actionChan <- pager.QuitAction{}
		return false
	}

	if ih.helpVisible {
		switch ev.Key() {
		case tcell.KeyEscape:
			ih.actionChan <- pager.ToggleHelpAction{}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'h', 'H', 'q', 'Q':
				ih.actionChan <- pager.ToggleHelpAction{}
			}
		}
		return true
	}

	if ih.pending != 0 {
		prefix := ih.pending
		ih.pending = 0
		if ev.Key() == tcell.KeyRune {
			return ih.completePrefix(prefix, ev.Rune())
		}
		if ev.Key() == tcell.KeyEscape {
			return true
		}
	}

	if ev.Key() == tcell.KeyRune {
		return ih.processRune(ev)
	}

	// Special keys
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.count = 0
	case tcell.KeyCtrlZ:
		ih.count = 0
		ih.actionChan <- pager.SuspendAction{}
	case tcell.KeyCtrlL:
		ih.actionChan <- pager.RedrawAction{}
	case tcell.KeyUp:
		ih.actionChan <- pager.ScrollLinesAction{Delta: ih.lines(-1)}
	case tcell.KeyDown, tcell.KeyEnter:
		ih.actionChan <- pager.ScrollLinesAction{Delta: ih.lines(1)}
	case tcell.KeyPgUp:
		ih.actionChan <- pager.PageUpAction{Count: ih.takeCount()}
	case tcell.KeyPgDn:
		ih.actionChan <- pager.PageDownAction{Count: ih.takeCount()}
	case tcell.KeyHome:
		ih.count = 0
		ih.actionChan <- pager.GoTopAction{}
	case tcell.KeyEnd:
		ih.actionChan <- ih.gotoOr(pager.GoBottomAction{})
	}
	return true
}

// gotoOr turns a typed count into a jump to that line, else returns fallback.
func (ih *InputHandler) gotoOr(fallback pager.Action) pager.Action {
	if n := ih.takeCount(); n > 0 {
		return pager.GotoLineAction{Line: n}
	}
	return fallback
}

func (ih *InputHandler) processRune(ev *tcell.EventKey) bool {
	r := ev.Rune()
	if ev.Modifiers()&tcell.ModShift != 0 {
		// Normalize shifted alphabetic runes to reflect user intent (Shift+G => 'G')
		r = unicode.ToUpper(r)
	}

	if r >= '0' && r <= '9' && (r != '0' || ih.count > 0) {
		ih.count = min(ih.count*10+int(r-'0'), maxCount)
		return true
	}

	switch r {
	case 'q', 'Q':
		ih.actionChan <- pager.QuitAction{}
		return false
	case 'm', '\'', ':', 'Z':
		ih.count = 0
		ih.pending = r
	case ' ', 'f':
		ih.actionChan <- pager.PageDownAction{Count: ih.takeCount()}
	case 'b':
		ih.actionChan <- pager.PageUpAction{Count: ih.takeCount()}
	case 'j':
		ih.actionChan <- pager.ScrollLinesAction{Delta: ih.lines(1)}
	case 'k':
		ih.actionChan <- pager.ScrollLinesAction{Delta: ih.lines(-1)}
	case 'g', '<':
		ih.actionChan <- ih.gotoOr(pager.GoTopAction{})
	case 'G', '>':
		ih.actionChan <- ih.gotoOr(pager.GoBottomAction{})
	default:
		ih.count = 0
		ih.processCommandRune(r)
	}
	return true
}

func (ih *InputHandler) processCommandRune(r rune) {
	switch r {
	case 'F':
		ih.actionChan <- pager.ToggleFollowAction{}
	case ']':
		ih.actionChan <- pager.NextDocumentAction{}
	case '[':
		ih.actionChan <- pager.PrevDocumentAction{}
	case 'h', 'H':
		ih.actionChan <- pager.ToggleHelpAction{}
	}
}

func (ih *InputHandler) completePrefix(prefix, r rune) bool {
	switch prefix {
	case 'm':
		ih.actionChan <- pager.SetMarkAction{Name: r}
	case '\'':
		ih.actionChan <- pager.GotoMarkAction{Name: r}
	case ':':
		switch {
		case r == 'n':
			ih.actionChan <- pager.NextDocumentAction{}
		case r == 'p':
			ih.actionChan <- pager.PrevDocumentAction{}
		case r == 'q':
			ih.actionChan <- pager.QuitAction{}
			return false
		case r >= '1' && r <= '9':
			ih.actionChan <- pager.SwitchActiveAction{Index: int(r - '1')}
		}
	case 'Z':
		if r == 'Z' {
			ih.actionChan <- pager.QuitAction{}
			return false
		}
	}
	return true
}
