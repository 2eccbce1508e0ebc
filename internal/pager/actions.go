package pager

import "fmt"

// Action is a command issued by the key-binding layer.
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type ScrollLinesAction struct {
	Delta int
}
// PageDownAction and PageUpAction move Count screens; zero means one.
type PageDownAction struct {
	Count int
}
type PageUpAction struct {
	Count int
}
type GoTopAction struct{}
type GoBottomAction struct{}

// GotoLineAction moves to a 1-based line number.
type GotoLineAction struct {
	Line int
}

// ===== DOCUMENT ACTIONS =====

type SwitchActiveAction struct {
	Index int
}
type NextDocumentAction struct{}
type PrevDocumentAction struct{}

// ===== MARK / FOLLOW ACTIONS =====

type SetMarkAction struct {
	Name rune
}
type GotoMarkAction struct {
	Name rune
}
type ToggleFollowAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
type RedrawAction struct{}
type ToggleHelpAction struct{}

// Result tells the caller what an applied action changed.
type Result struct {
	// Message is a short status-bar note, empty when there is nothing to say.
	Message    string
	Quit       bool
	Suspend    bool
	ToggleHelp bool
}

// Apply executes action against the active document.
func (s *Session) Apply(action Action) (Result, error) {
	doc := s.Active()

	switch a := action.(type) {
	case ScrollLinesAction:
		doc.MoveCursor(a.Delta)
	case PageDownAction:
		for range max(a.Count, 1) {
			doc.PageDown()
		}
	case PageUpAction:
		for range max(a.Count, 1) {
			doc.PageUp()
		}
	case GotoLineAction:
		doc.GotoLine(a.Line - 1)
	case GoTopAction:
		doc.GoTop()
	case GoBottomAction:
		doc.GoBottom()

	case SwitchActiveAction:
		if !s.SwitchActive(a.Index) {
			return Result{}, nil
		}
		return Result{Message: s.describeActive()}, nil
	case NextDocumentAction:
		if !s.SwitchActive(s.active + 1) {
			return Result{Message: "no next file"}, nil
		}
		return Result{Message: s.describeActive()}, nil
	case PrevDocumentAction:
		if !s.SwitchActive(s.active - 1) {
			return Result{Message: "no previous file"}, nil
		}
		return Result{Message: s.describeActive()}, nil

	case SetMarkAction:
		if !s.SetMark(doc, a.Name, doc.Position()) {
			return Result{Message: fmt.Sprintf("cannot set mark %q", a.Name)}, nil
		}
		return Result{Message: fmt.Sprintf("mark %q set", a.Name)}, nil
	case GotoMarkAction:
		if _, ok := s.GotoMark(doc, a.Name); !ok {
			return Result{Message: fmt.Sprintf("mark %q not set", a.Name)}, fmt.Errorf("%w: %q", ErrMarkNotFound, a.Name)
		}
	case ToggleFollowAction:
		if s.ToggleFollow(doc) {
			return Result{Message: "following (F to stop)"}, nil
		}
		return Result{Message: "follow off"}, nil

	case QuitAction:
		return Result{Quit: true}, nil
	case SuspendAction:
		return Result{Suspend: true}, nil
	case ToggleHelpAction:
		return Result{ToggleHelp: true}, nil
	case RedrawAction, nil:
	default:
		return Result{}, fmt.Errorf("unsupported action %T", action)
	}
	return Result{}, nil
}

func (s *Session) describeActive() string {
	return fmt.Sprintf("[%d/%d] %s", s.active+1, len(s.docs), s.Active().name)
}
