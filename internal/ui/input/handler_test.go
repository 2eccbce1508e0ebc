package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/pager"
)

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func keyEvent(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

// feed sends events through a fresh handler and returns every emitted action.
func feed(t *testing.T, handler *InputHandler, actionChan chan pager.Action, events ...tcell.Event) []pager.Action {
	t.Helper()
	for _, ev := range events {
		handler.ProcessEvent(ev)
	}
	var actions []pager.Action
	for {
		select {
		case action := <-actionChan:
			actions = append(actions, action)
		default:
			return actions
		}
	}
}

func TestSingleKeyBindings(t *testing.T) {
	tests := []struct {
		name  string
		event tcell.Event
		want  pager.Action
	}{
		{"space pages down", runeEvent(' '), pager.PageDownAction{}},
		{"f pages down", runeEvent('f'), pager.PageDownAction{}},
		{"PgDn pages down", keyEvent(tcell.KeyPgDn), pager.PageDownAction{}},
		{"b pages up", runeEvent('b'), pager.PageUpAction{}},
		{"PgUp pages up", keyEvent(tcell.KeyPgUp), pager.PageUpAction{}},
		{"j moves down", runeEvent('j'), pager.ScrollLinesAction{Delta: 1}},
		{"Down moves down", keyEvent(tcell.KeyDown), pager.ScrollLinesAction{Delta: 1}},
		{"Enter moves down", keyEvent(tcell.KeyEnter), pager.ScrollLinesAction{Delta: 1}},
		{"k moves up", runeEvent('k'), pager.ScrollLinesAction{Delta: -1}},
		{"Up moves up", keyEvent(tcell.KeyUp), pager.ScrollLinesAction{Delta: -1}},
		{"g goes to top", runeEvent('g'), pager.GoTopAction{}},
		{"Home goes to top", keyEvent(tcell.KeyHome), pager.GoTopAction{}},
		{"G goes to bottom", runeEvent('G'), pager.GoBottomAction{}},
		{"End goes to bottom", keyEvent(tcell.KeyEnd), pager.GoBottomAction{}},
		{"F toggles follow", runeEvent('F'), pager.ToggleFollowAction{}},
		{"] next document", runeEvent(']'), pager.NextDocumentAction{}},
		{"[ previous document", runeEvent('['), pager.PrevDocumentAction{}},
		{"h toggles help", runeEvent('h'), pager.ToggleHelpAction{}},
		{"Ctrl-Z suspends", keyEvent(tcell.KeyCtrlZ), pager.SuspendAction{}},
		{"resize redraws", tcell.NewEventResize(80, 24), pager.RedrawAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionChan := make(chan pager.Action, 4)
			handler := NewInputHandler(actionChan)
			actions := feed(t, handler, actionChan, tt.event)
			if len(actions) != 1 || actions[0] != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, actions)
			}
		})
	}
}

func TestQuitKeysStopProcessing(t *testing.T) {
	for _, ev := range []*tcell.EventKey{runeEvent('q'), runeEvent('Q'), keyEvent(tcell.KeyCtrlC)} {
		actionChan := make(chan pager.Action, 1)
		handler := NewInputHandler(actionChan)
		if handler.ProcessEvent(ev) {
			t.Fatalf("expected %v to stop processing", ev.Name())
		}
		if _, ok := (<-actionChan).(pager.QuitAction); !ok {
			t.Fatalf("expected QuitAction for %v", ev.Name())
		}
	}
}

func TestZZQuits(t *testing.T) {
	actionChan := make(chan pager.Action, 1)
	handler := NewInputHandler(actionChan)

	if !handler.ProcessEvent(runeEvent('Z')) {
		t.Fatalf("single Z must not quit")
	}
	if handler.Pending() != 'Z' {
		t.Fatalf("expected Z to be pending, got %q", handler.Pending())
	}
	if handler.ProcessEvent(runeEvent('Z')) {
		t.Fatalf("ZZ should quit")
	}
	if _, ok := (<-actionChan).(pager.QuitAction); !ok {
		t.Fatalf("expected QuitAction")
	}
}

func TestZFollowedByOtherKeyDoesNothing(t *testing.T) {
	actionChan := make(chan pager.Action, 1)
	handler := NewInputHandler(actionChan)

	actions := feed(t, handler, actionChan, runeEvent('Z'), runeEvent('x'))
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %#v", actions)
	}
	if handler.Pending() != 0 {
		t.Fatalf("prefix should be cleared")
	}
}

func TestMarkPrefixes(t *testing.T) {
	actionChan := make(chan pager.Action, 4)
	handler := NewInputHandler(actionChan)

	actions := feed(t, handler, actionChan,
		runeEvent('m'), runeEvent('a'),
		runeEvent('\''), runeEvent('a'),
		runeEvent('\''), runeEvent('$'),
	)
	want := []pager.Action{
		pager.SetMarkAction{Name: 'a'},
		pager.GotoMarkAction{Name: 'a'},
		pager.GotoMarkAction{Name: '$'},
	}
	if len(actions) != len(want) {
		t.Fatalf("expected %d actions, got %#v", len(want), actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("action %d = %#v, want %#v", i, actions[i], want[i])
		}
	}
}

func TestMarkPrefixConsumesCommandKeys(t *testing.T) {
	actionChan := make(chan pager.Action, 2)
	handler := NewInputHandler(actionChan)

	// "mq" names a mark q; it does not quit.
	if !handler.ProcessEvent(runeEvent('m')) || !handler.ProcessEvent(runeEvent('q')) {
		t.Fatalf("mark prefix must swallow q")
	}
	if action := <-actionChan; action != (pager.SetMarkAction{Name: 'q'}) {
		t.Fatalf("expected SetMarkAction{q}, got %#v", action)
	}
}

func TestEscapeCancelsPrefix(t *testing.T) {
	actionChan := make(chan pager.Action, 2)
	handler := NewInputHandler(actionChan)

	actions := feed(t, handler, actionChan, runeEvent('m'), keyEvent(tcell.KeyEscape), runeEvent('j'))
	if len(actions) != 1 || actions[0] != (pager.ScrollLinesAction{Delta: 1}) {
		t.Fatalf("expected only the j action, got %#v", actions)
	}
}

func TestColonCommands(t *testing.T) {
	tests := []struct {
		r    rune
		want pager.Action
	}{
		{'n', pager.NextDocumentAction{}},
		{'p', pager.PrevDocumentAction{}},
		{'1', pager.SwitchActiveAction{Index: 0}},
		{'9', pager.SwitchActiveAction{Index: 8}},
	}
	for _, tt := range tests {
		actionChan := make(chan pager.Action, 2)
		handler := NewInputHandler(actionChan)
		actions := feed(t, handler, actionChan, runeEvent(':'), runeEvent(tt.r))
		if len(actions) != 1 || actions[0] != tt.want {
			t.Fatalf(":%c produced %#v, want %#v", tt.r, actions, tt.want)
		}
	}

	actionChan := make(chan pager.Action, 2)
	handler := NewInputHandler(actionChan)
	if actions := feed(t, handler, actionChan, runeEvent(':'), runeEvent('0')); len(actions) != 0 {
		t.Fatalf(":0 should be ignored, got %#v", actions)
	}
}

func TestHelpVisibleSwallowsKeys(t *testing.T) {
	actionChan := make(chan pager.Action, 2)
	handler := NewInputHandler(actionChan)
	handler.SetHelpVisible(true)

	if actions := feed(t, handler, actionChan, runeEvent('j'), runeEvent(' ')); len(actions) != 0 {
		t.Fatalf("expected navigation to be ignored under help, got %#v", actions)
	}
	if !handler.ProcessEvent(runeEvent('q')) {
		t.Fatalf("q should close help, not quit")
	}
	if _, ok := (<-actionChan).(pager.ToggleHelpAction); !ok {
		t.Fatalf("expected ToggleHelpAction")
	}

	if handler.ProcessEvent(keyEvent(tcell.KeyCtrlC)) {
		t.Fatalf("Ctrl-C must quit even under help")
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	actionChan := make(chan pager.Action, 2)
	handler := NewInputHandler(actionChan)

	actions := feed(t, handler, actionChan,
		tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone),
		tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone),
		tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone),
	)
	want := []pager.Action{
		pager.ScrollLinesAction{Delta: wheelStep},
		pager.ScrollLinesAction{Delta: -wheelStep},
	}
	if len(actions) != len(want) || actions[0] != want[0] || actions[1] != want[1] {
		t.Fatalf("expected %#v, got %#v", want, actions)
	}
}

func TestRepeatCountScalesMoves(t *testing.T) {
	tests := []struct {
		name   string
		events []tcell.Event
		want   pager.Action
	}{
		{"5j", []tcell.Event{runeEvent('5'), runeEvent('j')}, pager.ScrollLinesAction{Delta: 5}},
		{"12k", []tcell.Event{runeEvent('1'), runeEvent('2'), runeEvent('k')}, pager.ScrollLinesAction{Delta: -12}},
		{"3 Down", []tcell.Event{runeEvent('3'), keyEvent(tcell.KeyDown)}, pager.ScrollLinesAction{Delta: 3}},
		{"2 space", []tcell.Event{runeEvent('2'), runeEvent(' ')}, pager.PageDownAction{Count: 2}},
		{"4b", []tcell.Event{runeEvent('4'), runeEvent('b')}, pager.PageUpAction{Count: 4}},
		{"20g", []tcell.Event{runeEvent('2'), runeEvent('0'), runeEvent('g')}, pager.GotoLineAction{Line: 20}},
		{"7G", []tcell.Event{runeEvent('7'), runeEvent('G')}, pager.GotoLineAction{Line: 7}},
		{"leading zero ignored", []tcell.Event{runeEvent('0'), runeEvent('j')}, pager.ScrollLinesAction{Delta: 1}},
		{"Esc cancels", []tcell.Event{runeEvent('9'), keyEvent(tcell.KeyEscape), runeEvent('j')}, pager.ScrollLinesAction{Delta: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionChan := make(chan pager.Action, 10)
			handler := NewInputHandler(actionChan)
			actions := feed(t, handler, actionChan, tt.events...)
			if len(actions) != 1 || actions[0] != tt.want {
				t.Fatalf("actions = %#v, want %#v", actions, tt.want)
			}
			if handler.Count() != 0 {
				t.Fatalf("count not cleared: %d", handler.Count())
			}
		})
	}
}

func TestRepeatCountIsShownAndReset(t *testing.T) {
	actionChan := make(chan pager.Action, 10)
	handler := NewInputHandler(actionChan)
	feed(t, handler, actionChan, runeEvent('4'), runeEvent('2'))
	if handler.Count() != 42 {
		t.Fatalf("Count() = %d, want 42", handler.Count())
	}

	actions := feed(t, handler, actionChan, runeEvent('F'))
	if len(actions) != 1 || actions[0] != (pager.ToggleFollowAction{}) {
		t.Fatalf("actions = %#v", actions)
	}
	if handler.Count() != 0 {
		t.Fatalf("count should reset on other commands, got %d", handler.Count())
	}
}
