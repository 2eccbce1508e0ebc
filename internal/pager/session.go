package pager

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocuments is returned when a session is created without inputs.
	ErrNoDocuments = errors.New("no documents to display")
	// ErrMarkNotFound reports a lookup of a mark that was never set.
	ErrMarkNotFound = errors.New("mark not set")
)

// Session holds the fixed set of documents opened at startup. All methods must
// be called from the event-loop goroutine.
type Session struct {
	docs   []*Document
	active int
	loader *Loader
}

// NewSession creates a session over docs; the first one is active.
func NewSession(loader *Loader, docs ...*Document) (*Session, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("document %d is nil", i)
		}
	}
	return &Session{
		docs:   append([]*Document(nil), docs...),
		loader: loader,
	}, nil
}

// Active returns the displayed document.
func (s *Session) Active() *Document {
	return s.docs[s.active]
}

func (s *Session) ActiveIndex() int {
	return s.active
}

func (s *Session) Len() int {
	return len(s.docs)
}

// Document returns the document at idx, or nil when out of range.
func (s *Session) Document(idx int) *Document {
	if idx < 0 || idx >= len(s.docs) {
		return nil
	}
	return s.docs[idx]
}

// SwitchActive changes the displayed document. Out-of-range indexes are
// ignored. A fill in progress for the previous document keeps running.
func (s *Session) SwitchActive(idx int) bool {
	if idx < 0 || idx >= len(s.docs) {
		return false
	}
	s.active = idx
	return true
}

// SetMark stores pos under name for doc. Reserved and unprintable names are
// rejected.
func (s *Session) SetMark(doc *Document, name rune, pos Position) bool {
	if doc == nil {
		return false
	}
	return doc.setMark(name, pos)
}

// GotoMark looks up name in doc and moves the view there on a hit. The stored
// position is returned as set; the view itself is clamped to the buffer.
func (s *Session) GotoMark(doc *Document, name rune) (Position, bool) {
	if doc == nil {
		return Position{}, false
	}
	pos, ok := doc.mark(name)
	if !ok {
		return Position{}, false
	}
	if name != MarkEnd {
		doc.follow = false
	}
	doc.SetPosition(pos)
	return pos, true
}

// ToggleFollow flips follow mode for doc and returns the new state. Turning
// it on jumps to the end of the buffer.
func (s *Session) ToggleFollow(doc *Document) bool {
	if doc == nil {
		return false
	}
	doc.follow = !doc.follow
	if doc.follow {
		doc.GoBottom()
	}
	return doc.follow
}

// OnRender forwards render feedback for the active document to the loader.
func (s *Session) OnRender(info RenderInfo) {
	if s.loader == nil {
		return
	}
	s.loader.OnRender(s.Active(), info)
}

// Close releases outstanding registrations and closes every source.
func (s *Session) Close() error {
	var errs []error
	for _, doc := range s.docs {
		if s.loader != nil {
			s.loader.cancel(doc)
		}
		if err := doc.src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", doc.name, err))
		}
	}
	return errors.Join(errs...)
}
