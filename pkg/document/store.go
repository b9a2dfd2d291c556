package document

import (
	"log"
	"sync"
	"time"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// maxHistory bounds the undo stack; the oldest snapshot falls off.
const maxHistory = 100

// Store is the single owner of a document. Readers get value copies;
// writers submit Commands. Each applied command pushes one undo snapshot,
// so a Batch is exactly one undo step.
type Store struct {
	mu   sync.RWMutex
	doc  Document
	undo []Document
	redo []Document

	autosavePath string
	onChange     func()
}

// NewStore wraps a document in a store.
func NewStore(doc Document) *Store {
	return &Store{doc: doc}
}

// OnChange registers a callback fired after every successful mutation,
// undo or redo. The UI uses it to invalidate its frame.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetAutosave enables writing the document to path after every change.
// Failures are logged, never surfaced; autosave is best effort.
func (s *Store) SetAutosave(path string) {
	s.mu.Lock()
	s.autosavePath = path
	s.mu.Unlock()
}

// Document returns a deep copy of the current document.
func (s *Store) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Floor returns a deep copy of the active floor. The engine reads the
// scene through this before every snap or hit-test pass.
func (s *Store) Floor() plan.Floor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ActiveFloor().Clone()
}

// ActiveIndex returns the active floor index.
func (s *Store) ActiveIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Active
}

// FloorCount returns the number of floors.
func (s *Store) FloorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Floors)
}

// SetActive switches the active floor. Out-of-range indexes are ignored.
func (s *Store) SetActive(i int) {
	s.mu.Lock()
	if i >= 0 && i < len(s.doc.Floors) {
		s.doc.Active = i
	}
	s.mu.Unlock()
	s.notify()
}

// AddFloor appends an empty floor above the current top and makes it
// active.
func (s *Store) AddFloor(name string) {
	s.mu.Lock()
	s.pushUndoLocked()
	level := len(s.doc.Floors)
	s.doc.Floors = append(s.doc.Floors, plan.NewFloor(name, level))
	s.doc.Active = level
	s.touchLocked()
	s.mu.Unlock()
	s.autosave()
	s.notify()
}

// Apply runs one command against the active floor.
func (s *Store) Apply(cmd Command) {
	s.mu.Lock()
	s.pushUndoLocked()
	floor := s.doc.ActiveFloor().Clone()
	cmd.Apply(&floor)
	*s.doc.ActiveFloor() = floor
	s.touchLocked()
	s.mu.Unlock()
	s.autosave()
	s.notify()
}

// CanUndo reports whether an undo snapshot exists.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redo snapshot exists.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}

// Undo restores the previous snapshot; it reports whether anything
// changed.
func (s *Store) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	s.redo = append(s.redo, s.doc.Clone())
	s.doc = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.mu.Unlock()
	s.autosave()
	s.notify()
	return true
}

// Redo reapplies the most recently undone snapshot.
func (s *Store) Redo() bool {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	s.undo = append(s.undo, s.doc.Clone())
	s.doc = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.mu.Unlock()
	s.autosave()
	s.notify()
	return true
}

// Save writes the current document to path.
func (s *Store) Save(path string) error {
	doc := s.Document()
	return Save(path, &doc)
}

func (s *Store) pushUndoLocked() {
	s.undo = append(s.undo, s.doc.Clone())
	if len(s.undo) > maxHistory {
		s.undo = s.undo[1:]
	}
	s.redo = nil
}

func (s *Store) touchLocked() {
	s.doc.Modified = time.Now().UTC()
}

func (s *Store) autosave() {
	s.mu.RLock()
	path := s.autosavePath
	s.mu.RUnlock()
	if path == "" {
		return
	}
	if err := s.Save(path); err != nil {
		log.Printf("autosave: %v", err)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
