package board

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mindluster/kanban-api/internal/domain"
)

// DialogMode distinguishes create and edit dialogs.
type DialogMode string

const (
	DialogCreate DialogMode = "create"
	DialogEdit   DialogMode = "edit"
)

// Dialog is the state of the task editor dialog.
type Dialog struct {
	Open bool
	Mode DialogMode
	// Column pre-selects the destination column when creating.
	Column domain.Column
	// Task is the task being edited; nil in create mode.
	Task *domain.Task
}

// Session holds per-client UI state. Each client connection owns its own
// Session; nothing here is shared between clients.
type Session struct {
	ID string

	mu            sync.Mutex
	search        string
	dialog        Dialog
	dialogKey     int
	deleteTaskID  string
	deleteConfirm bool
}

// NewSession creates an empty session with a fresh identifier.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Search returns the session's current search term.
func (s *Session) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetSearch updates the search term applied to column views.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

// Dialog returns a copy of the current dialog state.
func (s *Session) Dialog() Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialog
}

// DialogKey returns a counter that advances every time the dialog opens.
// Clients key the dialog component on it so reopening remounts the form
// with fresh state instead of reusing stale fields.
func (s *Session) DialogKey() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialogKey
}

// OpenCreate opens the dialog in create mode targeting the given column.
func (s *Session) OpenCreate(column domain.Column) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogKey++
	s.dialog = Dialog{Open: true, Mode: DialogCreate, Column: column}
}

// OpenEdit opens the dialog in edit mode for the given task.
func (s *Session) OpenEdit(task *domain.Task) {
	if task == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogKey++
	s.dialog = Dialog{Open: true, Mode: DialogEdit, Column: task.Column, Task: task}
}

// CloseDialog dismisses the dialog.
func (s *Session) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = Dialog{}
}

// RequestDelete arms the delete confirmation for a task.
func (s *Session) RequestDelete(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteTaskID = taskID
	s.deleteConfirm = true
}

// PendingDelete reports whether a delete confirmation is armed, and for
// which task.
func (s *Session) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteTaskID, s.deleteConfirm
}

// CloseDelete disarms the delete confirmation.
func (s *Session) CloseDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteTaskID = ""
	s.deleteConfirm = false
}

// Reset clears all session state except the identifier.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = ""
	s.dialog = Dialog{}
	s.dialogKey = 0
	s.deleteTaskID = ""
	s.deleteConfirm = false
}
