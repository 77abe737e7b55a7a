package board

import (
	"context"

	"github.com/mindluster/kanban-api/internal/domain"
)

// PageSize is how many tasks one page fetch requests.
const PageSize = 10

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Column      domain.Column `json:"column,omitempty"`
	Position    *float64      `json:"position,omitempty"`
}

// TaskUpdate is a partial update; nil fields are omitted from the request
// so the server leaves them untouched.
type TaskUpdate struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Column      *domain.Column `json:"column,omitempty"`
	Position    *float64       `json:"position,omitempty"`
}

// Service is the backend-agnostic interface the board works against.
// The board never touches the transport directly.
type Service interface {
	// ListTasks returns one page of a column's tasks. page is 1-based;
	// page size is PageSize. Results arrive in server order
	// (position ascending, then ID descending).
	ListTasks(ctx context.Context, column domain.Column, page int, search string) ([]*domain.Task, error)

	// CreateTask creates a task and returns the persisted record.
	CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error)

	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, update TaskUpdate) error

	// DeleteTask deletes a task. Idempotent on the server side.
	DeleteTask(ctx context.Context, id string) error

	// RenumberColumn asks the server to rewrite the column's positions to
	// evenly spaced values.
	RenumberColumn(ctx context.Context, column domain.Column) error
}
