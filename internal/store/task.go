package store

import (
	"context"
	"database/sql"

	"github.com/mindluster/kanban-api/internal/domain"
)

// SortField names a column that list results may be ordered by. Only the
// fields enumerated here are legal; anything else must be rejected before it
// reaches SQL.
type SortField string

const (
	SortFieldID       SortField = "id"
	SortFieldPosition SortField = "position"
)

// IsValid reports whether f is in the sort allow-list.
func (f SortField) IsValid() bool {
	return f == SortFieldID || f == SortFieldPosition
}

// SortDirection is an ordering direction for one sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortKey is one (field, direction) pair of a multi-field sort.
type SortKey struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders by manual position first, then ID descending so
// unpositioned tasks come newest-first. This is the ordering every board
// view requests.
func DefaultSort() []SortKey {
	return []SortKey{
		{Field: SortFieldPosition, Direction: SortAsc},
		{Field: SortFieldID, Direction: SortDesc},
	}
}

// ListQuery describes one page of a filtered, sorted task listing.
// Sort keys must already be validated against the allow-list.
type ListQuery struct {
	// Column restricts results to one board column when non-empty.
	Column domain.Column

	// Search is a case-insensitive substring match against title or
	// description. Empty means no text filter.
	Search string

	// Sort is the ordered list of sort keys. Empty means DefaultSort.
	Sort []SortKey

	// Offset and Limit bound the page. Limit <= 0 means the
	// implementation default.
	Offset int
	Limit  int
}

// TaskPatch is a partial update: only non-nil fields are applied, absent
// fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Column      *domain.Column
	Position    *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Column == nil && p.Position == nil
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity wrapping the domain validation error if the
	// task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Update applies a partial update to an existing task. The existence
	// check and the write are one conditional statement, so a concurrent
	// delete cannot slip between them.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, patch TaskPatch) error

	// Delete removes a task from the store by its ID. Deleting a task that
	// does not exist is not an error; the operation is idempotent.
	Delete(ctx context.Context, id string) error

	// List returns one page of tasks matching the query, in a total order:
	// identical queries against unchanged data always return the same
	// sequence.
	List(ctx context.Context, q ListQuery) ([]*domain.Task, error)

	// Renumber rewrites every position in the given column to evenly spaced
	// values, preserving the current order. Callers should run it on a
	// transaction via WithTx so readers never observe a half-renumbered
	// column.
	Renumber(ctx context.Context, column domain.Column) error

	// EnsureSchema performs idempotent structural initialization. Safe to
	// call on every startup; only the first call has side effects.
	EnsureSchema(ctx context.Context) error

	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// WithTx returns a TaskStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
