package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindluster/kanban-api/internal/config"
	"github.com/mindluster/kanban-api/internal/domain"
	"github.com/mindluster/kanban-api/internal/store"
)

// ListRequest carries the raw, untrusted listing parameters from the
// transport boundary. Validation happens in TaskService.List.
type ListRequest struct {
	// Column filters to one board column when non-empty.
	Column string

	// Search is a case-insensitive substring filter on title or description.
	Search string

	// SortFields and SortOrders are parallel lists, e.g. ["position","id"]
	// and ["asc","desc"]. When SortOrders is shorter, its last entry applies
	// to the remaining fields.
	SortFields []string
	SortOrders []string

	// Offset and Limit bound the page. Limit 0 means the configured
	// default; values above the configured maximum are capped.
	Offset int
	Limit  int
}

// TaskService validates and executes queries and mutations against the task
// store. A single instance is shared by all requests.
type TaskService struct {
	tasks  store.TaskStore
	db     *sql.DB
	cfg    config.QueryConfig
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
// The db handle is used to run multi-statement operations transactionally.
func NewTaskService(
	tasks store.TaskStore,
	db *sql.DB,
	cfg config.QueryConfig,
	logger *slog.Logger,
) (*TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}

	return &TaskService{
		tasks:  tasks,
		db:     db,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// List validates req and returns one page of matching tasks.
// Returns ErrInvalidSortField for any sort field outside {id, position} and
// ErrInvalidPage for negative offset or limit. Identical requests against
// unchanged data always return the same sequence.
func (s *TaskService) List(ctx context.Context, req ListRequest) ([]*domain.Task, error) {
	if req.Offset < 0 || req.Limit < 0 {
		return nil, ErrInvalidPage
	}

	var column domain.Column
	if req.Column != "" {
		parsed, err := domain.ParseColumn(req.Column)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		column = parsed
	}

	sort, err := parseSort(req.SortFields, req.SortOrders)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	tasks, err := s.tasks.List(ctx, store.ListQuery{
		Column: column,
		Search: req.Search,
		Sort:   sort,
		Offset: req.Offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, &TaskServiceError{Operation: "list", Message: "query failed", Err: err}
	}

	return tasks, nil
}

// Create assembles and persists a new task. The store assigns the ID;
// column defaults to the board's fallback and position to the creation
// timestamp when absent.
// Returns ErrInvalidInput wrapping the domain error for an empty title or
// unknown column; no record is persisted in that case.
func (s *TaskService) Create(
	ctx context.Context,
	title, description, column string,
	position *float64,
) (*domain.Task, error) {
	var col domain.Column
	if column != "" {
		parsed, err := domain.ParseColumn(column)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		col = parsed
	}

	task, err := domain.NewTask(title, description, col, position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, &TaskServiceError{Operation: "create", Message: "store write failed", Err: err}
	}

	return task, nil
}

// Get retrieves one task by ID.
// Returns store.ErrTaskNotFound if no such task exists.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Update applies a partial update. Only the fields present in the patch are
// written; an empty patch succeeds without touching the store.
// Returns store.ErrTaskNotFound if no such task exists and ErrInvalidInput
// if a patched field fails validation.
func (s *TaskService) Update(ctx context.Context, id string, patch store.TaskPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrTitleEmpty)
	}
	if patch.Column != nil && !patch.Column.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidColumn)
	}

	if err := s.tasks.Update(ctx, id, patch); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return &TaskServiceError{Operation: "update", Message: "store write failed", Err: err}
	}

	return nil
}

// Delete removes a task permanently. Deleting an ID that does not exist is
// not an error; the operation is idempotent.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return &TaskServiceError{Operation: "delete", Message: "store write failed", Err: err}
	}
	return nil
}

// RenumberColumn rewrites the column's positions to evenly spaced values in
// one transaction, restoring subdivision headroom after repeated insertions
// have exhausted the gap between two neighbors.
func (s *TaskService) RenumberColumn(ctx context.Context, column string) error {
	col, err := domain.ParseColumn(column)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.db == nil {
		// No transaction handle (tests with a bare store); best effort.
		return s.tasks.Renumber(ctx, col)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Renumber(ctx, col)
	})
}

// Bootstrap performs the idempotent schema initialization. Safe to invoke
// before every request; only the first call has side effects.
func (s *TaskService) Bootstrap(ctx context.Context) error {
	return s.tasks.EnsureSchema(ctx)
}

// Health verifies the storage backend is reachable.
func (s *TaskService) Health(ctx context.Context) error {
	return s.tasks.Ping(ctx)
}

// parseSort validates raw sort parameters against the allow-list.
// A missing direction falls back to the last provided one, then to
// descending. Unknown direction tokens also fall back to descending.
func parseSort(fields, orders []string) ([]store.SortKey, error) {
	if len(fields) == 0 {
		return store.DefaultSort(), nil
	}

	keys := make([]store.SortKey, 0, len(fields))
	for i, raw := range fields {
		field := store.SortField(strings.TrimSpace(raw))
		if !field.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, raw)
		}

		dir := store.SortDesc
		var token string
		if i < len(orders) {
			token = orders[i]
		} else if len(orders) > 0 {
			token = orders[len(orders)-1]
		}
		if strings.EqualFold(strings.TrimSpace(token), "asc") {
			dir = store.SortAsc
		}

		keys = append(keys, store.SortKey{Field: field, Direction: dir})
	}

	return keys, nil
}
