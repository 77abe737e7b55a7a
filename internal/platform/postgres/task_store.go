package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindluster/kanban-api/internal/domain"
	"github.com/mindluster/kanban-api/internal/domain/order"
	"github.com/mindluster/kanban-api/internal/platform/logger"
	"github.com/mindluster/kanban-api/internal/store"
)

// defaultListLimit bounds list queries when the caller supplies no limit.
const defaultListLimit = 20

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// EnsureSchema implements store.TaskStore.EnsureSchema
// It creates the tasks table and its index if they don't exist. Idempotent,
// so it is safe to run on every startup.
func (s *PostgresTaskStore) EnsureSchema(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			column_name TEXT NOT NULL,
			position    DOUBLE PRECISION
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks (column_name)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			log.Error("schema initialization failed",
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: schema init failed: %v", store.ErrStorageUnavailable, err)
		}
	}

	return nil
}

// Ping implements store.TaskStore.Ping
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	var ok int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&ok); err != nil {
		return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity wrapping the domain error if data is invalid.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, title, description, column_name, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Column,
		nullablePosition(task.Position),
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return MapError(err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID),
		slog.String("column", string(task.Column)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, column_name, position
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, MapError(err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// It builds one conditional UPDATE from the non-nil patch fields, so the
// existence check and the write cannot be split by a concurrent delete.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, id string, patch store.TaskPatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.IsEmpty() {
		// Nothing to write; an empty patch is a successful no-op.
		return nil
	}

	setClauses := make([]string, 0, 4)
	args := make([]any, 0, 5)

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Column != nil {
		addSet("column_name", *patch.Column)
	}
	if patch.Position != nil {
		addSet("position", *patch.Position)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "),
		len(args),
	)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("update targeted missing task", slog.String("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Debug("task updated", slog.String("task_id", id))
	return nil
}

// Delete implements store.TaskStore.Delete
// Deletion is permanent and unconditional; deleting a non-existent ID is
// not an error, which makes the operation idempotent.
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return MapError(err)
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// List implements store.TaskStore.List
// The generated ORDER BY always ends with an ID tie-break so the ordering is
// total and pagination across repeated calls is stable.
func (s *PostgresTaskStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, title, description, column_name, position FROM tasks`
	args := make([]any, 0, 4)
	where := make([]string, 0, 2)

	if q.Column != "" {
		args = append(args, q.Column)
		where = append(where, fmt.Sprintf("column_name = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	orderBy, err := buildOrderBy(q.Sort)
	if err != nil {
		return nil, err
	}
	query += " ORDER BY " + orderBy

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, q.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0, limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Renumber implements store.TaskStore.Renumber
// It rewrites every position in the column to evenly spaced values while
// preserving the current order. Callers run it inside a transaction via
// WithTx so concurrent list calls never observe a half-renumbered column.
func (s *PostgresTaskStore) Renumber(ctx context.Context, column domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM tasks
		WHERE column_name = $1
		ORDER BY position ASC NULLS LAST, CAST(id AS BIGINT) DESC
		FOR UPDATE
	`, column)
	if err != nil {
		log.Error("failed to lock column for renumbering",
			slog.String("error", err.Error()),
			slog.String("column", string(column)))
		return MapError(err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return MapError(err)
	}
	_ = rows.Close()

	positions := order.Renumbered(len(ids))
	for i, id := range ids {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE tasks SET position = $1 WHERE id = $2`,
			positions[i], id,
		); err != nil {
			log.Error("failed to renumber task",
				slog.String("error", err.Error()),
				slog.String("task_id", id))
			return MapError(err)
		}
	}

	log.Info("column renumbered",
		slog.String("column", string(column)),
		slog.Int("tasks", len(ids)))
	return nil
}

// buildOrderBy translates validated sort keys to SQL. The field allow-list is
// enforced again here: this is the last line of defense before interpolation
// into the statement.
func buildOrderBy(sort []store.SortKey) (string, error) {
	if len(sort) == 0 {
		sort = store.DefaultSort()
	}

	clauses := make([]string, 0, len(sort)+1)
	sawID := false
	for _, key := range sort {
		var sqlField string
		switch key.Field {
		case store.SortFieldID:
			// IDs are numeric strings; compare as integers, not lexically.
			sqlField = "CAST(id AS BIGINT)"
			sawID = true
		case store.SortFieldPosition:
			sqlField = "position"
		default:
			return "", fmt.Errorf("%w: sort field %q not allowed", store.ErrInvalidEntity, key.Field)
		}

		dir := "DESC"
		if key.Direction == store.SortAsc {
			dir = "ASC"
		}

		if key.Field == store.SortFieldPosition {
			// Unpositioned tasks sort after all positioned ones.
			clauses = append(clauses, fmt.Sprintf("%s %s NULLS LAST", sqlField, dir))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s %s", sqlField, dir))
		}
	}

	if !sawID {
		// Total order guarantee for stable pagination.
		clauses = append(clauses, "CAST(id AS BIGINT) DESC")
	}

	return strings.Join(clauses, ", "), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var column string
	var position sql.NullFloat64

	if err := row.Scan(&task.ID, &task.Title, &task.Description, &column, &position); err != nil {
		return nil, err
	}

	task.Column = domain.Column(column)
	if position.Valid {
		p := position.Float64
		task.Position = &p
	}

	return &task, nil
}

func nullablePosition(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
