// Package storetest provides an in-memory TaskStore for tests. It mirrors
// the postgres store's observable behavior (ordering, not-found semantics,
// idempotent deletes) without a database, and supports per-method error
// injection so callers can exercise failure paths.
package storetest

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/mindluster/kanban-api/internal/domain"
	"github.com/mindluster/kanban-api/internal/domain/order"
	"github.com/mindluster/kanban-api/internal/store"
)

// MemoryTaskStore is an in-memory store.TaskStore implementation.
type MemoryTaskStore struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task

	// Per-method injected errors. When set, the method returns the error
	// without touching state.
	CreateErr   error
	GetErr      error
	UpdateErr   error
	DeleteErr   error
	ListErr     error
	RenumberErr error
	SchemaErr   error
	PingErr     error

	// Call counters for asserting interactions.
	RenumberCalls int
	SchemaCalls   int
}

// NewMemoryTaskStore creates an empty in-memory store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]*domain.Task)}
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Seed inserts tasks directly, bypassing validation.
func (m *MemoryTaskStore) Seed(tasks ...*domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		m.tasks[t.ID] = cloneTask(t)
	}
}

// Len returns the number of stored tasks.
func (m *MemoryTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if err := task.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = cloneTask(task)
	return nil
}

func (m *MemoryTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (m *MemoryTaskStore) Update(ctx context.Context, id string, patch store.TaskPatch) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if patch.IsEmpty() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Column != nil {
		task.Column = *patch.Column
	}
	if patch.Position != nil {
		p := *patch.Position
		task.Position = &p
	}
	return nil
}

func (m *MemoryTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

func (m *MemoryTaskStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if q.Column != "" && t.Column != q.Column {
			continue
		}
		if q.Search != "" && !matchesSearch(t, q.Search) {
			continue
		}
		matched = append(matched, cloneTask(t))
	}

	domain.SortTasks(matched)

	if q.Offset >= len(matched) {
		return []*domain.Task{}, nil
	}
	matched = matched[q.Offset:]
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MemoryTaskStore) Renumber(ctx context.Context, column domain.Column) error {
	m.RenumberCalls++
	if m.RenumberErr != nil {
		return m.RenumberErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	inColumn := make([]*domain.Task, 0)
	for _, t := range m.tasks {
		if t.Column == column {
			inColumn = append(inColumn, t)
		}
	}
	domain.SortTasks(inColumn)

	positions := order.Renumbered(len(inColumn))
	for i, t := range inColumn {
		p := positions[i]
		t.Position = &p
	}
	return nil
}

func (m *MemoryTaskStore) EnsureSchema(ctx context.Context) error {
	m.SchemaCalls++
	return m.SchemaErr
}

func (m *MemoryTaskStore) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MemoryTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	if t.Position != nil {
		p := *t.Position
		clone.Position = &p
	}
	return &clone
}

func matchesSearch(t *domain.Task, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Title), s) ||
		strings.Contains(strings.ToLower(t.Description), s)
}
