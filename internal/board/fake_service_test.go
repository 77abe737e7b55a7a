package board

import (
	"context"
	"sync"

	"github.com/mindluster/kanban-api/internal/domain"
)

// fakeService is an in-memory Service with per-method error injection and
// call recording, for driving the board without a server.
type fakeService struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task

	updateErr   error
	listErr     error
	renumberErr error

	updates       []fakeUpdate
	renumberCalls []domain.Column
	listCalls     int
	listStarted   chan struct{}
	listRelease   chan struct{}

	// ignoreCancel makes ListTasks deliver its page even after the caller's
	// context was cancelled, modelling a response that was already on the
	// wire when the cancellation landed.
	ignoreCancel bool
}

type fakeUpdate struct {
	ID     string
	Update TaskUpdate
}

func newFakeService(tasks ...*domain.Task) *fakeService {
	f := &fakeService{tasks: make(map[string]*domain.Task)}
	for _, t := range tasks {
		f.tasks[t.ID] = t
	}
	return f
}

var _ Service = (*fakeService)(nil)

func (f *fakeService) ListTasks(
	ctx context.Context,
	column domain.Column,
	page int,
	search string,
) ([]*domain.Task, error) {
	f.mu.Lock()
	f.listCalls++
	started := f.listStarted
	release := f.listRelease
	err := f.listErr
	ignore := f.ignoreCancel
	f.mu.Unlock()

	// The page is assembled before the release barrier so a test can hold a
	// pre-mutation response and deliver it later.
	result := f.pageOf(column, page)

	if started != nil {
		close(started)
	}
	if release != nil {
		if ignore {
			<-release
		} else {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if !ignore && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return result, nil
}

func (f *fakeService) pageOf(column domain.Column, page int) []*domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]*domain.Task, 0)
	for _, t := range f.tasks {
		if t.Column == column {
			clone := *t
			matched = append(matched, &clone)
		}
	}
	domain.SortTasks(matched)

	start := (page - 1) * PageSize
	if start >= len(matched) {
		return []*domain.Task{}
	}
	matched = matched[start:]
	if len(matched) > PageSize {
		matched = matched[:PageSize]
	}
	return matched
}

func (f *fakeService) CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error) {
	task, err := domain.NewTask(draft.Title, draft.Description, draft.Column, draft.Position)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeService) UpdateTask(ctx context.Context, id string, update TaskUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, fakeUpdate{ID: id, Update: update})
	if f.updateErr != nil {
		return f.updateErr
	}

	task, ok := f.tasks[id]
	if !ok {
		return &APIError{StatusCode: 404, Message: "Task not found"}
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Column != nil {
		task.Column = *update.Column
	}
	if update.Position != nil {
		p := *update.Position
		task.Position = &p
	}
	return nil
}

func (f *fakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
	return nil
}

func (f *fakeService) RenumberColumn(ctx context.Context, column domain.Column) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renumberCalls = append(f.renumberCalls, column)
	return f.renumberErr
}
