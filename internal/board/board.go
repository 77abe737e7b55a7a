package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mindluster/kanban-api/internal/domain"
	"github.com/mindluster/kanban-api/internal/domain/order"
)

// Board owns the cached views for one client and runs the optimistic
// mutation pipeline against them. Page fetches are tracked so an incoming
// mutation can cancel them before they clobber a speculatively rewritten
// cache.
type Board struct {
	svc    Service
	cache  *Cache
	logger *slog.Logger

	// moveMu serializes mutations: each gesture produces at most one
	// outstanding mutation at a time.
	moveMu sync.Mutex

	// mu guards the fetch registry and the mutation generation. gen
	// advances on every mutation; a page fetched under an older generation
	// is stale and gets dropped instead of cached.
	mu      sync.Mutex
	fetches map[int]context.CancelFunc
	nextID  int
	gen     uint64
}

// NewBoard creates a Board over the given service.
// If logger is nil, a default logger is used.
func NewBoard(svc Service, logger *slog.Logger) *Board {
	if svc == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Board{
		svc:     svc,
		cache:   NewCache(),
		logger:  logger.With(slog.String("component", "board")),
		fetches: make(map[int]context.CancelFunc),
	}
}

// Cache exposes the board's page cache, mainly for tests and for wiring the
// gesture interpreter's column views.
func (b *Board) Cache() *Cache {
	return b.cache
}

// Tasks returns the aggregated, ordered view of one column under the given
// search term.
func (b *Board) Tasks(column domain.Column, search string) []*domain.Task {
	return b.cache.Tasks(column, search)
}

// FetchNextPage fetches the next page for (column, search) into the cache.
// Returns true when a further page is worth fetching afterwards. Fetches are
// cancellable: a mutation starting mid-fetch aborts it so a stale page
// cannot land on top of the optimistic cache rewrite.
func (b *Board) FetchNextPage(ctx context.Context, column domain.Column, search string) (bool, error) {
	page := b.cache.NextPage(column, search)
	if page == 0 {
		return false, nil
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	id, gen := b.registerFetch(cancel)
	defer b.unregisterFetch(id)

	tasks, err := b.svc.ListTasks(fetchCtx, column, page, search)
	if err != nil && fetchCtx.Err() == nil {
		return false, fmt.Errorf("failed to fetch page %d of %s: %w", page, column, err)
	}

	// A mutation may have cancelled the fetch at any point, including after
	// the response arrived. A page fetched before the mutation is stale
	// either way and must never land on top of the invalidated cache, so
	// the page is only admitted while the fetch generation still holds.
	b.mu.Lock()
	defer b.mu.Unlock()
	if fetchCtx.Err() != nil || b.gen != gen {
		b.logger.Debug("stale page fetch dropped",
			slog.String("column", string(column)),
			slog.Int("page", page))
		if ctxErr := fetchCtx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, context.Canceled
	}

	b.cache.AddPage(column, search, tasks)
	return len(tasks) == PageSize, nil
}

// Move runs the optimistic mutation pipeline for one re-ordering intent:
//
//  1. suspend in-flight page fetches that could race the speculative write
//  2. snapshot every cached page set for rollback
//  3. rewrite the task in place across all cached pages
//  4. issue the update to the server
//  5. on failure restore the snapshot verbatim and surface the error
//  6. unconditionally invalidate the cache once the request settles, so the
//     next read re-fetches authoritative state either way
//
// When the computed position's gap against its neighbors has collapsed below
// the precision threshold, a renumbering pass is requested after a
// successful write, before invalidation.
func (b *Board) Move(ctx context.Context, intent *MoveIntent) error {
	if intent == nil {
		return nil
	}

	b.moveMu.Lock()
	defer b.moveMu.Unlock()

	b.cancelFetches()

	pos := order.Between(intent.Prev, intent.Next)
	exhausted := order.Exhausted(intent.Prev, intent.Next, pos)

	snap := b.cache.Snapshot()
	b.cache.ApplyMove(intent.TaskID, intent.Column, pos)

	col := intent.Column
	err := b.svc.UpdateTask(ctx, intent.TaskID, TaskUpdate{
		Column:   &col,
		Position: &pos,
	})

	if err != nil {
		// Rollback is the latency optimization; the invalidation below is
		// the authoritative recovery path.
		b.cache.Restore(snap)
		b.logger.Warn("move rejected, cache rolled back",
			slog.String("task_id", intent.TaskID),
			slog.String("column", string(intent.Column)),
			slog.String("error", err.Error()))
	} else if exhausted {
		if renumErr := b.svc.RenumberColumn(ctx, intent.Column); renumErr != nil {
			// The move itself succeeded; renumbering is retried on the
			// next exhausted insertion.
			b.logger.Warn("renumber request failed",
				slog.String("column", string(intent.Column)),
				slog.String("error", renumErr.Error()))
		}
	}

	b.cache.Invalidate()

	if err != nil {
		return fmt.Errorf("failed to move task %s: %w", intent.TaskID, err)
	}
	return nil
}

func (b *Board) registerFetch(cancel context.CancelFunc) (int, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.fetches[id] = cancel
	return id, b.gen
}

func (b *Board) unregisterFetch(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.fetches, id)
}

func (b *Board) cancelFetches() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	for id, cancel := range b.fetches {
		cancel()
		delete(b.fetches, id)
	}
}
