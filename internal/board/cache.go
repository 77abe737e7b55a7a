package board

import (
	"sync"

	"github.com/mindluster/kanban-api/internal/domain"
)

// queryKey identifies one cached page set: a column plus the search term it
// was fetched under.
type queryKey struct {
	Column domain.Column
	Search string
}

// Snapshot is a deep copy of every cached page set, taken before a
// speculative mutation so it can be restored verbatim on failure.
type Snapshot map[queryKey][][]*domain.Task

// Cache holds the pages fetched so far, grouped per (column, search).
// Individual pages are never re-sorted or compacted in place; views are
// produced by Aggregate at read time.
type Cache struct {
	mu    sync.Mutex
	pages map[queryKey][][]*domain.Task
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		pages: make(map[queryKey][][]*domain.Task),
	}
}

// AddPage appends one fetched page to the page set for (column, search).
func (c *Cache) AddPage(column domain.Column, search string, page []*domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := queryKey{Column: column, Search: search}
	c.pages[key] = append(c.pages[key], page)
}

// Tasks returns the aggregated, ordered view for (column, search).
// Membership is decided by each task's current Column field, not by the
// key its page was fetched under, so a speculative cross-column move shows
// up in the destination view and disappears from the source view.
func (c *Cache) Tasks(column domain.Column, search string) []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	var pages [][]*domain.Task
	for key, set := range c.pages {
		if key.Search == search {
			pages = append(pages, set...)
		}
	}

	merged := Aggregate(pages, search)
	filtered := make([]*domain.Task, 0, len(merged))
	for _, task := range merged {
		if task.Column == column {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// NextPage returns the 1-based page number to fetch next for (column,
// search), or 0 when the last fetched page was short, meaning the column is
// exhausted. An empty page set always wants page 1.
func (c *Cache) NextPage(column domain.Column, search string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	pages := c.pages[queryKey{Column: column, Search: search}]
	if len(pages) == 0 {
		return 1
	}
	if len(pages[len(pages)-1]) < PageSize {
		return 0
	}
	return len(pages) + 1
}

// Snapshot deep-copies every cached page set. Task records are copied by
// value so later in-place rewrites cannot leak into the snapshot.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := make(Snapshot, len(c.pages))
	for key, pages := range c.pages {
		copied := make([][]*domain.Task, len(pages))
		for i, page := range pages {
			copiedPage := make([]*domain.Task, len(page))
			for j, task := range page {
				clone := *task
				if task.Position != nil {
					p := *task.Position
					clone.Position = &p
				}
				copiedPage[j] = &clone
			}
			copied[i] = copiedPage
		}
		snap[key] = copied
	}
	return snap
}

// Restore replaces the cache contents with a previously taken snapshot.
func (c *Cache) Restore(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages = make(map[queryKey][][]*domain.Task, len(snap))
	for key, pages := range snap {
		c.pages[key] = pages
	}
}

// ApplyMove rewrites the column and position of the matching task wherever
// it appears in any cached page, in place, without re-fetching. The page
// sets themselves are left untouched; ordering is re-derived at read time.
func (c *Cache) ApplyMove(id string, column domain.Column, position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pages := range c.pages {
		for _, page := range pages {
			for _, task := range page {
				if task.ID == id {
					task.Column = column
					p := position
					task.Position = &p
				}
			}
		}
	}
}

// Invalidate drops every cached page so the next read re-fetches
// authoritative state.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages = make(map[queryKey][][]*domain.Task)
}
