package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindluster/kanban-api/internal/domain"
)

func fullPage(startID int) []*domain.Task {
	page := make([]*domain.Task, PageSize)
	for i := range page {
		pos := float64((startID + i) * 100)
		page[i] = &domain.Task{
			ID:       itoa(startID + i),
			Title:    "t",
			Column:   domain.ColumnBacklog,
			Position: &pos,
		}
	}
	return page
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestCacheNextPage(t *testing.T) {
	t.Parallel()

	c := NewCache()

	// Empty page set wants page 1.
	assert.Equal(t, 1, c.NextPage(domain.ColumnBacklog, ""))

	// A full page means more may follow.
	c.AddPage(domain.ColumnBacklog, "", fullPage(1))
	assert.Equal(t, 2, c.NextPage(domain.ColumnBacklog, ""))

	// A short page marks the column exhausted.
	c.AddPage(domain.ColumnBacklog, "", []*domain.Task{posTask("99", "last", 9900)})
	assert.Equal(t, 0, c.NextPage(domain.ColumnBacklog, ""))

	// Page sets are tracked per (column, search) pair.
	assert.Equal(t, 1, c.NextPage(domain.ColumnBacklog, "query"))
	assert.Equal(t, 1, c.NextPage(domain.ColumnDone, ""))
}

func TestCacheSnapshotRestore(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.AddPage(domain.ColumnBacklog, "", []*domain.Task{
		posTask("1", "a", 1000),
		posTask("2", "b", 2000),
	})

	snap := c.Snapshot()
	c.ApplyMove("1", domain.ColumnDone, 5000)

	// The speculative rewrite is visible...
	moved := c.Tasks(domain.ColumnDone, "")
	require.Len(t, moved, 1)
	assert.Equal(t, "1", moved[0].ID)

	// ...and the snapshot restores the pre-move state bit for bit.
	c.Restore(snap)
	restored := c.Tasks(domain.ColumnBacklog, "")
	require.Len(t, restored, 2)
	assert.Equal(t, "1", restored[0].ID)
	assert.Equal(t, 1000.0, *restored[0].Position)
	assert.Equal(t, domain.ColumnBacklog, restored[0].Column)
	assert.Empty(t, c.Tasks(domain.ColumnDone, ""))
}

func TestCacheSnapshotIsDeepCopy(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.AddPage(domain.ColumnBacklog, "", []*domain.Task{posTask("1", "a", 1000)})

	snap := c.Snapshot()
	c.ApplyMove("1", domain.ColumnBacklog, 7777)

	for _, pages := range snap {
		for _, page := range pages {
			for _, task := range page {
				assert.Equal(t, 1000.0, *task.Position,
					"in-place rewrite must not leak into the snapshot")
			}
		}
	}
}

func TestCacheApplyMoveRewritesEveryOccurrence(t *testing.T) {
	t.Parallel()

	c := NewCache()
	// The same task cached under two different views.
	c.AddPage(domain.ColumnBacklog, "", []*domain.Task{posTask("1", "find me", 1000)})
	c.AddPage(domain.ColumnBacklog, "find", []*domain.Task{posTask("1", "find me", 1000)})

	c.ApplyMove("1", domain.ColumnReview, 3000)

	for _, search := range []string{"", "find"} {
		tasks := c.Tasks(domain.ColumnReview, search)
		require.Len(t, tasks, 1, "search %q", search)
		assert.Equal(t, 3000.0, *tasks[0].Position)
	}
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.AddPage(domain.ColumnBacklog, "", fullPage(1))
	c.Invalidate()

	assert.Empty(t, c.Tasks(domain.ColumnBacklog, ""))
	assert.Equal(t, 1, c.NextPage(domain.ColumnBacklog, ""))
}
