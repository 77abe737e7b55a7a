package board

import (
	"strings"

	"github.com/mindluster/kanban-api/internal/domain"
)

// Aggregate merges independently fetched pages of one column into a single
// de-duplicated, ordered sequence. Pages may overlap when tasks are inserted
// mid-pagination; the first occurrence of each ID in fetch order wins, then
// the merged sequence is re-sorted by the column ordering invariant. Merging
// the same page twice therefore yields the same result as merging it once.
//
// When search is non-empty the text filter is re-applied client-side: the
// server filters too, but a merged view can contain tasks fetched before the
// filter changed.
func Aggregate(pages [][]*domain.Task, search string) []*domain.Task {
	seen := make(map[string]struct{})
	merged := make([]*domain.Task, 0)

	for _, page := range pages {
		for _, task := range page {
			if _, ok := seen[task.ID]; ok {
				continue
			}
			seen[task.ID] = struct{}{}
			if search != "" && !matchesSearch(task, search) {
				continue
			}
			merged = append(merged, task)
		}
	}

	domain.SortTasks(merged)
	return merged
}

// matchesSearch reports whether the task's title or description contains the
// search term, case-insensitively.
func matchesSearch(task *domain.Task, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(task.Title), s) ||
		strings.Contains(strings.ToLower(task.Description), s)
}
