package domain

import (
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Task represents a single board item. Column and Position are the only
// fields a re-ordering mutation may touch; ID is assigned once at creation
// and never changes.
//
// Position is optional: tasks without one sort after all positioned tasks
// in their column, newest first.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Column      Column   `json:"column"`
	Position    *float64 `json:"position"`
}

// NewTask creates a Task with a freshly assigned ID, applying the creation
// defaults: empty description, the default column when none is given, and
// the current timestamp as position so new tasks sort as most recent.
// Returns an error if validation fails.
func NewTask(title, description string, column Column, position *float64) (*Task, error) {
	if column == "" {
		column = DefaultColumn
	}
	if position == nil {
		p := float64(time.Now().UnixMilli())
		position = &p
	}

	task := &Task{
		ID:          NewTaskID(),
		Title:       title,
		Description: description,
		Column:      column,
		Position:    position,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrTaskIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleEmpty
	}

	if !t.Column.IsValid() {
		return ErrInvalidColumn
	}

	return nil
}

// Less reports whether t sorts before other within a column: position
// ascending, unpositioned tasks after all positioned ones, and ID descending
// (newest first) as the deterministic tie-break. IDs compare as coerced
// integers when possible so "9" sorts after "10".
func (t *Task) Less(other *Task) bool {
	po, qo := t.Position, other.Position
	switch {
	case po != nil && qo != nil:
		if *po != *qo {
			return *po < *qo
		}
		// Equal positions can happen transiently; fall through to the
		// ID tie-break so ordering stays total.
	case po != nil:
		return true
	case qo != nil:
		return false
	}
	return compareIDsDesc(t.ID, other.ID)
}

// SortTasks orders tasks in place by the column ordering invariant.
// The sort is stable so repeated sorts of the same data agree.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Less(tasks[j])
	})
}

// compareIDsDesc reports whether a ranks before b under ID-descending order,
// comparing numerically when both IDs coerce to integers.
func compareIDsDesc(a, b string) bool {
	an, aerr := strconv.ParseInt(a, 10, 64)
	bn, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return an > bn
	}
	return a > b
}

// idCounter disambiguates IDs generated within the same millisecond.
var idCounter atomic.Int64

// NewTaskID returns a fresh task identifier. IDs are numeric strings so they
// coerce to integers for the fallback ordering; the counter component keeps
// concurrent creates within one process from colliding.
func NewTaskID() string {
	n := idCounter.Add(1) % 1000
	return strconv.FormatInt(time.Now().UnixMilli()*1000+n, 10)
}
