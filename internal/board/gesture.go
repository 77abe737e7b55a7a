package board

import (
	"github.com/mindluster/kanban-api/internal/domain"
)

// DragState is the gesture lifecycle state.
type DragState int

const (
	// DragIdle means no gesture is in progress.
	DragIdle DragState = iota

	// Dragging means a task has been picked up and not yet dropped.
	Dragging
)

// Rect is the axis-aligned screen geometry of a dragged or hovered element.
// Only the vertical extent matters for insertion decisions.
type Rect struct {
	Top    float64
	Height float64
}

// CenterY returns the vertical center of the rect.
func (r Rect) CenterY() float64 {
	return r.Top + r.Height/2
}

// TargetKind says what kind of element a drop landed on.
type TargetKind int

const (
	// TargetNone means the drop landed outside any droppable area.
	TargetNone TargetKind = iota

	// TargetTask means the drop landed on another task card.
	TargetTask

	// TargetColumn means the drop landed on a column's empty area.
	TargetColumn
)

// DropTarget describes where a drag ended.
type DropTarget struct {
	Kind   TargetKind
	TaskID string        // set when Kind == TargetTask
	Column domain.Column // destination column for either kind
}

// MoveIntent is the single output of a completed gesture: move the task to
// the destination column, positioned between the two neighbors. Either
// neighbor may be nil at the edges of the sequence.
type MoveIntent struct {
	TaskID string
	Column domain.Column
	Prev   *domain.Task
	Next   *domain.Task
}

// Gesture tracks one drag through its lifecycle:
// idle -> dragging -> dropped or cancelled -> idle.
// A Gesture belongs to a single Session and is not safe for concurrent use.
type Gesture struct {
	state  DragState
	active *domain.Task
}

// State returns the current lifecycle state.
func (g *Gesture) State() DragState {
	return g.state
}

// Active returns the task being dragged, or nil when idle.
func (g *Gesture) Active() *domain.Task {
	return g.active
}

// Pickup starts a drag. Picking up while already dragging restarts the
// gesture with the new task.
func (g *Gesture) Pickup(task *domain.Task) {
	g.state = Dragging
	g.active = task
}

// Cancel abandons the drag without producing an intent.
func (g *Gesture) Cancel() {
	g.state = DragIdle
	g.active = nil
}

// Drop completes the drag. columnTasks supplies the destination column's
// aggregated, ordered view. activeRect and overRect carry the dragged and
// hovered element geometry; either may be nil when unavailable, in which
// case the insertion defaults to before the hovered task.
//
// Returns nil for a no-op: no drag in progress, no usable target, or the
// task dropped back onto its own current slot.
func (g *Gesture) Drop(
	target DropTarget,
	activeRect, overRect *Rect,
	columnTasks func(domain.Column) []*domain.Task,
) *MoveIntent {
	if g.state != Dragging || g.active == nil {
		return nil
	}

	task := g.active
	g.state = DragIdle
	g.active = nil

	if target.Kind == TargetNone || target.Column == "" {
		return nil
	}

	// Dropped onto itself in the same column: nothing to do.
	if target.Kind == TargetTask && target.TaskID == task.ID && target.Column == task.Column {
		return nil
	}

	destItems := columnTasks(target.Column)

	// When reordering within the same column, exclude the dragged task so
	// neighbors are never computed relative to itself.
	if target.Column == task.Column {
		filtered := make([]*domain.Task, 0, len(destItems))
		for _, it := range destItems {
			if it.ID != task.ID {
				filtered = append(filtered, it)
			}
		}
		destItems = filtered
	}

	var toIndex int
	if target.Kind == TargetTask {
		overIdx := -1
		for i, it := range destItems {
			if it.ID == target.TaskID {
				overIdx = i
				break
			}
		}

		// Insert after the hovered task when the dragged element's center
		// is below its center; before it otherwise or when geometry is
		// unavailable.
		insertAfter := false
		if activeRect != nil && overRect != nil {
			insertAfter = activeRect.CenterY() > overRect.CenterY()
		}

		if overIdx < 0 {
			toIndex = len(destItems)
		} else {
			toIndex = overIdx
		}
		if insertAfter {
			toIndex++
		}
		if toIndex < 0 {
			toIndex = 0
		}
		if toIndex > len(destItems) {
			toIndex = len(destItems)
		}
	} else {
		// Dropped over the column area: append to the end.
		toIndex = len(destItems)
	}

	intent := &MoveIntent{
		TaskID: task.ID,
		Column: target.Column,
	}
	if toIndex > 0 {
		intent.Prev = destItems[toIndex-1]
	}
	if toIndex < len(destItems) {
		intent.Next = destItems[toIndex]
	}

	return intent
}
