package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindluster/kanban-api/internal/domain"
)

// columnView returns a columnTasks func over fixed per-column task lists.
func columnView(columns map[domain.Column][]*domain.Task) func(domain.Column) []*domain.Task {
	return func(c domain.Column) []*domain.Task {
		return columns[c]
	}
}

func rect(top, height float64) *Rect {
	return &Rect{Top: top, Height: height}
}

func TestGestureLifecycle(t *testing.T) {
	t.Parallel()

	var g Gesture
	assert.Equal(t, DragIdle, g.State())

	task := posTask("1", "a", 1000)
	g.Pickup(task)
	assert.Equal(t, Dragging, g.State())
	assert.Equal(t, task, g.Active())

	g.Cancel()
	assert.Equal(t, DragIdle, g.State())
	assert.Nil(t, g.Active())

	// A cancelled gesture produces nothing on drop.
	intent := g.Drop(DropTarget{Kind: TargetColumn, Column: domain.ColumnDone}, nil, nil,
		columnView(nil))
	assert.Nil(t, intent)
}

func TestDropOnColumnAppends(t *testing.T) {
	t.Parallel()

	moving := posTask("9", "moving", 9000)
	done := []*domain.Task{posTask("1", "a", 1000), posTask("2", "b", 2000)}

	var g Gesture
	g.Pickup(moving)
	intent := g.Drop(
		DropTarget{Kind: TargetColumn, Column: domain.ColumnDone},
		nil, nil,
		columnView(map[domain.Column][]*domain.Task{domain.ColumnDone: done}),
	)

	require.NotNil(t, intent)
	assert.Equal(t, "9", intent.TaskID)
	assert.Equal(t, domain.ColumnDone, intent.Column)
	require.NotNil(t, intent.Prev)
	assert.Equal(t, "2", intent.Prev.ID)
	assert.Nil(t, intent.Next, "append leaves no next neighbor")
	assert.Equal(t, DragIdle, g.State())
}

func TestDropOnEmptyColumn(t *testing.T) {
	t.Parallel()

	moving := posTask("9", "moving", 9000)

	var g Gesture
	g.Pickup(moving)
	intent := g.Drop(
		DropTarget{Kind: TargetColumn, Column: domain.ColumnReview},
		nil, nil,
		columnView(nil),
	)

	require.NotNil(t, intent)
	assert.Nil(t, intent.Prev)
	assert.Nil(t, intent.Next)
}

func TestDropOnTaskInsertsBefore(t *testing.T) {
	t.Parallel()

	moving := posTask("9", "moving", 9000)
	backlog := []*domain.Task{
		posTask("1", "a", 1000),
		posTask("2", "b", 2000),
		posTask("3", "c", 3000),
	}

	var g Gesture
	g.Pickup(moving)
	// Dragged element's center is above the hovered task's center.
	intent := g.Drop(
		DropTarget{Kind: TargetTask, TaskID: "2", Column: domain.ColumnBacklog},
		rect(0, 40), rect(100, 40),
		columnView(map[domain.Column][]*domain.Task{domain.ColumnBacklog: backlog}),
	)

	require.NotNil(t, intent)
	require.NotNil(t, intent.Prev)
	assert.Equal(t, "1", intent.Prev.ID)
	require.NotNil(t, intent.Next)
	assert.Equal(t, "2", intent.Next.ID)
}

func TestDropOnTaskInsertsAfter(t *testing.T) {
	t.Parallel()

	moving := posTask("9", "moving", 9000)
	backlog := []*domain.Task{
		posTask("1", "a", 1000),
		posTask("2", "b", 2000),
		posTask("3", "c", 3000),
	}

	var g Gesture
	g.Pickup(moving)
	// Dragged element's center is below the hovered task's center.
	intent := g.Drop(
		DropTarget{Kind: TargetTask, TaskID: "2", Column: domain.ColumnBacklog},
		rect(200, 40), rect(100, 40),
		columnView(map[domain.Column][]*domain.Task{domain.ColumnBacklog: backlog}),
	)

	require.NotNil(t, intent)
	require.NotNil(t, intent.Prev)
	assert.Equal(t, "2", intent.Prev.ID)
	require.NotNil(t, intent.Next)
	assert.Equal(t, "3", intent.Next.ID)
}

func TestDropMissingGeometryDefaultsToBefore(t *testing.T) {
	t.Parallel()

	moving := posTask("9", "moving", 9000)
	backlog := []*domain.Task{posTask("1", "a", 1000), posTask("2", "b", 2000)}

	var g Gesture
	g.Pickup(moving)
	intent := g.Drop(
		DropTarget{Kind: TargetTask, TaskID: "1", Column: domain.ColumnBacklog},
		nil, nil,
		columnView(map[domain.Column][]*domain.Task{domain.ColumnBacklog: backlog}),
	)

	require.NotNil(t, intent)
	assert.Nil(t, intent.Prev)
	require.NotNil(t, intent.Next)
	assert.Equal(t, "1", intent.Next.ID)
}

func TestDropSameColumnExcludesDraggedTask(t *testing.T) {
	t.Parallel()

	moving := posTask("2", "b", 2000)
	moving.Column = domain.ColumnBacklog
	backlog := []*domain.Task{
		posTask("1", "a", 1000),
		moving,
		posTask("3", "c", 3000),
	}

	var g Gesture
	g.Pickup(moving)
	// Dropping below task 3: neighbors must never include the dragged task
	// itself even though it sits in the destination list.
	intent := g.Drop(
		DropTarget{Kind: TargetTask, TaskID: "3", Column: domain.ColumnBacklog},
		rect(300, 40), rect(200, 40),
		columnView(map[domain.Column][]*domain.Task{domain.ColumnBacklog: backlog}),
	)

	require.NotNil(t, intent)
	require.NotNil(t, intent.Prev)
	assert.Equal(t, "3", intent.Prev.ID)
	assert.Nil(t, intent.Next)
}

func TestDropOnSelfIsNoOp(t *testing.T) {
	t.Parallel()

	moving := posTask("2", "b", 2000)
	moving.Column = domain.ColumnBacklog

	var g Gesture
	g.Pickup(moving)
	intent := g.Drop(
		DropTarget{Kind: TargetTask, TaskID: "2", Column: domain.ColumnBacklog},
		nil, nil,
		columnView(nil),
	)

	assert.Nil(t, intent)
	assert.Equal(t, DragIdle, g.State())
}

func TestDropOutsideAnyTarget(t *testing.T) {
	t.Parallel()

	var g Gesture
	g.Pickup(posTask("1", "a", 1000))
	intent := g.Drop(DropTarget{Kind: TargetNone}, nil, nil, columnView(nil))

	assert.Nil(t, intent)
	assert.Equal(t, DragIdle, g.State())
}
