package domain

import "fmt"

// Column identifies one of the fixed board columns. Each column is an
// independently ordered group of tasks.
type Column string

// The board's fixed column set. Tasks always live in exactly one of these.
const (
	ColumnBacklog    Column = "backlog"
	ColumnInProgress Column = "in-progress"
	ColumnReview     Column = "review"
	ColumnDone       Column = "done"
)

// DefaultColumn is where tasks land when no column is specified at creation.
const DefaultColumn = ColumnBacklog

// Columns returns the fixed column set in board order.
func Columns() []Column {
	return []Column{ColumnBacklog, ColumnInProgress, ColumnReview, ColumnDone}
}

// IsValid reports whether c is one of the fixed board columns.
func (c Column) IsValid() bool {
	switch c {
	case ColumnBacklog, ColumnInProgress, ColumnReview, ColumnDone:
		return true
	}
	return false
}

// Label returns the human-readable column name for display at the boundary.
func (c Column) Label() string {
	switch c {
	case ColumnBacklog:
		return "Backlog"
	case ColumnInProgress:
		return "In Progress"
	case ColumnReview:
		return "Review"
	case ColumnDone:
		return "Done"
	default:
		return string(c)
	}
}

// ParseColumn validates a raw column name from an external source.
// Returns ErrInvalidColumn if the name is not one of the fixed columns.
func ParseColumn(s string) (Column, error) {
	c := Column(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColumn, s)
	}
	return c, nil
}
