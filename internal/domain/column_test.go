package domain

import (
	"errors"
	"testing"
)

func TestColumnIsValid(t *testing.T) {
	t.Parallel()

	for _, c := range Columns() {
		if !c.IsValid() {
			t.Errorf("Expected %q to be valid", c)
		}
	}

	for _, raw := range []string{"", "Backlog", "doing", "archive"} {
		if Column(raw).IsValid() {
			t.Errorf("Expected %q to be invalid", raw)
		}
	}
}

func TestParseColumn(t *testing.T) {
	t.Parallel()

	col, err := ParseColumn("in-progress")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col != ColumnInProgress {
		t.Errorf("Expected %q, got %q", ColumnInProgress, col)
	}

	_, err = ParseColumn("shipped")
	if !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("Expected ErrInvalidColumn, got %v", err)
	}
}

func TestColumnLabel(t *testing.T) {
	t.Parallel()

	if got := ColumnInProgress.Label(); got != "In Progress" {
		t.Errorf("Expected 'In Progress', got %q", got)
	}
	if got := Column("mystery").Label(); got != "mystery" {
		t.Errorf("Expected raw fallback, got %q", got)
	}
}
