package order

import (
	"testing"
	"time"

	"github.com/mindluster/kanban-api/internal/domain"
)

func positioned(id string, pos float64) *domain.Task {
	return &domain.Task{ID: id, Title: "t", Position: &pos}
}

func unpositioned(id string) *domain.Task {
	return &domain.Task{ID: id, Title: "t"}
}

func TestBetween(t *testing.T) {
	t.Parallel()

	// Both neighbors positioned: arithmetic mean.
	if got := Between(positioned("a", 1000), positioned("b", 2000)); got != 1500 {
		t.Errorf("Expected 1500, got %f", got)
	}

	// Head insertion: one gap before the first positioned task. Repeated
	// head insertions walk into negative territory, which is fine.
	if got := Between(nil, positioned("b", 10)); got != 10-Gap {
		t.Errorf("Expected %f, got %f", float64(10-Gap), got)
	}

	// Tail insertion: one gap after the last positioned task.
	if got := Between(positioned("a", 3000), nil); got != 3000+Gap {
		t.Errorf("Expected %f, got %f", float64(3000+Gap), got)
	}

	// An unpositioned neighbor counts as absent.
	if got := Between(positioned("a", 3000), unpositioned("b")); got != 3000+Gap {
		t.Errorf("Expected unpositioned next to be ignored, got %f", got)
	}

	// Neither neighbor positioned: current timestamp in milliseconds.
	before := float64(time.Now().UnixMilli())
	got := Between(nil, nil)
	after := float64(time.Now().UnixMilli())
	if got < before || got > after {
		t.Errorf("Expected timestamp in [%f, %f], got %f", before, after, got)
	}
}

func TestBetweenOrdering(t *testing.T) {
	t.Parallel()

	// The computed key must sort strictly between its neighbors for any
	// positioned pair with room left.
	pairs := [][2]float64{
		{0, 1024},
		{-5000, -4000},
		{1, 2},
		{1024, 1025},
	}
	for _, pair := range pairs {
		got := Between(positioned("a", pair[0]), positioned("b", pair[1]))
		if got <= pair[0] || got >= pair[1] {
			t.Errorf("Expected %f < key < %f, got %f", pair[0], pair[1], got)
		}
	}
}

func TestExhausted(t *testing.T) {
	t.Parallel()

	prev := positioned("a", 1000)
	next := positioned("b", 2000)
	if Exhausted(prev, next, 1500) {
		t.Error("Expected wide interval not to be exhausted")
	}

	// Interval narrower than the precision threshold.
	tight := positioned("c", 1000+MinGap/4)
	mid := Between(prev, tight)
	if !Exhausted(prev, tight, mid) {
		t.Error("Expected collapsed interval to be exhausted")
	}

	// Edge insertions never exhaust.
	if Exhausted(nil, next, *next.Position-Gap) {
		t.Error("Expected head insertion not to be exhausted")
	}
	if Exhausted(prev, nil, *prev.Position+Gap) {
		t.Error("Expected tail insertion not to be exhausted")
	}
}

func TestRepeatedSubdivisionEventuallyExhausts(t *testing.T) {
	t.Parallel()

	prev := positioned("a", 0)
	next := positioned("b", Gap)

	exhausted := false
	for i := 0; i < 64; i++ {
		pos := Between(prev, next)
		if Exhausted(prev, next, pos) {
			exhausted = true
			break
		}
		// Keep inserting between prev and the freshly placed task.
		next = positioned("n", pos)
	}

	if !exhausted {
		t.Error("Expected repeated subdivision to exhaust the interval")
	}
}

func TestRenumbered(t *testing.T) {
	t.Parallel()

	got := Renumbered(4)
	want := []float64{Gap, 2 * Gap, 3 * Gap, 4 * Gap}
	if len(got) != len(want) {
		t.Fatalf("Expected %d positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected position %f at %d, got %f", want[i], i, got[i])
		}
	}

	if len(Renumbered(0)) != 0 {
		t.Error("Expected no positions for an empty column")
	}
}
