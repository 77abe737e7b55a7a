// Package order implements the position algebra: pure functions that compute
// fractional position keys for inserting a task between two neighbors in a
// column's ordering.
package order

import (
	"math"
	"time"

	"github.com/mindluster/kanban-api/internal/domain"
)

const (
	// Gap is the spacing left around a new position when only one neighbor
	// is positioned. It leaves headroom for future insertions between
	// adjacent tasks without immediate renumbering.
	Gap = 1024

	// MinGap is the precision threshold below which repeated subdivision is
	// considered exhausted. Insertions between neighbors closer than this
	// should trigger a renumbering pass of the column.
	MinGap = 1e-6
)

// Between computes a position key that sorts strictly between prev and next,
// which must already be adjacent at the insertion point in sorted order.
// Either neighbor may be nil (insertion at the head, the tail, or into an
// empty column) or unpositioned (tasks in the trailing unpositioned run).
//
// The rules, in order:
//   - both neighbors positioned: their arithmetic mean
//   - only next positioned (inserting at head): next - Gap
//   - only prev positioned (tail, or before the unpositioned run): prev + Gap
//   - neither positioned: the current timestamp in milliseconds, so untouched
//     items keep their "most recent first" default ordering
func Between(prev, next *domain.Task) float64 {
	po := position(prev)
	no := position(next)

	switch {
	case po != nil && no != nil:
		return (*po + *no) / 2
	case po != nil:
		return *po + Gap
	case no != nil:
		return *no - Gap
	default:
		return float64(time.Now().UnixMilli())
	}
}

// Exhausted reports whether the interval around pos relative to its neighbors
// has shrunk below MinGap. Repeated insertion between the same two neighbors
// halves the interval each time; on finite-precision floats this eventually
// collapses two distinct positions to equal values, breaking strict ordering.
func Exhausted(prev, next *domain.Task, pos float64) bool {
	po := position(prev)
	no := position(next)
	if po != nil && math.Abs(pos-*po) < MinGap {
		return true
	}
	if no != nil && math.Abs(*no-pos) < MinGap {
		return true
	}
	return false
}

// Renumbered returns evenly spaced replacement positions for n tasks:
// Gap, 2*Gap, 3*Gap, ... This restores full subdivision headroom after
// Exhausted reports a collapsed interval.
func Renumbered(n int) []float64 {
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = float64(i+1) * Gap
	}
	return positions
}

func position(t *domain.Task) *float64 {
	if t == nil {
		return nil
	}
	return t.Position
}
