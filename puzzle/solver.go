package puzzle

import (
	"math/rand"
)

/*

Classic placement solver

The solver enumerates placements of N non-attacking queens on an
N-by-N board: one marker per row, no two markers sharing a column
or a diagonal.  These placements are cheap to find and are used
as structural seeds by the composer, which later re-verifies them
under the weaker region-and-adjacency rule set.

The search is depth-first over rows, with an explicit trial
cursor per row instead of native recursion, so deep boards don't
grow the call stack.  The walk works like this:

1. At the current row, advance the row's trial cursor through
the column-trial order until a column without conflicts is found.

2. If a column is found, place a marker there and move down a
row.  A full board is recorded as a result; the search then backs
up one row and continues, so later results are found in the same
pass.

3. If the row's cursor exhausts the trial order, reset it, remove
the marker above, and resume that row's cursor where it left off.
When the top row exhausts its cursor the space is exhausted.

No partial state leaks between sibling branches: the only state
is the placement prefix and the per-row cursors, and both are
unwound on every backtrack.

Randomization, when wanted, is performed by permuting the
column-trial order before the search starts, never mid-search, so
a fixed order (or a fixed random seed) makes the search fully
deterministic.

*/

// HasConflict reports whether appending candidate column col at
// row to the placed prefix would violate column-uniqueness or
// diagonal-uniqueness against any previously placed row.  Pure,
// O(len(prefix)).
func HasConflict(prefix Placement, col, row int) bool {
	for r, c := range prefix {
		if c == col {
			return true
		}
		if abs(c-col) == abs(r-row) {
			return true
		}
	}
	return false
}

// SearchPlacements collects up to maxResults classic placements
// for the given side length, trying columns in ascending order.
// It returns the placements in discovery order; fewer than
// maxResults means the space was exhausted (notably, side
// lengths 2 and 3 have no placements at all).  A non-positive
// side length or maxResults yields an empty result without any
// search work.
func SearchPlacements(sidelen, maxResults int) []Placement {
	return runSearch(sidelen, maxResults, ascendingOrder(sidelen), HasConflict)
}

// searchRandomized is SearchPlacements with the column-trial
// order shuffled up front; used by the composer for variety
// across generations.
func searchRandomized(sidelen, maxResults int, rng *rand.Rand) []Placement {
	order := ascendingOrder(sidelen)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return runSearch(sidelen, maxResults, order, HasConflict)
}

// A conflictFunc tests whether column col can be placed at row
// against an already placed prefix.  The classic solver and the
// composer's uniqueness search share the row-walk below and
// differ only in this predicate.
type conflictFunc func(prefix Placement, col, row int) bool

// runSearch is the row-by-row backtracking walk described at the
// top of the file.
func runSearch(sidelen, maxResults int, order []int, conflict conflictFunc) []Placement {
	if sidelen <= 0 || maxResults <= 0 {
		return nil
	}
	var found []Placement
	placement := make(Placement, 0, sidelen)
	cursor := make([]int, sidelen) // next trial index, per row
	for {
		row := len(placement)
		if row == sidelen {
			found = append(found, append(Placement(nil), placement...))
			if len(found) >= maxResults {
				return found
			}
			// back up a row and keep searching
			row--
			placement = placement[:row]
		}
		for cursor[row] < sidelen {
			col := order[cursor[row]]
			cursor[row]++
			if !conflict(placement, col, row) {
				placement = append(placement, col)
				break
			}
		}
		if len(placement) == row {
			// row exhausted; rewind to the row above
			cursor[row] = 0
			if row == 0 {
				return found
			}
			placement = placement[:row-1]
		}
	}
}

func ascendingOrder(sidelen int) []int {
	if sidelen <= 0 {
		return nil
	}
	order := make([]int, sidelen)
	for i := range order {
		order[i] = i
	}
	return order
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
