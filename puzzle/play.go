// Queens - a web-based regional queens game.
// Copyright (C) 2026 Angelina Chen.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package puzzle

/*

Live validation and hints

These operate on the player's in-progress board, not on a
canonical Placement.  The board is a grid of per-cell states
owned by the play session; the session consults LiveCheck after
every move for conflict feedback, Hint when the player asks for
help, and Solved to detect completion.  None of these re-run the
composer's search: hints are lookups against the stored canonical
solution.

*/

// A CellState is the player-visible state of one board cell.
type CellState int

// The cell states.  Excluded is the player's own bookkeeping
// mark for "no marker can go here"; the rules ignore it.
const (
	CellEmpty CellState = iota
	CellMarker
	CellExcluded
	MaxCellState
)

// A Grid is the player's N-by-N board.  It is transient and
// mutable, created at session start and discarded at session
// end; published Puzzle records never contain one.
type Grid [][]CellState

// NewGrid returns an empty grid for the given side length.
func NewGrid(sidelen int) Grid {
	grid := make(Grid, sidelen)
	for r := range grid {
		grid[r] = make([]CellState, sidelen)
	}
	return grid
}

// markers collects the coordinates of the grid's placed markers
// in reading order.
func (grid Grid) markers() []Cell {
	var cells []Cell
	for r, row := range grid {
		for c, state := range row {
			if state == CellMarker {
				cells = append(cells, Cell{r, c})
			}
		}
	}
	return cells
}

// check verifies the grid's shape and cell states against a side
// length.
func (grid Grid) check(sidelen int) error {
	if len(grid) != sidelen {
		return Error{
			Scope:     BoardScope,
			Structure: AttributeValueStructure,
			Attribute: GridAttribute,
			Condition: NonSquareCondition,
			Values:    ErrorData{len(grid)},
		}
	}
	for _, row := range grid {
		if len(row) != sidelen {
			return Error{
				Scope:     BoardScope,
				Structure: AttributeValueStructure,
				Attribute: GridAttribute,
				Condition: NonSquareCondition,
				Values:    ErrorData{len(row)},
			}
		}
		for _, state := range row {
			if state < CellEmpty || state >= MaxCellState {
				return Error{
					Scope:     BoardScope,
					Structure: AttributeValueStructure,
					Attribute: CellAttribute,
					Condition: OutOfRangeCondition,
					Values:    ErrorData{int(state), int(MaxCellState)},
				}
			}
		}
	}
	return nil
}

// LiveCheck reports whether the markers currently placed on the
// grid are mutually consistent with the puzzle rules: no two
// placed markers share a row, column, or region, and no two
// touch.  Completeness is not required; an empty board is
// consistent.  A malformed grid or partition is an error, not a
// silent false.
func LiveCheck(grid Grid, regions Regions) (bool, error) {
	sidelen := len(regions)
	if err := regions.Check(sidelen); err != nil {
		return false, err
	}
	if err := grid.check(sidelen); err != nil {
		return false, err
	}
	cells := grid.markers()
	for i, a := range cells {
		for _, b := range cells[:i] {
			if a.Row == b.Row || a.Col == b.Col {
				return false, nil
			}
			if abs(a.Row-b.Row) <= 1 && abs(a.Col-b.Col) <= 1 {
				return false, nil
			}
			if regions[a.Row][a.Col] == regions[b.Row][b.Col] {
				return false, nil
			}
		}
	}
	return true, nil
}

// Hint derives the next cell that must hold a marker, given the
// player's current board and the stored canonical solution.  It
// scans rows in ascending order and returns the solution's
// marker for the first row the player hasn't satisfied; found is
// false once every solution marker is on the board.
//
// A marker on any cell where the solution has none means the
// board can no longer reach the solution; that case returns a
// distinct contradiction error (see IsContradiction) rather than
// a misleading hint or a silent "none".
func Hint(grid Grid, puz *Puzzle) (cell Cell, found bool, err error) {
	if err := grid.check(puz.SideLength); err != nil {
		return Cell{}, false, err
	}
	for _, m := range grid.markers() {
		if puz.Solution[m.Row] != m.Col {
			return Cell{}, false, Error{
				Scope:     BoardScope,
				Structure: AttributeValueStructure,
				Attribute: CellAttribute,
				Condition: ContradictionCondition,
				Values:    ErrorData{m},
			}
		}
	}
	for row, col := range puz.Solution {
		if grid[row][col] != CellMarker {
			return Cell{row, col}, true, nil
		}
	}
	return Cell{}, false, nil
}

// Solved reports whether the grid holds exactly the canonical
// solution's markers: every row's solution cell is marked and no
// other cell is.  Excluded flags don't matter.
func Solved(grid Grid, puz *Puzzle) bool {
	if len(grid) != puz.SideLength {
		return false
	}
	for r, row := range grid {
		if len(row) != puz.SideLength {
			return false
		}
		for c, state := range row {
			marked := state == CellMarker
			if marked != (puz.Solution[r] == c) {
				return false
			}
		}
	}
	return true
}

/*

Session phases

*/

// A Phase summarizes a board against its puzzle for the session
// state machine: Empty -> Partial -> {Partial, Conflict,
// Solved}.  Conflict is recoverable by undoing the offending
// move; Solved is terminal and triggers solve-time recording.
type Phase int

// The phases.
const (
	PhaseEmpty Phase = iota
	PhasePartial
	PhaseConflict
	PhaseSolved
)

// String names a phase for logs and clients.
func (ph Phase) String() string {
	switch ph {
	case PhaseEmpty:
		return "empty"
	case PhasePartial:
		return "partial"
	case PhaseConflict:
		return "conflict"
	case PhaseSolved:
		return "solved"
	}
	return "unknown"
}

// Assess classifies a board against its puzzle.
func Assess(grid Grid, puz *Puzzle) (Phase, error) {
	ok, err := LiveCheck(grid, puz.Regions)
	if err != nil {
		return PhaseEmpty, err
	}
	if !ok {
		return PhaseConflict, nil
	}
	if Solved(grid, puz) {
		return PhaseSolved, nil
	}
	if len(grid.markers()) == 0 {
		return PhaseEmpty, nil
	}
	return PhasePartial, nil
}
