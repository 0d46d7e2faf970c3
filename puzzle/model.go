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

// Package puzzle provides a model for Queens puzzles and
// operations on them.  It supports both a golang interface and a
// web interface to the puzzles.
//
// A Queens puzzle is an N-by-N board partitioned into N labeled,
// connected regions.  A solution places exactly one marker in
// every row, every column, and every region, with no two markers
// on touching cells (horizontally, vertically, or diagonally
// adjacent).  Puzzles published by this package are guaranteed
// to have exactly one such solution.
//
// The package has two search layers.  The classic placement
// solver (solver.go) enumerates traditional non-attacking-queens
// placements, which are cheap to find; the composer (compose.go)
// uses one such placement as a structural seed, grows a region
// partition around it, and then re-enumerates solutions under
// the puzzle rules to confirm the seed is the only one.  Play
// against a published puzzle goes through the live validator and
// hint engine (play.go), which never re-run the composer's
// search.
package puzzle

/*

Core types

*/

// A Placement is an ordered sequence of column positions, one
// per row: Placement[row] = column, 0-indexed.  Placements
// produced by the solvers never repeat a column.
type Placement []int

// Equal reports whether two placements are identical.
func (p Placement) Equal(q Placement) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Regions is a partition of the board's cells into labeled
// groups: Regions[row][col] = label in [0, N).  A well-formed
// partition over an N-by-N board has exactly N labels, every
// label non-empty, and every label's cell set 4-connected.
type Regions [][]int

// A Cell is a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// A Difficulty selects the region-growth heuristic used during
// generation.  It has no effect on the rule set.
type Difficulty string

// The supported difficulties.
const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

// Check returns nil for a known difficulty.
func (d Difficulty) Check() error {
	if d != Easy && d != Hard {
		return Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: DifficultyAttribute,
			Condition: InvalidArgumentCondition,
			Values:    ErrorData{string(d)},
		}
	}
	return nil
}

// A Puzzle is a published puzzle record: the board size, the
// region partition, the canonical (unique) solution, and the
// difficulty the partition was grown for.  Records are immutable
// once published; play state lives in a Grid, never here.
type Puzzle struct {
	SideLength int        `json:"sidelen"`
	Difficulty Difficulty `json:"difficulty"`
	Regions    Regions    `json:"regions"`
	Solution   Placement  `json:"solution"`
}

// A State is the player-facing view of a Puzzle: everything but
// the solution.
type State struct {
	SideLength int        `json:"sidelen"`
	Difficulty Difficulty `json:"difficulty"`
	Regions    Regions    `json:"regions"`
}

// State returns the player-facing view of a puzzle.
func (p *Puzzle) State() State {
	return State{SideLength: p.SideLength, Difficulty: p.Difficulty, Regions: p.Regions}
}

/*

Region partition checking

*/

// Check verifies that a partition is well formed for the given
// side length: square shape, labels in range, exactly sidelen
// non-empty labels, and every label's cell set 4-connected.
func (rs Regions) Check(sidelen int) error {
	if sidelen <= 0 {
		return argumentError(SideLengthAttribute, sidelen, TooSmallCondition, 1)
	}
	if len(rs) != sidelen {
		return Error{
			Scope:     RegionScope,
			Structure: AttributeValueStructure,
			Attribute: RegionsAttribute,
			Condition: NonSquareCondition,
			Values:    ErrorData{len(rs)},
		}
	}
	counts := make([]int, sidelen)
	for _, row := range rs {
		if len(row) != sidelen {
			return Error{
				Scope:     RegionScope,
				Structure: AttributeValueStructure,
				Attribute: RegionsAttribute,
				Condition: NonSquareCondition,
				Values:    ErrorData{len(row)},
			}
		}
		for _, label := range row {
			if label < 0 || label >= sidelen {
				return Error{
					Scope:     RegionScope,
					Structure: AttributeValueStructure,
					Attribute: LabelAttribute,
					Condition: OutOfRangeCondition,
					Values:    ErrorData{label, sidelen},
				}
			}
			counts[label]++
		}
	}
	for label, count := range counts {
		if count == 0 {
			return Error{
				Scope:     RegionScope,
				Structure: AttributeValueStructure,
				Attribute: LabelAttribute,
				Condition: WrongRegionCountCondition,
				Values:    ErrorData{sidelen, label},
			}
		}
	}
	for label := 0; label < sidelen; label++ {
		if rs.regionCellCount(label) != counts[label] {
			return Error{
				Scope:     RegionScope,
				Structure: AttributeValueStructure,
				Attribute: LabelAttribute,
				Condition: DisconnectedCondition,
				Values:    ErrorData{label},
			}
		}
	}
	return nil
}

// regionCellCount flood-fills label's cell set from its first
// cell (reading order) and returns the number of cells reached.
// Comparing against the label's total count detects
// disconnected regions.
func (rs Regions) regionCellCount(label int) int {
	sidelen := len(rs)
	var start Cell
	found := false
	for r := 0; r < sidelen && !found; r++ {
		for c := 0; c < sidelen && !found; c++ {
			if rs[r][c] == label {
				start, found = Cell{r, c}, true
			}
		}
	}
	if !found {
		return 0
	}
	seen := make([]bool, sidelen*sidelen)
	stack := []Cell{start}
	seen[start.Row*sidelen+start.Col] = true
	count := 0
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := cell.Row+d[0], cell.Col+d[1]
			if nr < 0 || nr >= sidelen || nc < 0 || nc >= sidelen {
				continue
			}
			if rs[nr][nc] != label || seen[nr*sidelen+nc] {
				continue
			}
			seen[nr*sidelen+nc] = true
			stack = append(stack, Cell{nr, nc})
		}
	}
	return count
}

/*

Puzzle rule set

*/

// ValidateSolution is a stateless check that a fully specified
// placement satisfies all four puzzle rules against the given
// partition: one marker per row (implied by the placement
// shape), per column, per region, and no two markers within
// Chebyshev distance 1.  A placement or partition of the wrong
// shape is simply not a solution.
func ValidateSolution(placement Placement, regions Regions) bool {
	sidelen := len(regions)
	if sidelen == 0 || len(placement) != sidelen {
		return false
	}
	for _, row := range regions {
		if len(row) != sidelen {
			return false
		}
	}
	for row, col := range placement {
		if col < 0 || col >= sidelen {
			return false
		}
		if puzzleConflict(regions, placement[:row], col, row) {
			return false
		}
	}
	return true
}

// puzzleConflict is the composer rule set's conflict predicate:
// column-uniqueness, region-uniqueness, and adjacency exclusion
// against the placed prefix.  Row-uniqueness is structural.
// Because markers sit one per row, adjacency can only occur
// against the row directly above.
func puzzleConflict(regions Regions, prefix Placement, col, row int) bool {
	label := regions[row][col]
	for r, c := range prefix {
		if c == col {
			return true
		}
		if row-r == 1 && abs(c-col) <= 1 {
			return true
		}
		if regions[r][c] == label {
			return true
		}
	}
	return false
}

// FindSolutions enumerates placements satisfying the puzzle rule
// set for the given partition, stopping after maxResults.  The
// composer always calls this with a cap of 2: it only ever needs
// to know whether a second solution exists, never the unbounded
// solution set.  The partition is checked first; a malformed one
// is an error, not an empty result.
func FindSolutions(regions Regions, maxResults int) ([]Placement, error) {
	sidelen := len(regions)
	if err := regions.Check(sidelen); err != nil {
		return nil, err
	}
	conflict := func(prefix Placement, col, row int) bool {
		return puzzleConflict(regions, prefix, col, row)
	}
	return runSearch(sidelen, maxResults, ascendingOrder(sidelen), conflict), nil
}
