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

import (
	"math/rand"
	"time"
)

/*

Puzzle composition

A puzzle is composed in two phases.  First a structural seed is
taken from the classic placement solver: a non-attacking-queens
placement is cheap to find and guarantees row and column
distinctness, and, because classic queens also excludes
diagonals, no two seed markers ever touch.  Then a region
partition is grown outward from the seed cells, one region per
marker, and the full solution enumeration is re-run under the
puzzle rules.  Only a partition with exactly one solution -- the
seed itself -- is published.

A freshly grown partition almost always admits extra solutions
on larger boards, so a failed check does not discard the
partition.  Instead the partition is refined: the enumeration
hands back a second solution, and one of that solution's marker
cells is reassigned to a bordering region.  The reassigned cell
was carrying the intruder's marker for its old region, so the
intruder now doubles up in the new region and dies, while the
seed solution survives every move because seed marker cells are
never reassigned and region membership of the seed markers never
changes.  Refinement repeats until the enumeration comes back
empty of intruders or no legal reassignment remains; only then
is the partition regrown, and after enough regrowths the seed
itself is discarded and a fresh one is drawn.  The retry budget
is bounded, so a generation attempt either produces a verified
puzzle or fails cleanly.

*/

// Bounds on the side lengths we'll compose puzzles for.  The
// uniqueness search is exponential in the side length, so we cut
// off well before it hurts.
const (
	MinSideLength = 1
	MaxSideLength = 12
)

// Default retry budgets.  Partition growth is cheap compared to
// the uniqueness search, so we try many partitions per seed
// before giving up on the seed.
const (
	defaultSeedAttempts      = 8
	defaultPartitionAttempts = 24
)

// A Generator composes puzzles.  Each Generator owns its random
// source, so concurrent generations use separate Generators; a
// fixed seed makes composition fully reproducible.
type Generator struct {
	rng               *rand.Rand
	SeedAttempts      int // distinct seed placements to try
	PartitionAttempts int // partitions to grow per seed
}

// NewGenerator returns a Generator drawing from the given random
// seed, with the default retry budgets.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:               rand.New(rand.NewSource(seed)),
		SeedAttempts:      defaultSeedAttempts,
		PartitionAttempts: defaultPartitionAttempts,
	}
}

// Generate composes a puzzle with a time-seeded Generator.  Use
// a Generator directly when reproducibility matters.
func Generate(sidelen int, diff Difficulty) (*Puzzle, error) {
	return NewGenerator(time.Now().UnixNano()).Generate(sidelen, diff)
}

// Generate composes a published puzzle record with a verified
// unique solution.  The returned record never has a second
// solution; if the retry budget runs out the error satisfies
// IsGenerationFailure and the caller should retry with different
// parameters (usually a smaller side length).
func (g *Generator) Generate(sidelen int, diff Difficulty) (*Puzzle, error) {
	if sidelen < MinSideLength {
		return nil, argumentError(SideLengthAttribute, sidelen, TooSmallCondition, MinSideLength)
	}
	if sidelen > MaxSideLength {
		return nil, argumentError(SideLengthAttribute, sidelen, TooLargeCondition, MaxSideLength)
	}
	if err := diff.Check(); err != nil {
		return nil, err
	}
	for attempt := 0; attempt < g.SeedAttempts; attempt++ {
		seeds := searchRandomized(sidelen, 1, g.rng)
		if len(seeds) == 0 {
			// no classic placement exists (side lengths 2 and 3);
			// retrying can't help
			break
		}
		seed := seeds[0]
		for pa := 0; pa < g.PartitionAttempts; pa++ {
			regions := g.growRegions(sidelen, seed, diff)
			if !ValidateSolution(seed, regions) {
				// can't happen for a grown partition; regrow
				continue
			}
			for moves := 0; moves <= sidelen*sidelen; moves++ {
				solutions, err := FindSolutions(regions, 2)
				if err != nil {
					return nil, err
				}
				if len(solutions) == 1 && solutions[0].Equal(seed) {
					return &Puzzle{
						SideLength: sidelen,
						Difficulty: diff,
						Regions:    regions,
						Solution:   seed,
					}, nil
				}
				intruder := solutions[0]
				if intruder.Equal(seed) {
					intruder = solutions[1]
				}
				if !g.refinePartition(regions, seed, intruder) {
					// no reassignable intruder marker; regrow
					break
				}
			}
		}
	}
	return nil, Error{
		Scope:     GenerationScope,
		Structure: ScopeStructure,
		Condition: RetriesExhaustedCondition,
		Values:    ErrorData{g.SeedAttempts * g.PartitionAttempts},
	}
}

/*

Region growth

*/

// growRegions derives a partition consistent with the seed: each
// seed marker starts its own region, and regions are grown
// outward cell by cell through 4-connected neighbors until the
// board is covered.  Growth keeps every region connected by
// construction, and covers every cell, because any unassigned
// cell always borders some region.
//
// The difficulty picks the growth heuristic.  Easy grows the
// currently smallest region, giving compact, evenly sized
// regions that need few deductions.  Hard grows a random region
// and prefers extending from its most recently added cell,
// giving irregular, elongated shapes that force deeper
// reasoning.
func (g *Generator) growRegions(sidelen int, seed Placement, diff Difficulty) Regions {
	regions := make(Regions, sidelen)
	for r := range regions {
		regions[r] = make([]int, sidelen)
		for c := range regions[r] {
			regions[r][c] = -1
		}
	}
	// cells of each region, in the order they were claimed
	claimed := make([][]Cell, sidelen)
	for row, col := range seed {
		regions[row][col] = row
		claimed[row] = []Cell{{row, col}}
	}
	remaining := sidelen*sidelen - sidelen
	for remaining > 0 {
		label := g.pickRegion(regions, claimed, diff)
		if label < 0 {
			// every region is walled in by the others; the
			// remaining cells belong to whichever neighbor
			// reaches them, found by rescanning
			label = g.anyGrowableRegion(regions, claimed)
		}
		cell := g.pickGrowthCell(regions, claimed[label], diff)
		regions[cell.Row][cell.Col] = label
		claimed[label] = append(claimed[label], cell)
		remaining--
	}
	return regions
}

// pickRegion chooses which region grows next.  Returns -1 if the
// chosen candidate can't grow, in which case the caller falls
// back to any growable region.
func (g *Generator) pickRegion(regions Regions, claimed [][]Cell, diff Difficulty) int {
	if diff == Hard {
		label := g.rng.Intn(len(claimed))
		if g.regionCanGrow(regions, claimed[label]) {
			return label
		}
		return -1
	}
	// easy: smallest region first, random among ties
	best, bestSize := -1, 0
	for label, cells := range claimed {
		if !g.regionCanGrow(regions, cells) {
			continue
		}
		switch {
		case best < 0 || len(cells) < bestSize:
			best, bestSize = label, len(cells)
		case len(cells) == bestSize && g.rng.Intn(2) == 0:
			best = label
		}
	}
	return best
}

// anyGrowableRegion returns some region that still borders an
// unassigned cell.  Growth only calls this when unassigned cells
// remain, and every unassigned cell borders an assigned one, so
// a growable region always exists.
func (g *Generator) anyGrowableRegion(regions Regions, claimed [][]Cell) int {
	start := g.rng.Intn(len(claimed))
	for i := 0; i < len(claimed); i++ {
		label := (start + i) % len(claimed)
		if g.regionCanGrow(regions, claimed[label]) {
			return label
		}
	}
	panic("growRegions: no growable region with cells remaining")
}

func (g *Generator) regionCanGrow(regions Regions, cells []Cell) bool {
	for _, cell := range cells {
		if len(unassignedNeighbors(regions, cell)) > 0 {
			return true
		}
	}
	return false
}

// pickGrowthCell chooses the unassigned cell the region claims
// next.  Hard prefers continuing from the most recently claimed
// cell, walking backward through the region's history, which
// produces elongated arms.  Easy picks uniformly over the whole
// frontier, which produces blobs.
func (g *Generator) pickGrowthCell(regions Regions, cells []Cell, diff Difficulty) Cell {
	if diff == Hard {
		for i := len(cells) - 1; i >= 0; i-- {
			open := unassignedNeighbors(regions, cells[i])
			if len(open) > 0 {
				return open[g.rng.Intn(len(open))]
			}
		}
		panic("pickGrowthCell: region has no room to grow")
	}
	var frontier []Cell
	for _, cell := range cells {
		frontier = append(frontier, unassignedNeighbors(regions, cell)...)
	}
	if len(frontier) == 0 {
		panic("pickGrowthCell: region has no room to grow")
	}
	return frontier[g.rng.Intn(len(frontier))]
}

/*

Partition refinement

*/

// refinePartition reassigns one marker cell of the intruding
// solution to a bordering region, which leaves the intruder one
// region short and another region doubled, so the intruder is no
// longer a solution of the partition.  Only rows where the
// intruder parts from the seed are candidates, so seed marker
// cells are never touched, and a reassignment that would
// disconnect or empty the donor region is skipped.  Reports
// false when no candidate can legally move.
func (g *Generator) refinePartition(regions Regions, seed, intruder Placement) bool {
	var rows []int
	for row := range seed {
		if intruder[row] != seed[row] {
			rows = append(rows, row)
		}
	}
	g.rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	for _, row := range rows {
		cell := Cell{Row: row, Col: intruder[row]}
		donor := regions[cell.Row][cell.Col]
		targets := borderingRegions(regions, cell, donor)
		if len(targets) == 0 {
			continue
		}
		if !connectedWithout(regions, donor, cell) {
			continue
		}
		regions[cell.Row][cell.Col] = targets[g.rng.Intn(len(targets))]
		return true
	}
	return false
}

// borderingRegions lists the distinct labels other than exclude
// among the 4-connected neighbors of the cell.
func borderingRegions(regions Regions, cell Cell, exclude int) []int {
	sidelen := len(regions)
	var labels []int
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := cell.Row+d[0], cell.Col+d[1]
		if nr < 0 || nr >= sidelen || nc < 0 || nc >= sidelen {
			continue
		}
		label := regions[nr][nc]
		if label == exclude {
			continue
		}
		seen := false
		for _, l := range labels {
			if l == label {
				seen = true
				break
			}
		}
		if !seen {
			labels = append(labels, label)
		}
	}
	return labels
}

// connectedWithout reports whether the labeled region stays
// non-empty and 4-connected when the given cell is removed from
// it.
func connectedWithout(regions Regions, label int, removed Cell) bool {
	sidelen := len(regions)
	var members []Cell
	for r := range regions {
		for c, l := range regions[r] {
			if l == label && !(r == removed.Row && c == removed.Col) {
				members = append(members, Cell{Row: r, Col: c})
			}
		}
	}
	if len(members) == 0 {
		return false
	}
	reached := map[Cell]bool{members[0]: true}
	queue := []Cell{members[0]}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := Cell{Row: cell.Row + d[0], Col: cell.Col + d[1]}
			if next.Row < 0 || next.Row >= sidelen || next.Col < 0 || next.Col >= sidelen {
				continue
			}
			if next == removed || reached[next] {
				continue
			}
			if regions[next.Row][next.Col] == label {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(reached) == len(members)
}

func unassignedNeighbors(regions Regions, cell Cell) []Cell {
	sidelen := len(regions)
	var open []Cell
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := cell.Row+d[0], cell.Col+d[1]
		if nr < 0 || nr >= sidelen || nc < 0 || nc >= sidelen {
			continue
		}
		if regions[nr][nc] == -1 {
			open = append(open, Cell{nr, nc})
		}
	}
	return open
}
