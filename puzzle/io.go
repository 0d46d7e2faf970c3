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
	"crypto/sha256"
	"fmt"
)

/*

Print forms of boards, for the CLI and debugging.

*/

// regionLetters are the print labels for regions.  Region labels
// are small ints, so single letters always suffice.
const regionLetters = "abcdefghijklmnopqrstuvwxyz"

func labelString(label int) string {
	if label < 0 || label >= len(regionLetters) {
		return "?"
	}
	return string(regionLetters[label])
}

// String gives a pretty-printed view of a placement: Q marks
// markers, dots mark empty squares.
func (p Placement) String() (result string) {
	sidelen := len(p)
	for row := 0; row < sidelen; row++ {
		for col := 0; col < sidelen; col++ {
			if p[row] == col {
				result += "Q"
			} else {
				result += "."
			}
			if col < sidelen-1 {
				result += " "
			}
		}
		result += "\n"
	}
	return
}

// String gives a letter grid of the partition, one letter per
// region.
func (rs Regions) String() (result string) {
	for _, row := range rs {
		for c, label := range row {
			result += labelString(label)
			if c < len(row)-1 {
				result += " "
			}
		}
		result += "\n"
	}
	return
}

// String gives the player's view of a grid: Q for markers, x for
// excluded cells, dots for empty squares.
func (grid Grid) String() (result string) {
	for _, row := range grid {
		for c, state := range row {
			switch state {
			case CellMarker:
				result += "Q"
			case CellExcluded:
				result += "x"
			default:
				result += "."
			}
			if c < len(row)-1 {
				result += " "
			}
		}
		result += "\n"
	}
	return
}

// String gives a combined view of a puzzle: region letters, with
// the solution's markers uppercased.
func (p *Puzzle) String() (result string) {
	if p == nil {
		return
	}
	result = fmt.Sprintf("%dx%d %s puzzle:\n", p.SideLength, p.SideLength, p.Difficulty)
	for r, row := range p.Regions {
		for c, label := range row {
			ls := labelString(label)
			if p.Solution[r] == c {
				ls = fmt.Sprintf("%c", ls[0]-'a'+'A')
			}
			result += ls
			if c < len(row)-1 {
				result += " "
			}
		}
		result += "\n"
	}
	return
}

// String names a cell in row,col form.
func (cell Cell) String() string {
	return fmt.Sprintf("(%d,%d)", cell.Row, cell.Col)
}

// Hash computes the content-derived identifier of a puzzle.  The
// same puzzle always hashes to the same identifier, so stores can
// deduplicate published puzzles by ID.
func (p *Puzzle) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s:%v:%v", p.SideLength, p.Difficulty, p.Regions, p.Solution)
	return fmt.Sprintf("%x", h.Sum(nil)[:12])
}
