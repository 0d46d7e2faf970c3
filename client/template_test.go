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

package client

import (
	"fmt"
	"strings"
	"testing"

	"github.com/angelina-chen/Queens/puzzle"
)

var testState = &puzzle.State{
	SideLength: 4,
	Difficulty: puzzle.Easy,
	Regions: puzzle.Regions{
		{0, 0, 1, 1},
		{0, 0, 1, 1},
		{2, 2, 2, 3},
		{2, 3, 3, 3},
	},
}

func TestErrorPage(t *testing.T) {
	body := ErrorPage(fmt.Errorf("Test Error 0"))
	for _, want := range []string{"Test Error 0", "Error Page", reportBugPath} {
		if !strings.Contains(body, want) {
			t.Errorf("Error page is missing %q:\n%v", want, body)
		}
	}
}

func TestSolverPage(t *testing.T) {
	grid := puzzle.NewGrid(4)
	grid[0][1] = puzzle.CellMarker
	grid[2][2] = puzzle.CellExcluded
	body := SolverPage("httpx-Test0", "test-0-id", testState, grid)
	wants := []string{
		`data-session="httpx-Test0"`,
		`data-puzzle="test-0-id"`,
		`data-sidelen="4"`,
		"&#9819;",  // the placed queen
		"&times;",  // the exclusion mark
		"cell-16",  // last cell of a 4x4 board
		"region-2", // one of the partition's shades
		"rb-thick", // a region edge
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("Solver page is missing %q", want)
		}
	}
	if strings.Contains(body, "Error Page") {
		t.Errorf("Solver page rendered as an error page:\n%v", body)
	}
}

func TestSolverPageShapeMismatch(t *testing.T) {
	// a board of the wrong size renders the error page
	body := SolverPage("httpx-Test1", "test-1-id", testState, puzzle.NewGrid(5))
	if !strings.Contains(body, "Error Page") {
		t.Errorf("Shape mismatch didn't render the error page:\n%v", body)
	}
}

func TestHomePage(t *testing.T) {
	body := HomePage("httpx-Test2", "test-2-id", []string{"alpha", "beta", "gamma"})
	wants := []string{
		`data-session="httpx-Test2"`,
		`data-puzzle="test-2-id"`,
		"/solver/alpha",
		"/solver/gamma",
		"difficulty",
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("Home page is missing %q", want)
		}
	}
}

func TestApplicationFooter(t *testing.T) {
	if footer := applicationFooter(); !strings.Contains(footer, brandName) {
		t.Errorf("Footer doesn't name the application: %q", footer)
	}
}
