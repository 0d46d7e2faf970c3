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
	"reflect"
	"testing"
)

/*

Test values

*/

var (
	// A hand-verified 4x4 puzzle: the partition admits exactly one
	// placement under the puzzle rules.
	solution4 = Placement{1, 3, 0, 2}
	regions4  = Regions{
		{0, 0, 1, 1},
		{0, 0, 1, 1},
		{2, 2, 2, 3},
		{2, 3, 3, 3},
	}
	puzzle4 = &Puzzle{SideLength: 4, Difficulty: Easy, Regions: regions4, Solution: solution4}

	// Column-shaped regions: region uniqueness collapses into
	// column uniqueness, so both step-two placements survive.
	columnRegions4 = Regions{
		{0, 1, 2, 3},
		{0, 1, 2, 3},
		{0, 1, 2, 3},
		{0, 1, 2, 3},
	}
)

/*

Region partition checking

*/

type regionsCheckTestcase struct {
	name      string
	regions   Regions
	condition ErrorCondition
}

func TestRegionsCheck(t *testing.T) {
	tcs := []regionsCheckTestcase{
		{"ragged rows", Regions{{0, 0}, {1}}, NonSquareCondition},
		{"label too big", Regions{{0, 4}, {1, 1}}, OutOfRangeCondition},
		{"label negative", Regions{{0, -1}, {1, 1}}, OutOfRangeCondition},
		{"missing label", Regions{{0, 0}, {0, 0}}, WrongRegionCountCondition},
		{"disconnected region", Regions{
			{0, 1, 0},
			{1, 1, 1},
			{0, 2, 2},
		}, DisconnectedCondition},
	}
	for _, tc := range tcs {
		e := tc.regions.Check(len(tc.regions))
		if e == nil {
			t.Errorf("%s: no error from Check", tc.name)
			continue
		}
		err, ok := e.(Error)
		if !ok {
			t.Errorf("%s: non-Error error from Check: %v", tc.name, e)
			continue
		}
		if err.Condition != tc.condition {
			t.Errorf("%s: condition %v (expected %v)", tc.name, err.Condition, tc.condition)
		}
	}
	if e := regions4.Check(4); e != nil {
		t.Errorf("Well-formed partition rejected: %v", e)
	}
	if e := (Regions{{0}}).Check(1); e != nil {
		t.Errorf("Trivial partition rejected: %v", e)
	}
	if e := Regions(nil).Check(0); e == nil {
		t.Errorf("Zero side length accepted")
	}
}

/*

Solution validation

*/

func TestValidateSolution(t *testing.T) {
	if !ValidateSolution(solution4, regions4) {
		t.Errorf("Canonical solution rejected")
	}
	// one violating case per rule
	if ValidateSolution(Placement{1, 3, 0}, regions4) {
		t.Errorf("Short placement accepted (row rule)")
	}
	if ValidateSolution(Placement{1, 3, 1, 3}, regions4) {
		t.Errorf("Duplicate columns accepted (column rule)")
	}
	if ValidateSolution(Placement{2, 0, 3, 1}, regions4) {
		t.Errorf("Region collision accepted (region rule)")
	}
	if ValidateSolution(Placement{1, 2, 0, 3}, regions4) {
		t.Errorf("Touching markers accepted (adjacency rule)")
	}
	// the adjacent-swap case: markers land in the same region
	if ValidateSolution(Placement{1, 3, 2, 0}, regions4) {
		t.Errorf("Swapped placement accepted")
	}
	// out-of-board columns are not solutions
	if ValidateSolution(Placement{1, 3, 0, 7}, regions4) {
		t.Errorf("Out-of-range column accepted")
	}
	if ValidateSolution(Placement{1, 3, 0, -1}, regions4) {
		t.Errorf("Negative column accepted")
	}
	// pure predicate: same answer twice
	if ValidateSolution(solution4, regions4) != ValidateSolution(solution4, regions4) {
		t.Errorf("ValidateSolution is not stable")
	}
}

/*

Solution enumeration

*/

func TestFindSolutions(t *testing.T) {
	// the verified partition has exactly one solution
	solns, e := FindSolutions(regions4, 2)
	if e != nil {
		t.Fatalf("FindSolutions failed: %v", e)
	}
	if len(solns) != 1 || !solns[0].Equal(solution4) {
		t.Errorf("Got solutions %v (expected just %v)", solns, solution4)
	}

	// column regions admit both step-two placements
	solns, e = FindSolutions(columnRegions4, 10)
	if e != nil {
		t.Fatalf("FindSolutions failed: %v", e)
	}
	expected := []Placement{{1, 3, 0, 2}, {2, 0, 3, 1}}
	if !reflect.DeepEqual(solns, expected) {
		t.Errorf("Got solutions %v (expected %v)", solns, expected)
	}

	// the cap stops the scan at the second solution
	solns, e = FindSolutions(columnRegions4, 2)
	if e != nil {
		t.Fatalf("FindSolutions failed: %v", e)
	}
	if len(solns) != 2 {
		t.Errorf("Capped scan returned %d solutions", len(solns))
	}
	solns, e = FindSolutions(columnRegions4, 1)
	if e != nil {
		t.Fatalf("FindSolutions failed: %v", e)
	}
	if len(solns) != 1 {
		t.Errorf("Capped scan returned %d solutions", len(solns))
	}

	// malformed partitions are errors, not empty results
	if _, e = FindSolutions(Regions{{0, 0}, {0, 0}}, 2); e == nil {
		t.Errorf("Malformed partition accepted")
	}
	if _, e = FindSolutions(nil, 2); e == nil {
		t.Errorf("Empty partition accepted")
	}
}

func TestPlacementEqual(t *testing.T) {
	if !solution4.Equal(Placement{1, 3, 0, 2}) {
		t.Errorf("Equal placements not equal")
	}
	if solution4.Equal(Placement{1, 3, 0}) || solution4.Equal(Placement{1, 3, 0, 1}) {
		t.Errorf("Unequal placements equal")
	}
}

func TestPuzzleState(t *testing.T) {
	state := puzzle4.State()
	if state.SideLength != 4 || state.Difficulty != Easy {
		t.Errorf("State scalars wrong: %+v", state)
	}
	if !reflect.DeepEqual(state.Regions, regions4) {
		t.Errorf("State regions wrong: %v", state.Regions)
	}
}
