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

package dbprep

import (
	"strings"
	"testing"

	"github.com/angelina-chen/Queens/puzzle"
)

// every sample must be a publishable puzzle: well-formed
// partition, exactly one solution, and that solution stored
func TestSampleData(t *testing.T) {
	samples, err := sampleSet()
	if err != nil {
		t.Fatalf("Samples didn't compose: %v", err)
	}
	if len(samples) != len(sampleShapes)+1 {
		t.Fatalf("Got %d samples, expected %d", len(samples), len(sampleShapes)+1)
	}
	if DefaultPuzzleId != samples[0].Hash() {
		t.Errorf("Default puzzle isn't the first sample")
	}
	seen := map[string]bool{}
	for i, p := range samples {
		if e := p.Regions.Check(p.SideLength); e != nil {
			t.Errorf("Sample %d has a bad partition: %v", i, e)
			continue
		}
		solutions, e := puzzle.FindSolutions(p.Regions, 2)
		if e != nil {
			t.Errorf("Sample %d can't be searched: %v", i, e)
			continue
		}
		if len(solutions) != 1 || !solutions[0].Equal(p.Solution) {
			t.Errorf("Sample %d solutions are %v, stored %v", i, solutions, p.Solution)
		}
		if seen[p.Hash()] {
			t.Errorf("Sample %d repeats an earlier sample", i)
		}
		seen[p.Hash()] = true
	}
}

// the default puzzle ID must be known without composing anything
func TestDefaultPuzzleId(t *testing.T) {
	if DefaultPuzzleId == "" {
		t.Fatalf("No default puzzle ID")
	}
	if DefaultPuzzleId != defaultPuzzle.Hash() {
		t.Errorf("Default puzzle ID isn't the starter's hash")
	}
	if DefaultPuzzleId != strings.ToLower(DefaultPuzzleId) {
		t.Errorf("ID %s contains a non-lowercase letter.", DefaultPuzzleId)
	}
}
