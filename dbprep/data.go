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
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/angelina-chen/Queens/puzzle"
	"github.com/jackc/pgx/v5"
)

/*

entries

*/

type dataFunction func(context.Context, pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/queens?sslmode=disable"
	}
	ctx := context.Background()

	// open the database, defer the close
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback(ctx)
				panic(e)
			}
		}()
		if err := fn(ctx, tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

sample puzzles

*/

// The hand-checked starter puzzle: its partition admits exactly
// one placement, [1 3 0 2].
var defaultPuzzle = &puzzle.Puzzle{
	SideLength: 4,
	Difficulty: puzzle.Easy,
	Regions: puzzle.Regions{
		{0, 0, 1, 1},
		{0, 0, 1, 1},
		{2, 2, 2, 3},
		{2, 3, 3, 3},
	},
	Solution: puzzle.Placement{1, 3, 0, 2},
}

// DefaultPuzzleId is the ID of the puzzle new sessions start on.
// It's derived from the hand-checked starter, so it's available
// as soon as the package is linked, without composing anything.
var DefaultPuzzleId = defaultPuzzle.Hash()

// The generated samples, by shape.  The starter puzzle always
// comes first and isn't listed here.
var sampleShapes = []struct {
	sidelen int
	diff    puzzle.Difficulty
}{
	{6, puzzle.Easy},
	{7, puzzle.Hard},
	{8, puzzle.Easy},
	{8, puzzle.Hard},
}

var (
	samplesOnce    sync.Once
	samplePuzzles  []*puzzle.Puzzle
	samplesFailure error
)

// sampleSet composes the sample puzzles on first use and memoizes
// the result.  Composition draws from fixed generator seeds, so
// the sample set is the same on every load; it runs only when a
// data load or unload actually needs the samples, and a failure
// comes back as an error rather than taking the process down.
func sampleSet() ([]*puzzle.Puzzle, error) {
	samplesOnce.Do(func() {
		samplePuzzles = []*puzzle.Puzzle{defaultPuzzle}
		for _, shape := range sampleShapes {
			p, err := composeSample(shape.sidelen, shape.diff)
			if err != nil {
				samplePuzzles, samplesFailure = nil, err
				return
			}
			samplePuzzles = append(samplePuzzles, p)
		}
	})
	return samplePuzzles, samplesFailure
}

func composeSample(sidelen int, diff puzzle.Difficulty) (*puzzle.Puzzle, error) {
	var err error
	for seed := int64(1); seed <= 64; seed++ {
		var p *puzzle.Puzzle
		if p, err = puzzle.NewGenerator(seed).Generate(sidelen, diff); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("No %v %dx%d sample composed: %v", diff, sidelen, sidelen, err)
}

// Create and insert the sample puzzles
func insertSamples(ctx context.Context, tx pgx.Tx) error {
	// idempotency: if the default puzzle already exists, we are done
	var count int64
	row := tx.QueryRow(ctx, "SELECT COUNT(*) FROM puzzles "+
		"WHERE puzzleId = $1", DefaultPuzzleId)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("Database error looking for puzzle %q: %v", DefaultPuzzleId, err)
	}
	if count > 0 {
		return nil
	}

	samples, err := sampleSet()
	if err != nil {
		return err
	}

	// get the timestamp of this load
	now := time.Now()

	for i, p := range samples {
		regions := make([]int32, 0, p.SideLength*p.SideLength)
		for _, row := range p.Regions {
			for _, label := range row {
				regions = append(regions, int32(label)) // use 4-byte ints in database
			}
		}
		solution := make([]int32, p.SideLength)
		for r, col := range p.Solution {
			solution[r] = int32(col)
		}
		_, err := tx.Exec(ctx,
			"INSERT INTO puzzles (puzzleId, sideLength, difficulty, regionList, solutionList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6)",
			p.Hash(), int32(p.SideLength), string(p.Difficulty), regions, solution, now)
		if err != nil {
			return fmt.Errorf("Database error saving sample puzzle %d: %v", i, err)
		}
	}
	return nil
}

// Delete the sample puzzles
func deleteSamples(ctx context.Context, tx pgx.Tx) error {
	samples, err := sampleSet()
	if err != nil {
		return err
	}
	for i, p := range samples {
		hash := p.Hash()
		// solve times reference their puzzle, so they go first
		_, err := tx.Exec(ctx,
			"DELETE from solve_times where puzzleId = $1", hash)
		if err != nil {
			return fmt.Errorf("Database error deleting solves of sample %d: %v", i, err)
		}
		_, err = tx.Exec(ctx,
			"DELETE from puzzles where puzzleId = $1", hash)
		if err != nil {
			return fmt.Errorf("Database error deleting sample puzzle %d: %v", i, err)
		}
	}
	return nil
}
