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

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelina-chen/Queens/puzzle"
	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"
)

/*

puzzle entries

*/

// A puzzleEntry represents the stored form of a published
// puzzle.  The region partition and the solution are flattened
// for storage; the entry is JSON serializable so it can go into
// the cache as well as the database.
type puzzleEntry struct {
	PuzzleId   string // content-derived ID
	SideLength int32
	Difficulty string
	Regions    []int32 // row-major region labels
	Solution   []int32 // solution column per row
}

// makePuzzleEntry: flatten a published puzzle into its stored
// form.  The ID is derived from the content, so the same puzzle
// always stores under the same ID.
func makePuzzleEntry(p *puzzle.Puzzle) *puzzleEntry {
	pe := &puzzleEntry{
		SideLength: int32(p.SideLength),
		Difficulty: string(p.Difficulty),
		Regions:    make([]int32, 0, p.SideLength*p.SideLength),
		Solution:   make([]int32, 0, p.SideLength),
	}
	for _, row := range p.Regions {
		for _, label := range row {
			pe.Regions = append(pe.Regions, int32(label))
		}
	}
	for _, col := range p.Solution {
		pe.Solution = append(pe.Solution, int32(col))
	}
	pe.PuzzleId = p.Hash()
	return pe
}

// makePuzzle: rebuild the published puzzle from a stored entry.
func (pe *puzzleEntry) makePuzzle() *puzzle.Puzzle {
	sidelen := int(pe.SideLength)
	if len(pe.Regions) != sidelen*sidelen || len(pe.Solution) != sidelen {
		panic(fmt.Errorf("Stored puzzle %q has inconsistent shape", pe.PuzzleId))
	}
	p := &puzzle.Puzzle{
		SideLength: sidelen,
		Difficulty: puzzle.Difficulty(pe.Difficulty),
		Regions:    make(puzzle.Regions, sidelen),
		Solution:   make(puzzle.Placement, sidelen),
	}
	for r := 0; r < sidelen; r++ {
		p.Regions[r] = make([]int, sidelen)
		for c := 0; c < sidelen; c++ {
			p.Regions[r][c] = int(pe.Regions[r*sidelen+c])
		}
		p.Solution[r] = int(pe.Solution[r])
	}
	return p
}

// SavePuzzle stores a published puzzle and returns its ID.
// Saving is idempotent: republishing the same puzzle reuses the
// stored entry.
func SavePuzzle(p *puzzle.Puzzle) string {
	pe := makePuzzleEntry(p)
	pe.databaseInsert()
	pe.cacheInsert()
	return pe.PuzzleId
}

// LoadPuzzle finds the published puzzle with the given ID.
// Panics if there is no such stored entry.
func LoadPuzzle(id string) *puzzle.Puzzle {
	return loadPuzzleEntry(id).makePuzzle()
}

// ListPuzzles returns the IDs of all published puzzles, smallest
// boards first.
func ListPuzzles() []string {
	var ids []string
	body := func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"SELECT puzzleId FROM puzzles ORDER BY sideLength, difficulty, puzzleId")
		if err != nil {
			return fmt.Errorf("Database error listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("Database error reading puzzle list: %v", err)
			}
			ids = append(ids, id)
		}
		return rows.Err()
	}
	pgExecute(body)
	return ids
}

// loadPuzzleEntry first checks the cache, then the database, to
// find the puzzle's entry.  If it loads from the database, it
// caches the result.  Panics if there is no such stored entry.
func loadPuzzleEntry(id string) *puzzleEntry {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe
	}
	// cache miss, load from database and save to cache
	pe.databaseLoad()
	pe.cacheInsert()
	return pe
}

// key: compute the cache key for a puzzleEntry.
func (pe *puzzleEntry) key() string {
	return rdEnv + ":PID:" + pe.PuzzleId
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *puzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzleEntry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *puzzleEntry
	err := json.Unmarshal(bytes, &spe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzleEntry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzleEntry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// databaseLoad: load a puzzle entry from the database.  Panics
// if there is no saved entry with the given id.
func (pe *puzzleEntry) databaseLoad() {
	body := func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT sideLength, difficulty, regionList, solutionList FROM puzzles "+
				"WHERE puzzleId = $1", pe.PuzzleId)
		if err := row.Scan(&pe.SideLength, &pe.Difficulty, &pe.Regions, &pe.Solution); err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		return nil
	}
	pgExecute(body)
}

// cacheInsert: insert a puzzle entry into the cache. Replaces
// any existing entry with the same id.
func (pe *puzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzleEntry %q: %v", pe.PuzzleId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a puzzle entry into the database.  An
// entry with the same content-derived id is left in place.
func (pe *puzzleEntry) databaseInsert() {
	body := func(ctx context.Context, tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO puzzles (puzzleId, sideLength, difficulty, regionList, solutionList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (puzzleId) DO NOTHING",
			pe.PuzzleId, pe.SideLength, pe.Difficulty, pe.Regions, pe.Solution, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(body)
}

/*

solve times

*/

// RecordSolveTime records a finished solve of a stored puzzle.
func RecordSolveTime(puzzleId string, elapsed time.Duration) {
	body := func(ctx context.Context, tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO solve_times (puzzleId, msec, solved) VALUES ($1, $2, $3)",
			puzzleId, elapsed.Milliseconds(), time.Now())
		if err != nil {
			err = fmt.Errorf("Database error recording solve of %q: %v", puzzleId, err)
		}
		return
	}
	pgExecute(body)
}

// SolveTimes returns the recorded solve durations of a stored
// puzzle, fastest first.
func SolveTimes(puzzleId string) []time.Duration {
	var times []time.Duration
	body := func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"SELECT msec FROM solve_times WHERE puzzleId = $1 ORDER BY msec", puzzleId)
		if err != nil {
			return fmt.Errorf("Database error listing solves of %q: %v", puzzleId, err)
		}
		defer rows.Close()
		for rows.Next() {
			var msec int64
			if err := rows.Scan(&msec); err != nil {
				return fmt.Errorf("Database error reading solve of %q: %v", puzzleId, err)
			}
			times = append(times, time.Duration(msec)*time.Millisecond)
		}
		return rows.Err()
	}
	pgExecute(body)
	return times
}

// AverageSolveTime returns the mean recorded solve duration of a
// stored puzzle, over all players, and the number of solves it
// averages over.  A puzzle with no recorded solves averages to
// zero over zero.
func AverageSolveTime(puzzleId string) (time.Duration, int) {
	var average time.Duration
	var count int64
	body := func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT COALESCE(AVG(msec), 0), COUNT(*) FROM solve_times WHERE puzzleId = $1",
			puzzleId)
		var msec float64
		if err := row.Scan(&msec, &count); err != nil {
			return fmt.Errorf("Database error averaging solves of %q: %v", puzzleId, err)
		}
		average = time.Duration(msec * float64(time.Millisecond))
		return nil
	}
	pgExecute(body)
	return average, int(count)
}
