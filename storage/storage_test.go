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
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/angelina-chen/Queens/dbprep"
	"github.com/angelina-chen/Queens/puzzle"
	"github.com/gomodule/redigo/redis"
)

/*

known-good puzzle for storage round trips

*/

var testPuzzle = &puzzle.Puzzle{
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

// The integration tests need live Redis and Postgres services;
// they only run when the environment provides them.
func storageAvailable() bool {
	return os.Getenv("QUEENS_STORAGE_TESTS") != ""
}

// we are creating sessions up the wazoo; make sure they don't
// persist past the end of the test run.
func TestMain(m *testing.M) {
	if !storageAvailable() {
		os.Exit(m.Run())
	}
	os.Setenv("DBPREP_PATH", filepath.Join("..", "dbprep"))
	if err := dbprep.ReinitializeAll(); err != nil {
		panic(fmt.Errorf("Failed to reinitialize data at startup: %v", err))
	}
	defer func(code int) {
		if code == 0 {
			if err := dbprep.ReinitializeAll(); err != nil {
				panic(fmt.Errorf("Failed to reinitialize data at teardown: %v", err))
			}
		}
		os.Exit(code)
	}(m.Run())
}

/*

stored form, no services needed

*/

func TestPuzzleEntryRoundTrip(t *testing.T) {
	pe := makePuzzleEntry(testPuzzle)
	if pe.PuzzleId == "" {
		t.Fatalf("Entry has no ID")
	}
	if len(pe.Regions) != 16 || len(pe.Solution) != 4 {
		t.Errorf("Entry has wrong shape: %d region cells, %d solution cells",
			len(pe.Regions), len(pe.Solution))
	}
	back := pe.makePuzzle()
	if !reflect.DeepEqual(back, testPuzzle) {
		t.Errorf("Round trip changed the puzzle:\nGot: %+v\nExpected: %+v", back, testPuzzle)
	}
}

func TestPuzzleSignature(t *testing.T) {
	// same content, same ID
	first, second := makePuzzleEntry(testPuzzle), makePuzzleEntry(testPuzzle)
	if first.PuzzleId != second.PuzzleId {
		t.Errorf("Same puzzle got IDs %q and %q", first.PuzzleId, second.PuzzleId)
	}
	// any content change, different ID
	changed := *testPuzzle
	changed.Difficulty = puzzle.Hard
	if makePuzzleEntry(&changed).PuzzleId == first.PuzzleId {
		t.Errorf("Different puzzles share ID %q", first.PuzzleId)
	}
}

func TestPuzzleEntryShapeCheck(t *testing.T) {
	pe := makePuzzleEntry(testPuzzle)
	pe.Regions = pe.Regions[:15]
	defer func() {
		if recover() == nil {
			t.Errorf("Didn't panic on truncated entry")
		}
	}()
	pe.makePuzzle()
}

/*

connection, puzzle round trip through the stores

*/

func TestConnect(t *testing.T) {
	if !storageAvailable() {
		t.Skip("storage services not configured")
	}
	if cid, dbid, err := Connect(); err != nil {
		t.Errorf("Couldn't connect to storage: %v", err)
	} else if cid != rdUrl || dbid != pgUrl {
		t.Errorf("Connected to wrong cache (%s) or wrong database (%s)", cid, dbid)
	}
	Close()
}

func TestSaveLoadPuzzle(t *testing.T) {
	if !storageAvailable() {
		t.Skip("storage services not configured")
	}
	if _, _, err := Connect(); err != nil {
		t.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer Close()

	id := SavePuzzle(testPuzzle)
	if again := SavePuzzle(testPuzzle); again != id {
		t.Errorf("Republishing gave id %q, first save gave %q", again, id)
	}
	if loaded := LoadPuzzle(id); !reflect.DeepEqual(loaded, testPuzzle) {
		t.Errorf("Loaded puzzle differs:\nGot: %+v\nExpected: %+v", loaded, testPuzzle)
	}

	// drop the cache entry and load again, forcing the database path
	pe := &puzzleEntry{PuzzleId: id}
	rdExecute(func(tx redis.Conn) error {
		_, err := tx.Do("DEL", pe.key())
		return err
	})
	if loaded := LoadPuzzle(id); !reflect.DeepEqual(loaded, testPuzzle) {
		t.Errorf("Database-path load differs:\nGot: %+v\nExpected: %+v", loaded, testPuzzle)
	}
}

func TestListPuzzles(t *testing.T) {
	if !storageAvailable() {
		t.Skip("storage services not configured")
	}
	if _, _, err := Connect(); err != nil {
		t.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer Close()

	id := SavePuzzle(testPuzzle)
	ids := ListPuzzles()
	found := false
	for _, listed := range ids {
		if listed == id {
			found = true
		}
	}
	if !found {
		t.Errorf("Published puzzle %q missing from listing %v", id, ids)
	}
	if len(ids) < 2 {
		t.Errorf("Expected sample puzzles in listing, got %v", ids)
	}
}

/*

operations on a single session

*/

var sid = "test session with known name"

func TestSessionOps(t *testing.T) {
	if !storageAvailable() {
		t.Skip("storage services not configured")
	}
	if _, _, err := Connect(); err != nil {
		t.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer Close()

	pid := SavePuzzle(testPuzzle)
	ts := &Session{SID: sid}
	ts.StartPuzzle(pid)
	if ts.PID != pid || ts.Step != 1 {
		t.Fatalf("Fresh session is %q step %d", ts.PID, ts.Step)
	}
	if len(ts.Grid.String()) == 0 || ts.Puzzle.SideLength != 4 {
		t.Fatalf("Fresh session has no board or puzzle")
	}

	// make two moves, undo one, and check the restored board
	ts.SetCell(puzzle.Cell{Row: 0, Col: 1}, puzzle.CellMarker)
	ts.SetCell(puzzle.Cell{Row: 2, Col: 2}, puzzle.CellExcluded)
	if ts.Step != 3 {
		t.Errorf("After two moves session is at step %d", ts.Step)
	}
	ts.RemoveStep()
	if ts.Step != 2 {
		t.Errorf("After undo session is at step %d", ts.Step)
	}
	if ts.Grid[2][2] != puzzle.CellEmpty || ts.Grid[0][1] != puzzle.CellMarker {
		t.Errorf("Undo restored the wrong board:\n%v", ts.Grid)
	}

	// a second lookup restores the same state
	other := &Session{SID: sid}
	if !other.Lookup() {
		t.Fatalf("Couldn't look up saved session")
	}
	other.LoadStep()
	if other.Step != ts.Step || !reflect.DeepEqual(other.Grid, ts.Grid) {
		t.Errorf("Reloaded session differs: step %d board\n%v", other.Step, other.Grid)
	}

	// restart clears the board
	ts.RemoveAllSteps()
	if ts.Step != 1 || len(ts.Grid.String()) == 0 {
		t.Errorf("Restart left session at step %d", ts.Step)
	}
	if !reflect.DeepEqual(ts.Grid, puzzle.NewGrid(4)) {
		t.Errorf("Restart left a dirty board:\n%v", ts.Grid)
	}

	// an unknown session is not found
	missing := &Session{SID: "no such session ever"}
	if missing.Lookup() {
		t.Errorf("Found a session that was never saved")
	}
}

func TestSessionSolveRecording(t *testing.T) {
	if !storageAvailable() {
		t.Skip("storage services not configured")
	}
	if _, _, err := Connect(); err != nil {
		t.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer Close()

	pid := SavePuzzle(testPuzzle)
	before := len(SolveTimes(pid))
	ts := &Session{SID: "test solve recording session"}
	ts.StartPuzzle(pid)
	for row, col := range testPuzzle.Solution {
		ts.SetCell(puzzle.Cell{Row: row, Col: col}, puzzle.CellMarker)
	}
	if ts.Finished == "" {
		t.Fatalf("Completed solve not marked finished")
	}
	times := SolveTimes(pid)
	if len(times) != before+1 {
		t.Errorf("Solve count went from %d to %d", before, len(times))
	}
	for _, elapsed := range times {
		if elapsed < 0 {
			t.Errorf("Negative solve time %v", elapsed)
		}
	}

	// further moves don't record again
	ts.SetCell(puzzle.Cell{Row: 0, Col: 0}, puzzle.CellExcluded)
	ts.SetCell(puzzle.Cell{Row: 0, Col: 0}, puzzle.CellEmpty)
	if len(SolveTimes(pid)) != before+1 {
		t.Errorf("Re-solve recorded a second time")
	}

	// the average covers every recorded solve
	average, count := AverageSolveTime(pid)
	if count != before+1 {
		t.Errorf("Average covers %d solves, expected %d", count, before+1)
	}
	if average < 0 {
		t.Errorf("Negative average solve time %v", average)
	}
	var total time.Duration
	for _, elapsed := range times {
		total += elapsed
	}
	if diff := average - total/time.Duration(len(times)); diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("Average %v doesn't match recorded times %v", average, times)
	}

	// a puzzle with no solves averages to zero
	average, count = AverageSolveTime("no such puzzle ever")
	if average != 0 || count != 0 {
		t.Errorf("Unsolved puzzle averages %v over %d", average, count)
	}
}
