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
	"encoding/json"
	"log"
	"time"

	"github.com/angelina-chen/Queens/dbprep"
	"github.com/angelina-chen/Queens/puzzle"
	"github.com/gomodule/redigo/redis"
)

// A Session tracks the user's current board in the solution of
// their current puzzle.  Behind the scenes, we persist every
// board the user has reached in this solve, so they can go back
// (undo) prior moves.
type Session struct {
	// these elements are persisted as part of the session
	SID      string // session ID
	PID      string // ID of puzzle being solved
	Step     int    // current step
	Created  string // RFC3339 time when this solve started
	Saved    string // RFC3339 time when the session was last saved
	Finished string // RFC3339 time when this solve finished, "" if unfinished

	// these elements are persisted in the steps, serialized as JSON
	Grid   puzzle.Grid    `redis:"-"` // board at the current step
	Puzzle *puzzle.Puzzle `redis:"-"` // puzzle being solved
}

/*

session manipulation

*/

// StartPuzzle: set the puzzle ID for the current session and
// clear any existing solve steps for that puzzle ID.  If the
// given puzzle ID is empty, try using the session's current
// puzzle ID.  If the given puzzle ID is the special value
// "default", use the default puzzle ID.
func (session *Session) StartPuzzle(pid string) {
	// change to the given pid
	if pid == "" && session.PID != "" {
		pid = session.PID
	} else if pid == "" || pid == "default" {
		pid = dbprep.DefaultPuzzleId
	}
	session.Puzzle = LoadPuzzle(pid)
	session.PID = pid
	session.Grid = puzzle.NewGrid(session.Puzzle.SideLength)

	// update the cache
	session.Created = time.Now().Format(time.RFC3339)
	session.Saved = session.Created
	session.Finished = ""
	session.Step = 1
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to start solving puzzle %q.", session.SID, session.PID)
}

// SetCell: change one cell of the board and save the new board
// as the current step.  Finishing the puzzle records the solve
// time.
func (session *Session) SetCell(cell puzzle.Cell, state puzzle.CellState) {
	session.Grid[cell.Row][cell.Col] = state
	session.addStep()
	if session.Finished == "" && puzzle.Solved(session.Grid, session.Puzzle) {
		session.recordFinish()
	}
}

// addStep: add a new current step with the current board.
func (session *Session) addStep() {
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of %s:%q step %d: %v", session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Added session %v:%v step %d.", session.SID, session.PID, session.Step)
}

// RemoveStep: remove the last step and restore the prior step's
// board.
func (session *Session) RemoveStep() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	// load the board from the cache
	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on remove to %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reverted session %v:%v to step %d.", session.SID, session.PID, session.Step)
}

// RemoveAllSteps: clear the board and restart the solve from the
// beginning.
func (session *Session) RemoveAllSteps() {
	if session.Step <= 1 {
		// nothing to do
		return
	}
	session.StartPuzzle(session.PID)
}

// Lookup: lookup a session for an ID.  A found session still
// needs LoadStep to restore its board and puzzle.
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on GET of session %q pid: %v", session.SID, err)
			return err
		}
		log.Printf("No redis saved state for session %q", session.SID)
		return nil
	}
	rdExecute(body)
	return
}

// LoadStep: load the current board from the saved step, and the
// puzzle from storage.
func (session *Session) LoadStep() {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on load of %s:%q step %d: %v", session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.Puzzle = LoadPuzzle(session.PID)
	session.unmarshalStep(bytes)
}

// recordFinish: mark the session finished and record the solve
// time against the puzzle.
func (session *Session) recordFinish() {
	now := time.Now()
	session.Finished = now.Format(time.RFC3339)
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		if err != nil {
			log.Printf("Redis error on finish of %s:%q: %v", session.SID, session.PID, err)
		}
		return
	}
	rdExecute(body)
	created, err := time.Parse(time.RFC3339, session.Created)
	if err != nil {
		log.Printf("Unparseable start time for %s:%q: %v", session.SID, session.PID, err)
		return
	}
	RecordSolveTime(session.PID, now.Sub(created))
	log.Printf("Session %v:%v solved in %v.", session.SID, session.PID, now.Sub(created))
}

/*

serialization of board state into and out of the cache

*/

// marshalStep - get JSON for the current step's board
func (session *Session) marshalStep() []byte {
	bytes, err := json.Marshal(session.Grid)
	if err != nil {
		log.Printf("Failed to marshal board of %s:%q step %d as JSON: %v",
			session.SID, session.PID, session.Step, err)
		panic(err)
	}
	return bytes
}

// unmarshalStep - get the board for the saved step
func (session *Session) unmarshalStep(bytes []byte) {
	var grid puzzle.Grid
	err := json.Unmarshal(bytes, &grid)
	if err != nil {
		log.Printf("Failed to unmarshal saved JSON of %s:%q step %d: %v",
			session.SID, session.PID, session.Step, err)
		panic(err)
	}
	session.Grid = grid
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return rdEnv + ":SID:" + session.SID
}

// stepsKey - returns the key for the session's step array
func (session *Session) stepsKey() string {
	return session.key() + ":PID:" + session.PID + ":Steps"
}
