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
	"encoding/json"
	"fmt"
	"net/http"
)

/*

Puzzle Creation

*/

// A GenerateRequest is the posted body for GenerateHandler.
type GenerateRequest struct {
	SideLength int        `json:"sidelen"`
	Difficulty Difficulty `json:"difficulty"`
}

// generateAttempts bounds the composition retries made for one
// generate request before the last failure goes to the client.
const generateAttempts = 16

// GenerateHandler is a POST handler that reads a JSON-encoded
// GenerateRequest from the request body and composes a new
// puzzle with a verified unique solution.  Composition is
// probabilistic, so generation failures are retried before the
// last failure is sent as a 400 response.  On success nothing is
// sent: the full puzzle record is returned to the golang caller,
// which publishes it and then sends the player-facing state with
// StateHandler, so the client never hears about a puzzle that
// isn't stored yet.
//
// If we can't decode the posted request, we send a 400 response
// and return the error to the caller.
func GenerateHandler(w http.ResponseWriter, r *http.Request) (*Puzzle, error) {
	dec := json.NewDecoder(r.Body)
	var req GenerateRequest
	e := dec.Decode(&req)
	if e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	var p *Puzzle
	for i := 0; i < generateAttempts; i++ {
		p, e = Generate(req.SideLength, req.Difficulty)
		if e == nil || !IsGenerationFailure(e) {
			break
		}
	}
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"GenerateHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	return p, nil
}

/*

Puzzle Download Methods

*/

// StateHandler responds with the player-facing puzzle state: the
// board size, the region partition, and the difficulty, but
// never the solution.
func (p *Puzzle) StateHandler(w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	return writeJSON(p.State(), http.StatusOK, w, r)
}

// SolutionHandler responds with the puzzle's canonical solution.
// The web layer decides who may call this (e.g., after a solve
// or an explicit give-up).
func (p *Puzzle) SolutionHandler(w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	return writeJSON(struct {
		Solution Placement `json:"solution"`
	}{p.Solution}, http.StatusOK, w, r)
}

/*

Board Checks

*/

// A CheckReply reports a board's standing against its puzzle.
type CheckReply struct {
	Valid bool   `json:"valid"`
	Phase string `json:"phase"`
}

// CheckHandler responds with the given board's live-check result
// and session phase.  The board is the caller's session state,
// handed in as an argument rather than read from the request, so
// posted bodies never bypass the stored session.  The poster and
// the caller both get the reply (or the error).
func (p *Puzzle) CheckHandler(grid Grid, w http.ResponseWriter, r *http.Request) (*CheckReply, error) {
	if p == nil {
		return nil, writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	phase, e := Assess(grid, p)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"CheckHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	reply := &CheckReply{Valid: phase != PhaseConflict, Phase: phase.String()}
	return reply, writeJSON(reply, http.StatusOK, w, r)
}

// A HintReply carries one derived cell.  Done means the board
// already holds the whole solution, so there is nothing to hint.
type HintReply struct {
	Cell Cell `json:"cell"`
	Done bool `json:"done"`
}

// HintHandler responds with the next solution cell for the first
// unsatisfied row of the given board.  Like CheckHandler, the
// board is the caller's session state.  A board that contradicts
// the stored solution gets the contradiction Error as a 409
// response, distinct from the done reply.
func (p *Puzzle) HintHandler(grid Grid, w http.ResponseWriter, r *http.Request) (*HintReply, error) {
	if p == nil {
		return nil, writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	cell, found, e := Hint(grid, p)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"HintHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		status := http.StatusBadRequest
		if IsContradiction(err) {
			status = http.StatusConflict
		}
		return nil, writeJSON(err, status, w, r)
	}
	reply := &HintReply{Cell: cell, Done: !found}
	return reply, writeJSON(reply, http.StatusOK, w, r)
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	noPuzzleError
	errorFormatError
)

// writeError sends back a server error of the given type, sort
// of like http.Error, but it sends the JSON form of an
// appropriate Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case noPuzzleError:
		status = http.StatusNotFound
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeValueStructure,
			Attribute: URLAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case errorFormatError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values: ErrorData{
				"writeError",
				fmt.Sprintf("Unknown handler error type (%v)", et),
			},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller, as follows:
//
// 1. If writeJSON encounters an encoding error sending the
// response, it will create an Error object describing the
// failure, encode that Error as a 500-series response to the
// client, and return that Error to the handler.
//
// 2. If no encoding error occurs, but the handler is sending an
// Error object as the response to the client, writeJSON will
// return that same Error to the handler.
//
// 3. If no encoding error occurs, and the handler is sending a
// non-Error object as the response to the client, writeJSON will
// return nil to the handler.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an Encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means that the JSON encoding system is
			// dead, so pseudo-encode the error by hand by
			// returning the Error's summary as a quoted string.
			status = http.StatusInternalServerError // probably was already!
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			// generate, send, and return an encoding error
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
