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

// Web server for the queens game
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/angelina-chen/Queens/client"
	"github.com/angelina-chen/Queens/puzzle"
	"github.com/angelina-chen/Queens/storage"
)

const (
	cookieName = "queensID"
	cookiePath = "/"
)

var startTime = time.Now()

func main() {
	if err := client.VerifyResources(); err != nil {
		log.Fatalf("Resource verification failed: %v", err)
	}
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.Fatalf("Storage initialization failed: %v", err)
	}
	defer storage.Close()
	log.Printf("Connected to cache at %q", cacheId)
	log.Printf("Connected to database at %q", databaseId)

	http.HandleFunc("/", serveHttp)

	// Heroku-style port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	if err := http.ListenAndServe(port, nil); err != nil {
		log.Fatal("Listener failure: ", err)
	}
}

/*

top-level dispatch

*/

func serveHttp(w http.ResponseWriter, r *http.Request) {
	if client.StaticHandler(w, r) {
		return
	}
	log.Printf("Handling %s %s...", r.Method, r.URL.Path)
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()
	session := webSession{sessionSelect(w, r)}
	switch {
	case r.URL.Path == "/":
		session.homeHandler(w, r)
	case r.URL.Path == "/generate":
		session.generateHandler(w, r)
	case strings.HasPrefix(r.URL.Path, "/solver/"):
		session.solverHandler(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/"):
		session.apiHandler(w, r)
	default:
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// errorHandler: we were panicked out of a page handler, so tell
// the user and the log.
func errorHandler(err interface{}, w http.ResponseWriter, r *http.Request) {
	log.Printf("Server error handling %s %s: %v", r.Method, r.URL.Path, err)
	e, ok := err.(error)
	if !ok {
		e = fmt.Errorf("%v", err)
	}
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(client.ErrorPage(e)))
}

/*

session handling

*/

// A webSession wraps the stored session with the web page and
// API handlers.
type webSession struct {
	*storage.Session
}

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// Browsers that move between HTTP and HTTPS against the same
// Heroku endpoint will present the same cookie on what they
// consider different sessions, so the transported protocol is
// part of the session ID.  Heroku puts the protocol in the
// X-Forwarded-Proto header.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		proto = forwarded
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no valid session cookie, start a new session with a new one
	sid := proto + "-" + strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// sessionSelect: find or create the stored session for the
// current connection.
func sessionSelect(w http.ResponseWriter, r *http.Request) *storage.Session {
	id := getCookie(w, r)
	session := &storage.Session{SID: id}
	if session.Lookup() {
		log.Printf("Found session %v, puzzle %q, on step %d.", session.SID, session.PID, session.Step)
		session.LoadStep()
	} else {
		session.StartPuzzle("default")
	}
	return session
}

/*

page handlers

*/

func (session webSession) homeHandler(w http.ResponseWriter, r *http.Request) {
	body := client.HomePage(session.SID, session.PID, storage.ListPuzzles())
	sendHTML(body, w)
}

func (session webSession) solverHandler(w http.ResponseWriter, r *http.Request) {
	pid := r.URL.Path[len("/solver/"):]
	if pid != "" && pid != session.PID {
		session.StartPuzzle(pid)
	}
	state := session.Puzzle.State()
	body := client.SolverPage(session.SID, session.PID, &state, session.Grid)
	sendHTML(body, w)
}

func sendHTML(body string, w http.ResponseWriter) {
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

/*

game API handlers

*/

// a posted move names the clicked cell
type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (session webSession) apiHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Game API requires POST", http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/move":
		session.moveHandler(w, r)
	case "/api/undo":
		session.RemoveStep()
		session.Puzzle.CheckHandler(session.Grid, w, r)
	case "/api/reset":
		session.RemoveAllSteps()
		session.Puzzle.CheckHandler(session.Grid, w, r)
	case "/api/hint":
		session.hintHandler(w, r)
	case "/api/check":
		session.Puzzle.CheckHandler(session.Grid, w, r)
	case "/api/solution":
		session.Puzzle.SolutionHandler(w, r)
	case "/api/times":
		session.timesHandler(w, r)
	default:
		http.Error(w, "No such endpoint: "+r.URL.Path, http.StatusNotFound)
	}
}

// moveHandler cycles the clicked cell's state and replies with
// the board's standing.
func (session webSession) moveHandler(w http.ResponseWriter, r *http.Request) {
	var move moveRequest
	if e := json.NewDecoder(r.Body).Decode(&move); e != nil {
		http.Error(w, "Can't decode move: "+e.Error(), http.StatusBadRequest)
		return
	}
	sidelen := session.Puzzle.SideLength
	if move.Row < 0 || move.Row >= sidelen || move.Col < 0 || move.Col >= sidelen {
		http.Error(w, "Move is off the board", http.StatusBadRequest)
		return
	}
	session.SetCell(puzzle.Cell{Row: move.Row, Col: move.Col},
		nextCellState(session.Grid[move.Row][move.Col]))
	session.Puzzle.CheckHandler(session.Grid, w, r)
}

// nextCellState: each click cycles a cell through empty, queen,
// excluded.
func nextCellState(s puzzle.CellState) puzzle.CellState {
	switch s {
	case puzzle.CellEmpty:
		return puzzle.CellMarker
	case puzzle.CellMarker:
		return puzzle.CellExcluded
	default:
		return puzzle.CellEmpty
	}
}

// hintHandler replies with the next solution cell for the
// session's board and places the queen there, so a hint always
// advances the board no matter what the cell held before.  A
// board that contradicts the stored solution gets a conflict
// status so the client can tell the player to back up.
func (session webSession) hintHandler(w http.ResponseWriter, r *http.Request) {
	reply, e := session.Puzzle.HintHandler(session.Grid, w, r)
	if e == nil && !reply.Done {
		session.SetCell(reply.Cell, puzzle.CellMarker)
	}
}

// a solve time report averages over every player's recorded
// solves of the session's puzzle
type timesReply struct {
	Count       int   `json:"count"`
	AverageMsec int64 `json:"avgMsec"`
}

func (session webSession) timesHandler(w http.ResponseWriter, r *http.Request) {
	average, count := storage.AverageSolveTime(session.PID)
	sendJSON(&timesReply{Count: count, AverageMsec: average.Milliseconds()},
		http.StatusOK, w)
}

// generateHandler composes a new puzzle, publishes it, and moves
// the session onto it before the state response goes out.
func (session webSession) generateHandler(w http.ResponseWriter, r *http.Request) {
	p, e := puzzle.GenerateHandler(w, r)
	if e != nil {
		return // GenerateHandler already responded
	}
	pid := storage.SavePuzzle(p)
	session.StartPuzzle(pid)
	log.Printf("Session %v generated and started puzzle %q.", session.SID, pid)
	p.StateHandler(w, r)
}

func sendJSON(obj interface{}, status int, w http.ResponseWriter) {
	body, e := json.Marshal(obj)
	if e != nil {
		panic(e)
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
