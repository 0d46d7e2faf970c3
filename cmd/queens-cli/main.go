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

// Command-line client for the queens game
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/angelina-chen/Queens/puzzle"
	"github.com/angelina-chen/Queens/storage"
)

func main() {
	// establish storage connections
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.Printf("Storage initialization failed: %v", err)
		shutdown(startupFailureShutdown)
	}
	defer storage.Close()
	log.Printf("Connected to cache at %q", cacheId)
	log.Printf("Connected to database at %q", databaseId)

	// catch signals
	shutdownOnSignal()

	// serve
	if err := listener(os.Stdout, os.Stdin); err != nil {
		log.Printf("CLI failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// line buffer size, variable so tests can shrink it
var bufsize = 4096

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, bufsize), bufsize)
	for {
		if prompt {
			fmt.Fprintf(out, "queens> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if prompt {
					fmt.Fprintf(out, " (read error)\n")
				}
				return err
			}
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		}
		r := &request{inline: strings.Trim(scanner.Text(), " \t\r\n")}
		args := strings.Split(r.inline, " ")
		r.command = strings.ToLower(args[0])
		switch r.command {
		case "":
			continue
		case "quit":
			fallthrough
		case "exit":
			return nil
		}
		for _, arg := range args[1:] {
			if len(arg) > 0 {
				r.args = append(r.args, strings.ToLower(arg))
			}
		}
		dispatchCommand(out, r)
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(*storage.Session, io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"back", "", "undo the last move", backHandler},
		{"check", "", "check the board against the rules", checkHandler},
		{"clear", "cell", "empty a cell", clearHandler},
		{"exclude", "cell", "mark a cell as excluded", excludeHandler},
		{"generate", "sidelen difficulty", "compose and publish a new puzzle", generateHandler},
		{"hint", "", "place the next queen of the solution", hintHandler},
		{"list", "", "list the published puzzle IDs", listHandler},
		{"mark", "cell", "place a queen in a cell", markHandler},
		{"reset", "[puzzleID]", "restart this or another puzzle", stateHandler},
		{"session", "[sessionID]", "get/set session info", summaryHandler},
		{"show", "", "show the current board", stateHandler},
		{"solution", "", "reveal the stored solution", solutionHandler},
		{"state", "", "show the current board", stateHandler},
		{"summary", "", "show current session summary", summaryHandler},
		{"times", "", "show recorded solve times for this puzzle", timesHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
		return
	}
	session := sessionSelect(w, r)
	ci.handler(session, w, r)
}

/*

request handlers

*/

func backHandler(session *storage.Session, w io.Writer, r *request) {
	if session.Step <= 1 {
		fmt.Fprintf(w, "No moves to undo.\n")
		return
	}
	session.RemoveStep()
	stateHandler(session, w, r)
}

// parseCell reads a board coordinate like "b3": row letter, then
// 1-based column number.
func parseCell(arg string, sidelen int) (puzzle.Cell, error) {
	if len(arg) < 2 {
		return puzzle.Cell{}, fmt.Errorf("cell (%s) must be a row letter and a column number", arg)
	}
	row := int(arg[0] - 'a')
	if row < 0 || row >= sidelen {
		return puzzle.Cell{}, fmt.Errorf("cell (%s) row is out of range", arg)
	}
	col, err := strconv.Atoi(arg[1:])
	if err != nil {
		return puzzle.Cell{}, fmt.Errorf("cell (%s) column is not a number", arg)
	}
	if col < 1 || col > sidelen {
		return puzzle.Cell{}, fmt.Errorf("cell (%s) column is out of range", arg)
	}
	return puzzle.Cell{Row: row, Col: col - 1}, nil
}

func markHandler(session *storage.Session, w io.Writer, r *request) {
	setCellHandler(session, w, r, puzzle.CellMarker)
}

func excludeHandler(session *storage.Session, w io.Writer, r *request) {
	setCellHandler(session, w, r, puzzle.CellExcluded)
}

func clearHandler(session *storage.Session, w io.Writer, r *request) {
	setCellHandler(session, w, r, puzzle.CellEmpty)
}

func setCellHandler(session *storage.Session, w io.Writer, r *request, state puzzle.CellState) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	cell, err := parseCell(r.args[0], session.Puzzle.SideLength)
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	session.SetCell(cell, state)
	stateHandler(session, w, r)
	if session.Finished != "" && puzzle.Solved(session.Grid, session.Puzzle) {
		fmt.Fprintf(w, "Puzzle solved!\n")
	}
}

func hintHandler(session *storage.Session, w io.Writer, r *request) {
	cell, found, err := puzzle.Hint(session.Grid, session.Puzzle)
	if err != nil {
		if puzzle.IsContradiction(err) {
			fmt.Fprintf(w, "Your queens contradict the solution; undo some moves first.\n")
			return
		}
		panic(err)
	}
	if !found {
		fmt.Fprintf(w, "The board is already complete.\n")
		return
	}
	session.SetCell(cell, puzzle.CellMarker)
	fmt.Fprintf(w, "Placed a queen at %v:\n", cell)
	stateHandler(session, w, r)
	if session.Finished != "" && puzzle.Solved(session.Grid, session.Puzzle) {
		fmt.Fprintf(w, "Puzzle solved!\n")
	}
}

func checkHandler(session *storage.Session, w io.Writer, r *request) {
	phase, err := puzzle.Assess(session.Grid, session.Puzzle)
	if err != nil {
		panic(err)
	}
	switch phase {
	case puzzle.PhaseConflict:
		fmt.Fprintf(w, "There is a conflict on the board.\n")
	default:
		fmt.Fprintf(w, "Looking good: %v.\n", phase)
	}
}

func solutionHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "Solution of puzzle %q:\n%v", session.PID, session.Puzzle.Solution)
}

func stateHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "Regions:\n%vBoard:\n%v", session.Puzzle.Regions, session.Grid)
}

func summaryHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "Session %q solving puzzle %q on move %d\n",
		session.SID, session.PID, session.Step)
	queens, excluded := 0, 0
	for _, row := range session.Grid {
		for _, state := range row {
			switch state {
			case puzzle.CellMarker:
				queens++
			case puzzle.CellExcluded:
				excluded++
			}
		}
	}
	fmt.Fprintf(w, "Side length: %v; Difficulty: %v; Queens: %d; Excluded cells: %d\n",
		session.Puzzle.SideLength, session.Puzzle.Difficulty, queens, excluded)
}

func timesHandler(session *storage.Session, w io.Writer, r *request) {
	times := storage.SolveTimes(session.PID)
	if len(times) == 0 {
		fmt.Fprintf(w, "No recorded solves of puzzle %q.\n", session.PID)
		return
	}
	fmt.Fprintf(w, "Recorded solves of puzzle %q, fastest first:\n", session.PID)
	for _, elapsed := range times {
		fmt.Fprintf(w, "    %v\n", elapsed)
	}
	average, count := storage.AverageSolveTime(session.PID)
	fmt.Fprintf(w, "Average over all %d solves: %v\n", count, average)
}

func listHandler(session *storage.Session, w io.Writer, r *request) {
	ids := storage.ListPuzzles()
	fmt.Fprintf(w, "There are %d published puzzles:\n", len(ids))
	for _, id := range ids {
		fmt.Fprintf(w, "    %s\n", id)
	}
}

// generateAttempts bounds the composition retries made for one
// generate command before the last failure is reported.
const generateAttempts = 16

func generateHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return
	}
	sidelen, err := strconv.Atoi(r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s side length (%s) must be a number", r.command, r.args[0]), w, r)
		return
	}
	var p *puzzle.Puzzle
	var e error
	for i := 0; i < generateAttempts; i++ {
		p, e = puzzle.Generate(sidelen, puzzle.Difficulty(r.args[1]))
		if e == nil || !puzzle.IsGenerationFailure(e) {
			break
		}
	}
	if e != nil {
		fmt.Fprintf(w, "Generation failed: %v\n", e)
		return
	}
	pid := storage.SavePuzzle(p)
	session.StartPuzzle(pid)
	fmt.Fprintf(w, "Published puzzle %q and started solving it:\n", pid)
	stateHandler(session, w, r)
}

func usageHandler(msg string, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-18s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	log.Printf("Server error executing %q: %v\n", r.inline, err)
}

/*

session handling

*/

// cookie for the command line
var defaultCookie string

var startTime = time.Now() // instance start-up time

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
func getCookie(w io.Writer, r *request) string {
	// look to see if the user is specifying a cookie
	if r.command == "session" && len(r.args) > 0 {
		defaultCookie = r.args[0]
	}

	// look for an existing session cookie
	if len(defaultCookie) != 0 {
		return defaultCookie
	}

	// no session cookie: start a new session with a new ID.
	// poor man's UUID for the session in local mode: time since startup.
	sid := strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	log.Printf("No session cookie found, created new session ID %q", sid)
	defaultCookie = sid
	return sid
}

// sessionSelect: find or create the session for the current
// command.
func sessionSelect(w io.Writer, r *request) *storage.Session {
	id := getCookie(w, r)
	// check to see if this is a force reset of the session
	forceReset, resetID := r.command == "reset", ""
	if forceReset && len(r.args) > 0 {
		resetID = r.args[0]
	}
	session := &storage.Session{SID: id}
	// load session from storage if possible, otherwise just initialize it
	if session.Lookup() {
		log.Printf("Found session %v, puzzle %q, on step %d.", session.SID, session.PID, session.Step)
		if forceReset {
			session.StartPuzzle(resetID)
		} else {
			session.LoadStep()
		}
	} else if forceReset {
		session.StartPuzzle(resetID)
	} else {
		session.StartPuzzle("default")
	}
	return session
}

/*

coordinate shutdown across goroutines and top-level listener

*/

type shutdownCause int

const (
	unknownShutdown = iota
	startupFailureShutdown
	caughtSignalShutdown
	listenerFailureShutdown
)

// for testing, allow alternate forms of shutdown
var alternateShutdown func(reason shutdownCause)

// shutdown: process exit with logging.
func shutdown(reason shutdownCause) {
	storage.Close()

	// for testing: run alternateShutdown instead, if defined
	if alternateShutdown != nil {
		alternateShutdown(reason)
		panic(reason) // shouldn't get here
	}

	// log reason for shutdown and exit
	switch reason {
	case unknownShutdown:
		log.Fatal("Exiting: normal shutdown.")
	case startupFailureShutdown:
		log.Fatal("Exiting: initialization failure.")
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: command listener failed.")
	default:
		log.Fatal("Exiting: unknown cause.")
	}
}

// shutdownOnSignal: catch signals and exit.
func shutdownOnSignal() {
	// based on example in os.signal godoc
	c := make(chan os.Signal, 1)
	signal.Notify(c) // die on all signals

	go func() {
		s := <-c
		log.Printf("Received OS-level signal: %v", s)
		shutdown(caughtSignalShutdown)
	}()
}
