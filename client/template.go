package client

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/angelina-chen/Queens/puzzle"
)

/*

solver pages

*/

// A templateSolverPage contains the values to fill the solver
// page template.
type templateSolverPage struct {
	SessionID, PuzzleID       string
	Title, TopHead            string
	IconFile, CssFile, JsFile string
	SideLength                int
	Puzzle                    templatePuzzle
	ApplicationFooter         string
}

// templatePuzzle is the structure expected by the board grid
// section of the solver page template.
type templatePuzzle [][]templatePuzzleCell

// A templatePuzzleCell contains the cell's index, display value,
// and CSS styling classes as expected by the board grid section
// of the solver page template.  Shade colors the cell by its
// region; RBorder and BBorder thicken the edges where the region
// changes.
type templatePuzzleCell struct {
	Index            int
	Value            template.HTML
	Shade            string
	RBorder, BBorder string
}

// the cycle of region color classes in the solver stylesheet
const regionShadeCount = 8

// add solver statics to the static list
func init() {
	staticResourcePaths["/solver.js"] = filepath.Join("solver", "board.js")
	staticResourcePaths["/solver.css"] = filepath.Join("solver", "board.css")
}

// SolverPage executes the solver page template over the passed
// session, puzzle state, and board, and returns the solver page
// content as a string.  If there is an error, what's returned is
// the error page content as a string.
func SolverPage(sessionID string, puzzleID string, state *puzzle.State, grid puzzle.Grid) string {
	tp, err := queensTemplatePuzzle(state, grid)
	if err != nil {
		return ErrorPage(err)
	}

	tsp := templateSolverPage{
		SessionID:         sessionID,
		PuzzleID:          puzzleID,
		Title:             fmt.Sprintf("%s: Solver", brandName),
		TopHead:           fmt.Sprintf("Puzzle Solver"),
		IconFile:          iconPath,
		CssFile:           "/solver.css",
		JsFile:            "/solver.js",
		SideLength:        state.SideLength,
		Puzzle:            tp,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("solver")
	if err != nil {
		return ErrorPage(fmt.Errorf("Couldn't load the %q template: %v", "solver", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tsp)
	if err != nil {
		return ErrorPage(err)
	}
	return buf.String()
}

// queensTemplatePuzzle takes a puzzle state and the player's
// board and returns the appropriate templatePuzzle.  Errors mean
// the state and board shapes don't agree.
func queensTemplatePuzzle(state *puzzle.State, grid puzzle.Grid) (templatePuzzle, error) {
	slen := state.SideLength
	if len(state.Regions) != slen {
		return nil, fmt.Errorf("Region row count is %v, side length %v.", len(state.Regions), slen)
	}
	if len(grid) != slen {
		return nil, fmt.Errorf("Board row count is %v, side length %v.", len(grid), slen)
	}
	rows := make(templatePuzzle, slen)
	for i := 0; i < slen; i++ {
		if len(state.Regions[i]) != slen || len(grid[i]) != slen {
			return nil, fmt.Errorf("Row %v is not %v cells wide.", i, slen)
		}
		rows[i] = make([]templatePuzzleCell, slen)
		for j := 0; j < slen; j++ {
			label := state.Regions[i][j]
			value := template.HTML("&nbsp;")
			switch grid[i][j] {
			case puzzle.CellMarker:
				value = template.HTML("&#9819;") // crown
			case puzzle.CellExcluded:
				value = template.HTML("&times;")
			}
			// thick borders where the region changes
			rborder, bborder := "thin", "thin"
			if j == slen-1 || state.Regions[i][j+1] != label {
				rborder = "thick"
			}
			if i == slen-1 || state.Regions[i+1][j] != label {
				bborder = "thick"
			}
			rows[i][j] = templatePuzzleCell{
				Index:   i*slen + j + 1,
				Value:   value,
				Shade:   fmt.Sprintf("region-%d", label%regionShadeCount),
				RBorder: rborder,
				BBorder: bborder,
			}
		}
	}
	return rows, nil
}

/*

error pages

*/

// A templateErrorPage contains the values to fill the error page
// template.
type templateErrorPage struct {
	Title, TopHead, Message string
	IconFile, ReportBugPage string
	ApplicationFooter       string
}

// ErrorPage returns error page content for an error.
func ErrorPage(e error) string {
	tep := templateErrorPage{
		Title:             fmt.Sprintf("%s: Error", brandName),
		TopHead:           fmt.Sprintf("Error Page"),
		Message:           e.Error(),
		IconFile:          iconPath,
		ReportBugPage:     reportBugPath,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("error")
	if err != nil {
		return fmt.Sprintf("Couldn't load the %q template: %v", "error", err)
	}

	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tep)
	if err != nil {
		return fmt.Sprintf("A templating error has occurred: %v", err)
	}
	return buf.String()
}

/*

home page

*/

// A templateHomePage contains the values to fill the home page
// template.
type templateHomePage struct {
	SessionID, PuzzleID       string
	Title, TopHead            string
	IconFile, CssFile, JsFile string
	PuzzleIDs                 []string
	ApplicationFooter         string
}

// add home statics to the static list
func init() {
	staticResourcePaths["/home.js"] = filepath.Join("home", "home.js")
	staticResourcePaths["/home.css"] = filepath.Join("home", "home.css")
}

// HomePage executes the home page template over the passed
// session and puzzle IDs, and returns the home page content as a
// string.  If there is an error, what's returned is the error
// page content as a string.
func HomePage(sessionID string, puzzleID string, puzzleIDs []string) string {
	thp := templateHomePage{
		SessionID:         sessionID,
		PuzzleID:          puzzleID,
		Title:             fmt.Sprintf("%s: Home", brandName),
		TopHead:           fmt.Sprintf("%s", brandName),
		IconFile:          iconPath,
		CssFile:           "/home.css",
		JsFile:            "/home.js",
		PuzzleIDs:         puzzleIDs,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("home")
	if err != nil {
		return ErrorPage(fmt.Errorf("Couldn't load the %q template: %v", "home", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, thp)
	if err != nil {
		return ErrorPage(err)
	}
	return buf.String()
}

/*

application footer

*/

// applicationFooter - the application footer that shows at the
// bottom of all pages.
func applicationFooter() string {
	appName := os.Getenv(applicationNameEnvVar)
	appEnv := os.Getenv(applicationEnvEnvVar)
	appVersion := os.Getenv(applicationVersionEnvVar)
	appInstance := os.Getenv(applicationInstanceEnvVar)
	appBuild := os.Getenv(applicationBuildEnvVar)

	if appName == "" {
		appName = brandName
	}

	if appEnv == "" {
		appEnv = "local"
	}

	if appVersion != "" {
		appVersion = " " + appVersion
	}
	if len(appBuild) >= 7 {
		appBuild = appBuild[:7]
	}

	if appInstance != "" {
		appInstance = " (dyno " + appInstance + ")"
	}

	switch appEnv {
	case "local":
		return "[" + appName + " local]"
	case "dev":
		return "[" + appName + " CI/CD]"
	case "stg":
		return "[" + appName + appVersion + " <" + appBuild + ">]"
	case "prd":
		return "[" + appName + appVersion + " <" + appBuild + ">" + appInstance + "]"
	}
	return "[" + appName + " <??>]"
}
