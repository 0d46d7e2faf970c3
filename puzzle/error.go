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
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with a puzzle or a requested
// operation.  It can produce an error message in English, but
// its main function is to support localized error messaging by
// clients.  It tells the client "this thing failed to meet this
// condition", and provides supplemental details about the thing
// and the condition.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Structure ErrorStructure `json:"structure,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is
// referring to.  In the case of client errors, this is either a
// client-supplied argument or some aspect of the board or the
// region partition.  In the case of internal logic errors, this
// is where in the code the failure occurred.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	RequestScope
	ArgumentScope
	RegionScope
	BoardScope
	GenerationScope
	InternalScope
	MaxScope
)

// The ErrorStructure denotes whether the problem is in the
// overall Scope, an Attribute of the Scope, or the value of an
// Attribute of the Scope.
type ErrorStructure int

// Constants for the various structure codes.
const (
	UnknownStructure ErrorStructure = iota
	ScopeStructure
	AttributeStructure
	AttributeValueStructure
	MaxStructure
)

// The ErrorCondition is the predicate that the
// scope/attribute/value failed to satisfy.  There are a bunch of
// known, named predicates and then a "general" (arbitrary
// English string) predicate for runtime errors.
type ErrorCondition int

// Constants for the various error conditions
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	WrongRegionCountCondition
	NotCoveringCondition
	DisconnectedCondition
	OutOfRangeCondition
	UnknownLabelCondition
	DuplicateMarkerCondition
	AdjacentMarkersCondition
	RetriesExhaustedCondition
	ContradictionCondition
	NonSquareCondition
	InvalidArgumentCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	DecodeAttribute
	EncodeAttribute
	URLAttribute
	LocationAttribute
	NamedAttribute
	SideLengthAttribute
	DifficultyAttribute
	RegionsAttribute
	LabelAttribute
	CellAttribute
	PlacementAttribute
	GridAttribute
	SeedAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the value of an attribute) as well
// as the predicate itself (such as minimum required values).
//
// Every item in the slice of ErrorData is required to be
// JSON-serializable, so it can be returned to web clients.
// Sadly, there is no good way to express this condition in a way
// the compiler can check it, so we just have to rely on
// implementors to "do the right thing" and check the condition
// at runtime.
type ErrorData []interface{}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will
// produce an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case RequestScope:
		es = "Invalid request: "
	case ArgumentScope:
		es = "Invalid argument: "
	case RegionScope:
		es = "Invalid region partition: "
	case BoardScope:
		es = "Invalid board: "
	case GenerationScope:
		es = "Generation failure: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	if e.Structure == AttributeStructure || e.Structure == AttributeValueStructure {
		switch e.Attribute {
		case DecodeAttribute:
			es += "JSON Decode error"
		case EncodeAttribute:
			es += "JSON Encode error"
		case URLAttribute:
			es += "Resource path"
		case NamedAttribute:
			es += fmt.Sprint(nextVal())
		case SideLengthAttribute:
			es += "Side length"
		case DifficultyAttribute:
			es += "Difficulty"
		case RegionsAttribute:
			es += "Region partition"
		case LabelAttribute:
			es += "Region label"
		case CellAttribute:
			es += "Cell"
		case PlacementAttribute:
			es += "Placement"
		case GridAttribute:
			es += "Board grid"
		case SeedAttribute:
			es += "Seed placement"
		case LocationAttribute:
			es += fmt.Sprintf("In puzzle.%v", nextVal())
		default:
			es += "<Unknown attribute>"
		}
		if e.Structure == AttributeValueStructure {
			es += " (" + fmt.Sprint(nextVal()) + ")"
		}
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case TooLargeCondition:
		es += fmt.Sprintf("Must be at most %v", nextVal())
	case TooSmallCondition:
		es += fmt.Sprintf("Must be at least %v", nextVal())
	case WrongRegionCountCondition:
		es += fmt.Sprintf("Must have exactly %v regions", nextVal())
	case NotCoveringCondition:
		es += fmt.Sprintf("Doesn't assign every cell a region")
	case DisconnectedCondition:
		es += fmt.Sprintf("Region %v is not a connected cell set", nextVal())
	case OutOfRangeCondition:
		es += fmt.Sprintf("Must be in the range [0, %v)", nextVal())
	case UnknownLabelCondition:
		es += fmt.Sprintf("Label %v is not in the partition", nextVal())
	case DuplicateMarkerCondition:
		es += fmt.Sprintf("Multiple markers share %v", nextVal())
	case AdjacentMarkersCondition:
		es += fmt.Sprintf("Markers at %v and %v are touching", nextVal(), nextVal())
	case RetriesExhaustedCondition:
		es += fmt.Sprintf("No single-solution partition found in %v attempts", nextVal())
	case ContradictionCondition:
		es += fmt.Sprintf("Marker at %v contradicts the puzzle solution", nextVal())
	case NonSquareCondition:
		es += fmt.Sprintf("Not a square grid")
	case InvalidArgumentCondition:
		es += fmt.Sprintf("Required value was missing or invalid")
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

/*

Error classification

*/

// IsGenerationFailure reports whether an error is the bounded
// retry exhaustion signaled by Generate.  Callers use this to
// decide whether to retry with different parameters (usually a
// smaller side length).
func IsGenerationFailure(e error) bool {
	err, ok := e.(Error)
	return ok && err.Scope == GenerationScope && err.Condition == RetriesExhaustedCondition
}

// IsContradiction reports whether an error is the hint engine's
// signal that the player's board contradicts the stored
// solution.  Distinct from "no hint available".
func IsContradiction(e error) bool {
	err, ok := e.(Error)
	return ok && err.Condition == ContradictionCondition
}

// argumentError builds the Error for a bad scalar argument.
func argumentError(attr ErrorAttribute, val int, cond ErrorCondition, limit int) Error {
	err := Error{
		Scope:     ArgumentScope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: cond,
		Values:    ErrorData{val},
	}
	if cond == TooSmallCondition || cond == TooLargeCondition || cond == OutOfRangeCondition {
		err.Values = append(err.Values, limit)
	}
	return err
}
