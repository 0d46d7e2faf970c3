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

// Package dbprep prepares the storage services for the game: it
// installs the database schema, loads the sample puzzles, and
// clears the cache.
package dbprep

import (
	"fmt"
)

// EnsureData brings the database schema up to date and makes
// sure the sample puzzles are loaded.  Both halves are
// idempotent, so callers can run this at every startup.
func EnsureData() error {
	if err := SchemaUp(); err != nil {
		return fmt.Errorf("Couldn't install data schema: %v", err)
	}
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get data schema version: %v", err)
	}
	if version == 0 {
		return fmt.Errorf("Database schema still at version 0, shouldn't be.")
	}
	// sample loading skips puzzles that are already stored
	if err := DataUp(); err != nil {
		return fmt.Errorf("Couldn't load data: %v", err)
	}
	return nil
}

// RemoveData tears the database schema (and everything in it)
// down.  A database with no schema installed is left alone.
func RemoveData() error {
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get data schema version: %v", err)
	}
	if version == 0 {
		return nil
	}
	if err := SchemaDown(); err != nil {
		return fmt.Errorf("Couldn't remove tables: %v", err)
	}
	return nil
}

// ReinitializeAll clears the cache and rebuilds the database
// from scratch.
func ReinitializeAll() error {
	if err := ClearCache(); err != nil {
		return fmt.Errorf("Couldn't clear cache: %v", err)
	}
	if err := RemoveData(); err != nil {
		return fmt.Errorf("Couldn't clear database: %v", err)
	}
	if err := EnsureData(); err != nil {
		return fmt.Errorf("Couldn't load database: %v", err)
	}
	return nil
}
