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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/angelina-chen/Queens/dbprep"
)

func TestClearStorage(t *testing.T) {
	if os.Getenv("QUEENS_STORAGE_TESTS") == "" {
		t.Skip("storage services not configured")
	}
	os.Setenv("DBPREP_PATH", filepath.Join("..", "..", "dbprep"))
	if err := clearStorage(); err != nil {
		t.Errorf("%v", err)
	}
	version, err := dbprep.SchemaVersion()
	if err != nil {
		t.Fatalf("Couldn't get data schema version: %v", err)
	}
	if version == 0 {
		t.Errorf("Schema version still 0 after reinitialization")
	}
}
