// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for the ledger.
// Import it for its side effects.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rankstat/rankstat/ledger"
)

func init() {
	ledger.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// An in-memory database lives in a single connection.
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	})
}
