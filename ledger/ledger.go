// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ledger archives test runs in a SQL database.
package ledger

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/rankstat/rankstat/rankmath"
)

// DB is a ledger backed by a SQL database. It's safe for concurrent
// use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun    *sql.Stmt
	insertResult *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. The sqlite3 package uses it to limit
// in-memory databases to one connection. It must be called from an
// init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Tool VARCHAR(32) NOT NULL,
	Input VARCHAR(1024) NOT NULL,
	Alpha DOUBLE,
	OmnibusP DOUBLE,
	Rejected BOOLEAN NOT NULL,
	Created BIGINT NOT NULL{{if not .sqlite3}},
	INDEX (Tool){{end}}
);
CREATE TABLE IF NOT EXISTS Results (
	RunID BIGINT UNSIGNED NOT NULL,
	Seq INT NOT NULL,
	Winner INT NOT NULL,
	Loser INT NOT NULL,
	Statistic DOUBLE,
	P DOUBLE NOT NULL,
	Method VARCHAR(16) NOT NULL,
	PRIMARY KEY (RunID, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsTool ON Runs(Tool);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Tool, Input, Alpha, OmnibusP, Rejected, Created) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertResult, err = db.sql.Prepare("INSERT INTO Results(RunID, Seq, Winner, Loser, Statistic, P, Method) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run is one archived invocation of a test.
type Run struct {
	// ID is assigned by InsertRun.
	ID int64

	// Tool is the test name, such as "kruskal".
	Tool string

	// Input is the indicator file the samples came from.
	Input string

	// Alpha is the significance level of the omnibus test, or 0
	// for tests without one.
	Alpha float64

	// OmnibusP is the omnibus p-value, or nil for pairwise tests.
	OmnibusP *float64

	// Rejected reports whether the omnibus test rejected its null
	// hypothesis. It is true for pairwise tests.
	Rejected bool

	Created time.Time

	Results []Result
}

// A Result is one archived comparison. Winner and Loser are 0-based
// sample labels.
type Result struct {
	Winner, Loser int

	// Statistic is NaN if it was not finite.
	Statistic float64
	P         float64
	Method    string
}

// NewRun returns the Run recording out.
func NewRun(input string, out *rankmath.Outcome, created time.Time) *Run {
	r := &Run{
		Tool:     out.Test,
		Input:    input,
		Rejected: !out.NoDifference(),
		Created:  created,
	}
	if om := out.Omnibus; om != nil {
		p := om.P
		r.Alpha, r.OmnibusP = om.Alpha, &p
	}
	for _, res := range out.Results {
		r.Results = append(r.Results, Result{
			Winner:    res.Winner,
			Loser:     res.Loser,
			Statistic: res.Statistic,
			P:         res.P,
			Method:    res.Method.String(),
		})
	}
	return r
}

// InsertRun stores r and its results in a single transaction, sets
// r.ID, and returns it.
func (db *DB) InsertRun(ctx context.Context, r *Run) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var omnibusP sql.NullFloat64
	if r.OmnibusP != nil {
		omnibusP = sql.NullFloat64{Float64: *r.OmnibusP, Valid: true}
	}
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, r.Tool, r.Input, r.Alpha, omnibusP, r.Rejected, r.Created.Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stmt := tx.StmtContext(ctx, db.insertResult)
	for i, x := range r.Results {
		var stat sql.NullFloat64
		if !math.IsNaN(x.Statistic) && !math.IsInf(x.Statistic, 0) {
			stat = sql.NullFloat64{Float64: x.Statistic, Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, id, i, x.Winner, x.Loser, stat, x.P, x.Method); err != nil {
			return 0, err
		}
	}
	r.ID = id
	return id, nil
}

// A Query selects archived runs. Zero fields match everything.
type Query struct {
	Tool  string
	Input string

	// Limit is the maximum number of runs to return, newest
	// first.
	Limit int
}

// Runs returns the runs matching q, newest first, with their
// results.
func (db *DB) Runs(ctx context.Context, q Query) ([]*Run, error) {
	query := "SELECT RunID, Tool, Input, Alpha, OmnibusP, Rejected, Created FROM Runs"
	var where []string
	var args []interface{}
	if q.Tool != "" {
		where = append(where, "Tool = ?")
		args = append(args, q.Tool)
	}
	if q.Input != "" {
		where = append(where, "Input = ?")
		args = append(args, q.Input)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY RunID DESC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var runs []*Run
	for rows.Next() {
		r := new(Run)
		var alpha, omnibusP sql.NullFloat64
		var created int64
		if err := rows.Scan(&r.ID, &r.Tool, &r.Input, &alpha, &omnibusP, &r.Rejected, &created); err != nil {
			rows.Close()
			return nil, err
		}
		r.Alpha = alpha.Float64
		if omnibusP.Valid {
			p := omnibusP.Float64
			r.OmnibusP = &p
		}
		r.Created = time.Unix(created, 0).UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, r := range runs {
		if r.Results, err = db.results(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (db *DB) results(ctx context.Context, id int64) ([]Result, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Winner, Loser, Statistic, P, Method FROM Results WHERE RunID = ? ORDER BY Seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var x Result
		var stat sql.NullFloat64
		if err := rows.Scan(&x.Winner, &x.Loser, &stat, &x.P, &x.Method); err != nil {
			return nil, err
		}
		x.Statistic = math.NaN()
		if stat.Valid {
			x.Statistic = stat.Float64
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

// CountRuns returns the number of runs in the ledger.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertResult.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
