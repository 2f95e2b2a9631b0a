// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comptable

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/rankstat/rankstat/indfmt"
	"github.com/rankstat/rankstat/report"
)

// NotAvailable is the value of a report column whose report file does
// not exist. Mean columns use NaN.
const NotAvailable = "N/A"

// A Table is a built comparative table.
type Table struct {
	// Columns are the column names, not including the leading
	// instance column.
	Columns []string

	Rows []Row

	// Warnings lists instances that were left out and why.
	Warnings []error
}

// A Row is one instance of a Table.
type Row struct {
	Instance string
	Cells    []string
}

// Build builds the table described by l from the instance directories
// in fsys. An instance whose directory is missing or whose files
// can't be read is left out with a warning.
func Build(fsys fs.FS, l *Layout) (*Table, error) {
	instances, err := l.instances(fsys)
	if err != nil {
		return nil, err
	}
	t := &Table{}
	for _, c := range l.Columns {
		t.Columns = append(t.Columns, c.Name)
	}
	for _, inst := range instances {
		if !fs.ValidPath(inst) {
			t.Warnings = append(t.Warnings, fmt.Errorf("instance %s: invalid directory name", inst))
			continue
		}
		if fi, err := fs.Stat(fsys, inst); err != nil || !fi.IsDir() {
			t.Warnings = append(t.Warnings, fmt.Errorf("instance %s: directory not found", inst))
			continue
		}
		row, err := l.row(fsys, inst)
		if err != nil {
			t.Warnings = append(t.Warnings, fmt.Errorf("instance %s: %w", inst, err))
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (l *Layout) instances(fsys fs.FS) ([]string, error) {
	if len(l.Instances) > 0 {
		return l.Instances, nil
	}
	name := l.InstancesFile
	if name == "" {
		name = DefaultInstancesFile
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("reading instance list: %w", err)
	}
	defer f.Close()
	var out []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		if inst := strings.TrimSpace(s.Text()); inst != "" {
			out = append(out, inst)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading instance list: %w", err)
	}
	return out, nil
}

func (l *Layout) row(fsys fs.FS, inst string) (Row, error) {
	row := Row{Instance: inst}
	for _, c := range l.Columns {
		file, err := findFile(fsys, path.Join(inst, c.Dir), c.Match)
		if err != nil {
			return Row{}, err
		}
		var v string
		switch c.Kind {
		case Mean:
			v, err = meanCell(fsys, file)
		case Report:
			v, err = reportCell(fsys, file, l.Alpha)
		}
		if err != nil {
			return Row{}, err
		}
		row.Cells = append(row.Cells, v)
	}
	return row, nil
}

// findFile returns the first regular file in dir whose name, trimmed
// and lowercased, contains match lowercased. It returns "" if there is
// no such file or dir does not exist.
func findFile(fsys fs.FS, dir, match string) (string, error) {
	ents, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	match = strings.ToLower(match)
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(strings.TrimSpace(e.Name())), match) {
			return path.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}

// meanCell returns the mean of the values in file with four decimals,
// or NaN if file is "" or holds no values.
func meanCell(fsys fs.FS, file string) (string, error) {
	m := math.NaN()
	if file != "" {
		f, err := fsys.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		var vals stats.Float64Data
		r := indfmt.NewReader(f, file)
		for r.Scan() {
			if tok := r.Token(); tok.Kind() == indfmt.Value {
				vals = append(vals, tok.Value())
			}
		}
		if err := r.Err(); err != nil {
			return "", err
		}
		if len(vals) > 0 {
			if m, err = stats.Mean(vals); err != nil {
				return "", err
			}
		}
	}
	return fmt.Sprintf("%.4f", m), nil
}

// reportCell returns the lines of the report in file with a p-value
// at most alpha, joined by " | ", or "H0" if there are none.
func reportCell(fsys fs.FS, file string, alpha float64) (string, error) {
	if file == "" {
		return NotAvailable, nil
	}
	f, err := fsys.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	rep, err := report.Parse(f, file)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, l := range rep.Significant(alpha) {
		lines = append(lines, l.Text)
	}
	if len(lines) == 0 {
		return report.NoDifference, nil
	}
	return strings.Join(lines, " | "), nil
}
