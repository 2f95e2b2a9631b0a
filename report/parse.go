// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Report is a parsed report.
type Report struct {
	// NoDifference is set if the report is the "H0" verdict.
	NoDifference bool

	Lines []Line
}

// A Line is one result line of a report.
type Line struct {
	// Winner and Loser are 0-based sample labels.
	Winner, Loser int
	P             float64

	// Text is the line as it appeared, without surrounding space.
	Text string
}

// A SyntaxError is a line that is neither "H0" nor a result line.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// Parse reads a report. fileName is used in error messages.
func Parse(r io.Reader, fileName string) (*Report, error) {
	s := bufio.NewScanner(r)
	rep := new(Report)
	n := 0
	for s.Scan() {
		n++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		if text == NoDifference {
			if len(rep.Lines) > 0 {
				return nil, &SyntaxError{fileName, n, "H0 mixed with result lines"}
			}
			rep.NoDifference = true
			continue
		}
		if rep.NoDifference {
			return nil, &SyntaxError{fileName, n, "H0 mixed with result lines"}
		}
		l, err := parseLine(text)
		if err != nil {
			return nil, &SyntaxError{fileName, n, err.Error()}
		}
		rep.Lines = append(rep.Lines, l)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", fileName, n, err)
	}
	return rep, nil
}

func parseLine(text string) (Line, error) {
	// <w> better than <l> with a p-value of <p>
	f := strings.Fields(text)
	if len(f) != 9 || f[1] != "better" || f[2] != "than" || strings.Join(f[4:8], " ") != "with a p-value of" {
		return Line{}, fmt.Errorf("want \"<i> better than <j> with a p-value of <p>\", got %q", text)
	}
	winner, err := strconv.Atoi(f[0])
	if err != nil || winner < 1 {
		return Line{}, fmt.Errorf("bad sample number %q", f[0])
	}
	loser, err := strconv.Atoi(f[3])
	if err != nil || loser < 1 {
		return Line{}, fmt.Errorf("bad sample number %q", f[3])
	}
	p, err := strconv.ParseFloat(f[8], 64)
	if err != nil {
		return Line{}, fmt.Errorf("bad p-value %q", f[8])
	}
	return Line{Winner: winner - 1, Loser: loser - 1, P: p, Text: text}, nil
}

// Significant returns the lines of r with a p-value at most alpha.
func (r *Report) Significant(alpha float64) []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.P <= alpha {
			out = append(out, l)
		}
	}
	return out
}
