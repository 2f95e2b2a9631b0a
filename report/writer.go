// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report reads and writes significance reports.
//
// A report is either the single token "H0", meaning the omnibus test
// found no significant difference, or one line per ordered pair of
// samples:
//
//	<winner> better than <loser> with a p-value of <p>
//
// Sample numbers are 1-based block positions in the indicator file.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rankstat/rankstat/rankmath"
)

// NoDifference is written in place of result lines when the omnibus
// test does not reject its null hypothesis.
const NoDifference = "H0"

// DefaultDigits is the number of significant digits used for
// p-values when Options.Digits is 0.
const DefaultDigits = 6

// Options control the format of a report.
type Options struct {
	// Digits is the number of significant digits of p-values.
	Digits int
}

// OptionsFor returns the report options of the named test.
// Mann-Whitney reports print more digits than the other tests.
func OptionsFor(test string) Options {
	if test == rankmath.MannWhitney.Name() {
		return Options{Digits: 9}
	}
	return Options{Digits: DefaultDigits}
}

// A Writer writes reports.
type Writer struct {
	w    io.Writer
	buf  bytes.Buffer
	opts Options
}

// NewWriter returns a Writer that writes reports to w.
func NewWriter(w io.Writer, opts Options) *Writer {
	if opts.Digits <= 0 {
		opts.Digits = DefaultDigits
	}
	return &Writer{w: w, opts: opts}
}

// WriteOutcome writes the report of out in a single write to the
// underlying writer. The "H0" verdict is not followed by a newline.
func (w *Writer) WriteOutcome(out *rankmath.Outcome) error {
	w.buf.Reset()
	if out.NoDifference() {
		w.buf.WriteString(NoDifference)
	} else {
		for _, r := range out.Results {
			fmt.Fprintf(&w.buf, "%d better than %d with a p-value of %.*g\n", r.Winner+1, r.Loser+1, w.opts.Digits, r.P)
		}
	}
	_, err := w.w.Write(w.buf.Bytes())
	return err
}
