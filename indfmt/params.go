// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Params are the settings read from a parameter file.
type Params struct {
	// Alpha is the significance level. It is not range checked
	// here.
	Alpha float64
}

// ReadParams reads a parameter file. The first non-blank line must
// be "alpha <float>"; later lines are ignored.
func ReadParams(r io.Reader, fileName string) (Params, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		fields := bytes.Fields(s.Bytes())
		if len(fields) == 0 {
			continue
		}
		bad := func(msg string) error {
			return &FormatError{fileName, line, BadParams, msg}
		}
		if string(fields[0]) != "alpha" {
			return Params{}, bad(fmt.Sprintf("want \"alpha <float>\", got %q", s.Text()))
		}
		if len(fields) != 2 {
			return Params{}, bad("alpha needs exactly one value")
		}
		alpha, err := strconv.ParseFloat(string(fields[1]), 64)
		if err != nil {
			return Params{}, bad(fmt.Sprintf("parsing alpha: %v", err.(*strconv.NumError).Err))
		}
		return Params{Alpha: alpha}, nil
	}
	if err := s.Err(); err != nil {
		return Params{}, fmt.Errorf("%s:%d: %w", fileName, line, err)
	}
	return Params{}, &FormatError{fileName, 0, BadParams, "missing \"alpha <float>\" line"}
}
