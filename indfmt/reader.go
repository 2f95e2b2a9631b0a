// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package indfmt reads indicator files and parameter files.
//
// An indicator file holds one real number per line. Consecutive
// number lines form a block, and each block is one sample. A blank
// line, or a line whose first field does not start a number, closes
// the current block. Anything after the first field on a number line
// is ignored.
//
// A parameter file holds a single "alpha <float>" line.
package indfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A Kind classifies a FormatError.
type Kind int

const (
	// MalformedLine is a line whose first field starts like a
	// number but is not a finite number.
	MalformedLine Kind = iota + 1
	// ShortLine is a line whose number is cut short, such as "1e".
	ShortLine
	// TooFewSamples means the file has fewer blocks than the test
	// needs.
	TooFewSamples
	// TooManySamples means the file has more blocks than the
	// configured maximum.
	TooManySamples
	// UnequalSizes means a paired test found blocks of different
	// sizes.
	UnequalSizes
	// BadParams is a malformed parameter file.
	BadParams
)

func (k Kind) String() string {
	switch k {
	case MalformedLine:
		return "malformed line"
	case ShortLine:
		return "short line"
	case TooFewSamples:
		return "too few samples"
	case TooManySamples:
		return "too many samples"
	case UnequalSizes:
		return "unequal sample sizes"
	case BadParams:
		return "bad parameters"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A FormatError is a problem with the content of an input file.
type FormatError struct {
	FileName string
	// Line is the 1-based line number, or 0 if the error is
	// not about a particular line.
	Line int
	Kind Kind
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// IsKind reports whether err is or wraps a *FormatError of kind k.
func IsKind(err error, k Kind) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Kind == k
}

// A TokenKind says whether a Token is a value or a block break.
type TokenKind int

const (
	Value TokenKind = iota
	Break
)

// A Token is one line of an indicator file.
type Token struct {
	kind  TokenKind
	value float64
	line  int
}

// Kind returns whether t is a Value or a Break.
func (t Token) Kind() TokenKind { return t.kind }

// Value returns the number on a Value line.
func (t Token) Value() float64 { return t.value }

// Line returns the 1-based line number of t.
func (t Token) Line() int { return t.line }

// A Reader reads an indicator file one line at a time.
//
// Its API is modeled on bufio.Scanner. A malformed line stops the
// Reader: Scan returns false and Err returns a *FormatError.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	tok      Token
	err      error
}

// NewReader returns a Reader that reads from r. fileName is used in
// error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), fileName: fileName}
}

func (r *Reader) newError(kind Kind, msg string) *FormatError {
	return &FormatError{r.fileName, r.line, kind, msg}
}

// Scan advances to the next line and reports whether there is one.
// When Scan returns false, Err reports whether it stopped at EOF or
// on an error.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
		}
		return false
	}
	r.line++
	f := firstField(r.s.Bytes())
	if len(f) == 0 {
		r.tok = Token{kind: Break, line: r.line}
		return true
	}
	v, err := strconv.ParseFloat(string(f), 64)
	switch {
	case err == nil && !math.IsNaN(v) && !math.IsInf(v, 0):
		r.tok = Token{kind: Value, value: v, line: r.line}
		return true
	case err == nil:
		r.err = r.newError(MalformedLine, fmt.Sprintf("%q is not a finite number", f))
		return false
	case !startsNumber(f):
		r.tok = Token{kind: Break, line: r.line}
		return true
	case errors.Is(err, strconv.ErrRange):
		r.err = r.newError(MalformedLine, fmt.Sprintf("%q is out of range", f))
		return false
	case isNumberPrefix(f):
		r.err = r.newError(ShortLine, fmt.Sprintf("number %q is incomplete", f))
		return false
	}
	r.err = r.newError(MalformedLine, fmt.Sprintf("cannot parse %q as a number", f))
	return false
}

// Token returns the line read by the last call to Scan.
func (r *Reader) Token() Token {
	return r.tok
}

// Err returns the first error the Reader encountered, or nil at EOF.
func (r *Reader) Err() error {
	return r.err
}

// firstField returns the first whitespace-separated field of line.
func firstField(line []byte) []byte {
	i := 0
	for i < len(line) {
		c, n := utf8.DecodeRune(line[i:])
		if !unicode.IsSpace(c) {
			break
		}
		i += n
	}
	line = line[i:]
	for i = 0; i < len(line); {
		c, n := utf8.DecodeRune(line[i:])
		if unicode.IsSpace(c) {
			break
		}
		i += n
	}
	return line[:i]
}

// startsNumber reports whether f begins the way a decimal number
// does.
func startsNumber(f []byte) bool {
	switch c := f[0]; {
	case c >= '0' && c <= '9', c == '.', c == '+', c == '-':
		return true
	}
	return false
}

// isNumberPrefix reports whether f matches [+-]?digits*(.digits*)?([eE][+-]?digits*)?
// entirely, that is, whether more input could have completed it.
func isNumberPrefix(f []byte) bool {
	i := 0
	if i < len(f) && (f[i] == '+' || f[i] == '-') {
		i++
	}
	digits := func() {
		for i < len(f) && f[i] >= '0' && f[i] <= '9' {
			i++
		}
	}
	digits()
	if i < len(f) && f[i] == '.' {
		i++
		digits()
	}
	if i < len(f) && (f[i] == 'e' || f[i] == 'E') {
		i++
		if i < len(f) && (f[i] == '+' || f[i] == '-') {
			i++
		}
		digits()
	}
	return i == len(f)
}
