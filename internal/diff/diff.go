// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares golden files in tests.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a human-readable description of the differences
// between want and got, or "" if they are equal. If the "diff"
// command is available, the description is a unified diff.
func Diff(want, got []byte) string {
	if string(want) == string(got) {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("diff command unavailable\nwant: %q\ngot:  %q", want, got)
	}
	dir, err := os.MkdirTemp("", "rankstat-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	if err := os.WriteFile(filepath.Join(dir, "want"), want, 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(filepath.Join(dir, "got"), got, 0666); err != nil {
		return err.Error()
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = dir
	data, err := cmd.CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files
		// don't match.
		err = nil
	}
	if err != nil {
		data = append(data, err.Error()...)
	}
	return string(data)
}

// Golden compares got with the contents of path and returns their
// Diff. A missing file is treated as empty. If they differ, Golden
// writes got next to path with a ".got" suffix for reference.
func Golden(path string, got []byte) (string, error) {
	want, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	d := Diff(want, got)
	if d == "" {
		return "", nil
	}
	if err := os.WriteFile(path+".got", got, 0666); err != nil {
		return d, err
	}
	return d, nil
}
