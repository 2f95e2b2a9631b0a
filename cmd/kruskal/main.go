// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Kruskal compares samples of a quality indicator with the
// Kruskal-Wallis test and, when it finds a difference, with post-hoc
// pairwise comparisons.
//
// Usage:
//
//	kruskal [flags] indicator_file param_file output_file
//
// The indicator file holds one value per line. Blank lines (or any
// line that does not start with a number) separate the samples, which
// are numbered from 1 in file order. Smaller values are better.
//
// The parameter file must contain a line
//
//	alpha <float>
//
// with a significance level in (0, 0.1]. If the test does not reject
// the hypothesis that all samples come from the same distribution at
// that level, the output file contains the single token "H0".
// Otherwise it contains one line for every ordered pair of samples:
//
//	2 better than 1 with a p-value of 0.994799
//
// A small p-value is evidence that the first sample is better than
// the second.
//
// The -v flag traces the ranks and statistics to standard error. The
// -chart flag writes a box plot of the samples; its format follows the
// file extension (.png, .svg, or .pdf). The -ledger flag records the
// run in a SQL database, opened with the -ledger-driver driver
// ("sqlite3" or "mysql"). Paths starting with gs:// name objects in
// Google Cloud Storage.
//
// The environment variables RANKSTAT_MAX_SAMPLES, RANKSTAT_LEDGER_DRIVER,
// and RANKSTAT_LEDGER set flag defaults, and may also be given in a
// .env file in the current directory.
package main

import (
	"log"
	"os"

	"github.com/rankstat/rankstat/internal/tool"
	"github.com/rankstat/rankstat/rankmath"
)

func main() {
	log.SetPrefix("kruskal: ")
	log.SetFlags(0)
	if err := tool.Main(rankmath.KruskalWallis, os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}
