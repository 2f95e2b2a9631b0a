// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mannwhit compares every ordered pair of samples of a quality
// indicator with the Mann-Whitney rank-sum test.
//
// Usage:
//
//	mannwhit [flags] indicator_file param_file output_file
//
// The indicator file holds one value per line, with blank lines
// separating the samples, which are numbered from 1 in file order.
// Smaller values are better. The parameter file must exist but its
// contents are not used.
//
// The output file contains one line for every ordered pair:
//
//	1 better than 2 with a p-value of 0.00451171941
//
// With more than two samples the pairwise p-values are not
// independent, and mannwhit says so on standard error.
//
// See kruskal for the flags shared by all three tools.
package main

import (
	"log"
	"os"

	"github.com/rankstat/rankstat/internal/tool"
	"github.com/rankstat/rankstat/rankmath"
)

func main() {
	log.SetPrefix("mannwhit: ")
	log.SetFlags(0)
	if err := tool.Main(rankmath.MannWhitney, os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}
