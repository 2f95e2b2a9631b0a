// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Wilcoxon compares every ordered pair of paired samples of a quality
// indicator with the Wilcoxon signed-rank test.
//
// Usage:
//
//	wilcoxon [flags] indicator_file param_file output_file
//
// The indicator file has the same layout as for mannwhit, but all
// samples must have the same number of values: the i'th values of two
// samples form a pair. The parameter file must exist but its contents
// are not used.
//
// For up to 50 non-zero differences the p-value is read from a table
// of critical values: it is the smallest tabulated level, between
// 0.005 and 0.5, whose critical value exceeds the statistic. Above
// that, or when more than half the differences are zero, it uses the
// normal approximation. A pair with fewer than 4
// non-zero differences is an error.
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
	log.SetPrefix("wilcoxon: ")
	log.SetFlags(0)
	if err := tool.Main(rankmath.Wilcoxon, os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}
