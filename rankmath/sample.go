// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rankmath implements rank-based significance tests over
// samples of indicator values produced by repeated runs of stochastic
// optimizers.
//
// Three tests share one ranking engine: the Kruskal-Wallis omnibus
// test with post-hoc pairwise comparisons, the Mann-Whitney rank-sum
// test, and the Wilcoxon signed-rank test for paired samples. All
// follow W.J. Conover, "Practical Nonparametric Statistics" (3rd
// edition, 1999).
//
// Every p-value reported is one-tailed. A result naming sample j as
// better than sample i means that j tends toward smaller indicator
// values than i.
//
// Results carry a list of warnings as an []error value. These don't
// prevent analysis, but should be shown to the user along with the
// results.
package rankmath

import "fmt"

// SmallSample is the sample size below which the tests warn that no
// small-sample correction is applied.
const SmallSample = 20

// A Sample is one block of indicator values.
type Sample struct {
	// Label is the 0-based position of the block in its input.
	Label int

	// Values are the indicator values in input order. Paired
	// tests match values across samples by position, so this is
	// never sorted.
	Values []float64
}

// NewSample returns a Sample with the given label and a copy of
// values.
func NewSample(label int, values []float64) *Sample {
	return &Sample{Label: label, Values: append([]float64(nil), values...)}
}

// Len returns the number of values in s.
func (s *Sample) Len() int {
	return len(s.Values)
}

// smallSampleWarnings returns a warning for every sample with fewer
// than SmallSample values.
func smallSampleWarnings(samples []*Sample) []error {
	var warnings []error
	for _, s := range samples {
		if s.Len() < SmallSample {
			warnings = append(warnings, fmt.Errorf("sample %d has only %d values; no small-sample correction is applied, so p-values involving it are approximate (use at least %d values)", s.Label+1, s.Len(), SmallSample))
		}
	}
	return warnings
}

// sharedDataWarning is the caveat attached to pairwise tests that
// reuse the same samples for more than one comparison.
func sharedDataWarning(samples []*Sample) []error {
	if len(samples) <= 2 {
		return nil
	}
	return []error{fmt.Errorf("%d samples compared pairwise: the p-values are not independent because each sample takes part in several tests; use them for exploration only, or collect independent samples for each test", len(samples))}
}
