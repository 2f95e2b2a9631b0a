// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"errors"
	"fmt"
)

var (
	// ErrAlpha is returned when a significance level is outside
	// (0, MaxAlpha].
	ErrAlpha = fmt.Errorf("significance level alpha must be in the range (0,%g]", MaxAlpha)

	// ErrTooFewDifferences is returned by the signed-rank test
	// when fewer than WilcoxonTableMin non-zero paired
	// differences remain.
	ErrTooFewDifferences = fmt.Errorf("signed-rank test needs at least %d non-zero paired differences", WilcoxonTableMin)

	// ErrDegenerate is returned when post-hoc comparisons have no
	// degrees of freedom left.
	ErrDegenerate = errors.New("post-hoc comparisons need more observations than samples")

	// ErrUnpaired is returned by the signed-rank test when the
	// samples differ in size.
	ErrUnpaired = errors.New("paired test needs samples of equal size")
)

// MaxAlpha is the largest significance level the omnibus test
// accepts.
const MaxAlpha = 0.1

// CheckAlpha returns an error wrapping ErrAlpha if alpha is not in
// (0, MaxAlpha].
func CheckAlpha(alpha float64) error {
	if !(alpha > 0 && alpha <= MaxAlpha) {
		return fmt.Errorf("%w: got %g", ErrAlpha, alpha)
	}
	return nil
}

// A Test is a rank-based significance test over a set of samples.
type Test interface {
	// Name returns the test's short name, such as "kruskal".
	Name() string

	// Paired reports whether the test matches values across
	// samples by position, requiring equal sample sizes.
	Paired() bool

	// MinSamples returns the minimum number of samples the test
	// needs.
	MinSamples() int

	// Omnibus reports whether the test is gated by an omnibus
	// test at a significance level alpha.
	Omnibus() bool

	// Run tests the samples. alpha is the significance level of
	// the omnibus gate; tests without one ignore it.
	Run(samples []*Sample, alpha float64) (*Outcome, error)
}

// Tests lists all tests by name.
var Tests = map[string]Test{
	KruskalWallis.Name(): KruskalWallis,
	MannWhitney.Name():   MannWhitney,
	Wilcoxon.Name():      Wilcoxon,
}

// A Method identifies how a p-value was derived.
type Method int

const (
	// StudentT is a post-hoc comparison referred to Student's t.
	StudentT Method = iota
	// Normal is the standard normal approximation.
	Normal
	// Table is a bracket from the signed-rank critical value
	// table.
	Table
)

func (m Method) String() string {
	switch m {
	case StudentT:
		return "student-t"
	case Normal:
		return "normal"
	case Table:
		return "table"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// A Result is the outcome of one ordered comparison.
type Result struct {
	// Winner and Loser are sample labels. P is the one-tailed
	// p-value of the null hypothesis against the alternative
	// that Winner tends toward smaller values than Loser.
	Winner, Loser int

	// Statistic is the test statistic the p-value was derived
	// from: the post-hoc t value, the tie-corrected T1, the
	// normal deviate of the signed ranks, or T+ on the table
	// path.
	Statistic float64

	P float64

	// Method records how P was derived.
	Method Method

	// Ties is the tie count reported by the ranking pass this
	// result came from. For the signed-rank test it also counts
	// the zero differences that were dropped.
	Ties int

	// Signed holds the signed-rank details. It is nil for the
	// other tests.
	Signed *SignedRanks
}

// SignedRanks records the intermediate values of one signed-rank
// comparison.
type SignedRanks struct {
	// N is the number of non-zero differences ranked; Zeros is
	// the number of zero differences dropped.
	N, Zeros int

	// TPlus and TMinus are the sums of the positive signed ranks
	// and of the absolute values of the negative ones.
	TPlus, TMinus float64

	// LowerP is the lower-tail p-value. It is computed alongside
	// the reported upper-tail P but not reported.
	LowerP float64
}

// An Omnibus is the result of the Kruskal-Wallis test that all
// samples come from the same distribution.
type Omnibus struct {
	// N is the total number of observations and K the number of
	// samples.
	N, K int

	// T is the tie-corrected statistic and S2 the rank variance
	// it is scaled by.
	T, S2 float64

	// DF is the chi-square degrees of freedom, K-1.
	DF float64

	// P is the p-value of the null hypothesis.
	P float64

	// Alpha is the significance level P was compared with.
	Alpha float64

	// Rejected reports whether P <= Alpha.
	Rejected bool

	// Ties is the tie count of the ranking pass.
	Ties int

	// RankSums are the rank sums of each sample, indexed by
	// sample position.
	RankSums []float64
}

// An Outcome is the result of running a Test.
type Outcome struct {
	// Test is the name of the test that produced this outcome.
	Test string

	// Omnibus is the omnibus result, or nil for pairwise tests.
	Omnibus *Omnibus

	// Results holds one result per ordered pair of samples, in
	// report order. It is empty if the omnibus test did not
	// reject its null hypothesis.
	Results []Result

	// Warnings is a list of warnings about this outcome that
	// should be reported to the user.
	Warnings []error
}

// NoDifference reports whether the outcome is the omnibus "no
// significant difference" verdict.
func (o *Outcome) NoDifference() bool {
	return o.Omnibus != nil && !o.Omnibus.Rejected
}

// forEachPair calls f for every ordered pair of distinct samples.
// The outer index is the loser of the reported comparison and the
// inner index the winner.
func forEachPair(samples []*Sample, f func(a, b *Sample) error) error {
	for _, a := range samples {
		for _, b := range samples {
			if a == b {
				continue
			}
			if err := f(a, b); err != nil {
				return err
			}
		}
	}
	return nil
}
