// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"fmt"
	"math"
)

// Wilcoxon is the Wilcoxon signed-rank test for paired samples of
// equal size. With more than two samples it tests every ordered pair
// and warns that the p-values are not independent.
//
// For 4 <= n <= 50 non-zero differences, the p-value is the smallest
// tabulated level whose critical value exceeds T+. This is a
// conservative bracket, not an interpolated estimate. Above 50, or
// when more than half the differences are zero, it uses the normal
// approximation.
var Wilcoxon = wilcoxon{}

type wilcoxon struct{}

var _ Test = wilcoxon{}

func (wilcoxon) Name() string    { return "wilcoxon" }
func (wilcoxon) Paired() bool    { return true }
func (wilcoxon) MinSamples() int { return 2 }
func (wilcoxon) Omnibus() bool   { return false }

// maxZeroShare is the share of zero differences above which the
// table is not used.
const maxZeroShare = 0.5

func (w wilcoxon) Run(samples []*Sample, alpha float64) (*Outcome, error) {
	if len(samples) < w.MinSamples() {
		return nil, fmt.Errorf("wilcoxon: need at least %d samples, got %d", w.MinSamples(), len(samples))
	}
	for _, s := range samples[1:] {
		if s.Len() != samples[0].Len() {
			return nil, fmt.Errorf("%w: sample %d has %d values, sample %d has %d", ErrUnpaired, samples[0].Label+1, samples[0].Len(), s.Label+1, s.Len())
		}
	}
	out := &Outcome{Test: w.Name(), Warnings: smallSampleWarnings(samples)}
	err := forEachPair(samples, func(a, b *Sample) error {
		res, err := signedRankTest(a, b)
		if err != nil {
			return fmt.Errorf("comparing samples %d and %d: %w", a.Label+1, b.Label+1, err)
		}
		out.Results = append(out.Results, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Warnings = append(out.Warnings, sharedDataWarning(samples)...)
	return out, nil
}

// signedDifferences returns the non-zero differences b[i]-a[i], keyed
// by absolute value, and the number of zero differences dropped.
func signedDifferences(a, b *Sample) (obs []Observation, zeros int) {
	for i := range a.Values {
		d := b.Values[i] - a.Values[i]
		if d == 0 {
			zeros++
			continue
		}
		obs = append(obs, Observation{Value: d, Key: math.Abs(d), Label: b.Label})
	}
	return obs, zeros
}

func signedRankTest(a, b *Sample) (Result, error) {
	obs, zeros := signedDifferences(a, b)
	n := len(obs)
	if n < WilcoxonTableMin {
		return Result{}, fmt.Errorf("%w: %d of %d differences are zero", ErrTooFewDifferences, zeros, a.Len())
	}
	ties := Rank(obs)

	sr := &SignedRanks{N: n, Zeros: zeros}
	sum, sumsq := 0.0, 0.0
	for _, o := range obs {
		r := signedRank(o)
		sum += r
		sumsq += r * r
		if r > 0 {
			sr.TPlus += r
		} else {
			sr.TMinus -= r
		}
	}

	res := Result{
		Winner: b.Label,
		Loser:  a.Label,
		Ties:   ties + zeros,
		Signed: sr,
	}
	if n > WilcoxonTableMax || float64(zeros)/float64(a.Len()) > maxZeroShare {
		// Conover (1999), equations 7 and 8, page 354.
		sd := math.Sqrt(sumsq)
		res.Method = Normal
		res.Statistic = (sum - 1) / sd
		res.P = NormalCDF(res.Statistic)
		sr.LowerP = clampP(1 - NormalCDF((sum+1)/sd))
	} else {
		res.Method = Table
		res.Statistic = sr.TPlus
		res.P = WilcoxonUpperP(n, sr.TPlus)
		sr.LowerP = WilcoxonLowerP(n, sr.TPlus)
	}
	return res, nil
}

// WilcoxonUpperP returns the smallest level in WilcoxonLevels whose
// critical value for n differences exceeds tplus, or the largest
// level if none does. It panics if n is outside
// [WilcoxonTableMin, WilcoxonTableMax].
func WilcoxonUpperP(n int, tplus float64) float64 {
	row := wilcoxonRow(n)
	j := 0
	for j < len(row)-1 && row[j] <= tplus {
		j++
	}
	return WilcoxonLevels[j]
}

// WilcoxonLowerP is the mirror image of WilcoxonUpperP: it scans for
// the first level whose upper critical value n(n+1)/2 - w_p falls
// below tplus.
func WilcoxonLowerP(n int, tplus float64) float64 {
	row := wilcoxonRow(n)
	total := float64(n*(n+1)) / 2
	j := 0
	for j < len(row)-1 && total-row[j] >= tplus {
		j++
	}
	return WilcoxonLevels[j]
}

func wilcoxonRow(n int) *[len(WilcoxonLevels)]float64 {
	if n < WilcoxonTableMin || n > WilcoxonTableMax {
		panic(fmt.Sprintf("signed-rank table covers n in [%d,%d], got %d", WilcoxonTableMin, WilcoxonTableMax, n))
	}
	return &wilcoxonTable[n-WilcoxonTableMin]
}
