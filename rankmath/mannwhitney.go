// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"fmt"
	"math"
)

// MannWhitney is the Mann-Whitney rank-sum test for two independent
// samples. With more than two samples it tests every ordered pair,
// re-ranking each pair on its own, and warns that the p-values are
// not independent.
//
// It uses the tie-corrected statistic T1 and its normal
// approximation without a small-sample correction.
var MannWhitney = mannWhitney{}

type mannWhitney struct{}

var _ Test = mannWhitney{}

func (mannWhitney) Name() string    { return "mannwhit" }
func (mannWhitney) Paired() bool    { return false }
func (mannWhitney) MinSamples() int { return 2 }
func (mannWhitney) Omnibus() bool   { return false }

func (mw mannWhitney) Run(samples []*Sample, alpha float64) (*Outcome, error) {
	if len(samples) < mw.MinSamples() {
		return nil, fmt.Errorf("mannwhit: need at least %d samples, got %d", mw.MinSamples(), len(samples))
	}
	out := &Outcome{Test: mw.Name(), Warnings: smallSampleWarnings(samples)}
	err := forEachPair(samples, func(a, b *Sample) error {
		obs := Pool(a, b)
		ties := Rank(obs)
		t1 := rankSumT1(obs, a, b)
		out.Results = append(out.Results, Result{
			Winner:    b.Label,
			Loser:     a.Label,
			Statistic: t1,
			P:         clampP(1 - NormalCDF(t1)),
			Method:    Normal,
			Ties:      ties,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Warnings = append(out.Warnings, sharedDataWarning(samples)...)
	return out, nil
}

// rankSumT1 returns the tie-corrected rank-sum statistic T1 of sample
// a against sample b, given their ranked pool obs. Conover (1999),
// equation 2, page 273.
//
// If a's rank sum is exactly what the null hypothesis expects, T1 is
// 0 and the variance term is never evaluated.
func rankSumT1(obs []Observation, a, b *Sample) float64 {
	n, m := float64(a.Len()), float64(b.Len())
	N := n + m
	num := RankSum(obs, a.Label) - n*(N+1)/2
	if num == 0 {
		return 0
	}
	variance := n*m/(N*(N-1))*SumSquaredRanks(obs) - n*m*(N+1)*(N+1)/(4*(N-1))
	return num / math.Sqrt(variance)
}
