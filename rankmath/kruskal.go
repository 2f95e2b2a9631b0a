// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"errors"
	"fmt"
	"math"
)

// KruskalWallis is the Kruskal-Wallis test that k >= 2 independent
// samples come from the same distribution. Only if that test rejects
// at level alpha does it compare every ordered pair of samples.
var KruskalWallis = kruskalWallis{}

type kruskalWallis struct{}

var _ Test = kruskalWallis{}

func (kruskalWallis) Name() string    { return "kruskal" }
func (kruskalWallis) Paired() bool    { return false }
func (kruskalWallis) MinSamples() int { return 2 }
func (kruskalWallis) Omnibus() bool   { return true }

func (kw kruskalWallis) Run(samples []*Sample, alpha float64) (*Outcome, error) {
	if err := CheckAlpha(alpha); err != nil {
		return nil, err
	}
	if len(samples) < kw.MinSamples() {
		return nil, fmt.Errorf("kruskal: need at least %d samples, got %d", kw.MinSamples(), len(samples))
	}
	out := &Outcome{Test: kw.Name(), Warnings: smallSampleWarnings(samples)}

	// The omnibus test ranks the full pool once. The post-hoc
	// comparisons reuse those ranks.
	obs := Pool(samples...)
	om := &Omnibus{
		N:        len(obs),
		K:        len(samples),
		DF:       float64(len(samples) - 1),
		Alpha:    alpha,
		Ties:     Rank(obs),
		RankSums: make([]float64, len(samples)),
	}
	for i, s := range samples {
		om.RankSums[i] = RankSum(obs, s.Label)
	}
	om.S2 = rankVariance(obs)
	if om.S2 == 0 {
		// Every observation is tied, so the statistic is 0/0.
		// There is plainly no difference to find.
		om.T, om.P = 0, 1
		out.Warnings = append(out.Warnings, errors.New("all values are equal"))
	} else {
		om.T = kruskalT(samples, om.RankSums, om.N, om.S2)
		om.P = ChiSquareUpper(om.T, om.DF)
	}
	om.Rejected = om.P <= alpha
	out.Omnibus = om
	if !om.Rejected {
		return out, nil
	}

	if om.N <= om.K {
		return nil, ErrDegenerate
	}
	meanRank := make(map[int]float64, len(samples))
	for i, s := range samples {
		meanRank[s.Label] = om.RankSums[i] / float64(s.Len())
	}
	df := float64(om.N - om.K)
	// Conover (1999), equation 6, page 290.
	scale := math.Sqrt(om.S2 * math.Max(0, float64(om.N)-1-om.T) / df)
	err := forEachPair(samples, func(a, b *Sample) error {
		z := postHocZ(meanRank[a.Label]-meanRank[b.Label], scale*math.Sqrt(1/float64(a.Len())+1/float64(b.Len())))
		out.Results = append(out.Results, Result{
			Winner:    b.Label,
			Loser:     a.Label,
			Statistic: z,
			P:         StudentTUpper(z, df),
			Method:    StudentT,
			Ties:      om.Ties,
		})
		return nil
	})
	return out, err
}

// postHocZ returns diff/se. When every sample is internally constant
// se is 0: equal mean ranks then give 0 and any difference is
// infinite.
func postHocZ(diff, se float64) float64 {
	switch {
	case diff == 0:
		return 0
	case se == 0:
		return math.Inf(int(math.Copysign(1, diff)))
	}
	return diff / se
}

// rankVariance returns S², the variance of the ranks in obs
// corrected for ties. Conover (1999), equation 4, page 289.
func rankVariance(obs []Observation) float64 {
	n := float64(len(obs))
	return (SumSquaredRanks(obs) - n*(n+1)*(n+1)/4) / (n - 1)
}

// kruskalT returns the Kruskal-Wallis statistic T given the rank sum
// of each sample. Conover (1999), equation 3, page 289.
func kruskalT(samples []*Sample, rankSums []float64, n int, s2 float64) float64 {
	sum := 0.0
	for i, s := range samples {
		sum += rankSums[i] * rankSums[i] / float64(s.Len())
	}
	nf := float64(n)
	return (sum - nf*(nf+1)*(nf+1)/4) / s2
}
