// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"math"
	"sort"
)

// An Observation is one value in a ranked pool.
type Observation struct {
	// Value is the observed value. For the signed-rank test this
	// is the signed paired difference.
	Value float64

	// Key is the comparison key the pool is ranked by: the value
	// itself, or its absolute value for signed differences.
	Key float64

	// Label is the label of the sample Value came from.
	Label int

	// Rank is the observation's rank in [1, N] once Rank has been
	// called on its pool. Tied keys share the mean of their
	// natural ranks.
	Rank float64
}

// Pool returns the observations of all the given samples, keyed by
// value.
func Pool(samples ...*Sample) []Observation {
	n := 0
	for _, s := range samples {
		n += s.Len()
	}
	obs := make([]Observation, 0, n)
	for _, s := range samples {
		for _, v := range s.Values {
			obs = append(obs, Observation{Value: v, Key: v, Label: s.Label})
		}
	}
	return obs
}

// Rank sorts obs in ascending order of Key and assigns every
// observation its rank. A run of c+1 observations with equal keys
// starting at natural rank r gets the averaged rank r + c/2.
//
// Rank returns the number of observations involved in ties beyond
// the first of each run: a run of c+1 equal keys contributes c.
//
// Keys are compared with exact floating-point equality.
func Rank(obs []Observation) (ties int) {
	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Key < obs[j].Key
	})
	return assignRanks(obs)
}

// assignRanks assigns ranks to obs, which must already be sorted by
// Key.
func assignRanks(obs []Observation) (ties int) {
	for i := 0; i < len(obs); {
		j := i + 1
		for j < len(obs) && obs[j].Key == obs[i].Key {
			j++
		}
		// Natural ranks i+1 .. j, so their mean is (i+1+j)/2.
		rank := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			obs[k].Rank = rank
		}
		ties += j - i - 1
		i = j
	}
	return ties
}

// RankSum returns the sum of the ranks of the observations from the
// sample labeled label.
func RankSum(obs []Observation, label int) float64 {
	sum := 0.0
	for _, o := range obs {
		if o.Label == label {
			sum += o.Rank
		}
	}
	return sum
}

// SumSquaredRanks returns the sum of the squares of all ranks in obs.
func SumSquaredRanks(obs []Observation) float64 {
	sum := 0.0
	for _, o := range obs {
		sum += o.Rank * o.Rank
	}
	return sum
}

// signedRank returns o's rank carrying the sign of o.Value.
func signedRank(o Observation) float64 {
	return math.Copysign(o.Rank, o.Value)
}
