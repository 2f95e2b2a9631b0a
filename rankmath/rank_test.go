// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ranked(keys ...float64) ([]Observation, int) {
	obs := make([]Observation, len(keys))
	for i, k := range keys {
		obs[i] = Observation{Value: k, Key: k}
	}
	ties := Rank(obs)
	return obs, ties
}

func ranksOf(obs []Observation) []float64 {
	var rs []float64
	for _, o := range obs {
		rs = append(rs, o.Rank)
	}
	return rs
}

func TestRank(t *testing.T) {
	check := func(keys []float64, wantRanks []float64, wantTies int) {
		t.Helper()
		obs, ties := ranked(keys...)
		if diff := cmp.Diff(wantRanks, ranksOf(obs)); diff != "" {
			t.Errorf("ranks of %v (-want +got):\n%s", keys, diff)
		}
		if ties != wantTies {
			t.Errorf("ties of %v: want %d, got %d", keys, wantTies, ties)
		}
	}

	check([]float64{3, 1, 2}, []float64{1, 2, 3}, 0)
	check([]float64{1, 2, 2, 3}, []float64{1, 2.5, 2.5, 4}, 1)
	check([]float64{5, 5, 5}, []float64{2, 2, 2}, 2)
	check([]float64{2, 1, 2, 1}, []float64{1.5, 1.5, 3.5, 3.5}, 2)
	check([]float64{0.1, 0.1, 0.2, 0.3, 0.3, 0.3}, []float64{1.5, 1.5, 3, 5, 5, 5}, 3)
	check([]float64{7}, []float64{1}, 0)
	check(nil, nil, 0)
}

func TestRankExactEquality(t *testing.T) {
	// 0.1+0.2 differs from 0.3 in the last bit. Ties use exact
	// equality, so these are not tied.
	a, b := 0.1, 0.2
	obs, ties := ranked(a+b, 0.3)
	if ties != 0 {
		t.Errorf("want no ties, got %d (ranks %v)", ties, ranksOf(obs))
	}
}

func TestRankSumInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		n := 1 + r.Intn(60)
		keys := make([]float64, n)
		for i := range keys {
			// Draw from a small set so ties are common.
			keys[i] = float64(r.Intn(1 + iter%10))
		}
		obs, _ := ranked(keys...)
		sum := 0.0
		for _, o := range obs {
			if o.Rank < 1 || o.Rank > float64(n) {
				t.Fatalf("rank %v outside [1,%d]", o.Rank, n)
			}
			sum += o.Rank
		}
		if want := float64(n*(n+1)) / 2; sum != want {
			t.Fatalf("rank sum of %v: want %v, got %v", keys, want, sum)
		}
	}
}

func TestRankPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	keys := r.Perm(100)
	fkeys := make([]float64, len(keys))
	for i, k := range keys {
		fkeys[i] = float64(k) / 7
	}
	obs, ties := ranked(fkeys...)
	if ties != 0 {
		t.Fatalf("want no ties, got %d", ties)
	}
	rs := ranksOf(obs)
	sort.Float64s(rs)
	for i, rank := range rs {
		if rank != float64(i+1) {
			t.Fatalf("ranks are not a permutation of 1..%d: %v", len(rs), rs)
		}
	}
}

func TestRankTieMean(t *testing.T) {
	obs, _ := ranked(4, 1, 4, 4, 9)
	// Natural ranks 2, 3, 4 for the three 4s.
	for _, o := range obs {
		if o.Key == 4 && o.Rank != 3 {
			t.Errorf("tied 4 got rank %v, want 3", o.Rank)
		}
	}
}

func TestRankSumByLabel(t *testing.T) {
	a := NewSample(0, []float64{1, 2, 3, 4, 5})
	b := NewSample(1, []float64{6, 7, 8, 9, 10})
	obs := Pool(a, b)
	Rank(obs)
	if got := RankSum(obs, 0); got != 15 {
		t.Errorf("R_A: want 15, got %v", got)
	}
	if got := RankSum(obs, 1); got != 40 {
		t.Errorf("R_B: want 40, got %v", got)
	}
	if got := SumSquaredRanks(obs); got != 385 {
		t.Errorf("sum of squared ranks: want 385, got %v", got)
	}
}

func TestNewSampleCopies(t *testing.T) {
	vals := []float64{3, 1, 2}
	s := NewSample(4, vals)
	vals[0] = 100
	if diff := cmp.Diff(&Sample{Label: 4, Values: []float64{3, 1, 2}}, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
