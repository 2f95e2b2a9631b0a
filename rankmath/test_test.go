// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func aeq(x, y float64) bool {
	if x < 0 && y < 0 {
		x, y = -x, -y
	}
	// Check that x and y are equal to 8 digits.
	const factor = 1 - 1e-7
	return x*factor <= y && y*factor <= x
}

func samples(blocks ...[]float64) []*Sample {
	var ss []*Sample
	for i, b := range blocks {
		ss = append(ss, NewSample(i, b))
	}
	return ss
}

func seq(lo, hi float64) []float64 {
	var xs []float64
	for x := lo; x <= hi; x++ {
		xs = append(xs, x)
	}
	return xs
}

func findResult(t *testing.T, out *Outcome, winner, loser int) Result {
	t.Helper()
	for _, r := range out.Results {
		if r.Winner == winner && r.Loser == loser {
			return r
		}
	}
	t.Fatalf("no result for %d better than %d in %+v", winner, loser, out.Results)
	return Result{}
}

func checkWarnings(t *testing.T, got []error, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("want %d warnings, got %d: %v", len(want), len(got), got)
	}
	for i := range got {
		if !strings.Contains(got[i].Error(), want[i]) {
			t.Errorf("warning %d: want substring %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKruskalWallis(t *testing.T) {
	ss := samples(seq(1, 3), seq(4, 6), seq(7, 9))
	out, err := KruskalWallis.Run(ss, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	om := out.Omnibus
	if om == nil {
		t.Fatal("missing omnibus result")
	}
	// R = 6, 15, 24; S² = 7.5; T = (279 - 225) / 7.5.
	if !aeq(om.T, 7.2) || !aeq(om.S2, 7.5) {
		t.Errorf("want T=7.2 S²=7.5, got T=%v S²=%v", om.T, om.S2)
	}
	// Chi-square with 2 degrees of freedom has survival exp(-x/2).
	if !aeq(om.P, math.Exp(-3.6)) {
		t.Errorf("want p=%v, got %v", math.Exp(-3.6), om.P)
	}
	if !om.Rejected || out.NoDifference() {
		t.Fatal("want null hypothesis rejected")
	}
	if om.DF != 2 || om.N != 9 || om.K != 3 {
		t.Errorf("got DF=%v N=%d K=%d", om.DF, om.N, om.K)
	}
	if len(out.Results) != 6 {
		t.Fatalf("want 6 pairwise results, got %d", len(out.Results))
	}

	// Mean ranks 2, 5, 8; the variance term is exactly 1.
	r := findResult(t, out, 0, 1)
	if !aeq(r.Statistic, 3.674234614174768) || !aeq(r.P, 0.005200860467732049) {
		t.Errorf("1 better than 2: got z=%v p=%v", r.Statistic, r.P)
	}
	r = findResult(t, out, 1, 0)
	if !aeq(r.P, 0.994799139532268) {
		t.Errorf("2 better than 1: got p=%v", r.P)
	}
	for _, r := range out.Results {
		rev := findResult(t, out, r.Loser, r.Winner)
		if !aeq(r.P+rev.P, 1) {
			t.Errorf("p(%d>%d)+p(%d>%d) = %v, want 1", r.Winner, r.Loser, rev.Winner, rev.Loser, r.P+rev.P)
		}
		if r.Method != StudentT {
			t.Errorf("want method %v, got %v", StudentT, r.Method)
		}
	}

	// Report order: outer loop over losers, inner over winners.
	var order []string
	for _, r := range out.Results {
		order = append(order, fmt.Sprintf("%d<%d", r.Winner, r.Loser))
	}
	if got, want := strings.Join(order, " "), "1<0 2<0 0<1 2<1 0<2 1<2"; got != want {
		t.Errorf("want order %s, got %s", want, got)
	}

	checkWarnings(t, out.Warnings,
		"sample 1 has only 3 values", "sample 2 has only 3 values", "sample 3 has only 3 values")
}

func TestKruskalWallisH0(t *testing.T) {
	ss := samples([]float64{1, 2, 3}, []float64{1, 2, 3})
	out, err := KruskalWallis.Run(ss, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if !out.NoDifference() || len(out.Results) != 0 {
		t.Errorf("want no difference, got %+v", out)
	}
	if out.Omnibus.T != 0 || !aeq(out.Omnibus.P, 1) {
		t.Errorf("want T=0 p=1, got T=%v p=%v", out.Omnibus.T, out.Omnibus.P)
	}
	if out.Omnibus.Ties != 3 {
		t.Errorf("want 3 ties, got %d", out.Omnibus.Ties)
	}
}

func TestKruskalWallisAllEqual(t *testing.T) {
	ss := samples([]float64{1, 1}, []float64{1, 1})
	out, err := KruskalWallis.Run(ss, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !out.NoDifference() || out.Omnibus.P != 1 {
		t.Errorf("want no difference with p=1, got %+v", out.Omnibus)
	}
	checkWarnings(t, out.Warnings, "sample 1 has only 2", "sample 2 has only 2", "all values are equal")
}

func TestKruskalWallisAlpha(t *testing.T) {
	ss := samples(seq(1, 3), seq(4, 6))
	for _, alpha := range []float64{0, -0.05, 0.11, 1, math.NaN()} {
		if _, err := KruskalWallis.Run(ss, alpha); !errors.Is(err, ErrAlpha) {
			t.Errorf("alpha %v: want ErrAlpha, got %v", alpha, err)
		}
	}
	if _, err := KruskalWallis.Run(ss, 0.1); err != nil {
		t.Errorf("alpha 0.1: unexpected error %v", err)
	}
}

func TestKruskalWallisSingletons(t *testing.T) {
	// With one value per sample and no ties, T is always N-1.
	var blocks [][]float64
	for i := 0; i < 8; i++ {
		blocks = append(blocks, []float64{float64(i)})
	}
	out, err := KruskalWallis.Run(samples(blocks...), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(out.Omnibus.T, 7) || out.Omnibus.Rejected {
		t.Errorf("want T=7 not rejected, got %+v", out.Omnibus)
	}
}

func TestKruskalWallisConstantSamples(t *testing.T) {
	// Every sample is internally constant, so T = N-1 and the
	// post-hoc variance term vanishes.
	rep := func(v float64) []float64 {
		out := make([]float64, 10)
		for i := range out {
			out[i] = v
		}
		return out
	}
	out, err := KruskalWallis.Run(samples(rep(1), rep(1), rep(2)), 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Omnibus.Rejected || !aeq(out.Omnibus.T, 29) {
		t.Fatalf("want T=29 rejected, got %+v", out.Omnibus)
	}
	for _, r := range out.Results {
		if math.IsNaN(r.P) || math.IsNaN(r.Statistic) {
			t.Errorf("%d over %d: got z=%v p=%v", r.Winner, r.Loser, r.Statistic, r.P)
		}
	}
	if r := findResult(t, out, 1, 0); r.Statistic != 0 || !aeq(r.P, 0.5) {
		t.Errorf("equal samples: want z=0 p=0.5, got z=%v p=%v", r.Statistic, r.P)
	}
	if r := findResult(t, out, 0, 2); r.P > 1e-9 {
		t.Errorf("1 better than 3: want p near 0, got %v", r.P)
	}
	if r := findResult(t, out, 2, 1); r.P < 1-1e-9 {
		t.Errorf("3 better than 2: want p near 1, got %v", r.P)
	}
}

func TestPostHocZ(t *testing.T) {
	for _, c := range []struct{ diff, se, want float64 }{
		{0, 0, 0},
		{3, 0, math.Inf(1)},
		{-3, 0, math.Inf(-1)},
		{3, 2, 1.5},
	} {
		if got := postHocZ(c.diff, c.se); got != c.want {
			t.Errorf("postHocZ(%v, %v) = %v, want %v", c.diff, c.se, got, c.want)
		}
	}
}

// TestKruskalWallisNull checks that T is roughly chi-square with k-1
// degrees of freedom when all samples come from one distribution.
func TestKruskalWallisNull(t *testing.T) {
	if testing.Short() {
		t.Skip("simulation")
	}
	r := rand.New(rand.NewSource(3))
	const trials = 2000
	sum, rejects := 0.0, 0
	for i := 0; i < trials; i++ {
		var blocks [][]float64
		for k := 0; k < 3; k++ {
			b := make([]float64, 20)
			for j := range b {
				b[j] = r.NormFloat64()
			}
			blocks = append(blocks, b)
		}
		out, err := KruskalWallis.Run(samples(blocks...), 0.05)
		if err != nil {
			t.Fatal(err)
		}
		sum += out.Omnibus.T
		if out.Omnibus.Rejected {
			rejects++
		}
	}
	// Chi-square(2) has mean 2, and the test should reject about
	// 5% of the time.
	if mean := sum / trials; mean < 1.8 || mean > 2.2 {
		t.Errorf("mean T = %v, want about 2", mean)
	}
	if rate := float64(rejects) / trials; rate < 0.03 || rate > 0.07 {
		t.Errorf("rejection rate %v, want about 0.05", rate)
	}
}

func TestMannWhitney(t *testing.T) {
	ss := samples(seq(1, 5), seq(6, 10))
	out, err := MannWhitney.Run(ss, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Omnibus != nil {
		t.Error("pairwise test has an omnibus result")
	}
	if len(out.Results) != 2 {
		t.Fatalf("want 2 results, got %d", len(out.Results))
	}
	// Sample 1 holds the smaller values, so it is the one
	// significantly better.
	r := findResult(t, out, 0, 1)
	if !aeq(r.Statistic, 2.611164839335467) || !aeq(r.P, 0.00451171940904016) {
		t.Errorf("1 better than 2: got T1=%v p=%v", r.Statistic, r.P)
	}
	if r.P >= 0.01 {
		t.Errorf("want p < 0.01, got %v", r.P)
	}
	r = findResult(t, out, 1, 0)
	if !aeq(r.P, 0.9954882805909598) {
		t.Errorf("2 better than 1: got p=%v", r.P)
	}
	checkWarnings(t, out.Warnings, "sample 1 has only 5", "sample 2 has only 5")
}

func TestMannWhitneyZeroNumerator(t *testing.T) {
	// Equal mean ranks: T1 is exactly 0 and p is 1/2.
	ss := samples([]float64{1, 4}, []float64{2, 3})
	out, err := MannWhitney.Run(ss, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range out.Results {
		if r.Statistic != 0 || r.P != 0.5 {
			t.Errorf("want T1=0 p=0.5, got %+v", r)
		}
	}

	// All values tied: the variance term is zero as well, but it
	// is never evaluated.
	ss = samples([]float64{2, 2, 2}, []float64{2, 2})
	out, err = MannWhitney.Run(ss, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range out.Results {
		if r.Statistic != 0 || r.P != 0.5 || r.Ties != 4 {
			t.Errorf("want T1=0 p=0.5 ties=4, got %+v", r)
		}
	}
}

func TestMannWhitneyPairsRanked(t *testing.T) {
	// Each pair is ranked on its own, so the third sample doesn't
	// affect the comparison of the first two.
	two, err := MannWhitney.Run(samples(seq(1, 5), seq(6, 10)), 0)
	if err != nil {
		t.Fatal(err)
	}
	three, err := MannWhitney.Run(samples(seq(1, 5), seq(6, 10), seq(3, 7)), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(three.Results) != 6 {
		t.Fatalf("want 6 results, got %d", len(three.Results))
	}
	a, b := findResult(t, two, 0, 1), findResult(t, three, 0, 1)
	if a.P != b.P || a.Statistic != b.Statistic {
		t.Errorf("pair result changed with a third sample: %+v vs %+v", a, b)
	}
	checkWarnings(t, three.Warnings,
		"sample 1 has only 5", "sample 2 has only 5", "sample 3 has only 5",
		"3 samples compared pairwise")
}

func TestWilcoxonTablePath(t *testing.T) {
	ss := samples([]float64{1, 1, 1, 1, 1}, []float64{2, 2, 2, 2, 2})
	out, err := Wilcoxon.Run(ss, 0)
	if err != nil {
		t.Fatal(err)
	}
	r := findResult(t, out, 1, 0)
	if r.Method != Table {
		t.Errorf("want table path, got %v", r.Method)
	}
	sr := r.Signed
	if sr.N != 5 || sr.Zeros != 0 || sr.TPlus != 15 || sr.TMinus != 0 {
		t.Errorf("got %+v", sr)
	}
	// T+ = 15 exceeds every tabulated value for n=5.
	if r.P != 0.5 {
		t.Errorf("want p=0.5, got %v", r.P)
	}

	// The other direction has T+ = 0. The first tabulated value
	// above 0 for n=5 is 1, at level 0.05.
	r = findResult(t, out, 0, 1)
	if r.Signed.TPlus != 0 || r.Signed.TMinus != 15 || r.P != 0.05 {
		t.Errorf("got p=%v %+v", r.P, r.Signed)
	}
}

func TestWilcoxonSignedRankSums(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for iter := 0; iter < 100; iter++ {
		n := 4 + r.Intn(70)
		a, b := make([]float64, n), make([]float64, n)
		for i := range a {
			a[i] = float64(r.Intn(10))
			b[i] = float64(r.Intn(10)) + 0.5
		}
		out, err := Wilcoxon.Run(samples(a, b), 0)
		if err != nil {
			t.Fatal(err)
		}
		for _, res := range out.Results {
			sr := res.Signed
			if want := float64(sr.N*(sr.N+1)) / 2; sr.TPlus+sr.TMinus != want {
				t.Fatalf("T+ + T- = %v, want %v", sr.TPlus+sr.TMinus, want)
			}
			wantMethod := Table
			if sr.N > WilcoxonTableMax {
				wantMethod = Normal
			}
			if res.Method != wantMethod {
				t.Errorf("n=%d: want %v, got %v", sr.N, wantMethod, res.Method)
			}
		}
	}
}

func TestWilcoxonNormalPath(t *testing.T) {
	a, b := make([]float64, 60), make([]float64, 60)
	for i := range a {
		b[i] = float64(i + 1)
	}
	out, err := Wilcoxon.Run(samples(a, b), 0)
	if err != nil {
		t.Fatal(err)
	}
	// Differences 1..60 are all positive: sum of signed ranks
	// 1830, sum of squares 73810.
	r := findResult(t, out, 1, 0)
	if r.Method != Normal || !aeq(r.Statistic, 6.732185944987443) || r.P < 0.999999 {
		t.Errorf("2 better than 1: got %+v", r)
	}
	r = findResult(t, out, 0, 1)
	// Φ(-1831/√73810) ≈ 7.944e-12.
	if r.Method != Normal || r.P > 1e-11 || r.P < 5e-12 {
		t.Errorf("1 better than 2: got %+v", r)
	}
}

func TestWilcoxonManyZeros(t *testing.T) {
	// 6 of 10 differences are zero, so the table is skipped even
	// though n=4.
	a := []float64{1, 1, 1, 1, 1, 1, 1, 2, 3, 4}
	b := []float64{1, 1, 1, 1, 1, 1, 2, 3, 4, 5}
	out, err := Wilcoxon.Run(samples(a, b), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range out.Results {
		if r.Method != Normal || r.Signed.N != 4 || r.Signed.Zeros != 6 {
			t.Errorf("got method %v %+v", r.Method, r.Signed)
		}
		if r.Ties != 3+6 {
			t.Errorf("want 9 ties (3 among |d| plus 6 zeros), got %d", r.Ties)
		}
	}
}

func TestWilcoxonTooFew(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 2, 3, 5, 6}
	_, err := Wilcoxon.Run(samples(a, b), 0)
	if !errors.Is(err, ErrTooFewDifferences) {
		t.Fatalf("want ErrTooFewDifferences, got %v", err)
	}
	if !strings.Contains(err.Error(), "comparing samples 1 and 2") {
		t.Errorf("error lacks pair context: %v", err)
	}
}

func TestWilcoxonUnpaired(t *testing.T) {
	_, err := Wilcoxon.Run(samples(seq(1, 5), seq(1, 6)), 0)
	if !errors.Is(err, ErrUnpaired) {
		t.Fatalf("want ErrUnpaired, got %v", err)
	}
}

func TestWilcoxonScan(t *testing.T) {
	check := func(n int, tplus, wantUpper, wantLower float64) {
		t.Helper()
		if got := WilcoxonUpperP(n, tplus); got != wantUpper {
			t.Errorf("upper(n=%d, T+=%v): want %v, got %v", n, tplus, wantUpper, got)
		}
		if got := WilcoxonLowerP(n, tplus); got != wantLower {
			t.Errorf("lower(n=%d, T+=%v): want %v, got %v", n, tplus, wantLower, got)
		}
	}
	// n=5 row: 0 0 0 1 3 4 5 6 7.5; n(n+1)/2 = 15.
	check(5, 0, 0.05, 0.5)
	check(5, 1, 0.1, 0.5)
	check(5, 2.5, 0.1, 0.5)
	check(5, 7.5, 0.5, 0.5)
	check(5, 15, 0.5, 0.05)
	check(5, 14, 0.5, 0.1)
	// n=50 row starts at 374.
	check(50, 373, 0.005, 0.5)
	check(50, 374, 0.01, 0.5)
	check(50, 1000, 0.5, 0.005)
	check(50, 1275, 0.5, 0.005)
}

func TestWilcoxonTableBounds(t *testing.T) {
	for _, n := range []int{3, 51} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("n=%d: want panic", n)
				}
			}()
			WilcoxonUpperP(n, 0)
		}()
	}
	// Rows are nondecreasing across levels.
	for n := WilcoxonTableMin; n <= WilcoxonTableMax; n++ {
		row := wilcoxonRow(n)
		for j := 1; j < len(row); j++ {
			if row[j] < row[j-1] {
				t.Errorf("n=%d: level %d value %v < level %d value %v", n, j, row[j], j-1, row[j-1])
			}
		}
	}
}

func TestTests(t *testing.T) {
	for name, test := range Tests {
		if test.Name() != name {
			t.Errorf("Tests[%q].Name() = %q", name, test.Name())
		}
	}
	if !Wilcoxon.Paired() || MannWhitney.Paired() || KruskalWallis.Paired() {
		t.Error("only the signed-rank test is paired")
	}
	if !KruskalWallis.Omnibus() || MannWhitney.Omnibus() || Wilcoxon.Omnibus() {
		t.Error("only Kruskal-Wallis has an omnibus gate")
	}
}
