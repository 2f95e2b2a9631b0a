// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareUpper returns the probability that a chi-square variate
// with df degrees of freedom is at least x.
func ChiSquareUpper(x, df float64) float64 {
	if x <= 0 {
		return 1
	}
	return clampP(distuv.ChiSquared{K: df}.Survival(x))
}

// StudentTUpper returns the probability that a Student-t variate with
// df degrees of freedom is at least t.
func StudentTUpper(t, df float64) float64 {
	switch {
	case math.IsInf(t, 1):
		return 0
	case math.IsInf(t, -1):
		return 1
	}
	return clampP(1 - stats.TDist{V: df}.CDF(t))
}

// NormalCDF returns the probability that a standard normal variate
// is at most x.
func NormalCDF(x float64) float64 {
	return clampP(stats.StdNormal.CDF(x))
}

// clampP keeps rounding noise from pushing a probability outside
// [0, 1]. NaN passes through.
func clampP(p float64) float64 {
	if math.IsNaN(p) {
		return p
	}
	return math.Max(0, math.Min(1, p))
}
