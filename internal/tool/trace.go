// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tool

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rankstat/rankstat/internal/texttab"
	"github.com/rankstat/rankstat/rankmath"
)

// newLogger returns a debug logger writing to w, or a no-op logger if
// verbose is false. Entries carry no timestamps.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.DebugLevel)
	return zap.New(core)
}

func traceSamples(log *zap.Logger, samples []*rankmath.Sample) {
	n := 0
	for _, s := range samples {
		n += s.Len()
	}
	log.Debug("loaded samples",
		zap.Int("samples", len(samples)),
		zap.Int("values", n),
	)
}

func traceOutcome(log *zap.Logger, out *rankmath.Outcome) {
	if om := out.Omnibus; om != nil {
		log.Debug("omnibus",
			zap.Int("n", om.N),
			zap.Int("k", om.K),
			zap.Int("ties", om.Ties),
			zap.Float64s("rankSums", om.RankSums),
			zap.Float64("s2", om.S2),
			zap.Float64("t", om.T),
			zap.Float64("df", om.DF),
			zap.Float64("p", om.P),
			zap.Bool("rejected", om.Rejected),
		)
	}
	for _, r := range out.Results {
		fields := []zap.Field{
			zap.Int("winner", r.Winner+1),
			zap.Int("loser", r.Loser+1),
			zap.Stringer("method", r.Method),
			zap.Float64("statistic", r.Statistic),
			zap.Float64("p", r.P),
			zap.Int("ties", r.Ties),
		}
		if sr := r.Signed; sr != nil {
			fields = append(fields,
				zap.Int("n", sr.N),
				zap.Int("zeros", sr.Zeros),
				zap.Float64("tplus", sr.TPlus),
				zap.Float64("tminus", sr.TMinus),
				zap.Float64("lowerP", sr.LowerP),
			)
		}
		log.Debug("comparison", fields...)
	}
}

// writeSummary writes a table describing each sample to w. Rank
// columns are included when out has an omnibus result.
func writeSummary(w io.Writer, samples []*rankmath.Sample, out *rankmath.Outcome) error {
	var tab texttab.Table
	tab.Row().Cell("sample").Cell("n", texttab.Right).Cell("mean", texttab.Right).Cell("median", texttab.Right).Cell("stddev", texttab.Right)
	if out.Omnibus != nil {
		tab.Cell("rank sum", texttab.Right).Cell("mean rank", texttab.Right)
	}
	for i, s := range samples {
		data := stats.Float64Data(s.Values)
		mean, err := stats.Mean(data)
		if err != nil {
			return fmt.Errorf("sample %d: %w", s.Label+1, err)
		}
		median, err := stats.Median(data)
		if err != nil {
			return fmt.Errorf("sample %d: %w", s.Label+1, err)
		}
		sd, err := stats.StandardDeviation(data)
		if err != nil {
			return fmt.Errorf("sample %d: %w", s.Label+1, err)
		}
		tab.Row().Cell(fmt.Sprint(s.Label+1)).
			Cell(fmt.Sprint(s.Len()), texttab.Right).
			Cell(fmt.Sprintf("%.6g", mean), texttab.Right).
			Cell(fmt.Sprintf("%.6g", median), texttab.Right).
			Cell(fmt.Sprintf("%.6g", sd), texttab.Right)
		if om := out.Omnibus; om != nil {
			tab.Cell(fmt.Sprintf("%g", om.RankSums[i]), texttab.Right).
				Cell(fmt.Sprintf("%.4g", om.RankSums[i]/float64(s.Len())), texttab.Right)
		}
	}
	return tab.Format(w)
}
