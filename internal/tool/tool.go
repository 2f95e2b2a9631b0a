// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tool implements the command line surface shared by the
// kruskal, mannwhit, and wilcoxon commands:
//
//	<tool> [flags] indicator_file param_file output_file
package tool

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/rankstat/rankstat/chart"
	"github.com/rankstat/rankstat/indfmt"
	"github.com/rankstat/rankstat/internal/source"
	"github.com/rankstat/rankstat/ledger"
	_ "github.com/rankstat/rankstat/ledger/sqlite3"
	"github.com/rankstat/rankstat/rankmath"
	"github.com/rankstat/rankstat/report"
)

// ErrUsage is returned when the command line is malformed.
var ErrUsage = errors.New("usage error")

// chartAlpha is the level at which boxes are highlighted in charts of
// tests without an omnibus gate.
const chartAlpha = 0.05

// Main runs test with the command line arguments args, not including
// the program name. Diagnostics go to stderr. The .env file in the
// working directory, if any, is loaded first.
func Main(test rankmath.Test, args []string, stderr io.Writer) error {
	if err := LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := DefaultConfig(os.Getenv)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet(test.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] indicator_file param_file output_file\n", test.Name())
		fs.PrintDefaults()
	}
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrUsage
		}
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("%w: want 3 arguments, got %d", ErrUsage, fs.NArg())
	}
	if cfg.MaxSamples < 1 {
		return fmt.Errorf("%w: -max-samples must be a positive integer, got %d", ErrUsage, cfg.MaxSamples)
	}
	return Run(context.Background(), test, cfg, fs.Arg(0), fs.Arg(1), fs.Arg(2), stderr)
}

// Run reads the samples in indicatorFile and the parameters in
// paramFile, runs test, and writes the report to outputFile.
// Warnings go to stderr, one per line.
func Run(ctx context.Context, test rankmath.Test, cfg Config, indicatorFile, paramFile, outputFile string, stderr io.Writer) error {
	log := newLogger(stderr, cfg.Verbose)
	defer log.Sync()

	alpha, err := readParams(ctx, test, paramFile)
	if err != nil {
		return err
	}
	samples, err := loadSamples(ctx, test, cfg, indicatorFile)
	if err != nil {
		return err
	}
	traceSamples(log, samples)

	out, err := test.Run(samples, alpha)
	if err != nil {
		return err
	}
	for _, w := range out.Warnings {
		fmt.Fprintf(stderr, "warning: %v\n", w)
	}
	traceOutcome(log, out)
	if cfg.Verbose {
		if err := writeSummary(stderr, samples, out); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := report.NewWriter(&buf, report.OptionsFor(test.Name())).WriteOutcome(out); err != nil {
		return err
	}
	if err := source.WriteFile(ctx, outputFile, buf.Bytes()); err != nil {
		return err
	}

	if cfg.Chart != "" {
		hl := chartAlpha
		if test.Omnibus() {
			hl = alpha
		}
		pl, err := chart.BoxPlot(samples, indicatorFile, out, hl)
		if err != nil {
			return err
		}
		if err := chart.Save(ctx, pl, len(samples), cfg.Chart); err != nil {
			return err
		}
		log.Debug("wrote chart", zap.String("path", cfg.Chart))
	}

	if cfg.Ledger != "" {
		db, err := ledger.OpenSQL(cfg.LedgerDriver, cfg.Ledger)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer db.Close()
		id, err := db.InsertRun(ctx, ledger.NewRun(indicatorFile, out, time.Now()))
		if err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
		log.Debug("recorded run", zap.Int64("id", id))
	}
	return nil
}

// readParams reads the parameter file. Tests with an omnibus gate
// need its alpha; for the others the file only has to exist.
func readParams(ctx context.Context, test rankmath.Test, paramFile string) (float64, error) {
	r, err := source.Open(ctx, paramFile)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	if !test.Omnibus() {
		return 0, nil
	}
	params, err := indfmt.ReadParams(r, paramFile)
	if err != nil {
		return 0, err
	}
	if err := rankmath.CheckAlpha(params.Alpha); err != nil {
		return 0, fmt.Errorf("%s: %w", paramFile, err)
	}
	return params.Alpha, nil
}

func loadSamples(ctx context.Context, test rankmath.Test, cfg Config, indicatorFile string) ([]*rankmath.Sample, error) {
	r, err := source.Open(ctx, indicatorFile)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return indfmt.Load(r, indicatorFile, indfmt.LoadOptions{
		MinSamples: test.MinSamples(),
		MaxSamples: cfg.MaxSamples,
		Paired:     test.Paired(),
	})
}
