// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tool

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/rankstat/rankstat/indfmt"
)

// Environment variables that override the built-in defaults. Flags
// override both.
const (
	EnvMaxSamples   = "RANKSTAT_MAX_SAMPLES"
	EnvLedgerDriver = "RANKSTAT_LEDGER_DRIVER"
	EnvLedger       = "RANKSTAT_LEDGER"
)

// Config is the configuration of one run.
type Config struct {
	// MaxSamples is the most blocks an indicator file may hold.
	MaxSamples int

	// Verbose enables the debug trace and the sample summary.
	Verbose bool

	// Chart, if set, is the path of a box plot to write.
	Chart string

	// LedgerDriver and Ledger select the SQL database runs are
	// recorded in. Runs are recorded only if Ledger is set.
	LedgerDriver string
	Ledger       string
}

// DefaultConfig returns the built-in defaults overridden by the
// environment, as read through getenv.
func DefaultConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		MaxSamples:   indfmt.DefaultMaxSamples,
		LedgerDriver: "sqlite3",
	}
	if v := getenv(EnvMaxSamples); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s=%q: want a positive integer", EnvMaxSamples, v)
		}
		cfg.MaxSamples = n
	}
	if v := getenv(EnvLedgerDriver); v != "" {
		cfg.LedgerDriver = v
	}
	cfg.Ledger = getenv(EnvLedger)
	return cfg, nil
}

// LoadDotEnv loads the named .env files into the environment without
// overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// RegisterFlags defines the flags of cfg on fs, using the current
// values of cfg as defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&cfg.MaxSamples, "max-samples", cfg.MaxSamples, "fail if the indicator file has more than `n` samples")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "trace the computation and summarize the samples on standard error")
	fs.StringVar(&cfg.Chart, "chart", cfg.Chart, "write a box plot of the samples to `file` (.png, .svg, or .pdf)")
	fs.StringVar(&cfg.LedgerDriver, "ledger-driver", cfg.LedgerDriver, "SQL `driver` of the ledger: sqlite3 or mysql")
	fs.StringVar(&cfg.Ledger, "ledger", cfg.Ledger, "record the run in the ledger at data source `dsn`")
}
