// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rankledger lists the runs recorded by kruskal, mannwhit, and
// wilcoxon with the -ledger flag.
//
// Usage:
//
//	rankledger [-ledger-driver name] [-ledger dsn] [-tool name] [-input file] [-n count] [-results]
//
// Runs are listed newest first. For each run, rankledger prints its
// ID, the time it was recorded, the tool, the indicator file, the
// omnibus p-value if the tool has one, and the verdict: "H0" if the
// omnibus test found no difference, "rejected" if it did, and
// "pairwise" for tools without an omnibus test. With -results it also
// prints the comparisons of each run in report form.
//
// The ledger defaults come from RANKSTAT_LEDGER_DRIVER and
// RANKSTAT_LEDGER, as for the test tools.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/rankstat/rankstat/internal/texttab"
	"github.com/rankstat/rankstat/internal/tool"
	"github.com/rankstat/rankstat/ledger"
	_ "github.com/rankstat/rankstat/ledger/sqlite3"
	"github.com/rankstat/rankstat/rankmath"
)

func main() {
	log.SetPrefix("rankledger: ")
	log.SetFlags(0)
	if err := tool.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:], os.Getenv); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string, getenv func(string) string) error {
	cfg, err := tool.DefaultConfig(getenv)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("rankledger", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.LedgerDriver, "ledger-driver", cfg.LedgerDriver, "SQL `driver` of the ledger: sqlite3 or mysql")
	fs.StringVar(&cfg.Ledger, "ledger", cfg.Ledger, "read the ledger at data source `dsn`")
	flagTool := fs.String("tool", "", "list only runs of tool `name`")
	flagInput := fs.String("input", "", "list only runs of indicator `file`")
	flagN := fs.Int("n", 20, "list at most `count` runs (0 for all)")
	flagResults := fs.Bool("results", false, "print the comparisons of each run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	if _, ok := rankmath.Tests[*flagTool]; *flagTool != "" && !ok {
		return fmt.Errorf("unknown tool %q", *flagTool)
	}
	if cfg.Ledger == "" {
		return errors.New("no ledger: set -ledger or " + tool.EnvLedger)
	}

	db, err := ledger.OpenSQL(cfg.LedgerDriver, cfg.Ledger)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer db.Close()
	runs, err := db.Runs(ctx, ledger.Query{Tool: *flagTool, Input: *flagInput, Limit: *flagN})
	if err != nil {
		return err
	}
	if *flagResults {
		return writeResults(stdout, runs)
	}
	return writeRuns(stdout, runs)
}

func verdict(r *ledger.Run) string {
	switch {
	case r.OmnibusP == nil:
		return "pairwise"
	case r.Rejected:
		return "rejected"
	}
	return "H0"
}

func writeRuns(w io.Writer, runs []*ledger.Run) error {
	var tab texttab.Table
	tab.Row().Cell("run", texttab.Right).Cell("created").Cell("tool").Cell("input").Cell("omnibus-p").Cell("verdict").Cell("results", texttab.Right)
	for _, r := range runs {
		p := "-"
		if r.OmnibusP != nil {
			p = strconv.FormatFloat(*r.OmnibusP, 'g', 6, 64)
		}
		tab.Row().
			Cell(strconv.FormatInt(r.ID, 10), texttab.Right).
			Cell(r.Created.UTC().Format(time.RFC3339)).
			Cell(r.Tool).
			Cell(r.Input).
			Cell(p).
			Cell(verdict(r)).
			Cell(strconv.Itoa(len(r.Results)), texttab.Right)
	}
	return tab.Format(w)
}

func writeResults(w io.Writer, runs []*ledger.Run) error {
	for i, r := range runs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "run %d: %s %s (%s)\n", r.ID, r.Tool, r.Input, verdict(r))
		for _, x := range r.Results {
			fmt.Fprintf(w, "%d better than %d with a p-value of %.6g [%s]\n", x.Winner+1, x.Loser+1, x.P, x.Method)
		}
	}
	return nil
}
