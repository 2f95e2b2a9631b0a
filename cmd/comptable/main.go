// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Comptable collects indicator means and test reports from a tree of
// experiment results into one comparative table.
//
// Usage:
//
//	comptable [-layout file] [-format csv|text|html] [-o file] basedir
//
// Basedir holds one directory per problem instance. The instances are
// listed, one per line, in basedir/processed_instances.txt unless the
// layout names them. Instances whose directory is missing are skipped
// with a warning.
//
// The layout is a YAML file describing the columns:
//
//	alpha: 0.05
//	columns:
//	  - name: HV_NSGA2
//	    kind: mean
//	    dir: hypervolume
//	    match: HV_nsga2
//	  - name: Kruskal Wallis Test (HV)
//	    kind: report
//	    dir: kruskal
//	    match: hv_saidakruskal
//
// Each column reads the first file in the instance's dir whose name
// contains match, ignoring case. A mean column prints the mean of the
// values in the file, or NaN. A report column prints the lines of a
// kruskal, mannwhit, or wilcoxon report with a p-value at most alpha,
// separated by " | ", or H0 if there are none, or N/A if there is no
// report. Without -layout, comptable compares the hypervolume,
// additive epsilon and IGD means of MOEA/D, COMOLS/D and NSGA-II,
// with one Kruskal-Wallis column per indicator.
//
// The table goes to standard output unless -o names a file. Paths
// starting with gs:// name objects in Google Cloud Storage.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rankstat/rankstat/comptable"
	"github.com/rankstat/rankstat/internal/source"
)

func main() {
	log.SetPrefix("comptable: ")
	log.SetFlags(0)
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

var errUsage = errors.New("usage error")

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("comptable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flagLayout := fs.String("layout", "", "read the table layout from YAML `file`")
	flagFormat := fs.String("format", "csv", "print the table as csv, text, or html")
	flagOut := fs.String("o", "", "write the table to `file` instead of standard output")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: comptable [flags] basedir\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: want 1 argument, got %d", errUsage, fs.NArg())
	}
	baseDir := fs.Arg(0)

	layout := comptable.DefaultLayout()
	if *flagLayout != "" {
		data, err := source.ReadFile(ctx, *flagLayout)
		if err != nil {
			return err
		}
		if layout, err = comptable.ReadLayout(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%s: %w", *flagLayout, err)
		}
	}

	if fi, err := os.Stat(baseDir); err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", baseDir)
	}
	tab, err := comptable.Build(os.DirFS(baseDir), layout)
	if err != nil {
		return err
	}
	for _, w := range tab.Warnings {
		fmt.Fprintf(stderr, "warning: %v\n", w)
	}
	if len(tab.Rows) == 0 {
		return errors.New("no instances processed")
	}

	var buf bytes.Buffer
	if err := tab.Write(&buf, *flagFormat); err != nil {
		return err
	}
	if *flagOut == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	return source.WriteFile(ctx, *flagOut, buf.Bytes())
}
