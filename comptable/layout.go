// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comptable builds comparative tables from a tree of
// indicator files and test reports.
//
// The base directory holds one directory per problem instance. A
// table has one row per instance and one column per Column of a
// Layout. A mean column holds the mean of an indicator file. A report
// column holds the significant lines of a kruskal, mannwhit, or
// wilcoxon report.
package comptable

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAlpha is the significance level of report columns when the
// layout does not set one.
const DefaultAlpha = 0.05

// DefaultInstancesFile is the file, relative to the base directory,
// that lists the instances when the layout lists none.
const DefaultInstancesFile = "processed_instances.txt"

// A Kind is the kind of a column.
type Kind string

const (
	// Mean columns hold the mean of an indicator file, with four
	// decimals.
	Mean Kind = "mean"

	// Report columns hold the report lines with a p-value at most
	// alpha, joined by " | ", or "H0" if there are none.
	Report Kind = "report"
)

// A Column is a column of a comparative table.
type Column struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	// Dir is the directory, relative to an instance directory, that
	// holds the column's files.
	Dir string `yaml:"dir"`

	// Match selects the first file in Dir whose name contains it,
	// ignoring case and surrounding space.
	Match string `yaml:"match"`
}

// A Layout describes a comparative table.
type Layout struct {
	// Instances lists the instance directories. If empty, they are
	// read from InstancesFile, one per line.
	Instances     []string `yaml:"instances"`
	InstancesFile string   `yaml:"instances_file"`

	// Alpha is the significance level of report columns.
	Alpha float64 `yaml:"alpha"`

	Columns []Column `yaml:"columns"`
}

// ReadLayout reads a YAML layout from r. Unset fields take their
// defaults.
func ReadLayout(r io.Reader) (*Layout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	l := new(Layout)
	if err := dec.Decode(l); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if l.Alpha == 0 {
		l.Alpha = DefaultAlpha
	}
	if len(l.Columns) == 0 {
		l.Columns = DefaultLayout().Columns
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Layout) validate() error {
	if l.Alpha <= 0 || l.Alpha > 1 {
		return fmt.Errorf("layout: alpha must be in (0,1], got %g", l.Alpha)
	}
	seen := make(map[string]bool)
	for i, c := range l.Columns {
		if c.Name == "" {
			return fmt.Errorf("layout: column %d has no name", i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("layout: duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		switch c.Kind {
		case Mean, Report:
		default:
			return fmt.Errorf("layout: column %q: unknown kind %q", c.Name, c.Kind)
		}
		if c.Match == "" {
			return fmt.Errorf("layout: column %q: empty match", c.Name)
		}
	}
	return nil
}

// DefaultLayout returns the layout of the three-algorithm study the
// tools were first written for: hypervolume, additive epsilon, and IGD
// means of MOEA/D, COMOLS/D, and NSGA-II, and the Kruskal-Wallis
// report of each indicator.
func DefaultLayout() *Layout {
	l := &Layout{Alpha: DefaultAlpha}
	mean := func(name, dir, match string) {
		l.Columns = append(l.Columns, Column{Name: name, Kind: Mean, Dir: dir, Match: match})
	}
	mean("HV_MOEA_D", "hypervolume", "HV_moead")
	mean("HV_COMOLS_D", "hypervolume", "HV_comolsd")
	mean("HV_NSGA2", "hypervolume", "HV_nsga2")
	mean("EPS_MOEA_D", "epsilon_additive", "esp_ad_moead")
	mean("EPS_COMOLS_D", "epsilon_additive", "esp_ad_comolsd")
	mean("EPS_NSGA2", "epsilon_additive", "esp_ad_nsga2")
	mean("IGD_MOEA_D", "igd", "IGD_moead")
	mean("IGD_COMOLS_D", "igd", "IGD_comolsd")
	mean("IGD_NSGA2", "igd", "IGD_nsga2")
	for _, ind := range []string{"HV", "EPS", "IGD"} {
		l.Columns = append(l.Columns, Column{
			Name:  fmt.Sprintf("Kruskal Wallis Test (%s)", ind),
			Kind:  Report,
			Dir:   "kruskal",
			Match: strings.ToLower(ind) + "_saidakruskal",
		})
	}
	return l
}
