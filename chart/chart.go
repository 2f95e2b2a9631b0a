// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws box plots of indicator samples.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"path"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/rankstat/rankstat/internal/source"
	"github.com/rankstat/rankstat/rankmath"
)

const pointRad = 3

// BoxPlot returns a plot with one box per sample, labeled 1..k
// along the X axis.
//
// If out is not nil, the box of every sample that is better than
// at least one other sample with a p-value at most alpha is filled.
func BoxPlot(samples []*rankmath.Sample, title string, out *rankmath.Outcome, alpha float64) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}
	winners := make(map[int]bool)
	if out != nil && !out.NoDifference() {
		for _, r := range out.Results {
			if r.P <= alpha {
				winners[r.Winner] = true
			}
		}
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.Y.Label.Text = "indicator value"

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	w := vg.Points(20)
	var nominalX []string
	for i, s := range samples {
		b, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(s.Values))
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", s.Label+1, err)
		}
		b.BoxStyle.Color = color.Black
		b.GlyphStyle.Radius = pointRad
		if winners[s.Label] {
			b.BoxStyle.Color = blue(0xff)
			b.FillColor = blue(0x50)
		}
		pl.Add(b)
		nominalX = append(nominalX, fmt.Sprint(s.Label+1))
	}
	pl.NominalX(nominalX...)
	pl.X.Tick.Width = vg.Points(0.5)
	pl.X.Tick.Length = vg.Points(8)
	pl.X.Tick.Label.YAlign = draw.YTop
	return pl, nil
}

func blue(alpha uint8) color.Color {
	return color.NRGBA{0, 0, 0xFF, alpha}
}

// Size returns the heuristic canvas size of a plot of k samples.
func Size(k int) (width, height vg.Length) {
	width = vg.Length(1.5*float64(2+k)) * vg.Centimeter
	if width < 10*vg.Centimeter {
		width = 10 * vg.Centimeter
	}
	return width, 10 * vg.Centimeter
}

// Save renders pl for k samples to path. The format follows the file
// extension: .png, .svg, or .pdf.
func Save(ctx context.Context, pl *plot.Plot, k int, file string) error {
	var buf bytes.Buffer
	if err := Render(&buf, pl, k, strings.TrimPrefix(path.Ext(file), ".")); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return source.WriteFile(ctx, file, buf.Bytes())
}

// Render writes pl for k samples to buf in the given format.
func Render(buf *bytes.Buffer, pl *plot.Plot, k int, format string) error {
	width, height := Size(k)
	switch format := strings.ToLower(format); format {
	case "png":
		const dpi = 150
		can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
		pl.Draw(draw.New(can))
		_, err := can.WriteTo(buf)
		return err
	case "svg", "pdf":
		wt, err := pl.WriterTo(width, height, format)
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(buf)
		return err
	}
	return fmt.Errorf("unsupported chart format %q (want png, svg, or pdf)", format)
}
