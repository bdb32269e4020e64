// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/ostperf/benchpair/benchcsv"
	"github.com/ostperf/benchpair/benchstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Panel is one tile of a profile figure: a metric of one test,
// plotted by size with a line per variant.
type Panel struct {
	Test   string
	Metric string
	Title  string
	YLabel string
}

// ProfileConfig configures a profile figure.
type ProfileConfig struct {
	// Inputs lists candidate input files in order of preference.
	Inputs []string

	// Output is the path of the PNG to write.
	Output string

	// Title is drawn above the tiles. If empty, there is no title.
	Title string

	// Panels are laid out row by row, Cols to a row.
	Panels []Panel
	Cols   int

	// Variants are the configurations to draw, one line each.
	Variants []string

	// Width, Height, and DPI set the size of the whole figure.
	Width, Height vg.Length
	DPI           int

	Stdout io.Writer
	Logger *slog.Logger
}

// DefaultProfileConfig returns the configuration of the allocator
// profile figure, reading "profile.csv" from the parent or current
// directory.
func DefaultProfileConfig() ProfileConfig {
	var panels []Panel
	for _, test := range []string{"insert_build", "delete_to_empty", "search", "select", "successor", "churn_delete_insert"} {
		panels = append(panels, Panel{test, "ops_per_sec", test + " ops/s", "ops/s"})
	}
	panels = append(panels,
		Panel{"churn_delete_insert", "alloc_calls", "churn: alloc_calls", "alloc() calls"},
		Panel{"churn_delete_insert", "total_alloc_bytes", "churn: total_alloc_bytes", "bytes"},
		Panel{"insert_build", "peak_bytes", "insert_build: peak_bytes", "bytes"},
	)
	return ProfileConfig{
		Inputs:   []string{"../profile.csv", "profile.csv"},
		Output:   "all_plots.png",
		Title:    "OST profiling: speed + allocator behaviour (freelist vs no_freelist)",
		Panels:   panels,
		Cols:     3,
		Variants: []string{"freelist", "no_freelist"},
		Width:    18 * vg.Inch,
		Height:   12 * vg.Inch,
		DPI:      200,
	}
}

// RunProfile reads a profile input and renders cfg's panels into a
// single tiled figure.
func RunProfile(cfg ProfileConfig) error {
	files := benchcsv.Files{Paths: cfg.Inputs, Schema: benchcsv.ProfileSchema}
	rows, err := files.ReadAll()
	if err != nil {
		return err
	}

	plots := make([]*plot.Plot, len(cfg.Panels))
	for i, panel := range cfg.Panels {
		p, err := profilePanel(rows, panel, cfg.Variants)
		if err != nil {
			return err
		}
		plots[i] = p
	}

	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	variants, tests := distinct(rows)
	fmt.Fprintf(out, "configs: %v\n", variants)
	fmt.Fprintf(out, "tests: %v\n", tests)

	if err := saveTiles(plots, cfg); err != nil {
		return err
	}
	orDiscard(cfg.Logger).Info("wrote figure", "path", cfg.Output, "panels", len(plots))
	fmt.Fprintf(out, "Wrote %s\n", cfg.Output)
	return nil
}

func distinct(rows []*benchcsv.Row) (variants, tests []string) {
	seenV, seenT := make(map[string]bool), make(map[string]bool)
	for _, row := range rows {
		if !seenV[row.Variant] {
			seenV[row.Variant] = true
			variants = append(variants, row.Variant)
		}
		if !seenT[row.Op] {
			seenT[row.Op] = true
			tests = append(tests, row.Op)
		}
	}
	sort.Strings(variants)
	sort.Strings(tests)
	return
}

// profilePanel plots the per-size median of panel's metric for each
// variant. A panel with no data is an empty, titled plot.
func profilePanel(rows []*benchcsv.Row, panel Panel, variants []string) (*plot.Plot, error) {
	p := newPlot(panel.Title, "n", panel.YLabel)

	samples, err := benchstat.Extract(rows, panel.Metric, panel.Test)
	if err != nil {
		return nil, err
	}
	st := benchstat.NewStore(samples)

	var xs []float64
	for i, v := range variants {
		g, ok := st.Group(panel.Test, v)
		if !ok {
			continue
		}
		xy := PlotSeries(benchstat.Summarize(g))
		line, points, err := plotter.NewLinePoints(xys(xy.X, xy.Y))
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", panel.Test, panel.Metric, err)
		}
		line.Color, points.Color = pal[i%len(pal)], pal[i%len(pal)]
		line.Width = vg.Points(2)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(v, line, points)
		xs = append(xs, xy.X...)
	}
	if len(xs) > 0 && logAxis(&p.X, xs) {
		p.X.Tick.Marker = log2Ticks{}
	}
	p.Legend.Top = true
	return p, nil
}

// log2Ticks places ticks at powers of two, labeled with the exponent.
type log2Ticks struct{}

func (log2Ticks) Ticks(min, max float64) []plot.Tick {
	if !(min > 0) || max < min {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	lo, hi := int(math.Ceil(math.Log2(min))), int(math.Floor(math.Log2(max)))
	if lo > hi {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	// Keep at most about 8 labels.
	step := (hi-lo)/8 + 1
	var ticks []plot.Tick
	for e := lo; e <= hi; e++ {
		t := plot.Tick{Value: math.Ldexp(1, e)}
		if (e-lo)%step == 0 {
			t.Label = "2^" + strconv.Itoa(e)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// saveTiles lays plots out on a grid, aligning their axes, and writes
// the figure to cfg.Output.
func saveTiles(plots []*plot.Plot, cfg ProfileConfig) (err error) {
	cols := cfg.Cols
	if cols <= 0 {
		cols = 1
	}
	rows := (len(plots) + cols - 1) / cols
	grid := make([][]*plot.Plot, rows)
	for j := range grid {
		grid[j] = make([]*plot.Plot, cols)
		for i := range grid[j] {
			if k := j*cols + i; k < len(plots) {
				grid[j][i] = plots[k]
			}
		}
	}

	img := vgimg.NewWith(vgimg.UseWH(cfg.Width, cfg.Height), vgimg.UseDPI(cfg.DPI))
	dc := draw.New(img)

	if cfg.Title != "" {
		sty := plot.New().Title.TextStyle
		sty.Font.Size = vg.Points(16)
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YTop
		pad := vg.Points(6)
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - pad}, cfg.Title)
		dc = draw.Crop(dc, 0, 0, 0, -(sty.Height(cfg.Title) + 2*pad))
	}

	t := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(2), PadBottom: vg.Points(2),
		PadLeft: vg.Points(2), PadRight: vg.Points(2),
	}
	canvases := plot.Align(grid, t, dc)
	for j := range grid {
		for i, p := range grid[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	return nil
}
