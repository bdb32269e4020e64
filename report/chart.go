// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/ostperf/benchpair/benchstat"
	"github.com/ostperf/benchpair/benchunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Qualitative palette from Color Brewer.
var pal = mustPalette("Set1", 9)

func mustPalette(name string, n int) []color.Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, name, n)
	if err != nil {
		panic(err)
	}
	return p.Colors()
}

// withAlpha returns c with its opacity scaled to alpha.
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

// unitTicks labels the ticks chosen by Ticker with values scaled into
// a unit, such as "1.50µ" for 1500 ns/op.
type unitTicks struct {
	plot.Ticker
	factor float64
	class  benchunit.UnitClass
}

func metricTicks(t plot.Ticker, metric string) unitTicks {
	unit, factor := benchunit.MetricUnit(metric)
	return unitTicks{t, factor, benchunit.UnitClassOf(unit)}
}

func (t unitTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.Ticker.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = benchunit.Scale(ticks[i].Value*t.factor, t.class)
		}
	}
	return ticks
}

// positive reports whether every value is greater than zero, and so
// can be shown on a log axis.
func positive(vals ...[]float64) bool {
	for _, vs := range vals {
		for _, v := range vs {
			if !(v > 0) {
				return false
			}
		}
	}
	return true
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	grid.Horizontal.Dashes = grid.Vertical.Dashes
	p.Add(grid)
	return p
}

// logAxis puts axis a on a log scale if every value is positive, and
// reports whether it did. Non-positive data stays on a linear axis.
func logAxis(a *plot.Axis, vals ...[]float64) bool {
	if !positive(vals...) {
		return false
	}
	if a.Min == a.Max {
		// A single value would otherwise be padded to ±1,
		// which may cross zero.
		a.Min, a.Max = a.Min/2, a.Max*2
	}
	a.Scale = plot.LogScale{}
	a.Tick.Marker = plot.LogTicks{Prec: -1}
	return true
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts
}

// addBand adds xy's median line and its shaded interquartile band to
// p in color c.
func addBand(p *plot.Plot, xy XY, c color.Color, label string) error {
	// The band runs along the 25th percentiles and back along the
	// 75th.
	band := make(plotter.XYs, 0, 2*xy.Len())
	band = append(band, xys(xy.X, xy.Lo)...)
	for i := xy.Len() - 1; i >= 0; i-- {
		band = append(band, plotter.XY{X: xy.X[i], Y: xy.Hi[i]})
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return err
	}
	poly.Color = withAlpha(c, 0.2)
	poly.LineStyle.Width = 0

	line, points, err := plotter.NewLinePoints(xys(xy.X, xy.Y))
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	points.Color = c
	points.Shape = draw.CircleGlyph{}

	p.Add(poly, line, points)
	p.Legend.Add(label, line, points)
	return nil
}

// TimeChart plots the base and opt timing quartiles of t on log-log
// axes. Variants without samples are left out.
func TimeChart(t *Timing, cfg Config) (*plot.Plot, error) {
	unit, _ := benchunit.MetricUnit(cfg.TimeMetric)
	p := newPlot("Runtime: "+t.Op, "n", unit)

	var xs, ys []float64
	for i, v := range []struct {
		name   string
		series benchstat.Series
	}{{cfg.Base, t.Base}, {cfg.Opt, t.Opt}} {
		if len(v.series) == 0 {
			continue
		}
		xy := PlotSeries(v.series)
		if err := addBand(p, xy, pal[i], v.name+" (median)"); err != nil {
			return nil, err
		}
		ys = append(append(append(ys, xy.Y...), xy.Lo...), xy.Hi...)
		xs = append(xs, xy.X...)
	}
	if len(xs) == 0 {
		return p, nil
	}
	logAxis(&p.X, xs)
	if logAxis(&p.Y, ys) {
		p.Y.Tick.Marker = metricTicks(plot.LogTicks{Prec: -1}, cfg.TimeMetric)
	} else {
		p.Y.Tick.Marker = metricTicks(plot.DefaultTicks{}, cfg.TimeMetric)
	}
	p.Legend.Top = true
	return p, nil
}

// SpeedupChart plots the paired speedup quartiles of t with a log size
// axis. It returns false if there is no speedup to plot.
func SpeedupChart(t *Timing, cfg Config) (*plot.Plot, bool, error) {
	if len(t.Speedup) == 0 {
		return nil, false, nil
	}
	p := newPlot("Speedup (paired): "+t.Op, "n", fmt.Sprintf("Speedup (%s/%s)", cfg.Base, cfg.Opt))
	xy := PlotSeries(t.Speedup)
	if err := addBand(p, xy, pal[2], "paired median"); err != nil {
		return nil, false, err
	}
	logAxis(&p.X, xy.X)
	p.Legend.Top = true
	return p, true, nil
}

// segments splits the populated cells of a column into runs of
// consecutive sizes, so gaps show as breaks in the line.
func segments(sizes []int, col []benchstat.Cell) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, c := range col {
		if !c.OK {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(sizes[i]), Y: c.Value})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// MemoryChart plots the base peak, opt peak, and expected bytes of an
// aligned memory table on log-log axes. It returns false if the table
// is empty.
func MemoryChart(a *benchstat.Aligned, cfg Config) (*plot.Plot, bool, error) {
	if len(a.Sizes) == 0 {
		return nil, false, nil
	}
	p := newPlot("Memory: peak during insert (O(n) check)", "n", "Bytes")

	labels := []string{cfg.Base + " peak", cfg.Opt + " peak", "expected n*sizeof(Node)"}
	var xs, ys []float64
	for j, label := range labels {
		segs := segments(a.Sizes, a.Column(j))
		for k, seg := range segs {
			line, points, err := plotter.NewLinePoints(seg)
			if err != nil {
				return nil, false, err
			}
			line.Color, points.Color = pal[j], pal[j]
			points.Shape = draw.CircleGlyph{}
			if j == 2 {
				// The expected cost is a reference line.
				line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
				points.Radius = 0
			}
			p.Add(line, points)
			if k == 0 {
				p.Legend.Add(label, line)
			}
			for _, pt := range seg {
				xs = append(xs, pt.X)
				ys = append(ys, pt.Y)
			}
		}
	}
	logAxis(&p.X, xs)
	if logAxis(&p.Y, ys) {
		p.Y.Tick.Marker = metricTicks(plot.LogTicks{Prec: -1}, cfg.PeakMetric)
	} else {
		p.Y.Tick.Marker = metricTicks(plot.DefaultTicks{}, cfg.PeakMetric)
	}
	p.Legend.Top = true
	return p, true, nil
}

// savePNG renders p at the given size and resolution and writes it to
// path. The file is closed on every path, and a failed close is
// reported.
func savePNG(p *plot.Plot, w, h vg.Length, dpi int, path string) (err error) {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) save(p *plot.Plot, name string) error {
	path := filepath.Join(cfg.OutDir, name)
	if err := savePNG(p, cfg.Width, cfg.Height, cfg.DPI, path); err != nil {
		return err
	}
	cfg.logger().Info("wrote chart", "path", path)
	return nil
}
