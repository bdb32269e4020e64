// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"
	"sort"

	"github.com/ostperf/benchpair/benchcsv"
	"github.com/ostperf/benchpair/benchstat"
)

// Timing is the summary of one timing operation.
type Timing struct {
	Op string

	// Base and Opt are the quartiles of each variant by size.
	// Either is nil if the input has no samples of that variant.
	Base, Opt benchstat.Series

	// Speedup is the paired speedup of Base over Opt.
	Speedup benchstat.Series
}

// Analysis is everything a report shows, computed from one input.
type Analysis struct {
	// Path is the input file that was read.
	Path string

	// Ops is the distinct operations in the input, sorted.
	Ops []string

	timing map[string]*Timing
	memory *benchstat.Aligned
}

// Timing returns the summary of op, or false if op is not one of the
// configured timing operations or the input has no samples of it.
func (a *Analysis) Timing(op string) (*Timing, bool) {
	t, ok := a.timing[op]
	return t, ok
}

// Memory returns the peak memory table, aligned on size, with columns
// for the base peak, the opt peak, and the expected bytes. It returns
// false if the input has no samples of the memory operation.
func (a *Analysis) Memory() (*benchstat.Aligned, bool) {
	return a.memory, a.memory != nil
}

// Analyze reads the input named by cfg and computes every summary the
// report needs. It fails if the input can't be found, a row is
// malformed, or a reported operation is missing a metric.
func Analyze(cfg Config) (*Analysis, error) {
	files := benchcsv.Files{Paths: cfg.Inputs}
	rows, err := files.ReadAll()
	if err != nil {
		return nil, err
	}
	return analyzeRows(cfg, files.Path(), rows)
}

func analyzeRows(cfg Config, path string, rows []*benchcsv.Row) (*Analysis, error) {
	a := &Analysis{Path: path, timing: make(map[string]*Timing)}

	present := make(map[string]bool)
	for _, row := range rows {
		if !present[row.Op] {
			present[row.Op] = true
			a.Ops = append(a.Ops, row.Op)
		}
	}
	sort.Strings(a.Ops)

	for _, to := range cfg.TimeOps {
		if !present[to.Op] {
			continue
		}
		samples, err := benchstat.Extract(rows, cfg.TimeMetric, to.Op)
		if err != nil {
			return nil, err
		}
		st := benchstat.NewStore(samples)
		t := &Timing{Op: to.Op}
		if g, ok := st.Group(to.Op, cfg.Base); ok {
			t.Base = benchstat.Summarize(g)
		}
		if g, ok := st.Group(to.Op, cfg.Opt); ok {
			t.Opt = benchstat.Summarize(g)
		}
		t.Speedup = benchstat.PairedSpeedup(st.Pairs(), to.Op, benchstat.SpeedupOptions{Base: cfg.Base, Opt: cfg.Opt})
		a.timing[to.Op] = t
	}

	if cfg.MemoryOp != "" && present[cfg.MemoryOp] {
		peak, err := benchstat.Extract(rows, cfg.PeakMetric, cfg.MemoryOp)
		if err != nil {
			return nil, err
		}
		expected, err := benchstat.Extract(rows, cfg.ExpectedMetric, cfg.MemoryOp)
		if err != nil {
			return nil, err
		}
		a.memory = MemorySeries(peak, expected, cfg.Base, cfg.Opt)
	}
	return a, nil
}

// MemorySeries aligns the peak memory of the base and opt variants
// with the expected bytes on the union of their sizes. Expected bytes
// are taken from base samples. Byte counts are truncated to integers,
// and if a size has several samples of a variant the last one wins.
func MemorySeries(peak, expected []benchstat.Sample, base, opt string) *benchstat.Aligned {
	basePeak := lastByN(peak, base)
	optPeak := lastByN(peak, opt)
	exp := lastByN(expected, base)
	return benchstat.Merge(basePeak, optPeak, exp)
}

func lastByN(samples []benchstat.Sample, variant string) map[int]float64 {
	out := make(map[int]float64)
	for _, s := range samples {
		if s.Variant == variant {
			out[s.N] = math.Trunc(s.Value)
		}
	}
	return out
}
