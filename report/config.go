// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns benchmark samples into speedup tables and
// charts.
//
// Run reads one input file, summarizes the timing operations and the
// memory operation it knows about, prints a paired-speedup table for
// each timing operation, and renders PNG charts into an output
// directory. Everything it needs is passed in a Config, so runs with
// different inputs and outputs are independent.
package report

import (
	"io"
	"log/slog"
	"os"

	"gonum.org/v1/plot/vg"
)

// A TimeOp is a timing operation to report and the names of its
// charts.
type TimeOp struct {
	Op string

	// TimeChart is the file name of the chart of base and opt
	// timings.
	TimeChart string

	// SpeedupChart is the file name of the paired speedup chart.
	SpeedupChart string
}

// Config configures a report run.
type Config struct {
	// Inputs lists candidate input files in order of preference.
	// The first that exists is read.
	Inputs []string

	// OutDir is the directory charts are written to. It is
	// created if necessary.
	OutDir string

	// TimeOps are the timing operations to report, in table
	// order. Operations absent from the input are skipped.
	TimeOps []TimeOp

	// TimeMetric is the metric column of timing operations.
	TimeMetric string

	// MemoryOp is the operation whose peak memory is charted, and
	// MemoryChart the chart's file name.
	MemoryOp    string
	MemoryChart string

	// PeakMetric and ExpectedMetric are the metric columns of the
	// measured peak and the theoretical byte cost of MemoryOp.
	PeakMetric     string
	ExpectedMetric string

	// Base and Opt are the variants being compared.
	Base, Opt string

	// Width, Height, and DPI set the size of each chart.
	Width, Height vg.Length
	DPI           int

	// Stdout receives the tables. If nil, os.Stdout.
	Stdout io.Writer

	// Logger receives progress messages. If nil, they are
	// discarded.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration for the benchmark harness's
// standard operations, reading "bench.csv" from the parent or current
// directory and writing charts to "plots".
func DefaultConfig() Config {
	return Config{
		Inputs: []string{"../bench.csv", "bench.csv"},
		OutDir: "plots",
		TimeOps: []TimeOp{
			{"time_search_hit", "time_search_hit.png", "speedup_search_hit_paired.png"},
			{"time_predecessor", "time_predecessor.png", "speedup_predecessor_paired.png"},
			{"time_cycles_insert_delete", "time_cycles_insert_delete.png", "speedup_cycles_paired.png"},
		},
		TimeMetric:     "ns_per_op",
		MemoryOp:       "mem_insert_peak",
		MemoryChart:    "memory_insert_peak.png",
		PeakMetric:     "mem_peak_bytes",
		ExpectedMetric: "expected_node_bytes",
		Base:           "base",
		Opt:            "opt",
		Width:          6 * vg.Inch,
		Height:         4 * vg.Inch,
		DPI:            200,
	}
}

func (cfg *Config) stdout() io.Writer {
	if cfg.Stdout == nil {
		return os.Stdout
	}
	return cfg.Stdout
}

func (cfg *Config) logger() *slog.Logger {
	return orDiscard(cfg.Logger)
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
