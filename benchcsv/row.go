// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads and writes per-sample benchmark measurements
// stored as delimited text with a header row.
//
// Each data row describes one measurement run: the operation being
// benchmarked, the implementation variant, the input size, the sample
// index that identifies the run across variants, and any number of
// metric columns. The key columns are converted into typed fields at
// the ingestion boundary; metric columns become Values.
//
// Like the Go benchmark format reader it is modeled on, the Reader is
// a streaming API in the style of bufio.Scanner.
package benchcsv

import "strconv"

// Row is a single benchmark sample and all of its measurements.
type Row struct {
	// Op is the operation name.
	Op string

	// Variant is the implementation configuration this sample
	// was measured with, such as "base" or "opt".
	Variant string

	// N is the input size.
	N int

	// Sample identifies one measurement run. The same sample
	// index is repeated across variants so runs can be paired.
	Sample int

	// Values is this row's measurements, in column order. Metric
	// columns with an empty cell are omitted.
	Values []Value

	// Line is the line number of this row in its input, or 0 if
	// the row was not read from a file.
	Line int
}

// Value is a single measurement from a metric column.
type Value struct {
	Metric string
	Value  float64
}

// Clone makes a copy of Row that shares no state with r.
func (r *Row) Clone() *Row {
	r2 := *r
	r2.Values = append([]Value(nil), r.Values...)
	return &r2
}

// Value returns the measurement for the given metric column.
func (r *Row) Value(metric string) (float64, bool) {
	for _, v := range r.Values {
		if v.Metric == metric {
			return v.Value, true
		}
	}
	return 0, false
}

// Schema names the key columns of an input file. Every column not
// named by the Schema is a metric column.
type Schema struct {
	Op, Variant, N, Sample string
}

// DefaultSchema is the column layout written by the benchmark
// harness: "op,variant,n,sample" followed by metric columns.
var DefaultSchema = Schema{Op: "op", Variant: "variant", N: "n", Sample: "sample"}

// ProfileSchema is the column layout of allocator profile runs, which
// name the operation "test" and the variant "config" and carry no
// sample index.
var ProfileSchema = Schema{Op: "test", Variant: "config", N: "n"}

// keys returns the key column names of s, omitting unset columns.
func (s Schema) keys() []string {
	keys := []string{s.Op, s.Variant, s.N}
	if s.Sample != "" {
		keys = append(keys, s.Sample)
	}
	return keys
}

// isKey reports whether column is one of the key columns of s.
func (s Schema) isKey(column string) bool {
	for _, k := range s.keys() {
		if k == column {
			return true
		}
	}
	return false
}

// field returns the string form of column in r.
func (s Schema) field(r *Row, column string) (string, bool) {
	switch column {
	case s.Op:
		return r.Op, true
	case s.Variant:
		return r.Variant, true
	case s.N:
		return strconv.Itoa(r.N), true
	}
	if s.Sample != "" && column == s.Sample {
		return strconv.Itoa(r.Sample), true
	}
	if v, ok := r.Value(column); ok {
		return strconv.FormatFloat(v, 'g', -1, 64), true
	}
	return "", false
}
