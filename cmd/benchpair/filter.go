// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ostperf/benchpair/benchcsv"
	"github.com/spf13/cobra"
)

const filterLong = `filter reads benchmark rows from input files, keeps the rows
that match every condition, and writes them as CSV to stdout. If no
inputs are provided, it reads from stdin.

Conditions are given as flags:

	--op regexp          - Test if the operation matches regexp
	--variant regexp     - Test if the variant matches regexp
	--match key=regexp   - Test if column key matches regexp

The key of --match may name any key or metric column, such as n or
ns_per_op. A metric missing from a row matches as "". Regexp matching
is anchored at the beginning and end, so a literal string without any
regexp operators must match exactly.

For example,

	benchpair filter --op 'time_.*' --match n='1024|4096' bench.csv

keeps the timing rows of sizes 1024 and 4096.

The output header is the header of the first input. Malformed rows
are reported to stderr and skipped.`

type filterFlags struct {
	op, variant string
	match       []string
	profile     bool
}

func newFilterCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "filter [flags] [inputs...]",
		Short: "Select benchmark rows and write them as CSV",
		Long:  filterLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := benchcsv.DefaultSchema
			if ff.profile {
				schema = benchcsv.ProfileSchema
			}
			f, err := newFilter(schema, ff)
			if err != nil {
				return err
			}
			return a.filter(f, schema, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&ff.op, "op", "", "keep rows whose operation matches `regexp`")
	fl.StringVar(&ff.variant, "variant", "", "keep rows whose variant matches `regexp`")
	fl.StringArrayVar(&ff.match, "match", nil, "keep rows whose column matches, as `key=regexp`")
	fl.BoolVar(&ff.profile, "profile", false, "read profile inputs (test, config, n)")
	return cmd
}

// A filter is a conjunction of anchored regexp matches on row fields.
type filter struct {
	terms []term
}

type term struct {
	ext benchcsv.Extractor
	re  *regexp.Regexp
}

func newFilter(schema benchcsv.Schema, ff filterFlags) (*filter, error) {
	f := new(filter)
	add := func(key, expr string) error {
		ext, err := benchcsv.NewExtractor(schema, key)
		if err != nil {
			return err
		}
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		f.terms = append(f.terms, term{ext, re})
		return nil
	}

	if ff.op != "" {
		if err := add(schema.Op, ff.op); err != nil {
			return nil, err
		}
	}
	if ff.variant != "" {
		if err := add(schema.Variant, ff.variant); err != nil {
			return nil, err
		}
	}
	for _, m := range ff.match {
		key, expr, ok := strings.Cut(m, "=")
		if !ok {
			return nil, fmt.Errorf("bad match %q: want key=regexp", m)
		}
		if err := add(key, expr); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Match reports whether row satisfies every term of f.
func (f *filter) Match(row *benchcsv.Row) bool {
	for _, t := range f.terms {
		if !t.re.MatchString(t.ext(row)) {
			return false
		}
	}
	return true
}

func (a *app) filter(f *filter, schema benchcsv.Schema, paths []string) error {
	var reader benchcsv.Reader
	var writer *benchcsv.Writer
	files := fileArgs{paths: paths, stdin: a.stdin}
	defer files.close()
	for {
		r, name, err := files.next()
		if err != nil {
			return err
		}
		if r == nil {
			break
		}

		reader.Reset(r, name, schema)
		for reader.Scan() {
			if writer == nil {
				writer = benchcsv.NewWriter(a.stdout, schema, reader.Header())
			}
			row, err := reader.Row()
			if err != nil {
				// Non-fatal row parse error. Warn but keep
				// going.
				fmt.Fprintln(a.stderr, err)
				continue
			}
			if !f.Match(row) {
				continue
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if err := reader.Err(); err != nil {
			return err
		}
	}
	return files.close()
}

// fileArgs opens each named input in turn, or stdin if there are none.
type fileArgs struct {
	paths []string
	stdin io.Reader

	i int
	f *os.File
}

func (fa *fileArgs) next() (io.Reader, string, error) {
	if err := fa.close(); err != nil {
		return nil, "", err
	}

	if fa.i >= len(fa.paths) {
		if fa.i == 0 {
			fa.i++
			return fa.stdin, "<stdin>", nil
		}
		return nil, "", nil
	}

	f, err := os.Open(fa.paths[fa.i])
	if err != nil {
		return nil, "", err
	}
	fa.i++
	fa.f = f
	return f, f.Name(), nil
}

func (fa *fileArgs) close() error {
	if fa.f == nil {
		return nil
	}
	err := fa.f.Close()
	fa.f = nil
	return err
}
