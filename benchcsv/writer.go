// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"io"
)

// A Writer writes benchmark samples as delimited text with a header
// row.
type Writer struct {
	w      *csv.Writer
	schema Schema

	header []string
	first  bool
	record []string
}

// NewWriter returns a writer that writes rows to w using the given
// column order. If header is nil, the header is taken from the key
// columns of schema followed by the metric columns of the first row
// written.
func NewWriter(w io.Writer, schema Schema, header []string) *Writer {
	return &Writer{
		w:      csv.NewWriter(w),
		schema: schema,
		header: append([]string(nil), header...),
		first:  true,
	}
}

// Write writes row to w, preceded by the header row if this is the
// first row. Metric columns that row does not have are left empty.
func (w *Writer) Write(row *Row) error {
	if w.first {
		if len(w.header) == 0 {
			w.header = append(w.header, w.schema.keys()...)
			for _, v := range row.Values {
				if !w.schema.isKey(v.Metric) {
					w.header = append(w.header, v.Metric)
				}
			}
		}
		if err := w.w.Write(w.header); err != nil {
			return err
		}
		w.first = false
	}

	w.record = w.record[:0]
	for _, col := range w.header {
		val, _ := w.schema.field(row, col)
		w.record = append(w.record, val)
	}
	if err := w.w.Write(w.record); err != nil {
		return err
	}

	// Flush each row out to the io.Writer so errors surface at
	// the row that caused them.
	w.w.Flush()
	return w.w.Error()
}
