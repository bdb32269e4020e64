// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import "fmt"

// An Extractor returns some field of a benchmark row.
type Extractor func(*Row) string

// NewExtractor returns a function that extracts column key from rows
// laid out according to schema.
//
// The key may name a key column of the schema or a metric column.
// Integer key columns are formatted in decimal; metric values use the
// shortest representation that round-trips. A metric the row does not
// have extracts as "".
func NewExtractor(schema Schema, key string) (Extractor, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("key must not be empty")
	}

	switch key {
	case schema.Op:
		return func(r *Row) string { return r.Op }, nil
	case schema.Variant:
		return func(r *Row) string { return r.Variant }, nil
	}

	return func(r *Row) string {
		val, _ := schema.field(r, key)
		return val
	}, nil
}
