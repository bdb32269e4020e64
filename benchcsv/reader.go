// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader reads benchmark samples from delimited text.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Row it returns; a caller should Clone anything it needs to
// retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	csv      *csv.Reader
	fileName string
	schema   Schema
	err      error // current I/O or header error

	// header is the header row of the current input, or nil if
	// it has not been read yet.
	header []string
	// roles maps each column index to its role.
	roles []role

	row    Row
	rowErr error
}

type role int

const (
	roleMetric role = iota
	roleOp
	roleVariant
	roleN
	roleSample
)

// SyntaxError represents a malformed field or header on a particular
// line of an input file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noRow = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader to parse rows laid out according to
// DefaultSchema from r. fileName is used in error messages; it is
// purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, DefaultSchema)
	return reader
}

// Reset resets the reader to begin reading from a new input with the
// given column layout.
func (r *Reader) Reset(ior io.Reader, fileName string, schema Schema) {
	r.csv = csv.NewReader(ior)
	r.csv.ReuseRecord = true
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.schema = schema
	r.err = nil
	r.header = nil
	r.roles = r.roles[:0]
	r.rowErr = noRow

	r.row = Row{Values: r.row.Values[:0]}
}

// Header returns the column names of the current input. It is nil
// until the first call to Scan.
func (r *Reader) Header() []string {
	return r.header
}

// Scan advances the reader to the next row and returns true if a row
// was read. The caller should use the Row method to get the row. If
// an I/O error occurs, the header is unusable, or this reaches the
// end of the input, it returns false and the caller should use the
// Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	if r.header == nil {
		if !r.readHeader() {
			return false
		}
	}

	record, err := r.csv.Read()
	if err == io.EOF {
		return false
	} else if err != nil {
		r.err = fmt.Errorf("%s: %w", r.fileName, err)
		return false
	}
	line, _ := r.csv.FieldPos(0)
	r.rowErr = r.parseRecord(record, line)
	return true
}

func (r *Reader) readHeader() bool {
	record, err := r.csv.Read()
	if err == io.EOF {
		// An empty input has no rows.
		return false
	} else if err != nil {
		r.err = fmt.Errorf("%s: %w", r.fileName, err)
		return false
	}
	r.header = make([]string, len(record))
	have := make(map[string]bool)
	for i, col := range record {
		col = strings.TrimSpace(col)
		r.header[i] = col
		have[col] = true
		switch col {
		case r.schema.Op:
			r.roles = append(r.roles, roleOp)
		case r.schema.Variant:
			r.roles = append(r.roles, roleVariant)
		case r.schema.N:
			r.roles = append(r.roles, roleN)
		default:
			if r.schema.Sample != "" && col == r.schema.Sample {
				r.roles = append(r.roles, roleSample)
			} else {
				r.roles = append(r.roles, roleMetric)
			}
		}
	}
	for _, key := range r.schema.keys() {
		if !have[key] {
			r.err = &SyntaxError{r.fileName, 1, fmt.Sprintf("missing column %q", key)}
			return false
		}
	}
	return true
}

// parseRecord converts record into r.row. Every key column must parse;
// metric cells may be empty.
func (r *Reader) parseRecord(record []string, line int) error {
	r.row.Op, r.row.Variant = "", ""
	r.row.N, r.row.Sample = 0, 0
	r.row.Values = r.row.Values[:0]
	r.row.Line = line

	for i, field := range record {
		field = strings.TrimSpace(field)
		switch r.roles[i] {
		case roleOp:
			r.row.Op = field
		case roleVariant:
			r.row.Variant = field
		case roleN, roleSample:
			v, err := strconv.Atoi(field)
			if err != nil {
				return &SyntaxError{r.fileName, line, fmt.Sprintf("parsing %s: %s", r.header[i], numErr(err))}
			}
			if r.roles[i] == roleN {
				r.row.N = v
			} else {
				r.row.Sample = v
			}
		case roleMetric:
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return &SyntaxError{r.fileName, line, fmt.Sprintf("parsing %s: %s", r.header[i], numErr(err))}
			}
			r.row.Values = append(r.row.Values, Value{r.header[i], v})
		}
	}
	return nil
}

func numErr(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return fmt.Errorf("%q: %w", ne.Num, ne.Err)
	}
	return err
}

// Row returns the last row read, or an error if the row was
// malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Row object, as it will be
// overwritten by the next call to Scan.
func (r *Reader) Row() (*Row, error) {
	if r.rowErr != nil {
		return nil, r.rowErr
	}
	return &r.row, nil
}

// Err returns the first non-EOF I/O or header error that was
// encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}
