// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned by Locate when none of the candidate input
// paths exist.
var ErrNotFound = errors.New("input not found")

// Locate returns the first path in paths that names an existing
// regular file. If no path exists, the error wraps ErrNotFound and
// lists every path tried.
func Locate(paths []string) (string, error) {
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err == nil && fi.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(paths, ", "))
}

// Files reads rows from the first existing file among a list of
// fallback locations.
type Files struct {
	// Paths is the list of candidate file names, in order of
	// preference.
	Paths []string

	// Schema is the column layout of the file. If zero,
	// DefaultSchema is used.
	Schema Schema

	// path is the file that was actually opened.
	path string
}

// Path returns the file chosen by the last call to ReadAll.
func (f *Files) Path() string {
	return f.path
}

// ReadAll locates the input, reads every row from it, and closes it.
// It stops at the first malformed row and returns that row's
// *SyntaxError, so a caller never sees a partial result.
func (f *Files) ReadAll() ([]*Row, error) {
	path, err := Locate(f.Paths)
	if err != nil {
		return nil, err
	}
	f.path = path

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	schema := f.Schema
	if schema == (Schema{}) {
		schema = DefaultSchema
	}
	var reader Reader
	reader.Reset(file, path, schema)

	var rows []*Row
	for reader.Scan() {
		row, err := reader.Row()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row.Clone())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
