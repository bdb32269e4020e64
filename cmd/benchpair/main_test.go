// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ostperf/benchpair/benchcsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchCSV = `op,variant,n,sample,ns_per_op,mem_peak_bytes,expected_node_bytes
time_search_hit,base,16,0,10,,
time_search_hit,opt,16,0,5,,
time_search_hit,base,64,0,30,,
time_search_hit,opt,64,0,10,,
mem_insert_peak,base,16,0,,1000,640
`

// run executes the command line args with the given stdin and returns
// what it wrote to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestFilter(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bench.csv", benchCSV)

	test := func(want string, args ...string) {
		t.Helper()
		stdout, _, err := run(t, "", append([]string{"filter"}, args...)...)
		require.NoError(t, err)
		assert.Equal(t, want, stdout)
	}
	header := "op,variant,n,sample,ns_per_op,mem_peak_bytes,expected_node_bytes\n"

	test(header+
		"time_search_hit,opt,16,0,5,,\n"+
		"time_search_hit,opt,64,0,10,,\n",
		"--variant", "opt", path)
	test(header+
		"time_search_hit,base,16,0,10,,\n"+
		"time_search_hit,opt,16,0,5,,\n",
		"--op", "time_.*", "--match", "n=16", path)
	// Matching is anchored.
	test(header, "--op", "time", path)
	// A missing metric matches as "".
	test(header+
		"mem_insert_peak,base,16,0,,1000,640\n",
		"--match", "ns_per_op=", path)
}

func TestFilterStdin(t *testing.T) {
	stdout, stderr, err := run(t, "op,variant,n,sample,ns_per_op\nx,base,1,0,2\nx,opt,1,0,oops\nx,opt,2,0,1\n", "filter", "--variant", "opt")
	require.NoError(t, err)
	assert.Equal(t, "op,variant,n,sample,ns_per_op\nx,opt,2,0,1\n", stdout)
	assert.Equal(t, "<stdin>:3: parsing ns_per_op: \"oops\": invalid syntax\n", stderr)
}

func TestFilterProfile(t *testing.T) {
	stdout, _, err := run(t, "test,config,n,ops_per_sec\nsearch,freelist,8,100\nsearch,no_freelist,8,90\n",
		"filter", "--profile", "--variant", "freelist")
	require.NoError(t, err)
	assert.Equal(t, "test,config,n,ops_per_sec\nsearch,freelist,8,100\n", stdout)
}

func TestFilterErrors(t *testing.T) {
	_, _, err := run(t, "", "filter", "--match", "n")
	assert.ErrorContains(t, err, `bad match "n"`)

	_, _, err = run(t, "", "filter", "--op", "(")
	assert.Error(t, err)

	_, _, err = run(t, "", "filter", "--match", "=x")
	assert.ErrorContains(t, err, "key must not be empty")

	_, _, err = run(t, "", "filter", filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestReportConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "bench.csv", benchCSV)
	out := filepath.Join(dir, "charts")
	config := writeFile(t, dir, "benchpair.yaml", "inputs:\n  - "+input+"\nout: "+out+"\ndpi: 30\nwidth: 3\nheight: 2\n")

	stdout, _, err := run(t, "", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, stdout, "CSV: "+input+"\n")
	assert.Contains(t, stdout, "\n== speedup paired: time_search_hit ==\n")
	for _, name := range []string{"time_search_hit.png", "speedup_search_hit_paired.png", "memory_insert_peak.png"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err)
	}
}

func TestReportMissingConfigFile(t *testing.T) {
	_, _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReportEnv(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nowhere.csv")
	t.Setenv("BENCHPAIR_INPUTS", missing)
	t.Setenv("BENCHPAIR_OUT", filepath.Join(dir, "plots"))

	_, _, err := run(t, "")
	assert.True(t, errors.Is(err, benchcsv.ErrNotFound), "got %v", err)
	assert.ErrorContains(t, err, missing)
	_, err = os.Stat(filepath.Join(dir, "plots"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReportFlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BENCHPAIR_INPUTS", filepath.Join(dir, "nowhere.csv"))
	input := writeFile(t, dir, "bench.csv", benchCSV)

	stdout, _, err := run(t, "", "--input", input, "--out", filepath.Join(dir, "plots"), "--dpi", "30", "--width", "3", "--height", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CSV: "+input+"\n")
}

func TestProfileCmd(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "profile.csv", "test,config,n,ops_per_sec,alloc_calls,total_alloc_bytes,peak_bytes\n"+
		"insert_build,freelist,64,1000,64,4096,4096\n"+
		"insert_build,no_freelist,64,900,64,4096,4096\n")
	output := filepath.Join(dir, "all_plots.png")

	stdout, _, err := run(t, "", "profile", "--input", input, "--output", output, "--dpi", "20")
	require.NoError(t, err)
	assert.Equal(t, "configs: [freelist no_freelist]\ntests: [insert_build]\nWrote "+output+"\n", stdout)
	_, err = os.Stat(output)
	assert.NoError(t, err)
}
