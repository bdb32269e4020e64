// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostperf/benchpair/benchcsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

const profileCSV = `test,config,n,ops_per_sec,alloc_calls,total_alloc_bytes,peak_bytes
insert_build,freelist,64,1000,64,4096,4096
insert_build,no_freelist,64,900,64,4096,4096
insert_build,freelist,1024,800,1024,65536,65536
insert_build,no_freelist,1024,700,1024,65536,65536
churn_delete_insert,freelist,64,2000,0,0,4096
churn_delete_insert,no_freelist,64,1500,128,8192,4096
search,freelist,64,5000,0,0,0
`

func testProfileConfig(t *testing.T, input string) (ProfileConfig, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.csv")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	var stdout bytes.Buffer
	cfg := DefaultProfileConfig()
	cfg.Inputs = []string{path}
	cfg.Output = filepath.Join(dir, "all_plots.png")
	cfg.Width, cfg.Height, cfg.DPI = 6*vg.Inch, 4*vg.Inch, 40
	cfg.Stdout = &stdout
	return cfg, &stdout
}

func TestDefaultProfileConfig(t *testing.T) {
	cfg := DefaultProfileConfig()
	require.Len(t, cfg.Panels, 9)
	assert.Equal(t, Panel{"insert_build", "ops_per_sec", "insert_build ops/s", "ops/s"}, cfg.Panels[0])
	assert.Equal(t, Panel{"churn_delete_insert", "ops_per_sec", "churn_delete_insert ops/s", "ops/s"}, cfg.Panels[5])
	assert.Equal(t, Panel{"insert_build", "peak_bytes", "insert_build: peak_bytes", "bytes"}, cfg.Panels[8])
	assert.Equal(t, 3, cfg.Cols)
}

func TestRunProfile(t *testing.T) {
	cfg, stdout := testProfileConfig(t, profileCSV)
	require.NoError(t, RunProfile(cfg))

	want := "configs: [freelist no_freelist]\n" +
		"tests: [churn_delete_insert insert_build search]\n" +
		"Wrote " + cfg.Output + "\n"
	assert.Equal(t, want, stdout.String())

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestRunProfileMissingMetric(t *testing.T) {
	cfg, stdout := testProfileConfig(t, "test,config,n,ops_per_sec\ninsert_build,freelist,64,\n")
	err := RunProfile(cfg)
	assert.Error(t, err)
	assert.Empty(t, stdout.String())
	_, err = os.Stat(cfg.Output)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProfilePanel(t *testing.T) {
	var r benchcsv.Reader
	r.Reset(bytes.NewReader([]byte(profileCSV)), "profile.csv", benchcsv.ProfileSchema)
	var rows []*benchcsv.Row
	for r.Scan() {
		row, err := r.Row()
		require.NoError(t, err)
		rows = append(rows, row.Clone())
	}
	require.NoError(t, r.Err())

	p, err := profilePanel(rows, Panel{"insert_build", "ops_per_sec", "insert_build ops/s", "ops/s"}, []string{"freelist", "no_freelist"})
	require.NoError(t, err)
	assert.Equal(t, "insert_build ops/s", p.Title.Text)
	assert.Equal(t, log2Ticks{}, p.X.Tick.Marker)

	// No data is an empty plot, not an error.
	p, err = profilePanel(rows, Panel{"select", "ops_per_sec", "select ops/s", "ops/s"}, []string{"freelist"})
	require.NoError(t, err)
	assert.Equal(t, "select ops/s", p.Title.Text)
}

func TestLog2Ticks(t *testing.T) {
	var labels []string
	for _, tick := range (log2Ticks{}).Ticks(16, 1024) {
		labels = append(labels, tick.Label)
	}
	assert.Equal(t, []string{"2^4", "2^5", "2^6", "2^7", "2^8", "2^9", "2^10"}, labels)

	ticks := (log2Ticks{}).Ticks(1, 1<<20)
	assert.Len(t, ticks, 21)
	assert.Equal(t, "2^0", ticks[0].Label)
	assert.Equal(t, "", ticks[1].Label)
	assert.Equal(t, float64(1<<20), ticks[20].Value)
}
