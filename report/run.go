// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Run produces the full report described by cfg: it prints the input
// path, the operations found, and a paired-speedup table for each
// timing operation, then writes every chart to cfg.OutDir.
//
// Input is read and summarized before anything is printed or written,
// so a missing or malformed input leaves no partial output.
func Run(cfg Config) error {
	a, err := Analyze(cfg)
	if err != nil {
		return err
	}
	log := cfg.logger()

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	out := cfg.stdout()
	fmt.Fprintf(out, "CSV: %s\n", a.Path)
	fmt.Fprintf(out, "ops: %v\n", a.Ops)

	for _, to := range cfg.TimeOps {
		t, ok := a.Timing(to.Op)
		if !ok {
			log.Info("skipping operation", "op", to.Op, "reason", "no samples")
			continue
		}
		if err := PrintTable(out, to.Op, t.Speedup); err != nil {
			return err
		}
	}

	for _, to := range cfg.TimeOps {
		t, ok := a.Timing(to.Op)
		if !ok {
			continue
		}
		p, err := TimeChart(t, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", to.Op, err)
		}
		if err := cfg.save(p, to.TimeChart); err != nil {
			return err
		}

		p, ok, err = SpeedupChart(t, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", to.Op, err)
		}
		if !ok {
			log.Info("no paired samples", "op", to.Op)
			continue
		}
		if err := cfg.save(p, to.SpeedupChart); err != nil {
			return err
		}
	}

	if mem, ok := a.Memory(); ok {
		p, ok, err := MemoryChart(mem, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.MemoryOp, err)
		}
		if ok {
			if err := cfg.save(p, cfg.MemoryChart); err != nil {
				return err
			}
		}
	}

	dir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		dir = cfg.OutDir
	}
	fmt.Fprintf(out, "\nWrote plots to: %s\n", dir)
	return nil
}
