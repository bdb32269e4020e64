// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command benchpair summarizes paired benchmark samples of a baseline
// and an optimized variant.
//
// With no subcommand, it reads bench.csv from the parent or current
// directory, prints a paired-speedup table for each timing operation,
// and writes timing, speedup, and peak-memory charts to ./plots.
//
// The input is CSV with a header naming at least the columns op,
// variant, n, and sample. Every other column is a metric, such as
// ns_per_op, mem_peak_bytes, or expected_node_bytes. Metric cells may
// be empty for operations that don't measure them.
//
// Settings may also come from a YAML file (benchpair.yaml in the
// current directory, or the file named by -config) and from
// BENCHPAIR_* environment variables, such as BENCHPAIR_OUT=charts.
// Flags take precedence over the environment, which takes precedence
// over the file.
//
// Subcommands:
//
//	filter   select rows by anchored regexps and write them as CSV
//	profile  render the allocator profile figure
package main

import (
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ostperf/benchpair/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
)

func main() {
	log.SetPrefix("")
	log.SetFlags(0)

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		log.Fatal(err)
	}
}

// app holds the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string

	stdin          io.Reader
	stdout, stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdin: stdin, stdout: stdout, stderr: stderr}
	def := report.DefaultConfig()

	root := &cobra.Command{
		Use:   "benchpair",
		Short: "Summarize paired benchmark samples",
		Long: `benchpair reads paired benchmark samples, prints a paired-speedup
table for each timing operation, and writes charts of timings,
speedups, and peak memory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Run(a.reportConfig())
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "read settings from YAML `file` (default ./benchpair.yaml)")
	pf.BoolP("verbose", "v", false, "log progress to stderr")

	f := root.Flags()
	f.StringSlice("input", def.Inputs, "candidate input `files`, in order of preference")
	f.String("out", def.OutDir, "write charts to `dir`")
	f.String("base", def.Base, "baseline variant `name`")
	f.String("opt", def.Opt, "optimized variant `name`")
	f.Int("dpi", def.DPI, "chart resolution in dots per inch")
	f.Float64("width", float64(def.Width/vg.Inch), "chart width in inches")
	f.Float64("height", float64(def.Height/vg.Inch), "chart height in inches")

	a.bind("verbose", pf.Lookup("verbose"))
	a.bind("inputs", f.Lookup("input"))
	for _, key := range []string{"out", "base", "opt", "dpi", "width", "height"} {
		a.bind(key, f.Lookup(key))
	}

	root.AddCommand(newFilterCmd(a), newProfileCmd(a))
	return root
}

func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// initConfig reads the config file, if any, and the environment.
func (a *app) initConfig() error {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("benchpair")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("BENCHPAIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func (a *app) logger() *slog.Logger {
	if !a.v.GetBool("verbose") {
		return nil
	}
	return slog.New(slog.NewTextHandler(a.stderr, nil))
}

// reportConfig returns the report configuration after applying flags,
// the environment, and the config file.
func (a *app) reportConfig() report.Config {
	v := a.v
	cfg := report.DefaultConfig()
	cfg.Inputs = v.GetStringSlice("inputs")
	cfg.OutDir = v.GetString("out")
	cfg.Base = v.GetString("base")
	cfg.Opt = v.GetString("opt")
	cfg.DPI = v.GetInt("dpi")
	cfg.Width = vg.Length(v.GetFloat64("width")) * vg.Inch
	cfg.Height = vg.Length(v.GetFloat64("height")) * vg.Inch
	cfg.Stdout = a.stdout
	cfg.Logger = a.logger()
	return cfg
}
