// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/ostperf/benchpair/report"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	def := report.DefaultProfileConfig()
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Render the allocator profile figure",
		Long: `profile reads profile.csv from the parent or current directory,
with columns test, config, n, and one column per metric, and renders
the speed and allocator panels of every configuration into a single
tiled figure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.RunProfile(a.profileConfig())
		},
	}
	f := cmd.Flags()
	f.StringSlice("input", def.Inputs, "candidate input `files`, in order of preference")
	f.String("output", def.Output, "write the figure to `file`")
	f.StringSlice("config-names", def.Variants, "configurations to plot, one line each")
	f.Int("dpi", def.DPI, "figure resolution in dots per inch")

	a.bind("profile.inputs", f.Lookup("input"))
	a.bind("profile.output", f.Lookup("output"))
	a.bind("profile.variants", f.Lookup("config-names"))
	a.bind("profile.dpi", f.Lookup("dpi"))
	return cmd
}

func (a *app) profileConfig() report.ProfileConfig {
	v := a.v
	cfg := report.DefaultProfileConfig()
	cfg.Inputs = v.GetStringSlice("profile.inputs")
	cfg.Output = v.GetString("profile.output")
	cfg.Variants = v.GetStringSlice("profile.variants")
	cfg.DPI = v.GetInt("profile.dpi")
	cfg.Stdout = a.stdout
	cfg.Logger = a.logger()
	return cfg
}
