/*
 * commands.go, part of gdytac.
 *
 * Copyright 2024 The gdytac Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	chem "github.com/gdytac/gdytac"
	"github.com/gdytac/gdytac/batch"
	"github.com/gdytac/gdytac/castep"
	"github.com/gdytac/gdytac/msi"
	"github.com/gdytac/gdytac/substitute"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

// newRootCmd returns the gdytac command tree. Logs go to logw.
func newRootCmd(logw io.Writer) *cobra.Command {
	cfg := defaultConfig()
	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:   "gdytac",
		Short: "Build GDY tri-metal catalyst models and their CASTEP seed files",
		Long: `gdytac substitutes the three metal sites of a graphdiyne seed model
with transition metals and rare earths, and writes the CASTEP input files of
every resulting model under a root directory.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(logw, cfg.Verbose)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ElementTable, "table", cfg.ElementTable, "YAML element property table (env GDYTAC_ELEMENT_TABLE)")
	pf.StringVar(&cfg.Potentials, "potentials", cfg.Potentials, "directory with the pseudopotential files (env GDYTAC_POTENTIALS)")
	pf.StringVar(&cfg.Extension, "extension", cfg.Extension, "SMCastep_Extension.xms file to copy with each model (env GDYTAC_EXTENSION)")
	pf.StringVar(&cfg.Root, "root", cfg.Root, "output root directory (env GDYTAC_ROOT)")
	pf.StringVar(&cfg.ScriptFile, "script", cfg.ScriptFile, "YAML job script template (env GDYTAC_SCRIPT)")
	pf.IntVarP(&cfg.Workers, "workers", "j", 0, "concurrent models, 0 for one per CPU")
	pf.IntSliceVar(&cfg.Sites, "sites", cfg.Sites, "ids of the three substitutable atoms")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log every file written")

	generateCmd := &cobra.Command{
		Use:   "generate <seed.msi>",
		Short: "Substitute the sites of a seed model and export every variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), cfg, logger, args[0])
		},
	}
	generateCmd.Flags().StringVar(&cfg.Mode, "mode", cfg.Mode, "combinations or pairs")
	generateCmd.Flags().StringSliceVar(&cfg.Families, "families", nil, "candidate families: 3d, 4d, 5d, rare_earth (default all)")
	generateCmd.Flags().StringSliceVar(&cfg.Elements, "elements", nil, "candidate element symbols, overrides --families")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export every .msi model under the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportAll(cmd.Context(), cfg, logger)
		},
	}

	bundleCmd := &cobra.Command{
		Use:   "bundle",
		Short: "Pack every model directory under the root in a " + castep.BundleExt + " file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validateRoot(); err != nil {
				return err
			}
			written, err := castep.BundleAll(cfg.Root)
			if err != nil {
				return err
			}
			logger.Info("bundles written", "root", cfg.Root, "count", len(written))
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, exportCmd, bundleCmd)
	return rootCmd
}

func newRunner(cfg *Config, logger *slog.Logger) (*batch.Runner, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return &batch.Runner{Workers: cfg.Workers, Logger: logger, Metrics: batch.NewMetrics(reg)}, reg
}

func generate(ctx context.Context, cfg *Config, logger *slog.Logger, seedFile string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := substitute.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	candidates, err := cfg.Candidates()
	if err != nil {
		return err
	}
	seed, err := msi.ParseFile(seedFile, cfg.Sites...)
	if err != nil {
		return err
	}
	engine, err := substitute.NewEngine(seed, mode, candidates...)
	if err != nil {
		return err
	}
	exp, err := cfg.Exporter(logger)
	if err != nil {
		return err
	}
	logger.Info("generating models", "seed", seed.Name(), "mode", mode.String(), "candidates", len(candidates), "models", engine.Count())
	R, reg := newRunner(cfg, logger)
	rep := batch.Run(ctx, R, engine.Combos(), comboName, func(_ context.Context, c substitute.Combo) error {
		v, err := engine.Variant(c)
		if err != nil {
			return err
		}
		_, err = exp.Export(v.Lattice)
		return err
	})
	logTotals(logger, reg)
	return rep.Err()
}

func comboName(c substitute.Combo) string {
	parts := []string{chem.ModelPrefix}
	for _, e := range c {
		parts = append(parts, e.Symbol)
	}
	return strings.Join(parts, "_")
}

// findModels returns the .msi files under root.
func findModels(root string) ([]string, error) {
	var ret []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".msi" {
			ret = append(ret, path)
		}
		return nil
	})
	if err != nil {
		return nil, chem.WrapError(chem.IOError, root, err, "findModels")
	}
	return ret, nil
}

func exportAll(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.validateRoot(); err != nil {
		return err
	}
	files, err := findModels(cfg.Root)
	if err != nil {
		return err
	}
	exp, err := cfg.Exporter(logger)
	if err != nil {
		return err
	}
	logger.Info("exporting models", "root", cfg.Root, "models", len(files))
	R, reg := newRunner(cfg, logger)
	rep := batch.Run(ctx, R, files, filepath.Base, func(_ context.Context, path string) error {
		L, err := msi.ParseFile(path, cfg.Sites...)
		if err != nil {
			return err
		}
		_, err = exp.Export(L)
		return err
	})
	logTotals(logger, reg)
	return rep.Err()
}

// logTotals logs the value of every counter in reg, and the count of every
// histogram.
func logTotals(logger *slog.Logger, reg *prometheus.Registry) {
	mfs, err := reg.Gather()
	if err != nil {
		logger.Warn("gathering metrics", "err", err)
		return
	}
	attrs := make([]any, 0, 2*len(mfs))
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				attrs = append(attrs, mf.GetName(), m.GetCounter().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				attrs = append(attrs, mf.GetName()+"_count", h.GetSampleCount(), mf.GetName()+"_sum", h.GetSampleSum())
			}
		}
	}
	logger.Info("totals", attrs...)
}
