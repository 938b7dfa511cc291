/*
 * config.go, part of gdytac.
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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gdytac/gdytac/castep"
	"github.com/gdytac/gdytac/elements"
	"github.com/gdytac/gdytac/msi"
	"github.com/gdytac/gdytac/substitute"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config holds the settings shared by all the commands. The defaults come
// from the environment (and an optional .env file); flags override them.
type Config struct {
	ElementTable string   `validate:"required,file"`
	Potentials   string   `validate:"required,dir"`
	Extension    string   `validate:"omitempty,file"`
	Root         string   `validate:"required"`
	ScriptFile   string   `validate:"omitempty,file"`
	Workers      int      `validate:"gte=0"`
	Mode         string   `validate:"oneof=combinations pairs"`
	Sites        []int    `validate:"len=3,dive,gt=0"`
	Families     []string `validate:"dive,oneof=3d 4d 5d rare_earth"`
	Elements     []string
	Verbose      bool
}

// loadEnv reads .env, if present, into the environment. Variables already
// set are not overridden.
func loadEnv() {
	_ = godotenv.Load()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// defaultConfig returns the configuration given by the environment.
func defaultConfig() *Config {
	return &Config{
		ElementTable: getenv("GDYTAC_ELEMENT_TABLE", "element_info.yaml"),
		Potentials:   getenv("GDYTAC_POTENTIALS", "potentials"),
		Extension:    getenv("GDYTAC_EXTENSION", ""),
		Root:         getenv("GDYTAC_ROOT", "."),
		ScriptFile:   getenv("GDYTAC_SCRIPT", ""),
		Mode:         substitute.ModeCombinations.String(),
		Sites:        append([]int(nil), msi.DefaultSites...),
	}
}

// Validate checks the whole configuration, as needed to export models.
func (C *Config) Validate() error {
	if err := validate.Struct(C); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validateRoot checks only the output root, which must exist.
func (C *Config) validateRoot() error {
	if err := validate.Var(C.Root, "required,dir"); err != nil {
		return fmt.Errorf("invalid root %q: %w", C.Root, err)
	}
	return nil
}

// Candidates returns the elements to put in the sites: the ones named in
// C.Elements if any, otherwise the members of C.Families (all the families
// if none is given).
func (C *Config) Candidates() ([]elements.Element, error) {
	if len(C.Elements) > 0 {
		ret := make([]elements.Element, 0, len(C.Elements))
		for _, s := range C.Elements {
			s = strings.TrimSpace(s)
			z, ok := elements.Number(s)
			if !ok {
				return nil, fmt.Errorf("unknown element %q", s)
			}
			ret = append(ret, elements.Element{Symbol: s, Number: z})
		}
		return ret, nil
	}
	fams := make([]elements.Family, 0, len(C.Families))
	for _, f := range C.Families {
		fams = append(fams, elements.Family(f))
	}
	return substitute.Catalog(fams...), nil
}

// Script returns the job script template: the default one, with the fields
// given in C.ScriptFile (YAML) replaced.
func (C *Config) Script() (*castep.ScriptTemplate, error) {
	S := castep.DefaultScript()
	if C.ScriptFile == "" {
		return &S, nil
	}
	data, err := os.ReadFile(C.ScriptFile)
	if err != nil {
		return nil, fmt.Errorf("reading script template: %w", err)
	}
	if err := yaml.Unmarshal(data, &S); err != nil {
		return nil, fmt.Errorf("parsing script template %s: %w", C.ScriptFile, err)
	}
	if err := validate.Struct(S); err != nil {
		return nil, fmt.Errorf("invalid script template %s: %w", C.ScriptFile, err)
	}
	return &S, nil
}

// Exporter builds the exporter for the configuration.
func (C *Config) Exporter(logger *slog.Logger) (*castep.Exporter, error) {
	table, err := elements.Load(C.ElementTable)
	if err != nil {
		return nil, err
	}
	script, err := C.Script()
	if err != nil {
		return nil, err
	}
	cache, err := castep.NewCutoffCache(castep.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &castep.Exporter{
		Table:         table,
		PotentialDir:  C.Potentials,
		ExtensionFile: C.Extension,
		Root:          C.Root,
		Script:        script,
		Logger:        logger,
		Cutoffs:       cache,
	}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
