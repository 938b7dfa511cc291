/*
 * export.go, part of gdytac.
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

package castep

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	chem "github.com/gdytac/gdytac"
	"github.com/gdytac/gdytac/elements"
	"github.com/gdytac/gdytac/msi"
)

// Exporter writes the CASTEP seed files of models under Root. An Exporter
// only reads its fields, so it can be used by several goroutines at once.
type Exporter struct {
	Table         *elements.Table
	PotentialDir  string //where the pseudopotential files are
	ExtensionFile string //the shared SMCastep_Extension.xms, not copied if empty
	Root          string
	Script        *ScriptTemplate //nil means DefaultScript
	Logger        *slog.Logger    //nil means slog.Default
	Cutoffs       *CutoffCache    //nil means the pseudopotentials are read every time
}

// Result tells which files of a model were written and which ones were
// skipped because they already existed.
type Result struct {
	Name    string
	Dir     string
	Written []string
	Skipped []string
}

func (R *Result) add(name string, written bool) {
	if written {
		R.Written = append(R.Written, name)
	} else {
		R.Skipped = append(R.Skipped, name)
	}
}

func (E *Exporter) logger() *slog.Logger {
	if E.Logger == nil {
		return slog.Default()
	}
	return E.Logger
}

// Destination returns the directory for the files of L:
// Root/<family>/<primary>/<name>_opt, where primary is the element at the
// first designated site, and family its family.
func (E *Exporter) Destination(L *chem.Lattice) (string, error) {
	ats, err := L.SiteAtoms()
	if err != nil {
		return "", chem.ErrDecorate(err, "Destination")
	}
	primary := ats[0]
	family := elements.FamilyOf(primary.Z)
	return filepath.Join(E.Root, string(family), primary.Symbol, L.Name()+"_opt"), nil
}

// Cutoff returns the largest cutoff energy among the pseudopotentials of the elements of L.
func (E *Exporter) Cutoff(L *chem.Lattice) (int, error) {
	specs, err := species(L, E.Table)
	if err != nil {
		return 0, chem.ErrDecorate(err, "Cutoff")
	}
	best := 0
	for _, p := range specs {
		c, err := E.Cutoffs.Get(filepath.Join(E.PotentialDir, p.Pot))
		if err != nil {
			return 0, chem.ErrDecorate(err, "Cutoff")
		}
		if c > best {
			best = c
		}
	}
	return best, nil
}

// Export writes every seed file of L that doesn't exist yet. L itself is not
// modified: a copy is sorted by element and put in the standard orientation
// before the geometry is written. The .msi file keeps the atoms of L as they are.
// Running Export twice on the same model writes nothing the second time.
func (E *Exporter) Export(L *chem.Lattice) (*Result, error) {
	if E.Table == nil {
		return nil, chem.NewError(chem.UnknownError, "", "exporter has no element table", "Export")
	}
	prepared := L.Copy()
	prepared.SortByElement()
	chem.RotateToStandardOrientation(prepared)

	//everything that can fail without touching the disk goes first.
	specs, err := species(prepared, E.Table)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Export")
	}
	spin, err := TotalSpin(prepared, E.Table)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Export")
	}
	cutoff, err := E.Cutoff(prepared)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Export")
	}
	dir, err := E.Destination(L)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, chem.WrapError(chem.IOError, dir, err, "Export")
	}
	stem := L.Name()
	res := &Result{Name: stem, Dir: dir}
	script := DefaultScript()
	if E.Script != nil {
		script = *E.Script
	}

	type file struct {
		name   string
		render func(io.Writer) error
	}
	files := []file{
		{stem + ".cell", func(w io.Writer) error { return WriteCell(w, prepared, E.Table) }},
	}
	for _, task := range []Task{GeometryOptimization, BandStructure} {
		Q := Calc{Task: task, Spin: spin, Cutoff: float64(cutoff)}
		files = append(files,
			file{stem + task.Suffix() + ".param", func(w io.Writer) error { return WriteParam(w, Q) }},
			file{stem + task.Suffix() + ".kptaux", WriteKptAux})
	}
	files = append(files,
		file{stem + ".trjaux", func(w io.Writer) error { return WriteTrjAux(w, prepared) }},
		file{stem + ".msi", func(w io.Writer) error { return msi.Write(w, L) }},
		file{script.FileName, func(w io.Writer) error { return script.Write(w, stem) }},
	)
	for _, f := range files {
		written, err := writeOnce(filepath.Join(dir, f.name), f.render)
		if err != nil {
			return res, chem.ErrDecorate(err, "Export")
		}
		res.add(f.name, written)
	}

	copies := make([][2]string, 0, len(specs)+1)
	for _, p := range specs {
		copies = append(copies, [2]string{filepath.Join(E.PotentialDir, p.Pot), p.Pot})
	}
	if E.ExtensionFile != "" {
		copies = append(copies, [2]string{E.ExtensionFile, "SMCastep_Extension_" + stem + ".xms"})
	}
	for _, c := range copies {
		written, err := copyOnce(c[0], filepath.Join(dir, c[1]))
		if err != nil {
			return res, chem.ErrDecorate(err, "Export")
		}
		res.add(c[1], written)
	}
	E.logger().Debug("seed files exported", "model", stem, "dir", dir,
		"written", len(res.Written), "skipped", len(res.Skipped), "cutoff", cutoff, "spin", spin)
	return res, nil
}
