/*
 * main_test.go, part of gdytac.
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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdytac/gdytac/castep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `Element_info:
  - {element: C, atomic_num: 6, LCAO: 2, mass: 12.0107, pot: C_00PBE.usp, spin: 0}
  - {element: Mn, atomic_num: 25, LCAO: 3, mass: 54.938, pot: Mn_00PBE.usp, spin: 5}
  - {element: Fe, atomic_num: 26, LCAO: 3, mass: 55.845, pot: Fe_00PBE.usp, spin: 4}
  - {element: Au, atomic_num: 79, LCAO: 3, mass: 196.96655, pot: Au_00PBE.usp, spin: 1}
`

// seedMSI returns a seed with two carbons and three Mn atoms, ids 3 to 5.
func seedMSI() string {
	var b strings.Builder
	b.WriteString("# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n")
	b.WriteString("  (A D A3 (10 0 0))\n  (A D B3 (0 10 0))\n  (A D C3 (0 0 12))\n")
	atoms := []struct {
		z      int
		symbol string
	}{{6, "C"}, {6, "C"}, {25, "Mn"}, {25, "Mn"}, {25, "Mn"}}
	for i, a := range atoms {
		fmt.Fprintf(&b, "  (%d Atom\n    (A C ACL \"%d %s\")\n    (A C Label \"%s\")\n", i+2, a.z, a.symbol, a.symbol)
		fmt.Fprintf(&b, "    (A D XYZ (%d %d 6))\n    (A I Id %d)\n  )\n", i+1, 2*i+1, i+1)
	}
	b.WriteString(")\n")
	return b.String()
}

type fixture struct {
	dir, table, potdir, root, seed string
}

func newFixture(Te *testing.T) *fixture {
	dir := Te.TempDir()
	f := &fixture{
		dir:    dir,
		table:  filepath.Join(dir, "element_info.yaml"),
		potdir: filepath.Join(dir, "pot"),
		root:   filepath.Join(dir, "models"),
		seed:   filepath.Join(dir, "GDY_seed.msi"),
	}
	require.NoError(Te, os.WriteFile(f.table, []byte(table), 0o644))
	require.NoError(Te, os.MkdirAll(f.potdir, 0o755))
	for name, c := range map[string]string{"C": "310", "Mn": "480", "Fe": "521", "Au": "549"} {
		pot := filepath.Join(f.potdir, name+"_00PBE.usp")
		require.NoError(Te, os.WriteFile(pot, []byte(c+" FINE\n"), 0o644))
	}
	require.NoError(Te, os.WriteFile(f.seed, []byte(seedMSI()), 0o644))
	return f
}

func (f *fixture) run(Te *testing.T, args ...string) (string, error) {
	var logs bytes.Buffer
	cmd := newRootCmd(&logs)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	all := append([]string{args[0], "--table", f.table, "--potentials", f.potdir, "--root", f.root, "--sites", "3,4,5", "-j", "2"}, args[1:]...)
	cmd.SetArgs(all)
	err := cmd.Execute()
	return logs.String(), err
}

func TestGenerateExportBundle(Te *testing.T) {
	f := newFixture(Te)
	logs, err := f.run(Te, "generate", f.seed, "--elements", "Fe,Au,Fe")
	require.NoError(Te, err, logs)
	assert.Contains(Te, logs, "gdytac_variants_exported_total=4")
	assert.Contains(Te, logs, "gdytac_variants_failed_total=0")

	dirs := map[string]string{
		"GDY_Fe_Fe_Fe": "3d/Fe",
		"GDY_Fe_Fe_Au": "3d/Fe",
		"GDY_Fe_Au_Au": "3d/Fe",
		"GDY_Au_Au_Au": "5d/Au",
	}
	for name, sub := range dirs {
		d := filepath.Join(f.root, sub, name+"_opt")
		for _, file := range []string{name + ".cell", name + ".param", name + "_DOS.param", name + ".msi", "Au_00PBE.usp", "MS70_YW_CASTEP.lsf"} {
			if name == "GDY_Fe_Fe_Fe" && file == "Au_00PBE.usp" {
				continue
			}
			assert.FileExists(Te, filepath.Join(d, file))
		}
	}
	param, err := os.ReadFile(filepath.Join(f.root, "5d/Au/GDY_Au_Au_Au_opt/GDY_Au_Au_Au.param"))
	require.NoError(Te, err)
	assert.Contains(Te, string(param), "cut_off_energy :      550.000000000000000")
	_, err = os.Stat(filepath.Join(f.root, "3d/Fe/GDY_Fe_Fe_Fe_opt/Mn_00PBE.usp"))
	assert.True(Te, os.IsNotExist(err))

	//The second pass finds the 4 models again and has nothing left to write.
	before := countFiles(Te, f.root)
	logs, err = f.run(Te, "export")
	require.NoError(Te, err, logs)
	assert.Contains(Te, logs, "models=4")
	assert.Equal(Te, before, countFiles(Te, f.root))

	logs, err = f.run(Te, "bundle")
	require.NoError(Te, err, logs)
	assert.Contains(Te, logs, "count=4")
	files, err := castep.ReadBundle(filepath.Join(f.root, "5d/Au/GDY_Au_Au_Au_opt"+castep.BundleExt))
	require.NoError(Te, err)
	assert.Contains(Te, files, "GDY_Au_Au_Au_opt/GDY_Au_Au_Au.cell")

	//Bundles are not rewritten.
	logs, err = f.run(Te, "bundle")
	require.NoError(Te, err, logs)
	assert.Contains(Te, logs, "count=0")
}

func countFiles(Te *testing.T, root string) int {
	n := 0
	err := filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return err
	})
	require.NoError(Te, err)
	return n
}

func TestGenerateFailures(Te *testing.T) {
	f := newFixture(Te)
	//Ti is not in the table: its models fail, the rest are written.
	logs, err := f.run(Te, "generate", f.seed, "--elements", "Fe,Ti", "--mode", "pairs")
	require.Error(Te, err)
	assert.Contains(Te, logs, "gdytac_variants_exported_total=1")
	assert.Contains(Te, logs, "gdytac_variants_failed_total=3")
	assert.DirExists(Te, filepath.Join(f.root, "3d/Fe/GDY_Fe_Fe_Fe_opt"))
	assert.NoDirExists(Te, filepath.Join(f.root, "3d/Ti"))
	assert.NoDirExists(Te, filepath.Join(f.root, "3d/Fe/GDY_Fe_Fe_Ti_opt"))

	_, err = f.run(Te, "generate", f.seed, "--elements", "Fe,Xx")
	assert.ErrorContains(Te, err, "unknown element")
	_, err = f.run(Te, "generate", filepath.Join(f.dir, "none.msi"))
	assert.Error(Te, err)
	_, err = f.run(Te, "generate")
	assert.Error(Te, err)
}

func TestConfigValidate(Te *testing.T) {
	f := newFixture(Te)
	good := func() *Config {
		C := defaultConfig()
		C.ElementTable, C.Potentials, C.Root = f.table, f.potdir, f.root
		return C
	}
	assert.NoError(Te, good().Validate())

	bad := map[string]func(*Config){
		"table":    func(C *Config) { C.ElementTable = filepath.Join(f.dir, "none.yaml") },
		"pot":      func(C *Config) { C.Potentials = f.table },
		"sites":    func(C *Config) { C.Sites = []int{1, 2} },
		"site0":    func(C *Config) { C.Sites = []int{0, 1, 2} },
		"mode":     func(C *Config) { C.Mode = "all" },
		"family":   func(C *Config) { C.Families = []string{"6d"} },
		"workers":  func(C *Config) { C.Workers = -1 },
		"ext":      func(C *Config) { C.Extension = filepath.Join(f.dir, "none.xms") },
		"root":     func(C *Config) { C.Root = "" },
	}
	for name, mod := range bad {
		C := good()
		mod(C)
		assert.Error(Te, C.Validate(), name)
	}
}

func TestConfigEnv(Te *testing.T) {
	Te.Setenv("GDYTAC_ROOT", "/tmp/gdy")
	Te.Setenv("GDYTAC_EXTENSION", "ext.xms")
	C := defaultConfig()
	assert.Equal(Te, "/tmp/gdy", C.Root)
	assert.Equal(Te, "ext.xms", C.Extension)
	assert.Equal(Te, []int{73, 74, 75}, C.Sites)
	assert.Equal(Te, "combinations", C.Mode)
}

func TestConfigCandidates(Te *testing.T) {
	C := defaultConfig()
	all, err := C.Candidates()
	require.NoError(Te, err)
	assert.Len(Te, all, 44)

	C.Families = []string{"5d"}
	fam, err := C.Candidates()
	require.NoError(Te, err)
	require.Len(Te, fam, 9)
	assert.Equal(Te, "Hf", fam[0].Symbol)

	C.Elements = []string{"Au", " Pt"}
	els, err := C.Candidates()
	require.NoError(Te, err)
	require.Len(Te, els, 2)
	assert.Equal(Te, 78, els[1].Number)
}

func TestConfigScript(Te *testing.T) {
	dir := Te.TempDir()
	C := defaultConfig()
	S, err := C.Script()
	require.NoError(Te, err)
	assert.Equal(Te, castep.DefaultScript(), *S)

	C.ScriptFile = filepath.Join(dir, "script.yaml")
	require.NoError(Te, os.WriteFile(C.ScriptFile, []byte("np: 24\nnp_per_node: 24\napp_name: cpu_large\n"), 0o644))
	S, err = C.Script()
	require.NoError(Te, err)
	assert.Equal(Te, 24, S.NP)
	assert.Equal(Te, "cpu_large", S.AppName)
	assert.Equal(Te, castep.DefaultScript().Command, S.Command)

	require.NoError(Te, os.WriteFile(C.ScriptFile, []byte("np: 0\n"), 0o644))
	_, err = C.Script()
	assert.Error(Te, err)
	require.NoError(Te, os.WriteFile(C.ScriptFile, []byte("np: [\n"), 0o644))
	_, err = C.Script()
	assert.Error(Te, err)
}
