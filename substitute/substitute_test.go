/*
 * substitute_test.go, part of gdytac.
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

package substitute

import (
	"errors"
	"testing"

	chem "github.com/gdytac/gdytac"
	"github.com/gdytac/gdytac/elements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// seed returns a 5-atom lattice (C, C, Mn, Mn, Mn) whose sites are the Ids 3, 4, 5.
func seed(Te *testing.T) *chem.Lattice {
	var ats []*chem.Atom
	for i := 1; i <= 5; i++ {
		sym, z := "C", 6
		if i > 2 {
			sym, z = "Mn", 25
		}
		ats = append(ats, chem.NewAtom(sym, z, r3.Vec{X: float64(i)}, i))
	}
	mol, err := chem.NewMolecule("seed", ats)
	require.NoError(Te, err)
	L, err := chem.NewLattice(mol, mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10}), []int{3, 4, 5})
	require.NoError(Te, err)
	return L
}

func TestCatalog(Te *testing.T) {
	c := Catalog()
	require.Len(Te, c, 44)
	assert.Equal(Te, "Sc", c[0].Symbol)
	assert.Equal(Te, "Y", c[10].Symbol)
	assert.Equal(Te, "Hf", c[20].Symbol)
	assert.Equal(Te, "La", c[29].Symbol)
	assert.Equal(Te, "Lu", c[43].Symbol)
	assert.Len(Te, Catalog(elements.Family3d), 10)
}

func TestCombinationsCount(Te *testing.T) {
	E, err := NewEngine(seed(Te), ModeCombinations)
	require.NoError(Te, err)
	assert.Equal(Te, 15180, E.Count()) //C(46,3)
	combos := E.Combos()
	require.Len(Te, combos, E.Count())
	seen := make(map[[3]int]bool, len(combos))
	for _, c := range combos {
		key := [3]int{c[0].Number, c[1].Number, c[2].Number}
		assert.False(Te, seen[key], "repeated %v", key)
		seen[key] = true
	}
}

func TestCombinationsSmall(Te *testing.T) {
	cands := Catalog(elements.Family3d)[:3] //Sc Ti V
	E, err := NewEngine(seed(Te), ModeCombinations, cands...)
	require.NoError(Te, err)
	var names []string
	require.NoError(Te, E.Each(func(v Variant) error {
		names = append(names, v.Lattice.Name())
		return nil
	}))
	assert.Equal(Te, []string{
		"GDY_Sc_Sc_Sc", "GDY_Sc_Sc_Ti", "GDY_Sc_Sc_V", "GDY_Sc_Ti_Ti", "GDY_Sc_Ti_V",
		"GDY_Sc_V_V", "GDY_Ti_Ti_Ti", "GDY_Ti_Ti_V", "GDY_Ti_V_V", "GDY_V_V_V",
	}, names)
}

func TestRepeatedCandidates(Te *testing.T) {
	fe := elements.Element{Symbol: "Fe", Number: 26}
	co := elements.Element{Symbol: "Co", Number: 27}
	E, err := NewEngine(seed(Te), ModeCombinations, fe, fe, co, fe)
	require.NoError(Te, err)
	assert.Equal(Te, []elements.Element{fe, co}, E.Candidates)
	assert.Equal(Te, 4, E.Count()) //C(4,3)
	vs, err := E.Variants()
	require.NoError(Te, err)
	names := make(map[string]int)
	for _, v := range vs {
		names[v.Lattice.Name()]++
	}
	assert.Equal(Te, map[string]int{"GDY_Fe_Fe_Fe": 1, "GDY_Fe_Fe_Co": 1, "GDY_Fe_Co_Co": 1, "GDY_Co_Co_Co": 1}, names)

	P, err := NewEngine(seed(Te), ModePairs, co, fe, co)
	require.NoError(Te, err)
	assert.Equal(Te, 4, P.Count())

	twice := Catalog(elements.Family3d, elements.Family5d, elements.Family3d)
	assert.Len(Te, twice, 19)
	C, err := NewEngine(seed(Te), ModeCombinations, twice...)
	require.NoError(Te, err)
	assert.Equal(Te, 1330, C.Count()) //C(21,3)
}

func TestPairs(Te *testing.T) {
	cands := Catalog(elements.Family4d)
	E, err := NewEngine(seed(Te), ModePairs, cands...)
	require.NoError(Te, err)
	assert.Equal(Te, 100, E.Count())
	combos := E.Combos()
	require.Len(Te, combos, 100)
	for _, c := range combos {
		assert.Equal(Te, c[0], c[1])
	}
	assert.Equal(Te, Combo{cands[0], cands[0], cands[9]}, combos[9])
}

func TestVariantDoesNotTouchSeed(Te *testing.T) {
	S := seed(Te)
	E, err := NewEngine(S, ModeCombinations)
	require.NoError(Te, err)
	au := elements.Element{Symbol: "Au", Number: 79}
	ce := elements.Element{Symbol: "Ce", Number: 58}
	fe := elements.Element{Symbol: "Fe", Number: 26}
	v, err := E.Variant(Combo{au, ce, fe})
	require.NoError(Te, err)
	assert.Equal(Te, "GDY_Au_Ce_Fe", v.Lattice.Name())
	assert.Equal(Te, elements.Family5d, v.Family)
	assert.Equal(Te, au, v.Primary)
	ats, err := v.Lattice.SiteAtoms()
	require.NoError(Te, err)
	assert.Equal(Te, 58, ats[1].Z)

	assert.Equal(Te, "seed", S.Name())
	for _, at := range S.Molecule().Atoms()[2:] {
		assert.Equal(Te, "Mn", at.Symbol)
	}
}

func TestEachStops(Te *testing.T) {
	E, err := NewEngine(seed(Te), ModePairs, Catalog(elements.Family3d)...)
	require.NoError(Te, err)
	stop := errors.New("stop")
	n := 0
	err = E.Each(func(Variant) error {
		n++
		if n == 5 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(Te, err, stop)
	assert.Equal(Te, 5, n)
}

func TestNewEngineErrors(Te *testing.T) {
	mol, err := chem.NewMolecule("tiny", []*chem.Atom{chem.NewAtom("C", 6, r3.Vec{}, 1)})
	require.NoError(Te, err)
	L, err := chem.NewLattice(mol, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), []int{73, 74, 75})
	require.NoError(Te, err)
	_, err = NewEngine(L, ModeCombinations)
	assert.Error(Te, err)
	_, err = NewEngine(seed(Te), Mode(7))
	assert.Error(Te, err)
	_, err = ParseMode("triples")
	assert.Error(Te, err)
	m, err := ParseMode("pairs")
	require.NoError(Te, err)
	assert.Equal(Te, ModePairs, m)
}
