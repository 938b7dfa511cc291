/*
 * chem_test.go, part of gdytac.
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

package chem

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/gdytac/gdytac/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func eye() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

// testMolecule returns C, H, Mn, C, Fe, H with Ids 1..6.
func testMolecule(Te *testing.T) *Molecule {
	ats := []*Atom{
		NewAtom("C", 6, r3.Vec{X: 0, Y: 0, Z: 0}, 1),
		NewAtom("H", 1, r3.Vec{X: 1, Y: 0, Z: 0}, 2),
		NewAtom("Mn", 25, r3.Vec{X: 2, Y: 0, Z: 0}, 3),
		NewAtom("C", 6, r3.Vec{X: 3, Y: 0, Z: 0}, 4),
		NewAtom("Fe", 26, r3.Vec{X: 4, Y: 0, Z: 0}, 5),
		NewAtom("H", 1, r3.Vec{X: 5, Y: 0, Z: 0}, 6),
	}
	mol, err := NewMolecule("test", ats)
	require.NoError(Te, err)
	return mol
}

func TestNewMoleculeIds(Te *testing.T) {
	_, err := NewMolecule("dup", []*Atom{
		NewAtom("C", 6, r3.Vec{}, 1),
		NewAtom("C", 6, r3.Vec{}, 1),
	})
	assert.Error(Te, err)
	_, err = NewMolecule("zero", []*Atom{NewAtom("C", 6, r3.Vec{}, 0)})
	assert.Error(Te, err)
}

func TestAtomById(Te *testing.T) {
	mol := testMolecule(Te)
	at, ok := mol.AtomById(5)
	require.True(Te, ok)
	assert.Equal(Te, "Fe", at.Symbol)
	_, ok = mol.AtomById(42)
	assert.False(Te, ok)
}

func TestSortByElement(Te *testing.T) {
	mol := testMolecule(Te)
	mol.SortByElement()
	var ids []int
	prev := 0
	for _, at := range mol.Atoms() {
		assert.GreaterOrEqual(Te, at.Z, prev)
		prev = at.Z
		ids = append(ids, at.Id())
	}
	//stable: H 2 before H 6, C 1 before C 4.
	assert.Equal(Te, []int{2, 6, 1, 4, 3, 5}, ids)
	//the Id index follows the new order.
	for i, at := range mol.Atoms() {
		got, ok := mol.AtomById(at.Id())
		require.True(Te, ok)
		assert.Same(Te, mol.Atom(i), got)
	}
}

func TestElements(Te *testing.T) {
	mol := testMolecule(Te)
	assert.Equal(Te, []string{"H", "C", "Mn", "Fe"}, mol.Elements())
}

func TestMoleculeCopyIsDeep(Te *testing.T) {
	mol := testMolecule(Te)
	cp := mol.Copy()
	at, _ := cp.AtomById(3)
	at.SetElement("Ni", 28)
	at.Pos = r3.Vec{X: 100}
	orig, _ := mol.AtomById(3)
	assert.Equal(Te, "Mn", orig.Symbol)
	assert.Equal(Te, 2.0, orig.Pos.X)
}

func TestNewLatticeValidation(Te *testing.T) {
	mol := testMolecule(Te)
	_, err := NewLattice(mol, eye(), []int{3, 5})
	assert.Error(Te, err)
	_, err = NewLattice(mol, eye(), []int{3, 3, 5})
	assert.Error(Te, err)
	flat := mat.NewDense(3, 3, []float64{1, 0, 1, 0, 1, 1, 0, 0, 0})
	_, err = NewLattice(mol, flat, []int{1, 3, 5})
	assert.True(Te, errors.Is(err, DegenerateGeometryError), "got %v", err)

	L, err := NewLattice(mol, eye(), []int{3, 5, 99})
	require.NoError(Te, err)
	assert.Error(Te, L.CheckSites())
}

func TestLatticeSites(Te *testing.T) {
	L, err := NewLattice(testMolecule(Te), eye(), []int{3, 5, 4})
	require.NoError(Te, err)
	require.NoError(Te, L.CheckSites())
	require.NoError(Te, L.SetSiteElement(2, "Ni", 28))
	require.NoError(Te, L.UpdateName())
	assert.Equal(Te, "GDY_Mn_Fe_Ni", L.Name())
}

func TestLatticeCopyIsDeep(Te *testing.T) {
	seed, err := NewLattice(testMolecule(Te), eye(), []int{3, 5, 4})
	require.NoError(Te, err)
	cp := seed.Copy()
	require.NoError(Te, cp.SetSiteElement(0, "Au", 79))
	cp.SortByElement()
	cp.Rotate(r3.NewRotation(1, r3.Vec{Z: 1}))

	at, _ := seed.Molecule().AtomById(3)
	assert.Equal(Te, "Mn", at.Symbol)
	assert.False(Te, seed.Sorted())
	assert.Equal(Te, 3, seed.Molecule().Atom(2).Id())
	assert.Equal(Te, r3.Vec{X: 1}, seed.Vector(0))
}

func TestMoleculeRotate(Te *testing.T) {
	mol := testMolecule(Te)
	mol.Atom(1).Pos = r3.Vec{X: 1, Y: 2, Z: -3}
	want := make([]r3.Vec, mol.Len())
	rot := r3.NewRotation(0.7, r3.Vec{X: 1, Y: 1, Z: 0})
	for i, at := range mol.Atoms() {
		want[i] = rot.Rotate(at.Pos)
	}
	mol.Rotate(rot)
	for i, at := range mol.Atoms() {
		assert.InDelta(Te, 0.0, r3.Norm(r3.Sub(want[i], at.Pos)), 1e-12, "atom %d", i)
	}

	L, err := NewLattice(testMolecule(Te), eye(), []int{3, 5, 4})
	require.NoError(Te, err)
	L.Rotate(r3.NewRotation(math.Pi/2, r3.Vec{Z: 1}))
	assert.InDelta(Te, 1.0, L.Vector(0).Y, 1e-12)
	assert.InDelta(Te, -1.0, L.Vector(1).X, 1e-12)
	assert.InDelta(Te, 1.0, L.Vector(2).Z, 1e-12)
	at, _ := L.Molecule().AtomById(5)
	assert.InDelta(Te, 4.0, at.Pos.Y, 1e-12)

	//rotating nothing is fine.
	empty := &Molecule{}
	assert.NotPanics(Te, func() { empty.Rotate(rot) })
}

func TestSetCoords(Te *testing.T) {
	mol := testMolecule(Te)
	coords := mol.Coords()
	coords.SetVec(2, r3.Vec{X: 9, Y: 8, Z: 7})
	require.NoError(Te, mol.SetCoords(coords))
	assert.Equal(Te, r3.Vec{X: 9, Y: 8, Z: 7}, mol.Atom(2).Pos)

	short := v3.Zeros(2)
	err := mol.SetCoords(short)
	assert.Error(Te, err)
	assert.Equal(Te, r3.Vec{X: 1}, mol.Atom(1).Pos)
}

func TestErrorKinds(Te *testing.T) {
	err := NewError(ParseError, "seed.msi", "bad XYZ", "parseAtom").AtLine(12)
	assert.True(Te, errors.Is(err, ParseError))
	assert.False(Te, errors.Is(err, IOError))
	assert.Equal(Te, "parse error: seed.msi:12: bad XYZ", err.Error())
	deco := ErrDecorate(err, "Parse")
	assert.Equal(Te, ParseError, KindOf(deco))
	assert.Equal(Te, []string{"parseAtom", "Parse"}, err.Decorate(""))

	plain := ErrDecorate(errors.New("boom"), "caller")
	assert.Equal(Te, UnknownError, KindOf(plain))
}
