/*
 * lattice.go, part of gdytac.
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
	"fmt"
	"strings"

	v3 "github.com/gdytac/gdytac/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// NSites is the number of designated (substitutable) sites of a lattice model.
const NSites = 3

// ModelPrefix starts the name of every substituted model.
const ModelPrefix = "GDY"

// Lattice is a periodic model: a molecule, the lattice vectors of its cell
// and the Ids of the designated metal sites.
type Lattice struct {
	mol       *Molecule
	vectors   *mat.Dense //columns are a, b, c
	sites     []int
	Adsorbate string //free-form label, no structural effect
	sorted    bool
}

// NewLattice makes a lattice that owns mol. vectors must be a 3x3 matrix whose
// columns are the lattice vectors a, b and c; they are copied. It returns error
// if the vectors are degenerate or if sites doesn't contain exactly NSites
// distinct, positive Ids. Whether the sites exist in mol is checked by CheckSites.
func NewLattice(mol *Molecule, vectors mat.Matrix, sites []int) (*Lattice, error) {
	if mol == nil {
		return nil, NewError(UnknownError, "", "nil molecule", "NewLattice")
	}
	L := &Lattice{mol: mol}
	if err := L.SetVectors(vectors); err != nil {
		return nil, ErrDecorate(err, "NewLattice")
	}
	if err := validSites(sites); err != nil {
		return nil, ErrDecorate(err, "NewLattice")
	}
	L.sites = append([]int(nil), sites...)
	return L, nil
}

func validSites(sites []int) error {
	if len(sites) != NSites {
		return NewError(UnknownError, "", fmt.Sprintf("%d designated sites given, %d required", len(sites), NSites), "validSites")
	}
	seen := make(map[int]bool, NSites)
	for _, s := range sites {
		if s < 1 {
			return NewError(UnknownError, "", fmt.Sprintf("site Id %d is not positive", s), "validSites")
		}
		if seen[s] {
			return NewError(UnknownError, "", fmt.Sprintf("repeated site Id %d", s), "validSites")
		}
		seen[s] = true
	}
	return nil
}

// Name returns the name of the model.
func (L *Lattice) Name() string { return L.mol.Name }

// SetName sets the name of the model.
func (L *Lattice) SetName(name string) { L.mol.Name = name }

// Molecule returns the molecule owned by the lattice (not a copy).
func (L *Lattice) Molecule() *Molecule { return L.mol }

// Vectors returns a copy of the lattice matrix (columns a, b, c).
func (L *Lattice) Vectors() *mat.Dense {
	return mat.DenseCopyOf(L.vectors)
}

// Vector returns the lattice vector i (0: a, 1: b, 2: c). Panics if out of range.
func (L *Lattice) Vector(i int) r3.Vec {
	if i < 0 || i > 2 {
		panic("Lattice: Requested vector out of bounds")
	}
	return r3.Vec{X: L.vectors.At(0, i), Y: L.vectors.At(1, i), Z: L.vectors.At(2, i)}
}

// SetVectors replaces the lattice vectors (the columns of v) after checking
// that they span a non-zero volume.
func (L *Lattice) SetVectors(v mat.Matrix) error {
	if v == nil {
		return NewError(DegenerateGeometryError, "", "nil lattice vectors", "SetVectors")
	}
	r, c := v.Dims()
	if r != 3 || c != 3 {
		return NewError(DegenerateGeometryError, "", fmt.Sprintf("lattice vectors must be 3x3, got %dx%d", r, c), "SetVectors")
	}
	if err := checkCell(v); err != nil {
		return ErrDecorate(err, "SetVectors")
	}
	L.vectors = mat.DenseCopyOf(v)
	return nil
}

// Sites returns a copy of the designated site Ids.
func (L *Lattice) Sites() []int {
	return append([]int(nil), L.sites...)
}

// CheckSites returns an error if a designated site is not an atom of the molecule.
func (L *Lattice) CheckSites() error {
	for _, s := range L.sites {
		if _, ok := L.mol.AtomById(s); !ok {
			return NewError(UnknownError, "", fmt.Sprintf("designated site %d is not in model %s", s, L.Name()), "CheckSites")
		}
	}
	return nil
}

// SiteAtoms returns the atoms at the designated sites, in site order.
func (L *Lattice) SiteAtoms() ([]*Atom, error) {
	ret := make([]*Atom, 0, len(L.sites))
	for _, s := range L.sites {
		at, ok := L.mol.AtomById(s)
		if !ok {
			return nil, NewError(UnknownError, "", fmt.Sprintf("designated site %d is not in model %s", s, L.Name()), "SiteAtoms")
		}
		ret = append(ret, at)
	}
	return ret, nil
}

// SetSiteElement sets the element of the ith designated site (0-based).
func (L *Lattice) SetSiteElement(i int, symbol string, z int) error {
	if i < 0 || i >= len(L.sites) {
		panic("Lattice: Requested site out of bounds")
	}
	at, ok := L.mol.AtomById(L.sites[i])
	if !ok {
		return NewError(UnknownError, "", fmt.Sprintf("designated site %d is not in model %s", L.sites[i], L.Name()), "SetSiteElement")
	}
	at.SetElement(symbol, z)
	return nil
}

// UpdateName renames the model after the elements at its designated sites,
// as GDY_<site1>_<site2>_<site3>.
func (L *Lattice) UpdateName() error {
	ats, err := L.SiteAtoms()
	if err != nil {
		return ErrDecorate(err, "UpdateName")
	}
	parts := []string{ModelPrefix}
	for _, at := range ats {
		parts = append(parts, at.Symbol)
	}
	L.SetName(strings.Join(parts, "_"))
	return nil
}

// Elements returns the distinct element symbols, by ascending atomic number.
func (L *Lattice) Elements() []string {
	return L.mol.Elements()
}

// SortByElement sorts the atoms by element (stable), see Molecule.SortByElement.
func (L *Lattice) SortByElement() {
	L.mol.SortByElement()
	L.sorted = true
}

// Sorted returns whether SortByElement has been called on this lattice.
func (L *Lattice) Sorted() bool { return L.sorted }

// Copy returns a deep copy of the lattice. The copy shares nothing with L.
func (L *Lattice) Copy() *Lattice {
	return &Lattice{
		mol:       L.mol.Copy(),
		vectors:   mat.DenseCopyOf(L.vectors),
		sites:     append([]int(nil), L.sites...),
		Adsorbate: L.Adsorbate,
		sorted:    L.sorted,
	}
}

// Rotate rigidly rotates the atoms and the lattice vectors.
func (L *Lattice) Rotate(r r3.Rotation) {
	L.mol.Rotate(r)
	rotated := new(mat.Dense)
	rotated.Mul(r.Mat(), L.vectors)
	L.vectors = rotated
}

// FractionalCoords returns the fractional coordinates of every atom, in the
// current atom order, one per row.
func (L *Lattice) FractionalCoords() (*v3.Matrix, error) {
	tofrac, err := FractionalMatrix(L.vectors)
	if err != nil {
		return nil, ErrDecorate(err, "FractionalCoords")
	}
	if L.mol.Len() == 0 {
		return nil, NewError(UnknownError, "", "model has no atoms", "FractionalCoords")
	}
	coords := L.mol.Coords()
	coords.Transform(tofrac)
	return coords, nil
}
