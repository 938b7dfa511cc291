/*
 * molecule.go, part of gdytac.
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
	"sort"

	v3 "github.com/gdytac/gdytac/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

/**Note: As in the rest of the package, the methods that take an index
 * panic if it is out of range. Those that take an atom Id return an
 * error or a boolean, since Ids come from input files.**/

// Molecule is a named, ordered set of atoms with unique Ids.
type Molecule struct {
	Name  string
	atoms []*Atom
	index map[int]int //Id -> position in atoms
}

// NewMolecule makes a molecule with the given atoms, in the given order.
// It returns an error if an Id is not positive or is repeated.
// The atoms are not copied.
func NewMolecule(name string, atoms []*Atom) (*Molecule, error) {
	M := &Molecule{Name: name, atoms: make([]*Atom, 0, len(atoms)), index: make(map[int]int, len(atoms))}
	for _, at := range atoms {
		if err := M.Append(at); err != nil {
			return nil, ErrDecorate(err, "NewMolecule")
		}
	}
	return M, nil
}

// Append adds an atom at the end of the molecule.
func (M *Molecule) Append(at *Atom) error {
	if at == nil {
		return NewError(UnknownError, "", "nil atom", "Append")
	}
	if at.id < 1 {
		return NewError(UnknownError, "", fmt.Sprintf("atom Id %d is not positive", at.id), "Append")
	}
	if _, ok := M.index[at.id]; ok {
		return NewError(UnknownError, "", fmt.Sprintf("repeated atom Id %d", at.id), "Append")
	}
	M.index[at.id] = len(M.atoms)
	M.atoms = append(M.atoms, at)
	return nil
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.atoms)
}

// Atom returns the Atom in the position i of the molecule. Panics if
// out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i < 0 || i >= M.Len() {
		panic(fmt.Sprintf("Molecule: Requested Atom %d out of bounds", i))
	}
	return M.atoms[i]
}

// AtomById returns the atom with the given Id, and whether it was found.
func (M *Molecule) AtomById(id int) (*Atom, bool) {
	i, ok := M.index[id]
	if !ok {
		return nil, false
	}
	return M.atoms[i], true
}

// Atoms returns the atoms of the molecule in their current order.
// The slice is new, the atoms are not.
func (M *Molecule) Atoms() []*Atom {
	ret := make([]*Atom, len(M.atoms))
	copy(ret, M.atoms)
	return ret
}

// Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	N := &Molecule{Name: M.Name, atoms: make([]*Atom, len(M.atoms)), index: make(map[int]int, len(M.atoms))}
	for i, at := range M.atoms {
		N.atoms[i] = at.Copy()
		N.index[at.id] = i
	}
	return N
}

//Implementation of the sort.Interface. Sorting is by atomic number.

// Swap swaps the atoms i and j, as demanded by sort.Interface.
func (M *Molecule) Swap(i, j int) {
	M.atoms[i], M.atoms[j] = M.atoms[j], M.atoms[i]
	M.index[M.atoms[i].id] = i
	M.index[M.atoms[j].id] = j
}

// Less: Should the atom i be sorted before atom j?
func (M *Molecule) Less(i, j int) bool {
	return M.atoms[i].Z < M.atoms[j].Z
}

//End sort.Interface

// SortByElement groups the atoms by element, in ascending atomic number.
// The sort is stable, so atoms of the same element keep their relative order.
func (M *Molecule) SortByElement() {
	sort.Stable(M)
}

// Elements returns the distinct element symbols in the molecule, sorted by
// ascending atomic number.
func (M *Molecule) Elements() []string {
	seen := make(map[string]int)
	for _, at := range M.atoms {
		seen[at.Symbol] = at.Z
	}
	ret := make([]string, 0, len(seen))
	for s := range seen {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool {
		if seen[ret[i]] != seen[ret[j]] {
			return seen[ret[i]] < seen[ret[j]]
		}
		return ret[i] < ret[j]
	})
	return ret
}

// Coords returns a new matrix with the positions of the atoms, one per row.
func (M *Molecule) Coords() *v3.Matrix {
	vs := make([]r3.Vec, len(M.atoms))
	for i, at := range M.atoms {
		vs[i] = at.Pos
	}
	return v3.FromVecs(vs)
}

// SetCoords replaces the positions of all atoms with the rows of coords.
func (M *Molecule) SetCoords(coords *v3.Matrix) error {
	if coords.NVecs() != M.Len() {
		return NewError(UnknownError, "", fmt.Sprintf("%d coordinates given, but %d atoms", coords.NVecs(), M.Len()), "SetCoords")
	}
	for i, at := range M.atoms {
		at.Pos = coords.Vec(i)
	}
	return nil
}

// Rotate applies the rotation r to every atom position.
func (M *Molecule) Rotate(r r3.Rotation) {
	if M.Len() == 0 {
		return
	}
	coords := M.Coords()
	coords.Transform(r.Mat())
	if err := M.SetCoords(coords); err != nil {
		panic(err.Error()) //same number of rows, can't happen.
	}
}
