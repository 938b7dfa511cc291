/*
 * atom.go, part of gdytac.
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

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom contains the element and the cartesian position of one atom. The Id
// is assigned when the atom is created and never changes. The element fields
// can be overwritten (that is what a substitution does).
type Atom struct {
	Symbol string
	Z      int    //atomic number
	Pos    r3.Vec //cartesian, in Angstrom
	id     int
}

// NewAtom returns a new atom with the given 1-based id.
func NewAtom(symbol string, z int, pos r3.Vec, id int) *Atom {
	return &Atom{Symbol: symbol, Z: z, Pos: pos, id: id}
}

//Atom methods

// Id returns the identifier of the atom, unique within its molecule.
func (A *Atom) Id() int {
	return A.id
}

// SetElement overwrites the element of the atom. Position and Id are kept.
func (A *Atom) SetElement(symbol string, z int) {
	A.Symbol = symbol
	A.Z = z
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}

func (A *Atom) String() string {
	return fmt.Sprintf("%d %s(%d) [%.6f %.6f %.6f]", A.id, A.Symbol, A.Z, A.Pos.X, A.Pos.Y, A.Pos.Z)
}
