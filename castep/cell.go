/*
 * cell.go, part of gdytac.
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
	"bufio"
	"fmt"
	"io"

	chem "github.com/gdytac/gdytac"
	"github.com/gdytac/gdytac/elements"
)

const kpointsList = "   0.0000000000000000   0.0000000000000000   0.0000000000000000       1.000000000000000\n"

const efield = "    0.0000000000     0.0000000000     0.0000000000\n"

const pressure = "    0.0000000000    0.0000000000    0.0000000000\n" +
	"                    0.0000000000    0.0000000000\n" +
	"                                    0.0000000000\n"

func block(w io.Writer, name, content string) {
	fmt.Fprintf(w, "%%BLOCK %s\n%s%%ENDBLOCK %s\n\n", name, content, name)
}

// species returns the properties of the distinct elements of L, by
// ascending atomic number.
func species(L *chem.Lattice, T *elements.Table) ([]elements.Property, error) {
	syms := L.Elements()
	ret := make([]elements.Property, 0, len(syms))
	for _, s := range syms {
		p, err := T.Lookup(s)
		if err != nil {
			return nil, chem.ErrDecorate(err, "species")
		}
		ret = append(ret, p)
	}
	return ret, nil
}

// WriteCell writes the CASTEP geometry (.cell) file for L. L must have been
// sorted by element and put in the standard orientation. All the elements in
// L must be in T.
func WriteCell(out io.Writer, L *chem.Lattice, T *elements.Table) error {
	if !L.Sorted() {
		return chem.NewError(chem.UnknownError, "", "atoms of "+L.Name()+" are not sorted by element", "WriteCell")
	}
	specs, err := species(L, T)
	if err != nil {
		return chem.ErrDecorate(err, "WriteCell")
	}
	spin := make(map[string]int, len(specs))
	for _, p := range specs {
		spin[p.Symbol] = p.Spin
	}
	frac, err := L.FractionalCoords()
	if err != nil {
		return chem.ErrDecorate(err, "WriteCell")
	}
	w := bufio.NewWriter(out)

	var lat, pos, mass, pot, lcao string
	for i := 0; i < 3; i++ {
		v := L.Vector(i)
		lat += fmt.Sprintf("%24.18f%24.18f%24.18f\n", v.X, v.Y, v.Z)
	}
	block(w, "LATTICE_CART", lat)
	for i, at := range L.Molecule().Atoms() {
		f := frac.Vec(i)
		pos += fmt.Sprintf("%3s%20.16f%20.16f%20.16f", at.Symbol, f.X, f.Y, f.Z)
		if s := spin[at.Symbol]; s != 0 {
			pos += fmt.Sprintf(" SPIN=%14.10f", float64(s))
		}
		pos += "\n"
	}
	block(w, "POSITIONS_FRAC", pos)
	block(w, "KPOINTS_LIST", kpointsList)
	fmt.Fprint(w, "FIX_ALL_CELL : true\n\nFIX_COM : false\n")
	block(w, "IONIC_CONSTRAINTS", "")
	block(w, "EXTERNAL_EFIELD", efield)
	block(w, "EXTERNAL_PRESSURE", pressure)
	for _, p := range specs {
		mass += fmt.Sprintf("%8s%17.10f\n", p.Symbol, p.Mass)
		pot += fmt.Sprintf("%8s  %s\n", p.Symbol, p.Pot)
		lcao += fmt.Sprintf("%8s%9d\n", p.Symbol, p.LCAO)
	}
	block(w, "SPECIES_MASS", mass)
	block(w, "SPECIES_POT", pot)
	block(w, "SPECIES_LCAO_STATES", lcao)
	if err := w.Flush(); err != nil {
		return chem.WrapError(chem.IOError, "", err, "WriteCell")
	}
	return nil
}
