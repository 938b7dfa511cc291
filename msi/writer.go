/*
 * writer.go, part of gdytac.
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

package msi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	chem "github.com/gdytac/gdytac"
	"gonum.org/v1/gonum/spatial/r3"
)

func vecString(v r3.Vec) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
	return f(v.X) + " " + f(v.Y) + " " + f(v.Z)
}

// Write writes L to out as an MSI DataModel file, with the atoms in their
// current order.
func Write(out io.Writer, L *chem.Lattice) error {
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "# MSI CERIUS2 DataModel File Version 4 0\n")
	fmt.Fprint(w, "(1 Model\n")
	fmt.Fprint(w, "  (A I CRY/DISPLAY (192 256))\n")
	fmt.Fprint(w, "  (A I PeriodicType 100)\n")
	fmt.Fprint(w, "  (A C SpaceGroup \"1 1\")\n")
	for i, key := range latticeKeys {
		fmt.Fprintf(w, "  (A D %s (%s))\n", key, vecString(L.Vector(i)))
	}
	fmt.Fprint(w, "  (A D CRY/TOLERANCE 0.05)\n")
	for _, at := range L.Molecule().Atoms() {
		//item 1 is the model itself.
		fmt.Fprintf(w, "  (%d Atom\n", at.Id()+1)
		fmt.Fprintf(w, "    (A C ACL \"%d %s\")\n", at.Z, at.Symbol)
		fmt.Fprintf(w, "    (A C Label \"%s\")\n", at.Symbol)
		fmt.Fprintf(w, "    (A D XYZ (%.12f %.12f %.12f))\n", at.Pos.X, at.Pos.Y, at.Pos.Z)
		fmt.Fprintf(w, "    (A I Id %d)\n", at.Id())
		fmt.Fprint(w, "  )\n")
	}
	fmt.Fprint(w, ")\n")
	if err := w.Flush(); err != nil {
		return chem.WrapError(chem.IOError, "", err, "Write")
	}
	return nil
}

// WriteFile writes L to the file filename, which is created or truncated.
func WriteFile(filename string, L *chem.Lattice) error {
	f, err := os.Create(filename)
	if err != nil {
		return chem.WrapError(chem.IOError, filename, err, "WriteFile")
	}
	if err := Write(f, L); err != nil {
		f.Close()
		if e, ok := err.(*chem.Error); ok {
			e.InFile(filename)
		}
		return chem.ErrDecorate(err, "WriteFile")
	}
	if err := f.Close(); err != nil {
		return chem.WrapError(chem.IOError, filename, err, "WriteFile")
	}
	return nil
}
