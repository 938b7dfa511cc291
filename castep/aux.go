/*
 * aux.go, part of gdytac.
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
)

//Materials Studio files end without a newline.
const kptaux = `MP_GRID :        1       1       1
MP_OFFSET :   0.000000000000000e+000  0.000000000000000e+000  0.000000000000000e+000
%BLOCK KPOINT_IMAGES
   1   1
%ENDBLOCK KPOINT_IMAGES`

const trjauxHeader = `# Atom IDs to appear in any .trj file to be generated.
# Correspond to atom IDs which will be used in exported .msi file
# required for animation/analysis of trajectory within Cerius2.
`

const trjauxFooter = "#Origin  0.000000000000000e+000  0.000000000000000e+000  0.000000000000000e+000"

// WriteKptAux writes the k-point auxiliary file, which is the same for every model and task.
func WriteKptAux(w io.Writer) error {
	if _, err := io.WriteString(w, kptaux); err != nil {
		return chem.WrapError(chem.IOError, "", err, "WriteKptAux")
	}
	return nil
}

// WriteTrjAux writes the trajectory auxiliary file: the Id of each atom of L,
// in the current atom order.
func WriteTrjAux(out io.Writer, L *chem.Lattice) error {
	w := bufio.NewWriter(out)
	w.WriteString(trjauxHeader)
	for _, at := range L.Molecule().Atoms() {
		fmt.Fprintf(w, "%d\n", at.Id())
	}
	w.WriteString(trjauxFooter)
	if err := w.Flush(); err != nil {
		return chem.WrapError(chem.IOError, "", err, "WriteTrjAux")
	}
	return nil
}
