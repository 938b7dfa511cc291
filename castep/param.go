/*
 * param.go, part of gdytac.
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
	"fmt"
	"io"

	chem "github.com/gdytac/gdytac"
	"github.com/gdytac/gdytac/elements"
)

// Task is the kind of CASTEP calculation.
type Task string

const (
	GeometryOptimization Task = "GeometryOptimization"
	BandStructure        Task = "BandStructure"
)

// Suffix is added to the seed name of the files for the task.
func (t Task) Suffix() string {
	if t == BandStructure {
		return "_DOS"
	}
	return ""
}

// Calc holds the parameters that change from one model to the other.
// Everything else in the .param file is fixed.
type Calc struct {
	Task   Task
	Spin   int
	Cutoff float64 //plane wave cutoff energy, eV
}

// The keys after cut_off_energy, which never change.
const paramTail = `grid_scale :        1.500000000000000
fine_grid_scale :        1.500000000000000
finite_basis_corr :        0
elec_energy_tol :   1.000000000000000e-005
max_scf_cycles :     6000
fix_occupancy : false
metals_method : dm
mixing_scheme : Pulay
mix_charge_amp :        0.500000000000000
mix_spin_amp :        2.000000000000000
mix_charge_gmax :        1.500000000000000
mix_spin_gmax :        1.500000000000000
mix_history_length :       20
perc_extra_bands :      72
smearing_width :        0.100000000000000
spin_fix :        6
num_dump_cycles : 0
bs_nextra_bands :       72
bs_xc_functional : PBE
bs_eigenvalue_tol :   1.000000000000000e-005
calculate_stress : false
calculate_ELF : false
popn_calculate : false
calculate_hirshfeld : false
calculate_densdiff : false
pdos_calculate_weights : true
bs_write_eigenvalues : true
`

// WriteParam writes the CASTEP parameter (.param) file for Q.
func WriteParam(w io.Writer, Q Calc) error {
	if Q.Task == "" {
		return chem.NewError(chem.UnknownError, "", "no task given", "WriteParam")
	}
	_, err := fmt.Fprintf(w, "task : %s\n"+
		"continuation : default\n"+
		"comment : CASTEP calculation from Materials Studio\n"+
		"xc_functional : PBE\n"+
		"spin_polarized : true\n"+
		"spin :        %d\n"+
		"opt_strategy : Speed\n"+
		"page_wvfns :        0\n"+
		"cut_off_energy :      %.15f\n"+
		"%s", Q.Task, Q.Spin, Q.Cutoff, paramTail)
	if err != nil {
		return chem.WrapError(chem.IOError, "", err, "WriteParam")
	}
	return nil
}

// TotalSpin adds the spin of every atom in L, taken from its element in T.
func TotalSpin(L *chem.Lattice, T *elements.Table) (int, error) {
	spin := 0
	for _, at := range L.Molecule().Atoms() {
		p, err := T.Lookup(at.Symbol)
		if err != nil {
			return 0, chem.ErrDecorate(err, "TotalSpin")
		}
		spin += p.Spin
	}
	return spin, nil
}
