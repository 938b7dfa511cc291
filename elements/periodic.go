/*
 * periodic.go, part of gdytac.
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

package elements

//Symbols from H to Rn, indexed by atomic number (the first one is a placeholder).
var symbols = [...]string{"",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
}

var numbers = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for z, s := range symbols {
		if z > 0 {
			m[s] = z
		}
	}
	return m
}()

// Symbol returns the symbol of the element with atomic number z, or
// the empty string if z is not between 1 and 86.
func Symbol(z int) string {
	if z < 1 || z >= len(symbols) {
		return ""
	}
	return symbols[z]
}

// Number returns the atomic number for symbol, and false if the symbol is unknown.
func Number(symbol string) (int, bool) {
	z, ok := numbers[symbol]
	return z, ok
}

// Element is a chemical element, as placed in a substituted site.
type Element struct {
	Symbol string
	Number int
}

func (E Element) String() string { return E.Symbol }

// Family is the group of candidate metals an element belongs to. It also
// names the top level directory where the seed files of a model go.
type Family string

const (
	Family3d        Family = "3d"
	Family4d        Family = "4d"
	Family5d        Family = "5d"
	FamilyRareEarth Family = "rare_earth"
	FamilyElse      Family = "else"
)

// Families lists the candidate families, in catalog order.
var Families = []Family{Family3d, Family4d, Family5d, FamilyRareEarth}

// Range returns the first and last atomic number of the family. FamilyElse
// has no range, and returns 0, -1.
func (F Family) Range() (first, last int) {
	switch F {
	case Family3d:
		return 21, 30
	case Family4d:
		return 39, 48
	case Family5d:
		//La is counted among the rare earths.
		return 72, 80
	case FamilyRareEarth:
		return 57, 71
	}
	return 0, -1
}

// Members returns the elements of the family by ascending atomic number.
func (F Family) Members() []Element {
	first, last := F.Range()
	ret := make([]Element, 0, last-first+1)
	for z := first; z <= last; z++ {
		ret = append(ret, Element{Symbol: symbols[z], Number: z})
	}
	return ret
}

// FamilyOf returns the family of the element with atomic number z.
func FamilyOf(z int) Family {
	for _, f := range Families {
		first, last := f.Range()
		if z >= first && z <= last {
			return f
		}
	}
	return FamilyElse
}
