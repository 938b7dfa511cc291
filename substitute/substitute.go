/*
 * substitute.go, part of gdytac.
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

// Package substitute enumerates the models obtained by placing candidate
// metals in the three designated sites of a seed lattice.
package substitute

import (
	"fmt"

	chem "github.com/gdytac/gdytac"
	"github.com/gdytac/gdytac/elements"
)

// Mode selects how the candidates are distributed over the three sites.
type Mode int

const (
	//ModeCombinations gives every multiset of three candidates, each once.
	ModeCombinations Mode = iota
	//ModePairs puts a candidate x in the first two sites and y in the third, for every x, y.
	ModePairs
)

func (m Mode) String() string {
	switch m {
	case ModeCombinations:
		return "combinations"
	case ModePairs:
		return "pairs"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode returns the Mode named s ("combinations" or "pairs").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "combinations", "":
		return ModeCombinations, nil
	case "pairs":
		return ModePairs, nil
	}
	return 0, chem.NewError(chem.UnknownError, "", fmt.Sprintf("unknown substitution mode %q", s), "ParseMode")
}

// Catalog returns the members of the given families, family after family.
// With no families it uses elements.Families (3d, 4d, 5d, rare earths).
// A repeated family is only listed once.
func Catalog(families ...elements.Family) []elements.Element {
	if len(families) == 0 {
		families = elements.Families
	}
	var ret []elements.Element
	seen := make(map[elements.Family]bool, len(families))
	for _, f := range families {
		if seen[f] {
			continue
		}
		seen[f] = true
		ret = append(ret, f.Members()...)
	}
	return ret
}

// unique returns the elements of els without repetitions (by atomic number),
// in order of first appearance.
func unique(els []elements.Element) []elements.Element {
	ret := make([]elements.Element, 0, len(els))
	seen := make(map[int]bool, len(els))
	for _, e := range els {
		if seen[e.Number] {
			continue
		}
		seen[e.Number] = true
		ret = append(ret, e)
	}
	return ret
}

// Combo is the assignment of elements to the designated sites, in site order.
type Combo [chem.NSites]elements.Element

// Variant is one substituted model.
type Variant struct {
	Lattice  *chem.Lattice
	Elements Combo
	Primary  elements.Element //the element in the first site
	Family   elements.Family  //the family of Primary
}

// Engine produces the variants of a seed lattice. The seed is never modified,
// so one Engine can be used from several goroutines.
type Engine struct {
	Seed       *chem.Lattice
	Candidates []elements.Element
	Mode       Mode
}

// NewEngine returns an engine for seed. If no candidates are given, the full
// Catalog is used. Repeated candidates are used once. It returns error if the designated sites of seed are not
// in its molecule.
func NewEngine(seed *chem.Lattice, mode Mode, candidates ...elements.Element) (*Engine, error) {
	if seed == nil {
		return nil, chem.NewError(chem.UnknownError, "", "nil seed lattice", "NewEngine")
	}
	if err := seed.CheckSites(); err != nil {
		return nil, chem.ErrDecorate(err, "NewEngine")
	}
	if mode != ModeCombinations && mode != ModePairs {
		return nil, chem.NewError(chem.UnknownError, "", "unknown substitution mode "+mode.String(), "NewEngine")
	}
	if len(candidates) == 0 {
		candidates = Catalog()
	}
	return &Engine{Seed: seed, Candidates: unique(candidates), Mode: mode}, nil
}

// Count returns the number of variants the engine produces.
func (E *Engine) Count() int {
	f := len(E.Candidates)
	if E.Mode == ModePairs {
		return f * f
	}
	//C(f+2, 3)
	return f * (f + 1) * (f + 2) / 6
}

// Combos returns the site assignments, in enumeration order.
func (E *Engine) Combos() []Combo {
	ret := make([]Combo, 0, E.Count())
	c := E.Candidates
	if E.Mode == ModePairs {
		for _, x := range c {
			for _, y := range c {
				ret = append(ret, Combo{x, x, y})
			}
		}
		return ret
	}
	for i := range c {
		for j := i; j < len(c); j++ {
			for k := j; k < len(c); k++ {
				ret = append(ret, Combo{c[i], c[j], c[k]})
			}
		}
	}
	return ret
}

// Variant returns a deep copy of the seed with the elements of combo in the
// designated sites, named after them.
func (E *Engine) Variant(combo Combo) (Variant, error) {
	L := E.Seed.Copy()
	for i, el := range combo {
		if err := L.SetSiteElement(i, el.Symbol, el.Number); err != nil {
			return Variant{}, chem.ErrDecorate(err, "Variant")
		}
	}
	if err := L.UpdateName(); err != nil {
		return Variant{}, chem.ErrDecorate(err, "Variant")
	}
	return Variant{
		Lattice:  L,
		Elements: combo,
		Primary:  combo[0],
		Family:   elements.FamilyOf(combo[0].Number),
	}, nil
}

// Each calls fn with every variant, in enumeration order, and stops at the
// first error returned by fn.
func (E *Engine) Each(fn func(Variant) error) error {
	for _, combo := range E.Combos() {
		v, err := E.Variant(combo)
		if err != nil {
			return chem.ErrDecorate(err, "Each")
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// Variants returns all the variants.
func (E *Engine) Variants() ([]Variant, error) {
	ret := make([]Variant, 0, E.Count())
	err := E.Each(func(v Variant) error {
		ret = append(ret, v)
		return nil
	})
	if err != nil {
		return nil, chem.ErrDecorate(err, "Variants")
	}
	return ret, nil
}
