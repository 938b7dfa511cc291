/*
 * table.go, part of gdytac.
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

// Package elements holds the per-element data needed to write CASTEP inputs
// (mass, pseudopotential, LCAO states, spin), loaded once from a YAML table,
// and a small periodic table with the candidate metal families.
package elements

import (
	"fmt"
	"io"
	"os"
	"sort"

	chem "github.com/gdytac/gdytac"
	"gopkg.in/yaml.v3"
)

// Property is the data for one element in the table.
type Property struct {
	Symbol       string  `yaml:"element"`
	AtomicNumber int     `yaml:"atomic_num"`
	LCAO         int     `yaml:"LCAO"`
	Mass         float64 `yaml:"mass"`
	Pot          string  `yaml:"pot"` //pseudopotential file name
	Spin         int     `yaml:"spin"`
}

type tableFile struct {
	Elements []Property `yaml:"Element_info"`
}

// Table maps element symbols to their properties. It is not modified after
// it is built, so one Table can be shared among goroutines.
type Table struct {
	props map[string]Property
}

// NewTable builds a table from props. Repeated symbols and negative spins
// are errors.
func NewTable(props []Property) (*Table, error) {
	T := &Table{props: make(map[string]Property, len(props))}
	for _, p := range props {
		if p.Symbol == "" {
			return nil, chem.NewError(chem.ParseError, "", fmt.Sprintf("element entry with atomic number %d has no symbol", p.AtomicNumber), "NewTable")
		}
		if p.Spin < 0 {
			return nil, chem.NewError(chem.ParseError, "", fmt.Sprintf("negative spin %d for %s", p.Spin, p.Symbol), "NewTable")
		}
		if _, ok := T.props[p.Symbol]; ok {
			return nil, chem.NewError(chem.ParseError, "", "repeated element "+p.Symbol, "NewTable")
		}
		T.props[p.Symbol] = p
	}
	return T, nil
}

// Decode reads a YAML element table from r. name is only used in errors.
func Decode(r io.Reader, name string) (*Table, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, chem.WrapError(chem.ParseError, name, err, "Decode")
	}
	if len(f.Elements) == 0 {
		return nil, chem.NewError(chem.ParseError, name, "no Element_info entries", "Decode")
	}
	T, err := NewTable(f.Elements)
	if err != nil {
		if e, ok := err.(*chem.Error); ok {
			e.InFile(name)
		}
		return nil, chem.ErrDecorate(err, "Decode")
	}
	return T, nil
}

// Load reads the YAML element table in the file filename.
func Load(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, chem.WrapError(chem.IOError, filename, err, "Load")
	}
	defer f.Close()
	T, err := Decode(f, filename)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Load")
	}
	return T, nil
}

// Lookup returns the properties of the element symbol, or a LookupError.
func (T *Table) Lookup(symbol string) (Property, error) {
	p, ok := T.props[symbol]
	if !ok {
		return Property{}, chem.NewError(chem.LookupError, "", "element "+symbol+" not in the element table", "Lookup")
	}
	return p, nil
}

// Len returns the number of elements in the table.
func (T *Table) Len() int { return len(T.props) }

// Symbols returns the symbols in the table, by ascending atomic number.
func (T *Table) Symbols() []string {
	ret := make([]string, 0, len(T.props))
	for s := range T.props {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool {
		zi, zj := T.props[ret[i]].AtomicNumber, T.props[ret[j]].AtomicNumber
		if zi != zj {
			return zi < zj
		}
		return ret[i] < ret[j]
	})
	return ret
}
