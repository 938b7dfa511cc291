/*
 * parser.go, part of gdytac.
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

// Package msi reads and writes the subset of the MSI (Cerius2 / Materials
// Studio DataModel) format needed for periodic models: the A3, B3 and C3
// lattice vectors and the atom blocks with their element, position and Id.
package msi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/gdytac/gdytac"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSites are the Ids of the three metal sites in the graphdiyne seed model.
var DefaultSites = []int{73, 74, 75}

var latticeKeys = [3]string{"A3", "B3", "C3"}

// lineReader reads a file line by line, keeping count, and drops the
// line terminator (LF or CRLF).
type lineReader struct {
	r    *bufio.Reader
	n    int
	name string
}

func (L *lineReader) next() (string, error) {
	line, err := L.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	L.n++
	return strings.TrimRight(line, "\r\n"), nil
}

func (L *lineReader) errorf(format string, a ...interface{}) *chem.Error {
	return chem.NewError(chem.ParseError, L.name, fmt.Sprintf(format, a...)).AtLine(L.n)
}

// Parse reads an MSI model from r and returns it as a lattice whose designated
// sites are the given Ids, or DefaultSites if none are given. name is the file
// name, used in errors; its stem becomes the model name.
func Parse(r io.Reader, name string, sites ...int) (*chem.Lattice, error) {
	if len(sites) == 0 {
		sites = DefaultSites
	}
	in := &lineReader{r: bufio.NewReader(r), name: name}
	var vecs []r3.Vec
	var atoms []*chem.Atom
	for {
		line, err := in.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, chem.WrapError(chem.IOError, name, err, "Parse")
		}
		switch {
		case vecs == nil && isLatticeLine(line, latticeKeys[0]):
			vecs, err = parseLattice(in, line)
		case strings.Contains(line, `ACL "`):
			var at *chem.Atom
			at, err = parseAtom(in, line)
			atoms = append(atoms, at)
		}
		if err != nil {
			return nil, chem.ErrDecorate(err, "Parse")
		}
	}
	if len(atoms) == 0 {
		return nil, chem.NewError(chem.ParseError, name, "no atom block found", "Parse")
	}
	if vecs == nil {
		return nil, chem.NewError(chem.ParseError, name, "lattice vectors A3, B3, C3 not found", "Parse")
	}
	mol, err := chem.NewMolecule(stem(name), atoms)
	if err != nil {
		return nil, chem.NewError(chem.ParseError, name, err.Error(), "Parse")
	}
	vectors := mat.NewDense(3, 3, nil)
	for i, v := range vecs {
		vectors.SetCol(i, []float64{v.X, v.Y, v.Z})
	}
	L, err := chem.NewLattice(mol, vectors, sites)
	if err != nil {
		if e, ok := err.(*chem.Error); ok {
			e.InFile(name)
		}
		return nil, chem.ErrDecorate(err, "Parse")
	}
	return L, nil
}

// ParseFile opens and parses the MSI file filename. See Parse.
func ParseFile(filename string, sites ...int) (*chem.Lattice, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, chem.WrapError(chem.IOError, filename, err, "ParseFile")
	}
	defer f.Close()
	L, err := Parse(f, filename, sites...)
	if err != nil {
		return nil, chem.ErrDecorate(err, "ParseFile")
	}
	return L, nil
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isLatticeLine(line, key string) bool {
	return strings.Contains(line, " "+key+" (")
}

// parseLattice reads the A3 line already in first, and the B3 and C3
// lines that must follow it.
func parseLattice(in *lineReader, first string) ([]r3.Vec, error) {
	vecs := make([]r3.Vec, 0, 3)
	line := first
	for i, key := range latticeKeys {
		if i > 0 {
			var err error
			line, err = in.next()
			if err != nil {
				return nil, in.errorf("unexpected end of file, expected %s", key)
			}
		}
		if !isLatticeLine(line, key) {
			return nil, in.errorf("expected %s lattice vector", key)
		}
		f, err := parenFloats(line, key)
		if err != nil {
			return nil, in.errorf("%s: %s", key, err.Error())
		}
		vecs = append(vecs, r3.Vec{X: f[0], Y: f[1], Z: f[2]})
	}
	return vecs, nil
}

// parenFloats returns the three floats in the parentheses that follow key in line.
func parenFloats(line, key string) ([]float64, error) {
	start := strings.Index(line, key+" (")
	if start < 0 {
		return nil, fmt.Errorf("no %s values", key)
	}
	rest := line[start+len(key)+2:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return nil, fmt.Errorf("unclosed parenthesis")
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected 3 numbers, got %d", len(fields))
	}
	ret := make([]float64, 3)
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

// quoted returns the text between the first pair of double quotes after key.
func quoted(line, key string) (string, bool) {
	i := strings.Index(line, key+` "`)
	if i < 0 {
		return "", false
	}
	rest := line[i+len(key)+2:]
	j := strings.Index(rest, `"`)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// parseAtom reads one atom block. The ACL line is already in acl; the
// Label, XYZ and Id lines must follow, in that order.
func parseAtom(in *lineReader, acl string) (*chem.Atom, error) {
	q, ok := quoted(acl, "ACL")
	fields := strings.Fields(q)
	if !ok || len(fields) < 2 {
		return nil, in.errorf("malformed ACL line")
	}
	z, err := strconv.Atoi(fields[0])
	if err != nil || z < 1 {
		return nil, in.errorf("bad atomic number %q in ACL line", fields[0])
	}
	symbol := fields[1]

	line, err := in.next()
	if err != nil || !strings.Contains(line, `Label "`) {
		return nil, in.errorf("expected Label after ACL")
	}
	line, err = in.next()
	if err != nil || !strings.Contains(line, "XYZ (") {
		return nil, in.errorf("expected XYZ after Label")
	}
	xyz, err := parenFloats(line, "XYZ")
	if err != nil {
		return nil, in.errorf("XYZ: %s", err.Error())
	}
	line, err = in.next()
	if err != nil || !strings.Contains(line, " Id ") {
		return nil, in.errorf("expected Id after XYZ")
	}
	idfield := strings.TrimSpace(line[strings.Index(line, " Id ")+4:])
	idfield = strings.TrimRight(idfield, ")")
	id, err := strconv.Atoi(strings.TrimSpace(idfield))
	if err != nil {
		return nil, in.errorf("bad atom Id %q", idfield)
	}
	return chem.NewAtom(symbol, z, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, id), nil
}
