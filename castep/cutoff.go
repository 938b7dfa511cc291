/*
 * cutoff.go, part of gdytac.
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
	"io"
	"os"
	"regexp"
	"strconv"

	chem "github.com/gdytac/gdytac"
	lru "github.com/hashicorp/golang-lru/v2"
)

// The first integer on the line of the FINE basis quality.
var fineRe = regexp.MustCompile(`([0-9]+).*FINE`)

// DefaultCacheSize is enough for every element of the periodic table.
const DefaultCacheSize = 128

// ReadCutoff returns the cutoff energy for the pseudopotential read from r:
// the FINE energy of the file, rounded up to the next multiple of 10 (a
// multiple of 10 still goes up by 10). name is only used in errors.
func ReadCutoff(r io.Reader, name string) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, chem.WrapError(chem.IOError, name, err, "ReadCutoff")
	}
	m := fineRe.FindSubmatch(data)
	if m == nil {
		return 0, chem.NewError(chem.ParseError, name, "no FINE cutoff energy in pseudopotential", "ReadCutoff")
	}
	fine, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, chem.WrapError(chem.ParseError, name, err, "ReadCutoff")
	}
	return (fine/10 + 1) * 10, nil
}

// ReadCutoffFile is ReadCutoff for the file filename.
func ReadCutoffFile(filename string) (int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, chem.WrapError(chem.IOError, filename, err, "ReadCutoffFile")
	}
	defer f.Close()
	c, err := ReadCutoff(f, filename)
	if err != nil {
		return 0, chem.ErrDecorate(err, "ReadCutoffFile")
	}
	return c, nil
}

// CutoffCache keeps the cutoff energies already read, by pseudopotential
// path. It is safe for concurrent use. Two goroutines asking for the same
// new path may both read the file.
type CutoffCache struct {
	cache *lru.Cache[string, int]
}

// NewCutoffCache returns a cache with room for size pseudopotentials.
func NewCutoffCache(size int) (*CutoffCache, error) {
	c, err := lru.New[string, int](size)
	if err != nil {
		return nil, chem.WrapError(chem.UnknownError, "", err, "NewCutoffCache")
	}
	return &CutoffCache{cache: c}, nil
}

// Get returns the cutoff energy for the pseudopotential in path, reading it
// if it is not in the cache. Errors are not cached.
func (C *CutoffCache) Get(path string) (int, error) {
	if C == nil {
		return ReadCutoffFile(path)
	}
	if c, ok := C.cache.Get(path); ok {
		return c, nil
	}
	c, err := ReadCutoffFile(path)
	if err != nil {
		return 0, chem.ErrDecorate(err, "CutoffCache.Get")
	}
	C.cache.Add(path, c)
	return c, nil
}

// Len returns the number of cached energies.
func (C *CutoffCache) Len() int {
	if C == nil {
		return 0
	}
	return C.cache.Len()
}
