/*
 * sink.go, part of gdytac.
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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	chem "github.com/gdytac/gdytac"
)

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// writeOnce creates path with the content produced by render, unless path
// already exists. The content goes first to a temporary file in the same
// directory, which is then linked to path, so path is never seen half
// written and a concurrent writer can't be overwritten. It returns whether
// the file was written.
func writeOnce(path string, render func(io.Writer) error) (bool, error) {
	if ok, err := exists(path); err != nil {
		return false, chem.WrapError(chem.IOError, path, err, "writeOnce")
	} else if ok {
		return false, nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return false, chem.WrapError(chem.IOError, path, err, "writeOnce")
	}
	tmpname := tmp.Name()
	defer os.Remove(tmpname)
	if err := render(tmp); err != nil {
		tmp.Close()
		if e, ok := err.(*chem.Error); ok {
			e.InFile(path)
		}
		return false, chem.ErrDecorate(err, "writeOnce")
	}
	if err := tmp.Close(); err != nil {
		return false, chem.WrapError(chem.IOError, path, err, "writeOnce")
	}
	if err := os.Chmod(tmpname, 0o644); err != nil {
		return false, chem.WrapError(chem.IOError, path, err, "writeOnce")
	}
	err = os.Link(tmpname, path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrExist):
		//someone else got there first.
		return false, nil
	}
	//Some file systems don't do hard links. Rename is atomic too, but it
	//replaces a file created since the check above.
	if ok, _ := exists(path); ok {
		return false, nil
	}
	if err := os.Rename(tmpname, path); err != nil {
		return false, chem.WrapError(chem.IOError, path, err, "writeOnce")
	}
	return true, nil
}

// copyOnce copies src to dst with writeOnce semantics.
func copyOnce(src, dst string) (bool, error) {
	if ok, err := exists(dst); err != nil || ok {
		if err != nil {
			return false, chem.WrapError(chem.IOError, dst, err, "copyOnce")
		}
		return false, nil
	}
	in, err := os.Open(src)
	if err != nil {
		return false, chem.WrapError(chem.IOError, src, err, "copyOnce")
	}
	defer in.Close()
	written, err := writeOnce(dst, func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return chem.WrapError(chem.IOError, src, err)
		}
		return nil
	})
	if err != nil {
		return false, chem.ErrDecorate(err, "copyOnce")
	}
	return written, nil
}
