/*
 * bundle.go, part of gdytac.
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
	"archive/tar"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	chem "github.com/gdytac/gdytac"
	"github.com/klauspost/compress/zstd"
)

// BundleExt is the extension of the bundles made by Bundle.
const BundleExt = ".tar.zst"

// Bundle packs the regular files of the model directory dir in a zstd
// compressed tar file, out. Entries are named <base of dir>/<file>, sorted.
// Hidden files, such as the temporary files of an unfinished export, are left out.
// Like the seed files, the bundle is only written if out doesn't exist;
// Bundle returns whether it was written.
func Bundle(dir, out string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, chem.WrapError(chem.IOError, dir, err, "Bundle")
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	base := filepath.Base(dir)
	written, err := writeOnce(out, func(w io.Writer) error {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return chem.WrapError(chem.IOError, out, err)
		}
		tw := tar.NewWriter(zw)
		for _, name := range names {
			if err := addFile(tw, filepath.Join(dir, name), base+"/"+name); err != nil {
				zw.Close()
				return err
			}
		}
		if err := tw.Close(); err != nil {
			zw.Close()
			return chem.WrapError(chem.IOError, out, err)
		}
		if err := zw.Close(); err != nil {
			return chem.WrapError(chem.IOError, out, err)
		}
		return nil
	})
	if err != nil {
		return false, chem.ErrDecorate(err, "Bundle")
	}
	return written, nil
}

func addFile(tw *tar.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return chem.WrapError(chem.IOError, path, err, "addFile")
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return chem.WrapError(chem.IOError, path, err, "addFile")
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return chem.WrapError(chem.IOError, path, err, "addFile")
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return chem.WrapError(chem.IOError, path, err, "addFile")
	}
	if _, err := io.Copy(tw, f); err != nil {
		return chem.WrapError(chem.IOError, path, err, "addFile")
	}
	return nil
}

// ReadBundle returns the contents of the bundle in path, by entry name.
func ReadBundle(path string) (map[string][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chem.WrapError(chem.IOError, path, err, "ReadBundle")
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, chem.WrapError(chem.ParseError, path, err, "ReadBundle")
	}
	defer zr.Close()
	tr := tar.NewReader(zr)
	ret := make(map[string][]byte)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, chem.WrapError(chem.ParseError, path, err, "ReadBundle")
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, chem.WrapError(chem.ParseError, path, err, "ReadBundle")
		}
		ret[hdr.Name] = data
	}
	return ret, nil
}

// BundleAll bundles every model directory (named *_opt) under root, each
// next to its directory. It returns the bundles written.
func BundleAll(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root && strings.HasSuffix(d.Name(), "_opt") {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, chem.WrapError(chem.IOError, root, err, "BundleAll")
	}
	var ret []string
	for _, d := range dirs {
		out := d + BundleExt
		written, err := Bundle(d, out)
		if err != nil {
			return ret, chem.ErrDecorate(err, "BundleAll")
		}
		if written {
			ret = append(ret, out)
		}
	}
	return ret, nil
}
