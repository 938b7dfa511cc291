/*
 * matrix.go, part of gdytac.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix is a set of vectors in 3D space, one vector per row.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors. Panics if vecs < 1.
func Zeros(vecs int) *Matrix {
	if vecs < 1 {
		panic(ErrShape)
	}
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// FromVecs builds a Matrix with one row per vector in vs.
func FromVecs(vs []r3.Vec) *Matrix {
	M := Zeros(len(vs))
	for i, v := range vs {
		M.SetVec(i, v)
	}
	return M
}

//METHODS

// NVecs returns the number of vectors (rows) in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// Vec returns a copy of the ith vector.
func (F *Matrix) Vec(i int) r3.Vec {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return r3.Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

// SetVec replaces the ith vector with v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

// Vecs returns copies of all the vectors in the matrix.
func (F *Matrix) Vecs() []r3.Vec {
	ret := make([]r3.Vec, F.NVecs())
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

// Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

// Mul wraps mat.Dense.Mul to take care of the case when one of the
// arguments is also the receiver. Since the receiver is a Matrix,
// gonum could check A against F and it would not know that
// internally F.Dense==A, hence the need for this function.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if a, ok := A.(*Matrix); ok {
		A = a.Dense
	}
	if b, ok := B.(*Matrix); ok {
		B = b.Dense
	}
	if A == mat.Matrix(F.Dense) || B == mat.Matrix(F.Dense) {
		tmp := new(mat.Dense)
		tmp.Mul(A, B)
		F.Dense.Copy(tmp)
		return
	}
	F.Dense.Mul(A, B)
}

// Transform applies the 3x3 linear operator op to every vector
// in F, in place (each row r becomes op*r).
func (F *Matrix) Transform(op mat.Matrix) {
	r, c := op.Dims()
	if r != 3 || c != 3 {
		panic(ErrShape)
	}
	F.Mul(F, op.T())
}

// String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, r)
	for i := 0; i < r; i++ {
		v[i] = fmt.Sprintf("[%8.4f %8.4f %8.4f]", F.At(i, 0), F.At(i, 1), F.At(i, 2))
	}
	return strings.Join(v, "\n")
}
