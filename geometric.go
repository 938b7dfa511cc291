/*
 * geometric.go, part of gdytac.
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

package chem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 1e-12 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// volzero is the smallest cell volume (in cubic Angstrom) considered non-degenerate.
const volzero float64 = 1e-8

// Angle takes 2 vectors and calculates the angle in radians between them.
// It returns NaN if one of the vectors has zero length.
func Angle(v1, v2 r3.Vec) float64 {
	n1, n2 := r3.Norm(v1), r3.Norm(v2)
	if n1 == 0 || n2 == 0 {
		return math.NaN()
	}
	//atan2 of |v1 x v2| and v1.v2 is the arccosine of the normalized dot
	//product, but it stays accurate for nearly (anti)parallel vectors.
	angle := math.Atan2(r3.Norm(r3.Cross(v1, v2)), r3.Dot(v1, v2))
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

func columns(vectors mat.Matrix) (a, b, c r3.Vec) {
	col := func(i int) r3.Vec {
		return r3.Vec{X: vectors.At(0, i), Y: vectors.At(1, i), Z: vectors.At(2, i)}
	}
	return col(0), col(1), col(2)
}

// checkCell returns a DegenerateGeometryError if the columns of vectors
// don't span a non-zero volume.
func checkCell(vectors mat.Matrix) error {
	a, b, c := columns(vectors)
	for i, v := range []r3.Vec{a, b, c} {
		n := r3.Norm(v)
		if n <= appzero || math.IsNaN(n) || math.IsInf(n, 0) {
			return NewError(DegenerateGeometryError, "", fmt.Sprintf("lattice vector %c has length %g", "abc"[i], n), "checkCell")
		}
	}
	gamma := Angle(a, b)
	if math.Abs(math.Sin(gamma)) <= appzero {
		return NewError(DegenerateGeometryError, "", "lattice vectors a and b are collinear", "checkCell")
	}
	vol := r3.Dot(a, r3.Cross(b, c))
	if math.Abs(vol) <= volzero {
		return NewError(DegenerateGeometryError, "", fmt.Sprintf("cell volume %g is zero", vol), "checkCell")
	}
	return nil
}

// CartesianMatrix returns the matrix that takes fractional coordinates to
// cartesian ones, for the cell with the lattice vectors given as the columns
// of vectors, in the standard orientation (a along the x axis, b in the xy plane).
func CartesianMatrix(vectors mat.Matrix) (*mat.Dense, error) {
	if r, c := vectors.Dims(); r != 3 || c != 3 {
		return nil, NewError(DegenerateGeometryError, "", fmt.Sprintf("lattice vectors must be 3x3, got %dx%d", r, c), "CartesianMatrix")
	}
	if err := checkCell(vectors); err != nil {
		return nil, ErrDecorate(err, "CartesianMatrix")
	}
	a, b, c := columns(vectors)
	la, lb, lc := r3.Norm(a), r3.Norm(b), r3.Norm(c)
	alpha, beta, gamma := Angle(b, c), Angle(a, c), Angle(a, b)
	vol := r3.Dot(a, r3.Cross(b, c))
	singamma, cosgamma := math.Sincos(gamma)
	tocart := mat.NewDense(3, 3, []float64{
		la, lb * cosgamma, lc * math.Cos(beta),
		0, lb * singamma, lc * (math.Cos(alpha) - math.Cos(beta)*cosgamma) / singamma,
		0, 0, vol / (la * lb * singamma),
	})
	return tocart, nil
}

// FractionalMatrix returns the matrix that takes cartesian coordinates (in the
// standard orientation) to fractional ones, i.e., the inverse of CartesianMatrix.
// It returns a DegenerateGeometryError for cells with zero volume or collinear
// a and b.
func FractionalMatrix(vectors mat.Matrix) (*mat.Dense, error) {
	tocart, err := CartesianMatrix(vectors)
	if err != nil {
		return nil, ErrDecorate(err, "FractionalMatrix")
	}
	tofrac := new(mat.Dense)
	if err := tofrac.Inverse(tocart); err != nil {
		//mat returns a finite Condition error for ill-conditioned, but invertible, matrices.
		if cond, ok := err.(mat.Condition); !ok || math.IsInf(float64(cond), 0) {
			return nil, WrapError(DegenerateGeometryError, "", err, "FractionalMatrix")
		}
	}
	return tofrac, nil
}

// RotateToStandardOrientation rotates L rigidly so that its lattice vector a
// points along the x axis. The rotation axis is a x X and the angle is the one between
// a and X. Only a is guaranteed to be aligned afterwards. It does nothing if a
// is already aligned, so it is idempotent.
func RotateToStandardOrientation(L *Lattice) {
	xaxis := r3.Vec{X: 1}
	a := L.Vector(0)
	angle := Angle(a, xaxis)
	if angle == 0 || math.IsNaN(angle) {
		return
	}
	axis := r3.Cross(a, xaxis)
	if r3.Norm(axis) <= appzero {
		//a points along -x, any axis perpendicular to x will do.
		axis = r3.Vec{Z: 1}
	}
	L.Rotate(r3.NewRotation(angle, axis))
}
