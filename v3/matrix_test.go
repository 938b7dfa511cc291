/*
 * matrix_test.go, part of gdytac.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTransform(Te *testing.T) {
	A := FromVecs([]r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: 2}})
	scale := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 3, 0, 0, 0, 4})
	A.Transform(scale)
	assert.Equal(Te, r3.Vec{X: 2, Y: 6, Z: 12}, A.Vec(0))
	assert.Equal(Te, r3.Vec{X: -2, Y: 0, Z: 8}, A.Vec(1))

	//a rotation by 90 degrees around z, to check that the operator is applied from the left.
	rot := mat.NewDense(3, 3, []float64{0, -1, 0, 1, 0, 0, 0, 0, 1})
	B := FromVecs([]r3.Vec{{X: 1}})
	B.Transform(rot)
	assert.InDelta(Te, 0.0, B.At(0, 0), 1e-15)
	assert.InDelta(Te, 1.0, B.At(0, 1), 1e-15)
}

func TestFromVecsCopy(Te *testing.T) {
	A := FromVecs([]r3.Vec{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
	require.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, r3.Vec{X: 4, Y: 5, Z: 6}, A.Vec(1))
	B := A.Copy()
	B.SetVec(0, r3.Vec{X: -1})
	assert.Equal(Te, r3.Vec{X: 1, Y: 2, Z: 3}, A.Vec(0))
	assert.Equal(Te, []r3.Vec{{X: -1}, {X: 4, Y: 5, Z: 6}}, B.Vecs())
}

func TestZerosPanics(Te *testing.T) {
	assert.Panics(Te, func() { Zeros(0) })
	assert.Panics(Te, func() { Zeros(2).Vec(2) })
}
