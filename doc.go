/*
 * doc.go, part of gdytac.
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

/*Package chem is the main package of gdytac. It provides the atom, molecule and
lattice structures used to build periodic models of graphdiyne catalysts with three
metal sites, and the geometric functions needed to prepare them for CASTEP.



	**gdytac capabilities**


    Reads and writes MSI (Materials Studio / Cerius2) model files (package msi).

    Substitutes the three designated metal sites of a seed model with every
	combination of transition metals and rare earths (package substitute).

    Converts cartesian coordinates to fractional ones for triclinic cells, and
	rotates a model so its lattice vector a lies along the x axis.

    Writes complete CASTEP seed files (cell, param, kptaux, trjaux, potentials,
	LSF job script) for each model, concurrently and idempotently (packages
	castep and batch).


Atoms keep their cartesian position as a gonum r3.Vec. The lattice vectors are
the columns of a 3x3 gonum Dense. Bulk coordinate operations use v3.Matrix, where
each row is one point in space.

Functions that take an index panic if it is out of range. Everything that can
fail because of the input (files, Ids, lattice vectors) returns an *Error, whose
Kind tells parse, lookup, IO and degenerate geometry problems apart.*/
package chem
