/*
 * errors.go, part of gdytac.
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

// PanicMsg is the type of the messages used in panics by this package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape           = PanicMsg("v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("v3: Index out of range")
)
