/*
 * script.go, part of gdytac.
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
	"fmt"
	"io"

	chem "github.com/gdytac/gdytac"
)

// ScriptTemplate describes the LSF job script that runs CASTEP for one model.
type ScriptTemplate struct {
	FileName  string `yaml:"file_name" validate:"required"`
	AppName   string `yaml:"app_name" validate:"required"`
	NP        int    `yaml:"np" validate:"gte=1"`
	NPPerNode int    `yaml:"np_per_node" validate:"gte=1"`
	OMPThread int    `yaml:"omp_threads" validate:"gte=1"`
	Run       string `yaml:"run"`
	Command   string `yaml:"command" validate:"required"` //the CASTEP launcher
}

// DefaultScript returns the script used with Materials Studio 7.0 on the YW cluster.
func DefaultScript() ScriptTemplate {
	return ScriptTemplate{
		FileName:  "MS70_YW_CASTEP.lsf",
		AppName:   "intelY_mid",
		NP:        12,
		NPPerNode: 12,
		OMPThread: 1,
		Run:       "RAW",
		Command:   "/home-yw/Soft/msi/MS70/MaterialsStudio7.0/etc/CASTEP/bin/RunCASTEP.sh",
	}
}

// Write writes the script for the seed name stem.
func (S ScriptTemplate) Write(w io.Writer, stem string) error {
	_, err := fmt.Fprintf(w, "APP_NAME=%s\nNP=%d\nNP_PER_NODE=%d\nOMP_NUM_THREADS=%d\nRUN=%q\n\n%s -np $NP %s",
		S.AppName, S.NP, S.NPPerNode, S.OMPThread, S.Run, S.Command, stem)
	if err != nil {
		return chem.WrapError(chem.IOError, S.FileName, err, "ScriptTemplate.Write")
	}
	return nil
}
