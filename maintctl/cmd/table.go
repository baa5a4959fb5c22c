/*
 * === This file is part of ALICE O² ===
 *
 * Copyright 2026 CERN and copyright holders of ALICE O².
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 * In applying this license CERN does not waive the privileges and
 * immunities granted to it by virtue of its status as an
 * Intergovernmental Organization or submit itself to any jurisdiction.
 */

package cmd

import (
	"github.com/AliceO2Group/Maintenance/maintctl/control"
	"github.com/spf13/cobra"
)

// tableCmd represents the table command
var tableCmd = &cobra.Command{
	Use:     "table",
	Aliases: []string{"rules", "t"},
	Short:   "show the guarded transition table",
	Long: `The table command lists every transition rule of the maintenance state machine:
the state it applies in, the event that triggers it, the guard that must hold and the
state it leads to. Any other combination of state and event is rejected.

With --tree, the states reachable from ACTIVE are drawn as a tree, each branch
labelled with its event and guard.`,
	Run: control.WrapCall(control.ShowTable),
}

func init() {
	rootCmd.AddCommand(tableCmd)

	tableCmd.Flags().BoolP("tree", "t", false, "show the states reachable from ACTIVE as a tree instead")
}
