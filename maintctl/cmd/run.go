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
	"github.com/spf13/viper"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:     "run EVENT [EVENT...]",
	Aliases: []string{"r"},
	Short:   "submit a sequence of events",
	Long: `The run command creates a state machine in ACTIVE and submits the given events
in order, stopping at the first rejected one.

Event names may be written in any case convention, for instance
` + "`init-maintenance`, `InitMaintenance` or `INIT_MAINTENANCE`" + `.
Examples:
 * ` + "`maintctl run --privileged init-maintenance task-a-completed`" + `
 * ` + "`maintctl run init-maintenance`" + ` - rejected, maintenance requires a privileged requester`,
	Args: cobra.MinimumNArgs(1),
	Run:  control.WrapCall(control.Run),
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("privileged", "p", false, "submit the events as a privileged requester")
	viper.BindPFlag("privileged", runCmd.Flags().Lookup("privileged"))
}
