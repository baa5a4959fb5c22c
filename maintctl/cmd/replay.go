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

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "replay a YAML script of requests",
	Long: `The replay command submits the requests listed in a YAML script to a state machine
in ACTIVE and prints the accepted transitions.

Script format:

  requests:
    - event: INIT_MAINTENANCE
      privileged: true
    - event: task-a-completed

By default the replay stops at the first rejected request.`,
	Args: cobra.ExactArgs(1),
	Run:  control.WrapCall(control.Replay),
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolP("keep-going", "k", false, "continue past rejected requests and report them all at the end")
	replayCmd.Flags().Bool("show-metrics", false, "print the transition counters after the replay")
	viper.BindPFlag("replay.keepGoing", replayCmd.Flags().Lookup("keep-going"))
}
