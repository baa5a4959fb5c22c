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

// Package control implements the maintctl subcommands on top of an
// in-process maintenance engine.
package control

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AliceO2Group/Maintenance/common/logger"
	"github.com/AliceO2Group/Maintenance/core/maintenance"
	"github.com/AliceO2Group/Maintenance/core/maintenance/script"
	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/AliceO2Group/Maintenance/core/metrics"
	"github.com/AliceO2Group/Maintenance/maintctl/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.New(logrus.StandardLogger(), app.NAME)

type ControlCall func(*cobra.Command, []string, io.Writer) error

type RunFunc func(*cobra.Command, []string)

// WrapCall buffers the output of call and prints it once the call
// returns, then exits non-zero if the call failed.
func WrapCall(call ControlCall) RunFunc {
	return func(cmd *cobra.Command, args []string) {
		var out strings.Builder
		err := call(cmd, args, &out)
		fmt.Print(out.String())
		if err != nil {
			logCallError(cmd, err)
			os.Exit(1)
		}
	}
}

// logCallError reports err under the subcommand name, not its usage line.
func logCallError(cmd *cobra.Command, err error) {
	log.WithPrefix(cmd.Name()).
		WithField("error", err).
		Error("command finished with error")
}

func ShowTable(cmd *cobra.Command, args []string, o io.Writer) error {
	asTree, _ := cmd.Flags().GetBool("tree")
	if asTree {
		drawRulesTree(maintenance.DefaultRules(), sm.ACTIVE, o)
		return nil
	}
	renderRules(maintenance.DefaultRules(), o)
	return nil
}

func ShowGraph(cmd *cobra.Command, args []string, o io.Writer) error {
	eng, err := maintenance.NewWithRules(maintenance.DefaultRules(), nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(o, eng.Graph())
	return nil
}

// Run submits each event named in args to a fresh engine, using the
// configured privilege for every request. It stops at the first rejection.
func Run(cmd *cobra.Command, args []string, o io.Writer) error {
	if len(args) == 0 {
		return errors.New("at least one event is required")
	}
	events := make([]sm.Event, 0, len(args))
	for _, arg := range args {
		evt, err := sm.EventFromString(arg)
		if err != nil {
			return err
		}
		events = append(events, evt)
	}

	privileged := viper.GetBool("privileged")
	eng := maintenance.New()
	log.WithInstance(eng.ID().String()).
		WithField("privileged", privileged).
		Debug("engine created")

	for _, evt := range events {
		src := eng.CurrentState()
		_, err := eng.Submit(sm.Request{Event: evt, Privileged: privileged})
		if err != nil {
			fmt.Fprintf(o, "%s %s: %s\n", red("rejected"), evt, err)
			fmt.Fprintf(o, "state: %s\n", colorState(eng.CurrentState()))
			printNextEvents(eng, o)
			return err
		}
		fmt.Fprintf(o, "%s %s: %s -> %s\n", green("accepted"), evt, colorState(src), colorState(eng.CurrentState()))
	}
	fmt.Fprintf(o, "state: %s\n", colorState(eng.CurrentState()))
	printNextEvents(eng, o)
	return nil
}

// Replay runs the YAML script named by args[0] against a fresh engine
// with its own metrics registry.
func Replay(cmd *cobra.Command, args []string, o io.Writer) error {
	if len(args) != 1 {
		return errors.New("exactly one script file is required")
	}
	s, err := script.Load(args[0])
	if err != nil {
		return err
	}

	collectors := metrics.NewCollectors()
	registry := prometheus.NewRegistry()
	if err = collectors.Register(registry); err != nil {
		return err
	}
	eng, err := maintenance.NewWithRules(maintenance.DefaultRules(), collectors)
	if err != nil {
		return err
	}

	accepted, replayErr := s.Replay(eng, viper.GetBool("replay.keepGoing"))

	renderHistory(eng.History(), o)
	fmt.Fprintf(o, "\n%d of %d requests accepted, state: %s\n", accepted, len(s.Requests), colorState(eng.CurrentState()))

	showMetrics, _ := cmd.Flags().GetBool("show-metrics")
	if showMetrics {
		fmt.Fprintln(o)
		if err = renderMetrics(registry, o); err != nil {
			return err
		}
	}
	return replayErr
}
