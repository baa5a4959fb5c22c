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

package control

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/AliceO2Group/Maintenance/core/maintenance"
	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xlab/treeprint"
)

var (
	blue   = color.New(color.FgHiBlue).SprintFunc()
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed).SprintFunc()
	grey   = color.New(color.FgWhite).SprintFunc()
)

func colorState(st sm.State) string {
	switch st {
	case sm.ACTIVE:
		return green(st.String())
	case sm.CREATE_TASK_A:
		return yellow(st.String())
	case sm.WAITING_FOR_TASK_A_COMPLETED:
		return blue(st.String())
	default:
		return red(st.String())
	}
}

func newTable(o io.Writer, fg tablewriter.Colors, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(o)
	table.SetHeader(header)
	table.SetBorder(false)
	colors := make([]tablewriter.Colors, len(header))
	for i := range colors {
		colors[i] = fg
	}
	table.SetHeaderColor(colors...)
	return table
}

func renderRules(rules maintenance.Rules, o io.Writer) {
	table := newTable(o, tablewriter.Colors{tablewriter.Bold, tablewriter.FgYellowColor},
		"state", "event", "guard", "next state")

	data := make([][]string, 0, len(rules))
	for _, r := range rules {
		guard := strings.TrimSpace(r.Guard)
		if guard == "" {
			guard = grey("none")
		}
		data = append(data, []string{colorState(r.Src), r.Evt.String(), guard, colorState(r.Dst)})
	}
	table.AppendBulk(data)
	table.Render()
}

// buildTree adds one branch per rule leaving state. States already on
// the path are printed as leaves so that cycles terminate.
func buildTree(tree *treeprint.Tree, rules maintenance.Rules, state sm.State, onPath map[sm.State]bool) {
	onPath[state] = true
	defer delete(onPath, state)

	for _, r := range rules {
		if r.Src != state {
			continue
		}
		label := r.Evt.String()
		if guard := strings.TrimSpace(r.Guard); guard != "" {
			label = fmt.Sprintf("%s [%s]", label, guard)
		}
		if onPath[r.Dst] || !hasOutgoing(rules, r.Dst) {
			(*tree).AddMetaNode(colorState(r.Dst), label)
			continue
		}
		branch := (*tree).AddMetaBranch(colorState(r.Dst), label)
		buildTree(&branch, rules, r.Dst, onPath)
	}
}

func hasOutgoing(rules maintenance.Rules, state sm.State) bool {
	for _, r := range rules {
		if r.Src == state {
			return true
		}
	}
	return false
}

func drawRulesTree(rules maintenance.Rules, initial sm.State, o io.Writer) {
	tree := treeprint.New()
	tree.SetValue(colorState(initial))
	buildTree(&tree, rules, initial, make(map[sm.State]bool))
	fmt.Fprint(o, tree.String())
}

func printNextEvents(eng *maintenance.Engine, o io.Writer) {
	if eng.CurrentState().IsTerminal() {
		fmt.Fprintln(o, grey("terminal state, no further events"))
		return
	}
	events := eng.AvailableEvents()
	names := make([]string, 0, len(events))
	for _, evt := range events {
		names = append(names, evt.String())
	}
	fmt.Fprintf(o, "next: %s\n", strings.Join(names, ", "))
}

func renderHistory(history []sm.Transition, o io.Writer) {
	if len(history) == 0 {
		fmt.Fprintln(o, "no transitions accepted")
		return
	}
	table := newTable(o, tablewriter.Colors{tablewriter.Bold, tablewriter.FgBlueColor},
		"#", "time", "event", "from", "to", "privileged")

	data := make([][]string, 0, len(history))
	for i, t := range history {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			t.Timestamp.Format(time.RFC3339),
			t.Evt.String(),
			colorState(t.Src),
			colorState(t.Dst),
			fmt.Sprintf("%t", t.Privileged),
		})
	}
	table.AppendBulk(data)
	table.Render()
}

func renderMetrics(gatherer prometheus.Gatherer, o io.Writer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	table := newTable(o, tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor},
		"metric", "labels", "value")

	data := make([][]string, 0)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%s", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			data = append(data, []string{
				mf.GetName(),
				strings.Join(labels, ","),
				fmt.Sprintf("%g", m.GetCounter().GetValue()),
			})
		}
	}
	table.AppendBulk(data)
	table.Render()
	return nil
}
