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

package maintenance

import (
	"fmt"
	"strings"

	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/looplab/fsm"
)

// GuardContext is the environment guard expressions are evaluated in.
// A guard refers to its fields by name, e.g. "Privileged".
type GuardContext struct {
	Privileged bool
}

// Rule is one row of the transition table. An empty Guard always holds.
type Rule struct {
	Src   sm.State
	Evt   sm.Event
	Guard string
	Dst   sm.State
}

func (r Rule) String() string {
	return fmt.Sprintf("%s --%s--> %s", r.Src, r.Evt, r.Dst)
}

// Rules is a transition table. At most one rule may match a (Src, Evt) pair.
type Rules []Rule

// DefaultRules is the maintenance machine's table.
func DefaultRules() Rules {
	return Rules{
		{Src: sm.ACTIVE, Evt: sm.INIT_MAINTENANCE, Guard: "Privileged", Dst: sm.CREATE_TASK_A},
		{Src: sm.CREATE_TASK_A, Evt: sm.TASK_A_COMPLETED, Dst: sm.WAITING_FOR_TASK_A_COMPLETED},
	}
}

type ruleKey struct {
	src string
	evt string
}

// table is a compiled Rules value, ready to be loaded into an FSM.
type table struct {
	events fsm.Events
	guards map[ruleKey]*vm.Program // nil program means no guard
}

func (rules Rules) compile() (*table, error) {
	t := &table{
		events: make(fsm.Events, 0, len(rules)),
		guards: make(map[ruleKey]*vm.Program, len(rules)),
	}
	for _, r := range rules {
		if !r.Src.IsAState() || !r.Dst.IsAState() {
			return nil, fmt.Errorf("rule %s: unknown state", r)
		}
		if !r.Evt.IsValid() {
			return nil, fmt.Errorf("rule %s: unknown event", r)
		}
		if r.Src == r.Dst {
			return nil, fmt.Errorf("rule %s: self transitions are not supported", r)
		}
		key := ruleKey{src: r.Src.String(), evt: r.Evt.String()}
		if _, exists := t.guards[key]; exists {
			return nil, fmt.Errorf("rule %s: duplicate rule for event %s in state %s", r, r.Evt, r.Src)
		}

		var program *vm.Program
		if guard := strings.TrimSpace(r.Guard); guard != "" {
			var err error
			program, err = expr.Compile(guard, expr.Env(GuardContext{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("rule %s: cannot compile guard %q: %w", r, guard, err)
			}
		}
		t.guards[key] = program
		t.events = append(t.events, fsm.EventDesc{
			Name: r.Evt.String(),
			Src:  []string{r.Src.String()},
			Dst:  r.Dst.String(),
		})
	}
	return t, nil
}

func evaluateGuard(program *vm.Program, req sm.Request) (bool, error) {
	if program == nil {
		return true, nil
	}
	out, err := expr.Run(program, GuardContext{Privileged: req.Privileged})
	if err != nil {
		return false, err
	}
	allowed, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("guard returned %T instead of bool", out)
	}
	return allowed, nil
}
