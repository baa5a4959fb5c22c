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

// Package sm defines the states, events and request types of the
// maintenance state machine.
package sm

import (
	"fmt"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
)

// Event names a transition a requester can ask for.
type Event string

const (
	INIT_MAINTENANCE = Event("INIT_MAINTENANCE")
	TASK_A_COMPLETED = Event("TASK_A_COMPLETED")
)

var _events = []Event{
	INIT_MAINTENANCE,
	TASK_A_COMPLETED,
}

func (e Event) String() string {
	return string(e)
}

func (e Event) IsValid() bool {
	for _, v := range _events {
		if e == v {
			return true
		}
	}
	return false
}

// Events lists every defined event in declaration order.
func Events() []Event {
	out := make([]Event, len(_events))
	copy(out, _events)
	return out
}

// EventFromString accepts snake, kebab, camel and screaming snake case
// spellings of an event name, e.g. "init-maintenance" or "TaskACompleted".
func EventFromString(s string) (Event, error) {
	evt := Event(strcase.ToScreamingSnake(strings.TrimSpace(s)))
	if !evt.IsValid() {
		names := make([]string, 0, len(_events))
		for _, v := range Events() {
			names = append(names, v.String())
		}
		return "", fmt.Errorf("unknown event %q, expected one of %s", s, strings.Join(names, ", "))
	}
	return evt, nil
}

// Request is what a caller submits to the engine. Privileged is supplied
// by the caller and trusted as given.
type Request struct {
	Event      Event
	Privileged bool
}

func (r Request) String() string {
	return fmt.Sprintf("%s (privileged: %t)", r.Event, r.Privileged)
}

// Output is the side-effect signal of a transition. No transition of the
// maintenance machine produces one yet.
type Output struct{}

type Transition struct {
	Evt        Event
	Src        State
	Dst        State
	Privileged bool
	Timestamp  time.Time
}
