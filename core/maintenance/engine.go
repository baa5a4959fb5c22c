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

// Package maintenance implements the maintenance transition engine: a
// three-state machine whose transitions are guarded by the privilege of
// the requester.
package maintenance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AliceO2Group/Maintenance/common/logger"
	"github.com/AliceO2Group/Maintenance/common/utils/uid"
	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/AliceO2Group/Maintenance/core/metrics"
	"github.com/antonmedv/expr/vm"
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

var log = logger.New(logrus.StandardLogger(), "maintenance")

var defaultTable = func() *table {
	t, err := DefaultRules().compile()
	if err != nil {
		panic(fmt.Sprintf("invalid default transition table: %s", err))
	}
	return t
}()

// Engine owns the current state of one maintenance machine. It is safe
// for concurrent use.
type Engine struct {
	mu      sync.RWMutex
	id      uid.ID
	sm      *fsm.FSM
	guards  map[ruleKey]*vm.Program
	metrics *metrics.Collectors
	history []sm.Transition
}

// New returns an engine in state ACTIVE, driven by DefaultRules and
// reporting to the globally registered collectors.
func New() *Engine {
	metrics.Register()
	return newEngine(defaultTable, metrics.DefaultCollectors)
}

// NewWithRules builds an engine from a custom table. A nil m disables
// metrics.
func NewWithRules(rules Rules, m *metrics.Collectors) (*Engine, error) {
	t, err := rules.compile()
	if err != nil {
		return nil, err
	}
	return newEngine(t, m), nil
}

func newEngine(t *table, m *metrics.Collectors) *Engine {
	eng := &Engine{
		id:      uid.New(),
		guards:  t.guards,
		metrics: m,
	}
	eng.sm = fsm.NewFSM(
		sm.ACTIVE.String(),
		t.events,
		fsm.Callbacks{
			"before_event": func(_ context.Context, e *fsm.Event) {
				eng.checkGuard(e)
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.WithInstance(eng.id.String()).
					WithFields(logrus.Fields{
						"event": e.Event,
						"src":   e.Src,
						"dst":   e.Dst,
					}).
					Debug("state changed")
			},
		},
	)
	return eng
}

// checkGuard runs inside the FSM's before_event step. The FSM has
// already matched (Src, Evt) to a rule, so only the guard is left.
func (eng *Engine) checkGuard(e *fsm.Event) {
	program := eng.guards[ruleKey{src: e.Src, evt: e.Event}]
	if program == nil {
		return
	}
	var req sm.Request
	if len(e.Args) > 0 {
		req, _ = e.Args[0].(sm.Request)
	}
	allowed, err := evaluateGuard(program, req)
	if err != nil {
		e.Cancel(err)
		return
	}
	if !allowed {
		e.Cancel(errGuardFailed)
	}
}

func (eng *Engine) ID() uid.ID {
	return eng.id
}

func (eng *Engine) CurrentState() sm.State {
	eng.mu.RLock()
	defer eng.mu.RUnlock()
	return eng.currentState()
}

func (eng *Engine) currentState() sm.State {
	// the FSM only ever holds names produced by sm.State.String
	state, _ := sm.StateString(eng.sm.Current())
	return state
}

// Submit evaluates req against the transition table and commits the
// target state if a rule matches and its guard holds. Otherwise the
// state is left untouched and the returned error satisfies
// errors.Is(err, ErrTransitionRejected). No transition produces an
// Output, so the first return value is always nil.
func (eng *Engine) Submit(req sm.Request) (*sm.Output, error) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	src := eng.currentState()
	err := eng.sm.Event(context.Background(), req.Event.String(), req)
	if err != nil {
		eng.metrics.ObserveRejected(src, req.Event)
		return nil, newRejectedError(src, req.Event, err)
	}

	dst := eng.currentState()
	eng.history = append(eng.history, sm.Transition{
		Evt:        req.Event,
		Src:        src,
		Dst:        dst,
		Privileged: req.Privileged,
		Timestamp:  time.Now(),
	})
	eng.metrics.ObserveAccepted(src, req.Event)
	return nil, nil
}

// History returns the accepted transitions, oldest first.
func (eng *Engine) History() []sm.Transition {
	eng.mu.RLock()
	defer eng.mu.RUnlock()
	out := make([]sm.Transition, len(eng.history))
	copy(out, eng.history)
	return out
}

// AvailableEvents lists the events that have a rule from the current
// state. Guards are not evaluated.
func (eng *Engine) AvailableEvents() []sm.Event {
	eng.mu.RLock()
	defer eng.mu.RUnlock()
	names := eng.sm.AvailableTransitions()
	sort.Strings(names)
	events := make([]sm.Event, 0, len(names))
	for _, name := range names {
		events = append(events, sm.Event(name))
	}
	return events
}

// Graph renders the transition table as a Graphviz digraph.
func (eng *Engine) Graph() string {
	eng.mu.RLock()
	defer eng.mu.RUnlock()
	return fsm.Visualize(eng.sm)
}
