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
	"errors"
	"fmt"

	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/looplab/fsm"
)

// ErrTransitionRejected is the only failure kind of Submit. Callers
// should test for it with errors.Is.
var ErrTransitionRejected = errors.New("transition rejected")

var errGuardFailed = errors.New("guard not satisfied")

// RejectedError describes a rejected request. Reason is informational
// and does not distinguish failure kinds.
type RejectedError struct {
	State  sm.State
	Event  sm.Event
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: event %s not permitted in state %s: %s", ErrTransitionRejected, e.Event, e.State, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return ErrTransitionRejected
}

func newRejectedError(state sm.State, evt sm.Event, cause error) *RejectedError {
	reason := cause.Error()
	switch err := cause.(type) {
	case fsm.CanceledError:
		if err.Err != nil {
			reason = err.Err.Error()
		} else {
			reason = errGuardFailed.Error()
		}
	case fsm.InvalidEventError:
		reason = "no transition defined from this state"
	case fsm.UnknownEventError:
		reason = "no transition defined for this event"
	}
	return &RejectedError{
		State:  state,
		Event:  evt,
		Reason: reason,
	}
}
