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

//go:generate go run github.com/dmarkham/enumer -type=State -yaml -json -text -transform=upper -output=state_strings.go

package sm

// State is a lifecycle phase of the maintenance machine.
// The zero value is ACTIVE, so an uninitialized State is always valid.
type State int

const (
	ACTIVE State = iota
	CREATE_TASK_A
	WAITING_FOR_TASK_A_COMPLETED
)

func (s State) IsTerminal() bool {
	return s == WAITING_FOR_TASK_A_COMPLETED
}
