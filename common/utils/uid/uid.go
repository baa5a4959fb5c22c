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

// Package uid generates the short, time-ordered IDs that label state
// machine instances in logs and transition history.
package uid

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/osamingo/indigo"
	"github.com/pborman/uuid"
	"github.com/rs/xid"
)

type ID string

const fallbackMachineID uint16 = 42

var (
	uidGen     *indigo.Generator
	uidGenOnce sync.Once
)

// machineID derives a uint16 from /etc/machine-id (or the platform
// equivalent) so that IDs generated on different hosts don't collide.
// The first 10 bits of a UUID NodeID are clock-dependent, so only the
// first 2 bytes of the node block are used.
func machineID() uint16 {
	id, err := machineid.ID()
	if err != nil {
		return fallbackMachineID
	}
	parsed := uuid.Parse(id)
	if parsed == nil {
		return fallbackMachineID
	}
	node := parsed.NodeID()
	if len(node) < 2 {
		return fallbackMachineID
	}
	return binary.BigEndian.Uint16(node[0:2])
}

func generator() *indigo.Generator {
	uidGenOnce.Do(func() {
		mid := machineID()
		uidGen = indigo.New(
			nil,
			indigo.StartTime(time.Unix(1257894000, 0)), // Go epoch
			indigo.MachineID(func() (uint16, error) { return mid, nil }),
		)
	})
	return uidGen
}

func New() ID {
	id, err := generator().NextID()
	if err != nil {
		return ID(xid.New().String())
	}
	return ID(id)
}

func (u ID) String() string {
	return string(u)
}
