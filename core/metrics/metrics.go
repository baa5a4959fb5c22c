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

// Package metrics holds the Prometheus collectors of the maintenance
// state machine.
package metrics

import (
	"sync"

	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Subsystem = "maintenance_fsm"
)

// Collectors counts the outcome of every submitted transition request.
type Collectors struct {
	Accepted *prometheus.CounterVec
	Rejected *prometheus.CounterVec
}

// NewCollectors returns unregistered collectors.
func NewCollectors() *Collectors {
	return &Collectors{
		Accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "transitions_accepted_total",
			Help:      "The number of accepted transitions, by source state and event.",
		}, []string{"state", "event"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "transitions_rejected_total",
			Help:      "The number of rejected transition requests, by current state and event.",
		}, []string{"state", "event"}),
	}
}

// Register adds the collectors to reg. Calling it twice on the same
// registry fails with prometheus.AlreadyRegisteredError.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	if err := reg.Register(c.Accepted); err != nil {
		return err
	}
	if err := reg.Register(c.Rejected); err != nil {
		reg.Unregister(c.Accepted)
		return err
	}
	return nil
}

// The Observe methods are no-ops on a nil receiver.

func (c *Collectors) ObserveAccepted(src sm.State, evt sm.Event) {
	if c == nil {
		return
	}
	c.Accepted.WithLabelValues(src.String(), evt.String()).Inc()
}

func (c *Collectors) ObserveRejected(current sm.State, evt sm.Event) {
	if c == nil {
		return
	}
	c.Rejected.WithLabelValues(current.String(), evt.String()).Inc()
}

var (
	DefaultCollectors = NewCollectors()

	registerMetrics sync.Once
)

// Register publishes DefaultCollectors on the global Prometheus registry.
func Register() {
	registerMetrics.Do(func() {
		prometheus.MustRegister(DefaultCollectors.Accepted)
		prometheus.MustRegister(DefaultCollectors.Rejected)
	})
}
