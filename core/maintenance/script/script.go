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

// Package script loads sequences of transition requests from YAML and
// replays them against a maintenance engine.
package script

import (
	"fmt"
	"os"

	"github.com/AliceO2Group/Maintenance/common/logger"
	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logger.New(logrus.StandardLogger(), "script")

type Submitter interface {
	Submit(req sm.Request) (*sm.Output, error)
}

// Script is an ordered list of requests.
type Script struct {
	Requests []sm.Request
}

type document struct {
	Requests []struct {
		Event      string `yaml:"event"`
		Privileged bool   `yaml:"privileged"`
	} `yaml:"requests"`
}

// Parse decodes a YAML script. Event names may use any case convention.
func Parse(data []byte) (*Script, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse script: %w", err)
	}

	s := &Script{Requests: make([]sm.Request, 0, len(doc.Requests))}
	for i, item := range doc.Requests {
		evt, err := sm.EventFromString(item.Event)
		if err != nil {
			return nil, fmt.Errorf("request #%d: %w", i+1, err)
		}
		s.Requests = append(s.Requests, sm.Request{Event: evt, Privileged: item.Privileged})
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read script: %w", err)
	}
	return Parse(data)
}

// Replay submits the requests in order and returns how many were
// accepted. It stops at the first rejection unless keepGoing is set, in
// which case every rejection is collected into a *multierror.Error.
func (s *Script) Replay(target Submitter, keepGoing bool) (accepted int, err error) {
	var rejections *multierror.Error
	for i, req := range s.Requests {
		log.WithFields(logrus.Fields{
			"index":      i + 1,
			"event":      req.Event,
			"privileged": req.Privileged,
		}).Debug("submitting request")

		if _, submitErr := target.Submit(req); submitErr != nil {
			submitErr = fmt.Errorf("request #%d: %w", i+1, submitErr)
			if !keepGoing {
				return accepted, submitErr
			}
			rejections = multierror.Append(rejections, submitErr)
			continue
		}
		accepted++
	}
	return accepted, rejections.ErrorOrNil()
}
