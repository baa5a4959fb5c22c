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

// Package product holds the name and version of the maintenance tools.
package product

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// parseVersionFile reads VERSION_MAJOR/MINOR/PATCH := x lines, as written
// by the Makefile, and overrides the matching ldflags defaults.
func parseVersionFile(contents string) {
	for _, line := range strings.Split(contents, "\n") {
		key, value, found := strings.Cut(line, ":=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "VERSION_MAJOR":
			VERSION_MAJOR = value
		case "VERSION_MINOR":
			VERSION_MINOR = value
		case "VERSION_PATCH":
			VERSION_PATCH = value
		}
	}
}

func fillBuildFromGit(localRepoPath string) {
	// git rev-parse --short HEAD, best effort
	r, err := git.PlainOpen(localRepoPath)
	if err != nil {
		return
	}
	h, err := r.ResolveRevision(plumbing.Revision("HEAD"))
	if err != nil {
		return
	}
	BUILD = h.String()[:7]
}

// fillFromSourceTree takes the version from basePath/VERSION and the
// build hash from the git checkout at basePath, when present.
func fillFromSourceTree(basePath string) {
	if contents, err := os.ReadFile(filepath.Join(basePath, "VERSION")); err == nil {
		parseVersionFile(string(contents))
	}
	fillBuildFromGit(basePath)
}

func init() {
	// built with go build directly instead of make
	if VERSION_MAJOR == "0" && VERSION_MINOR == "0" && VERSION_PATCH == "0" && BUILD == "" {
		if ex, err := os.Executable(); err == nil {
			fillFromSourceTree(filepath.Dir(filepath.Dir(ex)))
		}
	}

	VERSION = strings.Join([]string{VERSION_MAJOR, VERSION_MINOR, VERSION_PATCH}, ".")
	VERSION_BUILD = VERSION
	if BUILD != "" {
		VERSION_BUILD = strings.Join([]string{VERSION, BUILD}, "-")
	}
}

var ( // Acquired from -ldflags="-X=..." in Makefile
	VERSION_MAJOR = "0"
	VERSION_MINOR = "0"
	VERSION_PATCH = "0"
	BUILD         = ""
)

var (
	NAME             = "maintenance"
	PRETTY_SHORTNAME = "O² Maintenance"
	PRETTY_FULLNAME  = "ALICE O² Maintenance State Machine"
	VERSION          string
	VERSION_BUILD    string
)
