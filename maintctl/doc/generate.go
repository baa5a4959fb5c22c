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

// Command generate writes the maintctl reference documentation as one
// Markdown file per subcommand.
package main

import (
	"flag"
	"os"

	"github.com/AliceO2Group/Maintenance/common/logger"
	"github.com/AliceO2Group/Maintenance/maintctl/app"
	"github.com/AliceO2Group/Maintenance/maintctl/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra/doc"
)

var log = logger.New(logrus.StandardLogger(), app.NAME)

func main() {
	outDir := flag.String("out", "./", "directory to write the Markdown files to")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.WithField("dir", *outDir).Fatal(err)
	}

	rootCmd := cmd.GetRootCmd()
	rootCmd.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(rootCmd, *outDir); err != nil {
		log.Fatal(err)
	}
	log.WithField("dir", *outDir).Info("documentation generated")
}
