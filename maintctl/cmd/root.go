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

// Package cmd contains all the entry points for command line
// subcommands, following library convention.
package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/AliceO2Group/Maintenance/common/logger"
	"github.com/AliceO2Group/Maintenance/common/product"
	"github.com/AliceO2Group/Maintenance/maintctl/app"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.New(logrus.StandardLogger(), app.NAME)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   app.NAME,
	Short: app.PRETTY_FULLNAME,
	Long: fmt.Sprintf(`The %s is a command line program for driving the %s.

Every invocation works on a fresh, in-process state machine starting in ACTIVE.`, app.PRETTY_FULLNAME, product.PRETTY_FULLNAME),
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithField("error", err).Fatal("cannot run command")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.Set("version", product.VERSION_BUILD)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("configuration file (default $HOME/.config/%s/settings.yaml)", app.NAME))
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show verbose output for debug purposes")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("verbose", false)
	viper.SetDefault("privileged", false)
	viper.SetDefault("replay.keepGoing", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.WithField("error", err).Error("cannot find home directory")
			os.Exit(1)
		}

		// Search config in .config/maintctl directory with name "settings.yaml"
		viper.AddConfigPath(path.Join(home, ".config/"+app.NAME))
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix(app.NAME)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configErr := viper.ReadInConfig()

	level := viper.GetString("log.level")
	if viper.GetBool("verbose") {
		level = logrus.DebugLevel.String()
	}
	if err := logger.Setup(logrus.StandardLogger(), os.Stderr, level, false); err != nil {
		log.WithField("level", level).Warn("invalid log level, keeping default")
	}

	if configErr == nil {
		log.WithField("file", viper.ConfigFileUsed()).
			Debug("configuration loaded")
	} else if cfgFile != "" {
		log.WithField("error", configErr).Error("cannot read configuration file")
		os.Exit(1)
	}
}
