/*
Copyright © 2024 the htap2mpas authors.
This file is part of htap2mpas.

htap2mpas is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

htap2mpas is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with htap2mpas.  If not, see <http://www.gnu.org/licenses/>.*/

package htaputil

import (
	"fmt"
	"io"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jlbeidler/htap2mpas"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage string
	defaultVal  interface{}
	flagsets    []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to htap2mpas.
	options = []struct {
		name, usage string
		defaultVal  interface{}
		flagsets    []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "offsets",
			usage: `
              offsets specifies the hourly timezone offsets present in the
              gridded inventory. If empty, no timezone remapping is performed.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "temporal_report",
			usage: `
              temporal_report specifies a CSV file to write the calculated
              temporal fraction table to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "speciation_report",
			usage: `
              speciation_report specifies a CSV file to write the sector
              speciation table to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("HTAP2MPAS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.String(option.name, v, option.usage)
			case []int:
				set.IntSlice(option.name, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("htap2mpas: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "htap2mpas",
	Short: "Prepare HTAP emissions inventories for the MPAS model.",
	Long: `htap2mpas calculates hourly temporal allocation fractions and chemical
speciation fractions for HTAP emissions inventories from SMOKE-format
reference tables, for use in preparing MPAS model-ready emissions.
Configuration is provided through a configuration file (using the --config
flag) or by setting environment variables in the format 'HTAP2MPAS_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of htap2mpas.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("htap2mpas v%s\n", htap2mpas.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate the sector fraction tables.",
	Long: `run loads the reference files named in the configuration file and
calculates the temporal and speciation fraction tables for the configured
sector, optionally writing them out as CSV reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logrus.StandardLogger()
		cfg, err := ParseConfig(Cfg, log)
		if err != nil {
			return err
		}
		offsets, err := cast.ToIntSliceE(Cfg.Get("offsets"))
		if err != nil {
			return fmt.Errorf("htap2mpas: offsets: %v", err)
		}
		tables, err := Process(cfg, offsets, log)
		if err != nil {
			return err
		}
		if path := Cfg.GetString("temporal_report"); path != "" {
			err := writeReportFile(path, func(w io.Writer) error {
				return WriteTemporalReport(w, tables)
			})
			if err != nil {
				return err
			}
		}
		if path := Cfg.GetString("speciation_report"); path != "" {
			err := writeReportFile(path, func(w io.Writer) error {
				return WriteSpeciationReport(w, tables.SpecTable)
			})
			if err != nil {
				return err
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}
