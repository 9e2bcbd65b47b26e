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

// Package htaputil holds configuration and command-line glue for the
// htap2mpas library.
package htaputil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// ConfigError indicates a missing mandatory configuration key.
type ConfigError struct {
	// Key is the dotted path of the missing key, e.g. "temporal.tref".
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("htap2mpas: missing configuration for %s", e.Key)
}

// RunConfig holds the configuration for one htap2mpas run. Every
// recognized configuration field is declared here; ParseConfig
// enumerates them explicitly.
type RunConfig struct {
	// Sector is the processing sector name.
	Sector string
	// Year is the inventory year.
	Year string
	// InvList is the path to the inventory file list.
	InvList string
	// Case is the case abbreviation used in output naming.
	Case string

	// MrgDates is the path to the file mapping each actual date in the
	// processing period to its representative date.
	MrgDates string
	// RepApproach names the representative day approach for the sector,
	// matching a column in the MrgDates file.
	RepApproach string
	// TREF, TPROMonthly, TPROHourly, and TPROWeekly are the paths to
	// the SMOKE-format temporal reference files.
	TREF        string
	TPROMonthly string
	TPROHourly  string
	TPROWeekly  string

	// MPASRef, GridMap, and Mesh are the paths to the MPAS grid
	// description files consumed by the downstream grid writer.
	MPASRef string
	GridMap string
	Mesh    string

	// HTAPSector is the HTAP sector name used in the SCC field of the
	// reference files.
	HTAPSector string
	// Layers optionally names the inventory layers to process.
	Layers string
	// TZMask is the path to the gridded timezone offset mask.
	TZMask string

	// InvTable, GSREF, and GSPRO are the paths to the SMOKE-format
	// speciation reference files, and Mech is the name of the chemical
	// mechanism to speciate to.
	InvTable string
	GSREF    string
	GSPRO    string
	Mech     string
}

// configDefaults holds the default values of the optional configuration
// keys.
var configDefaults = map[string]string{
	"htap.layers":  "",
	"htap.tz_mask": "",
}

// getString returns the configuration value for the dotted key path,
// falling back with a warning to a default where one exists. A missing
// key with no default is a ConfigError.
func getString(cfg *viper.Viper, key string, log logrus.FieldLogger) (string, error) {
	v := cfg.Get(key)
	if v == nil {
		if d, ok := configDefaults[key]; ok {
			log.Warnf("setting %s to default value '%s'", key, d)
			return d, nil
		}
		return "", &ConfigError{Key: key}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("htap2mpas: configuration %s: %v", key, err)
	}
	return s, nil
}

// ParseConfig unmarshals a viper configuration into a RunConfig,
// enforcing the mandatory keys and defaulting the optional ones. Every
// resolved value is logged. If log is nil the logrus standard logger is
// used.
func ParseConfig(cfg *viper.Viper, log logrus.FieldLogger) (*RunConfig, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := new(RunConfig)
	fields := []struct {
		key string
		dst *string
	}{
		{"sector", &c.Sector},
		{"year", &c.Year},
		{"invlist", &c.InvList},
		{"case", &c.Case},
		{"temporal.mrgdates", &c.MrgDates},
		{"temporal.rep_approach", &c.RepApproach},
		{"temporal.tref", &c.TREF},
		{"temporal.tpro_monthly", &c.TPROMonthly},
		{"temporal.tpro_hourly", &c.TPROHourly},
		{"temporal.tpro_weekly", &c.TPROWeekly},
		{"mpas.mpasref", &c.MPASRef},
		{"mpas.gridmap", &c.GridMap},
		{"mpas.mesh", &c.Mesh},
		{"htap.htapsector", &c.HTAPSector},
		{"htap.layers", &c.Layers},
		{"htap.tz_mask", &c.TZMask},
		{"speciation.invtable", &c.InvTable},
		{"speciation.gsref", &c.GSREF},
		{"speciation.gspro", &c.GSPRO},
		{"speciation.mech", &c.Mech},
	}
	for _, f := range fields {
		v, err := getString(cfg, f.key, log)
		if err != nil {
			return nil, err
		}
		*f.dst = v
		log.Infof("config: %s = %s", f.key, v)
	}
	return c, nil
}

// LoadConfig reads the configuration file at path into a RunConfig.
func LoadConfig(path string, log logrus.FieldLogger) (*RunConfig, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{"file": path}).Info("loading configuration")
	cfg := viper.New()
	cfg.SetConfigFile(path)
	if err := cfg.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("htap2mpas: problem reading configuration file: %v", err)
	}
	return ParseConfig(cfg, log)
}
