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
	"github.com/sirupsen/logrus"

	"github.com/jlbeidler/htap2mpas"
)

// Tables holds the fraction tables produced by one htap2mpas run, ready
// to be handed to an MPAS grid writer.
type Tables struct {
	// TemporalFracs is the month to hour fraction table, one row per
	// representative date and hour.
	TemporalFracs []htap2mpas.HourFrac

	// TZFracs is the timezone-aware fraction table. It is nil when no
	// timezone offsets were requested.
	TZFracs []htap2mpas.TZHourFrac

	// SpecTable is the pollutant to model species fraction table for
	// the sector.
	SpecTable []htap2mpas.SpecRecord
}

// Process loads the reference files named in cfg and calculates the
// temporal and speciation fraction tables for the configured HTAP
// sector. offsets gives the hourly timezone offsets present in the
// gridded inventory; if it is empty, no timezone remapping is
// performed. Processing stops at the first error. If log is nil the
// logrus standard logger is used.
func Process(cfg *RunConfig, offsets []int, log logrus.FieldLogger) (*Tables, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"sector":       cfg.HTAPSector,
		"rep_approach": cfg.RepApproach,
	}).Info("processing sector")

	temporal, err := htap2mpas.NewTemporal(cfg.HTAPSector, cfg.RepApproach, log)
	if err != nil {
		return nil, err
	}
	if err := temporal.LoadTREFFile(cfg.TREF); err != nil {
		return nil, err
	}
	if err := temporal.LoadMonthlyFile(cfg.TPROMonthly); err != nil {
		return nil, err
	}
	if err := temporal.LoadWeeklyFile(cfg.TPROWeekly); err != nil {
		return nil, err
	}
	if err := temporal.LoadHourlyFile(cfg.TPROHourly); err != nil {
		return nil, err
	}
	if err := temporal.LoadDatesFile(cfg.MrgDates); err != nil {
		return nil, err
	}

	o := new(Tables)
	o.TemporalFracs, err = temporal.CalcMonthToHour()
	if err != nil {
		return nil, err
	}
	if len(offsets) > 0 {
		o.TZFracs, err = temporal.MakeTZAware(o.TemporalFracs, offsets)
		if err != nil {
			return nil, err
		}
	}

	speciation := htap2mpas.NewSpeciation(cfg.HTAPSector, log)
	if err := speciation.LoadGSREFFile(cfg.GSREF); err != nil {
		return nil, err
	}
	if err := speciation.LoadGSPROFile(cfg.GSPRO); err != nil {
		return nil, err
	}
	o.SpecTable, err = speciation.SpecTable()
	if err != nil {
		return nil, err
	}
	return o, nil
}
