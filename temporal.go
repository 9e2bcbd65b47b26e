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

package htap2mpas

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Temporal calculates hourly temporal allocation fractions for one HTAP
// sector from SMOKE-format temporal reference tables. The reference
// tables must be loaded with the Load* methods before fractions can be
// calculated.
type Temporal struct {
	// Sector is the HTAP sector name used in the SCC field of the TREF.
	Sector string

	// Approach is the representative day approach used for this sector.
	Approach RepApproach

	Log logrus.FieldLogger

	tref    []TREFRecord
	monthly []ProfileFrac
	weekly  []ProfileFrac
	hourly  []ProfileFrac
	dates   []DateMapRecord
}

// NewTemporal returns a new Temporal for the given HTAP sector.
// repApproach names the representative day approach used for the sector,
// matching a column in the mrgdates file; commonly used approaches for
// HTAP are aveday_N (one representative day per month), mwdss_N (four
// representative days per month), and all_N (all days). If log is nil
// the logrus standard logger is used.
func NewTemporal(sector, repApproach string, log logrus.FieldLogger) (*Temporal, error) {
	a, err := ParseRepApproach(repApproach)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Temporal{Sector: sector, Approach: a, Log: log}, nil
}

// HourFrac is the fraction of monthly emissions allocated to one hour of
// a representative date.
type HourFrac struct {
	Date time.Time
	Hour int
	Frac float64
}

// TZHourFrac is the fraction of monthly emissions allocated to one UTC
// hour of a date under a fixed hourly timezone offset.
type TZHourFrac struct {
	Date   time.Time
	Hour   int
	Offset int
	Frac   float64
}

// dateHour keys a fraction table row. All dates are UTC midnights.
type dateHour struct {
	date time.Time
	hour int
}

// CalcMonthToHour calculates the month to hour temporal fractions as one
// row per representative date and hour, sorted by date then hour. The
// TREF, weekly and hourly profiles, and merge dates must be loaded
// first. For each representative date,
//
//	frac = (7 / days in month) * day of week fraction * hourly fraction
//
// where the 7/days in month factor converts the day of week fraction
// from a fraction of the week to a fraction of the month, assuming the
// weeks are uniformly distributed across the month. The day of week used
// for a representative date is that of the first actual date mapped to
// it.
func (t *Temporal) CalcMonthToHour() ([]HourFrac, error) {
	required := []struct {
		name   string
		loaded bool
	}{
		{"tref", t.tref != nil},
		{"weekly", t.weekly != nil},
		{"hourly", t.hourly != nil},
		{"dates", t.dates != nil},
	}
	for _, r := range required {
		if !r.loaded {
			err := fmt.Errorf("htap2mpas: must load %s before temporal calculation: %w", r.name, ErrNotLoaded)
			t.Log.Error(err)
			return nil, err
		}
	}
	wProf, err := t.profForLevel("WEEKLY")
	if err != nil {
		return nil, err
	}
	hProf, err := t.profForLevel("ALLDAY")
	if err != nil {
		return nil, err
	}
	// Month to day fractions for this sector's weekly profile.
	monthToDay := make(map[int]float64)
	for _, p := range t.weekly {
		if p.Prof == wProf {
			monthToDay[p.Period] = p.Frac
		}
	}
	// Day to hour fractions for this sector's diurnal profile.
	dayToHour := make([]ProfileFrac, 0, 24)
	for _, p := range t.hourly {
		if p.Prof == hProf {
			dayToHour = append(dayToHour, p)
		}
	}
	sort.SliceStable(dayToHour, func(i, j int) bool { return dayToHour[i].Period < dayToHour[j].Period })

	// Distinct representative dates, each with the day of week of the
	// first actual date that maps to it.
	repSeen := make(map[time.Time]bool)
	repDates := make([]DateMapRecord, 0)
	for _, d := range t.dates {
		if !repSeen[d.RepDate] {
			repSeen[d.RepDate] = true
			repDates = append(repDates, d)
		}
	}

	fracs := make([]HourFrac, 0, len(repDates)*24)
	for _, d := range repDates {
		wfrac, ok := monthToDay[d.DOW]
		if !ok {
			return nil, fmt.Errorf("htap2mpas: weekly profile %s has no fraction for day of week %d", wProf, d.DOW)
		}
		monthFrac := 7 / float64(daysInMonth(d.RepDate)) * wfrac
		for _, h := range dayToHour {
			fracs = append(fracs, HourFrac{
				Date: d.RepDate,
				Hour: h.Period,
				Frac: monthFrac * h.Frac,
			})
		}
	}
	sort.SliceStable(fracs, func(i, j int) bool {
		if !fracs[i].Date.Equal(fracs[j].Date) {
			return fracs[i].Date.Before(fracs[j].Date)
		}
		return fracs[i].Hour < fracs[j].Hour
	})
	return fracs, nil
}

// MakeTZAware remaps the hourly fraction table fracs so that the UTC
// date and hour of each row select the local time fraction under each of
// the given hourly timezone offsets. One row is created per input row
// per offset, keeping the input UTC date and hour and carrying the
// fraction of the matched local date and hour. Rows whose local date and
// hour fall outside the fraction table are dropped.
//
// How the shifted local time selects a local date depends on the
// representative day approach: an average day approach keeps the date
// unchanged, an all days approach uses the calendar date of the shifted
// time, and the week and mwdss approaches remap through the day of week
// and month onto a representative date present in fracs. The mwdss
// approach first collapses Tuesday through Friday onto Tuesday, which
// share a single representative day in that approach.
//
// This assumes the input is monthly inventories rather than annual;
// annual inventories allow shifting back to a previous month.
func (t *Temporal) MakeTZAware(fracs []HourFrac, tzs []int) ([]TZHourFrac, error) {
	fracIndex := make(map[dateHour]float64, len(fracs))
	for _, f := range fracs {
		fracIndex[dateHour{f.Date, f.Hour}] = f.Frac
	}

	// Representative date for each (day of week, month) present in the
	// fraction table, used by the week and mwdss approaches.
	type dowMonth struct {
		dow   int
		month int
	}
	dowMap := make(map[dowMonth]time.Time)
	dateSeen := make(map[time.Time]bool)
	for _, f := range fracs {
		if dateSeen[f.Date] {
			continue
		}
		dateSeen[f.Date] = true
		k := dowMonth{mondayWeekday(f.Date), int(f.Date.Month())}
		if _, ok := dowMap[k]; !ok {
			dowMap[k] = f.Date
		}
	}

	t.Log.WithFields(logrus.Fields{
		"sector":  t.Sector,
		"offsets": len(tzs),
	}).Info("remapping fractions to timezone offsets")

	o := make([]TZHourFrac, 0, len(fracs)*len(tzs))
	for _, tz := range tzs {
		for _, f := range fracs {
			ltime := f.Date.Add(time.Duration(f.Hour+tz) * time.Hour)
			lhour := ltime.Hour()
			var ldate time.Time
			switch t.Approach.Kind {
			case AveDay:
				// Only one average day in a month, simply change the hours.
				ldate = f.Date
			case AllDays:
				ldate = time.Date(ltime.Year(), ltime.Month(), ltime.Day(), 0, 0, 0, 0, time.UTC)
			case Week, MWDSS:
				dow := mondayWeekday(ltime)
				if t.Approach.Kind == MWDSS && dow >= 1 && dow <= 4 {
					dow = 1
				}
				var ok bool
				ldate, ok = dowMap[dowMonth{dow, int(f.Date.Month())}]
				if !ok {
					continue
				}
			default:
				return nil, fmt.Errorf("htap2mpas: invalid rep_approach '%s'", t.Approach.Name)
			}
			lfrac, ok := fracIndex[dateHour{ldate, lhour}]
			if !ok {
				continue
			}
			o = append(o, TZHourFrac{Date: f.Date, Hour: f.Hour, Offset: tz, Frac: lfrac})
		}
	}
	return o, nil
}
