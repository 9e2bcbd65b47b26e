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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// RepApproachKind enumerates the known representative day approaches.
type RepApproachKind int

const (
	// AveDay uses one average day to represent each month.
	AveDay RepApproachKind = iota
	// AllDays uses every day of the processing period.
	AllDays
	// Week uses one representative day per day of week per month.
	Week
	// MWDSS uses four representative days per month: Monday, a combined
	// Tuesday-Friday weekday, Saturday, and Sunday.
	MWDSS
)

// RepApproach identifies a representative day approach: the grouping
// scheme used to map actual days onto representative days, and whether
// American holidays are ignored.
type RepApproach struct {
	// Name is the approach identifier, matching a column in the
	// mrgdates file, e.g. "aveday_N" or "mwdss_N".
	Name string

	Kind RepApproachKind

	// IgnoreHolidays reports whether the approach ignores American
	// holidays, designated by an "_N" suffix on the approach name.
	IgnoreHolidays bool
}

// ParseRepApproach converts a representative day approach name into a
// RepApproach. Approach names not matching one of the known grouping
// schemes cause an error.
func ParseRepApproach(name string) (RepApproach, error) {
	a := RepApproach{Name: name, IgnoreHolidays: strings.HasSuffix(name, "_N")}
	switch {
	case strings.HasPrefix(name, "aveday"):
		a.Kind = AveDay
	case strings.HasPrefix(name, "all"):
		a.Kind = AllDays
	case strings.HasPrefix(name, "week"):
		a.Kind = Week
	case strings.HasPrefix(name, "mwdss"):
		a.Kind = MWDSS
	default:
		return a, fmt.Errorf("htap2mpas: invalid rep_approach '%s'", name)
	}
	return a, nil
}

// DateMapRecord maps one actual calendar date in the processing period
// to its representative date.
type DateMapRecord struct {
	Date    time.Time
	RepDate time.Time

	// Month and DOW are the month (1-12) and Monday=0 day of week of
	// the actual date.
	Month int
	DOW   int
}

// mondayWeekday returns the day of week of t numbered with Monday as 0
// and Sunday as 6.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// parseYMD parses an 8-digit YYYYMMDD date string as a UTC date.
func parseYMD(s string) (time.Time, error) {
	return time.Parse("20060102", strings.TrimSpace(s))
}

// LoadDates reads the merge dates file from f. The file maps each
// sequential day of the processing period to a representative day under
// each approach; only the column matching the receiver's approach is
// kept. The name argument identifies the file in error messages.
func (t *Temporal) LoadDates(f io.Reader, name string) error {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("htap2mpas: reading mrgdates %s header: %v", name, err)
	}
	for i, c := range header {
		header[i] = strings.TrimSpace(c)
	}
	iDate, err := colIndex("date", header)
	if err != nil {
		return fmt.Errorf("htap2mpas: reading mrgdates %s header: %v", name, err)
	}
	iRep, err := colIndex(t.Approach.Name, header)
	if err != nil {
		return fmt.Errorf("htap2mpas: reading mrgdates %s header: %v", name, err)
	}
	dates := make([]DateMapRecord, 0)
	iLine := 2
	for {
		line, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("htap2mpas: reading mrgdates %s line %d: %v", name, iLine, err)
		}
		if len(line) <= iDate || len(line) <= iRep {
			return fmt.Errorf("htap2mpas: reading mrgdates %s line %d: too few columns", name, iLine)
		}
		d, err := parseYMD(line[iDate])
		if err != nil {
			return fmt.Errorf("htap2mpas: reading mrgdates %s line %d: %v", name, iLine, err)
		}
		rd, err := parseYMD(line[iRep])
		if err != nil {
			return fmt.Errorf("htap2mpas: reading mrgdates %s line %d: %v", name, iLine, err)
		}
		dates = append(dates, DateMapRecord{
			Date:    d,
			RepDate: rd,
			Month:   int(d.Month()),
			DOW:     mondayWeekday(d),
		})
		iLine++
	}
	t.dates = dates
	return nil
}

// LoadDatesFile loads the merge dates file at path.
func (t *Temporal) LoadDatesFile(path string) error {
	t.Log.WithFields(logrus.Fields{"file": path}).Info("loading mrgdates")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening mrgdates: %v", err)
	}
	defer f.Close()
	return t.LoadDates(f, path)
}

// daysInMonth returns the number of days in the month containing t.
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
