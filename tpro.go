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
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// readTPRO reads a SMOKE temporal profile (TPRO) file, reshaping the wide
// rows (one fraction column per period) into long form, one ProfileFrac per
// (profile, period). The name argument identifies the file in error
// messages. Periods are numbered periodStart through
// periodStart+nPeriods-1. If header is true the first non-comment record
// is skipped.
func readTPRO(f io.Reader, name string, nPeriods, periodStart int, header bool) ([]ProfileFrac, error) {
	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if header {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("htap2mpas: reading %s header: %v", name, err)
		}
	}
	o := make([]ProfileFrac, 0, nPeriods)
	iLine := 1
	for {
		line, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("htap2mpas: reading %s line %d: %v", name, iLine, err)
		}
		if len(line) < nPeriods+1 {
			return nil, fmt.Errorf("htap2mpas: reading %s line %d: want at least %d columns but have %d",
				name, iLine, nPeriods+1, len(line))
		}
		prof := strings.TrimSpace(line[0])
		for i := 0; i < nPeriods; i++ {
			frac, err := strconv.ParseFloat(strings.TrimSpace(line[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("htap2mpas: reading %s line %d column %d: %v", name, iLine, i+1, err)
			}
			o = append(o, ProfileFrac{Prof: prof, Period: periodStart + i, Frac: frac})
		}
		iLine++
	}
	return o, nil
}

// LoadMonthly loads a monthly TPRO from f, with fraction columns for
// months 1-12. The profile fractions are renormalized to sum to 1.
func (t *Temporal) LoadMonthly(f io.Reader, name string) error {
	profs, err := readTPRO(f, name, 12, 1, false)
	if err != nil {
		return err
	}
	t.monthly, err = renormProfiles(profs)
	return err
}

// LoadWeekly loads a day-of-week TPRO from f, with fraction columns for
// days 0-6 (Monday-Sunday). The profile fractions are renormalized to
// sum to 1.
func (t *Temporal) LoadWeekly(f io.Reader, name string) error {
	profs, err := readTPRO(f, name, 7, 0, false)
	if err != nil {
		return err
	}
	t.weekly, err = renormProfiles(profs)
	return err
}

// LoadHourly loads a diurnal TPRO from f. The file carries a header row
// and fraction columns hour1-hour24, stored here as hours 0-23. The
// profile fractions are renormalized to sum to 1.
func (t *Temporal) LoadHourly(f io.Reader, name string) error {
	profs, err := readTPRO(f, name, 24, 0, true)
	if err != nil {
		return err
	}
	t.hourly, err = renormProfiles(profs)
	return err
}

// LoadMonthlyFile loads a monthly TPRO from the file at path.
func (t *Temporal) LoadMonthlyFile(path string) error {
	t.Log.WithFields(logrus.Fields{"file": path}).Info("loading TPRO_MONTHLY")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening TPRO_MONTHLY: %v", err)
	}
	defer f.Close()
	return t.LoadMonthly(f, path)
}

// LoadWeeklyFile loads a day-of-week TPRO from the file at path.
func (t *Temporal) LoadWeeklyFile(path string) error {
	t.Log.WithFields(logrus.Fields{"file": path}).Info("loading TPRO_WEEKLY")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening TPRO_WEEKLY: %v", err)
	}
	defer f.Close()
	return t.LoadWeekly(f, path)
}

// LoadHourlyFile loads a diurnal TPRO from the file at path.
func (t *Temporal) LoadHourlyFile(path string) error {
	t.Log.WithFields(logrus.Fields{"file": path}).Info("loading TPRO_HOURLY")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening TPRO_HOURLY: %v", err)
	}
	defer f.Close()
	return t.LoadHourly(f, path)
}
