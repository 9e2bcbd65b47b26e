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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jlbeidler/htap2mpas"
)

// These report writers emit the fraction tables as CSV for review; they
// are not the MPAS grid output.

const dateFormat = "20060102"

// WriteTemporalReport writes the month to hour fraction table to w as
// CSV, one row per representative date and hour. If timezone-aware
// fractions were calculated they are written instead, with an offset
// column.
func WriteTemporalReport(w io.Writer, t *Tables) error {
	cw := csv.NewWriter(w)
	if t.TZFracs != nil {
		cw.Write([]string{"date", "hour", "offset", "frac"})
		for _, f := range t.TZFracs {
			cw.Write([]string{
				f.Date.Format(dateFormat),
				strconv.Itoa(f.Hour),
				strconv.Itoa(f.Offset),
				strconv.FormatFloat(f.Frac, 'g', -1, 64),
			})
		}
	} else {
		cw.Write([]string{"date", "hour", "frac"})
		for _, f := range t.TemporalFracs {
			cw.Write([]string{
				f.Date.Format(dateFormat),
				strconv.Itoa(f.Hour),
				strconv.FormatFloat(f.Frac, 'g', -1, 64),
			})
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpeciationReport writes the sector speciation table to w as CSV.
func WriteSpeciationReport(w io.Writer, table []htap2mpas.SpecRecord) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"sector", "prof", "poll", "spec", "frac", "mw"})
	for _, rec := range table {
		cw.Write([]string{
			rec.Sector,
			rec.Prof,
			rec.Poll,
			rec.Spec,
			strconv.FormatFloat(rec.Frac, 'g', -1, 64),
			strconv.FormatFloat(rec.MW, 'g', -1, 64),
		})
	}
	cw.Flush()
	return cw.Error()
}

// writeReportFile writes a report to the file at path using the given
// writer function.
func writeReportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: creating report file: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
