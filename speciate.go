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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Speciation builds the pollutant to model species fraction table for
// one HTAP sector from SMOKE-format speciation reference tables.
type Speciation struct {
	// Sector is the HTAP sector name used in the SCC field of the GSREF.
	Sector string

	Log logrus.FieldLogger

	// Polls lists the cross-referenced pollutants for the sector. It is
	// filled in by SpecTable.
	Polls []string

	gsref []GSREFRecord
	gspro []GSPRORecord
}

// NewSpeciation returns a new Speciation for the given HTAP sector. If
// log is nil the logrus standard logger is used.
func NewSpeciation(sector string, log logrus.FieldLogger) *Speciation {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Speciation{Sector: sector, Log: log}
}

// GSREFRecord is a single speciation cross-reference entry mapping a
// sector and pollutant to a speciation profile.
type GSREFRecord struct {
	Sector string
	Poll   string
	Prof   string
}

// GSPRORecord is a single speciation profile entry giving the mass split
// fraction and molecular weight of one species of one pollutant.
type GSPRORecord struct {
	Prof string
	Poll string
	Spec string
	Frac float64
	MW   float64
}

// SpecRecord is a row of the combined sector speciation table. Sector is
// empty for gap-filled default profile rows.
type SpecRecord struct {
	Sector string
	Prof   string
	Poll   string
	Spec   string
	Frac   float64
	MW     float64
}

// LoadGSREF reads a SMOKE GSREF file from f, assuming all speciation
// cross-referencing is at the sector level. A blank sector field means
// the entry applies to all sectors and is normalized to "0". Records are
// kept if their sector matches the receiver's sector or begins with "0";
// where a pollutant then appears more than once, records are sorted by
// pollutant and sector and the last one wins. The name argument
// identifies the file in error messages.
func (s *Speciation) LoadGSREF(f io.Reader, name string) error {
	gsref := make([]GSREFRecord, 0)
	buf := bufio.NewReader(f)
	iLine := 1
	for {
		record, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("htap2mpas: reading GSREF %s line %d: %v", name, iLine, err)
		}
		if strings.TrimSpace(record) != "" && record[0] != '#' && record[0] != '/' {
			// Get rid of comments at end of line.
			if i := strings.Index(record, "!"); i != -1 {
				record = record[0:i]
			}
			splitLine := strings.Split(record, ";")
			if len(splitLine) < 3 {
				return fmt.Errorf("htap2mpas: reading GSREF %s line %d: want at least 3 columns but have %d",
					name, iLine, len(splitLine))
			}
			rec := GSREFRecord{
				Sector: strings.Trim(splitLine[0], "\" "),
				Prof:   strings.Trim(splitLine[1], "\" "),
				Poll:   strings.Trim(splitLine[2], "\"\n "),
			}
			if rec.Sector == "" {
				rec.Sector = "0"
			}
			if rec.Sector == s.Sector || strings.HasPrefix(rec.Sector, "0") {
				gsref = append(gsref, rec)
			}
		}
		if err == io.EOF {
			break
		}
		iLine++
	}
	sort.SliceStable(gsref, func(i, j int) bool {
		if gsref[i].Poll != gsref[j].Poll {
			return gsref[i].Poll < gsref[j].Poll
		}
		return gsref[i].Sector < gsref[j].Sector
	})
	// Keep the last record for each pollutant. After the sort, records
	// sharing a pollutant are adjacent.
	deduped := make([]GSREFRecord, 0, len(gsref))
	for i, rec := range gsref {
		if i == len(gsref)-1 || gsref[i+1].Poll != rec.Poll {
			deduped = append(deduped, rec)
		}
	}
	s.gsref = deduped
	return nil
}

// LoadGSREFFile loads a SMOKE GSREF from the file at path.
func (s *Speciation) LoadGSREFFile(path string) error {
	s.Log.WithFields(logrus.Fields{"file": path}).Info("loading GSREF")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening GSREF: %v", err)
	}
	defer f.Close()
	return s.LoadGSREF(f, path)
}

// LoadGSPRO reads a SMOKE GSPRO file from f. The name argument
// identifies the file in error messages.
func (s *Speciation) LoadGSPRO(f io.Reader, name string) error {
	gspro := make([]GSPRORecord, 0)
	buf := bufio.NewReader(f)
	iLine := 1
	for {
		record, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("htap2mpas: reading GSPRO %s line %d: %v", name, iLine, err)
		}
		if strings.TrimSpace(record) != "" && record[0] != '#' && record[0] != '/' {
			// Get rid of comments at end of line.
			if i := strings.Index(record, "!"); i != -1 {
				record = record[0:i]
			}
			splitLine := strings.Split(record, ";")
			if len(splitLine) < 5 {
				return fmt.Errorf("htap2mpas: reading GSPRO %s line %d: want at least 5 columns but have %d",
					name, iLine, len(splitLine))
			}
			rec := GSPRORecord{
				Prof: strings.Trim(splitLine[0], "\" "),
				Poll: strings.Trim(splitLine[1], "\" "),
				Spec: strings.Trim(splitLine[2], "\" "),
			}
			rec.Frac, err = strconv.ParseFloat(strings.Trim(splitLine[3], "\"\n "), 64)
			if err != nil {
				return fmt.Errorf("htap2mpas: reading GSPRO %s line %d: %v", name, iLine, err)
			}
			rec.MW, err = strconv.ParseFloat(strings.Trim(splitLine[4], "\"\n "), 64)
			if err != nil {
				return fmt.Errorf("htap2mpas: reading GSPRO %s line %d: %v", name, iLine, err)
			}
			gspro = append(gspro, rec)
		}
		if err == io.EOF {
			break
		}
		iLine++
	}
	s.gspro = gspro
	return nil
}

// LoadGSPROFile loads a SMOKE GSPRO from the file at path.
func (s *Speciation) LoadGSPROFile(path string) error {
	s.Log.WithFields(logrus.Fields{"file": path}).Info("loading GSPRO")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening GSPRO: %v", err)
	}
	defer f.Close()
	return s.LoadGSPRO(f, path)
}

// SpecTable returns the speciation table for the sector by joining the
// cross-referenced profiles to the profile split factors. Pollutants in
// the cross-reference with no matching split factors are dropped, and
// pollutants carried only by default profiles (profile codes beginning
// with "0") are gap-filled from those. The GSREF and GSPRO must be
// loaded first. It is an error for the combined table to speciate the
// same pollutant and species pair twice. This does not include any TOG
// conversions with the gscnv.
func (s *Speciation) SpecTable() ([]SpecRecord, error) {
	if s.gsref == nil || s.gspro == nil {
		return nil, fmt.Errorf("htap2mpas: must load gsref and gspro before speciation: %w", ErrNotLoaded)
	}
	type pollProf struct {
		poll string
		prof string
	}
	split := make(map[pollProf][]GSPRORecord)
	for _, rec := range s.gspro {
		k := pollProf{rec.Poll, rec.Prof}
		split[k] = append(split[k], rec)
	}

	table := make([]SpecRecord, 0)
	polls := make([]string, 0, len(s.gsref))
	covered := make(map[string]bool)
	for _, x := range s.gsref {
		if !covered[x.Poll] {
			covered[x.Poll] = true
			polls = append(polls, x.Poll)
		}
		for _, rec := range split[pollProf{x.Poll, x.Prof}] {
			table = append(table, SpecRecord{
				Sector: x.Sector,
				Prof:   rec.Prof,
				Poll:   rec.Poll,
				Spec:   rec.Spec,
				Frac:   rec.Frac,
				MW:     rec.MW,
			})
		}
	}
	// Gapfill missing pollutants with default profiles.
	for _, rec := range s.gspro {
		prof := strings.TrimSpace(rec.Prof)
		if prof == "" {
			prof = "0"
		}
		if strings.HasPrefix(prof, "0") && !covered[rec.Poll] {
			table = append(table, SpecRecord{
				Prof: rec.Prof,
				Poll: rec.Poll,
				Spec: rec.Spec,
				Frac: rec.Frac,
				MW:   rec.MW,
			})
		}
	}
	type pollSpec struct {
		poll string
		spec string
	}
	seen := make(map[pollSpec]bool)
	for _, rec := range table {
		k := pollSpec{rec.Poll, rec.Spec}
		if seen[k] {
			err := fmt.Errorf("htap2mpas: duplicate speciation of pollutant %s species %s for sector %s",
				rec.Poll, rec.Spec, s.Sector)
			s.Log.Error(err)
			return nil, err
		}
		seen[k] = true
	}
	s.Polls = polls
	s.Log.WithFields(logrus.Fields{
		"pollutants": strings.Join(polls, ","),
	}).Debug("creating speciation profiles")
	return table, nil
}
