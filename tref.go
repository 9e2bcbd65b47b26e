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
	"strings"

	"github.com/sirupsen/logrus"
)

// TREFRecord is a single temporal cross-reference entry mapping a sector
// and date type level to a temporal profile.
type TREFRecord struct {
	Sector  string
	DTLevel string
	Prof    string
}

// LoadTREF reads a SMOKE TREF file from f, keeping only records for the
// receiver's sector. All temporal cross-referencing is assumed to be at
// the sector level, carried in the SCC field of the TREF. Where a date
// type level appears more than once for the sector, the first record
// wins. The name argument identifies the file in error messages.
func (t *Temporal) LoadTREF(f io.Reader, name string) error {
	tref := make([]TREFRecord, 0)
	levelSeen := make(map[string]bool)
	buf := bufio.NewReader(f)
	iLine := 1
	for {
		record, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("htap2mpas: reading TREF %s line %d: %v", name, iLine, err)
		}
		if strings.TrimSpace(record) != "" && record[0] != '#' && record[0] != '/' {
			// Get rid of comments at end of line.
			if i := strings.Index(record, "!"); i != -1 {
				record = record[0:i]
			}
			splitLine := strings.Split(record, ";")
			if len(splitLine) < 9 {
				return fmt.Errorf("htap2mpas: reading TREF %s line %d: want at least 9 columns but have %d",
					name, iLine, len(splitLine))
			}
			rec := TREFRecord{
				Sector:  strings.Trim(splitLine[0], "\" "),
				DTLevel: strings.Trim(splitLine[7], "\" "),
				Prof:    strings.Trim(splitLine[8], "\"\n "),
			}
			if rec.Sector == t.Sector && !levelSeen[rec.DTLevel] {
				levelSeen[rec.DTLevel] = true
				tref = append(tref, rec)
			}
		}
		if err == io.EOF {
			break
		}
		iLine++
	}
	t.tref = tref
	return nil
}

// LoadTREFFile loads a SMOKE TREF from the file at path.
func (t *Temporal) LoadTREFFile(path string) error {
	t.Log.WithFields(logrus.Fields{"file": path}).Info("loading TREF")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("htap2mpas: opening TREF: %v", err)
	}
	defer f.Close()
	return t.LoadTREF(f, path)
}

// profForLevel returns the temporal profile assigned to the given date
// type level for the receiver's sector.
func (t *Temporal) profForLevel(level string) (string, error) {
	for _, rec := range t.tref {
		if rec.DTLevel == level {
			return rec.Prof, nil
		}
	}
	return "", fmt.Errorf("htap2mpas: no %s temporal profile assignment for sector %s", level, t.Sector)
}
