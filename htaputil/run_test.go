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
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func TestProcess(t *testing.T) {
	log, _ := newTestLogger()
	cfg, err := LoadConfig("testdata/config.json", log)
	if err != nil {
		t.Fatal(err)
	}
	tables, err := Process(cfg, []int{0, 2}, log)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("temporal", func(t *testing.T) {
		if len(tables.TemporalFracs) != 24 {
			t.Fatalf("rows: have %d, want 24", len(tables.TemporalFracs))
		}
		// One average June day represented by Monday 2016-06-06, with
		// the Wednesday 2016-06-01 day of week fraction (0.2) and a
		// uniform diurnal profile.
		repdate := time.Date(2016, 6, 6, 0, 0, 0, 0, time.UTC)
		want := 7.0 / 30 * 0.2 / 24
		for i, f := range tables.TemporalFracs {
			if !f.Date.Equal(repdate) || f.Hour != i {
				t.Errorf("row %d: have %v hour %d", i, f.Date, f.Hour)
			}
			if math.Abs(f.Frac-want) > 1e-8 {
				t.Errorf("row %d frac: have %g, want %g", i, f.Frac, want)
			}
		}
	})

	t.Run("timezones", func(t *testing.T) {
		if len(tables.TZFracs) != 48 {
			t.Fatalf("rows: have %d, want 48", len(tables.TZFracs))
		}
		for _, f := range tables.TZFracs {
			if f.Offset != 0 && f.Offset != 2 {
				t.Fatalf("unexpected offset %d", f.Offset)
			}
		}
	})

	t.Run("speciation", func(t *testing.T) {
		if len(tables.SpecTable) != 5 {
			t.Fatalf("rows: have %d, want 5", len(tables.SpecTable))
		}
		// The sector-specific VOC profile wins over the default, and
		// the uncovered NH3 is gap-filled from the default profile.
		for _, rec := range tables.SpecTable {
			if rec.Poll == "VOC" && rec.Prof != "200" {
				t.Errorf("VOC prof: have %s, want 200", rec.Prof)
			}
			if rec.Poll == "NH3" && rec.Prof != "0000" {
				t.Errorf("NH3 prof: have %s, want 0000", rec.Prof)
			}
		}
	})

	t.Run("reports", func(t *testing.T) {
		buf := new(bytes.Buffer)
		if err := WriteTemporalReport(buf, tables); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if lines[0] != "date,hour,offset,frac" {
			t.Errorf("header: have %s", lines[0])
		}
		if len(lines) != 49 {
			t.Errorf("lines: have %d, want 49", len(lines))
		}

		buf.Reset()
		if err := WriteSpeciationReport(buf, tables.SpecTable); err != nil {
			t.Fatal(err)
		}
		lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
		if lines[0] != "sector,prof,poll,spec,frac,mw" {
			t.Errorf("header: have %s", lines[0])
		}
		if len(lines) != 6 {
			t.Errorf("lines: have %d, want 6", len(lines))
		}
	})
}

func TestProcessBadApproach(t *testing.T) {
	log, _ := newTestLogger()
	cfg, err := LoadConfig("testdata/config.json", log)
	if err != nil {
		t.Fatal(err)
	}
	cfg.RepApproach = "daily"
	if _, err := Process(cfg, nil, log); err == nil {
		t.Error("expected error for invalid rep_approach")
	}
}
