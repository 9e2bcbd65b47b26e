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
	"bytes"
	"testing"
	"time"
)

func TestParseRepApproach(t *testing.T) {
	tests := []struct {
		name           string
		kind           RepApproachKind
		ignoreHolidays bool
		err            bool
	}{
		{name: "aveday_N", kind: AveDay, ignoreHolidays: true},
		{name: "aveday_Y", kind: AveDay},
		{name: "all", kind: AllDays},
		{name: "all_N", kind: AllDays, ignoreHolidays: true},
		{name: "week_N", kind: Week, ignoreHolidays: true},
		{name: "mwdss_N", kind: MWDSS, ignoreHolidays: true},
		{name: "mwdss_Y", kind: MWDSS},
		{name: "daily", err: true},
		{name: "", err: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := ParseRepApproach(test.name)
			if test.err {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if a.Kind != test.kind {
				t.Errorf("kind: have %v, want %v", a.Kind, test.kind)
			}
			if a.IgnoreHolidays != test.ignoreHolidays {
				t.Errorf("ignoreHolidays: have %v, want %v", a.IgnoreHolidays, test.ignoreHolidays)
			}
		})
	}
}

func TestMondayWeekday(t *testing.T) {
	// 2016-01-04 was a Monday.
	for i := 0; i < 7; i++ {
		d := time.Date(2016, 1, 4+i, 0, 0, 0, 0, time.UTC)
		if dow := mondayWeekday(d); dow != i {
			t.Errorf("%v: have %d, want %d", d, dow, i)
		}
	}
}

var mrgdatesExample = `date,aveday_N,aveday_Y,mwdss_N,mwdss_Y,week_N,week_Y,all,all_N
20160101,20160105,20160101,20160105,20160101,20160108,20160101,20160101,20160101
20160102,20160105,20160101,20160102,20160102,20160102,20160102,20160102,20160102
20160103,20160105,20160101,20160103,20160103,20160103,20160103,20160103,20160103
20160104,20160105,20160101,20160104,20160104,20160104,20160104,20160104,20160104
`

func TestLoadDates(t *testing.T) {
	tmp := newTestTemporal(t, "aveday_N")
	if err := tmp.LoadDates(bytes.NewBuffer([]byte(mrgdatesExample)), "mrgdates"); err != nil {
		t.Fatal(err)
	}
	if len(tmp.dates) != 4 {
		t.Fatalf("rows: have %d, want 4", len(tmp.dates))
	}
	first := tmp.dates[0]
	if !first.Date.Equal(time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date: have %v", first.Date)
	}
	if !first.RepDate.Equal(time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("repdate: have %v", first.RepDate)
	}
	if first.Month != 1 {
		t.Errorf("month: have %d, want 1", first.Month)
	}
	// 2016-01-01 was a Friday.
	if first.DOW != 4 {
		t.Errorf("dow: have %d, want 4", first.DOW)
	}
}

func TestLoadDatesMissingApproach(t *testing.T) {
	tmp := newTestTemporal(t, "mwdss_N")
	missing := `date,aveday_N
20160101,20160105
`
	if err := tmp.LoadDates(bytes.NewBuffer([]byte(missing)), "mrgdates"); err == nil {
		t.Error("expected error for missing approach column")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC), 31},
		{time.Date(2016, 2, 15, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC), 28},
		{time.Date(2016, 6, 30, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC), 31},
	}
	for _, test := range tests {
		if have := daysInMonth(test.date); have != test.want {
			t.Errorf("%v: have %d, want %d", test.date, have, test.want)
		}
	}
}
