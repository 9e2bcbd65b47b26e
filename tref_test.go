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
	"reflect"
	"testing"
)

var trefExample = `#SMOKE temporal cross-reference
htap_energy;;;;;;;MONTHLY;262;energy monthly
htap_energy;;;;;;;WEEKLY;7;energy weekly
htap_energy;;;;;;;ALLDAY;24;energy diurnal
htap_energy;;;;;;;WEEKLY;9;duplicate level, ignored
htap_industry;;;;;;;WEEKLY;8;other sector
`

func TestLoadTREF(t *testing.T) {
	tmp := newTestTemporal(t, "aveday_N")
	if err := tmp.LoadTREF(bytes.NewBuffer([]byte(trefExample)), "tref"); err != nil {
		t.Fatal(err)
	}
	want := []TREFRecord{
		{Sector: "htap_energy", DTLevel: "MONTHLY", Prof: "262"},
		{Sector: "htap_energy", DTLevel: "WEEKLY", Prof: "7"},
		{Sector: "htap_energy", DTLevel: "ALLDAY", Prof: "24"},
	}
	if !reflect.DeepEqual(tmp.tref, want) {
		t.Errorf("tref: have %v, want %v", tmp.tref, want)
	}

	t.Run("profForLevel", func(t *testing.T) {
		prof, err := tmp.profForLevel("WEEKLY")
		if err != nil {
			t.Fatal(err)
		}
		if prof != "7" {
			t.Errorf("WEEKLY prof: have %s, want 7", prof)
		}
		if _, err := tmp.profForLevel("HOURLY"); err == nil {
			t.Error("expected error for unassigned level")
		}
	})
}

func TestLoadTREFMalformed(t *testing.T) {
	tmp := newTestTemporal(t, "aveday_N")
	bad := `htap_energy;MONTHLY;262
`
	if err := tmp.LoadTREF(bytes.NewBuffer([]byte(bad)), "tref"); err == nil {
		t.Error("expected error for malformed TREF record")
	}
}
