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

// Package htap2mpas prepares HTAP emissions inventories for use with the
// MPAS model, calculating hourly temporal allocation fractions and chemical
// speciation fractions from SMOKE-format reference tables.
package htap2mpas

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Version gives the version of this library.
const Version = "0.1.0"

// fracDigits is the number of decimal digits retained when temporal
// profile fractions are renormalized. Downstream sums depend on this
// rounding being applied identically at every normalization site.
const fracDigits = 8

// ErrNotLoaded indicates that a derived calculation was requested before
// all of its required reference tables were loaded.
var ErrNotLoaded = errors.New("htap2mpas: reference table not loaded")

// roundFrac rounds v to fracDigits decimal digits.
func roundFrac(v float64) float64 {
	scale := math.Pow(10, fracDigits)
	return math.Round(v*scale) / scale
}

// ProfileFrac is a single long-form temporal profile entry: the fraction
// of emissions allocated to one period (month, day of week, or hour) of
// one profile.
type ProfileFrac struct {
	Prof   string
	Period int
	Frac   float64
}

// renormProfiles scales the fractions of each profile in profs so that
// they sum to 1, rounding each resulting fraction to fracDigits digits.
// A profile whose fractions sum to zero cannot be normalized and causes
// an error.
func renormProfiles(profs []ProfileFrac) ([]ProfileFrac, error) {
	vals := make(map[string][]float64)
	for _, p := range profs {
		vals[p.Prof] = append(vals[p.Prof], p.Frac)
	}
	sums := make(map[string]float64)
	for prof, v := range vals {
		sum := floats.Sum(v)
		if sum == 0 {
			return nil, fmt.Errorf("htap2mpas: temporal profile %s fractions sum to zero", prof)
		}
		sums[prof] = sum
	}
	o := make([]ProfileFrac, len(profs))
	for i, p := range profs {
		o[i] = ProfileFrac{
			Prof:   p.Prof,
			Period: p.Period,
			Frac:   roundFrac(p.Frac / sums[p.Prof]),
		}
	}
	return o, nil
}

// colIndex returns the index of the given column name in a file header.
func colIndex(col string, header []string) (int, error) {
	for i, c := range header {
		if c == col {
			return i, nil
		}
	}
	return -1, fmt.Errorf("missing column '%s'", col)
}
