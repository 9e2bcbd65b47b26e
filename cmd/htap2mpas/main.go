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

// Command htap2mpas prepares HTAP emissions inventories for use with
// the MPAS model.
package main

import (
	"fmt"
	"os"

	"github.com/jlbeidler/htap2mpas/htaputil"
)

func main() {
	if err := htaputil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
