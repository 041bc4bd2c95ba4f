// Copyright (C) 2021-2025 Chronicle Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package pathutil

import (
	"math"
	"strconv"
)

const (
	DefaultSizePrecision = 2

	sizeBase = 1024
)

var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}

// ReadableFilesize formats a byte count using the largest unit in which the
// value is at least one. The result always has exactly precision fractional
// digits, DefaultSizePrecision if omitted.
//
//	ReadableFilesize(5670008902)  // "5.28 GB"
//	ReadableFilesize(2000, 3)     // "1.953 kB"
func ReadableFilesize(bytes int64, precision ...int) string {
	prec := DefaultSizePrecision
	if len(precision) > 0 {
		prec = max(precision[0], 0)
	}
	v := float64(bytes)
	u := 0
	for math.Abs(v) >= sizeBase && u < len(sizeUnits)-1 {
		v /= sizeBase
		u++
	}
	return strconv.FormatFloat(v, 'f', prec, 64) + " " + sizeUnits[u]
}
