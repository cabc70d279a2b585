// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/purpleidea/clipscript/util/errwrap"
)

// Convert returns the value converted to the requested kind. It knows how to do
// every conversion that a coercion policy could permit. Whether a conversion
// is allowed at all is not decided here. Converting to the same kind or to
// KindAny returns the value unchanged.
func Convert(v Value, to Kind) (Value, error) {
	from := KindOf(v)
	if from == to || to == KindAny {
		return v, nil
	}

	switch {
	case from == KindInt && to == KindFloat:
		return &FloatValue{V: float64(v.Int())}, nil

	case from == KindFloat && to == KindInt:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("can't convert %s to an int", v)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which doesn't fit
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("%s is out of range for an int", v)
		}
		return &IntValue{V: int64(f)}, nil // truncates

	case from == KindBool && to == KindInt:
		if v.Bool() {
			return &IntValue{V: 1}, nil
		}
		return &IntValue{V: 0}, nil

	case from == KindInt && to == KindBool:
		return &BoolValue{V: v.Int() != 0}, nil

	case from == KindStr && to == KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str()), 10, 64)
		if err != nil {
			return nil, errwrap.Wrapf(err, "can't parse %s as an int", v)
		}
		return &IntValue{V: i}, nil

	case from == KindStr && to == KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return nil, errwrap.Wrapf(err, "can't parse %s as a float", v)
		}
		return &FloatValue{V: f}, nil
	}

	return nil, fmt.Errorf("no conversion from %s to %s", from, to)
}

// NumToFloat returns the value of a numeric value as a float64. Ints are widened
// and floats are returned as is. It panics on any other kind.
func NumToFloat(v Value) float64 {
	if v.Kind() == KindInt {
		return float64(v.Int())
	}
	return v.Float()
}
