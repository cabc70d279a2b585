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

package funcs

import (
	"sort"

	"github.com/purpleidea/clipscript/lang/interfaces"

	"github.com/agext/levenshtein"
)

// suggestDistance is the largest edit distance at which a name is suggested.
const suggestDistance = 2

// Suggest returns the registered name closest to the given one, or the empty
// string if nothing is close enough. Case differences don't count, since names
// are matched without regard to case.
func (obj *Registry) Suggest(name string) string {
	defer obj.rlock()()
	return obj.suggest(name)
}

func (obj *Registry) suggest(name string) string {
	folded := interfaces.Fold(name)
	names := []string{}
	seen := make(map[string]struct{})
	for _, r := range obj.records {
		for _, x := range []string{r.Name, r.CanonicalName} {
			if _, exists := seen[x]; exists {
				continue
			}
			seen[x] = struct{}{}
			names = append(names, x)
		}
	}
	sort.Strings(names) // ties go to the first name in sorted order

	best := ""
	closest := suggestDistance + 1
	for _, x := range names {
		d := levenshtein.Distance(folded, interfaces.Fold(x), nil)
		if d == 0 {
			continue // it would have been found
		}
		if d < closest {
			best, closest = x, d
		}
	}
	return best
}
