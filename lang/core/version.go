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

package core

import (
	"fmt"
	"strconv"

	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"

	"github.com/hashicorp/go-version"
)

// ProgramVersion is the version string returned by Version. It is set by main
// at startup, before anything is registered.
var ProgramVersion = ""

func init() {
	register("Version", "", Version, false)
	register("VersionNumber", "", VersionNumber, false)
}

// Version returns the version string of the program.
func Version(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return &types.StrValue{V: ProgramVersion}, nil
}

// VersionNumber returns the major and minor version as a float, eg: 0.12 for
// version 0.12.3. It is zero if the version can't be parsed. A minor version
// of ten or more reads as a fraction, so 1.10 and 1.1 give the same number.
func VersionNumber(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return &types.FloatValue{V: versionNumber(ProgramVersion)}, nil
}

// versionNumber returns major.minor of a version string as a float.
func versionNumber(s string) float64 {
	v, err := version.NewVersion(s)
	if err != nil {
		return 0
	}
	segments := v.Segments() // always at least major.minor.patch
	f, err := strconv.ParseFloat(fmt.Sprintf("%d.%d", segments[0], segments[1]), 64)
	if err != nil {
		return 0
	}
	return f
}
