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

package interfaces

const (
	// CoreModule is the qualifier of the functions which the host itself
	// provides. It is used in their canonical name, eg: `core_Trim`.
	CoreModule = "core"

	// CanonicalSep separates the module qualifier from the function name
	// in a canonical name.
	CanonicalSep = "_"

	// SigRequiredSep separates the required parameters from the optional
	// ones in a signature token string.
	SigRequiredSep = "|"
)
