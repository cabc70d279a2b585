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

package util

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Hello sets up the standard logger for the program and, when verbose, prints
// a banner with the program name, version and tagline to stderr.
func Hello(data *Data) {
	logFlags := log.Ltime | log.Lmicroseconds
	if data.Flags.Debug {
		logFlags |= log.Lshortfile
	}
	log.SetFlags(logFlags)
	log.SetOutput(os.Stderr)

	program := SafeProgram(data.Program)
	if program == "" {
		program = "<unknown>"
	}
	if data.Flags.Verbose {
		fmt.Fprintf(os.Stderr, "This is: %s, version: %s\n", program, data.Version)
		if data.Tagline != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", program, data.Tagline)
		}
	}
	if data.Flags.Debug {
		log.Printf("main: start: %s", time.Now().Format(time.RFC3339Nano))
	}
}
