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

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/purpleidea/clipscript/cli"
	cliUtil "github.com/purpleidea/clipscript/cli/util"
	"github.com/purpleidea/clipscript/lang/core"
)

// These constants are some global variables that are used throughout the code.
const (
	Debug   = false // add additional log messages
	Verbose = false // add extra log message output

	tagline = "script function dispatch and clip caching"
)

// copying is the license notice that --license prints.
const copying = `clipscript
Copyright (C) James Shubin and the project contributors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.
`

// set at compile time
var (
	program string
	version string
)

func main() {
	if program == "" {
		program = "clipscript"
	}
	if version == "" {
		version = "0.0.0-dev" // not a release build
	}
	core.ProgramVersion = version

	flags := cliUtil.Flags{
		Debug:   Debug,
		Verbose: Verbose,
		Logf: func(format string, v ...interface{}) {
			log.Printf(format, v...)
		},
	}
	data := &cliUtil.Data{
		Program: program,
		Version: version,
		Copying: copying,
		Tagline: tagline,
		Flags:   flags,
		Args:    os.Args,
	}
	cliUtil.Hello(data) // say hello!

	if err := cli.CLI(context.Background(), data); err != nil {
		fmt.Println(err)
		os.Exit(1)
		return
	}
}
