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

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	cliUtil "github.com/purpleidea/clipscript/cli/util"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
)

// FuncsArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `funcs` subcommand.
type FuncsArgs struct {
	cliUtil.LangArgs // embedded config (can't be a pointer) https://github.com/alexflint/go-arg/issues/240

	Filter string `arg:"positional" help:"only list functions with this name"`

	ShowPolicy bool `arg:"--show-policy" help:"print the coercion policy in use as yaml"`
}

// Run lists the registered functions, one overload per line.
func (obj *FuncsArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	l, err := newLang(&obj.LangArgs, data, nil, nil)
	if err != nil {
		return false, err
	}
	defer l.Close()
	l.Freeze()

	if obj.ShowPolicy {
		b, err := funcs.MarshalPolicy(l.Registry().Policy)
		if err != nil {
			return false, err
		}
		fmt.Print(string(b))
		return true, nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tCANONICAL\tSIGNATURE\tPARAMS\tMODULE\n")
	for _, r := range l.Registry().Records() {
		if obj.Filter != "" && interfaces.Fold(r.Name) != interfaces.Fold(obj.Filter) {
			continue
		}
		module := r.ModulePath
		if module == "" {
			module = "-"
		}
		flags := []string{}
		if r.Duplicate {
			flags = append(flags, "duplicate")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\n", r.Name, r.CanonicalName, r.Sig, r.Sig.Describe(), module, strings.Join(flags, ","))
	}
	return true, w.Flush()
}
