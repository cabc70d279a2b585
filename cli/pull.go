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
	"os/signal"
	"syscall"
	"time"

	cliUtil "github.com/purpleidea/clipscript/cli/util"
	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/ast"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/prometheus"
	"github.com/purpleidea/clipscript/util/errwrap"

	"github.com/spf13/afero"
)

// PullArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `pull` subcommand.
type PullArgs struct {
	cliUtil.LangArgs // embedded config (can't be a pointer) https://github.com/alexflint/go-arg/issues/240

	Length int `arg:"--length" default:"240" help:"number of frames of the source clip"`
	First  int `arg:"--first" default:"0" help:"first frame to keep"`
	Last   int `arg:"--last" default:"0" help:"last frame to keep, 0 is the end and a negative number is a count"`

	Frames  int `arg:"--frames" default:"0" help:"number of frames to pull, 0 pulls them all"`
	Passes  int `arg:"--passes" default:"2" help:"number of times to pull the frames"`
	Workers int `arg:"--workers" default:"4" help:"number of concurrent pulls"`

	NoCache bool `arg:"--no-cache" help:"don't put a cache in front of the pipeline"`
	Guard   bool `arg:"--guard" help:"serialize all pulls with a thread guard"`

	Graphviz string `arg:"--graphviz" help:"write the processing graph to this dot file"`

	Prometheus       bool   `arg:"--prometheus" help:"start a prometheus instance"`
	PrometheusListen string `arg:"--prometheus-listen" help:"specify prometheus instance binding"`
}

// Run builds a source and a trim with the script host, negotiates the caches
// and the thread guard, and pulls the frames concurrently.
func (obj *PullArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	Logf := data.Flags.Prefixed("pull: ")
	if obj.Passes <= 0 {
		return false, cliUtil.CliParseError(fmt.Errorf("need at least one pass"))
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var resolveObserver funcs.Observer
	var cacheObserver clip.Observer
	if obj.Prometheus {
		prom := &prometheus.Prometheus{
			Listen: obj.PrometheusListen,
			Logf:   data.Flags.Prefixed("prometheus: "),
		}
		if err := prom.Init(); err != nil {
			return false, errwrap.Wrapf(err, "can't init prometheus")
		}
		if err := prom.Start(); err != nil {
			return false, errwrap.Wrapf(err, "can't start prometheus")
		}
		defer func() {
			if err := prom.Stop(); err != nil {
				Logf("prometheus: stop: %+v", err)
			}
		}()
		Logf("prometheus listening on %s", prom.Listen)
		resolveObserver, cacheObserver = prom, prom
	}

	l, err := newLang(&obj.LangArgs, data, resolveObserver, cacheObserver)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := l.Close(); err != nil {
			Logf("close: %+v", err)
		}
	}()

	// src = BlankClip(length=L)
	// Trim(src, first, last)
	b := &ast.Builder{
		Debug: data.Flags.Debug,
		Logf:  data.Flags.Prefixed("ast: "),
	}
	stmts := []*ast.Ref{}
	defer func() {
		for _, stmt := range stmts {
			stmt.Release()
		}
	}()
	blank, err := b.Call("BlankClip", []*ast.Ref{b.Int(int64(obj.Length))}, []string{"length"})
	if err != nil {
		return false, err
	}
	assign, err := b.Assign(b.Var("src"), blank, false)
	if err != nil {
		return false, err
	}
	stmts = append(stmts, assign)
	trim, err := b.Call("Trim", []*ast.Ref{b.Var("src"), b.Int(int64(obj.First)), b.Int(int64(obj.Last))}, nil)
	if err != nil {
		return false, err
	}
	stmts = append(stmts, trim)

	v, err := l.Run(stmts...)
	if err != nil {
		return false, errwrap.Wrapf(err, "could not build the pipeline")
	}
	src, err := l.Env().Get("src")
	if err != nil {
		return false, err
	}
	source, _ := src.Clip().(*clip.Blank)

	runtime := l.Runtime()
	out := v.Clip()
	var cache *clip.Cache
	if !obj.NoCache {
		if out, err = runtime.Cached(out, clip.Range{}); err != nil {
			return false, err
		}
		cache, _ = out.(*clip.Cache)
	}
	if obj.Guard {
		if out, err = runtime.Guarded(out); err != nil {
			return false, err
		}
	}

	if obj.Graphviz != "" {
		fs := afero.NewOsFs()
		if err := afero.WriteFile(fs, obj.Graphviz, []byte(runtime.Graphviz()), 0644); err != nil {
			return false, errwrap.Wrapf(err, "could not write the graph")
		}
		Logf("wrote the graph to %s", obj.Graphviz)
	}
	if data.Flags.Debug {
		order, err := runtime.Order()
		if err != nil {
			return false, err
		}
		for _, c := range order {
			Logf("%s <- %v", c, runtime.Producers(c))
		}
		Logf("outputs: %v", runtime.Sinks())
	}

	n := out.Info().NumFrames
	if obj.Frames > 0 && obj.Frames < n {
		n = obj.Frames
	}
	frames := []int{}
	for i := 0; i < n; i++ {
		frames = append(frames, i)
	}

	for pass := 1; pass <= obj.Passes; pass++ {
		start := time.Now()
		result, err := runtime.Pull(ctx, out, frames, obj.Workers)
		if err != nil {
			return false, errwrap.Wrapf(err, "pass %d failed", pass)
		}
		Logf("pass %d: pulled %d frames from %s in %s", pass, len(result), out, time.Since(start))
	}

	if source != nil {
		fmt.Printf("source: %s produced %d frames\n", source, source.Pulls())
	}
	if cache != nil {
		hits, misses := cache.Stats()
		fmt.Printf("cache: %s window %s: %d hits, %d misses\n", cache, cache.Window(), hits, misses)
	}
	return true, nil
}
