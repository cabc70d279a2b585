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

// Package lang is the entry point of the script host. It ties the function
// registry, the builtins, and the clip runtime together, and evaluates
// top-level statements against them.
package lang

import (
	"fmt"
	"sync"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/ast"
	"github.com/purpleidea/clipscript/lang/core"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"

	"github.com/spf13/afero"
)

// RegisterFunc adds one function on behalf of an extension module. The module
// path is filled in by Load.
type RegisterFunc func(name, signature string, fn funcs.Func, userData interface{}) error

// Module is the init function of an extension module. It is called once, at
// load time, and it registers all of the functions that the module provides.
type Module func(register RegisterFunc) error

// Lang is the script host. It has two phases. During the load phase, builtins,
// script functions and extension modules are registered. The first Run ends it
// and freezes the registry, after which nothing more can be registered.
type Lang struct {
	// Fs is the filesystem that the policy file is read from. If nil, the
	// os filesystem is used.
	Fs afero.Fs

	// PolicyPath is the path of the yaml coercion policy. If it is empty,
	// or the file doesn't exist, then the default policy is used.
	PolicyPath string

	// CacheSize is the minimum number of frames in each cache that the
	// clip runtime adds.
	CacheSize int

	// Scope holds the global variables that scripts start with. It is
	// merged into the global scope by Init.
	Scope *interfaces.Scope

	// ResolveObserver, if set, is told about every resolution.
	ResolveObserver funcs.Observer

	// CacheObserver, if set, is told about every cache message.
	CacheObserver clip.Observer

	Debug bool
	Logf  func(format string, v ...interface{})

	mutex    *sync.Mutex
	runMutex *sync.Mutex // one Run at a time, they share the scopes
	registry *funcs.Registry
	runtime  *clip.Runtime
	env      *funcs.Env
	defs     []*ast.FuncDef
}

// Init builds the registry and the clip runtime, and registers the builtins.
func (obj *Lang) Init() error {
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {} // silent
	}
	if obj.Fs == nil {
		obj.Fs = afero.NewOsFs()
	}
	obj.mutex = &sync.Mutex{}
	obj.runMutex = &sync.Mutex{}

	policy := funcs.DefaultPolicy()
	if obj.PolicyPath != "" {
		var err error
		if policy, err = funcs.LoadPolicy(obj.Fs, obj.PolicyPath); err != nil {
			return err
		}
	}
	if obj.Debug {
		obj.Logf("coercions: %v", policy.Coercions())
	}

	obj.runtime = &clip.Runtime{
		CacheSize: obj.CacheSize,
		Observer:  obj.CacheObserver,
		Debug:     obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("clip: "+format, v...)
		},
	}
	if err := obj.runtime.Init(); err != nil {
		return errwrap.Wrapf(err, "could not init the clip runtime")
	}

	obj.registry = &funcs.Registry{
		Policy:   policy,
		Observer: obj.ResolveObserver,
		Debug:    obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("funcs: "+format, v...)
		},
	}
	if err := obj.registry.Init(); err != nil {
		return errwrap.Wrapf(err, "could not init the registry")
	}
	if err := core.Register(obj.registry, obj.runtime); err != nil {
		return errwrap.Wrapf(err, "could not register the builtins")
	}

	obj.env = funcs.NewEnv(obj.registry)
	obj.env.Debug = obj.Debug
	obj.env.Logf = obj.registry.Logf
	if !obj.Scope.IsEmpty() {
		if err := obj.env.Globals.Merge(obj.Scope); err != nil {
			return errwrap.Wrapf(err, "could not set the initial globals")
		}
		obj.Logf("globals: %v", obj.Scope.Names())
	}
	obj.defs = []*ast.FuncDef{}
	return nil
}

// Define registers a script function. The Lang takes ownership of the body,
// which is released on Close.
func (obj *Lang) Define(def *ast.FuncDef) error {
	record, err := def.Register(obj.registry, "")
	if err != nil {
		return errwrap.Wrapf(err, "could not define %s", def)
	}
	obj.mutex.Lock()
	obj.defs = append(obj.defs, def)
	obj.mutex.Unlock()
	obj.Logf("defined %s", record)
	return nil
}

// Load runs the init function of an extension module. Everything that it
// registers is qualified by the module path. If the init function fails, then
// the functions that it managed to register before that stay registered.
func (obj *Lang) Load(modulePath string, module Module) error {
	if modulePath == "" {
		return fmt.Errorf("a module needs a path")
	}
	count := 0
	register := func(name, signature string, fn funcs.Func, userData interface{}) error {
		if _, err := obj.registry.Register(name, signature, fn, userData, modulePath); err != nil {
			return err
		}
		count++
		return nil
	}
	if err := module(register); err != nil {
		return errwrap.Wrapf(err, "could not load %s", modulePath)
	}
	obj.Logf("loaded %d functions from %s", count, modulePath)
	return nil
}

// Freeze ends the load phase. It is safe to call it more than once.
func (obj *Lang) Freeze() {
	if !obj.registry.Frozen() {
		obj.registry.Freeze()
		obj.Logf("registry frozen with %d functions", obj.registry.Len())
	}
}

// Run evaluates the top-level statements in order, and returns the value of
// the last one. The first error aborts the run, and no value is returned. The
// statements stay owned by the caller. Concurrent calls are serialized, since
// every run reads and writes the same variables.
func (obj *Lang) Run(stmts ...*ast.Ref) (types.Value, error) {
	obj.runMutex.Lock()
	defer obj.runMutex.Unlock()
	obj.Freeze()

	var result types.Value = types.Undefined
	for i, stmt := range stmts {
		v, err := ast.Evaluate(obj.env, stmt)
		if err != nil {
			return nil, errwrap.Wrapf(err, "statement %d failed", i+1)
		}
		if obj.Debug {
			obj.Logf("statement %d: %s = %s", i+1, stmt, v)
		}
		result = v
	}
	return result, nil
}

// Registry returns the function registry.
func (obj *Lang) Registry() *funcs.Registry {
	return obj.registry
}

// Runtime returns the clip runtime.
func (obj *Lang) Runtime() *clip.Runtime {
	return obj.runtime
}

// Env returns the top-level environment that Run evaluates in. It must not be
// used while a Run is in progress in another goroutine.
func (obj *Lang) Env() *funcs.Env {
	return obj.env
}

// Globals returns a copy of the global scope as it is now.
func (obj *Lang) Globals() *interfaces.Scope {
	obj.runMutex.Lock()
	defer obj.runMutex.Unlock()
	return obj.env.Globals.Copy()
}

// Close releases the bodies of the script functions and shuts down the thread
// guards of the clip runtime.
func (obj *Lang) Close() error {
	var reterr error
	obj.mutex.Lock()
	defs := obj.defs
	obj.defs = nil
	obj.mutex.Unlock()
	for _, def := range defs {
		reterr = errwrap.Append(reterr, def.Close())
	}
	reterr = errwrap.Append(reterr, obj.runtime.Close())
	return reterr
}
