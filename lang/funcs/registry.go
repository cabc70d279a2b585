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
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Observer receives a notification for each resolution. It is used to feed
// metrics without this package depending on them.
type Observer interface {
	// ObserveResolve is called with the pass that decided the outcome
	// ("strict", "loose" or "" if no pass ran) and the result ("ok",
	// "unknown", "ambiguous" or "nomatch").
	ObserveResolve(pass, result string)
}

// Registry holds every callable function. It is filled during the load phase
// and then frozen. After Freeze, it is read only and Resolve may be called
// concurrently without any locking.
type Registry struct {
	// Policy is the coercion table for the loose pass. If nil, the
	// DefaultPolicy is used.
	Policy *CoercionPolicy

	// Observer, if set, is told about every resolution.
	Observer Observer

	Debug bool
	Logf  func(format string, v ...interface{})

	mutex   *sync.RWMutex
	frozen  atomic.Bool
	records []*Record
	index   map[string][]*Record // folded name and folded canonical name
}

// Init must be called before the registry is used.
func (obj *Registry) Init() error {
	if obj.Policy == nil {
		obj.Policy = DefaultPolicy()
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {} // silent
	}
	obj.mutex = &sync.RWMutex{}
	obj.records = []*Record{}
	obj.index = make(map[string][]*Record)
	return nil
}

// Register adds a function. The signature tokens are parsed once here. Several
// functions may share a name, and that forms an overload set. Registering the
// same name and signature twice is allowed, but the second record is flagged
// as a duplicate, and a call which matches both will be ambiguous.
func (obj *Registry) Register(name, signature string, fn Func, userData interface{}, modulePath string) (*Record, error) {
	if name == "" || strings.TrimSpace(name) != name || strings.ContainsAny(name, " \t\n") {
		return nil, fmt.Errorf("invalid function name: `%s`", name)
	}
	if fn == nil {
		return nil, fmt.Errorf("function `%s` has no entry point", name)
	}
	sig, err := ParseSignature(signature)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not register `%s`", name)
	}

	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	if obj.frozen.Load() {
		return nil, errwrap.Wrapf(interfaces.ErrRegistryFrozen, "could not register `%s`", name)
	}

	record := &Record{
		Name:          name,
		CanonicalName: CanonicalName(name, modulePath),
		Sig:           sig,
		Fn:            fn,
		UserData:      userData,
		ModulePath:    modulePath,
	}
	for _, x := range obj.index[interfaces.Fold(name)] {
		if interfaces.Fold(x.Name) == interfaces.Fold(name) && x.Sig.Equal(sig) {
			record.Duplicate = true
			obj.Logf("duplicate registration of %s, first was %s", record, x)
			break
		}
	}

	obj.records = append(obj.records, record)
	keys := []string{interfaces.Fold(record.Name)}
	if c := interfaces.Fold(record.CanonicalName); c != keys[0] {
		keys = append(keys, c)
	}
	for _, k := range keys {
		obj.index[k] = append(obj.index[k], record)
	}
	if obj.Debug {
		obj.Logf("registered: %s", record)
	}
	return record, nil
}

// Freeze ends the load phase. Every later Register fails.
func (obj *Registry) Freeze() {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	obj.frozen.Store(true)
}

// Frozen returns true once Freeze was called.
func (obj *Registry) Frozen() bool {
	return obj.frozen.Load()
}

// rlock takes the read lock while the registry can still change, and returns
// the matching unlock function.
func (obj *Registry) rlock() func() {
	if obj.frozen.Load() {
		return func() {}
	}
	obj.mutex.RLock()
	return obj.mutex.RUnlock
}

// Lookup returns every record which can be called by that name. The name is
// matched without regard to case, against both the plain and the canonical
// names. The records are in registration order.
func (obj *Registry) Lookup(name string) []*Record {
	defer obj.rlock()()
	return obj.lookup(name)
}

func (obj *Registry) lookup(name string) []*Record {
	records := obj.index[interfaces.Fold(name)]
	out := make([]*Record, len(records))
	copy(out, records)
	return out
}

// Records returns every record, sorted by canonical name. Records with the
// same canonical name stay in registration order.
func (obj *Registry) Records() []*Record {
	defer obj.rlock()()
	records := make([]*Record, len(obj.records))
	copy(records, obj.records)
	sort.SliceStable(records, func(i, j int) bool {
		return interfaces.Fold(records[i].CanonicalName) < interfaces.Fold(records[j].CanonicalName)
	})
	return records
}

// Len returns the number of records.
func (obj *Registry) Len() int {
	defer obj.rlock()()
	return len(obj.records)
}
