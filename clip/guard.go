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

package clip

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/purpleidea/clipscript/util/errwrap"
	"github.com/purpleidea/clipscript/util/semaphore"
)

// Guard is a thread guard. While it is registered, every GetFrame into the
// subgraph below it is serialized, no matter which goroutine calls it. It is
// transparent to the cache keys, which are forwarded to the child.
type Guard struct {
	Base

	child   Clip
	sem     *semaphore.Semaphore
	enabled atomic.Bool
	closed  atomic.Bool
}

// NewGuard builds a new, disabled, thread guard in front of the child clip.
// Send it CacheRegisterGuard to turn it on.
func NewGuard(child Clip) (*Guard, error) {
	if child == nil {
		return nil, fmt.Errorf("guard needs a child clip")
	}
	return &Guard{
		Base:  Base{Kind: "guard"},
		child: child,
		sem:   semaphore.NewSemaphore(1),
	}, nil
}

// Child returns the clip that frames are pulled from.
func (obj *Guard) Child() Clip { return obj.child }

// SetChild replaces the child.
func (obj *Guard) SetChild(child Clip) { obj.child = child }

// Info returns the static description of this clip.
func (obj *Guard) Info() *Info {
	return obj.child.Info()
}

// Enabled returns true if the guard is currently serializing calls.
func (obj *Guard) Enabled() bool {
	return obj.enabled.Load()
}

// ErrGuardClosed is returned when a frame is pulled through a closed guard.
var ErrGuardClosed = fmt.Errorf("guard is closed")

// GetFrame pulls the frame from the child, one caller at a time.
func (obj *Guard) GetFrame(ctx context.Context, n int) (*Frame, error) {
	if obj.closed.Load() {
		return nil, ErrGuardClosed
	}
	if !obj.enabled.Load() {
		return obj.child.GetFrame(ctx, n)
	}
	if err := obj.sem.P(ctx, 1); err == semaphore.ErrClosed {
		return nil, ErrGuardClosed
	} else if err != nil {
		return nil, errwrap.Wrapf(err, "gave up waiting on the guard")
	}
	defer obj.sem.V(1)
	return obj.child.GetFrame(ctx, n)
}

// Close shuts down the guard and wakes up anyone who is waiting on it.
func (obj *Guard) Close() error {
	if obj.closed.Swap(true) {
		return ErrGuardClosed
	}
	obj.sem.Close()
	return nil
}

// SendMessage handles the guard keys and forwards everything else.
func (obj *Guard) SendMessage(msg *CacheMessage) *CacheReply {
	switch msg.Key {
	case CacheRegisterGuard:
		obj.enabled.Store(true)
		return &CacheReply{Handled: true}

	case CacheUnregisterGuard:
		obj.enabled.Store(false)
		return &CacheReply{Handled: true}
	}

	reply := obj.child.SendMessage(msg)
	if reply == nil {
		return DefaultCacheReply()
	}
	return reply
}
