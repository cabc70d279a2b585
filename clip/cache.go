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
	"sync"

	"github.com/purpleidea/clipscript/util/errwrap"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultCacheSize is the number of frames that a cache holds when it
	// wasn't told anything else.
	DefaultCacheSize = 32
)

// Cache wraps a child clip and keeps recently produced frames. Only frames that
// fall inside the registered window are stored. The window starts empty, so a
// fresh cache is a pass through until CacheRegister or
// CacheRequestFrameAndExpand opens it.
type Cache struct {
	Base

	child Clip
	size  int

	mutex  *sync.Mutex
	window Range
	frames *lru.Cache
	hits   int64
	misses int64
}

// NewCache builds a new cache in front of the child clip. The size is the
// minimum capacity in frames, and it grows with the window.
func NewCache(child Clip, size int) (*Cache, error) {
	if child == nil {
		return nil, fmt.Errorf("cache needs a child clip")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	frames, err := lru.New(size)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not build the frame cache")
	}
	return &Cache{
		Base:   Base{Kind: "cache"},
		child:  child,
		size:   size,
		mutex:  &sync.Mutex{},
		frames: frames,
	}, nil
}

// Child returns the clip that frames are pulled from.
func (obj *Cache) Child() Clip { return obj.child }

// SetChild replaces the child and drops everything that was cached.
func (obj *Cache) SetChild(child Clip) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	obj.child = child
	obj.frames.Purge()
}

// Info returns the static description of this clip.
func (obj *Cache) Info() *Info {
	return obj.child.Info()
}

// GetFrame returns the cached frame if we have it, and otherwise pulls it from
// the child. The child is pulled without holding the lock.
func (obj *Cache) GetFrame(ctx context.Context, n int) (*Frame, error) {
	n = Clamp(n, obj.child.Info().NumFrames)

	obj.mutex.Lock()
	window := obj.window
	if window.Has(n) {
		if v, ok := obj.frames.Get(n); ok {
			obj.hits++
			obj.mutex.Unlock()
			return v.(*Frame), nil
		}
	}
	obj.misses++
	obj.mutex.Unlock()

	frame, err := obj.child.GetFrame(ctx, n)
	if err != nil {
		return nil, err
	}

	if window.Has(n) {
		obj.frames.Add(n, frame) // the lru has its own lock
	}
	return frame, nil
}

// Stats returns the number of cache hits and misses so far.
func (obj *Cache) Stats() (hits, misses int64) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.hits, obj.misses
}

// Window returns the range of frames that this cache stores.
func (obj *Cache) Window() Range {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.window
}

// expand grows the window, and the capacity along with it. It must be called
// with the lock held.
func (obj *Cache) expand(r Range) {
	obj.window = obj.window.Union(r)
	if c := obj.window.Count; c > obj.size {
		obj.size = c
		obj.frames.Resize(c)
	}
}

// SendMessage handles the cache keys. The thread guard keys and unknown keys
// get the default reply.
func (obj *Cache) SendMessage(msg *CacheMessage) *CacheReply {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()

	switch msg.Key {
	case CacheRegister:
		obj.expand(msg.Range)
		return &CacheReply{Handled: true, Coverage: obj.window}

	case CacheUnregister:
		obj.window = Range{}
		obj.frames.Purge()
		return &CacheReply{Handled: true}

	case CacheRequestFrame:
		return &CacheReply{
			Handled:  obj.window.Contains(msg.Range),
			Coverage: obj.window,
		}

	case CacheRequestFrameAndExpand:
		obj.expand(msg.Range)
		return &CacheReply{Handled: true, Coverage: obj.window}
	}

	return DefaultCacheReply()
}
