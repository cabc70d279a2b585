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

// Package clip contains the contract that every node of the processing graph
// fulfills, the cache and thread guard negotiation protocol that adjacent
// nodes speak, and a few small node implementations which are used by the
// host. Clips are lazy: nothing is computed until a frame is pulled.
package clip

import (
	"context"
	"fmt"
)

// Frame is one unit of output of a clip. The contents of Data are opaque at
// this layer, since per pixel processing happens elsewhere.
type Frame struct {
	// N is the frame number that was requested.
	N int

	// Data is the frame payload. It must not be modified once returned.
	Data []byte
}

// Info is the static description of a clip.
type Info struct {
	// NumFrames is the total number of frames that the clip can produce.
	NumFrames int

	Width  int
	Height int
}

// Clip is the interface that any node in the processing graph must fulfill.
// GetFrame may be called concurrently from many goroutines, unless the clip is
// wrapped by a Guard.
type Clip interface {
	fmt.Stringer // String() string, which must be unique in a graph

	// Info returns the static description of this clip.
	Info() *Info

	// GetFrame produces frame n. Frame numbers outside of the clip are
	// clamped to the first or last frame.
	GetFrame(ctx context.Context, n int) (*Frame, error)

	// SendMessage is the control channel between adjacent nodes. It must
	// never fail. A clip that doesn't recognize a key must return the
	// DefaultCacheReply.
	SendMessage(msg *CacheMessage) *CacheReply
}

// Filter is a clip which pulls its frames from exactly one child clip.
type Filter interface {
	Clip

	// Child returns the clip that frames are pulled from.
	Child() Clip

	// SetChild replaces the child. This is used when the runtime inserts a
	// cache or a guard between two nodes. It must only be called while the
	// graph is being built.
	SetChild(Clip)
}

// Clamp returns n clamped into the valid frame range of a clip with the given
// number of frames.
func Clamp(n, numFrames int) int {
	if n >= numFrames {
		n = numFrames - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}
