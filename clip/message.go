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
	"fmt"
)

// CacheKey identifies a control message. The values are part of the graph node
// ABI. They must never be reassigned, new keys may only be appended.
type CacheKey uint32

const (
	// CacheRegister opts a frame range into the caching layer.
	CacheRegister CacheKey = 0xFFFF0004

	// CacheUnregister removes a clip from the caching layer.
	CacheUnregister CacheKey = 0xFFFF0006

	// CacheRequestFrame asks a producer if it already caches a range.
	CacheRequestFrame CacheKey = 0xFFFF0007

	// CacheRequestFrameAndExpand asks a producer if it caches a range, and
	// asks it to grow its coverage to include that range if it can.
	CacheRequestFrameAndExpand CacheKey = 0xFFFF0008

	// CacheRegisterGuard attaches a thread guard around a subgraph.
	CacheRegisterGuard CacheKey = 0xFFFF0009

	// CacheUnregisterGuard removes a thread guard.
	CacheUnregisterGuard CacheKey = 0xFFFF000A
)

// CacheKeys returns every known key, in numeric order.
func CacheKeys() []CacheKey {
	return []CacheKey{
		CacheRegister,
		CacheUnregister,
		CacheRequestFrame,
		CacheRequestFrameAndExpand,
		CacheRegisterGuard,
		CacheUnregisterGuard,
	}
}

// String returns a name for the key. Unknown keys print their number.
func (obj CacheKey) String() string {
	switch obj {
	case CacheRegister:
		return "RegisterCache"
	case CacheUnregister:
		return "UnregisterCache"
	case CacheRequestFrame:
		return "RequestCachedFrame"
	case CacheRequestFrameAndExpand:
		return "RequestCachedFrameAndExpand"
	case CacheRegisterGuard:
		return "RegisterThreadGuard"
	case CacheUnregisterGuard:
		return "UnregisterThreadGuard"
	}
	return fmt.Sprintf("CacheKey(%#x)", uint32(obj))
}

// Range is a half open range of frames: [Start, Start+Count).
type Range struct {
	Start int
	Count int
}

// End returns the first frame after the range.
func (obj Range) End() int {
	return obj.Start + obj.Count
}

// Empty returns true if the range holds no frames.
func (obj Range) Empty() bool {
	return obj.Count <= 0
}

// Has returns true if frame n is inside the range.
func (obj Range) Has(n int) bool {
	return !obj.Empty() && n >= obj.Start && n < obj.End()
}

// Contains returns true if every frame of r is inside this range. An empty r is
// contained by anything.
func (obj Range) Contains(r Range) bool {
	if r.Empty() {
		return true
	}
	if obj.Empty() {
		return false
	}
	return r.Start >= obj.Start && r.End() <= obj.End()
}

// Union returns the smallest range which contains both ranges.
func (obj Range) Union(r Range) Range {
	if obj.Empty() {
		return r
	}
	if r.Empty() {
		return obj
	}
	start := obj.Start
	if r.Start < start {
		start = r.Start
	}
	end := obj.End()
	if r.End() > end {
		end = r.End()
	}
	return Range{Start: start, Count: end - start}
}

// String returns a visual representation of the range.
func (obj Range) String() string {
	return fmt.Sprintf("[%d, %d)", obj.Start, obj.End())
}

// CacheMessage is sent from one node to an adjacent one.
type CacheMessage struct {
	Key CacheKey

	// Range is the frame range that the message is about. It is unused by
	// the thread guard keys.
	Range Range
}

// CacheReply is the answer to a CacheMessage.
type CacheReply struct {
	// Handled is true if the receiver recognized and honoured the message.
	// For the request keys, it means "yes, I cache that".
	Handled bool

	// Coverage is the range that the receiver caches after handling the
	// message. It is empty if the receiver does no caching.
	Coverage Range
}

// DefaultCacheReply is the reply for any message which a clip does not handle.
// It means "declined, not cached".
func DefaultCacheReply() *CacheReply {
	return &CacheReply{}
}
