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
)

// Trim selects a range of frames from a longer clip. It does no caching of its
// own since it is only an index translation. Cache requests are forwarded to
// the child with the range shifted, so that a cache above the child is found
// and reused instead of a second one being stacked on top of the trim.
type Trim struct {
	Base

	First int
	Count int

	child Clip
}

// NewTrim builds a new trim filter. A count of zero means "until the end".
func NewTrim(child Clip, first, count int) (*Trim, error) {
	if child == nil {
		return nil, fmt.Errorf("trim needs a child clip")
	}
	total := child.Info().NumFrames
	if first < 0 || first >= total {
		return nil, fmt.Errorf("first frame %d is outside of [0, %d)", first, total)
	}
	if count <= 0 || first+count > total {
		count = total - first
	}
	return &Trim{
		Base:  Base{Kind: "trim"},
		First: first,
		Count: count,
		child: child,
	}, nil
}

// Child returns the clip that frames are pulled from.
func (obj *Trim) Child() Clip { return obj.child }

// SetChild replaces the child.
func (obj *Trim) SetChild(child Clip) { obj.child = child }

// Info returns the static description of this clip.
func (obj *Trim) Info() *Info {
	info := *obj.child.Info() // copy
	info.NumFrames = obj.Count
	return &info
}

// GetFrame produces frame n by pulling the translated frame from the child.
func (obj *Trim) GetFrame(ctx context.Context, n int) (*Frame, error) {
	n = Clamp(n, obj.Count)
	frame, err := obj.child.GetFrame(ctx, obj.First+n)
	if err != nil {
		return nil, err
	}
	return &Frame{
		N:    n,
		Data: frame.Data,
	}, nil
}

// SendMessage forwards the two request keys to the child, and declines the
// rest.
func (obj *Trim) SendMessage(msg *CacheMessage) *CacheReply {
	switch msg.Key {
	case CacheRequestFrame, CacheRequestFrameAndExpand:
		shifted := &CacheMessage{
			Key:   msg.Key,
			Range: Range{Start: msg.Range.Start + obj.First, Count: msg.Range.Count},
		}
		reply := obj.child.SendMessage(shifted)
		if reply == nil || !reply.Handled {
			return DefaultCacheReply()
		}
		// translate the coverage back into our own frame numbers
		cov := reply.Coverage
		start := cov.Start - obj.First
		end := cov.End() - obj.First
		if start < 0 {
			start = 0
		}
		if end > obj.Count {
			end = obj.Count
		}
		if end <= start {
			return DefaultCacheReply()
		}
		return &CacheReply{
			Handled:  msg.Range.Start >= start && msg.Range.End() <= end,
			Coverage: Range{Start: start, Count: end - start},
		}
	}
	return DefaultCacheReply()
}
