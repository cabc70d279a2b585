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
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

// Blank is a source clip which produces frames filled with one color. It
// counts how many frames were actually produced, which makes it useful to
// observe what the caches in front of it are doing.
type Blank struct {
	Base

	Length int
	Width  int
	Height int
	Color  uint32

	pulls atomic.Int64
}

// NewBlank builds a new blank source clip.
func NewBlank(length, width, height int, color uint32) (*Blank, error) {
	if length <= 0 {
		return nil, fmt.Errorf("length must be positive, got: %d", length)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size: %dx%d", width, height)
	}
	return &Blank{
		Base:   Base{Kind: "blank"},
		Length: length,
		Width:  width,
		Height: height,
		Color:  color,
	}, nil
}

// Info returns the static description of this clip.
func (obj *Blank) Info() *Info {
	return &Info{
		NumFrames: obj.Length,
		Width:     obj.Width,
		Height:    obj.Height,
	}
}

// GetFrame produces frame n. The payload is the color followed by the frame
// number, so that different frames are distinguishable.
func (obj *Blank) GetFrame(ctx context.Context, n int) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n = Clamp(n, obj.Length)
	obj.pulls.Add(1)

	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], obj.Color)
	binary.LittleEndian.PutUint64(data[4:12], uint64(n))
	return &Frame{
		N:    n,
		Data: data,
	}, nil
}

// Pulls returns how many frames this clip has produced so far.
func (obj *Blank) Pulls() int64 {
	return obj.pulls.Load()
}
