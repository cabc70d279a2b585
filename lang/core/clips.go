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

package core

import (
	"fmt"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
)

const (
	// DefaultBlankLength is the number of frames of a BlankClip.
	DefaultBlankLength = 240

	// DefaultBlankWidth is the width of a BlankClip.
	DefaultBlankWidth = 640

	// DefaultBlankHeight is the height of a BlankClip.
	DefaultBlankHeight = 480
)

func init() {
	register("BlankClip", "[length]i[width]i[height]i[color]i", BlankClip, true)
	register("Trim", "cii", Trim, true)
	register("FrameCount", "c", FrameCount, false)
}

// BlankClip builds a source clip of a single color. Every parameter is optional
// and named.
func BlankClip(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	runtime, err := runtimeOf(userData)
	if err != nil {
		return nil, err
	}
	length := args.Int(0, DefaultBlankLength)
	width := args.Int(1, DefaultBlankWidth)
	height := args.Int(2, DefaultBlankHeight)
	color := args.Int(3, 0)
	if color < 0 || color > 0xffffffff {
		return nil, fmt.Errorf("color %d is out of range", color)
	}

	blank, err := clip.NewBlank(int(length), int(width), int(height), uint32(color))
	if err != nil {
		return nil, err
	}
	runtime.Add(blank)
	return &types.ClipValue{V: blank}, nil
}

// Trim selects the frames from first to last, inclusive. A last of zero means
// the end of the clip, and a negative last is a frame count instead.
func Trim(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	runtime, err := runtimeOf(userData)
	if err != nil {
		return nil, err
	}
	child := args.Clip(0)
	first := int(args.Int(1, 0))
	last := int(args.Int(2, 0))

	count := 0 // until the end
	switch {
	case last < 0:
		count = -last
	case last > 0:
		if last < first {
			return nil, fmt.Errorf("last frame %d is before the first frame %d", last, first)
		}
		count = last - first + 1
	}

	trim, err := clip.NewTrim(child, first, count)
	if err != nil {
		return nil, err
	}
	runtime.Filter(trim)
	return &types.ClipValue{V: trim}, nil
}

// FrameCount returns the number of frames of a clip.
func FrameCount(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return &types.IntValue{V: int64(args.Clip(0).Info().NumFrames)}, nil
}
