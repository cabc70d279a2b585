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
	"sync"

	"github.com/google/uuid"
)

// Base is an embeddable struct which gives a clip a unique name and the
// default reply to every control message. Clips that want to take part in the
// negotiation override SendMessage.
type Base struct {
	// Kind is a short name for the type of clip, eg: "blank" or "trim".
	Kind string

	once sync.Once
	id   string
}

// ID returns the unique id of this clip. It is generated on first use.
func (obj *Base) ID() string {
	obj.once.Do(func() {
		obj.id = uuid.New().String()
	})
	return obj.id
}

// String returns the unique name of this clip. This is used as the vertex name
// in the graph.
func (obj *Base) String() string {
	kind := obj.Kind
	if kind == "" {
		kind = "clip"
	}
	return fmt.Sprintf("%s[%s]", kind, obj.ID()[:8])
}

// SendMessage declines every message.
func (obj *Base) SendMessage(*CacheMessage) *CacheReply {
	return DefaultCacheReply()
}
