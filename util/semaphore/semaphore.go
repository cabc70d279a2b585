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

// Package semaphore contains an implementation of a counting semaphore that
// can be shut down, and whose waiters give up when their context is cancelled.
package semaphore

import (
	"context"
	"fmt"
	"sync"
)

// ErrClosed is returned by P and V when the semaphore was shut down while they
// were waiting.
var ErrClosed = fmt.Errorf("closed")

// Semaphore is a counting semaphore. Build it with NewSemaphore.
type Semaphore struct {
	c      chan struct{}
	closed chan struct{}
	once   *sync.Once
}

// NewSemaphore creates a new semaphore which holds at most size resources.
func NewSemaphore(size int) *Semaphore {
	if size <= 0 {
		size = 1
	}
	return &Semaphore{
		c:      make(chan struct{}, size),
		closed: make(chan struct{}),
		once:   &sync.Once{},
	}
}

// Close shuts down the semaphore and wakes up everyone that is waiting on it.
// It is safe to call more than once.
func (obj *Semaphore) Close() {
	obj.once.Do(func() { close(obj.closed) })
}

// P acquires n resources. If it has to give up part way, the resources it took
// are released again before the error is returned.
func (obj *Semaphore) P(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case obj.c <- struct{}{}: // acquire one
		case <-obj.closed:
			obj.release(i)
			return ErrClosed
		case <-ctx.Done():
			obj.release(i)
			return ctx.Err()
		}
	}
	return nil
}

// V releases n resources.
func (obj *Semaphore) V(n int) error {
	select {
	case <-obj.closed:
		return ErrClosed
	default:
	}
	obj.release(n)
	return nil
}

// release gives back n resources. Giving back more than was taken is a bug in
// the caller.
func (obj *Semaphore) release(n int) {
	for i := 0; i < n; i++ {
		select {
		case <-obj.c:
		default:
			panic("semaphore: V > P")
		}
	}
}

// Held returns the number of resources that are currently acquired.
func (obj *Semaphore) Held() int {
	return len(obj.c)
}

// Size returns the number of resources that can be held at once.
func (obj *Semaphore) Size() int {
	return cap(obj.c)
}
