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

//go:build !root

package semaphore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSemaphoreHeld1(t *testing.T) {
	ctx := context.Background()
	sem := NewSemaphore(2)
	if err := sem.P(ctx, 2); err != nil {
		t.Errorf("unexpected error: %+v", err)
		return
	}
	if i := sem.Held(); i != 2 {
		t.Errorf("expected 2 held, got: %d", i)
	}
	if err := sem.V(1); err != nil {
		t.Errorf("unexpected error: %+v", err)
	}
	if i := sem.Held(); i != 1 {
		t.Errorf("expected 1 held, got: %d", i)
	}
	if i := sem.Size(); i != 2 {
		t.Errorf("expected a size of 2, got: %d", i)
	}
}

func TestSemaphoreSize0(t *testing.T) {
	type test struct { // an individual test
		size     int
		expected int
	}
	testCases := []test{}
	testCases = append(testCases, test{size: -1, expected: 1})
	testCases = append(testCases, test{size: 0, expected: 1})
	testCases = append(testCases, test{size: 3, expected: 3})

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (size %d)", index, tc.size), func(t *testing.T) {
			if i := NewSemaphore(tc.size).Size(); i != tc.expected {
				t.Errorf("expected a size of %d, got: %d", tc.expected, i)
			}
		})
	}
}

func TestSemaphoreClose1(t *testing.T) {
	sem := NewSemaphore(1)
	if err := sem.P(context.Background(), 1); err != nil {
		t.Errorf("unexpected error: %+v", err)
		return
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	var perr error
	go func() {
		defer wg.Done()
		perr = sem.P(context.Background(), 1) // blocks until close
	}()
	sem.Close()
	sem.Close() // twice is fine
	wg.Wait()
	if perr != ErrClosed {
		t.Errorf("expected closed error, got: %+v", perr)
	}
	if err := sem.V(1); err != ErrClosed {
		t.Errorf("expected closed error, got: %+v", err)
	}
}

func TestSemaphoreCancel1(t *testing.T) {
	sem := NewSemaphore(2)
	defer sem.Close()
	if err := sem.P(context.Background(), 1); err != nil {
		t.Errorf("unexpected error: %+v", err)
		return
	}

	// only one more fits, so asking for two must give up and hand it back
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := sem.P(ctx, 2); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected a deadline error, got: %+v", err)
	}
	if i := sem.Held(); i != 1 {
		t.Errorf("expected 1 held after giving up, got: %d", i)
	}
}

func TestSemaphorePanic1(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a panic")
		}
	}()
	sem := NewSemaphore(1)
	sem.V(1) // nothing was acquired
}

// TestSemaphoreMutex1 uses a semaphore of one as a mutex, the way the thread
// guard does, and checks that no two holders ever overlap.
func TestSemaphoreMutex1(t *testing.T) {
	sem := NewSemaphore(1)
	defer sem.Close()

	mutex := &sync.Mutex{}
	active, peak := 0, 0
	wg := &sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.P(context.Background(), 1); err != nil {
				t.Errorf("unexpected error: %+v", err)
				return
			}
			defer sem.V(1)

			mutex.Lock()
			active++
			if active > peak {
				peak = active
			}
			mutex.Unlock()

			mutex.Lock()
			active--
			mutex.Unlock()
		}()
	}
	wg.Wait()
	if peak != 1 {
		t.Errorf("expected one holder at a time, got: %d", peak)
	}
	if i := sem.Held(); i != 0 {
		t.Errorf("expected nothing held, got: %d", i)
	}
}
