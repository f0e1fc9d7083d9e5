/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package slot holds per-instance memoized values.
//
// A Slot is either empty or filled. Emptiness is tracked explicitly, so a
// zero value produced by an initializer (0, "", nil) still counts as filled.
// A Table maps attribute names to slots and is meant to be embedded in the
// host type; the zero Table is ready to use and must not be copied after
// first use.
package slot

import (
	"fmt"
	"sort"
	"sync"
)

// Slot is a two-state memo cell: Empty or Filled(value).
// A filled slot never becomes empty again.
type Slot[T any] struct {
	mu     sync.Mutex
	filled bool
	value  T
}

// Filled reports whether the slot holds a value.
func (s *Slot[T]) Filled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filled
}

// Peek returns the stored value and whether the slot is filled.
// It never runs an initializer.
func (s *Slot[T]) Peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.filled
}

// Set fills the slot with v regardless of its current state.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	s.value, s.filled = v, true
	s.mu.Unlock()
}

// Load returns the stored value, or runs init and stores its result.
//
// When exclusive is true the slot lock is held while init runs, so init
// runs at most once per successful fill even under concurrent readers.
// When exclusive is false init runs unlocked; if another reader filled the
// slot meanwhile, that value wins and is returned.
//
// An error from init is returned unchanged and leaves the slot empty.
func (s *Slot[T]) Load(init func() (T, error), exclusive bool) (T, error) {
	s.mu.Lock()
	if s.filled {
		v := s.value
		s.mu.Unlock()
		return v, nil
	}

	if exclusive {
		defer s.mu.Unlock()
		v, err := init()
		if err != nil {
			var zero T
			return zero, err
		}
		s.value, s.filled = v, true
		return v, nil
	}

	s.mu.Unlock()
	v, err := init()
	if err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filled {
		return s.value, nil
	}
	s.value, s.filled = v, true
	return v, nil
}

// cell is the type-erased view of a Slot stored in a Table.
type cell interface {
	Filled() bool
}

// Table is the per-instance slot storage. Slots are created on first use.
type Table struct {
	mu    sync.Mutex
	cells map[string]cell
}

// LazySlots returns t. Embedding a Table makes the host satisfy
// apis.Object.
func (t *Table) LazySlots() *Table { return t }

// Filled reports whether the slot for name exists and is filled.
func (t *Table) Filled(name string) bool {
	t.mu.Lock()
	c, ok := t.cells[name]
	t.mu.Unlock()
	return ok && c.Filled()
}

// FilledNames returns the names of all filled slots, sorted.
func (t *Table) FilledNames() []string {
	t.mu.Lock()
	cells := make(map[string]cell, len(t.cells))
	for n, c := range t.cells {
		cells[n] = c
	}
	t.mu.Unlock()

	out := make([]string, 0, len(cells))
	for n, c := range cells {
		if c.Filled() {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Of returns the slot for name in t, creating an empty one if needed.
// It panics if name was previously used with a different value type,
// which only happens when two declarations share a name on one instance.
func Of[T any](t *Table, name string) *Slot[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.cells[name]; ok {
		s, ok := c.(*Slot[T])
		if !ok {
			panic(fmt.Sprintf("slot: %q already holds %T", name, c))
		}
		return s
	}
	if t.cells == nil {
		t.cells = make(map[string]cell)
	}
	s := &Slot[T]{}
	t.cells[name] = s
	return s
}
