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

package registry_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apis "dirpx.dev/lazy/apis"
	"dirpx.dev/lazy/config"
	"dirpx.dev/lazy/registry"
)

var names = []string{"n0", "n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8", "n9"}

// TestConcurrentDeclareAndAggregate verifies that Declare, AggregatedNames,
// Lookup, Entries and Count are race-free and consistent under concurrent use.
func TestConcurrentDeclareAndAggregate(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	require.NoError(t, reg.Extend(derivedT, baseT, derivedUp))

	attrs := make([]*counter, len(names))
	for i, n := range names {
		attrs[i] = newCounter(baseT, n, i)
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				got := reg.AggregatedNames(derivedT)
				if len(got) > len(names) {
					t.Errorf("aggregated %d names, at most %d declared", len(got), len(names))
					return
				}
				_, _ = reg.Lookup(derivedT, names[i%len(names)])
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-declaration)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				j := (i + id) % len(attrs)
				if _, err := reg.Declare(attrs[j]); err != nil {
					t.Errorf("declare %s: %v", names[j], err)
					return
				}
			}
		}(w)
	}

	wg.Wait()

	assert.Equal(t, len(names), reg.Count())
	assert.Equal(t, names, reg.AggregatedNames(derivedT))
}

// TestConcurrentEagerLoad runs eager loads of distinct instances in parallel;
// each instance computes each attribute exactly once.
func TestConcurrentEagerLoad(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	a := newCounter(baseT, "a", 1)
	b := newCounter(derivedT, "b", 2)
	_, err := reg.Declare(a)
	require.NoError(t, err)
	_, err = reg.Declare(b)
	require.NoError(t, err)
	require.NoError(t, reg.Extend(derivedT, baseT, derivedUp))

	const instances = 64
	objs := make([]*derived, instances)
	for i := range objs {
		objs[i] = &derived{}
	}

	wg := sync.WaitGroup{}
	wg.Add(instances * 2)
	for _, o := range objs {
		for k := 0; k < 2; k++ {
			go func(o *derived) {
				defer wg.Done()
				if err := reg.EagerLoad(o); err != nil {
					t.Errorf("eager load: %v", err)
				}
			}(o)
		}
	}
	wg.Wait()

	assert.Equal(t, int32(instances), a.calls.Load())
	assert.Equal(t, int32(instances), b.calls.Load())
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
