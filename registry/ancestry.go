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

package registry

import (
	"reflect"
	"sort"

	"go.uber.org/zap"

	"dirpx.dev/lazy/apis"
)

// identity is the projection of an instance onto itself.
func identity(obj any) any { return obj }

// compose returns the projection that applies inner, then outer.
func compose(inner, outer apis.Upcast) apis.Upcast {
	return func(obj any) any { return outer(inner(obj)) }
}

// walk visits t and its ancestors depth first, own entry before parents,
// parents in link order. Each type is visited once, through the first
// path that reaches it, so diamonds contribute a shared ancestor once.
// Types without an entry are skipped; linked types with no declarations
// are still traversed. visit returns false to stop the walk.
//
// Every ancestor within MaxDepth links of t is visited, whatever path
// reaches it first: a type reached again over a shorter path has its
// parents followed again from the smaller depth.
//
// visit runs under the read lock and must not call back into r.
func (r *registry) walk(t reflect.Type, visit func(e *typeEntry, up apis.Upcast) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	visited := make(map[reflect.Type]bool)
	// best is the smallest depth each type's parents were followed from.
	best := make(map[reflect.Type]int)
	truncated := make(map[reflect.Type]bool)

	var rec func(t reflect.Type, up apis.Upcast, depth int) bool
	rec = func(t reflect.Type, up apis.Upcast, depth int) bool {
		if d, ok := best[t]; ok && d <= depth {
			return true
		}
		best[t] = depth

		e, ok := r.types[t]
		if !ok {
			return true
		}
		if !visited[t] {
			visited[t] = true
			if !visit(e, up) {
				return false
			}
		}
		if len(e.parents) == 0 {
			return true
		}
		if depth >= r.cfg.MaxDepth {
			truncated[t] = true
			return true
		}
		delete(truncated, t)
		for _, pl := range e.parents {
			if !rec(pl.t, compose(up, pl.up), depth+1) {
				return false
			}
		}
		return true
	}
	if !rec(t, identity, 0) {
		return
	}

	for tt := range truncated {
		r.log.Warn("lazy ancestry truncated",
			zap.Stringer("type", tt),
			zap.Int("max_depth", r.cfg.MaxDepth),
		)
	}
}

// bindings resolves every lazy name reachable from t to its nearest declaration.
// The result is computed fresh on each call.
func (r *registry) bindings(t reflect.Type) map[string]apis.Binding {
	out := make(map[string]apis.Binding)
	r.walk(t, func(e *typeEntry, up apis.Upcast) bool {
		for n, a := range e.attrs {
			if _, ok := out[n]; !ok {
				out[n] = apis.Binding{Attribute: a, Up: up}
			}
		}
		return true
	})
	return out
}

func sortedNames(bs map[string]apis.Binding) []string {
	out := make([]string, 0, len(bs))
	for n := range bs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
