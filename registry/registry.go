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
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/lazy/apis"
	"dirpx.dev/lazy/config"
	"dirpx.dev/lazy/naming"
	uref "dirpx.dev/lazy/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("lazy(registry): nil reflect.Type provided")
	// ErrNilUpcast is returned when a parent link has no projection.
	ErrNilUpcast = errors.New("lazy(registry): nil upcast provided")
	// ErrSelfExtend is returned when a type is linked as its own parent.
	ErrSelfExtend = errors.New("lazy(registry): type cannot extend itself")
	// ErrCyclicExtend is returned when a parent link would close a cycle.
	ErrCyclicExtend = errors.New("lazy(registry): parent link would create a cycle")
	// ErrTypeClash is returned when a name would be bound to two value
	// types along one ancestry.
	ErrTypeClash = errors.New("lazy(registry): attribute name reused with a different value type")
	// ErrObjectMismatch is returned when an attribute is loaded on an
	// object that is not an instance of its owner.
	ErrObjectMismatch = errors.New("lazy(registry): object is not an instance of the attribute owner")
)

// New constructs a Registry that normalizes owner types according to cfg.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &registry{
		cfg:   cfg,
		log:   cfg.L().With(zap.String("component", "lazy.registry")),
		types: make(map[reflect.Type]*typeEntry),
	}
}

// registry is the default Registry implementation.
type registry struct {
	// cfg is the configuration used for type normalization and traversal.
	cfg apis.Config
	// log is cfg's logger scoped to the registry.
	log *zap.Logger
	// mu guards types, links and count.
	mu sync.RWMutex
	// types maps a normalized owner type to its declarations and parents.
	types map[reflect.Type]*typeEntry
	// links records every parent link in declaration order.
	links []apis.Link
	// count tracks the number of declared (owner, name) pairs.
	count int
}

// typeEntry is the per-type registry: own lazy names and parent links.
type typeEntry struct {
	attrs   map[string]apis.Attribute
	parents []parentLink
}

type parentLink struct {
	t  reflect.Type
	up apis.Upcast
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Config returns the configuration the registry was built with.
func (r *registry) Config() apis.Config {
	return r.cfg
}

// Declare adds attr's name to its owner's lazy set.
func (r *registry) Declare(attr apis.Attribute) (apis.Handle, error) {
	if attr == nil {
		return apis.Handle{}, &apis.DefinitionError{Reason: "nil attribute"}
	}
	name := attr.Name()
	if err := naming.Validate(name); err != nil {
		return apis.Handle{}, err
	}
	if attr.Owner() == nil {
		return apis.Handle{}, ErrNilType
	}
	owner, err := uref.Normalize(attr.Owner(), r.cfg)
	if err != nil {
		return apis.Handle{}, &apis.DefinitionError{
			Owner:  attr.Owner().String(),
			Name:   name,
			Reason: err.Error(),
		}
	}

	r.mu.Lock()
	if other, at := r.clashLocked(owner, attr); other != nil {
		r.mu.Unlock()
		return apis.Handle{}, &apis.DefinitionError{
			Owner:  attr.Owner().String(),
			Name:   name,
			Reason: fmt.Sprintf("declared as %s on %s, %s here", other.ValueType(), at, attr.ValueType()),
			Err:    ErrTypeClash,
		}
	}
	e := r.entryLocked(owner)
	_, existed := e.attrs[name]
	e.attrs[name] = attr
	if !existed {
		r.count++
	}
	r.mu.Unlock()

	r.log.Debug("lazy attribute declared",
		zap.Stringer("owner", owner),
		zap.String("attribute", name),
		zap.Stringer("kind", attr.Kind()),
		zap.Bool("redeclared", existed),
	)

	return apis.Handle{Owner: owner, Name: name, Kind: attr.Kind()}, nil
}

// Extend records parent as an ancestor of child. Linking the same pair
// twice is a no-op.
func (r *registry) Extend(child, parent reflect.Type, up apis.Upcast) error {
	if child == nil || parent == nil {
		return ErrNilType
	}
	if up == nil {
		return ErrNilUpcast
	}
	c, err := uref.Normalize(child, r.cfg)
	if err != nil {
		return err
	}
	p, err := uref.Normalize(parent, r.cfg)
	if err != nil {
		return err
	}
	if c == p {
		return ErrSelfExtend
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ce := r.entryLocked(c)
	for _, pl := range ce.parents {
		if pl.t == p {
			return nil
		}
	}
	if r.reachesLocked(p, c) {
		return ErrCyclicExtend
	}
	if err := r.linkClashLocked(c, p); err != nil {
		return err
	}
	r.entryLocked(p)
	ce.parents = append(ce.parents, parentLink{t: p, up: up})
	r.links = append(r.links, apis.Link{Child: c, Parent: p, Up: up})

	r.log.Debug("lazy parent linked",
		zap.Stringer("child", c),
		zap.Stringer("parent", p),
	)
	return nil
}

// OwnNames returns the names declared directly on t, sorted.
func (r *registry) OwnNames(t reflect.Type) []string {
	nt, err := r.normalize(t)
	if err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.types[nt]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.attrs))
	for n := range e.attrs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// AggregatedNames returns the union of own names over t and its ancestors, sorted.
func (r *registry) AggregatedNames(t reflect.Type) []string {
	nt, err := r.normalize(t)
	if err != nil {
		return nil
	}
	return sortedNames(r.bindings(nt))
}

// Lookup returns the nearest declaration of name for t.
func (r *registry) Lookup(t reflect.Type, name string) (apis.Binding, bool) {
	nt, err := r.normalize(t)
	if err != nil {
		return apis.Binding{}, false
	}
	var (
		found apis.Binding
		ok    bool
	)
	r.walk(nt, func(e *typeEntry, up apis.Upcast) bool {
		if a, hit := e.attrs[name]; hit {
			found, ok = apis.Binding{Attribute: a, Up: up}, true
			return false
		}
		return true
	})
	return found, ok
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]apis.Entry, 0, r.count)
	for t, e := range r.types {
		for _, a := range e.attrs {
			entries = append(entries, apis.Entry{Owner: t, Attribute: a})
		}
	}
	return entries
}

// Links returns a snapshot of every parent link in declaration order.
func (r *registry) Links() []apis.Link {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Link, len(r.links))
	copy(out, r.links)
	return out
}

// Count returns the number of declared (owner, name) pairs.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

func (r *registry) normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	return uref.Normalize(t, r.cfg)
}

// entryLocked returns the entry for t, creating it. r.mu must be held for writing.
func (r *registry) entryLocked(t reflect.Type) *typeEntry {
	e, ok := r.types[t]
	if !ok {
		e = &typeEntry{attrs: make(map[string]apis.Attribute)}
		r.types[t] = e
	}
	return e
}

// reachesLocked reports whether to is from or an ancestor of from.
func (r *registry) reachesLocked(from, to reflect.Type) bool {
	seen := map[reflect.Type]bool{}
	stack := []reflect.Type{from}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t == to {
			return true
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		if e, ok := r.types[t]; ok {
			for _, pl := range e.parents {
				stack = append(stack, pl.t)
			}
		}
	}
	return false
}

// clashLocked returns a declaration of attr's name with another value type
// on an ancestor or descendant of owner, and the type declaring it.
// r.mu must be held.
func (r *registry) clashLocked(owner reflect.Type, attr apis.Attribute) (apis.Attribute, reflect.Type) {
	name, vt := attr.Name(), attr.ValueType()
	for t, e := range r.types {
		if t == owner {
			continue
		}
		other, ok := e.attrs[name]
		if !ok || other.ValueType() == vt {
			continue
		}
		if r.reachesLocked(owner, t) || r.reachesLocked(t, owner) {
			return other, t
		}
	}
	return nil, nil
}

// linkClashLocked reports an ErrTypeClash if linking child to parent would
// put one name with two value types on a single ancestry: some type at or
// below child and some type at or above parent declare it differently.
// r.mu must be held.
func (r *registry) linkClashLocked(child, parent reflect.Type) error {
	var below, above []reflect.Type
	for t := range r.types {
		if r.reachesLocked(t, child) {
			below = append(below, t)
		}
		if r.reachesLocked(parent, t) {
			above = append(above, t)
		}
	}
	for _, bt := range below {
		for name, a := range r.types[bt].attrs {
			for _, at := range above {
				other, ok := r.types[at].attrs[name]
				if ok && other.ValueType() != a.ValueType() {
					return fmt.Errorf("%w: %q is %s on %s and %s on %s",
						ErrTypeClash, name, a.ValueType(), bt, other.ValueType(), at)
				}
			}
		}
	}
	return nil
}
