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

package lazy

import (
	"fmt"
	"reflect"

	"dirpx.dev/lazy/apis"
	"dirpx.dev/lazy/naming"
	"dirpx.dev/lazy/registry"
	"dirpx.dev/lazy/slot"
)

// Initializer computes a lazy attribute for one instance. It may read other
// state of o, including other lazy attributes, but must not read the
// attribute it initializes.
type Initializer[O apis.Object, T any] func(o O) (T, error)

// Reader is the generated read accessor of a lazy attribute of type T on
// host type O.
type Reader[O apis.Object, T any] struct {
	name      string
	owner     reflect.Type
	init      Initializer[O, T]
	kind      apis.Kind
	exclusive bool
	handle    apis.Handle
}

// Ensure Reader implements apis.Attribute.
var _ apis.Attribute = (*Reader[*slot.Table, int])(nil)

// Accessor is a Reader that can also overwrite the attribute.
type Accessor[O apis.Object, T any] struct {
	*Reader[O, T]
}

// Name returns the attribute name.
func (r *Reader[O, T]) Name() string { return r.name }

// Owner returns the declared host type O.
func (r *Reader[O, T]) Owner() reflect.Type { return r.owner }

// Kind reports whether a write accessor was generated.
func (r *Reader[O, T]) Kind() apis.Kind { return r.kind }

// ValueType returns T.
func (r *Reader[O, T]) ValueType() reflect.Type { return reflect.TypeFor[T]() }

// Handle identifies what the declaration generated.
func (r *Reader[O, T]) Handle() apis.Handle { return r.handle }

// Get returns o's value for the attribute, computing and storing it on the
// first call. Initializer errors are returned unchanged and nothing is
// stored, so a later Get retries.
func (r *Reader[O, T]) Get(o O) (T, error) {
	s := slot.Of[T](o.LazySlots(), r.name)
	return s.Load(func() (T, error) { return r.init(o) }, r.exclusive)
}

// Must is Get that panics on an initializer error.
func (r *Reader[O, T]) Must(o O) T {
	v, err := r.Get(o)
	if err != nil {
		panic(err)
	}
	return v
}

// Peek returns o's stored value without computing it.
func (r *Reader[O, T]) Peek(o O) (T, bool) {
	if !o.LazySlots().Filled(r.name) {
		var zero T
		return zero, false
	}
	return slot.Of[T](o.LazySlots(), r.name).Peek()
}

// Load implements apis.Attribute.
func (r *Reader[O, T]) Load(obj any) error {
	o, ok := obj.(O)
	if !ok {
		return fmt.Errorf("%w: %s on %T", registry.ErrObjectMismatch, r.name, obj)
	}
	_, err := r.Get(o)
	return err
}

// Loaded implements apis.Attribute.
func (r *Reader[O, T]) Loaded(obj any) bool {
	o, ok := obj.(O)
	return ok && o.LazySlots().Filled(r.name)
}

// Set stores v as o's value, replacing any previous value. The initializer
// is not consulted.
func (a Accessor[O, T]) Set(o O, v T) {
	slot.Of[T](o.LazySlots(), a.name).Set(v)
}

// DeclareReader declares a read-only lazy attribute on O in the
// process-wide registry.
//
// A name may be redeclared on a descendant of O to override it, but only
// with the same T: hosts that embed their parents share one slot table.
// Declaring it with another T along O's ancestry is a *apis.DefinitionError
// wrapping registry.ErrTypeClash.
func DeclareReader[O apis.Object, T any](name string, init Initializer[O, T]) (*Reader[O, T], error) {
	return DeclareReaderIn(Registry(), name, init)
}

// DeclareReaderIn is DeclareReader against reg.
func DeclareReaderIn[O apis.Object, T any](reg apis.Registry, name string, init Initializer[O, T]) (*Reader[O, T], error) {
	return declare(reg, name, init, apis.ReadOnly)
}

// DeclareAccessor declares a read+write lazy attribute on O in the
// process-wide registry.
func DeclareAccessor[O apis.Object, T any](name string, init Initializer[O, T]) (Accessor[O, T], error) {
	return DeclareAccessorIn(Registry(), name, init)
}

// DeclareAccessorIn is DeclareAccessor against reg.
func DeclareAccessorIn[O apis.Object, T any](reg apis.Registry, name string, init Initializer[O, T]) (Accessor[O, T], error) {
	r, err := declare(reg, name, init, apis.ReadWrite)
	if err != nil {
		return Accessor[O, T]{}, err
	}
	return Accessor[O, T]{Reader: r}, nil
}

// MustReader is DeclareReader that panics on a definition error. It is
// meant for package-level declarations.
func MustReader[O apis.Object, T any](name string, init Initializer[O, T]) *Reader[O, T] {
	r, err := DeclareReader(name, init)
	if err != nil {
		panic(err)
	}
	return r
}

// MustAccessor is DeclareAccessor that panics on a definition error.
func MustAccessor[O apis.Object, T any](name string, init Initializer[O, T]) Accessor[O, T] {
	a, err := DeclareAccessor(name, init)
	if err != nil {
		panic(err)
	}
	return a
}

func declare[O apis.Object, T any](reg apis.Registry, name string, init Initializer[O, T], kind apis.Kind) (*Reader[O, T], error) {
	if err := naming.Validate(name); err != nil {
		return nil, err
	}
	owner := reflect.TypeFor[O]()
	if init == nil {
		return nil, &apis.DefinitionError{
			Owner:  owner.String(),
			Name:   name,
			Reason: "no initializer given",
		}
	}

	r := &Reader[O, T]{
		name:      name,
		owner:     owner,
		init:      init,
		kind:      kind,
		exclusive: reg.Config().SingleFlight,
	}
	h, err := reg.Declare(r)
	if err != nil {
		return nil, err
	}
	r.handle = h
	return r, nil
}

// Extend records P as a parent of C in the process-wide registry, so that
// C aggregates P's lazy attributes. up returns the P instance embedded in
// (or otherwise owned by) a C instance.
//
// Extend fails with registry.ErrTypeClash if C or a descendant declares a
// name that P or an ancestor declares with a different value type.
func Extend[C, P apis.Object](up func(C) P) error {
	return ExtendIn(Registry(), up)
}

// ExtendIn is Extend against reg.
func ExtendIn[C, P apis.Object](reg apis.Registry, up func(C) P) error {
	if up == nil {
		return registry.ErrNilUpcast
	}
	return reg.Extend(reflect.TypeFor[C](), reflect.TypeFor[P](), func(obj any) any {
		c, ok := obj.(C)
		if !ok {
			// Load on the parent attribute reports the mismatch.
			return obj
		}
		return up(c)
	})
}
