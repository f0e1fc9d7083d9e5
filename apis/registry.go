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

package apis

import "reflect"

// Registry records, per owner type, which attribute names are lazy, and
// the explicit parent links used to aggregate them across an ancestry.
// Registries are append-only: there is no way to remove a declaration.
type Registry interface {
	// Config returns the configuration the registry was built with.
	Config() Config

	// Declare adds attr to the lazy set of attr.Owner(). Re-declaring an
	// existing name replaces its accessor and leaves the name set unchanged.
	Declare(attr Attribute) (Handle, error)

	// Extend records parent as an ancestor of child. up projects a child
	// instance onto the parent instance whose slots and initializers apply.
	Extend(child, parent reflect.Type, up Upcast) error

	// OwnNames returns the names declared directly on t, sorted.
	OwnNames(t reflect.Type) []string

	// AggregatedNames returns the union of OwnNames over t and every
	// ancestor reachable through parent links, sorted. It is recomputed
	// on every call.
	AggregatedNames(t reflect.Type) []string

	// Lookup returns the nearest declaration of name for t: own
	// declarations first, then parents in link order, depth first.
	Lookup(t reflect.Type, name string) (Binding, bool)

	// EagerLoad computes every empty lazy slot reachable on obj. The first
	// initializer error stops the pass and is returned unchanged.
	EagerLoad(obj any) error

	// EagerLoadAll is EagerLoad that keeps going past failures and
	// returns all initializer errors combined.
	EagerLoadAll(obj any) error

	// Entries returns a snapshot of every declaration (order is unspecified).
	Entries() []Entry

	// Links returns a snapshot of every parent link in declaration order.
	Links() []Link

	// Count returns the number of declared (owner, name) pairs.
	Count() int
}

// Entry is a single declaration in a Registry snapshot.
type Entry struct {
	// Owner is the normalized owner type.
	Owner reflect.Type
	// Attribute is the declared accessor.
	Attribute Attribute
}

// Link is a single parent link in a Registry snapshot.
type Link struct {
	// Child is the normalized child type.
	Child reflect.Type
	// Parent is the normalized parent type.
	Parent reflect.Type
	// Up projects a Child instance onto its Parent instance.
	Up Upcast
}

// Binding is the result of resolving a lazy name for a concrete type.
type Binding struct {
	// Attribute is the declaration serving the name.
	Attribute Attribute
	// Up projects an instance of the looked-up type onto an instance of
	// Attribute.Owner(). It is the identity for own declarations.
	Up Upcast
}

// Upcast projects an instance of a child type onto an ancestor instance.
type Upcast func(obj any) any
