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

import (
	"reflect"

	"dirpx.dev/lazy/slot"
)

// Object is implemented by every host type that carries lazy attributes.
// Embedding slot.Table provides it.
type Object interface {
	LazySlots() *slot.Table
}

// Attribute is the type-erased side of a generated accessor. Registries
// hold Attributes so that eager loading can drive accessors without
// knowing their value types.
type Attribute interface {
	// Name returns the attribute name.
	Name() string
	// Owner returns the type the attribute was declared on, as written
	// (usually a pointer). Registries normalize it.
	Owner() reflect.Type
	// Kind reports which accessors were generated.
	Kind() Kind
	// ValueType returns the type of the stored value. A name shared along
	// an ancestry must keep one value type, since embedded hosts share
	// one slot table.
	ValueType() reflect.Type
	// Load reads the attribute on obj, running the initializer if the
	// slot is empty. obj must be an instance of Owner().
	Load(obj any) error
	// Loaded reports whether obj's slot for this attribute is filled.
	Loaded(obj any) bool
}

// Kind tells which accessors a declaration generated.
type Kind int

const (
	// ReadOnly declarations generate a memoizing read accessor.
	ReadOnly Kind = iota
	// ReadWrite declarations also generate an overwrite accessor.
	ReadWrite
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case ReadOnly:
		return "reader"
	case ReadWrite:
		return "accessor"
	default:
		return "unknown"
	}
}

// Handle identifies the accessors created by one declaration.
type Handle struct {
	// Owner is the normalized owner type.
	Owner reflect.Type
	// Name is the declared attribute name.
	Name string
	// Kind reports whether a write accessor was generated too.
	Kind Kind
}

// Names lists the attribute names the declaration generated accessors for.
func (h Handle) Names() []string {
	return []string{h.Name}
}

// Writable reports whether the declaration generated a write accessor.
func (h Handle) Writable() bool {
	return h.Kind == ReadWrite
}
