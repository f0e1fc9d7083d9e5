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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/lazy/apis"
	"dirpx.dev/lazy/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: owner type is not named")
	// ErrReflectInterface indicates an interface owner. Lazy attributes
	// belong to concrete types.
	ErrReflectInterface = errors.New("reflect: owner type is an interface")
)

// Normalize unwraps pointers according to cfg.MaxUnwrap and returns the
// named owner type, so that *T and T key the same registry entry.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Ptr; i++ {
		t = t.Elem()
	}

	switch {
	case t.Kind() == reflect.Ptr:
		// Ran out of unwraps.
		return nil, ErrReflectTypeNotNamed
	case t.Kind() == reflect.Interface:
		return nil, ErrReflectInterface
	case t.Name() == "":
		return nil, ErrReflectTypeNotNamed
	}
	return t, nil
}

// TypeOf normalizes the dynamic type of v. A nil v yields ErrReflectNilType.
func TypeOf(v any, cfg apis.Config) (reflect.Type, error) {
	return Normalize(reflect.TypeOf(v), cfg)
}
