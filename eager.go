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
	"reflect"

	"dirpx.dev/lazy/apis"
)

// EagerLoad computes every lazy attribute of o, own and inherited, whose
// slot is still empty. See apis.Registry.EagerLoad.
func EagerLoad(o apis.Object) error {
	return Registry().EagerLoad(o)
}

// EagerLoadAll is EagerLoad that does not stop at the first failure.
func EagerLoadAll(o apis.Object) error {
	return Registry().EagerLoadAll(o)
}

// OwnNames returns the lazy attribute names declared directly on O.
func OwnNames[O any]() []string {
	return Registry().OwnNames(reflect.TypeFor[O]())
}

// AggregatedNames returns the lazy attribute names of O and its ancestors.
func AggregatedNames[O any]() []string {
	return Registry().AggregatedNames(reflect.TypeFor[O]())
}
