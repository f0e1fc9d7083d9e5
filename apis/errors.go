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
	"errors"
	"fmt"
)

var (
	// ErrInvalidName matches every NamingError.
	ErrInvalidName = errors.New("lazy: invalid attribute name")
	// ErrDefinition matches every DefinitionError.
	ErrDefinition = errors.New("lazy: invalid attribute definition")
)

// NamingError reports an attribute name outside [a-z0-9_]+.
type NamingError struct {
	Name string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("lazy: bad attribute name %q (use a-z, 0-9, _)", e.Name)
}

func (e *NamingError) Is(target error) bool {
	return target == ErrInvalidName
}

// DefinitionError reports a declaration that cannot produce an accessor,
// most commonly one without an initializer.
type DefinitionError struct {
	Owner  string
	Name   string
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *DefinitionError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("lazy: %s.%s: %s", e.Owner, e.Name, e.Reason)
	}
	return fmt.Sprintf("lazy: %s: %s", e.Name, e.Reason)
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrDefinition
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
