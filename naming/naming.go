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

package naming

import (
	"regexp"

	"dirpx.dev/lazy/apis"
)

// Pattern is the grammar every lazy attribute name must match.
const Pattern = `^[a-z0-9_]+$`

var nameRE = regexp.MustCompile(Pattern)

// IsValid reports whether name matches Pattern.
func IsValid(name string) bool {
	return nameRE.MatchString(name)
}

// Validate returns an *apis.NamingError if name does not match Pattern.
func Validate(name string) error {
	if !IsValid(name) {
		return &apis.NamingError{Name: name}
	}
	return nil
}
