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

import "go.uber.org/zap"

// Config carries read-only knobs that influence registries and accessors.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits pointer unwrapping when an owner type is normalized
	// to its nearest named type (e.g. **Report -> Report).
	MaxUnwrap int

	// MaxDepth limits how many parent links are followed when lazy
	// attribute names are aggregated across an ancestry.
	MaxDepth int

	// SingleFlight makes the first read of a slot exclusive: concurrent
	// readers of the same empty slot wait for one initializer run.
	// When false, racing readers may each run the initializer and the
	// first stored result wins.
	SingleFlight bool

	// Logger receives declaration and eager-load diagnostics.
	// A nil Logger is treated as zap.NewNop().
	Logger *zap.Logger
}

// L returns the configured logger, never nil.
func (c Config) L() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
