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
	"go.uber.org/multierr"
	"go.uber.org/zap"

	uref "dirpx.dev/lazy/utils/reflect"
)

// EagerLoad computes every empty lazy slot reachable on obj, in name order.
// Filled slots are skipped. The first initializer error is returned
// unchanged; slots after it are left as they were.
func (r *registry) EagerLoad(obj any) error {
	return r.eagerLoad(obj, false)
}

// EagerLoadAll is EagerLoad that visits every name even after a failure.
// Initializer errors are combined with multierr; multierr.Errors splits them.
func (r *registry) EagerLoadAll(obj any) error {
	return r.eagerLoad(obj, true)
}

func (r *registry) eagerLoad(obj any, keepGoing bool) error {
	t, err := uref.TypeOf(obj, r.cfg)
	if err != nil {
		// Nothing unnamed can own lazy attributes.
		return nil
	}

	bs := r.bindings(t)
	var (
		errs   error
		loaded int
	)
	for _, name := range sortedNames(bs) {
		b := bs[name]
		target := b.Up(obj)
		if b.Attribute.Loaded(target) {
			continue
		}
		if err := b.Attribute.Load(target); err != nil {
			if !keepGoing {
				return err
			}
			r.log.Warn("lazy attribute failed during eager load",
				zap.Stringer("type", t),
				zap.String("attribute", name),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
			continue
		}
		loaded++
	}

	r.log.Debug("lazy eager load",
		zap.Stringer("type", t),
		zap.Int("attributes", len(bs)),
		zap.Int("loaded", loaded),
	)
	return errs
}
