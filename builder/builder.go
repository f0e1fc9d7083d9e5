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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/lazy/apis"
	"dirpx.dev/lazy/registry"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry for cfg. If a previous
// registry is provided, its declarations and then its parent links are
// replayed into the new one, links in their original order.
// Entries the new configuration rejects are dropped and logged.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev == nil {
		return nreg
	}

	log := cfg.L()
	for _, e := range prev.Entries() {
		if _, err := nreg.Declare(e.Attribute); err != nil {
			log.Warn("lazy declaration dropped during rebuild",
				zap.Stringer("owner", e.Owner),
				zap.String("attribute", e.Attribute.Name()),
				zap.Error(err),
			)
		}
	}
	for _, l := range prev.Links() {
		if err := nreg.Extend(l.Child, l.Parent, l.Up); err != nil {
			log.Warn("lazy parent link dropped during rebuild",
				zap.Stringer("child", l.Child),
				zap.Stringer("parent", l.Parent),
				zap.Error(err),
			)
		}
	}
	return nreg
}
