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
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/lazy/apis"
	"dirpx.dev/lazy/builder"
	"dirpx.dev/lazy/config"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.bld = b
	st.Store(s)
}

// ErrNilRegistry is returned when a builder returns a nil registry.
var ErrNilRegistry = errors.New("lazy: builder returned nil registry")

// Config returns the process-wide configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the process-wide configuration. Unless the registry is
// pinned, it is rebuilt through the current builder, carrying over every
// declaration and parent link.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = old.bld.BuildRegistry(cfg, old.reg)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(&state{cfg: cfg, reg: nreg, bld: old.bld, preg: old.preg})
}

// Registry returns the process-wide registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg as the process-wide registry and pins it:
// SetConfig and SetBuilder leave a pinned registry alone until UnpinRegistry.
// A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, reg: reg, bld: old.bld, preg: true})
}

// IsRegistryPinned reports whether the process-wide registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// UnpinRegistry lets SetConfig and SetBuilder rebuild the registry again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, reg: old.reg, bld: old.bld})
}

// Builder returns the process-wide builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the builder and, unless pinned, rebuilds the registry
// with it. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(&state{cfg: old.cfg, reg: nreg, bld: b, preg: old.preg})
}

// SetAll replaces the whole snapshot in one step. Nil cfg or bld keep the
// current ones. A nil reg builds a fresh, empty registry (no migration)
// and unpins; a non-nil reg is installed pinned. Mainly useful in tests.
func SetAll(cfg *apis.Config, reg apis.Registry, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}
	nreg := reg
	npreg := reg != nil
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, nil)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(&state{cfg: ncfg, reg: nreg, bld: nbld, preg: npreg})
}

// buildMu serializes writers so a partially built snapshot is never published.
var buildMu sync.Mutex

// st is the published snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot; writers build a new one and swap it in.
type state struct {
	// cfg is the process-wide configuration.
	cfg apis.Config
	// reg is the process-wide registry.
	reg apis.Registry
	// bld builds reg from cfg.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
}
