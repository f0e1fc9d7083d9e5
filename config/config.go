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

package config

import (
	"go.uber.org/zap"

	"dirpx.dev/lazy/apis"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMaxDepth represents the default for MaxDepth.
	// Ancestries deeper than this are truncated during aggregation.
	DefaultMaxDepth = 64
	// DefaultSingleFlight represents the default for SingleFlight.
	// When true, each slot is initialized at most once even under concurrent first reads.
	DefaultSingleFlight = true
)

// nop is the shared logger used when none is configured.
var nop = zap.NewNop()

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = nop
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:    DefaultMaxUnwrap,
		MaxDepth:     DefaultMaxDepth,
		SingleFlight: DefaultSingleFlight,
		Logger:       nop,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default, which is also what
// registries and Normalize fall back to.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithSingleFlight sets the SingleFlight option.
func WithSingleFlight(on bool) Option {
	return func(c *apis.Config) {
		c.SingleFlight = on
	}
}

// WithLogger sets the Logger option. A nil logger means zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = nop
		}
		c.Logger = l
	}
}
