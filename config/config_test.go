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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/lazy/config"
	"dirpx.dev/lazy/registry"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	assert.Equal(t, config.DefaultMaxUnwrap, got.MaxUnwrap)
	assert.Equal(t, config.DefaultMaxDepth, got.MaxDepth)
	assert.Equal(t, config.DefaultSingleFlight, got.SingleFlight)
	assert.NotNil(t, got.Logger)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestWithSingleFlight(t *testing.T) {
	assert.False(t, config.NewConfig(config.WithSingleFlight(false)).SingleFlight)
	assert.True(t, config.NewConfig(config.WithSingleFlight(true)).SingleFlight)
}

func TestWithMaxUnwrap(t *testing.T) {
	assert.Equal(t, 3, config.NewConfig(config.WithMaxUnwrap(3)).MaxUnwrap)
	assert.Equal(t, config.DefaultMaxUnwrap, config.NewConfig(config.WithMaxUnwrap(-1)).MaxUnwrap)
	assert.Equal(t, config.DefaultMaxUnwrap, config.NewConfig(config.WithMaxUnwrap(0)).MaxUnwrap)

	// What the config reports is what the registry uses.
	cfg := config.NewConfig(config.WithMaxUnwrap(0))
	assert.Equal(t, cfg.MaxUnwrap, registry.New(cfg).Config().MaxUnwrap)
}

func TestWithMaxDepth(t *testing.T) {
	assert.Equal(t, 2, config.NewConfig(config.WithMaxDepth(2)).MaxDepth)
	assert.Equal(t, config.DefaultMaxDepth, config.NewConfig(config.WithMaxDepth(0)).MaxDepth)
	assert.Equal(t, config.DefaultMaxDepth, config.NewConfig(config.WithMaxDepth(-5)).MaxDepth)
}

func TestWithLogger(t *testing.T) {
	l := zap.NewExample()
	assert.Same(t, l, config.NewConfig(config.WithLogger(l)).Logger)
	assert.NotNil(t, config.NewConfig(config.WithLogger(nil)).Logger)
	assert.NotNil(t, config.NewConfig().L())
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithSingleFlight(true),
		config.WithSingleFlight(false),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithMaxDepth(7),
		config.WithMaxDepth(9),
	)

	assert.False(t, c.SingleFlight)
	assert.Equal(t, 5, c.MaxUnwrap)
	assert.Equal(t, 9, c.MaxDepth)
}

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(`
max_unwrap: 4
max_depth: 16
single_flight: false
log_level: warn
`))
	require.NoError(t, err)

	assert.Equal(t, 4, c.MaxUnwrap)
	assert.Equal(t, 16, c.MaxDepth)
	assert.False(t, c.SingleFlight)
	require.NotNil(t, c.Logger)
	assert.False(t, c.Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, c.Logger.Core().Enabled(zapcore.WarnLevel))
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), c)
}

func TestParse_OptionsOverrideDocument(t *testing.T) {
	c, err := config.Parse([]byte("single_flight: false\n"), config.WithSingleFlight(true))
	require.NoError(t, err)
	assert.True(t, c.SingleFlight)
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse([]byte("max_dept: 3\n"))
	assert.Error(t, err, "unknown key must be rejected")

	_, err = config.Parse([]byte("log_level: loud\n"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("max_depth: [1, 2]\n"))
	assert.Error(t, err)
}
