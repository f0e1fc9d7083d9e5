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
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"dirpx.dev/lazy/apis"
)

// document is the YAML shape accepted by Parse. Absent keys keep defaults.
type document struct {
	MaxUnwrap    *int   `yaml:"max_unwrap"`
	MaxDepth     *int   `yaml:"max_depth"`
	SingleFlight *bool  `yaml:"single_flight"`
	LogLevel     string `yaml:"log_level"`
}

// Parse builds an apis.Config from a YAML document such as:
//
//	max_unwrap: 4
//	max_depth: 16
//	single_flight: false
//	log_level: debug
//
// Unknown keys are rejected. A non-empty log_level builds a zap production
// logger at that level. opts are applied after the document, so they win.
func Parse(data []byte, opts ...Option) (apis.Config, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("config: decode: %w", err)
	}

	var fileOpts []Option
	if doc.MaxUnwrap != nil {
		fileOpts = append(fileOpts, WithMaxUnwrap(*doc.MaxUnwrap))
	}
	if doc.MaxDepth != nil {
		fileOpts = append(fileOpts, WithMaxDepth(*doc.MaxDepth))
	}
	if doc.SingleFlight != nil {
		fileOpts = append(fileOpts, WithSingleFlight(*doc.SingleFlight))
	}
	if doc.LogLevel != "" {
		logger, err := buildLogger(doc.LogLevel)
		if err != nil {
			return apis.Config{}, err
		}
		fileOpts = append(fileOpts, WithLogger(logger))
	}

	return NewConfig(append(fileOpts, opts...)...), nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger.Named("lazy"), nil
}
