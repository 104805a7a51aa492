/*
 * Copyright 2025 the AINFRA authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads JSON service configuration with environment
// overrides.
package config

import (
	"context"
	"fmt"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
)

// Validator lets a config struct normalize and check itself after
// loading.
type Validator interface {
	Validate() error
}

// EnvOverrider lets a config struct apply environment variable
// overrides after the file is read. Env values win over file values.
type EnvOverrider interface {
	ApplyEnvOverrides()
}

// ConfigLoader loads configuration from some source into dst.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Config holds the configuration loading dependencies.
type Config struct {
	loader ConfigLoader
	logger logger.Logger
}

// NewConfig initializes a Config with a file loader. A nil logger falls
// back to a discard logger.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		loader: &FileConfigLoader{},
		logger: log,
	}
}

// LoadAndValidate reads the config file (skipped when path is empty),
// applies environment overrides, and validates. Validation runs even
// without a file so defaults and env-only setups work.
func (c *Config) LoadAndValidate(ctx context.Context, path string, dst interface{}) error {
	if path != "" {
		if err := c.loader.Load(ctx, path, dst); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		c.logger.Debug().Str("path", path).Msg("Configuration file loaded")
	}

	if overrider, ok := dst.(EnvOverrider); ok {
		overrider.ApplyEnvOverrides()
	}

	if validator, ok := dst.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}
