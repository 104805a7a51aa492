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

package core

import (
	"fmt"
	"os"
	"time"

	"github.com/n1kozor/AINFRA-sub002/pkg/availability"
	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

const (
	defaultListenAddr      = ":8090"
	defaultAPIBaseURL      = "http://localhost:8000"
	defaultAvailabilityURL = "http://localhost:8001"
)

var errInvalidPollInterval = fmt.Errorf("poll_interval must be positive")

// Config is the dashboard core configuration. The main API and the
// availability service have distinct base URLs; both default to local
// development endpoints.
type Config struct {
	ListenAddr      string            `json:"listen_addr"`
	APIBaseURL      string            `json:"api_base_url"`
	AvailabilityURL string            `json:"availability_url"`
	PollInterval    models.Duration   `json:"poll_interval"`
	APIKey          string            `json:"api_key,omitempty"`
	MetricLabels    map[string]string `json:"metric_labels,omitempty"`
	Logging         *logger.Config    `json:"logging,omitempty"`
}

// ApplyEnvOverrides lets deployment environments override the service
// endpoints without a config file. Env values win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}

	if v := os.Getenv("AVAILABILITY_API_URL"); v != "" {
		c.AvailabilityURL = v
	}

	if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}

	if c.AvailabilityURL == "" {
		c.AvailabilityURL = defaultAvailabilityURL
	}

	if time.Duration(c.PollInterval) == 0 {
		c.PollInterval = models.Duration(availability.DefaultInterval)
	}

	if time.Duration(c.PollInterval) < 0 {
		return errInvalidPollInterval
	}

	return nil
}
