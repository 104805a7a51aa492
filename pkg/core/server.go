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

// Package core wires the dashboard components into a runnable service.
package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/n1kozor/AINFRA-sub002/pkg/availability"
	"github.com/n1kozor/AINFRA-sub002/pkg/core/api"
	"github.com/n1kozor/AINFRA-sub002/pkg/devices"
	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/metrics"
	"github.com/n1kozor/AINFRA-sub002/pkg/stats"
	"github.com/n1kozor/AINFRA-sub002/pkg/sysinfo"
)

const readHeaderTimeout = 10 * time.Second

// Server is the dashboard core service. It owns the availability
// poller, the statistics aggregator, and the HTTP API.
type Server struct {
	config     *Config
	logger     logger.Logger
	poller     *availability.Poller
	aggregator *stats.Aggregator
	apiServer  *api.APIServer
	httpServer *http.Server
}

// NewServer assembles the service from its configuration. Validate
// must have run on the config before this is called.
func NewServer(config *Config, log logger.Logger) *Server {
	probe := availability.NewHTTPProbe(config.AvailabilityURL, nil, log)
	poller := availability.NewPoller(probe, nil, log)
	aggregator := stats.NewAggregator(config.APIBaseURL, log)
	deviceClient := devices.NewClient(config.APIBaseURL, nil, log)
	classifier := metrics.NewClassifier(metrics.WithLabels(config.MetricLabels))
	collector := sysinfo.NewCollector(log, "")

	apiServer := api.NewAPIServer(log,
		api.WithPoller(poller),
		api.WithAggregator(aggregator),
		api.WithDeviceClient(deviceClient),
		api.WithClassifier(classifier),
		api.WithHostCollector(collector),
		api.WithAPIKey(config.APIKey),
		api.WithDefaultInterval(time.Duration(config.PollInterval)),
	)

	return &Server{
		config:     config,
		logger:     log,
		poller:     poller,
		aggregator: aggregator,
		apiServer:  apiServer,
	}
}

// Poller exposes the availability poller, mainly for tests.
func (s *Server) Poller() *availability.Poller {
	return s.poller
}

// Start implements lifecycle.Service. It serves the HTTP API and
// blocks until the context is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.apiServer.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info().
		Str("listen_addr", s.config.ListenAddr).
		Str("api_base_url", s.config.APIBaseURL).
		Str("availability_url", s.config.AvailabilityURL).
		Msg("Starting dashboard core")

	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
			return
		}

		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop implements lifecycle.Service. It drains the HTTP server and
// shuts down the poller.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("HTTP shutdown failed: %w", err)
		}
	}

	s.poller.Close()
	s.logger.Info().Msg("Dashboard core stopped")

	return shutdownErr
}
