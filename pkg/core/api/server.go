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

// Package api exposes the dashboard core over HTTP and WebSocket.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/n1kozor/AINFRA-sub002/pkg/availability"
	srHttp "github.com/n1kozor/AINFRA-sub002/pkg/http"
	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/metrics"
	"github.com/n1kozor/AINFRA-sub002/pkg/stats"
	"github.com/n1kozor/AINFRA-sub002/pkg/sysinfo"
)

// APIServer routes dashboard requests to the availability poller, the
// statistics aggregator, and the device client.
type APIServer struct {
	router          *mux.Router
	logger          logger.Logger
	poller          *availability.Poller
	aggregator      *stats.Aggregator
	devices         DeviceClient
	classifier      *metrics.Classifier
	host            *sysinfo.Collector
	apiKey          string
	defaultInterval time.Duration
	upgrader        websocket.Upgrader
}

// Option configures an APIServer.
type Option func(*APIServer)

// WithPoller sets the availability poller backing the watch endpoints.
func WithPoller(p *availability.Poller) Option {
	return func(s *APIServer) {
		s.poller = p
	}
}

// WithAggregator sets the statistics aggregator.
func WithAggregator(a *stats.Aggregator) Option {
	return func(s *APIServer) {
		s.aggregator = a
	}
}

// WithDeviceClient sets the backend device client.
func WithDeviceClient(c DeviceClient) Option {
	return func(s *APIServer) {
		s.devices = c
	}
}

// WithClassifier sets the metrics classifier used for device views.
func WithClassifier(c *metrics.Classifier) Option {
	return func(s *APIServer) {
		s.classifier = c
	}
}

// WithHostCollector sets the local host info collector.
func WithHostCollector(c *sysinfo.Collector) Option {
	return func(s *APIServer) {
		s.host = c
	}
}

// WithAPIKey enables API key checks on the /api routes.
func WithAPIKey(key string) Option {
	return func(s *APIServer) {
		s.apiKey = key
	}
}

// WithDefaultInterval sets the poll interval used when a watch request
// does not specify one.
func WithDefaultInterval(interval time.Duration) Option {
	return func(s *APIServer) {
		s.defaultInterval = interval
	}
}

// NewAPIServer builds the router with the provided options applied.
func NewAPIServer(log logger.Logger, options ...Option) *APIServer {
	s := &APIServer{
		router:          mux.NewRouter(),
		logger:          log,
		defaultInterval: availability.DefaultInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// Router returns the configured handler for mounting in an http.Server.
// The common middleware wraps the whole router so CORS preflights are
// answered even for method-restricted routes.
func (s *APIServer) Router() http.Handler {
	return srHttp.CommonMiddleware(s.logger)(s.router)
}

func (s *APIServer) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiRouter.Use(srHttp.APIKeyMiddleware(s.apiKey, s.logger))

	apiRouter.HandleFunc("/devices/availability", s.listAvailability).Methods(http.MethodGet)
	apiRouter.HandleFunc("/devices/{id}/availability", s.getAvailability).Methods(http.MethodGet)
	apiRouter.HandleFunc("/devices/{id}/watch", s.watchDevice).Methods(http.MethodPost)
	apiRouter.HandleFunc("/devices/{id}/watch", s.unwatchDevice).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/devices/{id}/view", s.getDeviceView).Methods(http.MethodGet)
	apiRouter.HandleFunc("/devices/{id}/operations/{operationId}", s.executeOperation).Methods(http.MethodPost)
	apiRouter.HandleFunc("/stats", s.getStatistics).Methods(http.MethodGet)
	apiRouter.HandleFunc("/host", s.getHostView).Methods(http.MethodGet)
	apiRouter.HandleFunc("/ws/availability", s.streamAvailability)
}
