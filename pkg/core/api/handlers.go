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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/n1kozor/AINFRA-sub002/pkg/availability"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
	"github.com/n1kozor/AINFRA-sub002/pkg/stats"
)

// DeviceClient is the backend surface the view and operation handlers
// need. *devices.Client satisfies it.
type DeviceClient interface {
	Status(ctx context.Context, deviceID string) (*models.RawRecord, error)
	Metrics(ctx context.Context, deviceID string) (*models.RawRecord, error)
	ExecuteOperation(ctx context.Context, deviceID, operationID string, params json.RawMessage) (json.RawMessage, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type statisticsResponse struct {
	Statistics *models.SystemStatistics `json:"statistics"`
	Trend      []models.HourlyTrend     `json:"trend"`
	Stale      bool                     `json:"stale"`
	Error      string                   `json:"error,omitempty"`
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *APIServer) listAvailability(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.poller.States())
}

func (s *APIServer) getAvailability(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]
	s.writeJSON(w, http.StatusOK, s.poller.GetState(deviceID))
}

func (s *APIServer) watchDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]

	interval := s.defaultInterval

	if raw := r.URL.Query().Get("interval"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid interval: "+raw)
			return
		}

		interval = parsed
	}

	if err := s.poller.StartWatching(deviceID, interval); err != nil {
		if errors.Is(err, availability.ErrInvalidInterval) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.writeError(w, http.StatusServiceUnavailable, err.Error())

		return
	}

	s.writeJSON(w, http.StatusAccepted, s.poller.GetState(deviceID))
}

func (s *APIServer) unwatchDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]
	s.poller.StopWatching(deviceID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) getDeviceView(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]
	ctx := r.Context()

	statusRecord, statusErr := s.devices.Status(ctx, deviceID)
	metricsRecord, metricsErr := s.devices.Metrics(ctx, deviceID)

	if statusErr != nil && metricsErr != nil {
		s.logger.Warn().
			Err(metricsErr).
			Str("device_id", deviceID).
			Msg("Device unreachable for view")
		s.writeError(w, http.StatusBadGateway, "device unreachable")

		return
	}

	view := models.DeviceView{}

	if statusErr == nil {
		view.SystemInfo = s.classifier.ExtractSystemInfo(statusRecord)
	}

	if metricsErr == nil {
		view.MainMetrics = s.classifier.ExtractMainMetrics(metricsRecord)
		view.Tables = s.classifier.ExtractTableData(metricsRecord)
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *APIServer) executeOperation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	operationID := vars["operationId"]

	params, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := s.devices.ExecuteOperation(r.Context(), deviceID, operationID, params)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("device_id", deviceID).
			Str("operation_id", operationID).
			Msg("Device operation failed")
		s.writeError(w, http.StatusBadGateway, err.Error())

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(result); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write operation result")
	}
}

func (s *APIServer) getStatistics(w http.ResponseWriter, r *http.Request) {
	timeRange := models.TimeRange(r.URL.Query().Get("time_range"))
	if timeRange == "" {
		timeRange = models.TimeRange24h
	}

	snapshot, err := s.aggregator.Refresh(r.Context(), timeRange)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidTimeRange) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if snapshot == nil {
			s.writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		// Stale but usable snapshot from a previous refresh.
		s.writeJSON(w, http.StatusOK, statisticsResponse{
			Statistics: snapshot,
			Trend:      stats.NormalizeTrend(snapshot.HourlyTrend),
			Stale:      true,
			Error:      err.Error(),
		})

		return
	}

	s.writeJSON(w, http.StatusOK, statisticsResponse{
		Statistics: snapshot,
		Trend:      stats.NormalizeTrend(snapshot.HourlyTrend),
	})
}

func (s *APIServer) getHostView(w http.ResponseWriter, r *http.Request) {
	record := s.host.Collect(r.Context())

	view := models.DeviceView{
		MainMetrics: s.classifier.ExtractMainMetrics(record),
		SystemInfo:  s.classifier.ExtractSystemInfo(record),
		Tables:      s.classifier.ExtractTableData(record),
	}

	s.writeJSON(w, http.StatusOK, view)
}
