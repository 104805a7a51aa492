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

// Package stats caches the system-wide statistics snapshot served by
// the main API and shapes its trend series for charting.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

var (
	// ErrInvalidTimeRange is returned for a range outside the supported
	// options.
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrNoSnapshot is returned when a fetch fails before any snapshot
	// was cached.
	ErrNoSnapshot = errors.New("no statistics snapshot available")

	errUnexpectedStatusCode = errors.New("unexpected status code from statistics endpoint")
)

// Aggregator fetches and caches a SystemStatistics snapshot per
// request. A failed refresh keeps the previous snapshot so dashboards
// can keep rendering last-known values, marked stale.
type Aggregator struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	now        func() time.Time

	mu        sync.RWMutex
	current   *models.SystemStatistics
	lastRange models.TimeRange
	fetchedAt time.Time
	lastErr   error
}

// Option customises an Aggregator.
type Option func(*Aggregator)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Aggregator) {
		if client != nil {
			a.httpClient = client
		}
	}
}

// WithClock injects a deterministic clock (used for tests).
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator builds an aggregator for the main API base URL.
func NewAggregator(baseURL string, log logger.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     log,
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// Refresh fetches a fresh snapshot for the given range. On failure the
// previously cached snapshot (if any) is returned alongside the error.
func (a *Aggregator) Refresh(ctx context.Context, timeRange models.TimeRange) (*models.SystemStatistics, error) {
	if !timeRange.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeRange, timeRange)
	}

	snapshot, err := a.fetch(ctx, timeRange)
	if err != nil {
		a.logger.Warn().Err(err).Str("time_range", string(timeRange)).Msg("Statistics fetch failed, retaining previous snapshot")

		a.mu.Lock()
		a.lastErr = err
		previous := a.current
		a.mu.Unlock()

		if previous == nil {
			return nil, fmt.Errorf("%w: %w", ErrNoSnapshot, err)
		}

		return cloneStatistics(previous), err
	}

	a.mu.Lock()
	a.current = snapshot
	a.lastRange = timeRange
	a.fetchedAt = a.now()
	a.lastErr = nil
	a.mu.Unlock()

	return cloneStatistics(snapshot), nil
}

// Snapshot returns the cached snapshot, or nil if nothing has been
// fetched yet.
func (a *Aggregator) Snapshot() *models.SystemStatistics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return cloneStatistics(a.current)
}

// Stale reports whether the most recent refresh failed, along with the
// failure itself.
func (a *Aggregator) Stale() (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.lastErr != nil, a.lastErr
}

// FetchedAt returns when the cached snapshot was fetched.
func (a *Aggregator) FetchedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.fetchedAt
}

func (a *Aggregator) fetch(ctx context.Context, timeRange models.TimeRange) (*models.SystemStatistics, error) {
	endpoint := fmt.Sprintf("%s/all-system-stats?time_range=%s", a.baseURL, url.QueryEscape(string(timeRange)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, fmt.Errorf("%w: %d, response: %s", errUnexpectedStatusCode, resp.StatusCode, string(body))
	}

	var snapshot models.SystemStatistics
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode statistics response: %w", err)
	}

	return &snapshot, nil
}

func cloneStatistics(src *models.SystemStatistics) *models.SystemStatistics {
	if src == nil {
		return nil
	}

	dst := *src

	if src.CheckMethods != nil {
		dst.CheckMethods = make(map[string]int, len(src.CheckMethods))
		for k, v := range src.CheckMethods {
			dst.CheckMethods[k] = v
		}
	}

	if len(src.HourlyTrend) > 0 {
		dst.HourlyTrend = make([]models.HourlyTrend, len(src.HourlyTrend))
		copy(dst.HourlyTrend, src.HourlyTrend)
	}

	if len(src.RecentErrors) > 0 {
		dst.RecentErrors = make([]models.DeviceError, len(src.RecentErrors))
		copy(dst.RecentErrors, src.RecentErrors)
	}

	if len(src.TopSlowestDevices) > 0 {
		dst.TopSlowestDevices = make([]models.SlowDevice, len(src.TopSlowestDevices))
		copy(dst.TopSlowestDevices, src.TopSlowestDevices)
	}

	return &dst
}
