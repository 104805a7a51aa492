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

package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
)

// HTTPProbe checks device availability against the dedicated
// availability service (a separate base URL from the main API).
type HTTPProbe struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPProbe builds a probe for the given availability service base
// URL. A nil client falls back to http.DefaultClient; per-check
// deadlines come from the caller's context.
func NewHTTPProbe(baseURL string, httpClient *http.Client, log logger.Logger) *HTTPProbe {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPProbe{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

type availabilityResponse struct {
	IsAvailable    bool     `json:"is_available"`
	ResponseTimeMs *float64 `json:"response_time_ms"`
}

// Check performs GET {base}/devices/{id}/availability and returns the
// parsed result. Non-2xx responses and transport errors are returned as
// errors; the poller maps both to unavailability.
func (p *HTTPProbe) Check(ctx context.Context, deviceID string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/devices/%s/availability", p.baseURL, url.PathEscape(deviceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	start := time.Now()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, fmt.Errorf("%w: %d, response: %s", errUnexpectedStatusCode, resp.StatusCode, string(body))
	}

	var parsed availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode availability response: %w", err)
	}

	elapsed := time.Since(start)
	if parsed.ResponseTimeMs != nil {
		elapsed = time.Duration(*parsed.ResponseTimeMs * float64(time.Millisecond))
	}

	return &Result{IsAvailable: parsed.IsAvailable, ResponseTime: elapsed}, nil
}
