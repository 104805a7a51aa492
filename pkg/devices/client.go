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

// Package devices is the HTTP client for custom (plugin-defined)
// device endpoints on the main API. It produces the raw status and
// metrics records the classifier consumes.
package devices

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

var errUnexpectedStatusCode = errors.New("unexpected status code from device endpoint")

// Client talks to the custom-device endpoints of the main API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient builds a client for the main API base URL. A nil HTTP
// client falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

// Status fetches the raw status record for a custom device.
func (c *Client) Status(ctx context.Context, deviceID string) (*models.RawRecord, error) {
	return c.getRecord(ctx, fmt.Sprintf("%s/custom/%s/status", c.baseURL, url.PathEscape(deviceID)))
}

// Metrics fetches the raw metrics record for a custom device.
func (c *Client) Metrics(ctx context.Context, deviceID string) (*models.RawRecord, error) {
	return c.getRecord(ctx, fmt.Sprintf("%s/custom/%s/metrics", c.baseURL, url.PathEscape(deviceID)))
}

// ExecuteOperation runs a plugin-defined operation on a custom device.
// Failures propagate to the caller for user-visible display; there is
// no automatic retry.
func (c *Client) ExecuteOperation(ctx context.Context, deviceID, operationID string, params json.RawMessage) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/custom/%s/operations/%s",
		c.baseURL, url.PathEscape(deviceID), url.PathEscape(operationID))

	if len(params) == 0 {
		params = json.RawMessage("{}")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(params))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d, response: %s", errUnexpectedStatusCode, resp.StatusCode, string(body))
	}

	return body, nil
}

func (c *Client) getRecord(ctx context.Context, endpoint string) (*models.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, fmt.Errorf("%w: %d, response: %s", errUnexpectedStatusCode, resp.StatusCode, string(body))
	}

	record := models.NewRawRecord()
	if err := json.NewDecoder(resp.Body).Decode(record); err != nil {
		return nil, fmt.Errorf("failed to decode device record: %w", err)
	}

	return record, nil
}
