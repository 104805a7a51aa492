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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
)

func TestHTTPProbeCheckSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/dev-1/availability", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_available": true, "response_time_ms": 42.5}`))
	}))
	defer server.Close()

	probe := NewHTTPProbe(server.URL+"/", nil, logger.NewTestLogger())

	result, err := probe.Check(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
	assert.Equal(t, 42500*time.Microsecond, result.ResponseTime)
}

func TestHTTPProbeCheckUnavailableDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_available": false}`))
	}))
	defer server.Close()

	probe := NewHTTPProbe(server.URL, nil, logger.NewTestLogger())

	result, err := probe.Check(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
}

func TestHTTPProbeCheckEscapesDeviceID(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"is_available": true}`))
	}))
	defer server.Close()

	probe := NewHTTPProbe(server.URL, nil, logger.NewTestLogger())

	_, err := probe.Check(context.Background(), "dev/1 a")
	require.NoError(t, err)
	assert.Equal(t, "/devices/dev%2F1%20a/availability", gotPath)
}

func TestHTTPProbeCheckServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	probe := NewHTTPProbe(server.URL, nil, logger.NewTestLogger())

	result, err := probe.Check(context.Background(), "dev-1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, errUnexpectedStatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPProbeCheckHonorsContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	probe := NewHTTPProbe(server.URL, nil, logger.NewTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := probe.Check(ctx, "dev-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPProbeCheckMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	probe := NewHTTPProbe(server.URL, nil, logger.NewTestLogger())

	_, err := probe.Check(context.Background(), "dev-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
