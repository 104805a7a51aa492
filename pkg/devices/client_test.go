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

package devices

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

func TestClientMetricsDecodesRecordInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/custom/42/metrics", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uptime": 5000, "cpu_usage": 12.5}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, logger.NewTestLogger())

	record, err := client.Metrics(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"uptime", "cpu_usage"}, record.Keys())

	cpu, ok := record.Get("cpu_usage")
	require.True(t, ok)
	assert.Equal(t, models.KindNumber, cpu.Kind)
	assert.Equal(t, 12.5, cpu.Num)
}

func TestClientStatusErrorStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "device not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, logger.NewTestLogger())

	record, err := client.Status(context.Background(), "42")
	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, errUnexpectedStatusCode)
	assert.Contains(t, err.Error(), "device not found")
}

func TestClientExecuteOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/custom/42/operations/restart", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"force": true}`, string(body))

		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, logger.NewTestLogger())

	result, err := client.ExecuteOperation(context.Background(), "42", "restart", json.RawMessage(`{"force": true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true}`, string(result))
}

func TestClientExecuteOperationDefaultsEmptyParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "{}", string(body))
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, logger.NewTestLogger())

	_, err := client.ExecuteOperation(context.Background(), "42", "restart", nil)
	require.NoError(t, err)
}

func TestClientExecuteOperationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "operation rejected", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, logger.NewTestLogger())

	result, err := client.ExecuteOperation(context.Background(), "42", "restart", nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "operation rejected")
}

func TestClientEscapesPathSegments(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, logger.NewTestLogger())

	_, err := client.Status(context.Background(), "dev/1")
	require.NoError(t, err)
	assert.Equal(t, "/custom/dev%2F1/status", gotPath)
}
