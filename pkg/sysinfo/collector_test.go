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

package sysinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

// Sampled values vary by machine; the test only pins the record shape.
func TestCollectProducesClassifiableRecord(t *testing.T) {
	collector := NewCollector(logger.NewTestLogger(), "")

	record := collector.Collect(context.Background())
	require.NotNil(t, record)
	require.NotZero(t, record.Len())

	if hostname, ok := record.Get("hostname"); ok {
		assert.Equal(t, models.KindString, hostname.Kind)
		assert.NotEmpty(t, hostname.Str)
	}

	if cpuUsage, ok := record.Get("cpu_usage"); ok {
		assert.Equal(t, models.KindNumber, cpuUsage.Kind)
		assert.GreaterOrEqual(t, cpuUsage.Num, 0.0)
		assert.LessOrEqual(t, cpuUsage.Num, 100.0)
	}

	if partitions, ok := record.Get("partitions"); ok {
		assert.Equal(t, models.KindArray, partitions.Kind)
	}
}

func TestCollectSurvivesBadDiskRoot(t *testing.T) {
	collector := NewCollector(logger.NewTestLogger(), "/definitely/not/a/mountpoint")

	record := collector.Collect(context.Background())
	require.NotNil(t, record)

	_, ok := record.Get("disk_usage")
	assert.False(t, ok)
}
