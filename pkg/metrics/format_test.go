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

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes float64
		want  string
	}{
		{"zero", 0, "0 Bytes"},
		{"negative", -5, "0 Bytes"},
		{"below one kilobyte", 1023, "1023 Bytes"},
		{"exactly one kilobyte", 1024, "1 KB"},
		{"one and a half kilobytes", 1536, "1.5 KB"},
		{"one megabyte", 1048576, "1 MB"},
		{"rounds to two decimals", 123456789, "117.74 MB"},
		{"one gigabyte", 1073741824, "1 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatTitle(t *testing.T) {
	assert.Equal(t, "Cpu Usage", FormatTitle("cpu_usage"))
	assert.Equal(t, "Memory Used", FormatTitle("memoryUsed"))
	assert.Equal(t, "Disk", FormatTitle("disk"))
	assert.Equal(t, "Platform Version", FormatTitle("platform_version"))
}

func TestMetricColor(t *testing.T) {
	assert.Equal(t, models.ColorPrimary, MetricColor("cpu_usage"))
	assert.Equal(t, models.ColorSecondary, MetricColor("memory_used"))
	assert.Equal(t, models.ColorSecondary, MetricColor("ram_free"))
	assert.Equal(t, models.ColorWarning, MetricColor("disk_usage"))
	assert.Equal(t, models.ColorWarning, MetricColor("storage_total"))
	assert.Equal(t, models.ColorInfo, MetricColor("network_in"))
	assert.Equal(t, models.ColorError, MetricColor("temperature"))
	assert.Equal(t, models.ColorSuccess, MetricColor("uptime"))
}

func TestIsPositiveStatus(t *testing.T) {
	assert.True(t, IsPositiveStatus("Online"))
	assert.True(t, IsPositiveStatus("service is running"))
	assert.True(t, IsPositiveStatus("OK"))
	assert.False(t, IsPositiveStatus("offline"))
	assert.False(t, IsPositiveStatus("stopped"))
	assert.False(t, IsPositiveStatus(""))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "42%", FormatPercentage(42.4))
	assert.Equal(t, "0%", FormatPercentage(-5))
	assert.Equal(t, "100%", FormatPercentage(150))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "N/A", FormatDuration(0))
	assert.Equal(t, "N/A", FormatDuration(-10))
	assert.Equal(t, "59s", FormatDuration(59))
	assert.Equal(t, "1h", FormatDuration(3600))
	assert.Equal(t, "1d 1h 1m 1s", FormatDuration(90061))
}
