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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

func recordFromJSON(t *testing.T, raw string) *models.RawRecord {
	t.Helper()

	record := models.NewRawRecord()
	require.NoError(t, json.Unmarshal([]byte(raw), record))

	return record
}

func fieldTitles(fields []models.ClassifiedField) []string {
	titles := make([]string, 0, len(fields))
	for _, f := range fields {
		titles = append(titles, f.Title)
	}

	return titles
}

func TestExtractMainMetricsPriorityFieldsWinSlots(t *testing.T) {
	record := recordFromJSON(t, `{
		"network_in": 10,
		"temperature": "55C",
		"disk_usage": 70.1,
		"memory_used": 60.2,
		"cpu_usage": 42.5
	}`)

	main := NewClassifier().ExtractMainMetrics(record)

	require.Len(t, main, 4)
	assert.Equal(t, []string{"Cpu Usage", "Memory Used", "Disk Usage", "Temperature"}, fieldTitles(main))
	assert.Equal(t, models.DisplayPercentage, main[0].DisplayType)
	assert.Equal(t, models.DisplayPercentage, main[1].DisplayType)
	assert.Equal(t, models.DisplayPercentage, main[2].DisplayType)
	assert.Equal(t, models.DisplayText, main[3].DisplayType)
	assert.Equal(t, models.ColorPrimary, main[0].Color)
	assert.Equal(t, models.ColorSecondary, main[1].Color)
	assert.Equal(t, models.ColorWarning, main[2].Color)
	assert.Equal(t, models.ColorError, main[3].Color)
	assert.Equal(t, 42.5, main[0].Value)
}

func TestExtractMainMetricsBackfillsInDocumentOrder(t *testing.T) {
	record := recordFromJSON(t, `{
		"uptime": 123456,
		"cpu_usage": 10,
		"status": "online",
		"details": {"nested": true},
		"readings": [1, 2],
		"missing": null,
		"error": "ignored",
		"fan_speed": 50
	}`)

	main := NewClassifier().ExtractMainMetrics(record)

	require.Len(t, main, 4)
	assert.Equal(t, []string{"Cpu Usage", "Uptime", "Status", "Fan Speed"}, fieldTitles(main))
	assert.Equal(t, models.DisplayBytes, main[1].DisplayType)
	assert.Equal(t, models.DisplayText, main[2].DisplayType)
	assert.Equal(t, models.DisplayPercentage, main[3].DisplayType)
}

func TestExtractMainMetricsDedupesByTitleContainment(t *testing.T) {
	record := recordFromJSON(t, `{
		"cpu_usage": 10,
		"cpu": 20,
		"usage": 30,
		"load": 40
	}`)

	main := NewClassifier().ExtractMainMetrics(record)

	// "Cpu Usage" already contains both "cpu" and "usage".
	assert.Equal(t, []string{"Cpu Usage", "Load"}, fieldTitles(main))
}

func TestExtractMainMetricsInference(t *testing.T) {
	record := recordFromJSON(t, `{
		"a": 100,
		"b": 100.5,
		"c": 1000.5,
		"d": true
	}`)

	main := NewClassifier().ExtractMainMetrics(record)

	require.Len(t, main, 4)
	assert.Equal(t, models.DisplayPercentage, main[0].DisplayType)
	assert.Equal(t, models.DisplayText, main[1].DisplayType)
	assert.Equal(t, models.DisplayBytes, main[2].DisplayType)
	assert.Equal(t, models.DisplayBoolean, main[3].DisplayType)
	assert.Equal(t, true, main[3].Value)
}

func TestExtractMainMetricsLabelsOverrideTitles(t *testing.T) {
	record := recordFromJSON(t, `{"cpu_usage": 10}`)

	classifier := NewClassifier(WithLabels(map[string]string{"cpu_usage": "Processor Load"}))
	main := classifier.ExtractMainMetrics(record)

	require.Len(t, main, 1)
	assert.Equal(t, "Processor Load", main[0].Title)
}

func TestExtractMainMetricsEmptyAndNilRecords(t *testing.T) {
	assert.Empty(t, NewClassifier().ExtractMainMetrics(nil))
	assert.Empty(t, NewClassifier().ExtractMainMetrics(models.NewRawRecord()))
}

func TestExtractMainMetricsIsPureFunction(t *testing.T) {
	record := recordFromJSON(t, `{"cpu_usage": 10, "uptime": 5000}`)

	classifier := NewClassifier()
	first := classifier.ExtractMainMetrics(record)
	second := classifier.ExtractMainMetrics(record)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"cpu_usage", "uptime"}, record.Keys())
}

func TestExtractSystemInfoSkipsNonScalarsAndError(t *testing.T) {
	record := recordFromJSON(t, `{
		"hostname": "nas-01",
		"device_status": "running",
		"connected": true,
		"online": "yes",
		"error": "boom",
		"partitions": [{"mount": "/"}],
		"limits": {"max": 1},
		"serial": null
	}`)

	info := NewClassifier().ExtractSystemInfo(record)

	require.Len(t, info, 4)
	assert.Equal(t, []string{"Hostname", "Device Status", "Connected", "Online"}, fieldTitles(info))
	assert.Equal(t, models.DisplayText, info[0].DisplayType)
	assert.Equal(t, models.DisplayStatus, info[1].DisplayType)
	assert.Equal(t, models.DisplayBoolean, info[2].DisplayType)
	assert.Equal(t, models.DisplayStatus, info[3].DisplayType)
}

func TestExtractTableDataSelectsArraysOfObjects(t *testing.T) {
	record := recordFromJSON(t, `{
		"a": [{"x": 1}],
		"b": [],
		"c": [1, 2, 3],
		"d": {"x": 1}
	}`)

	tables := NewClassifier().ExtractTableData(record)

	require.Len(t, tables, 1)
	assert.Equal(t, "a", tables[0].Key)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, 1.0, tables[0].Rows[0]["x"])
}

func TestExtractTableDataSkipsNonObjectRows(t *testing.T) {
	record := recordFromJSON(t, `{
		"mixed": [{"x": 1}, 2, {"y": 3}],
		"primitive_first": [1, {"x": 1}]
	}`)

	tables := NewClassifier().ExtractTableData(record)

	require.Len(t, tables, 1)
	assert.Equal(t, "mixed", tables[0].Key)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, 1.0, tables[0].Rows[0]["x"])
	assert.Equal(t, 3.0, tables[0].Rows[1]["y"])
}
