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

package models

// TimeRange selects the look-back window for system statistics.
type TimeRange string

const (
	TimeRange30m TimeRange = "30m"
	TimeRange1h  TimeRange = "1h"
	TimeRange6h  TimeRange = "6h"
	TimeRange24h TimeRange = "24h"
	TimeRange7d  TimeRange = "7d"
	TimeRangeAll TimeRange = "all"
)

// Valid reports whether the range is one of the supported options.
func (t TimeRange) Valid() bool {
	switch t {
	case TimeRange30m, TimeRange1h, TimeRange6h, TimeRange24h, TimeRange7d, TimeRangeAll:
		return true
	default:
		return false
	}
}

// SystemStatus carries service-level metadata attached to a statistics
// snapshot. All fields are server-computed and passed through.
type SystemStatus struct {
	Timestamp               string `json:"timestamp"`
	ServiceName             string `json:"service_name"`
	Version                 string `json:"version"`
	BackgroundChecksRunning bool   `json:"background_checks_running"`
	CheckIntervalMinutes    int    `json:"check_interval_minutes"`
	TimeRange               string `json:"time_range,omitempty"`
}

// DeviceSummary counts devices by activity.
type DeviceSummary struct {
	TotalDevices    int `json:"total_devices"`
	ActiveDevices   int `json:"active_devices"`
	InactiveDevices int `json:"inactive_devices"`
}

// AvailabilitySummary aggregates availability over the selected window.
type AvailabilitySummary struct {
	DevicesAvailable   int      `json:"devices_available"`
	DevicesUnavailable int      `json:"devices_unavailable"`
	AvailabilityRate   float64  `json:"availability_rate"`
	AvgResponseTimeMs  *float64 `json:"avg_response_time_ms"`
}

// HourlyTrend is one hour bucket of the availability trend series.
type HourlyTrend struct {
	Hour             string  `json:"hour"`
	AvailabilityRate float64 `json:"availability_rate"`
	CheckCount       int     `json:"check_count"`
}

// DeviceError is one entry of the bounded recent-errors list.
type DeviceError struct {
	DeviceID     int64  `json:"device_id"`
	DeviceName   string `json:"device_name"`
	ErrorMessage string `json:"error_message"`
	Timestamp    string `json:"timestamp"`
}

// SlowDevice is one entry of the bounded slowest-devices list.
type SlowDevice struct {
	DeviceID     int64   `json:"device_id"`
	DeviceName   string  `json:"device_name"`
	IsAvailable  bool    `json:"is_available"`
	ResponseTime float64 `json:"response_time"`
	CheckMethod  string  `json:"check_method"`
	Timestamp    string  `json:"timestamp"`
	Error        *string `json:"error"`
}

// SystemStatistics is the system-wide statistics snapshot served by the
// main API. The client shapes it for charting but never recomputes it.
type SystemStatistics struct {
	SystemStatus        SystemStatus        `json:"system_status"`
	DeviceSummary       DeviceSummary       `json:"device_summary"`
	AvailabilitySummary AvailabilitySummary `json:"availability_summary"`
	CheckMethods        map[string]int      `json:"check_methods"`
	HourlyTrend         []HourlyTrend       `json:"hourly_trend"`
	RecentErrors        []DeviceError       `json:"recent_errors"`
	TopSlowestDevices   []SlowDevice        `json:"top_slowest_devices"`
	Error               string              `json:"error,omitempty"`
	Message             string              `json:"message,omitempty"`
}
