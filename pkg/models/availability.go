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

import "time"

// AvailabilityState is the last known availability of one device. A
// failed check downgrades to unavailable rather than unknown; LastError
// carries the reason.
type AvailabilityState struct {
	DeviceID      string    `json:"device_id"`
	IsAvailable   bool      `json:"is_available"`
	LastCheckedAt time.Time `json:"last_checked_at"`
	LastError     string    `json:"last_error,omitempty"`
}

// AvailabilityStats summarizes a set of device states for dashboard
// tiles.
type AvailabilityStats struct {
	TotalDevices       int `json:"total_devices"`
	AvailableDevices   int `json:"available_devices"`
	UnavailableDevices int `json:"unavailable_devices"`
	UptimePercent      int `json:"uptime_percent"`
}

// CalculateAvailabilityStats folds device states into summary counts.
// The uptime percentage is rounded to the nearest whole percent.
func CalculateAvailabilityStats(states []AvailabilityState) AvailabilityStats {
	if len(states) == 0 {
		return AvailabilityStats{}
	}

	stats := AvailabilityStats{TotalDevices: len(states)}

	for _, s := range states {
		if s.IsAvailable {
			stats.AvailableDevices++
		}
	}

	stats.UnavailableDevices = stats.TotalDevices - stats.AvailableDevices
	stats.UptimePercent = int(float64(stats.AvailableDevices)/float64(stats.TotalDevices)*100 + 0.5)

	return stats
}

// MergeAvailability combines a base result set with a newer streaming
// set, keeping whichever entry per device carries the later timestamp.
// Neither input is modified.
func MergeAvailability(base, updates []AvailabilityState) []AvailabilityState {
	if len(base) == 0 {
		out := make([]AvailabilityState, len(updates))
		copy(out, updates)

		return out
	}

	if len(updates) == 0 {
		out := make([]AvailabilityState, len(base))
		copy(out, base)

		return out
	}

	out := make([]AvailabilityState, len(base))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.DeviceID] = i
	}

	for _, u := range updates {
		i, ok := index[u.DeviceID]
		if !ok {
			index[u.DeviceID] = len(out)
			out = append(out, u)

			continue
		}

		if u.LastCheckedAt.After(out[i].LastCheckedAt) {
			out[i] = u
		}
	}

	return out
}
