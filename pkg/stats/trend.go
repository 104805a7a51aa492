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

package stats

import "github.com/n1kozor/AINFRA-sub002/pkg/models"

// NormalizeTrend prepares the hourly trend series for charting: hour
// buckets without samples are dropped, and a lone surviving point is
// duplicated under a "+"-suffixed label so line and area charts draw a
// visible segment instead of a single dot. The input is not modified.
func NormalizeTrend(trend []models.HourlyTrend) []models.HourlyTrend {
	filtered := make([]models.HourlyTrend, 0, len(trend))

	for _, bucket := range trend {
		if bucket.CheckCount > 0 {
			filtered = append(filtered, bucket)
		}
	}

	if len(filtered) == 1 {
		duplicate := filtered[0]
		duplicate.Hour += "+"
		filtered = append(filtered, duplicate)
	}

	return filtered
}
