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
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// positiveStatusKeywords mark a status string as healthy when any of
// them appears as a substring.
var positiveStatusKeywords = []string{
	"online", "active", "running", "up", "connected", "enabled", "ok", "healthy",
}

// FormatBytes renders a byte count with base-1024 units, keeping at
// most two decimal places and trimming trailing zeros. Zero and
// negative inputs render as "0 Bytes".
func FormatBytes(bytes float64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	exp := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	if exp < 0 {
		exp = 0
	}

	if exp >= len(byteUnits) {
		exp = len(byteUnits) - 1
	}

	scaled := bytes / math.Pow(1024, float64(exp))
	rounded := math.Round(scaled*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[exp]
}

// FormatTitle converts a raw field key into a human-readable label:
// underscores become spaces, camelCase words split, and every word is
// capitalized.
func FormatTitle(key string) string {
	var b strings.Builder

	for _, r := range key {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// MetricColor assigns a semantic color tag based on the field name.
func MetricColor(key string) models.ColorTag {
	lower := strings.ToLower(key)

	switch {
	case strings.Contains(lower, "cpu"):
		return models.ColorPrimary
	case strings.Contains(lower, "memory") || strings.Contains(lower, "ram"):
		return models.ColorSecondary
	case strings.Contains(lower, "disk") || strings.Contains(lower, "storage"):
		return models.ColorWarning
	case strings.Contains(lower, "network") || strings.Contains(lower, "interface"):
		return models.ColorInfo
	case strings.Contains(lower, "temperature") || strings.Contains(lower, "temp"):
		return models.ColorError
	default:
		return models.ColorSuccess
	}
}

// IsPositiveStatus reports whether a status string indicates a healthy
// state.
func IsPositiveStatus(status string) bool {
	if status == "" {
		return false
	}

	lower := strings.ToLower(status)

	for _, keyword := range positiveStatusKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// FormatPercentage clamps a value to [0,100] and renders it as a whole
// percent.
func FormatPercentage(value float64) string {
	clamped := math.Max(0, math.Min(100, value))
	return fmt.Sprintf("%d%%", int(math.Round(clamped)))
}

// FormatDuration renders a second count as "1d 2h 3m 4s", dropping
// zero components. Non-positive or NaN input renders as "N/A".
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "N/A"
	}

	total := int64(seconds)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	parts := make([]string, 0, 4)

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}

	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}

	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}

	return strings.Join(parts, " ")
}
