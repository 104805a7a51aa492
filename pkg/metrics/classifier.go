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

// Package metrics classifies arbitrary plugin telemetry into
// display-ready projections. The data source negotiates no schema; all
// typing happens here at runtime.
package metrics

import (
	"strings"

	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

const maxMainMetrics = 4

const errorFieldKey = "error"

// priorityMetrics are the well-known fields promoted to the main metric
// slots, in this order, with predetermined display types.
var priorityMetrics = []struct {
	key         string
	displayType models.DisplayType
}{
	{"cpu_usage", models.DisplayPercentage},
	{"memory_used", models.DisplayPercentage},
	{"disk_usage", models.DisplayPercentage},
	{"temperature", models.DisplayText},
}

// Classifier turns raw telemetry records into classified fields. It
// holds no mutable state; every method is a pure function of its input
// and may be called from any number of goroutines.
type Classifier struct {
	labels map[string]string
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithLabels supplies localized display labels keyed by raw field name.
// A missing entry falls back to the computed title.
func WithLabels(labels map[string]string) Option {
	return func(c *Classifier) {
		c.labels = labels
	}
}

// NewClassifier builds a Classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

func (c *Classifier) title(key string) string {
	if label, ok := c.labels[key]; ok && label != "" {
		return label
	}

	return FormatTitle(key)
}

// ExtractMainMetrics selects up to four headline metrics from a raw
// record. Priority fields win their slots first; remaining slots are
// backfilled from the record in document order with inferred display
// types. A nil record yields an empty slice.
func (c *Classifier) ExtractMainMetrics(record *models.RawRecord) []models.ClassifiedField {
	if record.Len() == 0 {
		return []models.ClassifiedField{}
	}

	main := make([]models.ClassifiedField, 0, maxMainMetrics)
	selected := make(map[string]bool, maxMainMetrics)

	for _, def := range priorityMetrics {
		value, ok := record.Get(def.key)
		if !ok {
			continue
		}

		selected[def.key] = true
		main = append(main, models.ClassifiedField{
			Title:       c.title(def.key),
			Value:       value.Interface(),
			DisplayType: def.displayType,
			Color:       MetricColor(def.key),
		})
	}

	if len(main) >= maxMainMetrics {
		return main[:maxMainMetrics]
	}

	for _, key := range record.Keys() {
		value, _ := record.Get(key)

		// Null behaves like an opaque value here, matching the
		// original runtime's typeof semantics.
		if !value.IsScalar() || value.Kind == models.KindNull {
			continue
		}

		if key == errorFieldKey || selected[key] {
			continue
		}

		// Dedupe by case-insensitive title containment. This can
		// false-positive on titles that embed another field's name;
		// kept as-is because consumers rely on the selection order it
		// produces.
		if titleContains(main, key) {
			continue
		}

		main = append(main, models.ClassifiedField{
			Title:       c.title(key),
			Value:       value.Interface(),
			DisplayType: inferMetricType(value),
			Color:       MetricColor(key),
		})

		if len(main) >= maxMainMetrics {
			break
		}
	}

	return main
}

// ExtractSystemInfo builds an unbounded list of classified fields from
// every scalar entry of a status record, excluding the error field.
func (c *Classifier) ExtractSystemInfo(record *models.RawRecord) []models.ClassifiedField {
	if record.Len() == 0 {
		return []models.ClassifiedField{}
	}

	info := make([]models.ClassifiedField, 0, record.Len())

	for _, key := range record.Keys() {
		value, _ := record.Get(key)

		if !value.IsScalar() || value.Kind == models.KindNull {
			continue
		}

		if key == errorFieldKey {
			continue
		}

		info = append(info, models.ClassifiedField{
			Title:       c.title(key),
			Value:       value.Interface(),
			DisplayType: inferInfoType(key, value),
		})
	}

	return info
}

// ExtractTableData lifts every non-empty array-of-objects field into a
// TableDataset. Empty arrays and arrays of primitives are excluded.
func (c *Classifier) ExtractTableData(record *models.RawRecord) []models.TableDataset {
	if record.Len() == 0 {
		return []models.TableDataset{}
	}

	tables := make([]models.TableDataset, 0)

	for _, key := range record.Keys() {
		value, _ := record.Get(key)

		if value.Kind != models.KindArray || len(value.Arr) == 0 {
			continue
		}

		if _, ok := value.Arr[0].(map[string]interface{}); !ok {
			continue
		}

		rows := make([]map[string]interface{}, 0, len(value.Arr))

		for _, elem := range value.Arr {
			if row, ok := elem.(map[string]interface{}); ok {
				rows = append(rows, row)
			}
		}

		tables = append(tables, models.TableDataset{Key: key, Rows: rows})
	}

	return tables
}

func inferMetricType(value models.Value) models.DisplayType {
	switch value.Kind {
	case models.KindNumber:
		if value.Num >= 0 && value.Num <= 100 {
			return models.DisplayPercentage
		}

		if value.Num > 1000 {
			return models.DisplayBytes
		}

		return models.DisplayText
	case models.KindBool:
		return models.DisplayBoolean
	default:
		return models.DisplayText
	}
}

func inferInfoType(key string, value models.Value) models.DisplayType {
	if value.Kind == models.KindBool {
		return models.DisplayBoolean
	}

	lower := strings.ToLower(key)
	if strings.Contains(lower, "status") || strings.Contains(lower, "connected") || strings.Contains(lower, "online") {
		return models.DisplayStatus
	}

	return models.DisplayText
}

func titleContains(fields []models.ClassifiedField, key string) bool {
	lowerKey := strings.ToLower(key)

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Title), lowerKey) {
			return true
		}
	}

	return false
}
