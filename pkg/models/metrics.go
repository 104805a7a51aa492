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

// DisplayType tells the dashboard how to render a classified field.
type DisplayType string

const (
	DisplayText       DisplayType = "text"
	DisplayStatus     DisplayType = "status"
	DisplayProgress   DisplayType = "progress"
	DisplayPercentage DisplayType = "percentage"
	DisplayBytes      DisplayType = "bytes"
	DisplayBoolean    DisplayType = "boolean"
)

// ColorTag is a semantic color hint; the theme layer maps it to an
// actual palette entry.
type ColorTag string

const (
	ColorPrimary   ColorTag = "primary"
	ColorSecondary ColorTag = "secondary"
	ColorWarning   ColorTag = "warning"
	ColorInfo      ColorTag = "info"
	ColorError     ColorTag = "error"
	ColorSuccess   ColorTag = "success"
)

// ClassifiedField is a display-ready projection of one raw telemetry
// field. It is recomputed from the source record on every fetch and
// never cached independently.
type ClassifiedField struct {
	Title       string      `json:"title"`
	Value       interface{} `json:"value"`
	DisplayType DisplayType `json:"display_type"`
	Color       ColorTag    `json:"color,omitempty"`
}

// TableDataset is an array-of-objects field lifted out of a raw record
// for tabular rendering.
type TableDataset struct {
	Key  string                   `json:"key"`
	Rows []map[string]interface{} `json:"rows"`
}

// DeviceView bundles the three classified projections the device detail
// page renders.
type DeviceView struct {
	MainMetrics []ClassifiedField `json:"main_metrics"`
	SystemInfo  []ClassifiedField `json:"system_info"`
	Tables      []TableDataset    `json:"tables"`
}
