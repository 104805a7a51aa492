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

// Package availability maintains near-real-time availability state for
// watched devices against the availability service.
package availability

import (
	"context"
	"time"
)

// Result is the outcome of a single successful availability check.
type Result struct {
	IsAvailable  bool
	ResponseTime time.Duration
}

// Probe issues one availability check for one device. Implementations
// must honor context cancellation and deadlines.
type Probe interface {
	Check(ctx context.Context, deviceID string) (*Result, error)
}

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
