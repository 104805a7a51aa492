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

package availability

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

const (
	// DefaultInterval is the polling cadence used when a watcher does
	// not request one.
	DefaultInterval = 5 * time.Second

	// maxProbeTimeout caps the per-check deadline so very long watch
	// intervals cannot pin a hung connection for minutes.
	maxProbeTimeout = 10 * time.Second

	subscriberBuffer = 16
)

// Poller owns a keyed registry of per-device polling loops. Watches are
// reference-counted: multiple views of the same device share one loop,
// and the last unwatch cancels it. Consumers read state snapshots,
// never live references.
type Poller struct {
	probe  Probe
	clock  Clock
	logger logger.Logger

	mu      sync.Mutex
	watches map[string]*watch
	states  map[string]models.AvailabilityState
	subs    map[uuid.UUID]chan models.AvailabilityState
	closed  bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// watch is one device's polling loop. A new watch object is created
// each time a device goes from unwatched to watched, so a completion
// from a cancelled loop can never touch the fresh one.
type watch struct {
	deviceID string
	interval time.Duration
	refs     int
	done     chan struct{}
	stopped  bool
	inFlight bool
	seq      uint64
	applied  uint64
}

// NewPoller creates a poller. A nil clock defaults to the real clock.
func NewPoller(probe Probe, clock Clock, log logger.Logger) *Poller {
	if clock == nil {
		clock = realClock{}
	}

	return &Poller{
		probe:   probe,
		clock:   clock,
		logger:  log,
		watches: make(map[string]*watch),
		states:  make(map[string]models.AvailabilityState),
		subs:    make(map[uuid.UUID]chan models.AvailabilityState),
		done:    make(chan struct{}),
	}
}

// StartWatching registers interest in a device. The first watcher
// triggers an immediate check and starts a repeating loop at the given
// interval; later watchers only bump the reference count and inherit
// the existing cadence.
func (p *Poller) StartWatching(deviceID string, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return ErrPollerClosed
	}

	if w, ok := p.watches[deviceID]; ok {
		w.refs++
		p.mu.Unlock()

		return nil
	}

	w := &watch{
		deviceID: deviceID,
		interval: interval,
		refs:     1,
		done:     make(chan struct{}),
	}

	p.watches[deviceID] = w
	watchedDevices.Set(float64(len(p.watches)))

	p.wg.Add(1)
	p.mu.Unlock()

	p.logger.Debug().Str("device_id", deviceID).Dur("interval", interval).Msg("Starting availability watch")

	go p.run(w)

	return nil
}

// StopWatching releases one reference on a device watch. The last
// release cancels the loop and discards any in-flight check result.
// Safe to call repeatedly or for devices that were never watched.
func (p *Poller) StopWatching(deviceID string) {
	p.mu.Lock()

	w, ok := p.watches[deviceID]
	if !ok {
		p.mu.Unlock()
		return
	}

	w.refs--
	if w.refs > 0 {
		p.mu.Unlock()
		return
	}

	w.stopped = true
	close(w.done)
	delete(p.watches, deviceID)
	delete(p.states, deviceID)
	watchedDevices.Set(float64(len(p.watches)))
	p.mu.Unlock()

	p.logger.Debug().Str("device_id", deviceID).Msg("Stopped availability watch")
}

// GetState returns a snapshot of the last known availability state, or
// an offline default if no check has completed for the device.
func (p *Poller) GetState(deviceID string) models.AvailabilityState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if state, ok := p.states[deviceID]; ok {
		return state
	}

	return models.AvailabilityState{DeviceID: deviceID}
}

// States returns snapshots for all devices with known state, ordered by
// device id.
func (p *Poller) States() []models.AvailabilityState {
	p.mu.Lock()

	out := make([]models.AvailabilityState, 0, len(p.states))
	for _, state := range p.states {
		out = append(out, state)
	}

	p.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })

	return out
}

// Subscribe registers a state-change listener. Slow consumers miss
// updates rather than blocking the poller.
func (p *Poller) Subscribe() (uuid.UUID, <-chan models.AvailabilityState) {
	id := uuid.New()
	ch := make(chan models.AvailabilityState, subscriberBuffer)

	p.mu.Lock()
	p.subs[id] = ch
	p.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a listener and closes its channel. Idempotent.
func (p *Poller) Unsubscribe(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ch, ok := p.subs[id]; ok {
		delete(p.subs, id)
		close(ch)
	}
}

// Close cancels all watches and waits for their loops to exit.
func (p *Poller) Close() {
	p.closeOnce.Do(func() { close(p.done) })

	p.mu.Lock()
	p.closed = true

	for id, w := range p.watches {
		w.stopped = true
		close(w.done)
		delete(p.watches, id)
	}

	watchedDevices.Set(0)
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
}

func (p *Poller) run(w *watch) {
	defer p.wg.Done()

	p.check(w)

	ticker := p.clock.Ticker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-p.done:
			return
		case <-ticker.Chan():
			p.check(w)
		}
	}
}

// check performs one availability check. Ticks that fire while the
// previous check is still outstanding are skipped rather than queued,
// so there is never more than one request in flight per device.
func (p *Poller) check(w *watch) {
	p.mu.Lock()

	if w.stopped {
		p.mu.Unlock()
		return
	}

	if w.inFlight {
		ticksSkipped.Inc()
		p.mu.Unlock()

		return
	}

	w.inFlight = true
	w.seq++
	seq := w.seq
	p.mu.Unlock()

	timeout := w.interval
	if timeout > maxProbeTimeout {
		timeout = maxProbeTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := p.probe.Check(ctx, w.deviceID)
	now := p.clock.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	w.inFlight = false

	// Results from cancelled watches and out-of-order completions are
	// dropped so LastCheckedAt never regresses.
	if w.stopped || p.closed || seq <= w.applied {
		staleResultsDropped.Inc()
		return
	}

	if prev, ok := p.states[w.deviceID]; ok && now.Before(prev.LastCheckedAt) {
		staleResultsDropped.Inc()
		return
	}

	w.applied = seq

	state := models.AvailabilityState{
		DeviceID:      w.deviceID,
		LastCheckedAt: now,
	}

	if err != nil {
		// Failure means unavailable, not unknown. The next tick retries
		// naturally; there is no extra backoff.
		state.IsAvailable = false
		state.LastError = err.Error()

		checksTotal.WithLabelValues("failure").Inc()
		p.logger.Warn().Err(err).Str("device_id", w.deviceID).Msg("Availability check failed")
	} else {
		state.IsAvailable = result.IsAvailable

		checksTotal.WithLabelValues("success").Inc()
		p.logger.Debug().
			Str("device_id", w.deviceID).
			Bool("is_available", result.IsAvailable).
			Dur("response_time", result.ResponseTime).
			Msg("Availability check completed")
	}

	p.states[w.deviceID] = state
	p.notifyLocked(state)
}

func (p *Poller) notifyLocked(state models.AvailabilityState) {
	for _, ch := range p.subs {
		select {
		case ch <- state:
		default:
		}
	}
}
