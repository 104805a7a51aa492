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

package api

import (
	"net/http"
	"time"
)

const wsWriteTimeout = 10 * time.Second

// streamAvailability pushes availability state changes to the client.
// The first frame carries the full current state list; each later
// frame is a single updated state.
func (s *APIServer) streamAvailability(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	subID, updates := s.poller.Subscribe()
	defer s.poller.Unsubscribe(subID)

	if err := conn.WriteJSON(s.poller.States()); err != nil {
		return
	}

	// Drain client frames so close handshakes are noticed.
	clientGone := make(chan struct{})

	go func() {
		defer close(clientGone)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-clientGone:
			return
		case state, ok := <-updates:
			if !ok {
				return
			}

			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}

			if err := conn.WriteJSON(state); err != nil {
				s.logger.Debug().Err(err).Msg("WebSocket write failed, dropping client")
				return
			}
		}
	}
}
