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

// Package lifecycle runs services with signal-aware startup and
// shutdown.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Service is anything with a blocking Start and a graceful Stop.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Run starts the service and blocks until it fails or an interrupt or
// termination signal arrives, then stops it with a bounded deadline.
func Run(ctx context.Context, svc Service, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- svc.Start(ctx)
	}()

	var runErr error

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = err
		}
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := svc.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")

		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}

// CreateComponentLogger initializes a logger tagged with a component
// name from the provided configuration.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, error) {
	return logger.NewComponentLogger(config, component)
}
