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

package main

import (
	"context"
	"flag"
	"log"

	"github.com/n1kozor/AINFRA-sub002/pkg/config"
	"github.com/n1kozor/AINFRA-sub002/pkg/core"
	"github.com/n1kozor/AINFRA-sub002/pkg/lifecycle"
)

func main() {
	configPath := flag.String("config", "", "Path to the core config file (optional, env and defaults apply without it)")
	flag.Parse()

	ctx := context.Background()

	var cfg core.Config

	cfgLoader := config.NewConfig(nil)
	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := lifecycle.CreateComponentLogger("core", cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	server := core.NewServer(&cfg, logger)

	if err := lifecycle.Run(ctx, server, logger); err != nil {
		logger.Fatal().Err(err).Msg("Dashboard core failed")
	}
}
