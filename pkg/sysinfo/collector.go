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

// Package sysinfo samples the local host into a raw telemetry record,
// so standard OS hosts flow through the same classification pipeline as
// plugin devices.
package sysinfo

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/n1kozor/AINFRA-sub002/pkg/logger"
	"github.com/n1kozor/AINFRA-sub002/pkg/models"
)

// Collector samples host metrics via gopsutil.
type Collector struct {
	logger logger.Logger
	root   string
}

// NewCollector builds a collector. root is the filesystem path used for
// disk usage, "/" when empty.
func NewCollector(log logger.Logger, root string) *Collector {
	if root == "" {
		root = "/"
	}

	return &Collector{logger: log, root: root}
}

// Collect samples the host. Individual probe failures drop their fields
// rather than failing the whole record; a record with whatever was
// sampled is always returned.
func (c *Collector) Collect(ctx context.Context) *models.RawRecord {
	record := models.NewRawRecord()

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		record.Set("cpu_usage", percents[0])
	} else if err != nil {
		c.logger.Debug().Err(err).Msg("CPU sampling failed")
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		record.Set("memory_used", vm.UsedPercent)
		record.Set("memory_total", float64(vm.Total))
	} else {
		c.logger.Debug().Err(err).Msg("Memory sampling failed")
	}

	if usage, err := disk.UsageWithContext(ctx, c.root); err == nil {
		record.Set("disk_usage", usage.UsedPercent)
		record.Set("disk_total", float64(usage.Total))
	} else {
		c.logger.Debug().Err(err).Msg("Disk sampling failed")
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		record.Set("hostname", info.Hostname)
		record.Set("os", info.OS)
		record.Set("platform", info.Platform)
		record.Set("platform_version", info.PlatformVersion)
		record.Set("uptime_seconds", float64(info.Uptime))
	} else {
		c.logger.Debug().Err(err).Msg("Host info sampling failed")
	}

	if parts, err := disk.PartitionsWithContext(ctx, false); err == nil && len(parts) > 0 {
		rows := make([]interface{}, 0, len(parts))

		for _, p := range parts {
			rows = append(rows, map[string]interface{}{
				"device":     p.Device,
				"mountpoint": p.Mountpoint,
				"fstype":     p.Fstype,
			})
		}

		record.Set("partitions", rows)
	} else if err != nil {
		c.logger.Debug().Err(err).Msg("Partition listing failed")
	}

	return record
}
