// SPDX-License-Identifier: EPL-2.0

package engine

import "log/slog"

// RenderFunc fills out with frames of interleaved samples. It is called from
// the device's own goroutine or thread and must not block.
type RenderFunc func(out []float32, frames int)

// Device pulls audio from a RenderFunc and plays it.
type Device interface {
	Start() error
	Stop() error
	Close() error
}

type DeviceConfig struct {
	Format Format
	// PeriodFrames is the requested callback size. Zero lets the backend pick.
	PeriodFrames int
	Logger       *slog.Logger
}

// DeviceOpener opens a stopped device that will call render once started.
type DeviceOpener func(cfg DeviceConfig, render RenderFunc) (Device, error)
