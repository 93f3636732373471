// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

// Package portaudio plays through the default PortAudio output stream.
// Build with -tags portaudio; the PortAudio C library must be installed.
package portaudio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/ik5/sfxpool/engine"
)

// DefaultPeriod is used when the config leaves PeriodFrames at zero.
const DefaultPeriod = 1024

type Device struct {
	stream *portaudio.Stream
	closed bool
}

// Open initialises PortAudio and opens a stopped float32 output stream.
func Open(cfg engine.DeviceConfig, render engine.RenderFunc) (engine.Device, error) {
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	period := cfg.PeriodFrames
	if period <= 0 {
		period = DefaultPeriod
	}

	channels := cfg.Format.Channels
	stream, err := portaudio.OpenDefaultStream(
		0,
		channels,
		float64(cfg.Format.SampleRate),
		period,
		func(out []float32) {
			render(out, len(out)/channels)
		},
	)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("open stream: %w", err)
	}

	return &Device{stream: stream}, nil
}

func (d *Device) Start() error {
	if err := d.stream.Start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

func (d *Device) Stop() error {
	if err := d.stream.Stop(); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// Close closes the stream and terminates PortAudio. Close is idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	err := d.stream.Close()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}
