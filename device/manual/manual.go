// SPDX-License-Identifier: EPL-2.0

// Package manual is an output device without hardware. Audio is rendered
// only when Pump is called, which makes mixing deterministic for tests and
// offline rendering.
package manual

import (
	"errors"
	"sync"

	"github.com/ik5/sfxpool/engine"
)

var (
	ErrNotStarted = errors.New("manual: device not started")
	ErrClosed     = errors.New("manual: device closed")
)

// DefaultPeriod is used when the config leaves PeriodFrames at zero.
const DefaultPeriod = 512

type Device struct {
	mu       sync.Mutex
	render   engine.RenderFunc
	channels int
	period   int
	buf      []float32
	started  bool
	closed   bool
	rendered int64
}

// Open matches engine.DeviceOpener.
func Open(cfg engine.DeviceConfig, render engine.RenderFunc) (engine.Device, error) {
	return New(cfg, render)
}

func New(cfg engine.DeviceConfig, render engine.RenderFunc) (*Device, error) {
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}

	period := cfg.PeriodFrames
	if period <= 0 {
		period = DefaultPeriod
	}

	return &Device{
		render:   render,
		channels: cfg.Format.Channels,
		period:   period,
		buf:      make([]float32, period*cfg.Format.Channels),
	}, nil
}

func (d *Device) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	d.started = true

	return nil
}

func (d *Device) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	d.started = false

	return nil
}

// Close is idempotent.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.started = false
	d.closed = true

	return nil
}

func (d *Device) Started() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.started
}

// Rendered is the total number of frames produced so far.
func (d *Device) Rendered() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rendered
}

// Pump renders frames frames in period-sized callbacks and returns them
// interleaved. The returned slice is only valid until the next Pump.
func (d *Device) Pump(frames int) ([]float32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.closed:
		return nil, ErrClosed
	case !d.started:
		return nil, ErrNotStarted
	}

	need := frames * d.channels
	if cap(d.buf) < need {
		d.buf = make([]float32, need)
	}
	out := d.buf[:need]

	for off := 0; off < frames; off += d.period {
		n := min(d.period, frames-off)
		d.render(out[off*d.channels:(off+n)*d.channels], n)
	}
	d.rendered += int64(frames)

	return out, nil
}
