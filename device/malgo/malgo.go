// SPDX-License-Identifier: EPL-2.0

// Package malgo plays through the system's default output device using
// miniaudio.
package malgo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/ik5/sfxpool/engine"
)

var ErrClosed = errors.New("malgo: device closed")

type Device struct {
	ctx    *malgo.AllocatedContext
	dev    *malgo.Device
	log    *slog.Logger
	closed bool
}

// Open initialises a miniaudio context and a float32 playback device in
// cfg.Format. The device stays stopped until Start.
func Open(cfg engine.DeviceConfig, render engine.RenderFunc) (engine.Device, error) {
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Debug("miniaudio", "msg", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("init context: %w", err)
	}

	dc := malgo.DefaultDeviceConfig(malgo.Playback)
	dc.Playback.Format = malgo.FormatF32
	dc.Playback.Channels = uint32(cfg.Format.Channels)
	dc.SampleRate = uint32(cfg.Format.SampleRate)
	dc.PeriodSizeInFrames = uint32(max(cfg.PeriodFrames, 0))
	dc.Alsa.NoMMap = 1

	channels := cfg.Format.Channels
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frames uint32) {
			if len(out) == 0 {
				return
			}
			samples := unsafe.Slice((*float32)(unsafe.Pointer(&out[0])), int(frames)*channels)
			render(samples, int(frames))
		},
	}

	dev, err := malgo.InitDevice(ctx.Context, dc, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("init device: %w", err)
	}

	return &Device{ctx: ctx, dev: dev, log: log}, nil
}

func (d *Device) Start() error {
	if d.closed {
		return ErrClosed
	}
	if err := d.dev.Start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

func (d *Device) Stop() error {
	if d.closed {
		return ErrClosed
	}
	if err := d.dev.Stop(); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// Close uninitialises the device and its context. Close is idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.dev.Uninit()
	err := d.ctx.Uninit()
	d.ctx.Free()
	if err != nil {
		return fmt.Errorf("uninit context: %w", err)
	}

	return nil
}
