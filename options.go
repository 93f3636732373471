// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"log/slog"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/engine"
)

type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithFs reads sound files from fs.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.resourceOpts = append(m.resourceOpts, engine.WithFs(fs))
	}
}

// WithDecoder adds or replaces the decoder for files with extension ext.
func WithDecoder(ext string, d audio.Decoder) Option {
	return func(m *Manager) {
		m.resourceOpts = append(m.resourceOpts, engine.WithDecoder(ext, d))
	}
}

// WithDeviceOpener selects the output backend. The default is the system
// device through miniaudio.
func WithDeviceOpener(open engine.DeviceOpener) Option {
	return func(m *Manager) {
		if open != nil {
			m.openDevice = open
		}
	}
}

// WithPeriodFrames requests a device callback size. Zero lets the backend
// choose.
func WithPeriodFrames(frames int) Option {
	return func(m *Manager) {
		m.periodFrames = max(frames, 0)
	}
}

// WithVolume sets the initial master volume.
func WithVolume(vol float32) Option {
	return func(m *Manager) {
		m.SetVolume(vol)
	}
}

// WithDiagnosticHandler receives every Diagnostic on the calling goroutine.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return func(m *Manager) {
		m.onDiagnostic = fn
	}
}

// WithTracerProvider traces Init, LoadSound and Teardown. Playback calls are
// not traced.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Manager) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}
