// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ik5/sfxpool/device/malgo"
	"github.com/ik5/sfxpool/engine"
)

const tracerName = "github.com/ik5/sfxpool"

// Manager owns the audio stack and the sound registry. A Manager is not
// safe for concurrent use; drive it from one goroutine. Mixing happens on
// the device's own thread.
type Manager struct {
	log          *slog.Logger
	tracer       trace.Tracer
	onDiagnostic func(Diagnostic)

	format       engine.Format
	periodFrames int
	volume       float32
	resourceOpts []engine.ResourceOption
	openDevice   engine.DeviceOpener
	newEngine    func(*engine.Resources) (*engine.Engine, error)

	res *engine.Resources
	dev engine.Device
	eng *engine.Engine
	// live is what the render callback mixes from; nil renders silence.
	live atomic.Pointer[engine.Engine]

	mixer  Mixer
	sounds []*definition
	ready  bool
}

// New returns an uninitialised Manager. Call Init before loading sounds.
func New(opts ...Option) *Manager {
	m := &Manager{
		log:        slog.New(slog.DiscardHandler),
		tracer:     noop.NewTracerProvider().Tracer(tracerName),
		format:     engine.DefaultFormat,
		volume:     MaxVolume,
		openDevice: malgo.Open,
		newEngine:  engine.New,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init brings the stack up: resources, then the output device, then the
// engine, then starts the device. If a stage fails the earlier ones are
// undone and a *StageError is returned.
func (m *Manager) Init() error {
	if m.ready {
		return ErrAlreadyInitialized
	}

	_, span := m.tracer.Start(context.Background(), "sfxpool.Init")
	defer span.End()

	res, err := engine.NewResources(m.format, m.resourceOpts...)
	if err != nil {
		return m.initFailed(span, StageResources, err)
	}
	span.AddEvent(string(StageResources))

	dev, err := m.openDevice(engine.DeviceConfig{
		Format:       m.format,
		PeriodFrames: m.periodFrames,
		Logger:       m.log,
	}, m.render)
	if err != nil {
		_ = res.Close()
		return m.initFailed(span, StageDevice, err)
	}
	span.AddEvent(string(StageDevice))

	eng, err := m.newEngine(res)
	if err != nil {
		_ = dev.Close()
		_ = res.Close()
		return m.initFailed(span, StageEngine, err)
	}
	eng.SetVolume(m.volume)
	m.live.Store(eng)
	span.AddEvent(string(StageEngine))

	if err := dev.Start(); err != nil {
		m.live.Store(nil)
		_ = eng.Close()
		_ = dev.Close()
		_ = res.Close()
		return m.initFailed(span, StageStart, err)
	}
	span.AddEvent(string(StageStart))

	m.res, m.dev, m.eng = res, dev, eng
	m.mixer = engineMixer{eng}
	m.ready = true

	m.log.Debug("audio initialized",
		"rate", m.format.SampleRate,
		"channels", m.format.Channels,
		"formats", res.Formats(),
	)

	return nil
}

func (m *Manager) initFailed(span trace.Span, stage Stage, err error) error {
	m.log.Error("audio init failed", "stage", stage, "err", err)

	span.RecordError(err)
	span.SetStatus(codes.Error, string(stage))
	span.SetAttributes(attribute.String("sfxpool.stage", string(stage)))

	return &StageError{Stage: stage, Err: err}
}

// render runs on the device thread.
func (m *Manager) render(out []float32, _ int) {
	eng := m.live.Load()
	if eng == nil {
		clear(out)
		return
	}
	eng.Read(out)
}

// Device is the open output device, or nil before Init.
func (m *Manager) Device() engine.Device { return m.dev }

func (m *Manager) Initialized() bool { return m.ready }

// Teardown stops and releases every voice, forgets every sound and shuts
// the stack down in reverse bring-up order. It is safe to call more than
// once, and Init may be called again afterwards.
func (m *Manager) Teardown() {
	if !m.ready {
		return
	}

	_, span := m.tracer.Start(context.Background(), "sfxpool.Teardown",
		trace.WithAttributes(attribute.Int("sfxpool.sounds", len(m.sounds))))
	defer span.End()

	for _, d := range m.sounds {
		for _, v := range d.voices {
			_ = v.Stop()
			v.Release()
		}
		d.voices = nil
	}
	m.sounds = nil

	m.live.Store(nil)
	if m.eng != nil {
		if err := m.eng.Close(); err != nil {
			m.log.Warn("close engine", "err", err)
		}
	}
	if m.dev != nil {
		if err := m.dev.Close(); err != nil {
			m.log.Warn("close device", "err", err)
		}
	}
	if m.res != nil {
		if err := m.res.Close(); err != nil {
			m.log.Warn("close resources", "err", err)
		}
	}

	m.res, m.dev, m.eng = nil, nil, nil
	m.mixer = nil
	m.ready = false

	m.log.Debug("audio torn down")
}
