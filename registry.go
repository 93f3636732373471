// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MaxPolyphony is the largest voice pool a sound may own.
const MaxPolyphony = 255

type definition struct {
	path    string
	voices  []Voice
	looping bool
	rolloff float32
}

// LoadSound decodes path and opens polyphony voices for it, each configured
// with looping and rolloff. On failure nothing is registered and every voice
// opened along the way is released.
func (m *Manager) LoadSound(path string, polyphony int, looping bool, rolloff float32) (SoundID, error) {
	_, span := m.tracer.Start(context.Background(), "sfxpool.LoadSound")
	defer span.End()
	span.SetAttributes(
		attribute.String("sfxpool.path", path),
		attribute.Int("sfxpool.polyphony", polyphony),
		attribute.Bool("sfxpool.looping", looping),
	)

	fail := func(desc string, err error) (SoundID, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, desc)
		return 0, err
	}

	if !m.ready {
		return fail("not initialized", ErrNotInitialized)
	}
	if polyphony < 1 || polyphony > MaxPolyphony {
		return fail("polyphony", fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPolyphony, polyphony, MaxPolyphony))
	}

	voices := make([]Voice, 0, polyphony)
	for range polyphony {
		v, err := m.mixer.OpenVoice(path)
		if err != nil {
			for _, opened := range voices {
				opened.Release()
			}
			m.log.Warn("load sound failed", "path", path, "opened", len(voices), "err", err)

			return fail("open voice", fmt.Errorf("load %s: %w", path, err))
		}

		v.SetLooping(looping)
		v.SetRolloff(rolloff)
		voices = append(voices, v)
	}

	m.sounds = append(m.sounds, &definition{
		path:    path,
		voices:  voices,
		looping: looping,
		rolloff: rolloff,
	})
	id := SoundID(len(m.sounds))
	span.SetAttributes(attribute.Int64("sfxpool.sound", int64(id)))

	m.log.Debug("sound loaded", "id", id, "path", path, "polyphony", polyphony, "looping", looping)

	return id, nil
}

// IsLooped reports the looping flag of the sound's first voice.
func (m *Manager) IsLooped(id SoundID) bool {
	if !m.Valid(id) {
		return false
	}

	d := m.sounds[id.index()]
	if len(d.voices) == 0 {
		return false
	}
	return d.voices[0].IsLooping()
}

// Len is the number of registered sounds.
func (m *Manager) Len() int { return len(m.sounds) }

// Polyphony is the pool size of id, or 0 when id is not registered.
func (m *Manager) Polyphony(id SoundID) int {
	if !m.Valid(id) {
		return 0
	}
	return len(m.sounds[id.index()].voices)
}

func (m *Manager) Path(id SoundID) string {
	if !m.Valid(id) {
		return ""
	}
	return m.sounds[id.index()].path
}

// Rolloff is the rolloff id was registered with.
func (m *Manager) Rolloff(id SoundID) float32 {
	if !m.Valid(id) {
		return 0
	}
	return m.sounds[id.index()].rolloff
}
