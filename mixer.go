// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"time"

	"github.com/ik5/sfxpool/engine"
)

// Voice is the playback handle the manager drives. *engine.Voice implements it.
type Voice interface {
	SeekToFrame(frame int) error
	Start() error
	Stop() error
	IsPlaying() bool

	SetLooping(loop bool)
	IsLooping() bool
	SetRolloff(r float32)
	SetSpatialization(on bool)
	IsSpatialized() bool
	SetPosition(p engine.Vec3)
	Position() engine.Vec3
	SetVolume(v float32)
	Volume() float32

	// Elapsed is the playback time since the start of the sound.
	Elapsed() time.Duration
	// Length is the duration of the whole sound.
	Length() time.Duration
	Release()
}

// Mixer opens voices and owns the listener and master volume.
type Mixer interface {
	OpenVoice(path string) (Voice, error)
	SetListener(pos, dir engine.Vec3)
	Listener() (pos, dir engine.Vec3)
	SetVolume(v float32)
	Volume() float32
}

type engineMixer struct {
	*engine.Engine
}

func (m engineMixer) OpenVoice(path string) (Voice, error) {
	v, err := m.Engine.OpenVoice(path)
	if err != nil {
		return nil, err
	}
	return v, nil
}
