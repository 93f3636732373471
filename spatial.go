// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"time"

	"github.com/ik5/sfxpool/engine"
)

// MaxVolume is the loudest master volume SetVolume accepts.
const MaxVolume = 1

// SetListenerOrientation moves the listener to pos facing dir.
func (m *Manager) SetListenerOrientation(pos, dir engine.Vec3) {
	if !m.ready {
		return
	}
	m.mixer.SetListener(pos, dir)
}

func (m *Manager) Listener() (pos, dir engine.Vec3) {
	if !m.ready {
		return engine.Vec3{}, engine.Vec3{}
	}
	return m.mixer.Listener()
}

// SetVoicePosition moves a playing or idle voice. It does nothing for an
// invalid VoiceID or a voice started without attenuation.
func (m *Manager) SetVoicePosition(id VoiceID, pos engine.Vec3) {
	v, ok := m.voice(id)
	if !ok || !v.IsSpatialized() {
		return
	}
	v.SetPosition(pos)
}

func (m *Manager) VoicePosition(id VoiceID) (engine.Vec3, bool) {
	v, ok := m.voice(id)
	if !ok {
		return engine.Vec3{}, false
	}
	return v.Position(), true
}

// Stop halts the voice. It stays in its pool, idle, and can be picked by the
// next play of its sound.
func (m *Manager) Stop(id VoiceID) {
	v, ok := m.voice(id)
	if !ok {
		return
	}
	if err := v.Stop(); err != nil {
		m.report(Diagnostic{Op: OpStop, Sound: id.sound, Voice: id, Err: err})
	}
}

func (m *Manager) IsPlaying(id VoiceID) bool {
	v, ok := m.voice(id)
	return ok && v.IsPlaying()
}

// SetVolume sets the master volume of every sound, clamped to [0, MaxVolume].
// Before Init the value is kept and applied on bring-up.
func (m *Manager) SetVolume(vol float32) {
	if vol != vol {
		vol = 0
	}
	m.volume = min(max(vol, 0), MaxVolume)
	if m.ready {
		m.mixer.SetVolume(m.volume)
	}
}

func (m *Manager) Volume() float32 {
	if m.ready {
		return m.mixer.Volume()
	}
	return m.volume
}

// SetVoiceVolume sets the gain of one voice, applied before attenuation and
// the master volume. Negative and NaN gains become 0. The gain belongs to
// the pool slot, so it outlives the current play.
func (m *Manager) SetVoiceVolume(id VoiceID, gain float32) {
	v, ok := m.voice(id)
	if !ok {
		return
	}
	if gain != gain {
		gain = 0
	}
	v.SetVolume(max(gain, 0))
}

func (m *Manager) VoiceVolume(id VoiceID) (float32, bool) {
	v, ok := m.voice(id)
	if !ok {
		return 0, false
	}
	return v.Volume(), true
}

// Length is the duration of sound id, or 0 when id is not registered.
func (m *Manager) Length(id SoundID) time.Duration {
	if !m.Valid(id) {
		return 0
	}

	d := m.sounds[id.index()]
	if len(d.voices) == 0 {
		return 0
	}
	return d.voices[0].Length()
}
