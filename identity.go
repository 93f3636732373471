// SPDX-License-Identifier: EPL-2.0

package sfxpool

import "strconv"

// SoundID names a registered sound. The zero value names nothing; the first
// registered sound is 1.
type SoundID uint32

func (id SoundID) index() int { return int(id) - 1 }

// VoiceID names one voice of a sound's pool. The zero value names nothing.
// A VoiceID stays valid for as long as its sound is registered, even after
// the voice has been stolen by a later play of the same sound.
type VoiceID struct {
	sound SoundID
	slot  uint16
}

func (v VoiceID) IsZero() bool   { return v.sound == 0 }
func (v VoiceID) Sound() SoundID { return v.sound }
func (v VoiceID) Slot() int      { return int(v.slot) }

func (v VoiceID) String() string {
	if v.IsZero() {
		return "none"
	}
	return strconv.FormatUint(uint64(v.sound), 10) + "/" + strconv.Itoa(int(v.slot))
}

// Valid reports whether id names a registered sound.
func (m *Manager) Valid(id SoundID) bool {
	return id != 0 && id.index() < len(m.sounds)
}

// Validate reports whether v names a voice of a registered sound.
func (m *Manager) Validate(v VoiceID) bool {
	return m.Valid(v.sound) && int(v.slot) < len(m.sounds[v.sound.index()].voices)
}

func (m *Manager) voice(v VoiceID) (Voice, bool) {
	if !m.Validate(v) {
		return nil, false
	}
	return m.sounds[v.sound.index()].voices[v.slot], true
}
