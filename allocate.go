// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"time"

	"github.com/ik5/sfxpool/engine"
)

// Play starts id without spatialization.
func (m *Manager) Play(id SoundID) VoiceID {
	return m.PlaySound(id, engine.Vec3{}, false)
}

// PlayAt starts id at pos with distance attenuation.
func (m *Manager) PlayAt(id SoundID, pos engine.Vec3) VoiceID {
	return m.PlaySound(id, pos, true)
}

// PlaySound restarts one voice of id from the beginning and returns it. An
// idle voice is used when there is one; otherwise the voice farthest from
// the listener is stolen, the one furthest into its sound winning ties.
// pos is applied only when attenuated is set.
//
// A zero VoiceID is returned when id is not registered.
func (m *Manager) PlaySound(id SoundID, pos engine.Vec3, attenuated bool) VoiceID {
	if !m.Valid(id) {
		return VoiceID{}
	}

	listener, _ := m.mixer.Listener()
	voices := m.sounds[id.index()].voices

	slot := pickVoice(voices, listener)
	if slot < 0 {
		return VoiceID{}
	}

	v := voices[slot]
	vid := VoiceID{sound: id, slot: uint16(slot)}

	if err := v.SeekToFrame(0); err != nil {
		m.report(Diagnostic{Op: OpSeek, Sound: id, Voice: vid, Err: err})
	}
	v.SetSpatialization(attenuated)
	if attenuated {
		v.SetPosition(pos)
	}
	if err := v.Start(); err != nil {
		m.report(Diagnostic{Op: OpStart, Sound: id, Voice: vid, Err: err})
	}

	return vid
}

// pickVoice returns the index of the first idle voice or, when all are
// busy, the one to steal. It returns -1 for an empty pool.
func pickVoice(voices []Voice, listener engine.Vec3) int {
	best := -1
	var (
		bestDist float32
		bestAge  time.Duration
	)

	for i, v := range voices {
		if !v.IsPlaying() {
			return i
		}

		dist := v.Position().Sub(listener).LenSq()
		age := v.Elapsed()
		if best < 0 || dist > bestDist || (dist == bestDist && age > bestAge) {
			best, bestDist, bestAge = i, dist, age
		}
	}

	return best
}
