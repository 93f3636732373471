// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"errors"
	"time"

	"github.com/ik5/sfxpool/engine"
)

var errFake = errors.New("fake failure")

type fakeVoice struct {
	path     string
	playing  bool
	looping  bool
	spatial  bool
	rolloff  float32
	pos      engine.Vec3
	elapsed  time.Duration
	length   time.Duration
	volume   float32
	released bool
	seeks    int

	seekErr  error
	startErr error
	stopErr  error
}

func (v *fakeVoice) SeekToFrame(int) error {
	v.seeks++
	if v.seekErr != nil {
		return v.seekErr
	}
	v.elapsed = 0
	return nil
}

func (v *fakeVoice) Start() error {
	if v.startErr != nil {
		return v.startErr
	}
	v.playing = true
	return nil
}

func (v *fakeVoice) Stop() error {
	if v.stopErr != nil {
		return v.stopErr
	}
	v.playing = false
	return nil
}

func (v *fakeVoice) IsPlaying() bool           { return v.playing }
func (v *fakeVoice) SetLooping(loop bool)      { v.looping = loop }
func (v *fakeVoice) IsLooping() bool           { return v.looping }
func (v *fakeVoice) SetRolloff(r float32)      { v.rolloff = r }
func (v *fakeVoice) SetSpatialization(on bool) { v.spatial = on }
func (v *fakeVoice) IsSpatialized() bool       { return v.spatial }
func (v *fakeVoice) SetPosition(p engine.Vec3) { v.pos = p }
func (v *fakeVoice) Position() engine.Vec3     { return v.pos }
func (v *fakeVoice) SetVolume(vol float32)     { v.volume = vol }
func (v *fakeVoice) Volume() float32           { return v.volume }
func (v *fakeVoice) Elapsed() time.Duration    { return v.elapsed }
func (v *fakeVoice) Length() time.Duration     { return v.length }
func (v *fakeVoice) Release()                  { v.playing, v.released = false, true }

type fakeMixer struct {
	opened []*fakeVoice
	// failAt makes the n-th OpenVoice call (1-based) fail; 0 never fails.
	failAt int
	calls  int

	pos, dir engine.Vec3
	volume   float32
}

func (m *fakeMixer) OpenVoice(path string) (Voice, error) {
	m.calls++
	if m.failAt != 0 && m.calls == m.failAt {
		return nil, errFake
	}

	v := &fakeVoice{path: path, spatial: true, rolloff: 1, volume: 1, length: time.Second}
	m.opened = append(m.opened, v)
	return v, nil
}

func (m *fakeMixer) SetListener(pos, dir engine.Vec3)     { m.pos, m.dir = pos, dir }
func (m *fakeMixer) Listener() (engine.Vec3, engine.Vec3) { return m.pos, m.dir }
func (m *fakeMixer) SetVolume(v float32)                  { m.volume = v }
func (m *fakeMixer) Volume() float32                      { return m.volume }

// newFakeManager returns a ready manager driving mix instead of an engine.
func newFakeManager(mix *fakeMixer, opts ...Option) *Manager {
	m := New(opts...)
	m.mixer = mix
	m.ready = true
	return m
}

// fakeVoices returns the pool of id as fakes.
func fakeVoices(m *Manager, id SoundID) []*fakeVoice {
	var out []*fakeVoice
	for _, v := range m.sounds[id.index()].voices {
		out = append(out, v.(*fakeVoice))
	}
	return out
}
