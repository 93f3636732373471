// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"
	"time"

	"github.com/ik5/sfxpool/audio"
)

// Voice is one playback instance of a decoded sound. A Voice is safe for
// use from the control goroutine while the render goroutine mixes it.
type Voice struct {
	eng *Engine
	pcm *audio.Buffer

	mu       sync.Mutex
	cursor   int
	playing  bool
	looping  bool
	spatial  bool
	rolloff  float32
	volume   float32
	pos      Vec3
	released bool
}

func newVoice(e *Engine, pcm *audio.Buffer) *Voice {
	return &Voice{
		eng:     e,
		pcm:     pcm,
		spatial: true,
		rolloff: 1,
		volume:  1,
	}
}

// SeekToFrame moves the playback cursor.
func (v *Voice) SeekToFrame(frame int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.released {
		return ErrVoiceReleased
	}
	if frame < 0 || frame > v.pcm.Frames() {
		return ErrSeekOutOfRange
	}
	v.cursor = frame

	return nil
}

func (v *Voice) Start() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.released {
		return ErrVoiceReleased
	}
	v.playing = true

	return nil
}

func (v *Voice) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.released {
		return ErrVoiceReleased
	}
	v.playing = false

	return nil
}

func (v *Voice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.playing
}

func (v *Voice) SetLooping(loop bool) {
	v.mu.Lock()
	v.looping = loop
	v.mu.Unlock()
}

func (v *Voice) IsLooping() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.looping
}

// SetRolloff sets how fast the voice fades with distance. 0 disables
// attenuation, negative values are treated as 0.
func (v *Voice) SetRolloff(r float32) {
	v.mu.Lock()
	v.rolloff = max(r, 0)
	v.mu.Unlock()
}

func (v *Voice) Rolloff() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rolloff
}

// SetSpatialization toggles distance attenuation and panning.
func (v *Voice) SetSpatialization(on bool) {
	v.mu.Lock()
	v.spatial = on
	v.mu.Unlock()
}

func (v *Voice) IsSpatialized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.spatial
}

func (v *Voice) SetPosition(p Vec3) {
	v.mu.Lock()
	v.pos = p
	v.mu.Unlock()
}

func (v *Voice) Position() Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pos
}

func (v *Voice) SetVolume(vol float32) {
	v.mu.Lock()
	v.volume = max(vol, 0)
	v.mu.Unlock()
}

func (v *Voice) Volume() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.volume
}

// Elapsed is the playback time since the start of the sound.
func (v *Voice) Elapsed() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.eng.format.FramesToDuration(v.cursor)
}

// Length is the duration of the underlying sound.
func (v *Voice) Length() time.Duration {
	return v.pcm.Duration()
}

// Release stops the voice and detaches it from the engine. Every later
// control call fails with ErrVoiceReleased. Releasing twice is a no-op.
func (v *Voice) Release() {
	v.mu.Lock()
	if v.released {
		v.mu.Unlock()
		return
	}
	v.released = true
	v.playing = false
	v.mu.Unlock()

	v.eng.detach(v)
}

// mix adds frames of this voice into out. It never allocates.
func (v *Voice) mix(out []float32, frames, channels int, l listener, master float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.playing {
		return
	}

	total := v.pcm.Frames()
	if total == 0 {
		v.playing = false
		return
	}

	left, right := master*v.volume, master*v.volume
	if v.spatial {
		gl, gr := l.gains(v.pos, v.rolloff)
		left *= gl
		right *= gr
	}

	src := v.pcm.Samples
	srcCh := v.pcm.Channels

	for i := range frames {
		if v.cursor >= total {
			if !v.looping {
				v.playing = false
				return
			}
			v.cursor = 0
		}

		in := src[v.cursor*srcCh : (v.cursor+1)*srcCh]
		dst := out[i*channels : (i+1)*channels]
		for c := range dst {
			s := in[c%srcCh]
			switch c {
			case 0:
				dst[c] += s * left
			case 1:
				dst[c] += s * right
			default:
				dst[c] += s * (left + right) / 2
			}
		}
		v.cursor++
	}

	if v.cursor >= total {
		if v.looping {
			v.cursor = 0
		} else {
			v.playing = false
		}
	}
}
