// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoice_Defaults(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("tone.wav")
	require.NoError(t, err)

	assert.False(t, v.IsPlaying())
	assert.False(t, v.IsLooping())
	assert.True(t, v.IsSpatialized())
	assert.Equal(t, float32(1), v.Rolloff())
	assert.Equal(t, float32(1), v.Volume())
	assert.Equal(t, Vec3{}, v.Position())
	assert.Zero(t, v.Elapsed())
	assert.Equal(t, 100*time.Second/44100, v.Length())
}

func TestVoice_Setters(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("tone.wav")
	require.NoError(t, err)

	v.SetLooping(true)
	v.SetRolloff(-2)
	v.SetSpatialization(false)
	v.SetPosition(V(1, 2, 3))
	v.SetVolume(-1)

	assert.True(t, v.IsLooping())
	assert.Zero(t, v.Rolloff())
	assert.False(t, v.IsSpatialized())
	assert.Equal(t, V(1, 2, 3), v.Position())
	assert.Zero(t, v.Volume())
}

func TestVoice_Seek(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("tone.wav")
	require.NoError(t, err)

	require.NoError(t, v.SeekToFrame(50))
	assert.Equal(t, 50*time.Second/44100, v.Elapsed())
	require.NoError(t, v.SeekToFrame(100))

	assert.ErrorIs(t, v.SeekToFrame(101), ErrSeekOutOfRange)
	assert.ErrorIs(t, v.SeekToFrame(-1), ErrSeekOutOfRange)
}

func TestVoice_PlaysToEnd(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("short.wav")
	require.NoError(t, err)
	v.SetSpatialization(false)
	require.NoError(t, v.Start())

	out := make([]float32, 2*6)
	eng.Read(out)

	assert.False(t, v.IsPlaying())
	assert.InDelta(t, 8191.0/32768.0, out[7], 1e-6)
	assert.Zero(t, out[8])
	assert.Equal(t, 4*time.Second/44100, v.Elapsed())
}

func TestVoice_StopsExactlyAtEnd(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("short.wav")
	require.NoError(t, err)
	require.NoError(t, v.Start())

	eng.Read(make([]float32, 2*4))
	assert.False(t, v.IsPlaying())
}

func TestVoice_Loops(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("short.wav")
	require.NoError(t, err)
	v.SetSpatialization(false)
	v.SetLooping(true)
	require.NoError(t, v.Start())

	out := make([]float32, 2*10)
	eng.Read(out)

	assert.True(t, v.IsPlaying())
	for i, s := range out {
		assert.InDelta(t, 8191.0/32768.0, s, 1e-6, "sample %d", i)
	}
	assert.Equal(t, 2*time.Second/44100, v.Elapsed())
}

func TestVoice_Release(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	v, err := eng.OpenVoice("tone.wav")
	require.NoError(t, err)
	require.NoError(t, v.Start())

	v.Release()
	v.Release()

	assert.False(t, v.IsPlaying())
	assert.Equal(t, 0, eng.Voices())
	assert.ErrorIs(t, v.Start(), ErrVoiceReleased)
	assert.ErrorIs(t, v.Stop(), ErrVoiceReleased)
	assert.ErrorIs(t, v.SeekToFrame(0), ErrVoiceReleased)
}
