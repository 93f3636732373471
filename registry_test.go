// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSound_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	m := newFakeManager(&fakeMixer{})

	for want := SoundID(1); want <= 3; want++ {
		id, err := m.LoadSound("a.wav", 1, false, 1)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, 3, m.Len())
}

func TestLoadSound_ConfiguresEveryVoice(t *testing.T) {
	t.Parallel()

	mix := &fakeMixer{}
	m := newFakeManager(mix)

	id, err := m.LoadSound("boom.ogg", 4, true, 2.5)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Polyphony(id))
	assert.Equal(t, "boom.ogg", m.Path(id))
	assert.Equal(t, float32(2.5), m.Rolloff(id))
	assert.True(t, m.IsLooped(id))

	require.Len(t, mix.opened, 4)
	for i, v := range mix.opened {
		assert.Equal(t, "boom.ogg", v.path, "voice %d", i)
		assert.True(t, v.looping, "voice %d", i)
		assert.Equal(t, float32(2.5), v.rolloff, "voice %d", i)
		assert.False(t, v.playing, "voice %d", i)
	}
}

func TestLoadSound_InvalidPolyphony(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 0, MaxPolyphony + 1} {
		mix := &fakeMixer{}
		m := newFakeManager(mix)

		id, err := m.LoadSound("a.wav", n, false, 1)
		assert.ErrorIs(t, err, ErrInvalidPolyphony, "polyphony %d", n)
		assert.Zero(t, id)
		assert.Zero(t, m.Len())
		assert.Empty(t, mix.opened)
	}
}

func TestLoadSound_MaxPolyphony(t *testing.T) {
	t.Parallel()

	m := newFakeManager(&fakeMixer{})

	id, err := m.LoadSound("a.wav", MaxPolyphony, false, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxPolyphony, m.Polyphony(id))
	assert.True(t, m.Validate(VoiceID{sound: id, slot: MaxPolyphony - 1}))
}

func TestLoadSound_PartialFailureReleasesVoices(t *testing.T) {
	t.Parallel()

	mix := &fakeMixer{failAt: 3}
	m := newFakeManager(mix)

	id, err := m.LoadSound("a.wav", 4, false, 1)
	require.ErrorIs(t, err, errFake)
	assert.Zero(t, id)
	assert.Zero(t, m.Len())

	require.Len(t, mix.opened, 2)
	for _, v := range mix.opened {
		assert.True(t, v.released)
	}

	// the next registration still gets the first id
	mix.failAt = 0
	id, err = m.LoadSound("a.wav", 1, false, 1)
	require.NoError(t, err)
	assert.Equal(t, SoundID(1), id)
}

func TestLoadSound_FirstOpenFails(t *testing.T) {
	t.Parallel()

	mix := &fakeMixer{failAt: 1}
	m := newFakeManager(mix)

	id, err := m.LoadSound("missing.wav", 3, false, 1)
	assert.ErrorIs(t, err, errFake)
	assert.Zero(t, id)
	assert.Empty(t, mix.opened)
}

func TestLoadSound_NotInitialized(t *testing.T) {
	t.Parallel()

	m := New()
	id, err := m.LoadSound("a.wav", 1, false, 1)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Zero(t, id)
}

func TestRegistryQueries_InvalidID(t *testing.T) {
	t.Parallel()

	m := newFakeManager(&fakeMixer{})
	_, err := m.LoadSound("a.wav", 1, true, 1)
	require.NoError(t, err)

	for _, id := range []SoundID{0, 2, 100} {
		assert.False(t, m.IsLooped(id))
		assert.Zero(t, m.Polyphony(id))
		assert.Empty(t, m.Path(id))
		assert.Zero(t, m.Rolloff(id))
	}
}

func TestIsLooped_ReadsFirstVoice(t *testing.T) {
	t.Parallel()

	m := newFakeManager(&fakeMixer{})
	id, err := m.LoadSound("a.wav", 2, false, 1)
	require.NoError(t, err)
	assert.False(t, m.IsLooped(id))

	fakeVoices(m, id)[0].looping = true
	assert.True(t, m.IsLooped(id))
}
