// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/internal/audiotest"
)

func TestNewResources_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := NewResources(Format{SampleRate: 0, Channels: 2})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestResources_DefaultFormats(t *testing.T) {
	t.Parallel()

	res, err := NewResources(DefaultFormat)
	require.NoError(t, err)
	assert.Equal(t, []string{"aif", "aiff", "mp3", "ogg", "wav"}, res.Formats())
}

func TestResources_LoadSharesBuffer(t *testing.T) {
	t.Parallel()

	_, res := newTestEngine(t)

	a, err := res.Load("tone.wav")
	require.NoError(t, err)
	b, err := res.Load("./tone.wav")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, res.Cached())
	assert.Equal(t, 100, a.Frames())

	res.Evict("tone.wav")
	assert.Equal(t, 0, res.Cached())

	c, err := res.Load("tone.wav")
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	require.NoError(t, res.Close())
	assert.Equal(t, 0, res.Cached())
	assert.True(t, res.Closed())

	_, err = res.Load("tone.wav")
	assert.ErrorIs(t, err, ErrResourcesClosed)

	_, err = New(res)
	assert.ErrorIs(t, err, ErrResourcesClosed)
}

func TestResources_ConvertsToEngineFormat(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "mono.wav", audiotest.ToneWAV(22050, 1, 2205, 0.5), 0o644))

	res, err := NewResources(DefaultFormat, WithFs(fs))
	require.NoError(t, err)

	buf, err := res.Load("mono.wav")
	require.NoError(t, err)

	assert.Equal(t, 44100, buf.SampleRate)
	assert.Equal(t, 2, buf.Channels)
	assert.InDelta(t, 4410, buf.Frames(), 2)
	assert.InDelta(t, 0.5, buf.Samples[len(buf.Samples)/2], 0.01)
}

func TestResources_LoadErrors(t *testing.T) {
	t.Parallel()

	_, res := newTestEngine(t)

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrEmptyPath},
		{"no extension", "tone", audio.ErrUnsupportedFormat},
		{"unknown extension", "tone.flac", audio.ErrUnsupportedFormat},
		{"missing file", "missing.wav", os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := res.Load(tt.path)
			assert.Nil(t, buf)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type stubDecoder struct{ src audio.Source }

func (d stubDecoder) Decode(io.Reader) (audio.Source, error) { return d.src, nil }

func TestResources_WithDecoder(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "beep.raw", []byte{0}, 0o644))

	src := audiotest.NewConstantSource(44100, 2, 20, 0.75)
	res, err := NewResources(DefaultFormat, WithFs(fs), WithDecoder(".RAW", stubDecoder{src: src}))
	require.NoError(t, err)

	buf, err := res.Load("beep.raw")
	require.NoError(t, err)

	assert.Equal(t, 20, buf.Frames())
	assert.InDelta(t, 0.75, buf.Samples[0], 1e-6)
	assert.True(t, src.Closed())
}

func TestResources_DecodeFailureIsNotCached(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.raw", []byte{0}, 0o644))

	errCorrupt := errors.New("corrupt frame")
	src := audiotest.NewConstantSource(44100, 2, 20, 0.5).FailWith(errCorrupt)
	res, err := NewResources(DefaultFormat, WithFs(fs), WithDecoder("raw", stubDecoder{src: src}))
	require.NoError(t, err)

	buf, err := res.Load("bad.raw")
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, errCorrupt)
	assert.Zero(t, res.Cached())
	assert.True(t, src.Closed())
}
