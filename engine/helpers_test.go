// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sfxpool/internal/audiotest"
)

// newTestEngine returns an engine over an in-memory filesystem holding
// "tone.wav" (100 frames of 0.5) and "short.wav" (4 frames of 0.25), both
// stereo at 44.1 kHz.
func newTestEngine(t *testing.T) (*Engine, *Resources) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "tone.wav", audiotest.ToneWAV(44100, 2, 100, 0.5), 0o644))
	require.NoError(t, afero.WriteFile(fs, "short.wav", audiotest.ToneWAV(44100, 2, 4, 0.25), 0o644))

	res, err := NewResources(DefaultFormat, WithFs(fs))
	require.NoError(t, err)

	eng, err := New(res)
	require.NoError(t, err)

	return eng, res
}
