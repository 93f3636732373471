// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("not a WAV file")
	ErrOnlyPCMSupported = errors.New("only integer PCM WAV is supported")
	ErrInvalidChannels  = errors.New("channel count must be positive")
	ErrPartialFrame     = errors.New("sample count is not a multiple of channels")
)
