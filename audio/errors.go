// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidFormat     = errors.New("sample rate and channel count must be positive")
	ErrUnsupportedFormat = errors.New("no decoder registered for format")
	ErrNoProgress        = errors.New("source keeps returning no samples")
)
