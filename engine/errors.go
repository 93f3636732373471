// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInvalidFormat   = errors.New("engine: sample rate and channel count must be positive")
	ErrEngineClosed    = errors.New("engine: closed")
	ErrResourcesClosed = errors.New("engine: resources closed")
	ErrVoiceReleased   = errors.New("engine: voice released")
	ErrSeekOutOfRange  = errors.New("engine: seek past end of sound")
	ErrEmptyPath       = errors.New("engine: empty sound path")
)
