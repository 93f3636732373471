// SPDX-License-Identifier: EPL-2.0

package engine

import "time"

// Format is the process-wide PCM layout everything is decoded to and mixed in.
// Samples are always float32.
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat is stereo at 44.1 kHz.
var DefaultFormat = Format{SampleRate: 44100, Channels: 2}

func (f Format) Validate() error {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return ErrInvalidFormat
	}
	return nil
}

// FramesToDuration converts a frame count to wall time.
func (f Format) FramesToDuration(frames int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// DurationToFrames converts wall time to a frame count, rounding down.
func (f Format) DurationToFrames(d time.Duration) int {
	return int(d * time.Duration(f.SampleRate) / time.Second)
}
