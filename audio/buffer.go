// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer holds fully decoded, interleaved PCM in memory.
type Buffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames reports the number of sample frames in the buffer.
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration reports the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// ReadAll drains src into a Buffer at the requested rate and channel count,
// converting on the way when they differ. src is not closed.
func ReadAll(src Source, rate, channels int) (*Buffer, error) {
	if rate <= 0 || channels <= 0 || src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidFormat
	}

	var pipe Source = src
	if pipe.Channels() != channels {
		pipe = NewChannelMapper(pipe, channels)
	}
	if pipe.SampleRate() != rate {
		pipe = NewResampler(pipe, rate)
	}

	out := &Buffer{
		SampleRate: rate,
		Channels:   channels,
		Samples:    make([]float32, 0, rate*channels),
	}

	buf := make([]float32, 4096*channels)
	empty := 0
	for {
		n, err := pipe.ReadSamples(buf)
		out.Samples = append(out.Samples, buf[:n-n%channels]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return out, nil
}
