// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/sfxpool/utils"
)

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row.
const maxEmptyReads = 64

// Resampler streams from src to a target sample rate using cubic interpolation.
// It works on interleaved samples and preserves the channel count. A one-pole
// low-pass filter is applied to the input when downsampling.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64 // source frames per output frame

	// hist[1] is the frame at the current integer position, hist[0] the one
	// before it and hist[2], hist[3] the two after it.
	hist   [4][]float32
	live   [4]bool
	primed bool
	pos    float64 // fraction between hist[1] and hist[2]

	in    []float32
	inPos int
	inLen int
	eof   bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
	filterReady bool // filterState holds a real frame
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		rate:        dstRate,
		channels:    channels,
		step:        step,
		in:          make([]float32, max(src.BufSize(), 1024)/channels*channels),
		useFilter:   step > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos = 0
		r.inLen = n - n%r.channels

		switch {
		case err == io.EOF:
			r.eof = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, ErrNoProgress
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.useFilter {
		if !r.filterReady {
			// start from the first raw frame, not from silence
			copy(r.filterState, dst)
			r.filterReady = true
		}
		for c := range dst {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

// fill loads slot k with the next source frame, or repeats slot k-1 past
// the end of the stream.
func (r *Resampler) fill(k int) error {
	ok, err := r.pull(r.hist[k])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[k], r.hist[k-1])
	}
	r.live[k] = ok

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.hist[1])
	if err != nil || !ok {
		return err
	}

	copy(r.hist[0], r.hist[1])
	r.live[1] = true

	if err := r.fill(2); err != nil {
		return err
	}

	return r.fill(3)
}

func (r *Resampler) advance() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.live[0], r.live[1], r.live[2] = r.live[1], r.live[2], r.live[3]

	return r.fill(3)
}

// ReadSamples produces samples at the target rate. dst length must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		if !r.live[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written++

		r.pos += r.step
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
	}

	return written * r.channels, nil
}
