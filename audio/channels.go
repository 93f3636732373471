// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/sfxpool/utils"
)

// ChannelMapper converts the interleaved output of src to a different
// channel count.
//
//   - to mono: channels are averaged
//   - from mono: the channel is copied to every output channel
//   - fewer outputs: the surplus channels are averaged and folded into every
//     output at half gain
//   - more outputs: source channels repeat in order
type ChannelMapper struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	return &ChannelMapper{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.channels
	if frames == 0 {
		return 0, nil
	}

	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / in

	for f := range got {
		frame := m.tmp[f*in : (f+1)*in]
		out := dst[f*m.channels : (f+1)*m.channels]
		m.mapFrame(frame, out)
	}

	return got * m.channels, err
}

func (m *ChannelMapper) mapFrame(in, out []float32) {
	switch {
	case len(out) == 1:
		var sum float32
		for _, v := range in {
			sum += v
		}
		out[0] = sum / float32(len(in))
	case len(in) == 1:
		for c := range out {
			out[c] = in[0]
		}
	case len(in) > len(out):
		var extra float32
		for _, v := range in[len(out):] {
			extra += v
		}
		extra = 0.5 * extra / float32(len(in)-len(out))
		for c := range out {
			out[c] = utils.ClampUnit(in[c] + extra)
		}
	default:
		for c := range out {
			out[c] = in[c%len(in)]
		}
	}
}
