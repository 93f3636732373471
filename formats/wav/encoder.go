// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sfxpool/utils"
)

const writeChunk = 8192

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
// The header sizes are patched on completion, hence the io.WriteSeeker.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	return write(w, sampleRate, channels, len(samples), func(dst []int, off int) {
		for i := range dst {
			dst[i] = int(samples[off+i])
		}
	})
}

// WriteFloat32 converts normalized samples to 16-bit PCM and writes them as a WAV file.
func WriteFloat32(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	return write(w, sampleRate, channels, len(samples), func(dst []int, off int) {
		for i := range dst {
			dst[i] = int(utils.Float32ToInt16(samples[off+i]))
		}
	})
}

func write(w io.WriteSeeker, sampleRate, channels, total int, fill func(dst []int, off int)) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}
	if total%channels != 0 {
		return ErrPartialFrame
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, min(total, writeChunk/channels*channels)),
		SourceBitDepth: 16,
	}

	for off := 0; off < total; off += len(buf.Data) {
		buf.Data = buf.Data[:min(cap(buf.Data), total-off)]
		fill(buf.Data, off)

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
