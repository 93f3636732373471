// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	samples []int
	err     error
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples)
	m.samples = m.samples[n:]

	return n, nil
}

func newTestSource(bitDepth int, samples []int) *source {
	return &source{
		dec:        &mockAiffReader{samples: samples},
		sampleRate: 44100,
		channels:   2,
		bitDepth:   bitDepth,
		intBuf:     &goaudio.IntBuffer{Data: make([]int, 4)},
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not AIFF data")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotAiffFile", data, err)
		}
	}
}

func TestSource_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		in    int
		want  float32
	}{
		{16, 16384, 0.5},
		{16, -32768, -1},
		{24, 4194304, 0.5},
		{32, -1073741824, -0.5},
	}

	for _, tt := range tests {
		src := newTestSource(tt.depth, []int{tt.in, tt.in})
		dst := make([]float32, 2)

		n, err := src.ReadSamples(dst)
		if err != nil || n != 2 {
			t.Fatalf("ReadSamples() = %d, %v; want 2, nil", n, err)
		}
		if math.Abs(float64(dst[0]-tt.want)) > 1e-6 {
			t.Errorf("%d-bit %d = %v, want %v", tt.depth, tt.in, dst[0], tt.want)
		}
	}
}

func TestSource_ShortReadIsEOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(16, []int{1, 2, 3, 4, 5, 6})

	n, err := src.ReadSamples(make([]float32, 4))
	if n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v; want 4, nil", n, err)
	}

	n, err = src.ReadSamples(make([]float32, 4))
	if n != 2 || err != io.EOF {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, io.EOF", n, err)
	}

	if n, err := src.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(16, nil)
	src.dec = &mockAiffReader{err: io.ErrUnexpectedEOF}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}
