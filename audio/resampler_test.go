// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/sfxpool/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Properties(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(22050, 2, 100)
	r := NewResampler(src, 44100)

	if r.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		frames   int
		channels int
		want     int
	}{
		{"identity", 44100, 44100, 1000, 2, 1000},
		{"upsample 2x", 22050, 44100, 1000, 1, 1999},
		{"downsample 44.1k to 16k", 44100, 16000, 44100, 1, 16000},
		{"48k to 44.1k stereo", 48000, 44100, 48000, 2, 44100},
		{"single frame", 8000, 44100, 1, 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.srcRate, tt.channels, tt.frames, 0.25)
			out := drain(t, NewResampler(src, tt.dstRate), 1024*tt.channels)

			got := len(out) / tt.channels
			if diff := math.Abs(float64(got - tt.want)); diff > 1 {
				t.Errorf("frames = %d, want ≈%d", got, tt.want)
			}
		})
	}
}

func TestResampler_IdentityIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 1, 512, 440)
	ref := drain(t, audiotest.NewSineSource(44100, 1, 512, 440), 512)
	out := drain(t, NewResampler(src, 44100), 100)

	if len(out) != len(ref) {
		t.Fatalf("len = %d, want %d", len(out), len(ref))
	}
	for i := range ref {
		if math.Abs(float64(out[i]-ref[i])) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, out[i], ref[i])
		}
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate int
	}{
		{"upsample 22050", 22050},
		{"downsample 48000", 48000},
		{"downsample 96000", 96000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.rate, 2, 2000, 0.5)
			out := drain(t, NewResampler(src, 44100), 4096)
			if len(out) == 0 {
				t.Fatal("no output")
			}

			// the low-pass used when downsampling must not ramp in from zero
			for i, v := range out {
				if math.Abs(float64(v-0.5)) > 1e-3 {
					t.Fatalf("sample %d = %v, want 0.5", i, v)
				}
			}
		})
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 8000)
	n, err := r.ReadSamples(make([]float32, 64))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 1, 10)
	if err := NewResampler(src, 8000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_48kTo44k(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(48000, 2, 48000, 440), 44100)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
