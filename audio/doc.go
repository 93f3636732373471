// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding-side primitives the engine loads
// sounds with.
//
// This package contains:
//   - Source interface for audio input
//   - Decoder interface and a Registry keyed by file extension
//   - Resampler for sample rate conversion
//   - ChannelMapper for channel count conversion
//   - Buffer and ReadAll for fully decoded PCM
//
// # Source Interface
//
// All decoders and processors implement Source, so they chain:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Decoding Ahead
//
// Sounds are decoded completely at load time into the engine's fixed
// format. ReadAll builds the conversion pipeline when needed:
//
//	dec, ok := registry.Lookup("sounds/step.ogg")
//	src, _ := dec.Decode(file)
//	defer src.Close()
//	buf, _ := audio.ReadAll(src, 44100, 2)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by frame.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. It may return
// the last samples together with io.EOF.
package audio
