// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes PCM WAV files.
//
// Decoding and encoding go through github.com/go-audio/wav, so files with
// extra chunks (LIST, fact, ...) before the data chunk are handled.
//
// Decoding:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Integer PCM of 8, 16, 24 and 32 bits is supported. IEEE float WAV is
// rejected with ErrOnlyPCMSupported.
//
// Encoding writes 16-bit PCM. The writer must be seekable because the RIFF
// sizes are patched once all samples are written:
//
//	f, _ := os.Create("mix.wav")
//	defer f.Close()
//	err := wav.WriteFloat32(f, 44100, 2, samples)
package wav
