// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the file's sample rate;
// mono files are duplicated to both channels by go-mp3 itself.
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
