// SPDX-License-Identifier: EPL-2.0

// Package engine is the low-level playback layer: it decodes sound files
// into shared PCM, keeps per-voice playback state and mixes started voices
// with distance attenuation and stereo panning relative to one listener.
//
// Everything is mixed in a single Format, by default 44.1 kHz stereo float32.
// Output devices live in the device/ packages and call Engine.Read through a
// RenderFunc.
package engine
