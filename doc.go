// SPDX-License-Identifier: EPL-2.0

// Package sfxpool plays short sound effects with a fixed number of voices
// per sound.
//
// A sound is registered once with LoadSound, which decodes the file and
// opens a pool of voices for it. Each PlaySound call restarts one voice of
// that pool: an idle voice when there is one, otherwise the busy voice
// farthest from the listener (the one furthest into its sound when two are
// equally far). The returned VoiceID can later be used to stop or move that
// voice.
//
// # Quick Start
//
//	m := sfxpool.New(sfxpool.WithLogger(slog.Default()))
//	if err := m.Init(); err != nil {
//	    return err
//	}
//	defer m.Teardown()
//
//	shot, err := m.LoadSound("sfx/shot.wav", 8, false, 1)
//	if err != nil {
//	    return err
//	}
//
//	m.SetListenerOrientation(player.Pos, player.Facing)
//	v := m.PlayAt(shot, enemy.Pos)
//	...
//	m.SetVoicePosition(v, enemy.Pos)
//
// # Threading
//
// A Manager is driven from a single goroutine. Mixing runs on the output
// device's thread and only reads voice state through the engine, so play,
// stop and position calls are safe while audio is running. Register sounds
// during loading, not while other goroutines use the Manager.
//
// # Identifiers
//
// SoundID 0 and the zero VoiceID never name anything; every operation
// taking them is a no-op or reports false. A VoiceID keeps naming the same
// pool slot after the voice is stolen, so a stale handle controls whatever
// that slot plays now.
//
// # Output
//
// The default output is the system device through miniaudio (device/malgo).
// WithDeviceOpener selects another backend, such as device/manual for tests
// and offline rendering.
//
// # Tracing
//
// WithTracerProvider records Init, LoadSound and Teardown as OpenTelemetry
// spans. A failed Init carries the failing stage as its status description.
// Playback calls are never traced.
package sfxpool
