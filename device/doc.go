// SPDX-License-Identifier: EPL-2.0

// Package device groups the output backends. Each subpackage provides an
// Open function satisfying engine.DeviceOpener:
//
//   - malgo: the system's default playback device through miniaudio
//   - portaudio: the default PortAudio stream, built with -tags portaudio
//   - manual: no hardware, rendered on demand by Pump
package device
