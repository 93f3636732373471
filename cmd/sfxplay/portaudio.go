// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package main

import "github.com/ik5/sfxpool/device/portaudio"

func init() {
	openers["portaudio"] = portaudio.Open
}
