// SPDX-License-Identifier: EPL-2.0

package sfxpool

import "fmt"

// Op is the voice operation a Diagnostic is about.
type Op string

const (
	OpSeek  Op = "seek"
	OpStart Op = "start"
	OpStop  Op = "stop"
)

// Diagnostic describes a best-effort voice operation that failed without
// failing the call that issued it.
type Diagnostic struct {
	Op    Op
	Sound SoundID
	Voice VoiceID
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s voice %s: %v", d.Op, d.Voice, d.Err)
}

func (m *Manager) report(d Diagnostic) {
	m.log.Warn("voice operation failed",
		"op", d.Op,
		"sound", d.Sound,
		"voice", d.Voice.String(),
		"err", d.Err,
	)

	if m.onDiagnostic != nil {
		m.onDiagnostic(d)
	}
}
