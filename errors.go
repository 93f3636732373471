// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPolyphony   = errors.New("sfxpool: polyphony out of range")
	ErrNotInitialized     = errors.New("sfxpool: manager not initialized")
	ErrAlreadyInitialized = errors.New("sfxpool: manager already initialized")
)

// Stage names one step of Init.
type Stage string

const (
	StageResources Stage = "resources"
	StageDevice    Stage = "device"
	StageEngine    Stage = "engine"
	StageStart     Stage = "start"
)

// StageError reports which bring-up stage failed. Stages completed before it
// have already been undone.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("sfxpool: init %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
