// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Engine mixes every started voice into one output stream. Control methods
// run on the caller's goroutine; Read runs on the device's.
type Engine struct {
	format Format
	res    *Resources

	// voices is replaced wholesale on open and release so Read can walk it
	// without taking wmu.
	voices atomic.Pointer[[]*Voice]
	wmu    sync.Mutex
	closed bool

	lmu      sync.Mutex
	listener listener
	volume   float32
}

// New creates an engine that decodes through res and mixes in res's format.
func New(res *Resources) (*Engine, error) {
	if res == nil || res.Closed() {
		return nil, ErrResourcesClosed
	}

	e := &Engine{
		format:   res.Format(),
		res:      res,
		listener: defaultListener,
		volume:   1,
	}
	e.voices.Store(&[]*Voice{})

	return e, nil
}

func (e *Engine) Format() Format { return e.format }

// OpenVoice creates a stopped voice playing path. The decoded PCM is shared
// with every other voice of the same path.
func (e *Engine) OpenVoice(path string) (*Voice, error) {
	pcm, err := e.res.Load(path)
	if err != nil {
		return nil, err
	}

	e.wmu.Lock()
	defer e.wmu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	v := newVoice(e, pcm)
	cur := *e.voices.Load()
	next := make([]*Voice, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, v)
	e.voices.Store(&next)

	return v, nil
}

func (e *Engine) detach(v *Voice) {
	e.wmu.Lock()
	defer e.wmu.Unlock()

	cur := *e.voices.Load()
	i := slices.Index(cur, v)
	if i < 0 {
		return
	}

	next := make([]*Voice, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	e.voices.Store(&next)
}

// Voices reports how many voices are open.
func (e *Engine) Voices() int {
	return len(*e.voices.Load())
}

func (e *Engine) SetListener(pos, dir Vec3) {
	e.lmu.Lock()
	e.listener = listener{pos: pos, dir: dir}
	e.lmu.Unlock()
}

func (e *Engine) Listener() (pos, dir Vec3) {
	e.lmu.Lock()
	defer e.lmu.Unlock()

	return e.listener.pos, e.listener.dir
}

// SetVolume sets the master gain applied after mixing. Negative values are
// treated as silence.
func (e *Engine) SetVolume(v float32) {
	e.lmu.Lock()
	e.volume = max(v, 0)
	e.lmu.Unlock()
}

func (e *Engine) Volume() float32 {
	e.lmu.Lock()
	defer e.lmu.Unlock()

	return e.volume
}

// Read fills out with the next len(out)/channels frames of the mix. Trailing
// samples that do not make a whole frame are zeroed.
func (e *Engine) Read(out []float32) {
	clear(out)

	ch := e.format.Channels
	frames := len(out) / ch
	if frames == 0 {
		return
	}

	e.lmu.Lock()
	l, master := e.listener, e.volume
	e.lmu.Unlock()

	for _, v := range *e.voices.Load() {
		v.mix(out, frames, ch, l, master)
	}
}

// Close releases every open voice. Later OpenVoice calls fail.
func (e *Engine) Close() error {
	e.wmu.Lock()
	e.closed = true
	open := *e.voices.Load()
	e.wmu.Unlock()

	for _, v := range open {
		v.Release()
	}

	return nil
}
