// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
	"github.com/spf13/afero"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/formats/aiff"
	"github.com/ik5/sfxpool/formats/mp3"
	"github.com/ik5/sfxpool/formats/vorbis"
	"github.com/ik5/sfxpool/formats/wav"
)

// Resources is the decoding subsystem. It opens files, picks a decoder by
// extension and keeps the decoded PCM so every voice of a sound shares one
// copy.
type Resources struct {
	format Format
	fs     afero.Fs
	codecs *audio.Registry
	pcm    *cache.Cache
	closed atomic.Bool
}

type ResourceOption func(*Resources)

// WithFs reads sound files from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) ResourceOption {
	return func(r *Resources) {
		r.fs = fs
	}
}

// WithDecoder registers d for files with extension ext, replacing any
// bundled decoder for it.
func WithDecoder(ext string, d audio.Decoder) ResourceOption {
	return func(r *Resources) {
		r.codecs.Register(ext, d)
	}
}

// DefaultDecoders returns a registry with every bundled format.
func DefaultDecoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

func NewResources(f Format, opts ...ResourceOption) (*Resources, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	r := &Resources{
		format: f,
		fs:     afero.NewOsFs(),
		codecs: DefaultDecoders(),
		// entries live until Close; there is nothing to expire
		pcm: cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Resources) Format() Format    { return r.format }
func (r *Resources) Formats() []string { return r.codecs.Formats() }

// Cached reports how many decoded files are held.
func (r *Resources) Cached() int { return r.pcm.ItemCount() }

// Load returns the decoded PCM of path converted to the resource format.
// Repeated loads of the same path return the same buffer.
func (r *Resources) Load(path string) (*audio.Buffer, error) {
	if r.closed.Load() {
		return nil, ErrResourcesClosed
	}
	if path == "" {
		return nil, ErrEmptyPath
	}

	key := filepath.Clean(path)
	if v, ok := r.pcm.Get(key); ok {
		return v.(*audio.Buffer), nil
	}

	dec, ok := r.codecs.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, audio.ErrUnsupportedFormat)
	}

	f, err := r.fs.Open(key)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src, r.format.SampleRate, r.format.Channels)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r.pcm.SetDefault(key, buf)

	return buf, nil
}

// Evict drops the decoded copy of path. Voices already holding it keep it.
func (r *Resources) Evict(path string) {
	r.pcm.Delete(filepath.Clean(path))
}

// Close drops every decoded buffer. Later loads fail.
func (r *Resources) Close() error {
	r.closed.Store(true)
	r.pcm.Flush()
	return nil
}

func (r *Resources) Closed() bool { return r.closed.Load() }
