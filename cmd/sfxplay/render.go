// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/sfxpool"
	"github.com/ik5/sfxpool/device/manual"
	"github.com/ik5/sfxpool/engine"
	"github.com/ik5/sfxpool/formats/wav"
)

type renderOpts struct {
	out      string
	seconds  float64
	at       []float32
	count    int
	interval time.Duration
	looped   bool
	gain     float32
}

func newRenderCmd(a *app) *cobra.Command {
	var o renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Mix plays of a sound offline into a WAV file",
		Long: `Render plays FILE --count times, one every --interval, through the
configured polyphony and voice stealing, and writes the mix as 16-bit
stereo WAV. No audio device is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.render(args[0], o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.out, "out", "o", "", "output WAV file")
	flags.Float64Var(&o.seconds, "seconds", 1, "length of the rendered mix")
	flags.Float32SliceVar(&o.at, "at", nil, "play attenuated at x,y,z")
	flags.IntVar(&o.count, "count", 1, "number of plays")
	flags.DurationVar(&o.interval, "interval", 100*time.Millisecond, "time between plays")
	flags.BoolVar(&o.looped, "loop", false, "register the sound as looping")
	flags.Float32Var(&o.gain, "gain", 1, "gain of every play, applied before the master volume")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// renderChunk is how many frames are pumped between play checks.
const renderChunk = 256

func (a *app) render(file string, o renderOpts) error {
	if o.seconds <= 0 {
		return errors.New("--seconds must be positive")
	}
	if o.count < 0 {
		return errors.New("--count must not be negative")
	}
	if o.gain < 0 {
		return errors.New("--gain must not be negative")
	}
	pos, attenuated, err := position(o.at)
	if err != nil {
		return err
	}

	m, err := a.newManager("manual", sfxpool.WithPeriodFrames(renderChunk))
	if err != nil {
		return err
	}
	defer m.Teardown()

	id, err := m.LoadSound(file, a.cfg.Polyphony, o.looped, a.cfg.Rolloff)
	if err != nil {
		return err
	}

	dev, ok := m.Device().(*manual.Device)
	if !ok {
		return fmt.Errorf("render needs the manual device, got %T", m.Device())
	}

	f := engine.DefaultFormat
	total := f.DurationToFrames(time.Duration(o.seconds * float64(time.Second)))
	every := max(f.DurationToFrames(o.interval), 1)

	mix := make([]float32, 0, total*f.Channels)
	played := 0
	for done := 0; done < total; {
		if played < o.count && done >= played*every {
			m.SetVoiceVolume(m.PlaySound(id, pos, attenuated), o.gain)
			played++
		}

		n := min(renderChunk, total-done)
		if played < o.count {
			n = min(n, played*every-done)
		}

		block, err := dev.Pump(n)
		if err != nil {
			return err
		}
		mix = append(mix, block...)
		done += n
	}

	out, err := os.Create(o.out)
	if err != nil {
		return err
	}
	if err := wav.WriteFloat32(out, f.SampleRate, f.Channels, mix); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "wrote %s: %d frames, %d plays, peak %.3f\n", o.out, total, played, peak(mix))

	return nil
}

func peak(samples []float32) float32 {
	var p float32
	for _, s := range samples {
		p = max(p, s, -s)
	}
	return p
}
