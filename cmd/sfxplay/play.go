// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

// pollInterval is how often play checks whether the voice has finished.
const pollInterval = 10 * time.Millisecond

func newPlayCmd(a *app) *cobra.Command {
	var (
		at       []float32
		duration time.Duration
		looped   bool
		gain     float32
	)

	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Play one sound on the output device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, attenuated, err := position(at)
			if err != nil {
				return err
			}
			if looped && duration <= 0 {
				return errors.New("a looped sound needs --duration")
			}

			m, err := a.newManager(a.cfg.Device)
			if err != nil {
				return err
			}
			defer m.Teardown()

			id, err := m.LoadSound(args[0], 1, looped, a.cfg.Rolloff)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			v := m.PlaySound(id, pos, attenuated)
			m.SetVoiceVolume(v, gain)
			a.log.Info("playing", "file", args[0], "voice", v.String(), "attenuated", attenuated, "length", m.Length(id))

			tick := time.NewTicker(pollInterval)
			defer tick.Stop()

			for m.IsPlaying(v) {
				select {
				case <-ctx.Done():
					m.Stop(v)
					fmt.Fprintln(a.out, "stopped")
					return nil
				case <-tick.C:
				}
			}

			fmt.Fprintln(a.out, "finished")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float32SliceVar(&at, "at", nil, "play attenuated at x,y,z relative to a listener at the origin")
	flags.DurationVar(&duration, "duration", 0, "stop after this long, 0 plays to the end")
	flags.BoolVar(&looped, "loop", false, "loop the sound")
	flags.Float32Var(&gain, "gain", 1, "gain of the voice, applied before the master volume")

	return cmd
}
