// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ik5/sfxpool"
	"github.com/ik5/sfxpool/engine"
)

func newWatchCmd(a *app) *cobra.Command {
	var settle time.Duration

	cmd := &cobra.Command{
		Use:   "watch [DIR]",
		Short: "Load a directory and register new sound files as they appear",
		Long: `Watch loads every sound in DIR like scan, then keeps running and
registers each new sound file once it has not been written to for --settle.
Sounds cannot be unregistered, so changes to a file that is already loaded
are reported and ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SoundsDir
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return a.watch(ctx, dir, settle)
		},
	}

	cmd.Flags().DurationVar(&settle, "settle", 200*time.Millisecond, "quiet time after the last write before a file is loaded")

	return cmd
}

func (a *app) watch(ctx context.Context, dir string, settle time.Duration) error {
	files, err := soundFiles(dir)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	m, err := a.newManager(a.cfg.Device)
	if err != nil {
		return err
	}
	defer m.Teardown()

	known := make(map[string]sfxpool.SoundID)
	for _, f := range files {
		a.register(m, known, f.path)
	}
	fmt.Fprintf(a.out, "watching %s\n", dir)

	codecs := engine.DefaultDecoders()
	pending := make(map[string]time.Time)

	tick := time.NewTicker(max(settle/4, 10*time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if _, ok := codecs.Lookup(ev.Name); !ok {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "err", err)

		case now := <-tick.C:
			for path, last := range pending {
				if now.Sub(last) < settle {
					continue
				}
				delete(pending, path)
				a.register(m, known, path)
			}
		}
	}
}

// register loads path once. Later calls for the same path only log.
func (a *app) register(m *sfxpool.Manager, known map[string]sfxpool.SoundID, path string) {
	if id, ok := known[path]; ok {
		a.log.Info("sound already registered, restart to reload", "path", path, "id", id)
		return
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	looped := strings.HasSuffix(base, loopedSuffix)

	id, err := m.LoadSound(path, a.cfg.Polyphony, looped, a.cfg.Rolloff)
	if err != nil {
		a.log.Warn("skipping sound", "path", path, "err", err)
		return
	}
	known[path] = id

	fmt.Fprintf(a.out, "registered %d %s looped=%t\n", id, filepath.Base(path), looped)
}
