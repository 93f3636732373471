// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/sfxpool/engine"
)

// loopedSuffix marks files that are registered as looping.
const loopedSuffix = "_looped"

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Load every supported sound in a directory and list it",
		Long: `Load every supported sound file in DIR (sounds_dir by default) with the
configured polyphony and rolloff. Files whose name ends in "_looped" before
the extension are registered as looping.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := a.cfg.SoundsDir
			if len(args) == 1 {
				dir = args[0]
			}
			return a.scan(dir)
		},
	}
}

type scanned struct {
	path   string
	looped bool
}

// soundFiles lists the decodable files of dir in name order.
func soundFiles(dir string) ([]scanned, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	codecs := engine.DefaultDecoders()

	var out []scanned
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := e.Name()
		if _, ok := codecs.Lookup(name); !ok {
			continue
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		out = append(out, scanned{
			path:   filepath.Join(dir, name),
			looped: strings.HasSuffix(base, loopedSuffix),
		})
	}

	return out, nil
}

func (a *app) scan(dir string) error {
	files, err := soundFiles(dir)
	if err != nil {
		return err
	}

	m, err := a.newManager(a.cfg.Device)
	if err != nil {
		return err
	}
	defer m.Teardown()

	loaded := 0
	for _, f := range files {
		id, err := m.LoadSound(f.path, a.cfg.Polyphony, f.looped, a.cfg.Rolloff)
		if err != nil {
			a.log.Warn("skipping sound", "path", f.path, "err", err)
			continue
		}
		loaded++

		fmt.Fprintf(a.out, "%3d  %-32s voices=%d looped=%t length=%s\n",
			id, filepath.Base(f.path), m.Polyphony(id), m.IsLooped(id), m.Length(id).Round(time.Millisecond))
	}

	fmt.Fprintf(a.out, "loaded %d of %d sounds from %s\n", loaded, len(files), dir)

	return nil
}
