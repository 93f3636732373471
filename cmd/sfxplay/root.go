// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ik5/sfxpool"
	"github.com/ik5/sfxpool/device/malgo"
	"github.com/ik5/sfxpool/device/manual"
	"github.com/ik5/sfxpool/engine"
	"github.com/ik5/sfxpool/internal/config"
)

// openers holds the devices compiled into this binary. portaudio registers
// itself when built with -tags portaudio.
var openers = map[string]engine.DeviceOpener{
	"malgo":  malgo.Open,
	"manual": manual.Open,
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	out     io.Writer
	tp      *sdktrace.TracerProvider
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "sfxplay",
		Short:        "Load, play and render sound effects",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdownTracing(cmd.Context())
		},
	}

	d := config.Defaults()
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("device", d.Device, "output device: "+strings.Join(config.Devices, ", "))
	flags.Int("period-frames", d.PeriodFrames, "device callback size in frames, 0 for the backend default")
	flags.Float32("volume", d.Volume, "master volume in [0,1]")
	flags.Int("polyphony", d.Polyphony, "voices per loaded sound")
	flags.Float32("rolloff", d.Rolloff, "distance rolloff of loaded sounds")
	flags.String("log-level", d.LogLevel, "debug, info, warn or error")
	flags.Bool("trace", d.Trace, "write OpenTelemetry spans to stderr")

	for _, key := range []string{"device", "period_frames", "volume", "polyphony", "rolloff", "log_level", "trace"} {
		_ = a.v.BindPFlag(key, flags.Lookup(strings.ReplaceAll(key, "_", "-")))
	}

	cmd.AddCommand(newScanCmd(a), newPlayCmd(a), newRenderCmd(a), newWatchCmd(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	// Validate has already checked the level
	level, _ := cfg.Level()

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if cfg.Trace {
		tp, err := newTracerProvider(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.tp = tp
	}

	return nil
}

// newManager brings up a manager on device with the configured volume and
// period.
func (a *app) newManager(device string, opts ...sfxpool.Option) (*sfxpool.Manager, error) {
	open, ok := openers[device]
	if !ok {
		return nil, fmt.Errorf("device %q is not built into this binary", device)
	}

	base := []sfxpool.Option{
		sfxpool.WithLogger(a.log),
		sfxpool.WithDeviceOpener(open),
		sfxpool.WithPeriodFrames(a.cfg.PeriodFrames),
		sfxpool.WithVolume(a.cfg.Volume),
	}
	if a.tp != nil {
		base = append(base, sfxpool.WithTracerProvider(a.tp))
	}

	m := sfxpool.New(append(base, opts...)...)

	if err := m.Init(); err != nil {
		return nil, err
	}

	return m, nil
}

// position turns a --at flag value into a point.
func position(at []float32) (engine.Vec3, bool, error) {
	switch len(at) {
	case 0:
		return engine.Vec3{}, false, nil
	case 3:
		return engine.V(at[0], at[1], at[2]), true, nil
	default:
		return engine.Vec3{}, false, fmt.Errorf("--at wants x,y,z, got %d values", len(at))
	}
}
