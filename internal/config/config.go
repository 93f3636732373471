// SPDX-License-Identifier: EPL-2.0

// Package config loads sfxplay settings from defaults, an optional config
// file, .env files, SFXPOOL_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ik5/sfxpool"
)

// EnvPrefix is prepended to every key when read from the environment, so
// period_frames becomes SFXPOOL_PERIOD_FRAMES.
const EnvPrefix = "SFXPOOL"

// Devices lists the accepted values of the device key.
var Devices = []string{"malgo", "portaudio", "manual"}

var (
	ErrUnknownDevice    = errors.New("config: unknown device")
	ErrInvalidPolyphony = errors.New("config: polyphony out of range")
	ErrInvalidVolume    = errors.New("config: volume out of range")
	ErrInvalidPeriod    = errors.New("config: period_frames must not be negative")
	ErrInvalidLogLevel  = errors.New("config: invalid log_level")
)

type Config struct {
	Device       string  `mapstructure:"device"`
	PeriodFrames int     `mapstructure:"period_frames"`
	Volume       float32 `mapstructure:"volume"`
	Polyphony    int     `mapstructure:"polyphony"`
	Rolloff      float32 `mapstructure:"rolloff"`
	SoundsDir    string  `mapstructure:"sounds_dir"`
	LogLevel     string  `mapstructure:"log_level"`
	Trace        bool    `mapstructure:"trace"`
}

func Defaults() Config {
	return Config{
		Device:       "malgo",
		PeriodFrames: 0,
		Volume:       sfxpool.MaxVolume,
		Polyphony:    4,
		Rolloff:      1,
		SoundsDir:    ".",
		LogLevel:     "info",
	}
}

// SetDefaults registers every key on v so environment variables are seen
// by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("device", d.Device)
	v.SetDefault("period_frames", d.PeriodFrames)
	v.SetDefault("volume", d.Volume)
	v.SetDefault("polyphony", d.Polyphony)
	v.SetDefault("rolloff", d.Rolloff)
	v.SetDefault("sounds_dir", d.SoundsDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("trace", d.Trace)
}

// Load reads file when it is not empty, layers the environment on top and
// returns the validated result.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
// With no arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

func (c Config) Validate() error {
	if !slices.Contains(Devices, c.Device) {
		return fmt.Errorf("%w %q, want one of %s", ErrUnknownDevice, c.Device, strings.Join(Devices, ", "))
	}
	if c.Polyphony < 1 || c.Polyphony > sfxpool.MaxPolyphony {
		return fmt.Errorf("%w: %d", ErrInvalidPolyphony, c.Polyphony)
	}
	if c.Volume < 0 || c.Volume > sfxpool.MaxVolume {
		return fmt.Errorf("%w: %g", ErrInvalidVolume, c.Volume)
	}
	if c.PeriodFrames < 0 {
		return ErrInvalidPeriod
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return l, nil
}
