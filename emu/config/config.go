// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/viper"

	"github.com/beanboi7/chyp8/emu/keypad"
)

// Frontends selectable with the frontend key.
const (
	FrontendGUI      = "gui"
	FrontendTerm     = "term"
	FrontendHeadless = "headless"
)

// Configuration keys, shared by the config file, CHYP8_ environment
// variables and command line flags.
const (
	KeyROM          = "rom"
	KeyCPUHz        = "cpu_hz"
	KeyRefresh      = "refresh"
	KeyFrontend     = "frontend"
	KeyScale        = "scale"
	KeyKeymap       = "keymap"
	KeyHaltOnError  = "halt_on_error"
	KeySeed         = "seed"
	KeyFrames       = "frames"
	KeyKeyHold      = "key_hold"
	KeyTrace        = "trace"
	KeyDebug        = "debug"
	KeyQuiet        = "quiet"
	KeyAudioEnabled = "audio.enabled"
	KeyAudioFreq    = "audio.frequency"
	KeyAudioVolume  = "audio.volume"
	KeyAudioSample  = "audio.sample"
)

// EnvPrefix is prepended to every key when read from the environment,
// so rom is read from CHYP8_ROM and audio.volume from CHYP8_AUDIO_VOLUME.
const EnvPrefix = "CHYP8"

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Audio configures the beeper.
type Audio struct {
	Enabled   bool
	Frequency float64 // square wave tone in Hz
	Volume    float64 // 0..1
	Sample    string  // optional mp3 played instead of the tone
}

// Config holds the settings of one emulator run.
type Config struct {
	ROM         string
	CPUHz       int
	Refresh     int
	Frontend    string
	Scale       float64
	Keymap      string
	HaltOnError bool
	Seed        int64 // 0 seeds from the clock
	Frames      int   // 0 runs until quit
	KeyHold     time.Duration
	Trace       bool
	Debug       bool
	Quiet       bool
	Audio       Audio
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyROM, "")
	v.SetDefault(KeyCPUHz, 700)
	v.SetDefault(KeyRefresh, 60)
	v.SetDefault(KeyFrontend, FrontendGUI)
	v.SetDefault(KeyScale, 10)
	v.SetDefault(KeyKeymap, keypad.DefaultLayout)
	v.SetDefault(KeyHaltOnError, false)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyFrames, 0)
	v.SetDefault(KeyKeyHold, 200*time.Millisecond)
	v.SetDefault(KeyTrace, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyAudioEnabled, true)
	v.SetDefault(KeyAudioFreq, 440)
	v.SetDefault(KeyAudioVolume, 0.2)
	v.SetDefault(KeyAudioSample, "")
}

// Init sets up v to read the config file and environment variables.
// cfgFile overrides the search for .chyp8 in the home directory. It
// returns the path of the config file that was read, or an empty string
// if none was found.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(".chyp8")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// FromViper builds a validated Config from the merged settings in v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ROM:         v.GetString(KeyROM),
		CPUHz:       v.GetInt(KeyCPUHz),
		Refresh:     v.GetInt(KeyRefresh),
		Frontend:    strings.ToLower(v.GetString(KeyFrontend)),
		Scale:       v.GetFloat64(KeyScale),
		Keymap:      v.GetString(KeyKeymap),
		HaltOnError: v.GetBool(KeyHaltOnError),
		Seed:        v.GetInt64(KeySeed),
		Frames:      v.GetInt(KeyFrames),
		KeyHold:     v.GetDuration(KeyKeyHold),
		Trace:       v.GetBool(KeyTrace),
		Debug:       v.GetBool(KeyDebug),
		Quiet:       v.GetBool(KeyQuiet),
		Audio: Audio{
			Enabled:   v.GetBool(KeyAudioEnabled),
			Frequency: v.GetFloat64(KeyAudioFreq),
			Volume:    v.GetFloat64(KeyAudioVolume),
			Sample:    v.GetString(KeyAudioSample),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case c.CPUHz <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyCPUHz, c.CPUHz)
	case c.Refresh <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyRefresh, c.Refresh)
	case c.Scale <= 0:
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, KeyScale, c.Scale)
	case c.Frames < 0:
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, KeyFrames, c.Frames)
	case c.KeyHold <= 0:
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, KeyKeyHold, c.KeyHold)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: %s must be within 0..1, got %g", ErrInvalidConfig, KeyAudioVolume, c.Audio.Volume)
	case c.Audio.Frequency <= 0:
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, KeyAudioFreq, c.Audio.Frequency)
	}

	switch c.Frontend {
	case FrontendGUI, FrontendTerm, FrontendHeadless:
	default:
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, KeyFrontend, c.Frontend)
	}

	if _, err := keypad.ParseLayout(c.Keymap); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyKeymap, err)
	}
	return nil
}

// Layout returns the parsed keymap.
func (c *Config) Layout() *keypad.Layout {
	l, err := keypad.ParseLayout(c.Keymap)
	if err != nil {
		return keypad.Default()
	}
	return l
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
