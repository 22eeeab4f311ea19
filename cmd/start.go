package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beanboi7/chyp8/emu/config"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/beanboi7/chyp8/emu/rom"
	"github.com/beanboi7/chyp8/emu/runner"
)

var startCmd = &cobra.Command{
	Use:   "start [path/ROM]",
	Short: "load and start the Emulator",
	Long: `Load a ROM and run it. The ROM may be a raw program or a zip, 7z, gzip or
rar archive holding one. Without an argument the path is read from the
rom config key or the CHYP8_ROM environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: Start,
}

// chyp8 start 'path/to/ROM' -r 60
func Start(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if len(args) == 1 {
		v.Set(config.KeyROM, args[0])
	}
	if noAudio, _ := cmd.Flags().GetBool("no-audio"); noAudio {
		v.Set(config.KeyAudioEnabled, false)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	if cfg.ROM == "" {
		return errors.New("no ROM given, pass path/ROM or set CHYP8_ROM")
	}

	logger := config.CreateLogger(cfg.Debug || cfg.Trace, cfg.Quiet)
	if configUsed != "" {
		logger.Info("Using config file", log.String("path", configUsed))
	}

	data, name, err := rom.Load(cfg.ROM)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Info("Loaded ROM", log.String("name", name), log.Int("size", len(data)))

	emu, err := newMachine(cfg, data, logger)
	if err != nil {
		return err
	}

	// pixelgl has to own the main thread while the window is open.
	if cfg.Frontend == config.FrontendGUI {
		pixelgl.Run(func() {
			err = run(cfg, name, emu, logger)
		})
		return err
	}
	return run(cfg, name, emu, logger)
}

func newMachine(cfg *config.Config, program []byte, logger *log.Logger) (*cpu.EMU, error) {
	var opts []cpu.Option
	if cfg.Seed != 0 {
		opts = append(opts, cpu.WithRandomSource(cpu.NewSeededSource(cfg.Seed)))
	}
	if cfg.Trace {
		opts = append(opts, cpu.WithTracer(logger))
	}

	emu := cpu.NewEMU(opts...)
	emu.LoadFont()
	if err := emu.LoadROM(program); err != nil {
		return nil, err
	}
	return emu, nil
}

func run(cfg *config.Config, name string, emu *cpu.EMU, logger *log.Logger) error {
	fe, err := newFrontend(cfg, name, emu, logger)
	if err != nil {
		return err
	}
	defer fe.close()

	r := runner.New(emu, fe, logger, runner.Options{
		CPUHz:       cfg.CPUHz,
		Refresh:     cfg.Refresh,
		Frames:      cfg.Frames,
		HaltOnError: cfg.HaltOnError,
	})

	err = r.Run(app.Context())
	logger.Debug("Emulation stopped",
		log.Int("frames", r.Frames()),
		log.Int("skipped", r.Skipped()))

	if headless, ok := fe.Frontend.(*runner.Headless); ok {
		fmt.Print(headless.Display.String())
	}

	// Handle context cancellation (Ctrl+C) gracefully
	if errors.Is(err, context.Canceled) {
		logger.Info("Operation cancelled")
		return nil
	}
	return err
}

// startFlags maps flag names to configuration keys.
var startFlags = map[string]string{
	"refresh":       config.KeyRefresh,
	"cpu-hz":        config.KeyCPUHz,
	"frontend":      config.KeyFrontend,
	"scale":         config.KeyScale,
	"keymap":        config.KeyKeymap,
	"seed":          config.KeySeed,
	"frames":        config.KeyFrames,
	"halt-on-error": config.KeyHaltOnError,
	"trace":         config.KeyTrace,
}

func init() {
	flags := startCmd.Flags()
	flags.IntP("refresh", "r", 60, "sets the refresh rate of the display and timers in Hz")
	flags.Int("cpu-hz", 700, "instructions executed per second")
	flags.String("frontend", config.FrontendGUI, "frontend to use: gui, term or headless")
	flags.Float64("scale", 10, "window pixels per Chip-8 pixel")
	flags.String("keymap", keypad.DefaultLayout, "16 host keys for the keypad rows 123C 456D 789E A0BF")
	flags.Int64("seed", 0, "random seed, 0 seeds from the clock")
	flags.Int("frames", 0, "stop after this many frames, 0 runs until quit")
	flags.Bool("halt-on-error", false, "stop at the first invalid instruction")
	flags.Bool("trace", false, "log every executed instruction")
	flags.Bool("no-audio", false, "disable the beeper")

	for name, key := range startFlags {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(name)))
	}
}
