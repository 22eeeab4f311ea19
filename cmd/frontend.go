package cmd

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/config"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/runner"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/term"
)

// frontend bundles the selected frontend with the beeper it drives, so
// both are released together.
type frontend struct {
	runner.Frontend
	beeper *audio.Beeper
	logger *log.Logger
}

func newFrontend(cfg *config.Config, name string, emu *cpu.EMU, logger *log.Logger) (*frontend, error) {
	fe := &frontend{logger: logger}
	title := "Chyp8 - " + name

	if cfg.Audio.Enabled && cfg.Frontend != config.FrontendHeadless {
		beeper, err := audio.New(cfg.Audio.Frequency, cfg.Audio.Volume, cfg.Audio.Sample)
		if err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		} else {
			fe.beeper = beeper
		}
	}

	switch cfg.Frontend {
	case config.FrontendGUI:
		opts := screen.Options{Title: title, Scale: cfg.Scale, Layout: cfg.Layout()}
		if fe.beeper != nil {
			opts.Beeper = fe.beeper
		}
		win, err := screen.New(opts)
		if err != nil {
			fe.close()
			return nil, err
		}
		fe.Frontend = win

	case config.FrontendTerm:
		opts := term.Options{
			Title:   title,
			Layout:  cfg.Layout(),
			KeyHold: cfg.KeyHold,
			Status: func() string {
				return fmt.Sprintf("pc 0x%03X  I 0x%03X", emu.PC(), emu.Index())
			},
		}
		if fe.beeper != nil {
			opts.Beeper = fe.beeper
		}
		t, err := term.New(opts)
		if err != nil {
			fe.close()
			return nil, err
		}
		fe.Frontend = t

	default:
		fe.Frontend = runner.NewHeadless()
	}
	return fe, nil
}

func (fe *frontend) close() {
	if fe.Frontend != nil {
		if err := fe.Frontend.Close(); err != nil {
			fe.logger.Error("Closing frontend failed", log.Err(err))
		}
	}
	if fe.beeper != nil {
		if err := fe.beeper.Close(); err != nil {
			fe.logger.Error("Closing audio failed", log.Err(err))
		}
	}
}
