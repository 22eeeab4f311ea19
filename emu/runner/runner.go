// Package runner paces a CHIP-8 machine against wall clock time and
// connects it to a host frontend for video, audio and input.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/beanboi7/chyp8/emu/cpu"
)

// ErrEngineFault is returned when the machine hits a condition it cannot
// represent, such as a call stack overflow.
var ErrEngineFault = errors.New("engine fault")

// Keys receives key state changes from a frontend. *cpu.EMU implements it.
type Keys interface {
	SetKey(key int, pressed bool)
}

// Frontend is a host presenting the machine to the user.
type Frontend interface {
	// Poll processes pending input, forwarding key changes to keys. It
	// returns true when the user asked to quit.
	Poll(keys Keys) bool
	// Draw presents a new frame.
	Draw(display cpu.Display)
	// Beep starts or stops the tone.
	Beep(active bool)
	Close() error
}

// Options controls pacing and error policy.
type Options struct {
	CPUHz       int  // instructions per second
	Refresh     int  // timer and redraw ticks per second
	Frames      int  // stop after this many timer ticks, 0 runs until quit
	HaltOnError bool // stop at the first invalid instruction instead of skipping it
}

// Runner drives one machine and one frontend.
type Runner struct {
	emu      *cpu.EMU
	frontend Frontend
	logger   *log.Logger
	opts     Options

	frames  int
	skipped int
	beeping bool
}

// New returns a runner. Non-positive rates fall back to 700 instructions
// and 60 ticks per second.
func New(emu *cpu.EMU, frontend Frontend, logger *log.Logger, opts Options) *Runner {
	if opts.CPUHz <= 0 {
		opts.CPUHz = 700
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 60
	}
	return &Runner{
		emu:      emu,
		frontend: frontend,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes instructions at CPUHz and ticks the timers at Refresh
// until the context is cancelled, the frontend quits, the frame limit is
// reached or the machine fails.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer recoverFault(&err)

	cpuTicker := time.NewTicker(time.Second / time.Duration(r.opts.CPUHz))
	defer cpuTicker.Stop()
	frameTicker := time.NewTicker(time.Second / time.Duration(r.opts.Refresh))
	defer frameTicker.Stop()

	r.logger.Debug("Starting emulation",
		log.Int("cpu_hz", r.opts.CPUHz),
		log.Int("refresh", r.opts.Refresh))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-cpuTicker.C:
			if err := r.step(); err != nil {
				return err
			}

		case <-frameTicker.C:
			if r.tick() {
				return nil
			}
		}
	}
}

// RunFrames runs n frames as fast as possible, each being
// cpu.CyclesPerFrame instructions followed by a timer tick. It stops
// early when the frontend quits.
func (r *Runner) RunFrames(n int) (err error) {
	defer recoverFault(&err)

	for i := 0; i < n; i++ {
		for c := 0; c < cpu.CyclesPerFrame; c++ {
			if err := r.step(); err != nil {
				return err
			}
		}
		if r.tick() {
			return nil
		}
	}
	return nil
}

// Frames returns the number of timer ticks run so far.
func (r *Runner) Frames() int {
	return r.frames
}

// Skipped returns the number of invalid instructions that were skipped.
func (r *Runner) Skipped() int {
	return r.skipped
}

// step executes one instruction. Invalid instructions are logged and
// skipped unless HaltOnError is set; any other error is returned.
func (r *Runner) step() error {
	err := r.emu.EmulateCycle()
	if err == nil {
		return nil
	}

	var invalid *cpu.InvalidInstructionError
	if !errors.As(err, &invalid) || r.opts.HaltOnError {
		return err
	}

	r.skipped++
	r.logger.Warn("Skipping invalid instruction",
		log.String("opcode", fmt.Sprintf("%04X", invalid.Opcode)),
		log.String("pc", fmt.Sprintf("0x%03X", invalid.PC)))
	return nil
}

// tick counts down the timers and updates the frontend. It returns true
// when the run should end.
func (r *Runner) tick() bool {
	r.emu.DecTimers()

	if r.emu.Redraw() {
		r.frontend.Draw(r.emu.Display())
	}

	if sound := r.emu.Sound(); sound != r.beeping {
		r.beeping = sound
		r.frontend.Beep(sound)
	}

	if r.frontend.Poll(r.emu) {
		r.logger.Debug("Frontend requested quit")
		return true
	}

	r.frames++
	return r.opts.Frames > 0 && r.frames >= r.opts.Frames
}

// recoverFault turns a panic raised by the machine into ErrEngineFault.
func recoverFault(err *error) {
	rec := recover()
	if rec == nil {
		return
	}
	if e, ok := rec.(error); ok {
		*err = fmt.Errorf("%w: %w", ErrEngineFault, e)
		return
	}
	*err = fmt.Errorf("%w: %v", ErrEngineFault, rec)
}
