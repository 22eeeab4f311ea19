// Package cpu implements the CHIP-8 interpreter core: memory, registers,
// call stack, timers, keypad and the 64x32 display, advanced one
// instruction at a time by the host.
package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const (
	MemorySize     = 4096
	ProgramStart   = 0x200
	FontStart      = 0x050
	MaxROMSize     = MemorySize - ProgramStart
	CyclesPerFrame = 10

	numRegisters = 16
	stackSize    = 16
	numKeys      = 16
	glyphSize    = 5
	flagRegister = 0xF
	memMask      = MemorySize - 1
)

// FontSet holds the sixteen hex digit glyphs, five rows each.
var FontSet = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

type EMU struct {
	memory       [MemorySize]uint8
	V            [numRegisters]uint8
	I            uint16 //address register
	pc           uint16
	display      Display
	delayTimer   uint8 //counts down at 60Hz
	soundTimer   uint8 //same as above
	stack        [stackSize]uint16
	sp           uint16
	keyState     [numKeys]bool //tells whether key is pressed or not
	keyWait      keyWait
	updateScreen bool //to draw or not

	rng    RandomSource
	tracer *log.Logger
}

// Option configures an EMU at construction.
type Option func(*EMU)

// WithRandomSource replaces the clock seeded default source used by Cxkk.
func WithRandomSource(r RandomSource) Option {
	return func(emu *EMU) {
		emu.rng = r
	}
}

// WithTracer logs every executed instruction at debug level.
func WithTracer(logger *log.Logger) Option {
	return func(emu *EMU) {
		emu.tracer = logger
	}
}

// NewEMU returns a machine in its power-on state. The font and a ROM
// still have to be loaded before the first cycle.
func NewEMU(opts ...Option) *EMU {
	emu := &EMU{}
	for _, opt := range opts {
		opt(emu)
	}
	if emu.rng == nil {
		emu.rng = newClockSource()
	}
	emu.Reset()
	return emu
}

// Reset restores the power-on state. The random source and tracer are
// kept; the font is not reloaded.
func (emu *EMU) Reset() {
	rng, tracer := emu.rng, emu.tracer
	*emu = EMU{
		pc:     ProgramStart,
		rng:    rng,
		tracer: tracer,
	}
}

// LoadFont copies FontSet to FontStart.
func (emu *EMU) LoadFont() {
	copy(emu.memory[FontStart:], FontSet[:])
}

// LoadROM copies a program image to ProgramStart. The content is not
// validated.
func (emu *EMU) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(emu.memory[ProgramStart:], rom)
	return nil
}

// EmulateCycle fetches, decodes and executes one instruction. The
// program counter is advanced past the instruction before it executes,
// so an invalid instruction leaves it pointing at the next one.
func (emu *EMU) EmulateCycle() error {
	pc := emu.pc
	if int(pc) >= MemorySize-1 {
		return fmt.Errorf("%w: 0x%04X", ErrPCOutOfRange, pc)
	}

	op := Decode(emu.memory[pc], emu.memory[pc+1])
	emu.pc += 2

	if emu.tracer != nil {
		emu.tracer.Debug("exec",
			log.String("pc", fmt.Sprintf("0x%03X", pc)),
			log.String("opcode", op.String()),
			log.String("i", fmt.Sprintf("0x%03X", emu.I)),
		)
	}

	if !emu.execute(op) {
		return &InvalidInstructionError{Opcode: op.Word(), PC: pc}
	}
	return nil
}

// Frame runs CyclesPerFrame instructions and then one timer tick,
// roughly 600-700 instructions per second against the 60Hz timers when
// called once per frame. The first failing cycle ends the frame early.
func (emu *EMU) Frame() error {
	for i := 0; i < CyclesPerFrame; i++ {
		if err := emu.EmulateCycle(); err != nil {
			return err
		}
	}
	emu.DecTimers()
	return nil
}

// DecTimers counts both timers down by one, stopping at zero.
func (emu *EMU) DecTimers() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
	if emu.soundTimer > 0 {
		emu.soundTimer--
	}
}

// Sound reports whether the sound timer is running.
func (emu *EMU) Sound() bool {
	return emu.soundTimer != 0
}

// SetKey records a key press or release. Keys are 0x0-0xF; any other
// index is a caller bug and panics.
func (emu *EMU) SetKey(key int, pressed bool) {
	if key < 0 || key >= numKeys {
		panic(fmt.Sprintf("key index %d out of range 0-15", key))
	}
	emu.keyState[key] = pressed
}

// ClearKeys releases every key.
func (emu *EMU) ClearKeys() {
	emu.keyState = [numKeys]bool{}
}

// Display returns a copy of the framebuffer.
func (emu *EMU) Display() Display {
	return emu.display
}

// Redraw reports whether the display changed since the last call.
func (emu *EMU) Redraw() bool {
	updated := emu.updateScreen
	emu.updateScreen = false
	return updated
}

// PC returns the program counter.
func (emu *EMU) PC() uint16 {
	return emu.pc
}

// Index returns the I register.
func (emu *EMU) Index() uint16 {
	return emu.I
}

// Register returns Vx.
func (emu *EMU) Register(x int) uint8 {
	return emu.V[x&0xF]
}

func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}

// read and write address memory through the 12-bit bus, so accesses
// past 0xFFF wrap to the start of memory.
func (emu *EMU) read(addr uint16) uint8 {
	return emu.memory[addr&memMask]
}

func (emu *EMU) write(addr uint16, value uint8) {
	emu.memory[addr&memMask] = value
}
