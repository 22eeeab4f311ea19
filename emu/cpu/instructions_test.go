package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSkips(t *testing.T) {
	tests := []struct {
		name    string
		setup   []uint16
		op      uint16
		skipped bool
	}{
		{"SE byte equal", []uint16{0x6342}, 0x3342, true},
		{"SE byte differ", []uint16{0x6342}, 0x3343, false},
		{"SNE byte equal", []uint16{0x6342}, 0x4342, false},
		{"SNE byte differ", []uint16{0x6342}, 0x4343, true},
		{"SE reg equal", []uint16{0x6105, 0x6205}, 0x5120, true},
		{"SE reg differ", []uint16{0x6105, 0x6206}, 0x5120, false},
		{"SE reg low nibble ignored", []uint16{0x6105, 0x6205}, 0x5127, true},
		{"SNE reg equal", []uint16{0x6105, 0x6205}, 0x9120, false},
		{"SNE reg differ", []uint16{0x6105, 0x6206}, 0x9120, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := append(append([]uint16{}, tt.setup...), tt.op)
			emu := newTestEMU(t, program...)
			step(t, emu, len(program))

			want := uint16(ProgramStart + 2*len(program))
			if tt.skipped {
				want += 2
			}
			assert.Equal(t, want, emu.PC())
		})
	}
}

func TestKeySkips(t *testing.T) {
	tests := []struct {
		name    string
		op      uint16
		pressed bool
		skipped bool
	}{
		{"SKP pressed", 0xE39E, true, true},
		{"SKP released", 0xE39E, false, false},
		{"SKNP pressed", 0xE3A1, true, false},
		{"SKNP released", 0xE3A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, 0x630A, tt.op)
			emu.SetKey(0xA, tt.pressed)
			step(t, emu, 2)

			want := uint16(0x204)
			if tt.skipped {
				want = 0x206
			}
			assert.Equal(t, want, emu.PC())
		})
	}
}

func TestLoadAndAdd(t *testing.T) {
	emu := newTestEMU(t, 0x6AFF, 0x7A02, 0x6F07, 0x7F01)
	step(t, emu, 2)

	// 7xkk wraps and leaves VF alone
	assert.Equal(t, uint8(0x01), emu.V[0xA])
	assert.Equal(t, uint8(0), emu.V[0xF])

	step(t, emu, 2)
	assert.Equal(t, uint8(0x08), emu.V[0xF])
}

func TestBitwise(t *testing.T) {
	tests := []struct {
		name string
		op   uint16
		want uint8
	}{
		{"LD", 0x8120, 0x0F},
		{"OR", 0x8121, 0xFF},
		{"AND", 0x8122, 0x00},
		{"XOR", 0x8123, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, 0x61F0, 0x620F, 0x6F55, tt.op)
			step(t, emu, 4)
			assert.Equal(t, tt.want, emu.V[1])
			assert.Equal(t, uint8(0x55), emu.V[0xF])
		})
	}
}

// aluResult runs a single 8xyN instruction on V1, V2 and returns V1, VF.
func aluResult(t *testing.T, emu *EMU, n uint8, vx, vy uint8) (uint8, uint8) {
	t.Helper()
	emu.V[1] = vx
	emu.V[2] = vy
	emu.V[0xF] = 0xAA
	if !emu.executeALU(n, 1, 2) {
		t.Fatalf("8xy%X rejected", n)
	}
	return emu.V[1], emu.V[0xF]
}

func TestArithmeticFlagsExhaustive(t *testing.T) {
	emu := NewEMU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vx, vy := uint8(a), uint8(b)

			res, flag := aluResult(t, emu, 0x4, vx, vy)
			if res != uint8(a+b) || flag != boolToFlag(a+b > 255) {
				t.Fatalf("ADD %d %d: got %d flag %d", a, b, res, flag)
			}

			res, flag = aluResult(t, emu, 0x5, vx, vy)
			if res != uint8(a-b) || flag != boolToFlag(a >= b) {
				t.Fatalf("SUB %d %d: got %d flag %d", a, b, res, flag)
			}

			res, flag = aluResult(t, emu, 0x7, vx, vy)
			if res != uint8(b-a) || flag != boolToFlag(b >= a) {
				t.Fatalf("SUBN %d %d: got %d flag %d", a, b, res, flag)
			}
		}

		vx := uint8(a)
		res, flag := aluResult(t, emu, 0x6, vx, 0)
		if res != vx>>1 || flag != vx&1 {
			t.Fatalf("SHR %d: got %d flag %d", a, res, flag)
		}

		res, flag = aluResult(t, emu, 0xE, vx, 0)
		if res != vx<<1 || flag != vx>>7 {
			t.Fatalf("SHL %d: got %d flag %d", a, res, flag)
		}
	}
}

// With VF as the destination the flag overwrites the result.
func TestFlagRegisterAsDestination(t *testing.T) {
	emu := newTestEMU(t, 0x6FFF, 0x6101, 0x8F14)
	step(t, emu, 3)
	assert.Equal(t, uint8(1), emu.V[0xF])

	emu = newTestEMU(t, 0x6F02, 0x8FF6)
	step(t, emu, 2)
	assert.Equal(t, uint8(0), emu.V[0xF])
}

func TestIndexInstructions(t *testing.T) {
	t.Run("LD I", func(t *testing.T) {
		emu := newTestEMU(t, 0xA123)
		step(t, emu, 1)
		assert.Equal(t, uint16(0x123), emu.Index())
	})

	t.Run("ADD I no flag", func(t *testing.T) {
		emu := newTestEMU(t, 0xAFFF, 0x6102, 0x6F00, 0xF11E)
		step(t, emu, 4)
		assert.Equal(t, uint16(0x1001), emu.Index())
		assert.Equal(t, uint8(0), emu.V[0xF])
	})

	t.Run("font glyph", func(t *testing.T) {
		emu := newTestEMU(t, 0x650A, 0xF529)
		step(t, emu, 2)
		assert.Equal(t, uint16(FontStart+0xA*5), emu.Index())
	})
}

func TestJumps(t *testing.T) {
	t.Run("JP", func(t *testing.T) {
		emu := newTestEMU(t, 0x1ABC)
		step(t, emu, 1)
		assert.Equal(t, uint16(0xABC), emu.PC())
	})

	t.Run("JP V0", func(t *testing.T) {
		emu := newTestEMU(t, 0x6010, 0xB300)
		step(t, emu, 2)
		assert.Equal(t, uint16(0x310), emu.PC())
	})
}

func TestRandom(t *testing.T) {
	emu := NewEMU(WithRandomSource(NewSequenceSource(0xAB, 0xFF)))
	assert.NoError(t, emu.LoadROM([]byte{0xC1, 0x0F, 0xC2, 0xFF}))
	step(t, emu, 2)

	assert.Equal(t, uint8(0x0B), emu.V[1])
	assert.Equal(t, uint8(0xFF), emu.V[2])
}

func TestTimerInstructions(t *testing.T) {
	emu := newTestEMU(t, 0x6320, 0xF315, 0xF318, 0xF407)
	step(t, emu, 3)
	assert.Equal(t, uint8(0x20), emu.DelayTimer())
	assert.Equal(t, uint8(0x20), emu.SoundTimer())
	assert.True(t, emu.Sound())

	emu.DecTimers()
	step(t, emu, 1)
	assert.Equal(t, uint8(0x1F), emu.V[4])
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value uint8
		want  []uint8
	}{
		{234, []uint8{2, 3, 4}},
		{0, []uint8{0, 0, 0}},
		{7, []uint8{0, 0, 7}},
		{255, []uint8{2, 5, 5}},
	}

	for _, tt := range tests {
		emu := newTestEMU(t, 0x6000|uint16(tt.value), 0xA300, 0xF033)
		step(t, emu, 3)
		assert.Equal(t, tt.want, emu.memory[0x300:0x303])
		assert.Equal(t, uint16(0x300), emu.Index())
	}
}

func TestRegisterDumpAndLoad(t *testing.T) {
	emu := newTestEMU(t, 0x6011, 0x6122, 0x6233, 0x6344, 0xA400, 0xF255)
	step(t, emu, 6)

	assert.Equal(t, []uint8{0x11, 0x22, 0x33, 0x00}, emu.memory[0x400:0x404])
	assert.Equal(t, uint16(0x400), emu.Index())

	emu.V = [numRegisters]uint8{}
	emu.pc = ProgramStart
	emu.memory[ProgramStart] = 0xF2
	emu.memory[ProgramStart+1] = 0x65
	step(t, emu, 1)

	assert.Equal(t, uint8(0x11), emu.V[0])
	assert.Equal(t, uint8(0x22), emu.V[1])
	assert.Equal(t, uint8(0x33), emu.V[2])
	assert.Equal(t, uint8(0x00), emu.V[3])
	assert.Equal(t, uint16(0x400), emu.Index())
}

func TestMemoryWrapsAtTopOfAddressSpace(t *testing.T) {
	emu := newTestEMU(t, 0x60AA, 0x61BB, 0xAFFF, 0xF155)
	step(t, emu, 4)

	assert.Equal(t, uint8(0xAA), emu.memory[0xFFF])
	assert.Equal(t, uint8(0xBB), emu.memory[0x000])
}

func TestClearScreen(t *testing.T) {
	emu := newTestEMU(t, 0xA050, 0xD005, 0x00E0)
	step(t, emu, 2)
	d := emu.Display()
	assert.True(t, d.Lit() > 0)

	step(t, emu, 1)
	d = emu.Display()
	assert.Equal(t, 0, d.Lit())
}
