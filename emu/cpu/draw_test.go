package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// drawAt places a sprite in memory at 0x300 and draws it at (x, y).
func drawAt(emu *EMU, x, y uint8, sprite ...uint8) {
	copy(emu.memory[0x300:], sprite)
	emu.I = 0x300
	emu.V[0] = x
	emu.V[1] = y
	emu.draw(0, 1, uint8(len(sprite)))
}

func TestDrawGlyph(t *testing.T) {
	// I = glyph 0, draw 5 rows at (0, 0)
	emu := newTestEMU(t, 0x6000, 0xF029, 0xD005)
	step(t, emu, 3)

	d := emu.Display()
	want := []string{"####", "#..#", "#..#", "#..#", "####"}
	for y, row := range want {
		for x, c := range row {
			assert.Equal(t, c == '#', d.At(x, y))
		}
	}
	assert.Equal(t, 14, d.Lit())
	assert.Equal(t, uint8(0), emu.V[0xF])
	assert.True(t, emu.Redraw())
}

func TestDrawTwiceErases(t *testing.T) {
	emu := NewEMU()
	drawAt(emu, 10, 12, 0xFF, 0x81, 0xFF)
	first := emu.Display()
	assert.Equal(t, 18, first.Lit())
	assert.Equal(t, uint8(0), emu.V[0xF])

	drawAt(emu, 10, 12, 0xFF, 0x81, 0xFF)
	second := emu.Display()
	assert.Equal(t, 0, second.Lit())
	assert.Equal(t, uint8(1), emu.V[0xF])
}

func TestDrawCollisionPartialOverlap(t *testing.T) {
	emu := NewEMU()
	drawAt(emu, 0, 0, 0xF0)
	drawAt(emu, 3, 0, 0xF0)

	d := emu.Display()
	assert.Equal(t, uint8(1), emu.V[0xF])
	assert.True(t, d.At(2, 0))
	assert.False(t, d.At(3, 0))
	assert.True(t, d.At(4, 0))
	assert.True(t, d.At(6, 0))

	// disjoint sprite clears the flag again
	drawAt(emu, 20, 20, 0x80)
	assert.Equal(t, uint8(0), emu.V[0xF])
}

func TestDrawClipsAtEdges(t *testing.T) {
	t.Run("right edge", func(t *testing.T) {
		emu := NewEMU()
		drawAt(emu, 60, 0, 0xFF)

		d := emu.Display()
		assert.Equal(t, 4, d.Lit())
		for x := 60; x < 64; x++ {
			assert.True(t, d.At(x, 0))
		}
		assert.False(t, d.At(0, 0))
		assert.False(t, d.At(0, 1))
	})

	t.Run("bottom edge", func(t *testing.T) {
		emu := NewEMU()
		drawAt(emu, 0, 30, 0x80, 0x80, 0x80, 0x80)

		d := emu.Display()
		assert.Equal(t, 2, d.Lit())
		assert.True(t, d.At(0, 30))
		assert.True(t, d.At(0, 31))
		assert.False(t, d.At(0, 0))
	})
}

func TestDrawOriginWraps(t *testing.T) {
	emu := NewEMU()
	drawAt(emu, 64+5, 32+3, 0x80)

	d := emu.Display()
	assert.Equal(t, 1, d.Lit())
	assert.True(t, d.At(5, 3))

	emu = NewEMU()
	drawAt(emu, 0xFF, 0xFF, 0xC0)
	d = emu.Display()
	// 255 % 64 = 63, 255 % 32 = 31; the second column is clipped
	assert.Equal(t, 1, d.Lit())
	assert.True(t, d.At(63, 31))
}

func TestDrawZeroRows(t *testing.T) {
	emu := NewEMU()
	emu.V[0xF] = 1
	drawAt(emu, 0, 0)

	d := emu.Display()
	assert.Equal(t, 0, d.Lit())
	assert.Equal(t, uint8(0), emu.V[0xF])
	assert.True(t, emu.Redraw())
}

func TestDrawUsesFlagRegisterCoordinates(t *testing.T) {
	// coordinates are read before VF is cleared
	emu := NewEMU()
	copy(emu.memory[0x300:], []uint8{0x80})
	emu.I = 0x300
	emu.V[0xF] = 7
	emu.V[1] = 2
	emu.draw(0xF, 1, 1)

	d := emu.Display()
	assert.True(t, d.At(7, 2))
}

func TestDisplayString(t *testing.T) {
	emu := NewEMU()
	drawAt(emu, 0, 0, 0x80)

	d := emu.Display()
	s := d.String()
	assert.Equal(t, (ScreenWidth+1)*ScreenHeight, len(s))
	assert.Equal(t, byte('#'), s[0])
	assert.Equal(t, byte('.'), s[1])
	assert.Equal(t, byte('\n'), s[ScreenWidth])
}

func TestDisplayAtOutOfRange(t *testing.T) {
	var d Display
	for i := range d {
		d[i] = true
	}
	assert.False(t, d.At(-1, 0))
	assert.False(t, d.At(0, -1))
	assert.False(t, d.At(ScreenWidth, 0))
	assert.False(t, d.At(0, ScreenHeight))
	assert.True(t, d.At(ScreenWidth-1, ScreenHeight-1))
}
