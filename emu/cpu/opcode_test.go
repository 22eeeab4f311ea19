package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		hi, lo uint8
		want   Opcode
		addr   uint16
		kk     uint8
		x, y   int
	}{
		{"jump", 0x12, 0x34, Opcode{0x1, 0x2, 0x3, 0x4}, 0x234, 0x34, 0x2, 0x3},
		{"draw", 0xDA, 0xB5, Opcode{0xD, 0xA, 0xB, 0x5}, 0xAB5, 0xB5, 0xA, 0xB},
		{"zero", 0x00, 0x00, Opcode{}, 0x000, 0x00, 0x0, 0x0},
		{"all set", 0xFF, 0xFF, Opcode{0xF, 0xF, 0xF, 0xF}, 0xFFF, 0xFF, 0xF, 0xF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := Decode(tt.hi, tt.lo)
			assert.Equal(t, tt.want, op)
			assert.Equal(t, tt.addr, op.Addr())
			assert.Equal(t, tt.kk, op.Byte())
			assert.Equal(t, tt.want.N4, op.Nibble())
			assert.Equal(t, tt.x, op.X())
			assert.Equal(t, tt.y, op.Y())
		})
	}
}

// Every word decodes, and the derived fields recombine to the input word.
func TestDecodeWordTotal(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		word := uint16(w)
		op := DecodeWord(word)

		if op.Word() != word {
			t.Fatalf("word %04X decoded to %04X", word, op.Word())
		}
		if uint16(op.N1)<<12|op.Addr() != word {
			t.Fatalf("word %04X: addr %03X does not recombine", word, op.Addr())
		}
		if uint16(op.N1)<<12|uint16(op.N2)<<8|uint16(op.Byte()) != word {
			t.Fatalf("word %04X: byte %02X does not recombine", word, op.Byte())
		}
		if op.Nibble() != uint8(word&0xF) || op.X() != int(word>>8&0xF) || op.Y() != int(word>>4&0xF) {
			t.Fatalf("word %04X: nibble fields mismatch", word)
		}
		if op.N1 > 0xF || op.N2 > 0xF || op.N3 > 0xF || op.N4 > 0xF {
			t.Fatalf("word %04X: nibble out of range %v", word, op)
		}
	}
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "00E0", DecodeWord(0x00E0).String())
	assert.Equal(t, "FFFF", DecodeWord(0xFFFF).String())
}
