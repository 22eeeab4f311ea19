package cpu

import "fmt"

// Opcode is a decoded instruction split into its four nibbles,
// most significant first. Every 16-bit word decodes to some Opcode;
// whether it names a real instruction is decided at dispatch.
type Opcode struct {
	N1, N2, N3, N4 uint8
}

// Decode splits the two instruction bytes at pc into nibbles.
func Decode(hi, lo uint8) Opcode {
	return Opcode{
		N1: hi >> 4,
		N2: hi & 0x0F,
		N3: lo >> 4,
		N4: lo & 0x0F,
	}
}

// DecodeWord decodes a whole big-endian instruction word.
func DecodeWord(word uint16) Opcode {
	return Decode(uint8(word>>8), uint8(word))
}

// Word is the full 16-bit instruction.
func (op Opcode) Word() uint16 {
	return uint16(op.N1)<<12 | uint16(op.N2)<<8 | uint16(op.N3)<<4 | uint16(op.N4)
}

// Addr is the lowest 12 bits (nnn), used by jumps, calls and Annn.
func (op Opcode) Addr() uint16 {
	return uint16(op.N2)<<8 | uint16(op.N3)<<4 | uint16(op.N4)
}

// Byte is the lowest 8 bits (kk).
func (op Opcode) Byte() uint8 {
	return op.N3<<4 | op.N4
}

// Nibble is the lowest 4 bits (n), the sprite height for Dxyn.
func (op Opcode) Nibble() uint8 {
	return op.N4
}

// X is the register index in the low nibble of the high byte.
func (op Opcode) X() int {
	return int(op.N2)
}

// Y is the register index in the high nibble of the low byte.
func (op Opcode) Y() int {
	return int(op.N3)
}

func (op Opcode) String() string {
	return fmt.Sprintf("%04X", op.Word())
}
