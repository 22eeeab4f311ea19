package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrROMTooLarge is returned by LoadROM when the image does not fit
	// between ProgramStart and the end of memory.
	ErrROMTooLarge = errors.New("ROM too large")

	// ErrPCOutOfRange is returned by EmulateCycle when the program counter no
	// longer points at a full instruction inside memory.
	ErrPCOutOfRange = errors.New("program counter out of range")

	// ErrStackOverflow is the panic value for a call with all 16 stack
	// slots in use.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is the panic value for a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// InvalidInstructionError reports an opcode that does not decode to any
// instruction. PC is the address the opcode was fetched from.
type InvalidInstructionError struct {
	Opcode uint16
	PC     uint16
}

func (e *InvalidInstructionError) Error() string {
	return fmt.Sprintf("invalid instruction %04X at 0x%03X", e.Opcode, e.PC)
}
