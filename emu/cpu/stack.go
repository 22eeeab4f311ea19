package cpu

// push stores a return address. A seventeenth nested call cannot be
// represented and aborts execution.
func (emu *EMU) push(addr uint16) {
	if emu.sp >= stackSize {
		panic(ErrStackOverflow)
	}
	emu.stack[emu.sp] = addr
	emu.sp++
}

// pop removes the most recent return address. Returning without a
// matching call aborts execution.
func (emu *EMU) pop() uint16 {
	if emu.sp == 0 {
		panic(ErrStackUnderflow)
	}
	emu.sp--
	return emu.stack[emu.sp]
}
