package cpu

// keyWait tracks Fx0A across cycles. While the instruction blocks, the
// program counter is rewound so the same instruction is fetched again on
// the next cycle. A key resolves the wait only once it is released.
type keyWait struct {
	captured bool
	key      uint8
}

func (emu *EMU) waitForKey(x int) {
	if emu.keyWait.captured {
		if !emu.keyState[emu.keyWait.key] {
			emu.V[x] = emu.keyWait.key
			emu.keyWait = keyWait{}
			return
		}
	} else {
		for k, pressed := range emu.keyState {
			if pressed {
				emu.keyWait = keyWait{captured: true, key: uint8(k)}
				break
			}
		}
	}

	emu.pc -= 2
}

// Waiting reports whether a key press has been captured by Fx0A and is
// waiting for its release.
func (emu *EMU) Waiting() (uint8, bool) {
	return emu.keyWait.key, emu.keyWait.captured
}
