package cpu

// execute dispatches a decoded opcode. It reports false when the nibble
// combination names no instruction; state is left untouched in that case.
func (emu *EMU) execute(op Opcode) bool {
	x, y := op.X(), op.Y()
	kk := op.Byte()
	nnn := op.Addr()

	switch op.N1 {
	case 0x0:
		switch kk {
		case 0xE0: // 00E0 - CLS
			emu.display = Display{}
			emu.updateScreen = true
		case 0xEE: // 00EE - RET
			emu.pc = emu.pop()
		default:
			return false
		}

	case 0x1: // 1nnn - JP addr
		emu.pc = nnn

	case 0x2: // 2nnn - CALL addr
		emu.push(emu.pc)
		emu.pc = nnn

	case 0x3: // 3xkk - SE Vx, byte
		emu.skipIf(emu.V[x] == kk)

	case 0x4: // 4xkk - SNE Vx, byte
		emu.skipIf(emu.V[x] != kk)

	case 0x5: // 5xy0 - SE Vx, Vy (low nibble ignored)
		emu.skipIf(emu.V[x] == emu.V[y])

	case 0x6: // 6xkk - LD Vx, byte
		emu.V[x] = kk

	case 0x7: // 7xkk - ADD Vx, byte
		emu.V[x] += kk

	case 0x8:
		return emu.executeALU(op.N4, x, y)

	case 0x9: // 9xy0 - SNE Vx, Vy (low nibble ignored)
		emu.skipIf(emu.V[x] != emu.V[y])

	case 0xA: // Annn - LD I, addr
		emu.I = nnn

	case 0xB: // Bnnn - JP V0, addr
		emu.pc = nnn + uint16(emu.V[0])

	case 0xC: // Cxkk - RND Vx, byte
		emu.V[x] = emu.rng.NextByte() & kk

	case 0xD: // Dxyn - DRW Vx, Vy, nibble
		emu.draw(x, y, op.Nibble())

	case 0xE:
		switch kk {
		case 0x9E: // Ex9E - SKP Vx
			emu.skipIf(emu.keyState[emu.V[x]&0xF])
		case 0xA1: // ExA1 - SKNP Vx
			emu.skipIf(!emu.keyState[emu.V[x]&0xF])
		default:
			return false
		}

	case 0xF:
		return emu.executeMisc(kk, x)
	}
	return true
}

// executeALU handles the 8xyN register to register group. The result is
// stored before VF, so VF used as Vx ends up holding the flag.
func (emu *EMU) executeALU(n uint8, x, y int) bool {
	vx, vy := emu.V[x], emu.V[y]

	switch n {
	case 0x0: // 8xy0 - LD Vx, Vy
		emu.V[x] = vy
	case 0x1: // 8xy1 - OR Vx, Vy
		emu.V[x] = vx | vy
	case 0x2: // 8xy2 - AND Vx, Vy
		emu.V[x] = vx & vy
	case 0x3: // 8xy3 - XOR Vx, Vy
		emu.V[x] = vx ^ vy

	case 0x4: // 8xy4 - ADD Vx, Vy, VF = carry
		sum := uint16(vx) + uint16(vy)
		emu.V[x] = uint8(sum)
		emu.V[flagRegister] = boolToFlag(sum > 0xFF)

	case 0x5: // 8xy5 - SUB Vx, Vy, VF = NOT borrow
		emu.V[x] = vx - vy
		emu.V[flagRegister] = boolToFlag(vx >= vy)

	case 0x6: // 8xy6 - SHR Vx, VF = shifted out bit
		emu.V[x] = vx >> 1
		emu.V[flagRegister] = vx & 0x1

	case 0x7: // 8xy7 - SUBN Vx, Vy, VF = NOT borrow
		emu.V[x] = vy - vx
		emu.V[flagRegister] = boolToFlag(vy >= vx)

	case 0xE: // 8xyE - SHL Vx, VF = shifted out bit
		emu.V[x] = vx << 1
		emu.V[flagRegister] = vx >> 7

	default:
		return false
	}
	return true
}

// executeMisc handles the Fxkk group: timers, keypad wait, index
// register arithmetic and register/memory transfers.
func (emu *EMU) executeMisc(kk uint8, x int) bool {
	switch kk {
	case 0x07: // Fx07 - LD Vx, DT
		emu.V[x] = emu.delayTimer

	case 0x0A: // Fx0A - LD Vx, K
		emu.waitForKey(x)

	case 0x15: // Fx15 - LD DT, Vx
		emu.delayTimer = emu.V[x]

	case 0x18: // Fx18 - LD ST, Vx
		emu.soundTimer = emu.V[x]

	case 0x1E: // Fx1E - ADD I, Vx
		emu.I += uint16(emu.V[x])

	case 0x29: // Fx29 - LD F, Vx
		emu.I = FontStart + uint16(emu.V[x])*glyphSize

	case 0x33: // Fx33 - LD B, Vx
		v := emu.V[x]
		emu.write(emu.I, v/100)
		emu.write(emu.I+1, (v/10)%10)
		emu.write(emu.I+2, v%10)

	case 0x55: // Fx55 - LD [I], Vx
		for i := 0; i <= x; i++ {
			emu.write(emu.I+uint16(i), emu.V[i])
		}

	case 0x65: // Fx65 - LD Vx, [I]
		for i := 0; i <= x; i++ {
			emu.V[i] = emu.read(emu.I + uint16(i))
		}

	default:
		return false
	}
	return true
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
