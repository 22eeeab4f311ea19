package cpu

// draw XORs an n-row sprite read from memory at I onto the display at
// (Vx, Vy). The origin wraps around the screen; rows and columns that
// run off the bottom or right edge are clipped. VF is set when any lit
// pixel is switched off.
func (emu *EMU) draw(xReg, yReg int, n uint8) {
	originX := int(emu.V[xReg]) % ScreenWidth
	originY := int(emu.V[yReg]) % ScreenHeight
	emu.V[flagRegister] = 0

	for row := 0; row < int(n); row++ {
		py := originY + row
		if py >= ScreenHeight {
			break
		}
		sprite := emu.read(emu.I + uint16(row))

		for bit := 0; bit < 8; bit++ {
			px := originX + bit
			if px >= ScreenWidth {
				break
			}
			if sprite&(0x80>>bit) == 0 {
				continue
			}

			idx := py*ScreenWidth + px
			if emu.display[idx] {
				emu.V[flagRegister] = 1
			}
			emu.display[idx] = !emu.display[idx]
		}
	}
	emu.updateScreen = true
}
