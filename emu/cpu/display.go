package cpu

import "strings"

const (
	ScreenWidth  = 64
	ScreenHeight = 32
	ScreenArea   = ScreenWidth * ScreenHeight
)

// Display is the monochrome framebuffer, row-major, index y*ScreenWidth+x.
// Values returned by EMU.Display are copies and can be kept by the host.
type Display [ScreenArea]bool

// At reports whether the pixel at (x, y) is lit. Coordinates outside
// the screen read as unlit.
func (d *Display) At(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return d[y*ScreenWidth+x]
}

// Lit counts the lit pixels.
func (d *Display) Lit() int {
	n := 0
	for _, p := range d {
		if p {
			n++
		}
	}
	return n
}

// String renders the display as 32 lines of '#' and '.'.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if d[y*ScreenWidth+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
