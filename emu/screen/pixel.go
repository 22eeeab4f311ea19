package screen

import (
	"github.com/faiface/pixel"
	"golang.org/x/image/colornames"

	"github.com/beanboi7/chyp8/emu/cpu"
)

// Draw rebuilds the cell rectangles from a frame. They are presented by
// the next Poll. Row 0 of the frame is the top of the window, while
// pixel coordinates grow upwards.
func (w *Window) Draw(display cpu.Display) {
	w.imd.Clear()
	w.imd.Color = colornames.White

	for y := 0; y < cpu.ScreenHeight; y++ {
		top := float64(cpu.ScreenHeight-y) * w.scale
		for x := 0; x < cpu.ScreenWidth; x++ {
			if !display[y*cpu.ScreenWidth+x] {
				continue
			}
			left := float64(x) * w.scale
			w.imd.Push(pixel.V(left, top-w.scale), pixel.V(left+w.scale, top))
			w.imd.Rectangle(0)
		}
	}
}
