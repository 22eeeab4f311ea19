// Package screen is the desktop window frontend built on pixelgl. The
// window has to be created and used from within pixelgl.Run.
package screen

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/beanboi7/chyp8/emu/runner"
)

// Beeper switches the tone on and off.
type Beeper interface {
	Set(active bool)
}

// Options configures the window.
type Options struct {
	Title  string
	Scale  float64 // window pixels per CHIP-8 pixel
	Layout *keypad.Layout
	Beeper Beeper // may be nil
}

type Window struct {
	*pixelgl.Window
	KeyMap map[uint16]pixelgl.Button

	scale  float64
	imd    *imdraw.IMDraw
	beeper Beeper
}

// New opens a window of 64x32 cells of Scale pixels each.
func New(opts Options) (*Window, error) {
	keyMap, err := NewKeyMap(opts.Layout)
	if err != nil {
		return nil, err
	}

	cfg := pixelgl.WindowConfig{
		Title:  opts.Title,
		Bounds: pixel.R(0, 0, cpu.ScreenWidth*opts.Scale, cpu.ScreenHeight*opts.Scale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{
		Window: win,
		KeyMap: keyMap,
		scale:  opts.Scale,
		imd:    imdraw.New(nil),
		beeper: opts.Beeper,
	}
	w.Clear(colornames.Black)
	return w, nil
}

// Poll presents the current frame and reads the keyboard. Keys are
// reported with their held state, so a key stays pressed for as long as
// the host key is down. Escape or closing the window quits.
func (w *Window) Poll(keys runner.Keys) bool {
	w.Clear(colornames.Black)
	w.imd.Draw(w)
	w.Update()

	if w.Closed() || w.JustPressed(pixelgl.KeyEscape) {
		return true
	}

	for key, button := range w.KeyMap {
		keys.SetKey(int(key), w.Pressed(button))
	}
	return false
}

func (w *Window) Beep(active bool) {
	if w.beeper != nil {
		w.beeper.Set(active)
	}
}

func (w *Window) Close() error {
	w.Destroy()
	return nil
}
