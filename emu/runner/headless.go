package runner

import "github.com/beanboi7/chyp8/emu/cpu"

// KeyEvent is a scripted key change.
type KeyEvent struct {
	Key     int
	Pressed bool
}

// Headless is a frontend without a display. It keeps the last frame and
// counts beeps, and replays scripted key events, which makes runs fully
// reproducible together with a seeded random source.
type Headless struct {
	// Script maps a poll number, starting at 0, to the key events applied
	// during that poll.
	Script map[int][]KeyEvent

	Display cpu.Display
	Draws   int
	Beeps   int
	Beeping bool
	Closed  bool

	polls int
}

// NewHeadless returns a headless frontend with no scripted input.
func NewHeadless() *Headless {
	return &Headless{}
}

// Poll applies the events scripted for this poll. It never quits.
func (h *Headless) Poll(keys Keys) bool {
	for _, ev := range h.Script[h.polls] {
		keys.SetKey(ev.Key, ev.Pressed)
	}
	h.polls++
	return false
}

func (h *Headless) Draw(display cpu.Display) {
	h.Display = display
	h.Draws++
}

func (h *Headless) Beep(active bool) {
	if active {
		h.Beeps++
	}
	h.Beeping = active
}

func (h *Headless) Close() error {
	h.Closed = true
	return nil
}
