// Package term is a frontend for text terminals. The display is drawn
// with half block characters, two CHIP-8 rows per text row.
package term

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	tm "github.com/buger/goterm"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/beanboi7/chyp8/emu/runner"
)

const (
	keyEsc = 0x1B

	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	clearScreen = "\033[2J"
)

// FrameRows is the number of text rows a rendered frame occupies.
const FrameRows = cpu.ScreenHeight/2 + 3

// Beeper switches the tone on and off.
type Beeper interface {
	Set(active bool)
}

// Options configures the terminal frontend.
type Options struct {
	Title  string
	Layout *keypad.Layout
	// KeyHold is how long a key counts as pressed after its character
	// arrives. Terminals do not report key releases.
	KeyHold time.Duration
	// Status returns the text shown below the display. May be nil.
	Status func() string
	Beeper Beeper // may be nil
}

// Terminal puts stdin into raw mode and renders to stdout.
type Terminal struct {
	opts    Options
	in      *os.File
	raw     *rawState
	buf     []byte
	release [keypad.Keys]time.Time
	now     func() time.Time

	out    *bufio.Writer
	height func() int
	small  bool
}

// New switches stdin to raw mode and clears the screen. Close restores
// the terminal.
func New(opts Options) (*Terminal, error) {
	in := os.Stdin
	raw, err := enterRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("entering raw terminal mode: %w", err)
	}

	t := &Terminal{
		opts:   opts,
		in:     in,
		raw:    raw,
		buf:    make([]byte, 64),
		now:    time.Now,
		out:    tm.Output,
		height: tm.Height,
	}

	t.out.WriteString(clearScreen + hideCursor)
	t.out.Flush()
	return t, nil
}

// Poll reads the characters typed since the last call. A lone Escape
// quits.
func (t *Terminal) Poll(keys runner.Keys) bool {
	n, _ := t.in.Read(t.buf)
	return t.handleInput(t.buf[:n], keys)
}

// handleInput presses the keys named by input and releases keys whose
// hold time ran out. It returns true when input ends with a lone Escape.
// Escape sequences sent by arrow and function keys are ignored.
func (t *Terminal) handleInput(input []byte, keys runner.Keys) bool {
	now := t.now()

	for i := 0; i < len(input); {
		if input[i] == keyEsc {
			if i == len(input)-1 {
				return true
			}
			i = skipEscape(input, i)
			continue
		}

		r, size := utf8.DecodeRune(input[i:])
		i += size
		key, ok := t.opts.Layout.Lookup(r)
		if !ok {
			continue
		}
		keys.SetKey(key, true)
		t.release[key] = now.Add(t.opts.KeyHold)
	}

	for key, deadline := range t.release {
		if deadline.IsZero() || now.Before(deadline) {
			continue
		}
		keys.SetKey(key, false)
		t.release[key] = time.Time{}
	}
	return false
}

// skipEscape returns the index following the escape sequence that starts
// at input[i]. Two Escapes in a row skip only the first.
func skipEscape(input []byte, i int) int {
	switch input[i+1] {
	case keyEsc:
		return i + 1
	case '[': // CSI, ends with a byte in 0x40-0x7E
		for j := i + 2; j < len(input); j++ {
			if input[j] >= 0x40 && input[j] <= 0x7E {
				return j + 1
			}
		}
		return len(input)
	case 'O': // SS3, one final byte
		return min(i+3, len(input))
	default: // Alt modified key
		return i + 2
	}
}

// Draw writes the frame straight to the goterm output buffer and flushes
// it. A terminal with fewer than FrameRows rows gets a notice instead.
func (t *Terminal) Draw(display cpu.Display) {
	rows := t.height()
	small := rows > 0 && rows < FrameRows
	if small != t.small {
		t.small = small
		t.out.WriteString(clearScreen)
	}

	if small {
		t.out.WriteString(tm.MoveTo(tooSmall(rows), 1, 1))
		t.out.Flush()
		return
	}

	status := ""
	if t.opts.Status != nil {
		status = t.opts.Status()
	}

	frame := strings.TrimSuffix(Render(&display, t.opts.Title, status), "\n")
	t.out.WriteString(tm.MoveTo(frame, 1, 1))
	t.out.Flush()
}

func tooSmall(rows int) string {
	return fmt.Sprintf("terminal too small: %d rows, need %d", rows, FrameRows)
}

// Beep rings the terminal bell when the tone starts.
func (t *Terminal) Beep(active bool) {
	if active {
		t.out.WriteString("\a")
		t.out.Flush()
	}
	if t.opts.Beeper != nil {
		t.opts.Beeper.Set(active)
	}
}

// Close restores the terminal state saved by New.
func (t *Terminal) Close() error {
	t.out.WriteString(showCursor)
	t.out.Flush()
	return t.raw.restore()
}

// Render draws a frame inside a border, followed by a title and status
// line.
func Render(display *cpu.Display, title, status string) string {
	var sb strings.Builder
	border := strings.Repeat("─", cpu.ScreenWidth)

	sb.WriteString("┌" + border + "┐\n")
	for y := 0; y < cpu.ScreenHeight; y += 2 {
		sb.WriteString("│")
		for x := 0; x < cpu.ScreenWidth; x++ {
			sb.WriteRune(halfBlock(display.At(x, y), display.At(x, y+1)))
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + border + "┘\n")

	fmt.Fprintf(&sb, "%-*s\n", cpu.ScreenWidth+2, title+"  "+status)
	return sb.String()
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
