// Package keypad maps host keyboard characters to the sixteen CHIP-8 keys.
package keypad

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keys is the number of keys on the hex keypad.
const Keys = 16

// Grid lists the keypad keys in the order they sit on the COSMAC VIP
// keypad, left to right and top to bottom:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
var Grid = [Keys]int{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// DefaultLayout is the left hand block of a QWERTY keyboard.
const DefaultLayout = "1234qwerasdfzxcv"

// ErrInvalidLayout is returned for layouts that do not name sixteen
// distinct host keys.
var ErrInvalidLayout = errors.New("invalid keypad layout")

// Layout maps host characters to keypad keys.
type Layout struct {
	keys  map[rune]int
	runes [Keys]rune
}

// Default returns the QWERTY layout.
func Default() *Layout {
	l, err := ParseLayout(DefaultLayout)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseLayout reads sixteen host characters given in Grid order.
// Letters are matched case-insensitively.
func ParseLayout(s string) (*Layout, error) {
	if n := utf8.RuneCountInString(s); n != Keys {
		return nil, fmt.Errorf("%w: %d keys given, need %d", ErrInvalidLayout, n, Keys)
	}

	l := &Layout{keys: make(map[rune]int, Keys)}
	for i, r := range []rune(strings.ToLower(s)) {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return nil, fmt.Errorf("%w: unusable key %q", ErrInvalidLayout, r)
		}
		if _, ok := l.keys[r]; ok {
			return nil, fmt.Errorf("%w: key %q used twice", ErrInvalidLayout, r)
		}
		key := Grid[i]
		l.keys[r] = key
		l.runes[key] = r
	}
	return l, nil
}

// Lookup returns the keypad key bound to a host character.
func (l *Layout) Lookup(r rune) (int, bool) {
	key, ok := l.keys[unicode.ToLower(r)]
	return key, ok
}

// Rune returns the host character bound to a keypad key.
func (l *Layout) Rune(key int) rune {
	return l.runes[key&0xF]
}

// String returns the layout in Grid order, as accepted by ParseLayout.
func (l *Layout) String() string {
	var sb strings.Builder
	for _, key := range Grid {
		sb.WriteRune(l.runes[key])
	}
	return sb.String()
}
