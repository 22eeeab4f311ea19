package screen

import (
	"fmt"

	"github.com/faiface/pixel/pixelgl"

	"github.com/beanboi7/chyp8/emu/keypad"
)

// buttons lists the host keys a layout may use.
var buttons = map[rune]pixelgl.Button{
	'0': pixelgl.Key0, '1': pixelgl.Key1, '2': pixelgl.Key2, '3': pixelgl.Key3,
	'4': pixelgl.Key4, '5': pixelgl.Key5, '6': pixelgl.Key6, '7': pixelgl.Key7,
	'8': pixelgl.Key8, '9': pixelgl.Key9,

	'a': pixelgl.KeyA, 'b': pixelgl.KeyB, 'c': pixelgl.KeyC, 'd': pixelgl.KeyD,
	'e': pixelgl.KeyE, 'f': pixelgl.KeyF, 'g': pixelgl.KeyG, 'h': pixelgl.KeyH,
	'i': pixelgl.KeyI, 'j': pixelgl.KeyJ, 'k': pixelgl.KeyK, 'l': pixelgl.KeyL,
	'm': pixelgl.KeyM, 'n': pixelgl.KeyN, 'o': pixelgl.KeyO, 'p': pixelgl.KeyP,
	'q': pixelgl.KeyQ, 'r': pixelgl.KeyR, 's': pixelgl.KeyS, 't': pixelgl.KeyT,
	'u': pixelgl.KeyU, 'v': pixelgl.KeyV, 'w': pixelgl.KeyW, 'x': pixelgl.KeyX,
	'y': pixelgl.KeyY, 'z': pixelgl.KeyZ,

	',': pixelgl.KeyComma, '.': pixelgl.KeyPeriod, '/': pixelgl.KeySlash,
	';': pixelgl.KeySemicolon, '\'': pixelgl.KeyApostrophe, '-': pixelgl.KeyMinus,
	'=': pixelgl.KeyEqual, '[': pixelgl.KeyLeftBracket, ']': pixelgl.KeyRightBracket,
}

// NewKeyMap binds every keypad key to the window button of its host
// character in the layout.
func NewKeyMap(layout *keypad.Layout) (map[uint16]pixelgl.Button, error) {
	keyMap := make(map[uint16]pixelgl.Button, keypad.Keys)
	for key := 0; key < keypad.Keys; key++ {
		r := layout.Rune(key)
		button, ok := buttons[r]
		if !ok {
			return nil, fmt.Errorf("key %q of keypad key %X has no window button", r, key)
		}
		keyMap[uint16(key)] = button
	}
	return keyMap, nil
}
