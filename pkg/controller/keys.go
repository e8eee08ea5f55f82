package controller

import "github.com/gdamore/tcell/v2"

// Rune-based keys mapped into tcell's key space so letter shortcuts
// and special keys live in one events map.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Uppercase variants, used to switch between feature pages.
const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

// KeySpace is the advance/toggle shortcut.
const KeySpace tcell.Key = 32

// initKeys teaches tcell the display names of the rune keys so
// headers can render shortcuts uniformly.
func initKeys() {
	for key := KeyA; key <= KeyZ; key++ {
		tcell.KeyNames[key] = string(rune(key))
	}

	for key := KeyShiftA; key <= KeyShiftZ; key++ {
		tcell.KeyNames[key] = "shift-" + string(rune(key+32))
	}

	tcell.KeyNames[KeySpace] = "space"
}

// AsKey converts a key event into our key space, folding rune events
// into the constants above.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}
