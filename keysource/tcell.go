package keysource

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hostkeys/input"
)

// tcellKeys maps tcell special keys to logical keys
// Checked before the Ctrl+letter range since Enter, Tab and Backspace share codes with it
var tcellKeys = map[tcell.Key]input.Key{
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyPgUp:       input.KeyPageUp,
	tcell.KeyPgDn:       input.KeyPageDown,
}

// FromTcell converts a tcell key event, returns nil for keys with no logical mapping
// Ctrl+letter arrives as the lowercase rune with ModCtrl set, and ShiftUnknown unless Shift was reported
func FromTcell(ev *tcell.EventKey) *input.KeyEvent {
	mod := fromTcellMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		return input.NewKeyEvent(input.KeyRune, ev.Rune(), mod)
	}
	if k, ok := tcellKeys[ev.Key()]; ok {
		return input.NewKeyEvent(k, 0, mod)
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		kev := input.NewKeyEvent(input.KeyRune, r, mod|input.ModCtrl)
		kev.ShiftUnknown = mod&input.ModShift == 0
		return kev
	}
	return nil
}

func fromTcellMod(m tcell.ModMask) input.Modifier {
	var mod input.Modifier
	if m&tcell.ModShift != 0 {
		mod |= input.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= input.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= input.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= input.ModMeta
	}
	return mod
}
