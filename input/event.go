package input

import "sync/atomic"

// KeyEvent is a single key press delivered by the host
// Space always arrives as KeySpace regardless of how the backend reported it
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Modifier

	// ShiftUnknown is set when the backend folded the key into a control code
	// Legacy terminals send Ctrl+P and Ctrl+Shift+P as the same byte
	ShiftUnknown bool

	prevented atomic.Bool
}

// NewKeyEvent normalizes a backend key press
func NewKeyEvent(key Key, r rune, mod Modifier) *KeyEvent {
	if key == KeyRune && r == ' ' {
		key = KeySpace
	}
	if key == KeySpace {
		r = ' '
	}
	return &KeyEvent{Key: key, Rune: r, Mod: mod}
}

// RuneEvent creates an unmodified printable key press
func RuneEvent(r rune) *KeyEvent {
	return NewKeyEvent(KeyRune, r, ModNone)
}

// SpecialEvent creates an unmodified non-printable key press
func SpecialEvent(key Key) *KeyEvent {
	return NewKeyEvent(key, 0, ModNone)
}

// PreventDefault marks the host's default action for this key as suppressed
func (e *KeyEvent) PreventDefault() {
	e.prevented.Store(true)
}

// DefaultPrevented reports whether a handler suppressed the default action
func (e *KeyEvent) DefaultPrevented() bool {
	return e.prevented.Load()
}

// Digit returns the decimal digit carried by the event, if any
func (e *KeyEvent) Digit() (rune, bool) {
	if e.Key != KeyRune || e.Mod&(ModCtrl|ModAlt|ModMeta) != 0 {
		return 0, false
	}
	if e.Rune >= '0' && e.Rune <= '9' {
		return e.Rune, true
	}
	return 0, false
}
