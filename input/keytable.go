package input

// KeyBehavior classifies how a key is processed
type KeyBehavior uint8

const (
	BehaviorNone     KeyBehavior = iota
	BehaviorNavigate             // Emit a sequential intent immediately, suppress default action
	BehaviorCommit               // Commit the digit buffer as a jump
	BehaviorCancel               // Drop the digit buffer
)

// KeyEntry describes a key's behavior without function pointers
type KeyEntry struct {
	Behavior   KeyBehavior
	IntentType IntentType
}

// KeyTable maps keys to behaviors
// Digits are never bound; they always feed the jump buffer
type KeyTable struct {
	// Special keys (arrows, space, enter, escape)
	SpecialKeys map[Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[Key]KeyEntry{
			KeyDown:   {BehaviorNavigate, IntentNextProduct},
			KeySpace:  {BehaviorNavigate, IntentNextProduct},
			KeyUp:     {BehaviorNavigate, IntentPreviousProduct},
			KeyRight:  {BehaviorNavigate, IntentNextImage},
			KeyLeft:   {BehaviorNavigate, IntentPreviousImage},
			KeyEnter:  {BehaviorCommit, IntentJumpToProduct},
			KeyEscape: {BehaviorCancel, IntentNone},
		},
		Runes: map[rune]KeyEntry{},
	}
}

// Lookup resolves the binding for an event
func (kt *KeyTable) Lookup(ev *KeyEvent) (KeyEntry, bool) {
	if ev.Key == KeyRune {
		entry, ok := kt.Runes[ev.Rune]
		return entry, ok
	}
	entry, ok := kt.SpecialKeys[ev.Key]
	return entry, ok
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: cloneMap(kt.SpecialKeys),
		Runes:       cloneMap(kt.Runes),
	}
}

func cloneMap[K comparable](m map[K]KeyEntry) map[K]KeyEntry {
	c := make(map[K]KeyEntry, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
