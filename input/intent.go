package input

// IntentType discriminates navigation commands
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Sequential navigation
	IntentNextProduct
	IntentPreviousProduct
	IntentNextImage
	IntentPreviousImage

	// Direct navigation, committed from the digit buffer
	IntentJumpToProduct
)

// External event names understood by the view controller
var intentEventNames = map[IntentType]string{
	IntentNextProduct:     "next_product",
	IntentPreviousProduct: "previous_product",
	IntentNextImage:       "next_image",
	IntentPreviousImage:   "previous_image",
	IntentJumpToProduct:   "jump_to_product",
}

// String returns the external event name
func (t IntentType) String() string {
	if name, ok := intentEventNames[t]; ok {
		return name
	}
	return "none"
}

// Intent is a navigation command decoupled from the key that produced it
// Pure data, built and handed to the dispatcher without being retained
type Intent struct {
	Type     IntentType
	Position int // 1-based product position as typed, JumpToProduct only
}

// EventName returns the name the view controller receives
func (i Intent) EventName() string {
	return i.Type.String()
}

// Params returns the event payload, empty for everything except JumpToProduct
func (i Intent) Params() map[string]any {
	if i.Type == IntentJumpToProduct {
		return map[string]any{"position": i.Position}
	}
	return map[string]any{}
}
