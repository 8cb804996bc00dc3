package input

import "math"

// MaxJumpDigits is the longest digit sequence committed with its exact value on 64-bit platforms
// Longer sequences are still accepted and displayed but commit PositionOverflow
const MaxJumpDigits = 18

// PositionOverflow is committed when the typed number does not fit in an int
// No catalogue is that large, so the view rejects it as out of range
const PositionOverflow = math.MaxInt

// Outcome is the result of feeding one event to the Machine
type Outcome struct {
	Intent *Intent     // Emitted intent, nil if none
	Timer  TimerOp     // What the debounce timer owner must do
	Buffer BufferCause // Why the buffer changed, zero if it did not
}

// Machine is the input state machine
// Parses KeyEvent into navigation Intent and tracks the jump digit buffer
// Owns no timer: callers arm/cancel the debounce window per Outcome.Timer and call Expire when it elapses
type Machine struct {
	state    InputState
	keyTable *KeyTable

	// Digits typed since the last commit/cancel/expiry
	buffer []rune
}

// NewMachine creates a new input machine, nil selects DefaultKeyTable
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{
		state:    StateEmpty,
		keyTable: kt,
		buffer:   make([]rune, 0, MaxJumpDigits),
	}
}

// SetKeyTable swaps the bindings, pending digits are kept
func (m *Machine) SetKeyTable(kt *KeyTable) {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	m.keyTable = kt
}

// State returns the current buffer state
func (m *Machine) State() InputState {
	return m.state
}

// Pending returns the digit buffer for display
func (m *Machine) Pending() string {
	if len(m.buffer) == 0 {
		return ""
	}
	return string(m.buffer)
}

// Reset clears all pending state
func (m *Machine) Reset() {
	m.state = StateEmpty
	m.buffer = m.buffer[:0]
}

// Process interprets a key event
// Navigation keys win over the buffer and leave it untouched
func (m *Machine) Process(ev *KeyEvent) Outcome {
	entry, bound := m.keyTable.Lookup(ev)

	if bound && entry.Behavior == BehaviorNavigate {
		ev.PreventDefault()
		return Outcome{Intent: &Intent{Type: entry.IntentType}}
	}

	if digit, ok := ev.Digit(); ok {
		return m.appendDigit(digit)
	}

	// Commit and cancel only act on a pending sequence
	if !bound || m.state != StateAccumulating {
		return Outcome{}
	}

	switch entry.Behavior {
	case BehaviorCommit:
		position := m.position()
		m.Reset()
		return Outcome{
			Intent: &Intent{Type: IntentJumpToProduct, Position: position},
			Timer:  TimerCancel,
			Buffer: CauseCommit,
		}

	case BehaviorCancel:
		m.Reset()
		return Outcome{Timer: TimerCancel, Buffer: CauseCancel}
	}

	return Outcome{}
}

// Expire handles debounce timeout, returns true if a pending sequence was dropped
func (m *Machine) Expire() bool {
	if m.state != StateAccumulating {
		return false
	}
	m.Reset()
	return true
}

func (m *Machine) appendDigit(digit rune) Outcome {
	m.buffer = append(m.buffer, digit)
	m.state = StateAccumulating
	return Outcome{Timer: TimerArm, Buffer: CauseAppend}
}

// position is the decimal value of the buffer, saturating at PositionOverflow
func (m *Machine) position() int {
	n := 0
	for _, d := range m.buffer {
		v := int(d - '0')
		if n > (PositionOverflow-v)/10 {
			return PositionOverflow
		}
		n = n*10 + v
	}
	return n
}
