package input

// InputState tracks the digit buffer state machine
type InputState uint8

const (
	StateEmpty        InputState = iota // No pending digits, no timer
	StateAccumulating                   // Digits pending, debounce timer armed
)

// TimerOp tells the owner of the debounce timer what to do after an event
type TimerOp uint8

const (
	TimerKeep   TimerOp = iota // Leave the timer as it is
	TimerArm                   // Cancel any pending timer and start a fresh window
	TimerCancel                // Cancel any pending timer
)

// BufferCause explains why the digit buffer changed
type BufferCause uint8

const (
	CauseAppend BufferCause = iota + 1
	CauseCommit
	CauseCancel
	CauseExpire
)

func (c BufferCause) String() string {
	switch c {
	case CauseAppend:
		return "append"
	case CauseCommit:
		return "commit"
	case CauseCancel:
		return "cancel"
	case CauseExpire:
		return "expire"
	}
	return "none"
}
