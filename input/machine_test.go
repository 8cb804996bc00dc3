package input

import "testing"

// feed runs events through a fresh machine and collects emitted intents
func feed(m *Machine, events ...*KeyEvent) []Intent {
	var out []Intent
	for _, ev := range events {
		if o := m.Process(ev); o.Intent != nil {
			out = append(out, *o.Intent)
		}
	}
	return out
}

func digits(s string) []*KeyEvent {
	evs := make([]*KeyEvent, 0, len(s))
	for _, r := range s {
		evs = append(evs, RuneEvent(r))
	}
	return evs
}

func TestMachine_DigitsThenEnterJumps(t *testing.T) {
	tests := []struct {
		typed string
		want  int
	}{
		{"1", 1},
		{"12", 12},
		{"007", 7},
		{"120", 120},
		{"0", 0},
		{"123456789", 123456789},
	}

	for _, tt := range tests {
		t.Run(tt.typed, func(t *testing.T) {
			m := NewMachine(nil)
			evs := append(digits(tt.typed), SpecialEvent(KeyEnter))
			got := feed(m, evs...)

			if len(got) != 1 {
				t.Fatalf("expected exactly one intent, got %v", got)
			}
			if got[0].Type != IntentJumpToProduct || got[0].Position != tt.want {
				t.Errorf("got %+v, want jump to %d", got[0], tt.want)
			}
			if m.State() != StateEmpty || m.Pending() != "" {
				t.Errorf("buffer not cleared after commit: state=%v pending=%q", m.State(), m.Pending())
			}
		})
	}
}

func TestMachine_NavigationKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *KeyEvent
		want IntentType
	}{
		{"down", SpecialEvent(KeyDown), IntentNextProduct},
		{"space key", SpecialEvent(KeySpace), IntentNextProduct},
		{"space rune", RuneEvent(' '), IntentNextProduct},
		{"up", SpecialEvent(KeyUp), IntentPreviousProduct},
		{"right", SpecialEvent(KeyRight), IntentNextImage},
		{"left", SpecialEvent(KeyLeft), IntentPreviousImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(nil)
			o := m.Process(tt.ev)

			if o.Intent == nil || o.Intent.Type != tt.want {
				t.Fatalf("got %+v, want %v", o.Intent, tt.want)
			}
			if !tt.ev.DefaultPrevented() {
				t.Error("navigation key must suppress default action")
			}
			if o.Timer != TimerKeep || o.Buffer != 0 {
				t.Errorf("navigation must not touch buffer or timer: %+v", o)
			}
		})
	}
}

func TestMachine_NavigationKeepsBuffer(t *testing.T) {
	m := NewMachine(nil)
	feed(m, digits("34")...)

	got := feed(m, SpecialEvent(KeyDown), SpecialEvent(KeySpace))
	if len(got) != 2 || got[0].Type != IntentNextProduct || got[1].Type != IntentNextProduct {
		t.Fatalf("expected two NextProduct intents, got %v", got)
	}
	if m.Pending() != "34" {
		t.Errorf("pending = %q, want %q", m.Pending(), "34")
	}

	got = feed(m, SpecialEvent(KeyEnter))
	if len(got) != 1 || got[0].Position != 34 {
		t.Errorf("commit after navigation = %v, want jump to 34", got)
	}
}

func TestMachine_EscapeCancels(t *testing.T) {
	m := NewMachine(nil)
	feed(m, digits("56")...)

	o := m.Process(SpecialEvent(KeyEscape))
	if o.Intent != nil {
		t.Errorf("escape emitted %+v", o.Intent)
	}
	if o.Timer != TimerCancel || o.Buffer != CauseCancel {
		t.Errorf("escape outcome = %+v", o)
	}
	if m.State() != StateEmpty {
		t.Error("buffer not cleared")
	}

	// Escape on empty buffer is a no-op
	ev := SpecialEvent(KeyEscape)
	if o := m.Process(ev); o != (Outcome{}) {
		t.Errorf("escape on empty buffer = %+v, want zero outcome", o)
	}
	if ev.DefaultPrevented() {
		t.Error("escape must not suppress default action")
	}
}

func TestMachine_EnterOnEmptyBufferIgnored(t *testing.T) {
	m := NewMachine(nil)
	if o := m.Process(SpecialEvent(KeyEnter)); o != (Outcome{}) {
		t.Errorf("enter on empty buffer = %+v", o)
	}
}

func TestMachine_DigitArmsTimer(t *testing.T) {
	m := NewMachine(nil)
	for i, ev := range digits("123") {
		o := m.Process(ev)
		if o.Timer != TimerArm || o.Buffer != CauseAppend {
			t.Errorf("digit %d outcome = %+v", i, o)
		}
		if ev.DefaultPrevented() {
			t.Errorf("digit %d suppressed default action", i)
		}
	}
	if m.State() != StateAccumulating || m.Pending() != "123" {
		t.Errorf("state=%v pending=%q", m.State(), m.Pending())
	}
}

func TestMachine_Expire(t *testing.T) {
	m := NewMachine(nil)
	if m.Expire() {
		t.Error("expire on empty buffer reported a change")
	}

	feed(m, digits("9")...)
	if !m.Expire() {
		t.Fatal("expire did not drop pending digits")
	}
	if m.Pending() != "" {
		t.Errorf("pending = %q after expire", m.Pending())
	}

	// Fresh sequence after expiry
	got := feed(m, append(digits("4"), SpecialEvent(KeyEnter))...)
	if len(got) != 1 || got[0].Position != 4 {
		t.Errorf("got %v, want jump to 4", got)
	}
}

func TestMachine_OtherKeysIgnored(t *testing.T) {
	m := NewMachine(nil)
	feed(m, digits("2")...)

	for _, ev := range []*KeyEvent{
		RuneEvent('x'),
		SpecialEvent(KeyTab),
		SpecialEvent(KeyHome),
		NewKeyEvent(KeyRune, '5', ModCtrl),
	} {
		if o := m.Process(ev); o != (Outcome{}) {
			t.Errorf("event %+v produced %+v", ev, o)
		}
		if ev.DefaultPrevented() {
			t.Errorf("event %+v suppressed default action", ev)
		}
	}
	if m.Pending() != "2" {
		t.Errorf("pending = %q, want %q", m.Pending(), "2")
	}
}

func TestMachine_LongSequenceCommitsExactValue(t *testing.T) {
	m := NewMachine(nil)
	for i, ev := range digits("1234567890") {
		if o := m.Process(ev); o.Timer != TimerArm || o.Buffer != CauseAppend {
			t.Fatalf("digit %d = %+v, want arm and append", i, o)
		}
	}
	if m.Pending() != "1234567890" {
		t.Errorf("pending = %q", m.Pending())
	}

	got := feed(m, SpecialEvent(KeyEnter))
	if len(got) != 1 || got[0].Position != 1234567890 {
		t.Errorf("got %v, want jump to 1234567890", got)
	}
}

func TestMachine_OverflowCommitsRejectablePosition(t *testing.T) {
	tests := []struct {
		name   string
		digits string
	}{
		{"past int range", "99999999999999999999"},
		{"long leading ones", "1111111111111111111111111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(nil)
			feed(m, digits(tt.digits)...)
			if m.Pending() != tt.digits {
				t.Errorf("pending = %q, want every digit kept", m.Pending())
			}

			got := feed(m, SpecialEvent(KeyEnter))
			if len(got) != 1 || got[0].Position != PositionOverflow {
				t.Errorf("got %v, want jump to PositionOverflow", got)
			}
			if m.State() != StateEmpty {
				t.Error("buffer not cleared after commit")
			}
		})
	}
}

func TestMachine_CustomKeyTable(t *testing.T) {
	override, err := ParseKeyBindings(
		map[string]string{"space": "none", "enter": "none", "tab": "commit_jump"},
		map[string]string{"j": "next_product", "k": "previous_product"},
	)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMachine(MergeKeyTable(DefaultKeyTable(), override))

	if got := feed(m, RuneEvent('j'), RuneEvent('k')); len(got) != 2 ||
		got[0].Type != IntentNextProduct || got[1].Type != IntentPreviousProduct {
		t.Errorf("rune bindings = %v", got)
	}
	if got := feed(m, SpecialEvent(KeySpace)); len(got) != 0 {
		t.Errorf("unbound space emitted %v", got)
	}
	if got := feed(m, append(digits("8"), SpecialEvent(KeyEnter))...); len(got) != 0 {
		t.Errorf("unbound enter emitted %v", got)
	}
	if got := feed(m, SpecialEvent(KeyTab)); len(got) != 1 || got[0].Position != 8 {
		t.Errorf("tab commit = %v, want jump to 8", got)
	}
}
