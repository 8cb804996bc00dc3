package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/hostkeys/input"
)

func newTestView(n int) (*View, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewView(SampleCatalogue(n), zerolog.New(&buf)), &buf
}

func TestView_SequentialNavigationClamps(t *testing.T) {
	v, _ := newTestView(3)

	v.Dispatch(input.Intent{Type: input.IntentPreviousProduct})
	if s := v.Snapshot(); s.Product != 0 {
		t.Errorf("previous at start moved to %d", s.Product)
	}

	for i := 0; i < 5; i++ {
		v.Dispatch(input.Intent{Type: input.IntentNextProduct})
	}
	if s := v.Snapshot(); s.Product != 2 || s.ProductName != "Product 3" {
		t.Errorf("next past end = %d (%s), want 2", s.Product, s.ProductName)
	}
}

func TestView_ImageNavigation(t *testing.T) {
	// Product 3 has three images
	v, _ := newTestView(3)
	v.Dispatch(input.Intent{Type: input.IntentJumpToProduct, Position: 3})

	for i := 0; i < 4; i++ {
		v.Dispatch(input.Intent{Type: input.IntentNextImage})
	}
	s := v.Snapshot()
	if s.Image != 2 || s.ImageCount != 3 || s.ImageName != "product-003-3.jpg" {
		t.Errorf("snapshot = %+v", s)
	}

	v.Dispatch(input.Intent{Type: input.IntentPreviousImage})
	if s := v.Snapshot(); s.Image != 1 {
		t.Errorf("image = %d, want 1", s.Image)
	}

	// Changing product resets the image
	v.Dispatch(input.Intent{Type: input.IntentPreviousProduct})
	if s := v.Snapshot(); s.Image != 0 || s.Product != 1 {
		t.Errorf("after product change: %+v", s)
	}
}

func TestView_JumpRange(t *testing.T) {
	v, logs := newTestView(10)

	v.Dispatch(input.Intent{Type: input.IntentJumpToProduct, Position: 7})
	if s := v.Snapshot(); s.Product != 6 || s.Rejected != "" || s.LastEvent != "jump_to_product" {
		t.Errorf("jump to 7: %+v", s)
	}

	for _, pos := range []int{0, 11, 999, input.PositionOverflow} {
		v.Dispatch(input.Intent{Type: input.IntentJumpToProduct, Position: pos})
		s := v.Snapshot()
		if s.Product != 6 {
			t.Errorf("jump to %d moved to %d", pos, s.Product)
		}
		if !strings.Contains(s.Rejected, "out of range") {
			t.Errorf("jump to %d: rejected = %q", pos, s.Rejected)
		}
	}
	if !strings.Contains(logs.String(), "intent rejected") {
		t.Error("rejection not logged")
	}
}

func TestView_EmptyCatalogue(t *testing.T) {
	v, _ := newTestView(0)
	v.Dispatch(input.Intent{Type: input.IntentNextProduct})

	s := v.Snapshot()
	if s.Rejected == "" || s.ProductName != "" {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestView_Modal(t *testing.T) {
	v, _ := newTestView(1)
	if v.ModalOpen() {
		t.Fatal("modal open at start")
	}
	if !v.ToggleModal() || !v.ModalOpen() {
		t.Error("toggle did not open modal")
	}
	v.SetModal(false)
	if v.Snapshot().ModalOpen {
		t.Error("SetModal(false) ignored")
	}
}
