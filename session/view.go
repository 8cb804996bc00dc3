// Package session is the host-side view controller for a product-browsing session.
//
// View receives navigation intents and owns the range checks the key handler
// deliberately leaves out: positions outside the catalogue are rejected here.
package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/hostkeys/input"
)

// Product is one catalogue entry shown by the host
type Product struct {
	Name   string
	Images []string
}

// Snapshot is a consistent copy of the view state for rendering
type Snapshot struct {
	Product      int // 0-based index into the catalogue
	Image        int // 0-based index into the current product's images
	ProductCount int
	ImageCount   int
	ProductName  string
	ImageName    string
	ModalOpen    bool
	LastEvent    string
	Rejected     string // Reason the last intent was ignored, empty if applied
}

// View is a Dispatcher for input intents
// Safe for concurrent use: intents arrive on the controller goroutine, snapshots are read by the renderer
type View struct {
	mu       sync.Mutex
	products []Product
	product  int
	image    int
	modal    bool
	last     string
	rejected string
	log      zerolog.Logger
}

// NewView creates a view positioned at the first product
func NewView(products []Product, logger zerolog.Logger) *View {
	return &View{
		products: products,
		log:      logger.With().Str("component", "session").Logger(),
	}
}

// Dispatch applies an intent
// Sequential steps clamp at the ends, out-of-range jumps are rejected and logged
func (v *View) Dispatch(intent input.Intent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.last = intent.EventName()
	v.rejected = ""

	if len(v.products) == 0 {
		v.reject(intent, "empty catalogue")
		return
	}

	switch intent.Type {
	case input.IntentNextProduct:
		if v.product+1 < len(v.products) {
			v.setProduct(v.product + 1)
		}
	case input.IntentPreviousProduct:
		if v.product > 0 {
			v.setProduct(v.product - 1)
		}
	case input.IntentNextImage:
		if v.image+1 < len(v.products[v.product].Images) {
			v.image++
		}
	case input.IntentPreviousImage:
		if v.image > 0 {
			v.image--
		}
	case input.IntentJumpToProduct:
		if intent.Position < 1 || intent.Position > len(v.products) {
			v.reject(intent, fmt.Sprintf("position %d out of range 1..%d", intent.Position, len(v.products)))
			return
		}
		v.setProduct(intent.Position - 1)
	default:
		v.reject(intent, "unknown intent")
		return
	}

	v.log.Debug().
		Str("event", intent.EventName()).
		Int("product", v.product+1).
		Int("image", v.image+1).
		Msg("view updated")
}

// SetModal shows or hides the blocking edit modal
func (v *View) SetModal(open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = open
}

// ToggleModal flips the edit modal and returns the new state
func (v *View) ToggleModal() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = !v.modal
	return v.modal
}

// ModalOpen reports whether the blocking edit modal is shown, used as the key handler's overlay probe
func (v *View) ModalOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.modal
}

// Snapshot returns the current state
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		Product:      v.product,
		Image:        v.image,
		ProductCount: len(v.products),
		ModalOpen:    v.modal,
		LastEvent:    v.last,
		Rejected:     v.rejected,
	}
	if len(v.products) > 0 {
		p := v.products[v.product]
		s.ProductName = p.Name
		s.ImageCount = len(p.Images)
		if v.image < len(p.Images) {
			s.ImageName = p.Images[v.image]
		}
	}
	return s
}

func (v *View) setProduct(i int) {
	v.product = i
	v.image = 0
}

func (v *View) reject(intent input.Intent, reason string) {
	v.rejected = reason
	v.log.Warn().
		Str("event", intent.EventName()).
		Int("position", intent.Position).
		Str("reason", reason).
		Msg("intent rejected")
}

// SampleCatalogue generates n products with a few images each
func SampleCatalogue(n int) []Product {
	products := make([]Product, n)
	for i := range products {
		images := make([]string, 1+i%4)
		for j := range images {
			images[j] = fmt.Sprintf("product-%03d-%d.jpg", i+1, j+1)
		}
		products[i] = Product{
			Name:   fmt.Sprintf("Product %d", i+1),
			Images: images,
		}
	}
	return products
}
