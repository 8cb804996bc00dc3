// Package shortcut handles global page navigation shortcuts.
//
// Ctrl (or Meta) + Shift + letter moves between top-level pages. Shortcuts are
// ignored while the user is typing into a text field.
package shortcut

import (
	"unicode"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/hostkeys/input"
)

// DefaultRoutes returns the built-in shortcut letters and their page paths
func DefaultRoutes() map[rune]string {
	return map[rune]string{
		'P': "/products",
		'S': "/sessions",
	}
}

// Navigator switches the host to another page
type Navigator interface {
	Navigate(path string)
}

// NavigateFunc adapts a function to Navigator
type NavigateFunc func(path string)

func (f NavigateFunc) Navigate(path string) { f(path) }

// TypingProbe reports whether a text field has focus
type TypingProbe func() bool

// Router matches global shortcuts
type Router struct {
	routes       map[rune]string
	requireShift bool
	typing       TypingProbe
	nav          Navigator
	log          zerolog.Logger
}

// Option configures a Router
type Option func(*Router)

// WithRoutes replaces the route table, letters are matched case-insensitively
func WithRoutes(routes map[rune]string) Option {
	return func(r *Router) {
		r.routes = make(map[rune]string, len(routes))
		for k, v := range routes {
			r.routes[unicode.ToUpper(k)] = v
		}
	}
}

// WithRequireShift controls whether Shift must accompany the modifier
// Legacy terminals cannot report Shift with Ctrl+letter
func WithRequireShift(require bool) Option {
	return func(r *Router) { r.requireShift = require }
}

// WithTypingProbe installs the text-focus check
func WithTypingProbe(p TypingProbe) Option {
	return func(r *Router) { r.typing = p }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.log = l.With().Str("component", "shortcut").Logger() }
}

// NewRouter creates a Router with DefaultRoutes
func NewRouter(nav Navigator, opts ...Option) *Router {
	r := &Router{
		routes:       DefaultRoutes(),
		requireShift: true,
		nav:          nav,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle navigates if ev is a shortcut, returns true when consumed
func (r *Router) Handle(ev *input.KeyEvent) bool {
	if ev == nil || ev.Key != input.KeyRune {
		return false
	}
	if r.typing != nil && r.typing() {
		return false
	}
	if ev.Mod&(input.ModCtrl|input.ModMeta) == 0 {
		return false
	}
	// A control code cannot carry Shift, so it satisfies the requirement
	if r.requireShift && ev.Mod&input.ModShift == 0 && !unicode.IsUpper(ev.Rune) && !ev.ShiftUnknown {
		return false
	}

	path, ok := r.routes[unicode.ToUpper(ev.Rune)]
	if !ok {
		return false
	}

	ev.PreventDefault()
	r.log.Debug().Str("path", path).Msg("navigate")
	if r.nav != nil {
		r.nav.Navigate(path)
	}
	return true
}

// Routes returns a copy of the route table
func (r *Router) Routes() map[rune]string {
	c := make(map[rune]string, len(r.routes))
	for k, v := range r.routes {
		c[k] = v
	}
	return c
}
