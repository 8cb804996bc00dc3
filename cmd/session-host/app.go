package main

import (
	"sync"

	"github.com/lixenwraith/hostkeys/audio"
	"github.com/lixenwraith/hostkeys/input"
	"github.com/lixenwraith/hostkeys/keysource"
	"github.com/lixenwraith/hostkeys/session"
	"github.com/lixenwraith/hostkeys/shortcut"
)

// jumpDisplay is the controller's BufferObserver: keeps the pending digits for the status line
type jumpDisplay struct {
	mu      sync.Mutex
	pending string
	cause   input.BufferCause
	cues    *audio.CuePlayer
	wake    func()
}

func (d *jumpDisplay) BufferChanged(pending string, cause input.BufferCause) {
	d.mu.Lock()
	d.pending = pending
	d.cause = cause
	d.mu.Unlock()

	if d.cues != nil {
		d.cues.Play(audio.CueForCause(cause))
	}
	if d.wake != nil {
		d.wake()
	}
}

func (d *jumpDisplay) Pending() (string, input.BufferCause) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.cause
}

// app owns the main-goroutine state: current page and the edit modal's text field
type app struct {
	view   *session.View
	keys   *keysource.Broadcaster
	router *shortcut.Router
	jump   *jumpDisplay

	page   string
	edited map[int]string // product index → name typed in the modal
	field  []rune
}

func newApp(view *session.View, keys *keysource.Broadcaster, jump *jumpDisplay) *app {
	a := &app{
		view:   view,
		keys:   keys,
		jump:   jump,
		page:   "/sessions",
		edited: make(map[int]string),
	}
	return a
}

// Navigate implements shortcut.Navigator
func (a *app) Navigate(path string) {
	a.page = path
}

// handleKey routes one key press, returns true to quit
func (a *app) handleKey(ev *input.KeyEvent) bool {
	if ev.Key == input.KeyRune && ev.Mod&input.ModCtrl != 0 && (ev.Rune == 'c' || ev.Rune == 'q') {
		return true
	}

	if a.router != nil && a.router.Handle(ev) {
		return false
	}

	// The modal owns the keyboard while shown
	if a.view.ModalOpen() {
		a.editModal(ev)
		return false
	}

	a.keys.Publish(ev)

	if ev.Key == input.KeyRune && ev.Mod == input.ModNone && ev.Rune == 'e' {
		a.field = []rune(a.view.Snapshot().ProductName)
		a.view.SetModal(true)
	}
	return false
}

func (a *app) editModal(ev *input.KeyEvent) {
	switch ev.Key {
	case input.KeyEscape:
		a.field = a.field[:0]
		a.view.SetModal(false)
	case input.KeyEnter:
		a.edited[a.view.Snapshot().Product] = string(a.field)
		a.field = a.field[:0]
		a.view.SetModal(false)
	case input.KeyBackspace:
		if len(a.field) > 0 {
			a.field = a.field[:len(a.field)-1]
		}
	case input.KeyRune, input.KeySpace:
		if ev.Mod&(input.ModCtrl|input.ModAlt|input.ModMeta) == 0 {
			a.field = append(a.field, ev.Rune)
		}
	}
}
