// Package controller runs the session host keyboard handler.
//
// A Controller owns one input.Machine and the debounce timer for its digit
// buffer. Key events, timer expiry and shutdown are all received by a single
// select loop, so the machine is only ever touched from that goroutine.
package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/hostkeys/input"
)

// DefaultDebounce is the quiet period after the last digit before the buffer is dropped
const DefaultDebounce = 2000 * time.Millisecond

var (
	ErrNoSource       = errors.New("controller: key source is required")
	ErrNoDispatcher   = errors.New("controller: dispatcher is required")
	ErrAlreadyRunning = errors.New("controller: already running")
)

// KeySource delivers key presses in host order
// The returned release func ends the subscription and must be safe to call once
type KeySource interface {
	Subscribe() (<-chan *input.KeyEvent, func())
}

// Dispatcher receives navigation intents, typically the view controller
type Dispatcher interface {
	Dispatch(intent input.Intent)
}

// DispatchFunc adapts a function to Dispatcher
type DispatchFunc func(intent input.Intent)

func (f DispatchFunc) Dispatch(intent input.Intent) { f(intent) }

// BufferObserver is told about every digit buffer change, for pending-jump display
type BufferObserver interface {
	BufferChanged(pending string, cause input.BufferCause)
}

// OverlayProbe reports whether a blocking overlay is displayed
// Evaluated fresh on every key event
type OverlayProbe func() bool

// Config wires a Controller to its collaborators
type Config struct {
	Source     KeySource
	Dispatcher Dispatcher

	// Optional
	Overlay  OverlayProbe
	Observer BufferObserver
	KeyTable *input.KeyTable
	Debounce time.Duration
	Clock    clock.Clock
	Logger   *zerolog.Logger
}

// Controller converts key presses into navigation intents
type Controller struct {
	source     KeySource
	dispatcher Dispatcher
	overlay    OverlayProbe
	observer   BufferObserver
	debounce   time.Duration
	clock      clock.Clock
	log        zerolog.Logger

	machine *input.Machine
	running atomic.Bool

	// Debounce timer, owned by the Run goroutine
	timer   *clock.Timer
	expired <-chan time.Time
}

// New validates cfg and builds a Controller
func New(cfg Config) (*Controller, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNoDispatcher
	}

	c := &Controller{
		source:     cfg.Source,
		dispatcher: cfg.Dispatcher,
		overlay:    cfg.Overlay,
		observer:   cfg.Observer,
		debounce:   cfg.Debounce,
		clock:      cfg.Clock,
		log:        zerolog.Nop(),
		machine:    input.NewMachine(cfg.KeyTable),
	}
	if c.debounce <= 0 {
		c.debounce = DefaultDebounce
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if cfg.Logger != nil {
		c.log = cfg.Logger.With().Str("component", "controller").Logger()
	}
	return c, nil
}

// Run subscribes to the key source and handles events until ctx is done or the source closes
// On return the subscription is released and no timer is pending, nothing is emitted afterwards
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	events, release := c.source.Subscribe()
	defer release()
	defer c.stopTimer()
	defer c.machine.Reset()

	c.log.Debug().Dur("debounce", c.debounce).Msg("key input started")

	for {
		select {
		case <-ctx.Done():
			c.log.Debug().Msg("key input stopped")
			return nil

		case ev, ok := <-events:
			if !ok {
				c.log.Debug().Msg("key source closed")
				return nil
			}
			// Shutdown may race an already delivered event
			if ctx.Err() != nil {
				return nil
			}
			c.handle(ev)

		case <-c.expired:
			c.timer, c.expired = nil, nil
			if ctx.Err() != nil {
				return nil
			}
			if c.machine.Expire() {
				c.log.Debug().Msg("jump buffer expired")
				c.notify(input.CauseExpire)
			}
		}
	}
}

// Running reports whether Run is active
func (c *Controller) Running() bool {
	return c.running.Load()
}

func (c *Controller) handle(ev *input.KeyEvent) {
	if ev == nil {
		return
	}
	if c.overlay != nil && c.overlay() {
		return
	}

	out := c.machine.Process(ev)

	switch out.Timer {
	case input.TimerArm:
		c.armTimer()
	case input.TimerCancel:
		c.stopTimer()
	}

	if out.Intent != nil {
		c.log.Debug().
			Str("event", out.Intent.EventName()).
			Int("position", out.Intent.Position).
			Msg("intent")
		c.dispatcher.Dispatch(*out.Intent)
	}

	if out.Buffer != 0 {
		c.notify(out.Buffer)
	}
}

// armTimer replaces any pending timer with a fresh window
// Only the newest timer's channel is selected on, so a stopped timer can never be observed
func (c *Controller) armTimer() {
	c.stopTimer()
	c.timer = c.clock.Timer(c.debounce)
	c.expired = c.timer.C
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer, c.expired = nil, nil
}

func (c *Controller) notify(cause input.BufferCause) {
	if c.observer != nil {
		c.observer.BufferChanged(c.machine.Pending(), cause)
	}
}
