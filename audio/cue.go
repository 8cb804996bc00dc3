// Package audio plays short audible cues for jump input feedback.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/hostkeys/input"
)

const (
	sampleRate = beep.SampleRate(48000)
	cueVolume  = 0.25
)

// Cue identifies a feedback sound
type Cue uint8

const (
	CueNone   Cue = iota
	CueCommit     // Jump committed
	CueCancel     // Buffer dropped with Escape
	CueExpire     // Buffer dropped by debounce timeout
)

var cueNotes = map[Cue][]note{
	CueCommit: {{880, 60 * time.Millisecond, WaveSine}, {1320, 80 * time.Millisecond, WaveSine}},
	CueCancel: {{440, 60 * time.Millisecond, WaveSine}, {330, 80 * time.Millisecond, WaveSine}},
	CueExpire: {{220, 120 * time.Millisecond, WaveSquare}},
}

// CueForCause maps a buffer change to its cue, appends are silent
func CueForCause(cause input.BufferCause) Cue {
	switch cause {
	case input.CauseCommit:
		return CueCommit
	case input.CauseCancel:
		return CueCancel
	case input.CauseExpire:
		return CueExpire
	}
	return CueNone
}

// CuePlayer manages the speaker and plays cues through a shared mixer
// All methods are safe to call before Initialize or after Cleanup, they do nothing
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewCuePlayer creates an uninitialized player
func NewCuePlayer() *CuePlayer {
	return &CuePlayer{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	p.initialized = false
}

// SetMuted silences future cues without releasing the speaker
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Play queues a cue
func (p *CuePlayer) Play(c Cue) {
	notes, ok := cueNotes[c]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	speaker.Lock()
	p.mixer.Add(renderNotes(notes, cueVolume, sampleRate))
	speaker.Unlock()
}
