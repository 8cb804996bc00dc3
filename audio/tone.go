package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the tone shape of a note
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// sample returns the wave value at phase in [0, 1)
func (w WaveType) sample(phase float64) float64 {
	if w == WaveSquare {
		if phase < 0.5 {
			return 1
		}
		return -1
	}
	return math.Sin(2 * math.Pi * phase)
}

// tone renders n as a finite stream whose last quarter ramps linearly to silence
func tone(n note, rate beep.SampleRate) beep.Streamer {
	total := rate.N(n.duration)
	fadeFrom := total - total/4
	step := n.freq / float64(rate)

	var phase float64
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < total; i++ {
			gain := 1.0
			if pos >= fadeFrom {
				gain = float64(total-pos) / float64(total-fadeFrom)
			}
			v := n.wave.sample(phase) * gain
			samples[i][0], samples[i][1] = v, v

			phase += step
			phase -= math.Floor(phase)
			pos++
		}
		return i, true
	})
}

// newVolume wraps s with a linear gain, 0 is silent
// math.Log2(0) is -Inf, so zero volume is handled explicitly
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one tone of a cue
type note struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}

// renderNotes builds a streamer playing notes back to back
func renderNotes(notes []note, vol float64, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(n, rate))
	}
	return newVolume(beep.Seq(parts...), vol)
}
