// Package audio synthesizes the game's sound cues with beep and plays
// them in response to engine events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the output rate for all cues.
const SampleRate = beep.SampleRate(44100)

// noteGain is the level of a single note before the master volume.
const noteGain = 0.12

// Note attack and release keep cue edges from clicking.
const (
	noteAttack  = 5 * time.Millisecond
	noteRelease = 20 * time.Millisecond
)

// triangle generates a triangle wave for a fixed number of samples.
type triangle struct {
	freq     float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewTriangle creates a triangle oscillator at freq Hz lasting duration.
func NewTriangle(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &triangle{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *triangle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		// Falls from 1 to -1 over the first half period and rises back.
		val := 4*math.Abs(o.phase-0.5) - 1
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *triangle) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which lasts duration, with attack and release ramps.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			gain = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol. math.Log2(0) is -Inf, so zero is
// handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one enveloped triangle beep at the per-note gain.
func note(freq float64, duration time.Duration) beep.Streamer {
	osc := NewTriangle(freq, duration, SampleRate)
	shaped := NewEnvelope(osc, duration, noteAttack, noteRelease, SampleRate)
	return newVolume(shaped, noteGain)
}

// Cue identifies a sound effect.
type Cue int

const (
	CueEat Cue = iota
	CueLevelUp
	CueDeath
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueLevelUp:
		return "level_up"
	case CueDeath:
		return "death"
	default:
		return "unknown"
	}
}

// NewCue builds the streamer for c at the given master volume.
func NewCue(c Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueEat:
		s = note(620, 80*time.Millisecond)
	case CueDeath:
		s = note(140, 250*time.Millisecond)
	case CueLevelUp:
		// The second note starts before the first one ends.
		s = beep.Mix(
			note(780, 150*time.Millisecond),
			beep.Seq(beep.Silence(SampleRate.N(110*time.Millisecond)), note(980, 120*time.Millisecond)),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
