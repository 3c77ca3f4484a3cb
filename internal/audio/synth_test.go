package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// drain streams s to the end and returns all samples.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestTriangleShape(t *testing.T) {
	// 4 samples per period at 1 kHz / 4 kHz: 1, 0, -1, 0.
	osc := NewTriangle(1000, 2*time.Millisecond, beep.SampleRate(4000))
	samples := drain(osc)

	if len(samples) != 8 {
		t.Fatalf("samples = %d, want 8", len(samples))
	}
	want := []float64{1, 0, -1, 0}
	for i, s := range samples {
		if math.Abs(s[0]-want[i%4]) > 1e-9 || s[0] != s[1] {
			t.Errorf("sample %d = %v, want %v on both channels", i, s, want[i%4])
		}
	}
	if osc.Err() != nil {
		t.Errorf("unexpected error: %v", osc.Err())
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	dur := 100 * time.Millisecond
	env := NewEnvelope(NewTriangle(0, dur, rate), dur, 10*time.Millisecond, 10*time.Millisecond, rate)
	samples := drain(env)

	if len(samples) != 100 {
		t.Fatalf("samples = %d, want 100", len(samples))
	}
	// A 0 Hz triangle is a constant 1, so the samples are the gain curve.
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain sample = %v, want 1", samples[50][0])
	}
	if last := samples[99][0]; last <= 0 || last > 0.11 {
		t.Errorf("last sample = %v, want a small positive value", last)
	}
}

func TestCueDurations(t *testing.T) {
	tests := []struct {
		cue  Cue
		want time.Duration
	}{
		{CueEat, 80 * time.Millisecond},
		{CueDeath, 250 * time.Millisecond},
		{CueLevelUp, 230 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			samples := drain(NewCue(tt.cue, 1))
			// Mixed cues may pad their final buffer with silence.
			want := SampleRate.N(tt.want)
			if got := len(samples); got < want || got >= want+512 {
				t.Errorf("length = %d samples, want %d", got, want)
			}
			peak := 0.0
			for _, s := range samples {
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak == 0 || peak > 2*noteGain+1e-9 {
				t.Errorf("peak = %v", peak)
			}
		})
	}
}

func TestCueSilentAtZeroVolume(t *testing.T) {
	for _, s := range drain(NewCue(CueEat, 0)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatal("zero volume should be silent")
		}
	}
}

func TestPlayerCounts(t *testing.T) {
	p := NewPlayer(config.AudioSettings{Volume: 0.6})

	p.OnEat(snake.Position{})
	p.OnEat(snake.Position{})
	p.OnLevelUp(2)
	p.OnDeath(10)

	if p.Played(CueEat) != 2 || p.Played(CueLevelUp) != 1 || p.Played(CueDeath) != 1 {
		t.Errorf("played eat=%d level=%d death=%d", p.Played(CueEat), p.Played(CueLevelUp), p.Played(CueDeath))
	}
}

func TestPlayerMuteAndVolume(t *testing.T) {
	p := NewPlayer(config.AudioSettings{Volume: 5, Muted: true})
	if p.Volume() != 1 {
		t.Errorf("volume = %v, want clamped 1", p.Volume())
	}

	p.Play(CueEat)
	if p.Played(CueEat) != 0 {
		t.Error("muted player should not play")
	}

	p.SetMuted(false)
	p.Play(CueEat)
	if p.Played(CueEat) != 1 {
		t.Error("unmuted player should play")
	}

	p.Apply(config.AudioSettings{Volume: 0})
	p.Play(CueEat)
	if p.Played(CueEat) != 1 {
		t.Error("zero volume should skip playback")
	}

	p.Close()
	p.Apply(config.AudioSettings{Volume: 1})
	p.Play(CueEat)
	if p.Played(CueEat) != 1 {
		t.Error("closed player should not play")
	}
}
