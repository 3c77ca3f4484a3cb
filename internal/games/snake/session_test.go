package snake

import (
	"math"
	"testing"
	"time"
)

const frame = 100 * time.Millisecond

type eventRecorder struct {
	eats, levels, deaths int
	lastScore            int
}

func (r *eventRecorder) OnEat(Position)    { r.eats++ }
func (r *eventRecorder) OnLevelUp(int)     { r.levels++ }
func (r *eventRecorder) OnDeath(score int) { r.deaths++; r.lastScore = score }

func newTestSession(opts Options, seed int64) *Session {
	return NewSession(SessionConfig{Options: opts, Seed: seed})
}

func TestSessionStartsReady(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	if s.Status() != StatusReady {
		t.Fatalf("status = %v, want ready", s.Status())
	}
	if res := s.Advance(time.Second); res != nil {
		t.Errorf("ready session ticked: %v", res)
	}
}

func TestSessionSteerStarts(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	s.Steer(Up)
	if s.Status() != StatusPlaying {
		t.Fatalf("status = %v, want playing", s.Status())
	}
	if s.queue.Len() != 1 {
		t.Errorf("queued = %d, want 1", s.queue.Len())
	}
}

func TestSessionFrameCap(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	s.Start()

	// One long stall counts as 100ms, less than a tick at 8/s.
	if res := s.Advance(5 * time.Second); len(res) != 0 {
		t.Fatalf("ticks = %d, want 0", len(res))
	}
	if got := s.Interpolation(); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("interpolation = %v, want 0.8", got)
	}
	if res := s.Advance(frame); len(res) != 1 {
		t.Fatalf("ticks = %d, want 1", len(res))
	}
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", s.Ticks())
	}
}

func TestSessionMaxSteps(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseSpeed = 100
	s := NewSession(SessionConfig{Options: opts, Seed: 1, MaxSteps: 5})
	s.Start()

	if res := s.Advance(frame); len(res) != 5 {
		t.Fatalf("ticks = %d, want 5", len(res))
	}
}

func TestSessionOneDirectionPerTick(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	s.Start()
	s.Steer(Up)
	s.Steer(Left)

	s.Advance(frame)
	s.Advance(frame) // first tick

	if s.Engine().Direction() != Up {
		t.Fatalf("direction = %v, want up", s.Engine().Direction())
	}
	if s.queue.Len() != 1 {
		t.Errorf("queued = %d, want 1", s.queue.Len())
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	s.Start()
	s.TogglePause()
	if s.Status() != StatusPaused {
		t.Fatalf("status = %v, want paused", s.Status())
	}

	s.Steer(Up)
	if s.queue.Len() != 0 {
		t.Error("steering while paused should be ignored")
	}
	if res := s.Advance(frame); res != nil {
		t.Error("paused session ticked")
	}

	s.TogglePause()
	if s.Status() != StatusPlaying {
		t.Fatalf("status = %v, want playing", s.Status())
	}
}

func TestSessionDeath(t *testing.T) {
	opts := Options{Grid: 8, BaseSpeed: 8}
	s := newTestSession(opts, 1)
	rec := &eventRecorder{}
	s.AddListener(rec)
	s.Steer(Up)

	for range 200 {
		if s.Status() == StatusOver {
			break
		}
		s.Advance(frame)
	}

	if s.Status() != StatusOver {
		t.Fatalf("status = %v, want game_over", s.Status())
	}
	if rec.deaths != 1 {
		t.Errorf("deaths = %d, want 1", rec.deaths)
	}
	if rec.lastScore != s.Engine().Score() {
		t.Errorf("death score = %d, want %d", rec.lastScore, s.Engine().Score())
	}
	if res := s.Advance(frame); res != nil {
		t.Error("finished session ticked")
	}
}

func TestSessionListenerEvents(t *testing.T) {
	opts := Options{Grid: 10, BaseSpeed: 8, Wrap: true, Powerups: true}
	s := newTestSession(opts, 3)
	rec := &eventRecorder{}
	s.AddListener(rec)
	s.Start()

	score := 0
	for range 3000 {
		if s.Status() != StatusPlaying {
			break
		}
		if d, ok := steer(s.Engine()); ok {
			s.Steer(d)
		}
		for _, res := range s.Advance(frame) {
			if res.Ate {
				score++
			}
		}
	}

	if rec.eats != score {
		t.Errorf("OnEat calls = %d, want %d", rec.eats, score)
	}
	if rec.eats == 0 {
		t.Error("expected at least one meal")
	}
	if s.Engine().Level() > 1 && rec.levels != s.Engine().Level()-1 {
		t.Errorf("OnLevelUp calls = %d, want %d", rec.levels, s.Engine().Level()-1)
	}
}

func TestSessionRecordingReplays(t *testing.T) {
	opts := Options{Grid: 12, BaseSpeed: 8, Wrap: true, Powerups: true}
	s := newTestSession(opts, 5)
	s.Start()

	for i := range 600 {
		if s.Status() != StatusPlaying {
			break
		}
		if i%3 == 0 {
			if d, ok := steer(s.Engine()); ok {
				s.Steer(d)
			}
		}
		s.Advance(frame)
	}

	rec := s.Recording()
	if rec.Seed != 5 || rec.Ticks != s.Ticks() || len(rec.Inputs) == 0 {
		t.Fatalf("unexpected recording: seed=%d ticks=%d inputs=%d", rec.Seed, rec.Ticks, len(rec.Inputs))
	}

	got := Replay(rec).Snapshot()
	if !got.Equal(s.Engine().Snapshot()) {
		t.Errorf("replay diverged:\n got %+v\nwant %+v", got, s.Engine().Snapshot())
	}
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	s.Start()
	s.Steer(Down)
	s.Advance(frame)
	s.Advance(frame)

	s.Restart(99)

	if s.Status() != StatusPlaying || s.Seed() != 99 || s.Ticks() != 0 {
		t.Errorf("after restart: status=%v seed=%d ticks=%d", s.Status(), s.Seed(), s.Ticks())
	}
	if len(s.Recording().Inputs) != 0 {
		t.Error("recording not cleared")
	}
	if s.Engine().Len() != 3 {
		t.Errorf("len = %d, want 3", s.Engine().Len())
	}
}

func TestSessionReconfigure(t *testing.T) {
	s := newTestSession(DefaultOptions(), 1)
	s.Start()

	opts := Options{Grid: 15, BaseSpeed: 10, Wrap: true}
	s.Reconfigure(opts, 3, 2)

	if s.Status() != StatusReady {
		t.Errorf("status = %v, want ready", s.Status())
	}
	if s.Options() != opts || s.Engine().Grid() != 15 || s.maxSteps != 3 {
		t.Errorf("options not applied: %+v grid=%d steps=%d", s.Options(), s.Engine().Grid(), s.maxSteps)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusReady:   "ready",
		StatusPlaying: "playing",
		StatusPaused:  "paused",
		StatusOver:    "game_over",
		Status(42):    "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
