package snake

import "time"

const (
	// maxFrameDelta caps how much time a single frame may feed into the
	// accumulator, so a stalled host does not fast-forward the game.
	maxFrameDelta = 0.1
	// DefaultMaxSteps bounds the ticks run per frame during catch-up.
	DefaultMaxSteps = 5
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusPaused
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Listener receives game events as ticks run. Audio cues, HUD flashes and
// score keeping hook in here.
type Listener interface {
	OnEat(head Position)
	OnLevelUp(level int)
	OnDeath(score int)
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Options  Options
	Seed     int64
	MaxSteps int // Ticks per Advance call; DefaultMaxSteps if <= 0
}

// Session runs an Engine at a fixed tick rate from a host that calls
// Advance once per frame with the elapsed time.
type Session struct {
	opts      Options
	seed      int64
	maxSteps  int
	engine    *Engine
	queue     *DirectionQueue
	status    Status
	acc       float64 // Seconds not yet consumed by ticks
	ticks     uint64
	inputs    []Input
	listeners []Listener
}

// NewSession creates a session in the ready state.
func NewSession(cfg SessionConfig) *Session {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	s := &Session{
		opts:     cfg.Options,
		maxSteps: cfg.MaxSteps,
		queue:    NewDirectionQueue(),
	}
	s.load(cfg.Seed)
	s.status = StatusReady
	return s
}

func (s *Session) load(seed int64) {
	s.seed = seed
	s.engine = New(s.opts.Config(seed))
	s.queue.Clear()
	s.acc = 0
	s.ticks = 0
	s.inputs = nil
}

// AddListener registers l for game events.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Start begins play from the ready state.
func (s *Session) Start() {
	if s.status != StatusReady {
		return
	}
	s.queue.Clear()
	s.status = StatusPlaying
}

// Restart discards the current game and starts a new one with seed.
func (s *Session) Restart(seed int64) {
	s.load(seed)
	s.status = StatusPlaying
}

// Reconfigure replaces the rules and returns to the ready state with a
// new game.
func (s *Session) Reconfigure(opts Options, maxSteps int, seed int64) {
	s.opts = opts
	if maxSteps > 0 {
		s.maxSteps = maxSteps
	}
	s.load(seed)
	s.status = StatusReady
}

// TogglePause switches between playing and paused.
func (s *Session) TogglePause() {
	switch s.status {
	case StatusPlaying:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusPlaying
	}
}

// Steer buffers a turn. Steering from the ready state starts the game.
func (s *Session) Steer(dir Direction) {
	switch s.status {
	case StatusReady:
		s.Start()
	case StatusPlaying:
	default:
		return
	}
	s.queue.Push(dir)
}

// Advance feeds dt of host time into the session and runs as many ticks
// as are due, up to the per-frame cap. It returns the tick results.
func (s *Session) Advance(dt time.Duration) []TickResult {
	if s.status != StatusPlaying {
		return nil
	}

	delta := min(dt.Seconds(), maxFrameDelta)
	if delta > 0 {
		s.acc += delta
	}

	tickDuration := 1 / s.engine.Speed()
	var results []TickResult
	for steps := 0; s.acc >= tickDuration && steps < s.maxSteps; steps++ {
		if dir, ok := s.queue.Pop(); ok {
			s.engine.QueueDirection(dir)
			s.inputs = append(s.inputs, Input{Tick: s.ticks, Dir: dir})
		}
		res := s.engine.Tick()
		s.ticks++
		s.acc -= tickDuration
		results = append(results, res)
		s.notify(res)

		if res.Died {
			s.status = StatusOver
			s.acc = 0
			break
		}
	}
	return results
}

func (s *Session) notify(res TickResult) {
	for _, l := range s.listeners {
		if res.Ate {
			l.OnEat(s.engine.Head())
		}
		if res.Leveled {
			l.OnLevelUp(s.engine.Level())
		}
		if res.Died {
			l.OnDeath(s.engine.Score())
		}
	}
}

// Interpolation is the fraction of the next tick already elapsed. It is
// only meant for smoothing animation.
func (s *Session) Interpolation() float64 {
	return s.acc * s.engine.Speed()
}

// Engine returns the running engine.
func (s *Session) Engine() *Engine { return s.engine }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Seed returns the seed of the current game.
func (s *Session) Seed() int64 { return s.seed }

// Options returns the rules of the current game.
func (s *Session) Options() Options { return s.opts }

// Ticks returns how many ticks the current game has run.
func (s *Session) Ticks() uint64 { return s.ticks }

// Recording returns a replayable record of the current game so far.
func (s *Session) Recording() Recording {
	inputs := make([]Input, len(s.inputs))
	copy(inputs, s.inputs)
	return Recording{
		Seed:    s.seed,
		Options: s.opts,
		Inputs:  inputs,
		Ticks:   s.ticks,
	}
}
