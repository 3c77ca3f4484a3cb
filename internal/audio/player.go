package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Player plays cues for game events. Without an audio device it only
// counts cues. It implements snake.Listener.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	output  bool // Mixer is attached to the speaker
	volume  float64
	muted   bool
	played  map[Cue]int
	enabled bool
}

var _ snake.Listener = (*Player)(nil)

// NewPlayer creates a player that is not connected to any device.
func NewPlayer(cfg config.AudioSettings) *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		volume:  config.SanitizeVolume(cfg.Volume),
		muted:   cfg.Muted,
		played:  make(map[Cue]int),
		enabled: true,
	}
}

// Open initializes the speaker and attaches the player to it. Failure is
// logged and the player stays silent.
func Open(cfg config.AudioSettings, logger *log.Logger) *Player {
	p := NewPlayer(cfg)
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return p
	}
	speaker.Play(p.mixer)
	p.output = true
	logger.Debug("audio initialized", "rate", int(SampleRate))
	return p
}

// Close stops all playing cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.output {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
		speaker.Clear()
		p.output = false
	}
	p.enabled = false
}

// Apply updates volume and mute from settings.
func (p *Player) Apply(cfg config.AudioSettings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = config.SanitizeVolume(cfg.Volume)
	p.muted = cfg.Muted
}

// SetMuted toggles sound on or off.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether sound is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Volume returns the master volume in [0, 1].
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play queues cue c on the mixer.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.muted || p.volume <= 0 {
		return
	}
	s := NewCue(c, p.volume)
	if s == nil {
		return
	}
	p.played[c]++
	if !p.output {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times c has been queued.
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}

func (p *Player) OnEat(snake.Position) { p.Play(CueEat) }
func (p *Player) OnLevelUp(int)        { p.Play(CueLevelUp) }
func (p *Player) OnDeath(int)          { p.Play(CueDeath) }
