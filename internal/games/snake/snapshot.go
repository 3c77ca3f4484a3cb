package snake

import "slices"

// Snapshot captures the complete engine state for determinism testing and replay.
type Snapshot struct {
	Grid      int         `json:"grid" yaml:"grid"`
	Snake     []Position  `json:"snake" yaml:"snake"`
	Food      Position    `json:"food" yaml:"food"`
	Score     int         `json:"score" yaml:"score"`
	Level     int         `json:"level" yaml:"level"`
	Speed     float64     `json:"speed" yaml:"speed"`
	Dead      bool        `json:"dead" yaml:"dead"`
	Dir       Direction   `json:"-" yaml:"dir"`
	Growth    int         `json:"growth" yaml:"growth"`
	Active    PowerupType `json:"-" yaml:"-"`
	PowerLeft float64     `json:"powerup_left" yaml:"powerup_left"`
	Queued    PowerupType `json:"-" yaml:"-"`
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:      e.grid,
		Snake:     e.Snake(),
		Food:      e.food,
		Score:     e.score,
		Level:     e.level,
		Speed:     e.speed,
		Dead:      e.dead,
		Dir:       e.direction,
		Growth:    e.growth,
		Active:    e.active.Type,
		PowerLeft: e.powerTimer,
		Queued:    e.queued.Type,
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Grid == o.Grid &&
		slices.Equal(s.Snake, o.Snake) &&
		s.Food == o.Food &&
		s.Score == o.Score &&
		s.Level == o.Level &&
		s.Speed == o.Speed &&
		s.Dead == o.Dead &&
		s.Dir == o.Dir &&
		s.Growth == o.Growth &&
		s.Active == o.Active &&
		s.PowerLeft == o.PowerLeft &&
		s.Queued == o.Queued
}
