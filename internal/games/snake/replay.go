package snake

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options are the player-chosen rules of a game, without the RNG.
type Options struct {
	Grid      int     `yaml:"grid" json:"grid"`
	BaseSpeed float64 `yaml:"base_speed" json:"base_speed"`
	Wrap      bool    `yaml:"wrap" json:"wrap"`
	Powerups  bool    `yaml:"powerups" json:"powerups"`
}

// DefaultOptions returns the stock rules.
func DefaultOptions() Options {
	return Options{
		Grid:      22,
		BaseSpeed: 8,
		Wrap:      false,
		Powerups:  true,
	}
}

// Config builds an engine configuration seeded with seed.
func (o Options) Config(seed int64) Config {
	return Config{
		Grid:      o.Grid,
		BaseSpeed: o.BaseSpeed,
		Wrap:      o.Wrap,
		Powerups:  o.Powerups,
		RNG:       NewRNG(seed),
	}
}

// Input is a direction handed to the engine right before tick Tick.
type Input struct {
	Tick uint64    `yaml:"tick"`
	Dir  Direction `yaml:"dir"`
}

// Recording is everything needed to replay a game exactly: the rules,
// the seed and the direction inputs by tick.
type Recording struct {
	Seed    int64   `yaml:"seed"`
	Options Options `yaml:"options"`
	Inputs  []Input `yaml:"inputs"`
	Ticks   uint64  `yaml:"ticks"`
}

// Replay runs the recording on a fresh engine and returns it. Replay
// stops after rec.Ticks ticks or at death, whichever comes first.
// Inputs are applied in tick order; inputs sharing a tick keep their
// recorded order.
func Replay(rec Recording) *Engine {
	e := New(rec.Options.Config(rec.Seed))
	inputs := slices.Clone(rec.Inputs)
	slices.SortStableFunc(inputs, func(a, b Input) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	next := 0
	for tick := uint64(0); tick < rec.Ticks && !e.Dead(); tick++ {
		for next < len(inputs) && inputs[next].Tick == tick {
			e.QueueDirection(inputs[next].Dir)
			next++
		}
		e.Tick()
	}
	return e
}

// ParseMoves reads a compact input list such as "5:down,9:left".
// Entries must be in non-decreasing tick order.
func ParseMoves(s string) ([]Input, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	inputs := make([]Input, 0, len(parts))
	var last uint64
	for i, part := range parts {
		tickStr, dirStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("snake: move %q: expected tick:direction", part)
		}
		tick, err := strconv.ParseUint(tickStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("snake: move %q: bad tick: %w", part, err)
		}
		if i > 0 && tick < last {
			return nil, fmt.Errorf("snake: move %q: ticks must not decrease", part)
		}
		dir, err := ParseDirection(dirStr)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Tick: tick, Dir: dir})
		last = tick
	}
	return inputs, nil
}

// FormatMoves is the inverse of ParseMoves.
func FormatMoves(inputs []Input) string {
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = fmt.Sprintf("%d:%s", in.Tick, in.Dir)
	}
	return strings.Join(parts, ",")
}

// LoadRecording reads a YAML recording from path. Inputs must be in
// non-decreasing tick order, as ParseMoves requires.
func LoadRecording(path string) (Recording, error) {
	var rec Recording
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("snake: cannot read recording %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("snake: cannot parse recording %s: %w", path, err)
	}
	for i := 1; i < len(rec.Inputs); i++ {
		if rec.Inputs[i].Tick < rec.Inputs[i-1].Tick {
			return rec, fmt.Errorf("snake: recording %s: input %d: ticks must not decrease", path, i)
		}
	}
	return rec, nil
}

// Save writes the recording as YAML.
func (r Recording) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("snake: cannot encode recording: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snake: cannot write recording %s: %w", path, err)
	}
	return nil
}
