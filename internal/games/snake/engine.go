// Package snake implements the deterministic snake simulation and the
// fixed-step session that drives it. Game logic has no terminal or
// audio dependencies; hosts observe it through accessors, Snapshot and
// the Listener interface.
package snake

import "math"

// Config fixes the rules of one engine instance.
type Config struct {
	Grid      int     // Board is Grid x Grid cells
	BaseSpeed float64 // Ticks per second at level 1
	Wrap      bool    // Leaving an edge re-enters on the opposite side
	Powerups  bool    // Eating may spawn powerups
	RNG       RNG     // Source for food placement and powerup rolls
}

// Engine owns the full state of one game. It is not safe for
// concurrent use.
type Engine struct {
	// Configuration, fixed for the lifetime of the engine.
	grid            int
	baseSpeed       float64
	wrap            bool
	powerupsEnabled bool
	rng             RNG

	// Runtime state, rebuilt by Reset.
	snake      []Position // Head at index 0
	direction  Direction
	pending    Direction // Applied on the next tick
	food       Position
	score      int
	level      int
	speed      float64
	dead       bool
	growth     int     // Ticks left on which the tail stays put
	queued     Powerup // Capacity-1 queue; Type == PowerupNone when empty
	active     Powerup
	powerTimer float64
}

// New creates an engine in its initial state.
func New(cfg Config) *Engine {
	e := &Engine{
		grid:            cfg.Grid,
		baseSpeed:       cfg.BaseSpeed,
		wrap:            cfg.Wrap,
		powerupsEnabled: cfg.Powerups,
		rng:             cfg.RNG,
	}
	e.Reset()
	return e
}

// Reset starts a fresh game with the same configuration. The RNG is not
// rewound.
func (e *Engine) Reset() {
	mid := e.grid / 2
	e.snake = []Position{
		{X: mid, Y: mid},
		{X: mid - 1, Y: mid},
		{X: mid - 2, Y: mid},
	}
	e.direction = Right
	e.pending = Right
	e.food = SpawnFood(e.grid, e.snake, e.rng)
	e.score = 0
	e.level = 1
	e.speed = e.baseSpeed
	e.dead = false
	e.growth = 0
	e.queued = Powerup{}
	e.active = Powerup{}
	e.powerTimer = 0
}

// QueueDirection sets the direction for the next tick. A request to
// reverse onto the committed direction is dropped.
func (e *Engine) QueueDirection(dir Direction) {
	if dir.IsOpposite(e.direction) {
		return
	}
	e.pending = dir
}

// Tick advances the simulation by one step.
func (e *Engine) Tick() TickResult {
	if e.dead {
		return TickResult{}
	}

	e.direction = e.pending
	next := NextHead(e.snake[0], e.direction)

	if e.wrap {
		next = Position{
			X: (next.X + e.grid) % e.grid,
			Y: (next.Y + e.grid) % e.grid,
		}
	} else if next.X < 0 || next.X >= e.grid || next.Y < 0 || next.Y >= e.grid {
		e.dead = true
		return TickResult{Died: true}
	}

	// The tail is still part of the body here, even if it would move away.
	if IsCollision(next, e.snake) {
		e.dead = true
		return TickResult{Died: true}
	}

	e.snake = append(e.snake, Position{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = next

	var res TickResult
	if next == e.food {
		res.Ate = true
		e.eat()
		if e.score%foodPerLevel == 0 {
			e.level++
			e.speed = e.levelSpeed()
			res.Leveled = true
		}
		e.food = SpawnFood(e.grid, e.snake, e.rng)
		e.rollPowerup()
	}

	if e.growth > 0 {
		e.growth--
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	if e.queued.Type != PowerupNone && e.active.Type == PowerupNone {
		e.activate(e.queued)
		e.queued = Powerup{}
	}

	if e.active.Type != PowerupNone {
		e.powerTimer -= 1 / e.speed
		if e.powerTimer <= 0 {
			e.active = Powerup{}
			e.powerTimer = 0
			e.speed = e.levelSpeed()
		}
	}

	return res
}

func (e *Engine) eat() {
	if e.active.Type == PowerupDouble {
		e.score += 2
	} else {
		e.score++
	}
	e.growth++
}

// rollPowerup draws a second value only when the first one passes. Seeded
// replays depend on this call order.
func (e *Engine) rollPowerup() {
	if !e.powerupsEnabled {
		return
	}
	if e.rng() <= powerupChance || e.queued.Type != PowerupNone {
		return
	}
	idx := int(math.Floor(e.rng() * float64(len(PowerupTypes))))
	e.queued = Powerup{Type: PowerupTypes[idx], Duration: powerupDuration}
}

func (e *Engine) activate(p Powerup) {
	e.active = p
	e.powerTimer = p.Duration
	switch p.Type {
	case PowerupSpeed:
		e.speed += speedBoost
	case PowerupSlow:
		e.speed = math.Max(minSlowSpeed, e.speed-slowPenalty)
	case PowerupShrink:
		n := min(shrinkSegments, len(e.snake)-1)
		e.snake = e.snake[:len(e.snake)-n]
	}
}

func (e *Engine) levelSpeed() float64 {
	return e.baseSpeed + float64(e.level/2)
}

// NextHead returns the cell one step from head, before any wrapping.
func NextHead(head Position, dir Direction) Position {
	return head.Add(dir)
}

// IsCollision reports whether pos matches any segment.
func IsCollision(pos Position, snake []Position) bool {
	for _, seg := range snake {
		if seg == pos {
			return true
		}
	}
	return false
}

// SpawnFood picks a free cell in row-major order using one rng draw.
// A full board yields (0, 0).
func SpawnFood(grid int, snake []Position, rng RNG) Position {
	free := make([]Position, 0, grid*grid)
	for y := 0; y < grid; y++ {
		for x := 0; x < grid; x++ {
			p := Position{X: x, Y: y}
			if !IsCollision(p, snake) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Position{}
	}
	return free[int(math.Floor(rng()*float64(len(free))))]
}

// Grid returns the board size.
func (e *Engine) Grid() int { return e.grid }

// BaseSpeed returns the level-1 tick rate.
func (e *Engine) BaseSpeed() float64 { return e.baseSpeed }

// Wrap reports whether edges wrap around.
func (e *Engine) Wrap() bool { return e.wrap }

// Snake returns a copy of the body, head first.
func (e *Engine) Snake() []Position {
	out := make([]Position, len(e.snake))
	copy(out, e.snake)
	return out
}

// Head returns the head cell.
func (e *Engine) Head() Position { return e.snake[0] }

// Len returns the number of segments.
func (e *Engine) Len() int { return len(e.snake) }

// Food returns the food cell.
func (e *Engine) Food() Position { return e.food }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// Speed returns the current tick rate in ticks per second.
func (e *Engine) Speed() float64 { return e.speed }

// Dead reports whether the game has ended.
func (e *Engine) Dead() bool { return e.dead }

// Direction returns the direction used by the last tick.
func (e *Engine) Direction() Direction { return e.direction }

// PendingDirection returns the direction the next tick will use.
func (e *Engine) PendingDirection() Direction { return e.pending }

// Growth returns the number of segments still owed to the tail.
func (e *Engine) Growth() int { return e.growth }

// ActivePowerup returns the running powerup, or PowerupNone.
func (e *Engine) ActivePowerup() PowerupType { return e.active.Type }

// QueuedPowerup returns the powerup waiting for activation, or PowerupNone.
func (e *Engine) QueuedPowerup() PowerupType { return e.queued.Type }

// PowerupTimer returns the remaining time of the active powerup.
func (e *Engine) PowerupTimer() float64 { return e.powerTimer }
