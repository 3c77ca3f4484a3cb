package snake

// RNG returns the next float in [0, 1) of a deterministic sequence.
// The engine calls it for food placement and powerup rolls only.
type RNG func() float64

// Mulberry32 is a 32-bit seeded generator. It produces the standard
// Mulberry32 sequence bit for bit, so a shared seed replays the same game
// in any client.
type Mulberry32 struct {
	state uint32
	calls uint64
}

// NewMulberry32 creates a generator seeded with seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next advances the generator and returns a float in [0, 1).
func (m *Mulberry32) Next() float64 {
	m.state += 0x6d2b79f5
	m.calls++
	r := m.state
	r = (r ^ (r >> 15)) * (r | 1)
	r ^= r + (r^(r>>7))*(r|61)
	return float64(r^(r>>14)) / 4294967296.0
}

// Calls returns how many values have been drawn.
func (m *Mulberry32) Calls() uint64 {
	return m.calls
}

// NewRNG returns a Mulberry32 sequence for a player-facing seed.
// Only the low 32 bits of the seed are significant.
func NewRNG(seed int64) RNG {
	return NewMulberry32(uint32(seed)).Next
}
