package snake

// maxQueuedDirections bounds how far ahead a player can buffer turns.
const maxQueuedDirections = 3

// DirectionQueue buffers turn requests between ticks so that quick
// double taps (e.g. up then left) are not lost. The engine consumes one
// entry per tick.
type DirectionQueue struct {
	items []Direction
}

// NewDirectionQueue creates an empty queue.
func NewDirectionQueue() *DirectionQueue {
	return &DirectionQueue{items: make([]Direction, 0, maxQueuedDirections)}
}

// Push appends dir. Repeating the last entry is a no-op and a full queue
// drops its oldest entry.
func (q *DirectionQueue) Push(dir Direction) {
	if n := len(q.items); n > 0 && q.items[n-1] == dir {
		return
	}
	if len(q.items) >= maxQueuedDirections {
		q.items = q.items[1:]
	}
	q.items = append(q.items, dir)
}

// Pop removes and returns the oldest entry.
func (q *DirectionQueue) Pop() (Direction, bool) {
	if len(q.items) == 0 {
		return Direction{}, false
	}
	dir := q.items[0]
	q.items = q.items[1:]
	return dir, true
}

// Len returns the number of buffered directions.
func (q *DirectionQueue) Len() int {
	return len(q.items)
}

// Clear drops all buffered directions.
func (q *DirectionQueue) Clear() {
	q.items = q.items[:0]
}
