package snake

// PowerupType identifies a timed effect. The zero value means none.
type PowerupType int

const (
	PowerupNone PowerupType = iota
	PowerupSpeed
	PowerupSlow
	PowerupShrink
	PowerupDouble
)

// PowerupTypes is the draw table; order matters for seeded replays.
var PowerupTypes = [...]PowerupType{PowerupSpeed, PowerupSlow, PowerupShrink, PowerupDouble}

const (
	powerupChance   = 0.85 // a draw above this spawns a powerup
	powerupDuration = 6.0  // seconds at the speed in effect while it runs
	speedBoost      = 3.0
	slowPenalty     = 3.0
	minSlowSpeed    = 4.0
	shrinkSegments  = 2
	foodPerLevel    = 5
)

// Powerup is a queued or active effect with its duration.
type Powerup struct {
	Type     PowerupType
	Duration float64
}

func (p PowerupType) String() string {
	switch p {
	case PowerupNone:
		return "none"
	case PowerupSpeed:
		return "speed"
	case PowerupSlow:
		return "slow"
	case PowerupShrink:
		return "shrink"
	case PowerupDouble:
		return "double"
	default:
		return "unknown"
	}
}
