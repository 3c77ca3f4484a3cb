package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game host to work with intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow
	ActionDown            // S, J, Down arrow
	ActionLeft            // A, H, Left arrow
	ActionRight           // D, L, Right arrow
	ActionPause           // Space, P - pause/unpause game
	ActionRestart         // R key - start a fresh game
	ActionHelp            // ? - toggle full help
	ActionShare           // Ctrl+S - save a share card
	ActionExport          // E - save a replay of the last game
	ActionTheme           // T - switch light/dark theme
	ActionContrast        // C - toggle high contrast
	ActionMute            // M - toggle sound
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionShare:
		return "Share"
	case ActionExport:
		return "Export"
	case ActionTheme:
		return "Theme"
	case ActionContrast:
		return "Contrast"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action steers the snake.
func (a Action) IsMove() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}
