package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runes("w"), core.ActionUp},
		{"k", runes("k"), core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"s", runes("s"), core.ActionDown},
		{"a", runes("a"), core.ActionLeft},
		{"h", runes("h"), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"l", runes("l"), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause},
		{"p", runes("p"), core.ActionPause},
		{"r", runes("r"), core.ActionRestart},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionShare},
		{"e", runes("e"), core.ActionExport},
		{"t", runes("t"), core.ActionTheme},
		{"c", runes("c"), core.ActionContrast},
		{"m", runes("m"), core.ActionMute},
		{"?", runes("?"), core.ActionHelp},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		action core.Action
		want   snake.Direction
		ok     bool
	}{
		{core.ActionUp, snake.Up, true},
		{core.ActionDown, snake.Down, true},
		{core.ActionLeft, snake.Left, true},
		{core.ActionRight, snake.Right, true},
		{core.ActionPause, snake.Direction{}, false},
	}

	for _, tt := range tests {
		got, ok := Direction(tt.action)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Direction(%v) = %v, %v; want %v, %v", tt.action, got, ok, tt.want, tt.ok)
		}
	}
}
