package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestScoreboardBoards(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	store.SaveScore(storage.ScoreEntry{GameID: "snake", Initials: "ann", Score: 14, Level: 3})
	store.SaveScore(storage.ScoreEntry{GameID: "snake-wrap", Initials: "bob", Score: 40, Level: 8})

	m := NewScoreboardModel(store, 80, 30)
	if len(m.scores) != 1 || m.scores[0].Initials != "ANN" {
		t.Fatalf("classic scores = %+v", m.scores)
	}
	if view := m.View(); !strings.Contains(view, "ANN") || !strings.Contains(view, "Classic") {
		t.Errorf("view missing classic entry:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 1 || m.scores[0].Initials != "BOB" {
		t.Errorf("wrap scores = %+v", m.scores)
	}
	if m.stats == nil || m.stats.HighScore != 40 {
		t.Errorf("stats = %+v", m.stats)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if boards[m.cursor].Title != "Classic" {
		t.Errorf("board = %s, want Classic", boards[m.cursor].Title)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 30)
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty board has no placeholder")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || next.View() != "" {
		t.Error("q did not quit")
	}
}
