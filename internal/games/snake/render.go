package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// cellWidth is the number of terminal columns per board cell. Terminal
// cells are roughly twice as tall as wide, so two columns keep the board
// square.
const cellWidth = 2

// hudRows is the height of the status bar and its separator.
const hudRows = 2

// RenderOptions tunes how a session is drawn.
type RenderOptions struct {
	HighContrast bool
	ReduceMotion bool
	Flash        bool // Highlight the head, e.g. right after eating
}

// BoardSize returns the screen size needed to draw a grid of n cells.
func BoardSize(n int) (w, h int) {
	return n*cellWidth + 2, n + 2 + hudRows
}

// Render draws the session onto dst.
func Render(dst *core.Screen, s *Session, opts RenderOptions) {
	dst.Clear()
	e := s.Engine()

	renderHUD(dst, s, opts)

	w, h := BoardSize(e.Grid())
	if dst.Width() < w || dst.Height() < h {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	board := core.NewRect((dst.Width()-w)/2, hudRows, w, e.Grid()+2)
	renderBoard(dst, e, board, opts)

	switch s.Status() {
	case StatusReady:
		renderOverlay(dst, "S N A K E", "Arrow keys to start")
	case StatusPaused:
		renderOverlay(dst, "Paused", "Press Space to continue")
	case StatusOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  R to restart", e.Score()))
	}
}

func renderHUD(dst *core.Screen, s *Session, opts RenderOptions) {
	e := s.Engine()
	hud := fmt.Sprintf(" Snake  Score: %d  Level: %d  Speed: %g", e.Score(), e.Level(), e.Speed())
	dst.DrawText(0, 0, hud)

	if p := e.ActivePowerup(); p != PowerupNone {
		tag := fmt.Sprintf("  [%s %.1fs]", p, max(e.PowerupTimer(), 0))
		dst.DrawTextColor(len(hud), 0, tag, powerupColor(p, opts.HighContrast))
	}

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func renderBoard(dst *core.Screen, e *Engine, board core.Rect, opts RenderOptions) {
	border := core.ColorGray
	if opts.HighContrast {
		border = core.ColorBrightWhite
	}
	if p := e.ActivePowerup(); p != PowerupNone {
		border = powerupColor(p, opts.HighContrast)
	}
	dst.DrawBox(board, border)

	originX, originY := board.X+1, board.Y+1
	put := func(p Position, r rune, c core.Color) {
		x := originX + p.X*cellWidth
		if !board.Contains(x, originY+p.Y) {
			return
		}
		for i := range cellWidth {
			dst.SetColor(x+i, originY+p.Y, r, c)
		}
	}

	foodColor := core.ColorRed
	if opts.HighContrast {
		foodColor = foodColor.Bright()
	}
	put(e.Food(), '█', foodColor)

	body, head := core.ColorGreen, core.ColorBrightGreen
	if opts.HighContrast {
		body = core.ColorBrightWhite
	}
	if opts.Flash && !opts.ReduceMotion {
		head = core.ColorBrightYellow
	}
	snake := e.Snake()
	for i := len(snake) - 1; i >= 0; i-- {
		if i == 0 {
			put(snake[i], '█', head)
		} else {
			put(snake[i], '▓', body)
		}
	}
}

func powerupColor(p PowerupType, highContrast bool) core.Color {
	var c core.Color
	switch p {
	case PowerupSpeed:
		c = core.ColorYellow
	case PowerupSlow:
		c = core.ColorCyan
	case PowerupShrink:
		c = core.ColorMagenta
	case PowerupDouble:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
	if highContrast {
		c = c.Bright()
	}
	return c
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
