// Package share renders a finished or replayed board as a PNG card that
// players can post.
package share

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const (
	defaultCellSize = 16
	defaultScale    = 2
	maxScale        = 8
	headerHeight    = 28
	padding         = 12
)

// Options control the look and size of a card.
type Options struct {
	Theme        string // config.ThemeLight or config.ThemeDark
	HighContrast bool
	CellSize     int // Pixels per cell before scaling
	Scale        int // Nearest-neighbour upscale factor
}

// OptionsFrom builds card options from display settings.
func OptionsFrom(d config.DisplaySettings) Options {
	return Options{
		Theme:        d.Theme,
		HighContrast: d.Contrast == config.ContrastHigh,
	}
}

type palette struct {
	background color.Color
	gridLine   color.Color
	text       color.Color
	body       color.Color
	head       color.Color
	food       color.Color
	tint       color.Color
}

func paletteFor(opts Options) palette {
	p := palette{
		background: color.RGBA{0xf7, 0xf7, 0xf2, 0xff},
		gridLine:   color.NRGBA{0, 0, 0, 0x10},
		text:       color.RGBA{0x1a, 0x20, 0x2c, 0xff},
		body:       color.RGBA{0x3c, 0xb3, 0x71, 0xff},
		head:       color.RGBA{0x2e, 0x8b, 0x57, 0xff},
		food:       color.RGBA{0xf5, 0x65, 0x65, 0xff},
		tint:       color.NRGBA{0xff, 0xd4, 0x00, 0x33},
	}
	if opts.Theme == config.ThemeDark {
		p.background = color.RGBA{0x1a, 0x20, 0x2c, 0xff}
		p.gridLine = color.NRGBA{0xff, 0xff, 0xff, 0x0a}
		p.text = color.RGBA{0xe2, 0xe8, 0xf0, 0xff}
		p.head = color.RGBA{0x68, 0xd3, 0x91, 0xff}
	}
	if opts.HighContrast {
		p.body = color.RGBA{0x00, 0xff, 0x7f, 0xff}
		p.head = color.RGBA{0xff, 0xff, 0xff, 0xff}
		p.food = color.RGBA{0xff, 0x30, 0x30, 0xff}
		if opts.Theme != config.ThemeDark {
			p.head = color.RGBA{0x00, 0x00, 0x00, 0xff}
			p.body = color.RGBA{0x00, 0x80, 0x3c, 0xff}
		}
	}
	return p
}

// Caption is the line printed above the board.
func Caption(score, level int, seed int64) string {
	return fmt.Sprintf("Score %d | Level %d | Seed %d", score, level, seed)
}

// Text is the one-line brag players paste next to the card.
func Text(score int) string {
	return fmt.Sprintf("I scored %d in Snake!", score)
}

// Card draws snap onto a new image.
func Card(snap snake.Snapshot, seed int64, opts Options) image.Image {
	cell := opts.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = defaultScale
	}
	scale = min(scale, maxScale)

	pal := paletteFor(opts)
	board := snap.Grid * cell
	width := board + 2*padding
	height := headerHeight + board + padding

	dc := gg.NewContext(width, height)
	dc.SetColor(pal.background)
	dc.Clear()

	dc.SetColor(pal.text)
	dc.DrawStringAnchored(Caption(snap.Score, snap.Level, seed), float64(width)/2, headerHeight/2, 0.5, 0.5)

	ox, oy := float64(padding), float64(headerHeight)
	renderGrid(dc, ox, oy, snap.Grid, cell, pal.gridLine)

	fc := float64(cell)
	dc.SetColor(pal.food)
	dc.DrawCircle(ox+float64(snap.Food.X)*fc+fc/2, oy+float64(snap.Food.Y)*fc+fc/2, fc*0.32)
	dc.Fill()

	for i := len(snap.Snake) - 1; i >= 0; i-- {
		seg := snap.Snake[i]
		radius := fc * 0.3
		dc.SetColor(pal.body)
		if i == 0 {
			radius = fc * 0.4
			dc.SetColor(pal.head)
		}
		dc.DrawRoundedRectangle(ox+float64(seg.X)*fc+fc*0.1, oy+float64(seg.Y)*fc+fc*0.1, fc*0.8, fc*0.8, radius)
		dc.Fill()
	}

	if snap.Active != snake.PowerupNone {
		dc.SetColor(pal.tint)
		dc.DrawRectangle(ox, oy, float64(board), float64(board))
		dc.Fill()
	}

	if scale == 1 {
		return dc.Image()
	}
	return imaging.Resize(dc.Image(), width*scale, height*scale, imaging.NearestNeighbor)
}

func renderGrid(dc *gg.Context, ox, oy float64, grid, cell int, c color.Color) {
	size := float64(grid * cell)
	dc.SetColor(c)
	dc.SetLineWidth(1)
	for i := 0; i <= grid; i++ {
		pos := float64(i * cell)
		dc.DrawLine(ox+pos, oy, ox+pos, oy+size)
		dc.DrawLine(ox, oy+pos, ox+size, oy+pos)
	}
	dc.Stroke()
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("share: cannot encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("share: cannot save %s: %w", path, err)
	}
	return nil
}
