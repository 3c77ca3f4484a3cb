package share

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func testSnapshot() snake.Snapshot {
	e := snake.New(snake.DefaultOptions().Config(42))
	for range 3 {
		e.Tick()
	}
	snap := e.Snapshot()
	snap.Active = snake.PowerupNone
	return snap
}

func TestCardSize(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name  string
		opts  Options
		wantW int
		wantH int
	}{
		{"defaults", Options{}, (22*16 + 2*padding) * 2, (headerHeight + 22*16 + padding) * 2},
		{"no scale", Options{CellSize: 10, Scale: 1}, 22*10 + 2*padding, headerHeight + 22*10 + padding},
		{"scale capped", Options{CellSize: 4, Scale: 50}, (22*4 + 2*padding) * maxScale, (headerHeight + 22*4 + padding) * maxScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Card(snap, 42, tt.opts).Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCardDrawsHeadAndFood(t *testing.T) {
	snap := testSnapshot()
	opts := Options{CellSize: 16, Scale: 1}
	img := Card(snap, 42, opts)
	pal := paletteFor(opts)

	center := func(p snake.Position) (int, int) {
		return padding + p.X*16 + 8, headerHeight + p.Y*16 + 8
	}

	hx, hy := center(snap.Snake[0])
	if got := imaging.Clone(img).NRGBAAt(hx, hy); !sameRGB(got, pal.head) {
		t.Errorf("head pixel = %v, want %v", got, pal.head)
	}
	fx, fy := center(snap.Food)
	if got := imaging.Clone(img).NRGBAAt(fx, fy); !sameRGB(got, pal.food) {
		t.Errorf("food pixel = %v, want %v", got, pal.food)
	}
}

func TestCardThemes(t *testing.T) {
	snap := testSnapshot()
	light := imaging.Clone(Card(snap, 1, Options{Scale: 1})).NRGBAAt(1, 1)
	dark := imaging.Clone(Card(snap, 1, Options{Scale: 1, Theme: config.ThemeDark})).NRGBAAt(1, 1)
	if light == dark {
		t.Error("dark theme should change the background")
	}
}

func TestWriteAndSavePNG(t *testing.T) {
	img := Card(testSnapshot(), 7, Options{Scale: 1})

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "card.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if _, err := imaging.Open(path); err != nil {
		t.Errorf("reopen: %v", err)
	}
}

func TestCaptionAndText(t *testing.T) {
	if got := Caption(12, 3, 42); got != "Score 12 | Level 3 | Seed 42" {
		t.Errorf("Caption = %q", got)
	}
	if got := Text(9); got != "I scored 9 in Snake!" {
		t.Errorf("Text = %q", got)
	}
}

func sameRGB(got interface{ RGBA() (r, g, b, a uint32) }, want interface{ RGBA() (r, g, b, a uint32) }) bool {
	r1, g1, b1, _ := got.RGBA()
	r2, g2, b2, _ := want.RGBA()
	return r1>>8 == r2>>8 && g1>>8 == g2>>8 && b1>>8 == b2>>8
}
