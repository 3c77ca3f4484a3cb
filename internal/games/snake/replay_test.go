package snake

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// Traces recorded from the browser build with a greedy bot. Matching
// them proves seeds are portable between the two.
var knownTraces = []struct {
	name   string
	seed   int64
	opts   Options
	ticks  uint64
	moves  string
	score  int
	level  int
	speed  float64
	length int
	head   Position
	food   Position
	active PowerupType
}{
	{
		name:  "wrap",
		seed:  2024,
		opts:  Options{Grid: 10, BaseSpeed: 8, Wrap: true, Powerups: true},
		ticks: 300,
		moves: "0:down,1:left,5:down,7:left,8:up,10:right,18:up,19:left,23:up,27:left,29:down,35:left," +
			"36:down,37:right,43:up,51:left,55:down,59:left,62:up,66:right,75:down,84:left,93:up,94:right," +
			"103:up,109:left,113:down,115:left,118:down,121:right,127:up,128:left,133:up,134:right,135:up," +
			"136:left,139:down,142:right,143:up",
		score: 17, level: 4, speed: 10, length: 20,
		head: Position{2, 5}, food: Position{1, 1}, active: PowerupSlow,
	},
	{
		name:  "walls",
		seed:  7,
		opts:  Options{Grid: 12, BaseSpeed: 8, Wrap: false, Powerups: true},
		ticks: 400,
		moves: "0:up,1:left,6:up,11:right,19:down,20:left,25:down,30:right,34:up,35:right,36:down,37:right," +
			"39:up,43:left,51:down,58:left,59:up,66:right,69:down,70:right,74:down,75:left,77:down,83:left," +
			"84:up,93:left,95:down,97:left,98:down,104:left,107:down,109:right,113:up,117:right,120:down," +
			"124:right,125:up,130:left,134:up,140:left,144:down,148:right,151:up,154:left,155:down,157:left,158:up",
		score: 20, level: 5, speed: 10, length: 21,
		head: Position{1, 1}, food: Position{7, 0}, active: PowerupNone,
	},
}

func TestReplayMatchesKnownTraces(t *testing.T) {
	for _, tt := range knownTraces {
		t.Run(tt.name, func(t *testing.T) {
			inputs, err := ParseMoves(tt.moves)
			if err != nil {
				t.Fatalf("ParseMoves: %v", err)
			}
			e := Replay(Recording{Seed: tt.seed, Options: tt.opts, Inputs: inputs, Ticks: tt.ticks})

			if !e.Dead() {
				t.Error("expected the bot to die")
			}
			if e.Score() != tt.score || e.Level() != tt.level || e.Speed() != tt.speed {
				t.Errorf("score/level/speed = %d/%d/%g, want %d/%d/%g",
					e.Score(), e.Level(), e.Speed(), tt.score, tt.level, tt.speed)
			}
			if e.Len() != tt.length {
				t.Errorf("len = %d, want %d", e.Len(), tt.length)
			}
			if e.Head() != tt.head {
				t.Errorf("head = %v, want %v", e.Head(), tt.head)
			}
			if e.Food() != tt.food {
				t.Errorf("food = %v, want %v", e.Food(), tt.food)
			}
			if e.ActivePowerup() != tt.active {
				t.Errorf("active = %v, want %v", e.ActivePowerup(), tt.active)
			}
		})
	}
}

func TestReplayStopsAtTickLimit(t *testing.T) {
	rec := Recording{Seed: 1, Options: Options{Grid: 20, BaseSpeed: 8, Wrap: true}, Ticks: 4}
	e := Replay(rec)
	if e.Head() != (Position{14, 10}) {
		t.Errorf("head = %v, want (14,10)", e.Head())
	}
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		in      string
		want    []Input
		wantErr bool
	}{
		{"", nil, false},
		{"5:down", []Input{{5, Down}}, false},
		{"5:down, 9:l", []Input{{5, Down}, {9, Left}}, false},
		{"3:up,3:left", []Input{{3, Up}, {3, Left}}, false},
		{"down", nil, true},
		{"x:down", nil, true},
		{"-1:down", nil, true},
		{"4:sideways", nil, true},
		{"9:up,5:down", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseMoves(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMoves(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseMoves(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoves(t *testing.T) {
	in := []Input{{0, Up}, {12, Left}}
	if got := FormatMoves(in); got != "0:up,12:left" {
		t.Errorf("FormatMoves = %q", got)
	}
}

func TestRecordingSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	rec := Recording{
		Seed:    42,
		Options: DefaultOptions(),
		Inputs:  []Input{{2, Up}, {7, Left}},
		Ticks:   30,
	}
	if err := rec.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadRecording(path)
	if err != nil {
		t.Fatalf("LoadRecording: %v", err)
	}
	if got.Seed != rec.Seed || got.Options != rec.Options || got.Ticks != rec.Ticks ||
		!slices.Equal(got.Inputs, rec.Inputs) {
		t.Errorf("round trip = %+v, want %+v", got, rec)
	}
}

func TestLoadRecordingErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadRecording(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	unsorted := filepath.Join(dir, "unsorted.yaml")
	data := "seed: 1\noptions: {grid: 22, base_speed: 8}\nticks: 5\ninputs:\n" +
		"  - {tick: 2, dir: left}\n  - {tick: 1, dir: up}\n  - {tick: 2, dir: down}\n"
	if err := os.WriteFile(unsorted, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecording(unsorted); err == nil {
		t.Error("expected error for inputs out of tick order")
	}
}

func TestReplayOrdersInputsByTick(t *testing.T) {
	opts := Options{Grid: 22, BaseSpeed: 8}
	// A tick-1 input between two tick-2 inputs; every input must still
	// reach the engine, same-tick inputs in recorded order.
	unsorted := Recording{Seed: 7, Options: opts, Ticks: 4, Inputs: []Input{
		{Tick: 2, Dir: Left}, {Tick: 1, Dir: Up}, {Tick: 2, Dir: Down},
	}}
	sorted := Recording{Seed: 7, Options: opts, Ticks: 4, Inputs: []Input{
		{Tick: 1, Dir: Up}, {Tick: 2, Dir: Left}, {Tick: 2, Dir: Down},
	}}
	got, want := Replay(unsorted).Snapshot(), Replay(sorted).Snapshot()
	if !got.Equal(want) {
		t.Errorf("unsorted replay = %+v, want %+v", got, want)
	}
}
