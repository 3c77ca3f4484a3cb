package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/share"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// flashFrames is how long the head stays highlighted after eating.
const flashFrames = 6

// SettingsMsg delivers reloaded settings to a running model.
type SettingsMsg config.Settings

// Options configures a game model.
type Options struct {
	Settings config.Settings
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil disables score saving
	Player   *audio.Player  // nil plays no sound

	// SettingsPath receives toggled settings in local play.
	SettingsPath string
	// Owner receives toggled settings in the store instead, e.g. an SSH user.
	Owner string
	// DataDir holds share cards and replays. Defaults to ~/.snake.
	DataDir string

	Logger *log.Logger
}

// Model is the Bubble Tea model for a snake game.
type Model struct {
	session  *snake.Session
	screen   *core.Screen
	store    *storage.Store
	player   *audio.Player
	settings config.Settings
	runtime  core.RuntimeConfig
	palette  Palette
	keys     KeyMap
	help     help.Model
	initials textinput.Model
	logger   *log.Logger

	settingsPath string
	owner        string
	dataDir      string

	last       time.Time // Time of the previous frame
	flash      int       // Frames of head highlight left
	prompting  bool      // Asking for initials after game over
	newHigh    bool
	scoreSaved bool
	message    string
	quitting   bool
}

// NewModel creates a new Bubble Tea model. The game starts in the ready
// state and begins with the first steering key.
func NewModel(opts Options) Model {
	settings := opts.Settings.Sanitize()

	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	rt.FrameRate = settings.Loop.FrameRate

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.UserDir()
	}

	session := snake.NewSession(snake.SessionConfig{
		Options:  settings.GameOptions(),
		Seed:     rt.Seed,
		MaxSteps: settings.Loop.MaxSteps,
	})
	if opts.Player != nil {
		opts.Player.Apply(settings.Audio)
		session.AddListener(opts.Player)
	}

	ti := textinput.New()
	ti.Placeholder = storage.DefaultInitials
	ti.CharLimit = 3
	ti.Width = 3
	ti.Prompt = ""

	return Model{
		session:      session,
		screen:       core.NewScreen(rt.ScreenW, rt.ScreenH-1),
		store:        opts.Store,
		player:       opts.Player,
		settings:     settings,
		runtime:      rt,
		palette:      NewPalette(settings.Display),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		initials:     ti,
		logger:       logger,
		settingsPath: opts.SettingsPath,
		owner:        opts.Owner,
		dataDir:      dataDir,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePrompt(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case SettingsMsg:
		m.applySettings(config.Settings(msg))
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionPause:
		if m.session.Status() == snake.StatusReady {
			m.session.Start()
		} else {
			m.session.TogglePause()
		}
	case core.ActionRestart:
		m.session.Restart(time.Now().UnixNano())
		m.scoreSaved = false
		m.newHigh = false
	case core.ActionShare:
		m.saveShareCard()
	case core.ActionExport:
		m.saveReplay()
	case core.ActionTheme:
		if m.settings.Display.Theme == config.ThemeDark {
			m.settings.Display.Theme = config.ThemeLight
		} else {
			m.settings.Display.Theme = config.ThemeDark
		}
		m.palette = NewPalette(m.settings.Display)
		m.persistSettings()
	case core.ActionContrast:
		if m.settings.HighContrast() {
			m.settings.Display.Contrast = config.ContrastNormal
		} else {
			m.settings.Display.Contrast = config.ContrastHigh
		}
		m.palette = NewPalette(m.settings.Display)
		m.persistSettings()
	case core.ActionMute:
		m.settings.Audio.Muted = !m.settings.Audio.Muted
		if m.player != nil {
			m.player.SetMuted(m.settings.Audio.Muted)
		}
		if m.settings.Audio.Muted {
			m.message = "Sound off"
		} else {
			m.message = "Sound on"
		}
		m.persistSettings()
	default:
		if dir, ok := Direction(action); ok {
			m.session.Steer(dir)
		}
	}

	return m, nil
}

// handlePrompt feeds keys to the initials input.
func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.saveScore(m.initials.Value())
		m.prompting = false
		m.initials.Blur()
		return m, nil
	case "esc":
		m.prompting = false
		m.initials.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.initials, cmd = m.initials.Update(msg)
	return m, cmd
}

// handleTick advances the simulation by the time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	m.last = now

	if m.flash > 0 {
		m.flash--
	}

	var cmd tea.Cmd
	for _, res := range m.session.Advance(dt) {
		if res.Ate {
			m.flash = flashFrames
		}
		if res.Died {
			cmd = m.gameOver()
		}
	}

	return m, tea.Batch(tickCmd(m.runtime.FrameRate), cmd)
}

// gameOver asks for initials when the score can be saved.
func (m *Model) gameOver() tea.Cmd {
	score := m.session.Engine().Score()
	if m.store == nil || m.scoreSaved || score == 0 {
		return nil
	}

	high, err := m.store.IsHighScore(storage.GameID(m.session.Options()), score)
	if err != nil {
		m.logger.Warn("could not check high score", "error", err)
	}
	m.newHigh = high
	m.prompting = true
	m.initials.Reset()
	return m.initials.Focus()
}

func (m *Model) saveScore(initials string) {
	if m.store == nil || m.scoreSaved {
		return
	}
	e := m.session.Engine()
	entry := storage.ScoreEntry{
		GameID:   storage.GameID(m.session.Options()),
		Initials: initials,
		Score:    e.Score(),
		Level:    e.Level(),
		Seed:     m.session.Seed(),
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("could not save score", "error", err)
		m.message = "Could not save score"
		return
	}
	m.scoreSaved = true
	m.message = fmt.Sprintf("Saved %s %d", storage.NormalizeInitials(initials), entry.Score)
}

// saveShareCard writes a PNG of the board to the shares directory.
func (m *Model) saveShareCard() {
	path, err := m.outputPath("shares", "png")
	if err != nil {
		m.logger.Warn("could not create shares directory", "error", err)
		m.message = "Could not save share card"
		return
	}

	e := m.session.Engine()
	img := share.Card(e.Snapshot(), m.session.Seed(), share.OptionsFrom(m.settings.Display))
	if err := share.SavePNG(path, img); err != nil {
		m.logger.Warn("could not save share card", "error", err)
		m.message = "Could not save share card"
		return
	}
	m.logger.Info("share card saved", "path", path)
	m.message = fmt.Sprintf("%s  Saved %s", share.Text(e.Score()), path)
}

// saveReplay writes the current game's recording as YAML.
func (m *Model) saveReplay() {
	path, err := m.outputPath("replays", "yaml")
	if err != nil {
		m.logger.Warn("could not create replays directory", "error", err)
		m.message = "Could not save replay"
		return
	}
	if err := m.session.Recording().Save(path); err != nil {
		m.logger.Warn("could not save replay", "error", err)
		m.message = "Could not save replay"
		return
	}
	m.logger.Info("replay saved", "path", path)
	m.message = "Replay saved to " + path
}

func (m *Model) outputPath(sub, ext string) (string, error) {
	dir := filepath.Join(m.dataDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("snake_%s_%d.%s", timestamp, m.session.Seed(), ext)), nil
}

// applySettings takes reloaded settings. Rule changes start a new game;
// display and audio changes apply in place.
func (m *Model) applySettings(s config.Settings) {
	s = s.Sanitize()
	rulesChanged := s.GameOptions() != m.settings.GameOptions() || s.Loop != m.settings.Loop

	m.settings = s
	m.runtime.FrameRate = s.Loop.FrameRate
	m.palette = NewPalette(s.Display)
	if m.player != nil {
		m.player.Apply(s.Audio)
	}

	if rulesChanged {
		m.session.Reconfigure(s.GameOptions(), s.Loop.MaxSteps, time.Now().UnixNano())
		m.prompting = false
		m.scoreSaved = false
		m.message = "Settings changed, new game"
	}
}

// persistSettings stores toggled settings for the owner or in the
// settings file.
func (m *Model) persistSettings() {
	var err error
	switch {
	case m.owner != "" && m.store != nil:
		err = m.store.SaveSettings(m.owner, m.settings)
	case m.settingsPath != "":
		err = config.Save(m.settingsPath, m.settings)
	}
	if err != nil {
		m.logger.Warn("could not save settings", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footer()
	screenH := max(m.runtime.ScreenH-lipgloss.Height(footer), 1)
	if m.screen.Width() != m.runtime.ScreenW || m.screen.Height() != screenH {
		m.screen.Resize(m.runtime.ScreenW, screenH)
	}

	snake.Render(m.screen, m.session, snake.RenderOptions{
		HighContrast: m.settings.HighContrast(),
		ReduceMotion: m.settings.Display.ReduceMotion,
		Flash:        m.flash > 0,
	})

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen, m.palette))
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func (m Model) footer() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	switch {
	case m.prompting:
		title := "Game over!"
		if m.newHigh {
			title = "New high score!"
		}
		return fmt.Sprintf(" %s Initials: %s  %s", title, m.initials.View(), dim.Render("enter save • esc skip"))
	case m.message != "":
		return " " + m.message
	default:
		return m.help.View(m.keys)
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
// When opts.SettingsPath is set the file is watched and edits apply live.
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.SettingsPath != "" {
		err := config.Watch(ctx, opts.SettingsPath, model.logger, func(s config.Settings) {
			p.Send(SettingsMsg(s))
		})
		if err != nil {
			model.logger.Warn("settings will not reload", "error", err)
		}
	}

	_, err := p.Run()
	return err
}
