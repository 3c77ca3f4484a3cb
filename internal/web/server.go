// Package web exposes leaderboards and seeded replays over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/share"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	defaultReplayTicks = 500
	maxReplayTicks     = 100_000
	shutdownTimeout    = 5 * time.Second
)

// Scores is the leaderboard source. *storage.Store implements it.
type Scores interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GameStats(gameID string) (*storage.GameStats, error)
}

// Server serves the HTTP API.
type Server struct {
	scores Scores
	logger *log.Logger
	engine *gin.Engine
}

// New creates a server. scores may be nil, in which case leaderboard
// endpoints answer 503.
func New(scores Scores, logger *log.Logger) *Server {
	s := &Server{
		scores: scores,
		logger: logger,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.logRequests())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)
	api := s.engine.Group("/api")
	api.GET("/scores", s.topScores)
	api.GET("/replay", s.replay)
	api.GET("/replay.png", s.replayPNG)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) topScores(c *gin.Context) {
	if s.scores == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scores are not available"})
		return
	}

	limit, err := intParam(c, "limit", storage.LeaderboardSize, 1, 100)
	if err != nil {
		badRequest(c, err)
		return
	}
	wrap, err := boolParam(c, "wrap", false)
	if err != nil {
		badRequest(c, err)
		return
	}

	gameID := storage.GameID(snake.Options{Wrap: wrap})
	entries, err := s.scores.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}
	stats, err := s.scores.GameStats(gameID)
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"game_id": gameID, "scores": entries, "stats": stats})
}

// replayResponse is the final state of a replayed game.
type replayResponse struct {
	Seed      int64          `json:"seed"`
	Ticks     uint64         `json:"ticks"`
	Moves     string         `json:"moves"`
	Options   snake.Options  `json:"options"`
	State     snake.Snapshot `json:"state"`
	Direction string         `json:"direction"`
	Active    string         `json:"active_powerup"`
	Queued    string         `json:"queued_powerup"`
}

func (s *Server) replay(c *gin.Context) {
	rec, err := parseRecording(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	snap := snake.Replay(rec).Snapshot()
	c.JSON(http.StatusOK, replayResponse{
		Seed:      rec.Seed,
		Ticks:     rec.Ticks,
		Moves:     snake.FormatMoves(rec.Inputs),
		Options:   rec.Options,
		State:     snap,
		Direction: snap.Dir.String(),
		Active:    snap.Active.String(),
		Queued:    snap.Queued.String(),
	})
}

func (s *Server) replayPNG(c *gin.Context) {
	rec, err := parseRecording(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	scale, err := intParam(c, "scale", 2, 1, 8)
	if err != nil {
		badRequest(c, err)
		return
	}
	theme := c.DefaultQuery("theme", config.ThemeLight)
	if theme != config.ThemeLight && theme != config.ThemeDark {
		badRequest(c, fmt.Errorf("theme must be %s or %s", config.ThemeLight, config.ThemeDark))
		return
	}
	contrast, err := boolParam(c, "high_contrast", false)
	if err != nil {
		badRequest(c, err)
		return
	}

	img := share.Card(snake.Replay(rec).Snapshot(), rec.Seed, share.Options{
		Theme:        theme,
		HighContrast: contrast,
		Scale:        scale,
	})
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := share.WritePNG(c.Writer, img); err != nil {
		s.logger.Error("cannot write png", "error", err)
	}
}

// parseRecording reads a replay from query parameters. Rules default to
// the stock settings.
func parseRecording(c *gin.Context) (snake.Recording, error) {
	var rec snake.Recording
	def := config.DefaultSettings()

	seed, err := strconv.ParseInt(c.DefaultQuery("seed", "0"), 10, 64)
	if err != nil {
		return rec, fmt.Errorf("seed: %w", err)
	}
	grid, err := intParam(c, "grid", def.Game.GridSize, config.MinGridSize, config.MaxGridSize)
	if err != nil {
		return rec, err
	}
	speed, err := floatParam(c, "speed", def.Game.BaseSpeed, config.MinBaseSpeed, config.MaxBaseSpeed)
	if err != nil {
		return rec, err
	}
	wrap, err := boolParam(c, "wrap", def.Game.Wrap)
	if err != nil {
		return rec, err
	}
	powerups, err := boolParam(c, "powerups", def.Game.Powerups)
	if err != nil {
		return rec, err
	}
	ticks, err := intParam(c, "ticks", defaultReplayTicks, 0, maxReplayTicks)
	if err != nil {
		return rec, err
	}
	inputs, err := snake.ParseMoves(c.Query("moves"))
	if err != nil {
		return rec, err
	}

	return snake.Recording{
		Seed:    seed,
		Options: snake.Options{Grid: grid, BaseSpeed: speed, Wrap: wrap, Powerups: powerups},
		Inputs:  inputs,
		Ticks:   uint64(ticks),
	}, nil
}

func intParam(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: not an integer: %q", name, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s: must be between %d and %d", name, lo, hi)
	}
	return v, nil
}

func floatParam(c *gin.Context, name string, def, lo, hi float64) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: not a number: %q", name, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s: must be between %g and %g", name, lo, hi)
	}
	return v, nil
}

func boolParam(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: not a boolean: %q", name, raw)
	}
	return v, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
