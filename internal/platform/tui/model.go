package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/games/quest"
	"github.com/vovakirdan/tilequest/internal/maps"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/storage"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Optional game capabilities used when the game provides them.
type (
	displayer interface {
		SetDisplay(quest.Display)
	}
	reloader interface {
		Reload(cfg config.QuestConfig, grid *world.Grid, catalog *world.Catalog) error
	}
	fpsReporter interface {
		SetMeasuredFPS(fps float64)
	}
	tickCounter interface {
		Ticks() int
	}
)

// ConfigLoader reads a quest configuration file.
type ConfigLoader func(path string) (config.QuestConfig, error)

// Model is the Bubble Tea model for a running game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	keyMapper  *KeyMapper
	held       HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over

	frames   int
	fpsSince time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		player:     player,
		keyMapper:  NewKeyMapper(),
		held:       HeldKeys{},
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// ApplySettings passes display settings on to the game.
func (m Model) ApplySettings(st storage.Settings) {
	if d, ok := m.game.(displayer); ok {
		d.SetDisplay(quest.Display{Brightness: st.Brightness, Language: st.Language})
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case action == core.ActionBack:
		// Esc pauses first; a second press leaves the game.
		if m.gameState.Paused || m.gameState.GameOver {
			m.backToMenu = true
		} else {
			m.inputFrame.Set(core.ActionPause)
		}
	case IsMovement(action):
		m.held.Press(action)
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.Apply(&m.inputFrame)

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()
	m.measureFPS(now)

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) saveScore() {
	if m.store == nil {
		return
	}
	res := storage.Result{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Won:    m.gameState.Won,
	}
	if tc, ok := m.game.(tickCounter); ok {
		res.Ticks = tc.Ticks()
	}
	if _, err := m.store.SaveScore(res); err != nil {
		m.logger.Warn("could not save score", "game", res.GameID, "err", err)
		return
	}
	m.logger.Info("score saved", "game", res.GameID, "player", res.Player, "score", res.Score)
}

// measureFPS reports the tick rate actually achieved, once a second.
func (m *Model) measureFPS(now time.Time) {
	if m.fpsSince.IsZero() {
		m.fpsSince = now
		m.frames = 0
		return
	}
	m.frames++
	elapsed := now.Sub(m.fpsSince)
	if elapsed < time.Second {
		return
	}
	if r, ok := m.game.(fpsReporter); ok {
		r.SetMeasuredFPS(float64(m.frames) / elapsed.Seconds())
	}
	m.fpsSince = now
	m.frames = 0
}

// Reload re-reads the configuration at path and restarts the game with it.
// Games that cannot reload are left alone.
func (m *Model) Reload(path string, load ConfigLoader) error {
	r, ok := m.game.(reloader)
	if !ok || load == nil {
		return nil
	}
	cfg, err := load(path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", path, err)
	}
	grid, catalog, err := maps.Load(cfg.World)
	if err != nil {
		return fmt.Errorf("reload %s: %w", path, err)
	}
	if err := r.Reload(cfg, grid, catalog); err != nil {
		return fmt.Errorf("reload %s: %w", path, err)
	}
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.held = HeldKeys{}
	return nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".tilequest", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}
