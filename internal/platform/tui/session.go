package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/storage"
)

// Screen identifies what the session is showing.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
	ScreenSettings
	ScreenScores
)

var errNoGame = errors.New("tui: no game to play")

// ConfigChangedMsg reports that the watched configuration file changed.
type ConfigChangedMsg struct {
	Path string
}

type watchErrMsg struct {
	err error
}

// SessionOptions configures a session.
type SessionOptions struct {
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Player  string

	// NewGame builds a fresh game each time Play is chosen.
	NewGame func() (registry.Game, error)

	// Start is the first screen. Leaving it quits unless it is the menu.
	Start Screen

	// Watcher and Load enable hot reload of the running game.
	Watcher *config.Watcher
	Load    ConfigLoader

	Logger *log.Logger
}

// SessionModel manages the full session flow: title menu, game, settings
// and scores. It is the top-level model for both local and SSH play.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	settings storage.Settings
	logger   *log.Logger

	screen   Screen
	menu     MenuModel
	game     *Model
	prefs    SettingsModel
	scores   ScoreboardModel
	quitting bool
	err      error
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	settings := storage.DefaultSettings()
	if opts.Store != nil {
		st, err := opts.Store.LoadSettings(opts.Player)
		if err != nil {
			logger.Warn("could not load settings", "player", opts.Player, "err", err)
		}
		settings = st
	}

	m := SessionModel{
		opts:     opts,
		config:   opts.Runtime,
		settings: settings,
		logger:   logger,
		screen:   ScreenMenu,
	}
	m.menu = NewMenuModel(m.config, settings.Language)
	return m
}

// Init opens the start screen.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return enterMsg{m.opts.Start} }, m.watchCmd())
}

type enterMsg struct {
	screen Screen
}

func (m SessionModel) watchCmd() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case enterMsg:
		return m.enter(msg.screen)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case ConfigChangedMsg:
		m.reload(msg.Path)
		return m, m.watchCmd()

	case watchErrMsg:
		m.logger.Warn("config watcher", "err", msg.err)
		return m, m.watchCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.screen {
	case ScreenGame:
		return m.updateGame(msg)
	case ScreenSettings:
		return m.updateSettings(msg)
	case ScreenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// enter switches to screen s.
func (m SessionModel) enter(s Screen) (tea.Model, tea.Cmd) {
	m.screen = s
	switch s {
	case ScreenGame:
		if m.opts.NewGame == nil {
			return m.fail(errNoGame)
		}
		game, err := m.opts.NewGame()
		if err != nil {
			return m.fail(err)
		}
		model := NewModel(game, m.opts.Store, m.config, m.opts.Player, m.logger)
		model.ApplySettings(m.settings)
		m.game = &model
		m.logger.Info("game started", "game", game.ID(), "player", m.opts.Player)
		return m, model.Init()

	case ScreenSettings:
		m.prefs = NewSettingsModel(m.settings, m.config.ScreenW, m.config.ScreenH)

	case ScreenScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)

	default:
		m.screen = ScreenMenu
		m.menu = NewMenuModel(m.config, m.settings.Language).WithStatus(m.menu.status)
	}
	return m, nil
}

// back leaves the current screen: to the menu, or out of the program when the
// session did not start at the menu.
func (m SessionModel) back() (tea.Model, tea.Cmd) {
	m.game = nil
	if m.opts.Start != ScreenMenu {
		m.quitting = true
		return m, tea.Quit
	}
	return m.enter(ScreenMenu)
}

// fail reports err on the menu, or ends the session with it when there is no
// menu to return to.
func (m SessionModel) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("session", "err", err)
	if m.opts.Start != ScreenMenu {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.menu = m.menu.WithStatus(err.Error())
	m.screen = ScreenMenu
	return m, nil
}

func (m *SessionModel) reload(path string) {
	if m.game == nil {
		m.logger.Debug("config changed, applies to the next game", "path", path)
		return
	}
	if err := m.game.Reload(path, m.opts.Load); err != nil {
		m.logger.Error("config reload failed", "err", err)
		return
	}
	m.logger.Info("config reloaded", "path", path)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case ChoicePlay:
		m.menu = m.menu.WithStatus("")
		return m.enter(ScreenGame)
	case ChoiceSettings:
		return m.enter(ScreenSettings)
	case ChoiceScores:
		return m.enter(ScreenScores)
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.game == nil {
		return m.back()
	}
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.back()
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.prefs.Update(msg)
	if prefs, ok := next.(SettingsModel); ok {
		m.prefs = prefs
	}
	if m.prefs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if !m.prefs.Done() {
		return m, cmd
	}
	if m.prefs.Saved() {
		m.settings = m.prefs.Settings()
		if m.opts.Store != nil {
			if err := m.opts.Store.SaveSettings(m.opts.Player, m.settings); err != nil {
				m.logger.Warn("could not save settings", "err", err)
			}
		}
	}
	return m.back()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.back()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case ScreenGame:
		if m.game != nil {
			return m.game.View()
		}
	case ScreenSettings:
		return m.prefs.View()
	case ScreenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Settings returns the settings in effect.
func (m SessionModel) Settings() storage.Settings {
	return m.settings
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs a session in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if sm, ok := final.(SessionModel); ok {
		return sm.Err()
	}
	return nil
}
