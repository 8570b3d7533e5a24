package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/i18n"
	"github.com/vovakirdan/tilequest/internal/storage"
)

// Slider steps.
const (
	volumeStep     = 5
	brightnessStep = 10
	sliderWidth    = 30
)

type settingsField int

const (
	fieldVolume settingsField = iota
	fieldBrightness
	fieldLanguage
	fieldMusic
	fieldCount
)

// SettingsKeyMap defines the key bindings for the settings screen.
type SettingsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Save  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Save, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Save, k.Back, k.Quit},
	}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "increase"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SettingsModel edits the player's settings.
type SettingsModel struct {
	values     storage.Settings
	field      settingsField
	volume     progress.Model
	brightness progress.Model
	keys       SettingsKeyMap
	help       help.Model
	width      int
	height     int
	quitting   bool
	done       bool
	saved      bool
}

// NewSettingsModel creates a settings screen showing st.
func NewSettingsModel(st storage.Settings, width, height int) SettingsModel {
	return SettingsModel{
		values:     st.Normalize(),
		volume:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(sliderWidth), progress.WithoutPercentage()),
		brightness: progress.New(progress.WithSolidFill("229"), progress.WithWidth(sliderWidth), progress.WithoutPercentage()),
		keys:       DefaultSettingsKeyMap(),
		help:       help.New(),
		width:      width,
		height:     height,
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.done = true
		case key.Matches(msg, m.keys.Save):
			m.done = true
			m.saved = true
		case key.Matches(msg, m.keys.Up):
			m.field = (m.field + fieldCount - 1) % fieldCount
		case key.Matches(msg, m.keys.Down):
			m.field = (m.field + 1) % fieldCount
		case key.Matches(msg, m.keys.Left):
			m.adjust(-1)
		case key.Matches(msg, m.keys.Right):
			m.adjust(1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// adjust moves the selected field one step in dir.
func (m *SettingsModel) adjust(dir int) {
	switch m.field {
	case fieldVolume:
		m.values.VolumeDB += dir * volumeStep
	case fieldBrightness:
		m.values.Brightness += dir * brightnessStep
	case fieldLanguage:
		if dir > 0 {
			m.values.Language = i18n.Next(m.values.Language)
		} else {
			m.values.Language = prevLanguage(m.values.Language)
		}
	case fieldMusic:
		m.values.Music = !m.values.Music
	}
	m.values = m.values.Normalize()
}

func prevLanguage(lang string) string {
	for i, l := range i18n.Languages {
		if l == lang {
			return i18n.Languages[(i+len(i18n.Languages)-1)%len(i18n.Languages)]
		}
	}
	return i18n.Languages[0]
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting || m.done {
		return ""
	}
	lang := m.values.Language

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(i18n.T(lang, i18n.SettingsTitle)), m.width))
	b.WriteString("\n\n")

	volPct := float64(m.values.VolumeDB-storage.MinVolumeDB) / float64(storage.MaxVolumeDB-storage.MinVolumeDB)
	brightPct := float64(m.values.Brightness) / float64(storage.MaxBrightness)
	music := i18n.T(lang, i18n.Off)
	if m.values.Music {
		music = i18n.T(lang, i18n.On)
	}

	rows := []struct {
		field settingsField
		label string
		value string
	}{
		{fieldVolume, i18n.T(lang, i18n.SettingsVolume), m.volume.ViewAs(volPct) + fmt.Sprintf(" %4d dB", m.values.VolumeDB)},
		{fieldBrightness, i18n.T(lang, i18n.SettingsBrightness), m.brightness.ViewAs(brightPct) + fmt.Sprintf(" %4d%%", m.values.Brightness)},
		{fieldLanguage, i18n.T(lang, i18n.SettingsLanguage), "< " + strings.ToUpper(lang) + " >"},
		{fieldMusic, i18n.T(lang, i18n.SettingsMusic), music},
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	for _, row := range rows {
		cursor := "  "
		label := labelStyle.Render(row.label)
		if row.field == m.field {
			cursor = "> "
			label = selectedStyle.Render(label)
		}
		b.WriteString(centerText(cursor+label+" "+row.value, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Settings returns the edited values.
func (m SettingsModel) Settings() storage.Settings {
	return m.values
}

// Done reports whether the user left the screen; Saved whether they kept
// their changes.
func (m SettingsModel) Done() bool  { return m.done }
func (m SettingsModel) Saved() bool { return m.saved }

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
