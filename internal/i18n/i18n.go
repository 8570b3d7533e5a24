// Package i18n holds the user-facing strings for every supported language.
package i18n

import "fmt"

// Supported languages.
const (
	English = "en"
	French  = "fr"
)

// Languages lists the languages in the order the settings screen cycles them.
var Languages = []string{English, French}

// Message keys.
const (
	Health       = "hud.health"
	Stamina      = "hud.stamina"
	Foes         = "hud.foes"
	Time         = "hud.time"
	Fallen       = "hud.fallen"
	Paused       = "overlay.paused"
	PausedHint   = "overlay.paused_hint"
	Cleared      = "overlay.cleared"
	ClearedHint  = "overlay.cleared_hint"
	HelpLine     = "hud.help"
	TooSmall     = "screen.too_small"
	TooSmallHint = "screen.too_small_hint"

	MenuPlay     = "menu.play"
	MenuSettings = "menu.settings"
	MenuScores   = "menu.scores"
	MenuQuit     = "menu.quit"
	MenuHint     = "menu.hint"

	SettingsTitle      = "settings.title"
	SettingsVolume     = "settings.volume"
	SettingsBrightness = "settings.brightness"
	SettingsLanguage   = "settings.language"
	SettingsMusic      = "settings.music"
	SettingsHint       = "settings.hint"
	On                 = "value.on"
	Off                = "value.off"
)

var catalog = map[string]map[string]string{
	English: {
		Health:       "HP",
		Stamina:      "ST",
		Foes:         "Foes",
		Time:         "Time",
		Fallen:       "You have fallen... %d/%d",
		Paused:       "PAUSED",
		PausedHint:   "Press P to resume",
		Cleared:      "LEVEL CLEARED",
		ClearedHint:  "Defeated: %d  |  Press R to restart",
		HelpLine:     "arrows/wasd move  space attack  p pause  g debug  q quit",
		TooSmall:     "Window too small",
		TooSmallHint: "Need %dx%d",

		MenuPlay:     "Play",
		MenuSettings: "Settings",
		MenuScores:   "Scores",
		MenuQuit:     "Quit",
		MenuHint:     "↑/↓ select • enter confirm • q quit",

		SettingsTitle:      "Settings",
		SettingsVolume:     "Music volume",
		SettingsBrightness: "Brightness",
		SettingsLanguage:   "Language",
		SettingsMusic:      "Music",
		SettingsHint:       "↑/↓ select • ←/→ adjust • enter save • esc back",
		On:                 "on",
		Off:                "off",
	},
	French: {
		Health:       "PV",
		Stamina:      "EN",
		Foes:         "Ennemis",
		Time:         "Temps",
		Fallen:       "Vous êtes tombé... %d/%d",
		Paused:       "PAUSE",
		PausedHint:   "Appuyez sur P pour reprendre",
		Cleared:      "NIVEAU TERMINÉ",
		ClearedHint:  "Vaincus : %d  |  R pour recommencer",
		HelpLine:     "flèches/wasd bouger  espace attaquer  p pause  g debug  q quitter",
		TooSmall:     "Fenêtre trop petite",
		TooSmallHint: "Il faut %dx%d",

		MenuPlay:     "Jouer",
		MenuSettings: "Paramètres",
		MenuScores:   "Scores",
		MenuQuit:     "Quitter",
		MenuHint:     "↑/↓ choisir • entrée valider • q quitter",

		SettingsTitle:      "Paramètres",
		SettingsVolume:     "Volume musique",
		SettingsBrightness: "Luminosité",
		SettingsLanguage:   "Langue",
		SettingsMusic:      "Musique",
		SettingsHint:       "↑/↓ choisir • ←/→ régler • entrée sauver • échap retour",
		On:                 "oui",
		Off:                "non",
	},
}

// Supported reports whether lang has a string table.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// T returns the string for key in lang. Unknown languages fall back to
// English and unknown keys return the key itself.
func T(lang, key string) string {
	table, ok := catalog[lang]
	if !ok {
		table = catalog[English]
	}
	if s, ok := table[key]; ok {
		return s
	}
	if s, ok := catalog[English][key]; ok {
		return s
	}
	return key
}

// Tf formats the string for key with args.
func Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// Next returns the language after lang in Languages, wrapping around.
func Next(lang string) string {
	for i, l := range Languages {
		if l == lang {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return Languages[0]
}
