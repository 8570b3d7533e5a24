package i18n

import "testing"

func TestEveryKeyTranslated(t *testing.T) {
	for key := range catalog[English] {
		for _, lang := range Languages {
			if _, ok := catalog[lang][key]; !ok {
				t.Errorf("%s missing key %q", lang, key)
			}
		}
	}
}

func TestFallbacks(t *testing.T) {
	if got := T("de", MenuPlay); got != "Play" {
		t.Errorf("unknown language: got %q, want English", got)
	}
	if got := T(French, "no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key: got %q", got)
	}
	if got := T(French, MenuPlay); got != "Jouer" {
		t.Errorf("French play = %q", got)
	}
}

func TestNext(t *testing.T) {
	tests := []struct{ in, want string }{
		{English, French},
		{French, English},
		{"xx", English},
	}
	for _, tt := range tests {
		if got := Next(tt.in); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTf(t *testing.T) {
	if got := Tf(English, Fallen, 12, 50); got != "You have fallen... 12/50" {
		t.Errorf("Tf = %q", got)
	}
}
