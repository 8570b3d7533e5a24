package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, r Result) {
	t.Helper()
	if _, err := s.SaveScore(r); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Result{GameID: "quest", Player: "ana", Score: 2, Ticks: 900})
	save(t, store, Result{GameID: "quest", Player: "ben", Score: 1, Ticks: 400})
	save(t, store, Result{GameID: "quest", Player: "cy", Score: 3, Won: true, Ticks: 5000})
	save(t, store, Result{GameID: "other", Player: "ana", Score: 9})

	scores, err := store.TopScores("quest", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 3 || scores[1].Score != 2 || scores[2].Score != 1 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}
	if scores[0].Player != "cy" || !scores[0].Won || scores[0].Ticks != 5000 {
		t.Errorf("Top entry fields lost: %+v", scores[0])
	}
	if scores[1].Won {
		t.Error("Loss recorded as win")
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreTiesPreferFasterRuns(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Result{GameID: "quest", Player: "slow", Score: 3, Ticks: 9000})
	save(t, store, Result{GameID: "quest", Player: "fast", Score: 3, Ticks: 3000})

	scores, err := store.TopScores("quest", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Player != "fast" {
		t.Errorf("Expected the faster run first, got %q", scores[0].Player)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, Result{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("quest")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, Result{GameID: "quest", Score: 1})
	save(t, store, Result{GameID: "quest", Score: 3})
	save(t, store, Result{GameID: "quest", Score: 2})

	high, err = store.HighScore("quest")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 3 {
		t.Errorf("Expected high score of 3, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Result{GameID: "quest", Score: 1})
	save(t, store, Result{GameID: "quest", Score: 2})
	save(t, store, Result{GameID: "other", Score: 3})

	if err := store.ClearScores("quest"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	questScores, _ := store.TopScores("quest", 10)
	if len(questScores) != 0 {
		t.Errorf("Expected 0 quest scores after clear, got %d", len(questScores))
	}
	otherScores, _ := store.AllScores("other")
	if len(otherScores) != 1 {
		t.Errorf("Other game scores should not be affected by clearing quest")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("quest")
	if err != nil {
		t.Fatalf("GetGameStats() on empty table failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty game: %+v", empty)
	}

	save(t, store, Result{GameID: "quest", Score: 1})
	save(t, store, Result{GameID: "quest", Score: 3, Won: true})

	stats, err := store.GetGameStats("quest")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 3 || stats.AvgScore != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestStoreSettings(t *testing.T) {
	store := openTestStore(t)

	st, err := store.LoadSettings("ana")
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if st != DefaultSettings() {
		t.Errorf("Expected defaults for a new player, got %+v", st)
	}

	want := Settings{VolumeDB: -35, Brightness: 40, Language: "fr", Music: false}
	if err := store.SaveSettings("ana", want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	// Saving again updates in place.
	want.Brightness = 60
	if err := store.SaveSettings("ana", want); err != nil {
		t.Fatalf("SaveSettings() update failed: %v", err)
	}

	got, err := store.LoadSettings("ana")
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, want %+v", got, want)
	}

	other, _ := store.LoadSettings("ben")
	if other != DefaultSettings() {
		t.Errorf("Settings leaked across players: %+v", other)
	}
}

func TestSettingsNormalize(t *testing.T) {
	tests := []struct {
		in   Settings
		want Settings
	}{
		{Settings{VolumeDB: -100, Brightness: 150, Language: "fr"}, Settings{VolumeDB: -80, Brightness: 100, Language: "fr"}},
		{Settings{VolumeDB: 5, Brightness: -1, Language: "de"}, Settings{VolumeDB: 0, Brightness: 0, Language: "en"}},
		{Settings{VolumeDB: -10, Brightness: 50, Language: "en", Music: true}, Settings{VolumeDB: -10, Brightness: 50, Language: "en", Music: true}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.tilequest/scores.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.Join(".tilequest", "scores.db")) {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}
