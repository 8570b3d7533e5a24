package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                      { return g.id }
func (g *stubGame) Title() string                   { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)        {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)             {}
func (g *stubGame) State() core.GameState           { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", "Stub", func(config.QuestConfig) (Game, error) {
		return &stubGame{id: "zz_stub"}, nil
	})

	if !Exists("zz_stub") {
		t.Fatal("registered game not found")
	}
	g, err := Create("zz_stub", config.DefaultQuestConfig())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List does not include the stub")
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("does_not_exist", config.DefaultQuestConfig()); err == nil {
		t.Error("unknown id should fail")
	}

	boom := errors.New("boom")
	Register("zz_failing", "Failing", func(config.QuestConfig) (Game, error) { return nil, boom })
	if _, err := Create("zz_failing", config.DefaultQuestConfig()); !errors.Is(err, boom) {
		t.Errorf("factory error not wrapped: %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(config.QuestConfig) (Game, error) { return &stubGame{}, nil }
	Register("zz_dup", "Dup", f)
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz_dup", "Dup", f)
}
