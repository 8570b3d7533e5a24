package actor

import (
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

const tile = 48

func newContext(t *testing.T, seed int64) *world.Context {
	t.Helper()
	catalog := world.NewCatalog([]world.TileType{
		{Name: "grass", Glyph: ','},
		{Name: "wall", Glyph: '#', Collision: true},
	})
	grid, err := world.NewGrid(30, 30)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 30; r++ {
		for c := 0; c < 30; c++ {
			grid.SetTile(world.LayerGround, c, r, 0)
		}
	}
	ctx, err := world.NewContext(grid, catalog, tile, seed)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

var hitbox = core.NewRect(8, 16, 16, 16)

func defaultTuning() PlayerTuning {
	return PlayerTuning{
		AttackCost:           25,
		AttackDamage:         1,
		AttackTicks:          20,
		AttackSpeed:          5,
		AttackReach:          24,
		StaminaRegenAmount:   1,
		StaminaRegenInterval: 6,
		DeathRegenAmount:     1,
		DeathRegenInterval:   10,
		ReviveFraction:       0.5,
	}
}

func addPlayer(ctx *world.Context, x, y int) *world.Entity {
	p := world.NewPlayer(x, y, 4, hitbox, world.PlayerData{
		Health: 100, MaxHealth: 100, Stamina: 100, MaxStamina: 100,
	})
	ctx.Add(p)
	return p
}

func TestPlayerMovesAndFaces(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)

	UpdatePlayer(ctx, p, PlayerInput{DX: 1}, defaultTuning())
	if p.X != 484 || p.Facing != world.DirRight || p.Player.State != world.PlayerMoving {
		t.Errorf("after right: X=%d facing=%v state=%v", p.X, p.Facing, p.Player.State)
	}

	UpdatePlayer(ctx, p, PlayerInput{}, defaultTuning())
	if p.X != 484 || p.Player.State != world.PlayerIdle {
		t.Errorf("after release: X=%d state=%v", p.X, p.Player.State)
	}
}

func TestPlayerAttack(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	p.Facing = world.DirLeft
	tun := defaultTuning()
	tun.StaminaRegenInterval = 0

	ev := UpdatePlayer(ctx, p, PlayerInput{DX: 1, Attack: true}, tun)
	if !ev.Swung {
		t.Fatal("attack should start")
	}
	if p.Player.Stamina != 75 {
		t.Errorf("stamina = %d, want 75 immediately", p.Player.Stamina)
	}
	if p.Player.AttackDir != world.DirLeft {
		t.Errorf("attack direction = %v, want locked to facing left", p.Player.AttackDir)
	}

	for i := 0; i < tun.AttackTicks-1; i++ {
		ev = UpdatePlayer(ctx, p, PlayerInput{DX: 1, Attack: true}, tun)
		if ev.Swung {
			t.Fatalf("tick %d: started a second swing while attacking", i)
		}
		if p.X != 480 || p.Y != 480 {
			t.Fatalf("tick %d: attacking relocated the player to (%d, %d)", i, p.X, p.Y)
		}
		if p.Player.State != world.PlayerAttacking {
			t.Fatalf("tick %d: state = %v", i, p.Player.State)
		}
	}

	ev = UpdatePlayer(ctx, p, PlayerInput{DX: 1, Attack: true}, tun)
	if ev.Swung {
		t.Error("the tick a swing ends on should not start another")
	}
	if p.Player.State != world.PlayerMoving {
		t.Errorf("state after swing = %v, want moving", p.Player.State)
	}
	if p.X != 484 {
		t.Errorf("movement should resume on the tick the swing ends, X = %d", p.X)
	}
}

func TestAttackLocksMovementForAttackTicks(t *testing.T) {
	for _, ticks := range []int{1, 2, 5, 20} {
		ctx := newContext(t, 1)
		p := addPlayer(ctx, 480, 480)
		tun := defaultTuning()
		tun.AttackTicks = ticks

		UpdatePlayer(ctx, p, PlayerInput{Attack: true}, tun)
		locked := 1
		for p.X == 480 && locked < 100 {
			UpdatePlayer(ctx, p, PlayerInput{DX: 1}, tun)
			if p.X == 480 {
				locked++
			}
		}
		if locked != ticks {
			t.Errorf("AttackTicks=%d: movement locked for %d ticks", ticks, locked)
		}
		if p.X != 484 {
			t.Errorf("AttackTicks=%d: X = %d after the swing, want 484", ticks, p.X)
		}
	}
}

func TestPlayerAttackNeedsStamina(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	p.Player.Stamina = 24
	tun := defaultTuning()
	tun.StaminaRegenInterval = 0

	ev := UpdatePlayer(ctx, p, PlayerInput{Attack: true}, tun)
	if ev.Swung || p.Player.State == world.PlayerAttacking {
		t.Error("attack should not start without enough stamina")
	}
	if p.Player.Stamina != 24 {
		t.Errorf("stamina = %d, want untouched", p.Player.Stamina)
	}
}

func TestStaminaRegen(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	p.Player.Stamina = 98
	tun := defaultTuning()

	for i := 0; i < 5; i++ {
		UpdatePlayer(ctx, p, PlayerInput{DX: 1}, tun)
	}
	if p.Player.Stamina != 98 {
		t.Errorf("stamina = %d before the interval", p.Player.Stamina)
	}
	UpdatePlayer(ctx, p, PlayerInput{}, tun)
	if p.Player.Stamina != 99 {
		t.Errorf("stamina = %d, want 99", p.Player.Stamina)
	}
	for i := 0; i < 60; i++ {
		UpdatePlayer(ctx, p, PlayerInput{}, tun)
	}
	if p.Player.Stamina != 100 {
		t.Errorf("stamina = %d, want capped at 100", p.Player.Stamina)
	}
}

func TestDeathRegen(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	tun := defaultTuning()
	tun.DeathRegenInterval = 1

	if !DamagePlayer(p, 100) {
		t.Fatal("lethal damage should kill")
	}
	p.Player.Health = 5
	p.X, p.Y = 900, 900

	UpdatePlayer(ctx, p, PlayerInput{DX: 1}, tun)
	if p.Player.Health != 6 || !p.Player.Dead {
		t.Fatalf("after one regen tick: health=%d dead=%v, want 6 and dead", p.Player.Health, p.Player.Dead)
	}
	if p.X != 900 {
		t.Error("dead player moved")
	}

	var ev PlayerEvents
	for p.Player.Health < 49 {
		ev = UpdatePlayer(ctx, p, PlayerInput{Attack: true}, tun)
		if ev.Swung || ev.Revived {
			t.Fatalf("health %d: dead player swung=%v revived=%v", p.Player.Health, ev.Swung, ev.Revived)
		}
	}
	if !p.Player.Dead {
		t.Fatal("player revived below half health")
	}

	ev = UpdatePlayer(ctx, p, PlayerInput{}, tun)
	if !ev.Revived || p.Player.Dead || p.Player.Health != 50 {
		t.Fatalf("at 50: revived=%v dead=%v health=%d", ev.Revived, p.Player.Dead, p.Player.Health)
	}
	if p.X != 480 || p.Y != 480 {
		t.Errorf("revived at (%d, %d), want spawn (480, 480)", p.X, p.Y)
	}
}

func TestDeathRegenInterval(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	tun := defaultTuning()
	DamagePlayer(p, 200)

	for i := 0; i < 9; i++ {
		UpdatePlayer(ctx, p, PlayerInput{}, tun)
	}
	if p.Player.Health != 0 {
		t.Errorf("health = %d before the interval", p.Player.Health)
	}
	UpdatePlayer(ctx, p, PlayerInput{}, tun)
	if p.Player.Health != 1 {
		t.Errorf("health = %d, want 1 after 10 ticks", p.Player.Health)
	}
}

func TestDamagePlayer(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	p.Player.State = world.PlayerAttacking
	p.Player.AttackTicksLeft = 5

	if DamagePlayer(p, 30) || p.Player.Health != 70 {
		t.Errorf("non-lethal hit: health=%d dead=%v", p.Player.Health, p.Player.Dead)
	}
	if !DamagePlayer(p, 70) || p.Player.Health != 0 {
		t.Errorf("lethal hit: health=%d", p.Player.Health)
	}
	if p.Player.State != world.PlayerIdle || p.Player.AttackTicksLeft != 0 {
		t.Error("death should cancel the attack")
	}
	if DamagePlayer(p, 10) {
		t.Error("hitting a dead player should not kill again")
	}
	if DamagePlayer(nil, 10) {
		t.Error("nil entity")
	}
}

func TestReviveThreshold(t *testing.T) {
	tests := []struct {
		max  int
		frac float64
		want int
	}{
		{100, 0.5, 50},
		{101, 0.5, 51},
		{70, 0.5, 35},
		{100, 1, 100},
	}
	for _, tt := range tests {
		if got := ReviveThreshold(tt.max, tt.frac); got != tt.want {
			t.Errorf("ReviveThreshold(%d, %v) = %d, want %d", tt.max, tt.frac, got, tt.want)
		}
	}
}

func TestAttackBoxAndStrikes(t *testing.T) {
	ctx := newContext(t, 1)
	p := addPlayer(ctx, 480, 480)
	npc := world.NewNPC(480+30, 480, 1, hitbox, world.NPCData{Health: 1, MaxHealth: 1})

	if Strikes(p, npc, 24) {
		t.Error("idle player should not strike")
	}

	p.Player.State = world.PlayerAttacking
	p.Player.AttackDir = world.DirRight
	box := AttackBox(p, 24)
	if box.X != 488 || box.W != 40 || box.H != 16 {
		t.Errorf("right attack box = %+v", box)
	}
	if !Strikes(p, npc, 24) {
		t.Error("swing to the right should reach an NPC 30px away")
	}

	p.Player.AttackDir = world.DirLeft
	if Strikes(p, npc, 24) {
		t.Error("swing to the left should miss an NPC on the right")
	}
	if box := AttackBox(p, 24); box.X != 464 || box.W != 40 {
		t.Errorf("left attack box = %+v", box)
	}

	p.Player.AttackDir = world.DirUp
	if box := AttackBox(p, 10); box.Y != 486 || box.H != 26 {
		t.Errorf("up attack box = %+v", box)
	}
	if Strikes(nil, npc, 24) || Strikes(p, nil, 24) {
		t.Error("nil entities never strike")
	}
}
