package fruit

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

func TestSpawnerDue(t *testing.T) {
	sp := NewSpawner(rand.New(rand.NewSource(1)))
	var spawnTicks []int
	for tick := 1; tick <= 10; tick++ {
		if sp.Due(3) {
			spawnTicks = append(spawnTicks, tick)
		}
	}
	want := []int{3, 6, 9}
	if len(spawnTicks) != len(want) {
		t.Fatalf("spawn ticks = %v, want %v", spawnTicks, want)
	}
	for i := range want {
		if spawnTicks[i] != want[i] {
			t.Errorf("spawn ticks = %v, want %v", spawnTicks, want)
			break
		}
	}

	// Zero interval means every tick
	sp.Reset(rand.New(rand.NewSource(1)))
	for i := 0; i < 5; i++ {
		if !sp.Due(0) {
			t.Fatalf("Due(0) returned false on tick %d", i+1)
		}
	}
}

func TestSpawnBounds(t *testing.T) {
	sp := NewSpawner(rand.New(rand.NewSource(42)))
	tier := DefaultRules().Tier(0)
	for i := 0; i < 500; i++ {
		e, ok := sp.Spawn(testView, 60, tier)
		if !ok {
			t.Fatal("Spawn failed on a valid viewport")
		}
		if e.X < 0 || e.X+e.Size > testView.W {
			t.Fatalf("x = %v out of [0, %v]", e.X, testView.W-e.Size)
		}
		if e.Y != -60 {
			t.Fatalf("y = %v, want -60", e.Y)
		}
		if e.ID != i+1 {
			t.Fatalf("id = %d, want %d", e.ID, i+1)
		}
	}
}

func TestSpawnBombChance(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		bombs  bool
		fruits bool
	}{
		{"never", 0, false, true},
		{"always", 1, true, false},
		{"mixed", 0.5, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := NewSpawner(rand.New(rand.NewSource(9)))
			tier := Tier{Number: 1, BombChance: tt.chance}
			var sawBomb, sawFruit bool
			for i := 0; i < 200; i++ {
				e, _ := sp.Spawn(testView, 60, tier)
				if e.Kind.IsBomb() {
					sawBomb = true
				} else {
					sawFruit = true
				}
			}
			if sawBomb != tt.bombs || sawFruit != tt.fruits {
				t.Errorf("bombs=%v fruits=%v, want %v/%v", sawBomb, sawFruit, tt.bombs, tt.fruits)
			}
		})
	}
}

func TestSpawnDegenerateViewport(t *testing.T) {
	sp := NewSpawner(rand.New(rand.NewSource(1)))
	tier := DefaultRules().Tier(0)

	views := []core.Viewport{{}, {W: 800, H: 0}, {W: 40, H: 480}, {W: -10, H: -10}}
	for _, v := range views {
		if _, ok := sp.Spawn(v, 60, tier); ok {
			t.Errorf("Spawn succeeded on %+v", v)
		}
	}
	if sp.NextID() != 1 {
		t.Errorf("NextID = %d, want 1", sp.NextID())
	}
}

func TestSpawnSameSeedSameSequence(t *testing.T) {
	tier := DefaultRules().Tier(3)
	a := NewSpawner(rand.New(rand.NewSource(77)))
	b := NewSpawner(rand.New(rand.NewSource(77)))
	for i := 0; i < 50; i++ {
		ea, _ := a.Spawn(testView, 60, tier)
		eb, _ := b.Spawn(testView, 60, tier)
		if ea != eb {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, ea, eb)
		}
	}
}

func TestAdvance(t *testing.T) {
	entities := []Entity{
		{ID: 1, Y: 0, Kind: KindApple, Size: 60},
		{ID: 2, Y: 95, Kind: KindBomb, Size: 60},
		{ID: 3, Y: 50, Kind: KindGrape, Size: 60},
		{ID: 4, Y: 98, Kind: KindPear, Size: 60},
	}
	kept, missed := Advance(entities, 5, 100)

	if len(kept) != 2 || kept[0].ID != 1 || kept[1].ID != 3 {
		t.Errorf("kept = %+v", kept)
	}
	if kept[0].Y != 5 || kept[1].Y != 55 {
		t.Errorf("kept y = %v, %v", kept[0].Y, kept[1].Y)
	}
	if len(missed) != 2 || missed[0].ID != 2 || missed[1].ID != 4 {
		t.Errorf("missed = %+v", missed)
	}
	if n := LivesLost(missed); n != 1 {
		t.Errorf("LivesLost = %d, want 1", n)
	}
}

func TestHitTest(t *testing.T) {
	entities := []Entity{
		{ID: 1, X: 0, Y: 0, Size: 60},
		{ID: 2, X: 200, Y: 0, Size: 60},
	}

	tests := []struct {
		name string
		tap  core.Tap
		want int
	}{
		{"center", core.Tap{X: 30, Y: 30}, 0},
		{"second", core.Tap{X: 230, Y: 30}, 1},
		{"on edge", core.Tap{X: 60, Y: 30}, 0},
		{"bounding box corner", core.Tap{X: 2, Y: 2}, -1},
		{"empty", core.Tap{X: 120, Y: 30}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(entities, tt.tap); got != tt.want {
				t.Errorf("HitTest = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgression(t *testing.T) {
	tier := Tier{Number: 1, RequiredScore: 100}
	var p Progression

	if p.OnScoreChange(90, tier, 3) {
		t.Fatal("armed below threshold")
	}
	if !p.OnScoreChange(100, tier, 3) {
		t.Fatal("not armed at threshold")
	}
	if p.OnScoreChange(150, tier, 3) {
		t.Error("armed twice")
	}

	fired := 0
	for i := 0; i < 3; i++ {
		if p.Tick() {
			fired = i + 1
		}
	}
	if fired != 3 {
		t.Errorf("fired on tick %d, want 3", fired)
	}
	if p.Pending() || p.Tick() {
		t.Error("progression should be idle after firing")
	}
}

func TestProgressionZeroDelay(t *testing.T) {
	var p Progression
	p.OnScoreChange(100, Tier{RequiredScore: 100}, 0)
	if !p.Tick() {
		t.Error("zero delay should fire on the next tick")
	}
}

func TestRulesFromDefaults(t *testing.T) {
	r := DefaultRules()
	if len(r.Tiers) != 5 {
		t.Fatalf("tiers = %d, want 5", len(r.Tiers))
	}
	b := r.Tier(0)
	if b.Name != "Beginner" || b.RequiredScore != 100 || b.FruitSpeed != 3 || b.BombChance != 0 {
		t.Errorf("beginner = %+v", b)
	}
	if r.Points(KindApple) != 10 || r.Points(KindWatermelon) != 80 || r.Points(KindBomb) != -30 {
		t.Error("unexpected default points")
	}
	if r.Tier(-1).Number != 1 || r.Tier(99).Number != 5 {
		t.Error("Tier index should clamp")
	}
}

func TestRulesRejectUnknownKind(t *testing.T) {
	cfg := DefaultRules().Config()
	cfg.Points = map[string]int{"kiwi": 5}
	if _, err := NewRules(cfg); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestKindByName(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := KindByName(k.String())
		if !ok || got != k {
			t.Errorf("KindByName(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindByName("kiwi"); ok {
		t.Error("kiwi should be unknown")
	}
}
