package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/fruitcatch/internal/core"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
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

// playRun records a short run with taps and a resize.
func playRun(t *testing.T, seed int64, ticks int) (fruit.Recording, fruit.Snapshot) {
	t.Helper()
	s := fruit.NewSession(fruit.DefaultRules(), 60)
	s.Start(seed, core.Viewport{W: 800, H: 480})

	frame := core.NewInputFrame()
	for i := 0; i < ticks && s.Phase() == fruit.PhasePlaying; i++ {
		frame.Clear()
		if i%5 == 0 {
			frame.AddTap(float64(i%80)*10+5, float64(i%24)*20+10)
		}
		if i == 100 {
			frame.SetResize(core.Viewport{W: 640, H: 480})
		}
		s.Step(frame)
	}
	return s.Recording(), s.Snapshot()
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

func TestSaveAndLoadRecording(t *testing.T) {
	store := openTestStore(t)
	rec, final := playRun(t, 99, 300)

	id, err := store.SaveReplay(rec, final)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	loaded, err := store.LoadRecording(id)
	if err != nil {
		t.Fatalf("LoadRecording() failed: %v", err)
	}
	if loaded.Seed != rec.Seed || loaded.TickRate != rec.TickRate || loaded.Ticks != rec.Ticks {
		t.Errorf("header mismatch: got %+v", loaded)
	}
	if loaded.View != rec.View {
		t.Errorf("view = %+v, want %+v", loaded.View, rec.View)
	}
	if !reflect.DeepEqual(loaded.Inputs, rec.Inputs) {
		t.Errorf("inputs differ: %d loaded, %d recorded", len(loaded.Inputs), len(rec.Inputs))
	}
	if !reflect.DeepEqual(loaded.Config, rec.Config) {
		t.Errorf("config differs:\n got %+v\nwant %+v", loaded.Config, rec.Config)
	}

	replayed, err := fruit.Simulate(loaded)
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if replayed.Hash() != final.Hash() {
		t.Errorf("replayed hash = %d, want %d", replayed.Hash(), final.Hash())
	}
}

func TestReplayByID(t *testing.T) {
	store := openTestStore(t)
	rec, final := playRun(t, 5, 200)

	id, err := store.SaveReplay(rec, final)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	r, err := store.ReplayByID(id)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if r.ID != id || r.Seed != 5 || r.Ticks != final.Tick {
		t.Errorf("replay = %+v", r)
	}
	if r.Outcome != final.Phase.String() || r.TierName != final.Tier.Name {
		t.Errorf("outcome = %q tier = %q", r.Outcome, r.TierName)
	}
	if r.FinalHash != final.Hash() {
		t.Errorf("hash = %d, want %d", r.FinalHash, final.Hash())
	}
	if r.Inputs != len(rec.Inputs) {
		t.Errorf("inputs = %d, want %d", r.Inputs, len(rec.Inputs))
	}
	if r.Viewport() != rec.View {
		t.Errorf("viewport = %+v, want %+v", r.Viewport(), rec.View)
	}
}

func TestReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.ReplayByID(42); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("ReplayByID() error = %v, want ErrReplayNotFound", err)
	}
	if _, err := store.LoadRecording(42); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("LoadRecording() error = %v, want ErrReplayNotFound", err)
	}
	if err := store.DeleteReplay(42); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("DeleteReplay() error = %v, want ErrReplayNotFound", err)
	}
}

func TestRecentReplaysNewestFirst(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		rec, final := playRun(t, int64(i+1), 50)
		id, err := store.SaveReplay(rec, final)
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	replays, err := store.RecentReplays(3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(replays))
	}
	for i, r := range replays {
		if want := ids[len(ids)-1-i]; r.ID != want {
			t.Errorf("replays[%d].ID = %d, want %d", i, r.ID, want)
		}
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	rec, final := playRun(t, 8, 100)

	id, err := store.SaveReplay(rec, final)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.ReplayByID(id); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("replay still present after delete: %v", err)
	}

	var inputs int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_inputs").Scan(&inputs); err != nil {
		t.Fatalf("count inputs: %v", err)
	}
	if inputs != 0 {
		t.Errorf("inputs left after delete: %d", inputs)
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestVerifyReplay(t *testing.T) {
	store := openTestStore(t)
	rec, final := playRun(t, 31, 400)

	id, err := store.SaveReplay(rec, final)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	check, err := store.VerifyReplay(id)
	if err != nil {
		t.Fatalf("VerifyReplay() failed: %v", err)
	}
	if !check.Match {
		t.Error("stored replay should re-simulate to the same hash")
	}
	if check.Final.Score != final.Score || check.Final.Phase != final.Phase {
		t.Errorf("final = %v/%d, want %v/%d", check.Final.Phase, check.Final.Score, final.Phase, final.Score)
	}

	// Tamper with the input log
	if _, err := store.db.Exec("DELETE FROM replay_inputs WHERE replay_id = ? AND kind = ?", id, int(fruit.InputResize)); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	check, err = store.VerifyReplay(id)
	if err != nil {
		t.Fatalf("VerifyReplay() failed: %v", err)
	}
	if check.Match {
		t.Error("tampered replay should not match")
	}
}
