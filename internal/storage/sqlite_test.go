package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveRun(Run{GameID: "recall", Level: 2, Rounds: 7, LongestPattern: 3})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Level != 2 || run.Rounds != 7 || run.LongestPattern != 3 {
		t.Errorf("unexpected run after reopen: %+v", run)
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "recall", Player: "ana", Level: 1, Rounds: 2, LongestPattern: 2})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun returned non-uuid id %q", id)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Player != "ana" || run.GameID != "recall" {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestSaveRunExplicitID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	got, err := store.SaveRun(Run{ID: want, GameID: "recall", Level: 1})
	if err != nil || got != want {
		t.Fatalf("SaveRun() = %q, %v; want %q", got, err, want)
	}

	if _, err := store.SaveRun(Run{ID: want, GameID: "recall", Level: 1}); err == nil {
		t.Error("duplicate run id should fail")
	}
	if _, err := store.SaveRun(Run{ID: "not-a-uuid", GameID: "recall"}); err == nil {
		t.Error("malformed run id should fail")
	}
}

func TestRunByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RunByID(uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID() = %v, want ErrNotFound", err)
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "recall", Player: "a", Level: 2, Rounds: 6, LongestPattern: 4},
		{GameID: "recall", Player: "b", Level: 3, Rounds: 11, LongestPattern: 2},
		{GameID: "recall", Player: "c", Level: 2, Rounds: 9, LongestPattern: 5},
		{GameID: "recall", Player: "d", Level: 1, Rounds: 3, LongestPattern: 3},
		{GameID: "recall_endless", Player: "e", Level: 1, Rounds: 40, LongestPattern: 40},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("recall", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("expected 4 recall runs, got %d", len(top))
	}
	wantOrder := []string{"b", "c", "a", "d"}
	for i, p := range wantOrder {
		if top[i].Player != p {
			t.Errorf("rank %d = %s, want %s", i+1, top[i].Player, p)
		}
	}

	limited, err := store.TopRuns("recall", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(limited))
	}
}

func TestPlayerRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "recall", Player: "ana", Level: 1})
	store.SaveRun(Run{GameID: "recall_endless", Player: "ana", Level: 1})
	store.SaveRun(Run{GameID: "recall", Player: "bo", Level: 4})

	runs, err := store.PlayerRuns("ana", 0)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs for ana, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Player != "ana" {
			t.Errorf("got run for %s", r.Player)
		}
	}
}

func TestBestLevel(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestLevel("recall")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("expected 0 for empty game, got %d", best)
	}

	store.SaveRun(Run{GameID: "recall", Level: 2})
	store.SaveRun(Run{GameID: "recall", Level: 5})
	store.SaveRun(Run{GameID: "recall", Level: 3})

	best, err = store.BestLevel("recall")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 5 {
		t.Errorf("expected best level 5, got %d", best)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "recall", Level: 1})
	store.SaveRun(Run{GameID: "recall", Level: 2})
	store.SaveRun(Run{GameID: "recall_endless", Level: 1})

	if err := store.ClearRuns("recall"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("recall", 10)
	if len(runs) != 0 {
		t.Errorf("expected 0 recall runs after clear, got %d", len(runs))
	}
	endless, _ := store.TopRuns("recall_endless", 10)
	if len(endless) != 1 {
		t.Error("endless runs should not be affected by clearing recall")
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("recall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	store.SaveRun(Run{GameID: "recall", Level: 2, Rounds: 4, LongestPattern: 3})
	store.SaveRun(Run{GameID: "recall", Level: 3, Rounds: 8, LongestPattern: 5})
	store.SaveRun(Run{GameID: "recall_endless", Level: 1, Rounds: 12, LongestPattern: 12})

	stats, err := store.GetGameStats("recall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.BestLevel != 3 || stats.BestRounds != 8 || stats.LongestPattern != 5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgRounds != 6 {
		t.Errorf("AvgRounds = %v, want 6", stats.AvgRounds)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["recall_endless"].LongestPattern != 12 {
		t.Errorf("unexpected all-games stats: %+v", all)
	}
}
