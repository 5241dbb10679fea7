package storage

import (
	"os"
	"path/filepath"
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

func save(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveScore(ScoreRecord{GameID: gameID, Score: score}); err != nil {
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "balloonpop", 100)
	save(t, store, "balloonpop", 50)
	save(t, store, "balloonpop", 200)
	save(t, store, "other", 500)

	scores, err := store.TopScores("balloonpop", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for other game, got %d", len(other))
	}
}

func TestStoreRecordFields(t *testing.T) {
	store := openTestStore(t)

	rec := ScoreRecord{
		RunID:   "run-1",
		GameID:  "balloonpop_layout",
		Layout:  "01-warmup",
		Score:   48,
		Pops:    4,
		Undos:   2,
		Rows:    4,
		Cols:    4,
		Cleared: true,
	}
	if _, err := store.SaveScore(rec); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	got, err := store.ScoreByRunID("run-1")
	if err != nil {
		t.Fatalf("ScoreByRunID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("ScoreByRunID() returned nil")
	}
	if got.ScoreRecord != rec {
		t.Errorf("stored record = %+v, want %+v", got.ScoreRecord, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	missing, err := store.ScoreByRunID("nope")
	if err != nil || missing != nil {
		t.Errorf("ScoreByRunID(nope) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStoreGeneratesRunID(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "balloonpop", 10)
	save(t, store, "balloonpop", 10)

	scores, _ := store.AllScores("balloonpop")
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Errorf("run IDs should be unique and non-empty: %q, %q", scores[0].RunID, scores[1].RunID)
	}

	// Saving the same run twice is rejected.
	if _, err := store.SaveScore(ScoreRecord{RunID: scores[0].RunID, GameID: "balloonpop"}); err == nil {
		t.Error("duplicate run ID should fail")
	}
	if _, err := store.SaveScore(ScoreRecord{Score: 5}); err == nil {
		t.Error("missing game ID should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("balloonpop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "balloonpop", 100)
	save(t, store, "balloonpop", 300)
	save(t, store, "balloonpop", 200)

	high, err = store.HighScore("balloonpop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "balloonpop", 100)
	save(t, store, "balloonpop", 200)
	save(t, store, "other", 300)

	if err := store.ClearScores("balloonpop"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("balloonpop", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other game scores should not be affected")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("balloonpop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore(ScoreRecord{GameID: "balloonpop", Score: 10, Cleared: true})
	store.SaveScore(ScoreRecord{GameID: "balloonpop", Score: 30})
	store.SaveScore(ScoreRecord{GameID: "other", Score: 7})

	stats, err := store.GetGameStats("balloonpop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.ClearedCount != 1 || stats.HighScore != 30 ||
		stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["other"].HighScore != 7 || all["other"].ClearedCount != 0 {
		t.Errorf("other stats = %+v", all["other"])
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

func TestStoreExpandHomePath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := Open("~/.balloons/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".balloons", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
