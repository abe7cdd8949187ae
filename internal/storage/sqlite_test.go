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

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("kanafall", "local", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different game
	if _, err := store.SaveScore("pet", "alice", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("kanafall", 10)
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
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	petScores, err := store.TopScores("pet", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(petScores) != 1 || petScores[0].Profile != "alice" {
		t.Errorf("Expected 1 pet score by alice, got %+v", petScores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", "local", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("kanafall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("kanafall", "local", 100)
	store.SaveScore("kanafall", "local", 300)
	store.SaveScore("kanafall", "local", 200)

	high, err = store.HighScore("kanafall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("kanafall", "local", 100)
	store.SaveScore("kanafall", "local", 200)
	store.SaveScore("pet", "local", 300)

	// Clear only kanafall scores
	if err := store.ClearScores("kanafall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	kfScores, _ := store.TopScores("kanafall", 10)
	if len(kfScores) != 0 {
		t.Errorf("Expected 0 kanafall scores after clear, got %d", len(kfScores))
	}

	petScores, _ := store.TopScores("pet", 10)
	if len(petScores) != 1 {
		t.Errorf("Pet scores should not be affected by clearing kanafall")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("kanafall", "local", 100)
	store.SaveScore("kanafall", "local", 300)

	stats, err := store.GetGameStats("kanafall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}

	empty, err := store.GetGameStats("pet")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["kanafall"].HighScore != 300 {
		t.Errorf("unexpected all-games stats: %+v", all)
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
