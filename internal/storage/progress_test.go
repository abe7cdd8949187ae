package storage

import (
	"testing"

	"github.com/vovakirdan/kana-arcade/internal/progress"
)

func TestStoreLevelRecordsAreMonotonic(t *testing.T) {
	store := openTestStore(t)

	writes := []progress.Record{
		{Category: "numbers", Level: 1, BestCorrect: 12, HighScore: 90},
		{Category: "numbers", Level: 1, BestCorrect: 8, HighScore: 150},
		{Category: "numbers", Level: 1, BestCorrect: 3, HighScore: 10},
	}
	for _, rec := range writes {
		if err := store.SaveRecord("local", rec); err != nil {
			t.Fatalf("SaveRecord() failed: %v", err)
		}
	}

	records, _, err := store.LoadProgress("local")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.BestCorrect != 12 || got.HighScore != 150 {
		t.Errorf("record = %+v, want best_correct 12 and high_score 150", got)
	}
}

func TestStoreUnlocks(t *testing.T) {
	store := openTestStore(t)

	key := progress.Key{Category: "animals", Level: 2}
	for i := 0; i < 2; i++ {
		if err := store.SaveUnlock("alice", key); err != nil {
			t.Fatalf("SaveUnlock() failed: %v", err)
		}
	}

	_, keys, err := store.LoadProgress("alice")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Errorf("keys = %v, want [%v]", keys, key)
	}

	_, others, err := store.LoadProgress("bob")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if len(others) != 0 {
		t.Errorf("bob should have no unlocks, got %v", others)
	}
}

func TestStoreProfilesAndReset(t *testing.T) {
	store := openTestStore(t)

	store.SaveUnlock("bob", progress.Key{Category: "food", Level: 2})
	store.SaveRecord("alice", progress.Record{Category: "food", Level: 1, HighScore: 10})

	profiles, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 2 || profiles[0] != "alice" || profiles[1] != "bob" {
		t.Errorf("profiles = %v, want [alice bob]", profiles)
	}

	if err := store.ResetProgress("alice"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	records, keys, _ := store.LoadProgress("alice")
	if len(records) != 0 || len(keys) != 0 {
		t.Errorf("alice progress not reset: %v %v", records, keys)
	}
}

func TestTrackerOverStore(t *testing.T) {
	store := openTestStore(t)

	tr := progress.New("local", nil, store, nil)
	tr.Record(progress.Result{Category: "numbers", Level: 1, Score: 40, Correct: 4})

	reloaded := progress.New("local", nil, store, nil)
	if best := reloaded.Best("numbers", 1); best.HighScore != 40 || best.BestCorrect != 4 {
		t.Errorf("reloaded best = %+v", best)
	}
}
