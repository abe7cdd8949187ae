package storage

import (
	"fmt"

	"github.com/vovakirdan/kana-arcade/internal/progress"
)

// levelRecordRow mirrors a level_records row.
type levelRecordRow struct {
	Category    string `db:"category"`
	Level       int    `db:"level"`
	BestCorrect int    `db:"best_correct"`
	HighScore   int    `db:"high_score"`
}

// unlockRow mirrors an unlocked_levels row.
type unlockRow struct {
	Category string `db:"category"`
	Level    int    `db:"level"`
}

// LoadProgress returns all level records and unlocked levels for a profile.
func (s *Store) LoadProgress(profile string) ([]progress.Record, []progress.Key, error) {
	var recs []levelRecordRow
	err := s.db.Select(&recs,
		`SELECT category, level, best_correct, high_score
		 FROM level_records
		 WHERE profile = ?
		 ORDER BY category, level`,
		profile,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query level records: %w", err)
	}

	var unlocks []unlockRow
	err = s.db.Select(&unlocks,
		`SELECT category, level
		 FROM unlocked_levels
		 WHERE profile = ?
		 ORDER BY category, level`,
		profile,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query unlocked levels: %w", err)
	}

	records := make([]progress.Record, len(recs))
	for i, r := range recs {
		records[i] = progress.Record{
			Category:    r.Category,
			Level:       r.Level,
			BestCorrect: r.BestCorrect,
			HighScore:   r.HighScore,
		}
	}
	keys := make([]progress.Key, len(unlocks))
	for i, u := range unlocks {
		keys[i] = progress.Key{Category: u.Category, Level: u.Level}
	}
	return records, keys, nil
}

// SaveRecord upserts a level record. Stored values never decrease.
func (s *Store) SaveRecord(profile string, rec progress.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO level_records (profile, category, level, best_correct, high_score)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (profile, category, level) DO UPDATE SET
			best_correct = MAX(best_correct, excluded.best_correct),
			high_score = MAX(high_score, excluded.high_score),
			updated_at = CURRENT_TIMESTAMP`,
		profile, rec.Category, rec.Level, rec.BestCorrect, rec.HighScore,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level record: %w", err)
	}
	return nil
}

// SaveUnlock marks a level unlocked. Unlocking twice is a no-op.
func (s *Store) SaveUnlock(profile string, key progress.Key) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO unlocked_levels (profile, category, level) VALUES (?, ?, ?)`,
		profile, key.Category, key.Level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save unlock: %w", err)
	}
	return nil
}

// Profiles lists every profile with stored progress.
func (s *Store) Profiles() ([]string, error) {
	var profiles []string
	err := s.db.Select(&profiles,
		`SELECT profile FROM level_records
		 UNION SELECT profile FROM unlocked_levels
		 ORDER BY profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}
	return profiles, nil
}

// ResetProgress deletes all progress for a profile.
func (s *Store) ResetProgress(profile string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM level_records WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot reset level records: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM unlocked_levels WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot reset unlocks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

var _ progress.Backend = (*Store)(nil)
