package models

import (
	"database/sql"
	"time"
)

// PlayerProgress is the single-row unlock cursor. The row is seeded by
// the initial migration and only ever updated.
type PlayerProgress struct {
	ID              int       `db:"id"`
	HighestUnlocked int       `db:"highest_unlocked"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// LevelResultRow is the persisted best outcome for one level. BestTime
// is NULL until the level is completed at least once.
type LevelResultRow struct {
	LevelID   int             `db:"level_id"`
	Stars     int             `db:"stars"`
	BestTime  sql.NullFloat64 `db:"best_time_seconds"`
	UpdatedAt time.Time       `db:"updated_at"`
}
