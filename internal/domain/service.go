package domain

import "context"

// LevelCatalog is the port for level content. Implementations parse
// raw level records handed over by a transport collaborator (bundled
// file, HTTP fetch); the domain only sees typed levels.
type LevelCatalog interface {
	// GetLevel returns the level with the given id. A level that does
	// not exist in the source yields a LEVEL_NOT_FOUND error; a level
	// with some malformed exercises yields the parseable subset.
	GetLevel(ctx context.Context, levelID int) (*Level, error)

	// ListLevels returns summaries of every level in the source, in
	// catalog order.
	ListLevels(ctx context.Context) ([]LevelSummary, error)
}

// LevelResult is the persisted best outcome for one level
type LevelResult struct {
	LevelID  int
	Stars    int
	BestTime float64 // seconds, negative when never completed
}

// ProgressionRepository is the port for per-player persisted
// progression. Every mutation must be flushed before the call returns.
type ProgressionRepository interface {
	// GetHighestUnlocked returns the highest unlocked level id,
	// defaulting to 1 when nothing was ever recorded.
	GetHighestUnlocked(ctx context.Context) (int, error)

	// IsUnlocked reports whether the level may be played
	IsUnlocked(ctx context.Context, levelID int) (bool, error)

	// RecordLevelCompletion unlocks levelID+1 when won and levelID is
	// at or past the current highest. Never decreases the stored
	// value. Returns whether a new level was unlocked.
	RecordLevelCompletion(ctx context.Context, levelID int, won bool) (bool, error)

	// GetLevelStars returns the best star rating for a level (0 when
	// never completed)
	GetLevelStars(ctx context.Context, levelID int) (int, error)

	// SaveLevelStars stores the rating only when it beats the previous
	// best. Returns whether a new record was set.
	SaveLevelStars(ctx context.Context, levelID int, stars int) (bool, error)

	// GetBestTime returns the best completion time in seconds, or a
	// negative value when never completed
	GetBestTime(ctx context.Context, levelID int) (float64, error)

	// SaveBestTime stores the time only when it is lower than the
	// previous best. Returns whether a new record was set.
	SaveBestTime(ctx context.Context, levelID int, seconds float64) (bool, error)

	// GetLevelResults returns all persisted per-level results
	GetLevelResults(ctx context.Context) ([]LevelResult, error)

	// ResetProgress clears everything back to defaults
	ResetProgress(ctx context.Context) error
}
