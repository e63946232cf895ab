package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rse-quest/internal/domain"
	"rse-quest/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// neverCompleted is the sentinel returned for levels without a
// recorded completion time.
const neverCompleted = -1.0

// ProgressionDatabaseAdapter implements domain.ProgressionRepository
// using sqlx.DB over SQLite. Writes go through synchronous mode so a
// recorded completion survives process death.
type ProgressionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewProgressionDatabaseAdapter creates a new instance of ProgressionDatabaseAdapter
func NewProgressionDatabaseAdapter(db *sqlx.DB) domain.ProgressionRepository {
	return &ProgressionDatabaseAdapter{db: db}
}

// GetHighestUnlocked implements domain.ProgressionRepository
func (a *ProgressionDatabaseAdapter) GetHighestUnlocked(ctx context.Context) (int, error) {
	var progress models.PlayerProgress
	query := `SELECT id, highest_unlocked, updated_at FROM player_progress WHERE id = 1`

	err := a.db.GetContext(ctx, &progress, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Seed row missing, treat as a fresh save
			return 1, nil
		}
		return 0, fmt.Errorf("failed to get highest unlocked level: %w", err)
	}
	return progress.HighestUnlocked, nil
}

// IsUnlocked implements domain.ProgressionRepository
func (a *ProgressionDatabaseAdapter) IsUnlocked(ctx context.Context, levelID int) (bool, error) {
	highest, err := a.GetHighestUnlocked(ctx)
	if err != nil {
		return false, err
	}
	return levelID <= highest, nil
}

// RecordLevelCompletion implements domain.ProgressionRepository. The
// unlock cursor only ever moves forward: replaying an early level
// never re-locks later ones.
func (a *ProgressionDatabaseAdapter) RecordLevelCompletion(ctx context.Context, levelID int, won bool) (bool, error) {
	if !won {
		return false, nil
	}

	highest, err := a.GetHighestUnlocked(ctx)
	if err != nil {
		return false, err
	}
	if levelID < highest {
		return false, nil
	}

	query := `UPDATE player_progress
		SET highest_unlocked = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1 AND highest_unlocked < ?`

	result, err := a.db.ExecContext(ctx, query, levelID+1, levelID+1)
	if err != nil {
		return false, fmt.Errorf("failed to record completion of level %d: %w", levelID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetLevelStars implements domain.ProgressionRepository
func (a *ProgressionDatabaseAdapter) GetLevelStars(ctx context.Context, levelID int) (int, error) {
	var stars int
	query := `SELECT stars FROM level_results WHERE level_id = ?`

	err := a.db.GetContext(ctx, &stars, query, levelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get stars for level %d: %w", levelID, err)
	}
	return stars, nil
}

// SaveLevelStars implements domain.ProgressionRepository. The stored
// rating only improves; a worse replay leaves the record untouched.
func (a *ProgressionDatabaseAdapter) SaveLevelStars(ctx context.Context, levelID int, stars int) (bool, error) {
	query := `INSERT INTO level_results (level_id, stars, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(level_id) DO UPDATE
		SET stars = excluded.stars, updated_at = CURRENT_TIMESTAMP
		WHERE excluded.stars > level_results.stars`

	result, err := a.db.ExecContext(ctx, query, levelID, stars)
	if err != nil {
		return false, fmt.Errorf("failed to save stars for level %d: %w", levelID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetBestTime implements domain.ProgressionRepository
func (a *ProgressionDatabaseAdapter) GetBestTime(ctx context.Context, levelID int) (float64, error) {
	var best sql.NullFloat64
	query := `SELECT best_time_seconds FROM level_results WHERE level_id = ?`

	err := a.db.GetContext(ctx, &best, query, levelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return neverCompleted, nil
		}
		return 0, fmt.Errorf("failed to get best time for level %d: %w", levelID, err)
	}
	if !best.Valid {
		return neverCompleted, nil
	}
	return best.Float64, nil
}

// SaveBestTime implements domain.ProgressionRepository. The stored
// time only improves; a slower replay leaves the record untouched.
func (a *ProgressionDatabaseAdapter) SaveBestTime(ctx context.Context, levelID int, seconds float64) (bool, error) {
	query := `INSERT INTO level_results (level_id, stars, best_time_seconds, updated_at)
		VALUES (?, 0, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(level_id) DO UPDATE
		SET best_time_seconds = excluded.best_time_seconds, updated_at = CURRENT_TIMESTAMP
		WHERE level_results.best_time_seconds IS NULL
		   OR excluded.best_time_seconds < level_results.best_time_seconds`

	result, err := a.db.ExecContext(ctx, query, levelID, seconds)
	if err != nil {
		return false, fmt.Errorf("failed to save best time for level %d: %w", levelID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetLevelResults implements domain.ProgressionRepository
func (a *ProgressionDatabaseAdapter) GetLevelResults(ctx context.Context) ([]domain.LevelResult, error) {
	var rows []models.LevelResultRow
	query := `SELECT level_id, stars, best_time_seconds, updated_at
		FROM level_results
		ORDER BY level_id`

	if err := a.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get level results: %w", err)
	}

	results := make([]domain.LevelResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, toDomainLevelResult(&row))
	}
	return results, nil
}

// ResetProgress implements domain.ProgressionRepository
func (a *ProgressionDatabaseAdapter) ResetProgress(ctx context.Context) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM level_results`); err != nil {
		return fmt.Errorf("failed to clear level results: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE player_progress SET highest_unlocked = 1, updated_at = CURRENT_TIMESTAMP WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reset unlock cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset transaction: %w", err)
	}
	return nil
}

func toDomainLevelResult(row *models.LevelResultRow) domain.LevelResult {
	result := domain.LevelResult{
		LevelID:  row.LevelID,
		Stars:    row.Stars,
		BestTime: neverCompleted,
	}
	if row.BestTime.Valid {
		result.BestTime = row.BestTime.Float64
	}
	return result
}
