package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"rse-quest/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupProgressTestDB creates a new sqlx.DB instance and sqlmock for progression repository testing.
func setupProgressTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func progressRows(highest int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "highest_unlocked", "updated_at"}).
		AddRow(1, highest, time.Now())
}

func TestGetHighestUnlocked(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, highest_unlocked, updated_at FROM player_progress WHERE id = 1`)).
		WillReturnRows(progressRows(4))

	highest, err := repo.GetHighestUnlocked(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, highest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHighestUnlocked_FreshSave(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT id, highest_unlocked, updated_at FROM player_progress`).
		WillReturnError(sql.ErrNoRows)

	highest, err := repo.GetHighestUnlocked(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, highest)
}

func TestIsUnlocked(t *testing.T) {
	tests := []struct {
		name    string
		highest int
		levelID int
		want    bool
	}{
		{"below cursor", 3, 2, true},
		{"at cursor", 3, 3, true},
		{"above cursor", 3, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupProgressTestDB(t)
			defer db.Close()
			repo := NewProgressionDatabaseAdapter(db)

			mock.ExpectQuery(`SELECT id, highest_unlocked, updated_at FROM player_progress`).
				WillReturnRows(progressRows(tt.highest))

			unlocked, err := repo.IsUnlocked(context.Background(), tt.levelID)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, unlocked)
		})
	}
}

func TestRecordLevelCompletion_UnlocksNext(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT id, highest_unlocked, updated_at FROM player_progress`).
		WillReturnRows(progressRows(3))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE player_progress`)).
		WithArgs(4, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	unlocked, err := repo.RecordLevelCompletion(context.Background(), 3, true)

	assert.NoError(t, err)
	assert.True(t, unlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLevelCompletion_Loss(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	// A lost level never touches the database
	unlocked, err := repo.RecordLevelCompletion(context.Background(), 3, false)

	assert.NoError(t, err)
	assert.False(t, unlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLevelCompletion_Replay(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT id, highest_unlocked, updated_at FROM player_progress`).
		WillReturnRows(progressRows(5))

	// Replaying level 2 with cursor at 5 skips the write entirely
	unlocked, err := repo.RecordLevelCompletion(context.Background(), 2, true)

	assert.NoError(t, err)
	assert.False(t, unlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLevelStars(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT stars FROM level_results WHERE level_id = ?`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"stars"}).AddRow(3))

	stars, err := repo.GetLevelStars(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, 3, stars)
}

func TestGetLevelStars_NeverCompleted(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT stars FROM level_results`).
		WithArgs(7).
		WillReturnError(sql.ErrNoRows)

	stars, err := repo.GetLevelStars(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 0, stars)
}

func TestSaveLevelStars(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantRecord   bool
	}{
		{"new best", 1, true},
		{"worse than stored", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupProgressTestDB(t)
			defer db.Close()
			repo := NewProgressionDatabaseAdapter(db)

			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO level_results (level_id, stars, updated_at)`)).
				WithArgs(2, 2).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			record, err := repo.SaveLevelStars(context.Background(), 2, 2)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRecord, record)
		})
	}
}

func TestGetBestTime(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT best_time_seconds FROM level_results WHERE level_id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"best_time_seconds"}).AddRow(42.5))

	best, err := repo.GetBestTime(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 42.5, best)
}

func TestGetBestTime_NeverCompleted(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	t.Run("no row", func(t *testing.T) {
		mock.ExpectQuery(`SELECT best_time_seconds FROM level_results`).
			WithArgs(9).
			WillReturnError(sql.ErrNoRows)

		best, err := repo.GetBestTime(context.Background(), 9)
		assert.NoError(t, err)
		assert.Negative(t, best)
	})

	t.Run("row with null time", func(t *testing.T) {
		mock.ExpectQuery(`SELECT best_time_seconds FROM level_results`).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"best_time_seconds"}).AddRow(nil))

		best, err := repo.GetBestTime(context.Background(), 9)
		assert.NoError(t, err)
		assert.Negative(t, best)
	})
}

func TestSaveBestTime(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO level_results (level_id, stars, best_time_seconds, updated_at)`)).
		WithArgs(1, 30.2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record, err := repo.SaveBestTime(context.Background(), 1, 30.2)

	assert.NoError(t, err)
	assert.True(t, record)
}

func TestGetLevelResults(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"level_id", "stars", "best_time_seconds", "updated_at"}).
		AddRow(1, 3, 41.0, time.Now()).
		AddRow(2, 2, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT level_id, stars, best_time_seconds, updated_at`)).
		WillReturnRows(rows)

	results, err := repo.GetLevelResults(context.Background())

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Stars)
	assert.Equal(t, 41.0, results[0].BestTime)
	assert.Negative(t, results[1].BestTime)
}

func TestResetProgress(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	defer db.Close()
	repo := NewProgressionDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM level_results`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE player_progress SET highest_unlocked = 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ResetProgress(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToDomainLevelResult(t *testing.T) {
	row := &models.LevelResultRow{
		LevelID:  3,
		Stars:    2,
		BestTime: sql.NullFloat64{Float64: 55.5, Valid: true},
	}
	result := toDomainLevelResult(row)
	assert.Equal(t, 3, result.LevelID)
	assert.Equal(t, 2, result.Stars)
	assert.Equal(t, 55.5, result.BestTime)

	row.BestTime.Valid = false
	assert.Negative(t, toDomainLevelResult(row).BestTime)
}
