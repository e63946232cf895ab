package service

import (
	"context"
	"time"

	"rse-quest/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockLevelCatalog ---
type MockLevelCatalog struct {
	mock.Mock
}

func (m *MockLevelCatalog) GetLevel(ctx context.Context, levelID int) (*domain.Level, error) {
	args := m.Called(ctx, levelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Level), args.Error(1)
}

func (m *MockLevelCatalog) ListLevels(ctx context.Context) ([]domain.LevelSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LevelSummary), args.Error(1)
}

// --- MockProgressionRepository ---
type MockProgressionRepository struct {
	mock.Mock
}

func (m *MockProgressionRepository) GetHighestUnlocked(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressionRepository) IsUnlocked(ctx context.Context, levelID int) (bool, error) {
	args := m.Called(ctx, levelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressionRepository) RecordLevelCompletion(ctx context.Context, levelID int, won bool) (bool, error) {
	args := m.Called(ctx, levelID, won)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressionRepository) GetLevelStars(ctx context.Context, levelID int) (int, error) {
	args := m.Called(ctx, levelID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressionRepository) SaveLevelStars(ctx context.Context, levelID int, stars int) (bool, error) {
	args := m.Called(ctx, levelID, stars)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressionRepository) GetBestTime(ctx context.Context, levelID int) (float64, error) {
	args := m.Called(ctx, levelID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProgressionRepository) SaveBestTime(ctx context.Context, levelID int, seconds float64) (bool, error) {
	args := m.Called(ctx, levelID, seconds)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressionRepository) GetLevelResults(ctx context.Context) ([]domain.LevelResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LevelResult), args.Error(1)
}

func (m *MockProgressionRepository) ResetProgress(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
