package service

import (
	"context"
	"math/rand"
	"sync"

	"rse-quest/internal/domain"
	"rse-quest/internal/dto"
)

// LevelService defines the interface for level browsing operations
type LevelService interface {
	ListLevels(ctx context.Context) ([]dto.LevelSummaryResponse, error)
	GetLevel(ctx context.Context, levelID int) (*dto.LevelResponse, error)
}

// levelService implements LevelService
type levelService struct {
	catalog     domain.LevelCatalog
	progression domain.ProgressionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLevelService creates a new instance of levelService
func NewLevelService(catalog domain.LevelCatalog, progression domain.ProgressionRepository, rng *rand.Rand) LevelService {
	return &levelService{
		catalog:     catalog,
		progression: progression,
		rng:         rng,
	}
}

// ListLevels implements LevelService. Each summary carries the
// player's unlock state and persisted best results.
func (s *levelService) ListLevels(ctx context.Context) ([]dto.LevelSummaryResponse, error) {
	summaries, err := s.catalog.ListLevels(ctx)
	if err != nil {
		return nil, err
	}

	highest, err := s.progression.GetHighestUnlocked(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.progression.GetLevelResults(ctx)
	if err != nil {
		return nil, err
	}
	resultsByLevel := make(map[int]domain.LevelResult, len(results))
	for _, r := range results {
		resultsByLevel[r.LevelID] = r
	}

	responses := make([]dto.LevelSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		resp := dto.LevelSummaryResponse{
			LevelID:       summary.ID,
			Theme:         summary.Theme,
			ExerciseCount: summary.ExerciseCount,
			Unlocked:      summary.ID <= highest,
			BestTime:      -1,
		}
		if result, ok := resultsByLevel[summary.ID]; ok {
			resp.Stars = result.Stars
			resp.BestTime = result.BestTime
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// GetLevel implements LevelService. A level past the unlock cursor is
// not served.
func (s *levelService) GetLevel(ctx context.Context, levelID int) (*dto.LevelResponse, error) {
	unlocked, err := s.progression.IsUnlocked(ctx, levelID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		highest, err := s.progression.GetHighestUnlocked(ctx)
		if err != nil {
			return nil, err
		}
		return nil, domain.NewLevelLockedError(levelID, highest)
	}

	level, err := s.catalog.GetLevel(ctx, levelID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return dto.NewLevelResponse(level, s.rng), nil
}
