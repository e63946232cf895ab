package service

import (
	"context"

	"rse-quest/internal/domain"
	"rse-quest/internal/dto"
	"rse-quest/internal/logger"
)

// ProgressService defines the interface for progression operations
type ProgressService interface {
	GetProgress(ctx context.Context) (*dto.ProgressResponse, error)
	ResetProgress(ctx context.Context) error
}

// progressService implements ProgressService
type progressService struct {
	progression domain.ProgressionRepository
}

// NewProgressService creates a new instance of progressService
func NewProgressService(progression domain.ProgressionRepository) ProgressService {
	return &progressService{progression: progression}
}

// GetProgress implements ProgressService
func (s *progressService) GetProgress(ctx context.Context) (*dto.ProgressResponse, error) {
	highest, err := s.progression.GetHighestUnlocked(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.progression.GetLevelResults(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProgressResponse{
		HighestUnlocked: highest,
		Results:         make([]dto.LevelResultResponse, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, dto.LevelResultResponse{
			LevelID:  r.LevelID,
			Stars:    r.Stars,
			BestTime: r.BestTime,
		})
	}
	return resp, nil
}

// ResetProgress implements ProgressService
func (s *progressService) ResetProgress(ctx context.Context) error {
	if err := s.progression.ResetProgress(ctx); err != nil {
		return err
	}
	logger.Get().Info("Player progress reset")
	return nil
}
