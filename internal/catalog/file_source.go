package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"rse-quest/internal/domain"
)

// FileSource serves levels from a bundled JSON catalog file holding
// every level of the game. The file is re-read on each call; catalogs
// are small and this keeps authoring iterations visible without a
// restart.
type FileSource struct {
	path string
}

// NewFileSource creates a catalog backed by a local JSON file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) load() (*CatalogRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read catalog file %s", s.path), err)
	}

	var catalog CatalogRecord
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to decode catalog file %s", s.path), err)
	}
	return &catalog, nil
}

// GetLevel implements domain.LevelCatalog
func (s *FileSource) GetLevel(ctx context.Context, levelID int) (*domain.Level, error) {
	catalog, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range catalog.Levels {
		if rec.LevelID == levelID {
			return ParseLevel(rec), nil
		}
	}
	return nil, domain.NewLevelNotFoundError(levelID)
}

// ListLevels implements domain.LevelCatalog
func (s *FileSource) ListLevels(ctx context.Context) ([]domain.LevelSummary, error) {
	catalog, err := s.load()
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.LevelSummary, 0, len(catalog.Levels))
	for _, rec := range catalog.Levels {
		summaries = append(summaries, domain.LevelSummary{
			ID:            rec.LevelID,
			Theme:         rec.Theme,
			ExerciseCount: len(rec.Exercises),
		})
	}
	return summaries, nil
}
