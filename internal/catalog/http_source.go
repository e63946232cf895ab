package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rse-quest/internal/domain"
)

// HTTPSource serves levels from a remote content API. The endpoint
// layout mirrors the bundled catalog: the base URL returns the full
// level index, `<base>/<id>` returns one level document.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a catalog backed by a remote API. A nil client
// gets a default with a 20 second timeout.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (s *HTTPSource) get(ctx context.Context, url string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, domain.NewInternalError("failed to build catalog request", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, domain.NewInternalError(fmt.Sprintf("catalog request to %s failed", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, domain.NewInternalError(fmt.Sprintf("failed to decode catalog response from %s", url), err)
	}
	return resp.StatusCode, nil
}

// GetLevel implements domain.LevelCatalog
func (s *HTTPSource) GetLevel(ctx context.Context, levelID int) (*domain.Level, error) {
	var rec LevelRecord
	status, err := s.get(ctx, fmt.Sprintf("%s/%d", s.baseURL, levelID), &rec)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.NewLevelNotFoundError(levelID)
	}
	if status != http.StatusOK {
		return nil, domain.NewInternalError(fmt.Sprintf("catalog returned status %d for level %d", status, levelID), nil)
	}

	return ParseLevel(rec), nil
}

// ListLevels implements domain.LevelCatalog
func (s *HTTPSource) ListLevels(ctx context.Context) ([]domain.LevelSummary, error) {
	var catalog CatalogRecord
	status, err := s.get(ctx, s.baseURL, &catalog)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, domain.NewInternalError(fmt.Sprintf("catalog index returned status %d", status), nil)
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
