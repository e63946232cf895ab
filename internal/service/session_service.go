package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"rse-quest/internal/domain"
	"rse-quest/internal/dto"
	"rse-quest/internal/logger"
	"rse-quest/internal/util"

	"go.uber.org/zap"
)

// SessionService defines the interface for play session operations
type SessionService interface {
	StartSession(ctx context.Context, levelID int) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.AnswerResponse, error)
	Advance(ctx context.Context, sessionID string) (*dto.AdvanceResponse, error)
	AbandonSession(ctx context.Context, sessionID string) error
}

type sessionEntry struct {
	session    *domain.LevelSession
	lastAccess time.Time
}

// sessionService implements SessionService with an in-memory session
// registry. Sessions are not safe for concurrent use, so every
// operation runs under the registry mutex; idle sessions expire after
// the configured TTL.
type sessionService struct {
	catalog     domain.LevelCatalog
	progression domain.ProgressionRepository
	maxLives    int
	ttl         time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	rng      *rand.Rand
}

// NewSessionService creates a new instance of sessionService
func NewSessionService(
	catalog domain.LevelCatalog,
	progression domain.ProgressionRepository,
	maxLives int,
	ttl time.Duration,
	rng *rand.Rand,
) SessionService {
	return &sessionService{
		catalog:     catalog,
		progression: progression,
		maxLives:    maxLives,
		ttl:         ttl,
		sessions:    make(map[string]*sessionEntry),
		rng:         rng,
	}
}

// StartSession implements SessionService
func (s *sessionService) StartSession(ctx context.Context, levelID int) (*dto.SessionResponse, error) {
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

	sessionID := util.NewULID()
	session := domain.NewLevelSession(sessionID, level, s.maxLives, domain.SessionEvents{
		OnAnswerSubmitted: func(ex *domain.Exercise, correct bool) {
			logger.Get().Info("Answer submitted",
				zap.String("session_id", sessionID),
				zap.Int("level_id", level.ID),
				zap.Int("exercise_id", ex.ID),
				zap.String("kind", ex.Kind.String()),
				zap.Bool("correct", correct),
			)
		},
		OnAdvanced: func(cursor int, progress float64) {
			logger.Get().Debug("Session advanced",
				zap.String("session_id", sessionID),
				zap.Int("cursor", cursor),
				zap.Float64("progress", progress),
			)
		},
	})
	if err := session.Start(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()
	s.sessions[sessionID] = &sessionEntry{session: session, lastAccess: time.Now()}

	logger.Get().Info("Session started",
		zap.String("session_id", sessionID),
		zap.Int("level_id", levelID),
		zap.Int("exercise_count", level.ExerciseCount()),
	)
	return s.snapshotLocked(session), nil
}

// GetSession implements SessionService
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookupLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshotLocked(entry.session), nil
}

// SubmitAnswer implements SessionService. An incorrect answer is a
// normal result; only shape and state problems are errors.
func (s *sessionService) SubmitAnswer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookupLocked(sessionID)
	if err != nil {
		return nil, err
	}
	session := entry.session

	current := session.CurrentExercise()
	if current == nil {
		return nil, domain.NewInvalidStateError("submit", session.State())
	}
	payload, err := req.ToPayload(current.Kind)
	if err != nil {
		return nil, err
	}

	result, err := session.SubmitAnswer(payload)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnswerResponse{
		Correct:        result.Correct,
		LivesRemaining: result.LivesRemaining,
		State:          string(result.State),
		Explanation:    current.Explanation,
	}
	if result.State == domain.SessionFailed {
		logger.Get().Info("Session failed",
			zap.String("session_id", sessionID),
			zap.Int("level_id", session.Level().ID),
		)
	}
	return resp, nil
}

// Advance implements SessionService. On completion the outcome is
// persisted before the response is built, so a crash after the reply
// never loses an unlock.
func (s *sessionService) Advance(ctx context.Context, sessionID string) (*dto.AdvanceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookupLocked(sessionID)
	if err != nil {
		return nil, err
	}
	session := entry.session

	result, err := session.Advance()
	if err != nil {
		return nil, err
	}

	resp := &dto.AdvanceResponse{
		State:    string(result.State),
		Cursor:   result.Cursor,
		Progress: result.Progress,
	}

	if result.State == domain.SessionCompleted {
		resp.Score = result.Score
		resp.Stars = result.Stars

		levelID := session.Level().ID
		elapsed := session.Elapsed().Seconds()

		unlocked, err := s.progression.RecordLevelCompletion(ctx, levelID, true)
		if err != nil {
			return nil, err
		}
		newBestStars, err := s.progression.SaveLevelStars(ctx, levelID, result.Stars)
		if err != nil {
			return nil, err
		}
		newBestTime, err := s.progression.SaveBestTime(ctx, levelID, elapsed)
		if err != nil {
			return nil, err
		}
		resp.LevelUnlocked = unlocked
		resp.NewBestStars = newBestStars
		resp.NewBestTime = newBestTime

		delete(s.sessions, sessionID)
		logger.Get().Info("Session completed",
			zap.String("session_id", sessionID),
			zap.Int("level_id", levelID),
			zap.Int("score", result.Score),
			zap.Int("stars", result.Stars),
			zap.Float64("elapsed_seconds", elapsed),
			zap.Bool("level_unlocked", unlocked),
		)
	} else if next := session.CurrentExercise(); next != nil {
		resp.Exercise = dto.NewExerciseView(next, s.rng)
	}

	return resp, nil
}

// AbandonSession implements SessionService
func (s *sessionService) AbandonSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookupLocked(sessionID); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	logger.Get().Info("Session abandoned", zap.String("session_id", sessionID))
	return nil
}

// lookupLocked fetches a live session and refreshes its idle timer.
// Callers must hold s.mu.
func (s *sessionService) lookupLocked(sessionID string) (*sessionEntry, error) {
	s.purgeExpiredLocked()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	entry.lastAccess = time.Now()
	return entry, nil
}

// purgeExpiredLocked drops sessions idle past the TTL. Callers must
// hold s.mu.
func (s *sessionService) purgeExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for id, entry := range s.sessions {
		if entry.lastAccess.Before(cutoff) {
			delete(s.sessions, id)
			logger.Get().Debug("Session expired", zap.String("session_id", id))
		}
	}
}

// snapshotLocked builds the session view. A session that failed at
// the last submit keeps its snapshot until it expires, so the client
// can render the defeat screen from a reconnect.
func (s *sessionService) snapshotLocked(session *domain.LevelSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID:      session.ID(),
		LevelID:        session.Level().ID,
		State:          string(session.State()),
		Cursor:         session.Cursor(),
		LivesRemaining: session.Lives(),
		MaxLives:       session.MaxLives(),
		Progress:       session.Progress(),
		Score:          session.Score(),
		Stars:          session.Stars(),
	}
	if current := session.CurrentExercise(); current != nil && !session.State().Terminal() {
		resp.Exercise = dto.NewExerciseView(current, s.rng)
	}
	return resp
}
