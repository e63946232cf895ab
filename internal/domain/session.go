package domain

import "time"

// SessionState is the lifecycle state of a LevelSession
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
	SessionFailed     SessionState = "failed"
)

// Terminal reports whether the state accepts no further play
func (s SessionState) Terminal() bool {
	return s == SessionCompleted || s == SessionFailed
}

// SessionEvents carries the outward notifications the presentation
// layer subscribes to. Nil callbacks are skipped.
type SessionEvents struct {
	// OnAnswerSubmitted fires after every processed submission
	OnAnswerSubmitted func(ex *Exercise, correct bool)
	// OnAdvanced fires after the cursor moves, with the progress fraction
	OnAdvanced func(cursor int, progress float64)
}

// SubmitResult is the outcome of one answer submission
type SubmitResult struct {
	Correct        bool
	LivesRemaining int
	State          SessionState
}

// AdvanceResult is the outcome of moving past a processed answer.
// Score and Stars are only set when State is SessionCompleted.
type AdvanceResult struct {
	Cursor   int
	Progress float64
	State    SessionState
	Score    int
	Stars    int
}

// LevelSession tracks one play-through of a level: cursor, lives and
// score. It holds a non-owning reference to its Level and is not safe
// for concurrent use; callers must serialize access.
type LevelSession struct {
	id       string
	level    *Level
	state    SessionState
	cursor   int
	lives    int
	maxLives int
	score    int
	stars    int

	startedAt time.Time
	// set after SubmitAnswer, cleared by Advance
	awaitingAdvance bool

	events SessionEvents
}

// NewLevelSession creates a session in the NotStarted state
func NewLevelSession(id string, level *Level, maxLives int, events SessionEvents) *LevelSession {
	if maxLives <= 0 {
		maxLives = 3
	}
	return &LevelSession{
		id:       id,
		level:    level,
		state:    SessionNotStarted,
		maxLives: maxLives,
		events:   events,
	}
}

func (s *LevelSession) ID() string          { return s.id }
func (s *LevelSession) Level() *Level       { return s.level }
func (s *LevelSession) State() SessionState { return s.state }
func (s *LevelSession) Cursor() int         { return s.cursor }
func (s *LevelSession) Lives() int          { return s.lives }
func (s *LevelSession) MaxLives() int       { return s.maxLives }

// Score is the final score; zero until the session completes
func (s *LevelSession) Score() int { return s.score }

// Stars is the final star rating; zero until the session completes
func (s *LevelSession) Stars() int { return s.stars }

// CurrentExercise returns the exercise at the cursor, nil once the
// session left InProgress
func (s *LevelSession) CurrentExercise() *Exercise {
	if s.state != SessionInProgress {
		return nil
	}
	return s.level.ExerciseAt(s.cursor)
}

// Progress is the presentation fraction: exercise number over total
func (s *LevelSession) Progress() float64 {
	total := s.level.ExerciseCount()
	if total == 0 {
		return 0
	}
	if s.state == SessionCompleted {
		return 1
	}
	return float64(s.cursor+1) / float64(total)
}

// Elapsed returns the play duration since Start
func (s *LevelSession) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	return time.Since(s.startedAt)
}

// Start moves the session into InProgress with a fresh cursor, full
// lives and zero score
func (s *LevelSession) Start() error {
	if s.state != SessionNotStarted {
		return NewInvalidStateError("start", s.state)
	}
	if s.level == nil {
		return NewEmptyLevelError(0)
	}
	if s.level.ExerciseCount() == 0 {
		return NewEmptyLevelError(s.level.ID)
	}
	s.state = SessionInProgress
	s.cursor = 0
	s.lives = s.maxLives
	s.score = 0
	s.startedAt = time.Now()
	return nil
}

// SubmitAnswer processes an answer for the exercise at the cursor.
// A wrong answer costs a life; losing the last life fails the session.
// An incorrect answer is a normal outcome, never an error.
func (s *LevelSession) SubmitAnswer(answer AnswerPayload) (*SubmitResult, error) {
	if s.state != SessionInProgress {
		return nil, NewInvalidStateError("submit_answer", s.state)
	}
	if s.awaitingAdvance {
		return nil, NewInvalidStateError("submit_answer", s.state)
	}

	exercise := s.level.ExerciseAt(s.cursor)
	correct := Validate(exercise, answer)

	if !correct {
		s.lives--
		if s.lives <= 0 {
			s.state = SessionFailed
		}
	}
	if s.state == SessionInProgress {
		s.awaitingAdvance = true
	}

	if s.events.OnAnswerSubmitted != nil {
		s.events.OnAnswerSubmitted(exercise, correct)
	}

	return &SubmitResult{
		Correct:        correct,
		LivesRemaining: s.lives,
		State:          s.state,
	}, nil
}

// Advance moves past a processed answer. Reaching the end of the level
// completes the session and fixes the final score and star rating.
func (s *LevelSession) Advance() (*AdvanceResult, error) {
	if s.state != SessionInProgress {
		return nil, NewInvalidStateError("advance", s.state)
	}
	if !s.awaitingAdvance {
		return nil, NewInvalidStateError("advance", s.state)
	}

	s.awaitingAdvance = false
	s.cursor++

	if s.cursor >= s.level.ExerciseCount() {
		s.state = SessionCompleted
		s.score = s.lives * 100 // 100 points per remaining life
		s.stars = CalculateStars(s.lives, s.maxLives)
	}

	progress := s.Progress()
	if s.events.OnAdvanced != nil {
		s.events.OnAdvanced(s.cursor, progress)
	}

	return &AdvanceResult{
		Cursor:   s.cursor,
		Progress: progress,
		State:    s.state,
		Score:    s.score,
		Stars:    s.stars,
	}, nil
}

// CalculateStars rates a completed level from remaining lives
func CalculateStars(remainingLives, totalLives int) int {
	if totalLives <= 0 {
		return 1
	}
	percentage := float64(remainingLives) / float64(totalLives)

	if percentage >= 1 {
		return 3 // Perfect - all lives remaining
	}
	if percentage >= 0.66 {
		return 2
	}
	return 1 // Completed but with losses
}
