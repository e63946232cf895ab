package domain

// Level is an ordered sequence of exercises sharing a theme. Order is
// the presentation order and is significant.
type Level struct {
	ID        int
	Theme     string
	Exercises []*Exercise
}

// ExerciseAt returns the exercise at the given cursor, or nil when the
// cursor is out of range
func (l *Level) ExerciseAt(cursor int) *Exercise {
	if cursor < 0 || cursor >= len(l.Exercises) {
		return nil
	}
	return l.Exercises[cursor]
}

// ExerciseCount returns the number of exercises in the level
func (l *Level) ExerciseCount() int {
	return len(l.Exercises)
}

// LevelSummary is the catalog listing entry for one level
type LevelSummary struct {
	ID            int
	Theme         string
	ExerciseCount int
}
