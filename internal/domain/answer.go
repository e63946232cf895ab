package domain

import "strings"

// AnswerPayload is the closed set of answer shapes a player can
// submit. Each exercise kind accepts specific payload types; any other
// combination is simply an incorrect answer, never an error.
type AnswerPayload interface {
	answerPayload()
}

// OptionAnswer selects one option of a Quiz exercise by index
type OptionAnswer int

// BoolAnswer answers a TrueFalse exercise
type BoolAnswer bool

// BlanksAnswer fills every blank of a FillInBlank exercise, in order
type BlanksAnswer []string

// BlankAnswer is the single-string shorthand for one-blank exercises
type BlankAnswer string

// PlacementAnswer maps item index to placed category index for a
// Sorting exercise
type PlacementAnswer map[int]int

// PlacementList is the positional form of PlacementAnswer: the value
// at position i is the category the i-th item was placed in
type PlacementList []int

// MatchAnswer maps left pair index to right pair index for a Matching
// exercise. Both sides refer to original, pre-shuffle indices.
type MatchAnswer map[int]int

// MatchList is the positional form of MatchAnswer
type MatchList []int

func (OptionAnswer) answerPayload()    {}
func (BoolAnswer) answerPayload()      {}
func (BlanksAnswer) answerPayload()    {}
func (BlankAnswer) answerPayload()     {}
func (PlacementAnswer) answerPayload() {}
func (PlacementList) answerPayload()   {}
func (MatchAnswer) answerPayload()     {}
func (MatchList) answerPayload()       {}

// Validate decides whether the payload is the correct answer for the
// exercise. Correctness is all-or-nothing per submission: a payload
// missing entries for some expected keys is incorrect, not partially
// correct. A payload whose shape does not fit the exercise kind is
// incorrect as well.
func Validate(ex *Exercise, answer AnswerPayload) bool {
	if ex == nil || answer == nil {
		return false
	}
	switch ex.Kind {
	case KindQuiz:
		return validateQuiz(ex.Quiz, answer)
	case KindTrueFalse:
		return validateTrueFalse(ex.TrueFalse, answer)
	case KindFillInBlank:
		return validateFillInBlank(ex.FillInBlank, answer)
	case KindSorting:
		return validateSorting(ex.Sorting, answer)
	case KindMatching:
		return validateMatching(ex.Matching, answer)
	default:
		return false
	}
}

func validateQuiz(q *QuizExercise, answer AnswerPayload) bool {
	if q == nil {
		return false
	}
	selected, ok := answer.(OptionAnswer)
	if !ok {
		return false
	}
	return int(selected) == q.CorrectOption
}

func validateTrueFalse(tf *TrueFalseExercise, answer AnswerPayload) bool {
	if tf == nil {
		return false
	}
	value, ok := answer.(BoolAnswer)
	if !ok {
		return false
	}
	return bool(value) == tf.IsTrue
}

func validateFillInBlank(f *FillInBlankExercise, answer AnswerPayload) bool {
	if f == nil {
		return false
	}
	switch a := answer.(type) {
	case BlanksAnswer:
		if len(a) != len(f.CorrectAnswers) {
			return false
		}
		for i, correct := range f.CorrectAnswers {
			if !blankMatches(correct, a[i], f.CaseSensitive) {
				return false
			}
		}
		return true
	case BlankAnswer:
		// Single answer only applies to single-blank exercises
		if len(f.CorrectAnswers) != 1 {
			return false
		}
		return blankMatches(f.CorrectAnswers[0], string(a), f.CaseSensitive)
	default:
		return false
	}
}

func blankMatches(correct, given string, caseSensitive bool) bool {
	if caseSensitive {
		return correct == given
	}
	return strings.EqualFold(correct, given)
}

func validateSorting(s *SortingExercise, answer AnswerPayload) bool {
	if s == nil {
		return false
	}
	switch a := answer.(type) {
	case PlacementAnswer:
		if len(a) != len(s.Items) {
			return false
		}
		for itemIndex, placedCategory := range a {
			if itemIndex < 0 || itemIndex >= len(s.Items) {
				return false
			}
			if s.Items[itemIndex].CorrectCategory != placedCategory {
				return false
			}
		}
		return true
	case PlacementList:
		if len(a) != len(s.Items) {
			return false
		}
		for i, item := range s.Items {
			if item.CorrectCategory != a[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func validateMatching(m *MatchingExercise, answer AnswerPayload) bool {
	if m == nil {
		return false
	}
	switch a := answer.(type) {
	case MatchAnswer:
		if len(a) != len(m.Pairs) {
			return false
		}
		// Left i matches right i in the original pair list
		for leftIndex, rightIndex := range a {
			if leftIndex < 0 || leftIndex >= len(m.Pairs) {
				return false
			}
			if leftIndex != rightIndex {
				return false
			}
		}
		return true
	case MatchList:
		if len(a) != len(m.Pairs) {
			return false
		}
		for i := range m.Pairs {
			if a[i] != i {
				return false
			}
		}
		return true
	default:
		return false
	}
}
