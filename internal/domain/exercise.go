package domain

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// ExerciseKind identifies which mini-game an exercise belongs to.
// The set is closed; every kind has its own payload struct and its own
// validation rule in Validate.
type ExerciseKind int

const (
	KindQuiz ExerciseKind = iota
	KindTrueFalse
	KindFillInBlank
	KindSorting
	KindMatching
)

func (k ExerciseKind) String() string {
	switch k {
	case KindQuiz:
		return "quiz"
	case KindTrueFalse:
		return "truefalse"
	case KindFillInBlank:
		return "fillinblank"
	case KindSorting:
		return "sorting"
	case KindMatching:
		return "matching"
	default:
		return "quiz"
	}
}

// Difficulty level of an exercise (0: Easy, 1: Medium, 2: Hard)
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "easy"
	}
}

// DifficultyFromString converts a difficulty label to its level
func DifficultyFromString(s string) Difficulty {
	switch strings.ToLower(s) {
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// Category is the fixed RSE topic taxonomy
type Category int

const (
	CategoryEnvironment Category = iota
	CategorySocial
	CategoryGovernance
	CategoryEconomy
)

func (c Category) String() string {
	switch c {
	case CategorySocial:
		return "social"
	case CategoryGovernance:
		return "governance"
	case CategoryEconomy:
		return "economy"
	default:
		return "environment"
	}
}

// Exercise is one self-contained activity of a specific kind.
// Exactly one of the variant pointers is non-nil and matches Kind.
// Image and sprite fields carry opaque resource names; resolving them
// to renderable assets is the presentation layer's job.
type Exercise struct {
	ID          int
	Kind        ExerciseKind
	Explanation string
	Difficulty  Difficulty
	Category    Category
	ImageName   string

	Quiz        *QuizExercise
	TrueFalse   *TrueFalseExercise
	FillInBlank *FillInBlankExercise
	Sorting     *SortingExercise
	Matching    *MatchingExercise
}

// QuizExercise is a multiple-choice question with one correct option
type QuizExercise struct {
	QuestionText  string
	Options       []string
	CorrectOption int
}

// TrueFalseExercise is a binary choice over a statement
type TrueFalseExercise struct {
	Statement string
	IsTrue    bool
}

// FillInBlankExercise completes a template containing positional
// placeholders {0}, {1}, ... with one answer per placeholder.
type FillInBlankExercise struct {
	Template       string
	CorrectAnswers []string
	WordOptions    []string
	CaseSensitive  bool
}

// SortCategory is one bucket items get dragged into
type SortCategory struct {
	Name     string
	IconName string
	Color    string
}

// SortItem belongs to exactly one category of its exercise
type SortItem struct {
	Name            string
	SpriteName      string
	CorrectCategory int
}

// SortingExercise places items into categories
type SortingExercise struct {
	Instruction string
	Categories  []SortCategory
	Items       []SortItem
}

// MatchPair relates one left-column entry to one right-column entry.
// The correct match for left index i is always right index i in this
// unshuffled list.
type MatchPair struct {
	Left            string
	Right           string
	LeftSpriteName  string
	RightSpriteName string
}

// MatchingExercise connects entries across two columns
type MatchingExercise struct {
	Instruction  string
	LeftHeader   string
	RightHeader  string
	Pairs        []MatchPair
	ShuffleRight bool
}

// MainText returns the question or instruction text of the exercise
func (e *Exercise) MainText() string {
	switch e.Kind {
	case KindQuiz:
		return e.Quiz.QuestionText
	case KindTrueFalse:
		return e.TrueFalse.Statement
	case KindFillInBlank:
		return e.FillInBlank.Template
	case KindSorting:
		return e.Sorting.Instruction
	case KindMatching:
		return e.Matching.Instruction
	default:
		return ""
	}
}

// Validate checks the structural invariants of the exercise
func (e *Exercise) Validate() error {
	switch e.Kind {
	case KindQuiz:
		if e.Quiz == nil {
			return NewInvalidInputError("quiz payload is required")
		}
		if e.Quiz.QuestionText == "" {
			return NewInvalidInputError("question text is required")
		}
		if len(e.Quiz.Options) == 0 {
			return NewInvalidInputError("at least one option is required")
		}
		if e.Quiz.CorrectOption < 0 || e.Quiz.CorrectOption >= len(e.Quiz.Options) {
			return NewInvalidInputError("correct option index is out of bounds")
		}
	case KindTrueFalse:
		if e.TrueFalse == nil {
			return NewInvalidInputError("truefalse payload is required")
		}
		if e.TrueFalse.Statement == "" {
			return NewInvalidInputError("statement is required")
		}
	case KindFillInBlank:
		if e.FillInBlank == nil {
			return NewInvalidInputError("fillinblank payload is required")
		}
		if e.FillInBlank.Template == "" {
			return NewInvalidInputError("template is required")
		}
		if len(e.FillInBlank.CorrectAnswers) == 0 {
			return NewInvalidInputError("at least one correct answer is required")
		}
		if got := countPlaceholders(e.FillInBlank.Template); got != len(e.FillInBlank.CorrectAnswers) {
			return NewInvalidInputError("correct answer count does not match template placeholders")
		}
	case KindSorting:
		if e.Sorting == nil {
			return NewInvalidInputError("sorting payload is required")
		}
		if len(e.Sorting.Categories) == 0 {
			return NewInvalidInputError("at least one category is required")
		}
		if len(e.Sorting.Items) == 0 {
			return NewInvalidInputError("at least one item is required")
		}
		for _, item := range e.Sorting.Items {
			if item.CorrectCategory < 0 || item.CorrectCategory >= len(e.Sorting.Categories) {
				return NewInvalidInputError("item references a category index out of bounds")
			}
		}
	case KindMatching:
		if e.Matching == nil {
			return NewInvalidInputError("matching payload is required")
		}
		if len(e.Matching.Pairs) == 0 {
			return NewInvalidInputError("at least one pair is required")
		}
	default:
		return NewInvalidInputError("unknown exercise kind")
	}
	return nil
}

var placeholderPattern = regexp.MustCompile(`\{(\d+)\}`)

// countPlaceholders counts distinct {i} indices in a template
func countPlaceholders(template string) int {
	seen := map[int]struct{}{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[idx] = struct{}{}
	}
	return len(seen)
}

// BlankCount returns the number of blanks to fill
func (f *FillInBlankExercise) BlankCount() int {
	return len(f.CorrectAnswers)
}

// DisplayTemplate substitutes every placeholder with underscores for display
func (f *FillInBlankExercise) DisplayTemplate(underscoreCount int) string {
	if underscoreCount <= 0 {
		underscoreCount = 5
	}
	blank := strings.Repeat("_", underscoreCount)
	result := f.Template
	for i := 0; i < f.BlankCount(); i++ {
		result = strings.ReplaceAll(result, "{"+strconv.Itoa(i)+"}", blank)
	}
	return result
}

// ItemsForCategory returns the indices of items belonging to a category
func (s *SortingExercise) ItemsForCategory(categoryIndex int) []int {
	var result []int
	for i, item := range s.Items {
		if item.CorrectCategory == categoryIndex {
			result = append(result, i)
		}
	}
	return result
}

// ShuffledRightOrder returns a display permutation for the right
// column: order[displayPos] is the original pair index shown at that
// position. Correctness always refers to original indices, never to
// display positions. Identity when ShuffleRight is off.
func (m *MatchingExercise) ShuffledRightOrder(r *rand.Rand) []int {
	order := make([]int, len(m.Pairs))
	for i := range order {
		order[i] = i
	}
	if !m.ShuffleRight || r == nil {
		return order
	}
	for i := len(order) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
