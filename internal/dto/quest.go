// Package dto holds the request and response shapes of the HTTP API.
// Exercise views never carry correct answers; the client learns the
// outcome only through the answer endpoint.
package dto

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"

	"rse-quest/internal/domain"
)

// displayUnderscores is the blank width shown in fill-in templates
const displayUnderscores = 5

// LevelSummaryResponse represents one entry of the level index
type LevelSummaryResponse struct {
	LevelID       int     `json:"level_id"`
	Theme         string  `json:"theme"`
	ExerciseCount int     `json:"exercise_count"`
	Unlocked      bool    `json:"unlocked"`
	Stars         int     `json:"stars"`
	BestTime      float64 `json:"best_time"` // seconds, negative when never completed
}

// CategoryView represents one sorting bucket in an exercise view
type CategoryView struct {
	Name     string `json:"name"`
	IconName string `json:"icon_name,omitempty"`
	Color    string `json:"color,omitempty"`
}

// ItemView represents one sortable item. The correct category stays
// server-side.
type ItemView struct {
	Name       string `json:"name"`
	SpriteName string `json:"sprite_name,omitempty"`
}

// ColumnItemView represents one entry of a matching column
type ColumnItemView struct {
	Text       string `json:"text"`
	SpriteName string `json:"sprite_name,omitempty"`
}

// ExerciseView is the playable form of one exercise. Kind decides
// which field groups are populated.
type ExerciseView struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	ImageName  string `json:"image_name,omitempty"`

	// Quiz
	QuestionText string   `json:"question_text,omitempty"`
	Options      []string `json:"options,omitempty"`

	// TrueFalse
	Statement string `json:"statement,omitempty"`

	// FillInBlank
	Template    string   `json:"template,omitempty"` // blanks rendered as underscores
	BlankCount  int      `json:"blank_count,omitempty"`
	WordOptions []string `json:"word_options,omitempty"`

	// Sorting
	Instruction string         `json:"instruction,omitempty"`
	Categories  []CategoryView `json:"categories,omitempty"`
	Items       []ItemView     `json:"items,omitempty"`

	// Matching. RightOrder[displayPos] is the original index shown at
	// that position; submitted matches always use original indices.
	LeftHeader  string           `json:"left_header,omitempty"`
	RightHeader string           `json:"right_header,omitempty"`
	LeftItems   []ColumnItemView `json:"left_items,omitempty"`
	RightItems  []ColumnItemView `json:"right_items,omitempty"`
	RightOrder  []int            `json:"right_order,omitempty"`
}

// NewExerciseView builds the playable view of an exercise. The rng
// drives the matching right-column shuffle; nil keeps catalog order.
func NewExerciseView(ex *domain.Exercise, rng *rand.Rand) *ExerciseView {
	view := &ExerciseView{
		ID:         ex.ID,
		Kind:       ex.Kind.String(),
		Difficulty: ex.Difficulty.String(),
		Category:   ex.Category.String(),
		ImageName:  ex.ImageName,
	}

	switch ex.Kind {
	case domain.KindQuiz:
		view.QuestionText = ex.Quiz.QuestionText
		view.Options = append([]string(nil), ex.Quiz.Options...)
	case domain.KindTrueFalse:
		view.Statement = ex.TrueFalse.Statement
	case domain.KindFillInBlank:
		view.Template = ex.FillInBlank.DisplayTemplate(displayUnderscores)
		view.BlankCount = ex.FillInBlank.BlankCount()
		view.WordOptions = append([]string(nil), ex.FillInBlank.WordOptions...)
	case domain.KindSorting:
		view.Instruction = ex.Sorting.Instruction
		for _, cat := range ex.Sorting.Categories {
			view.Categories = append(view.Categories, CategoryView{
				Name:     cat.Name,
				IconName: cat.IconName,
				Color:    cat.Color,
			})
		}
		for _, item := range ex.Sorting.Items {
			view.Items = append(view.Items, ItemView{
				Name:       item.Name,
				SpriteName: item.SpriteName,
			})
		}
	case domain.KindMatching:
		view.Instruction = ex.Matching.Instruction
		view.LeftHeader = ex.Matching.LeftHeader
		view.RightHeader = ex.Matching.RightHeader
		for _, pair := range ex.Matching.Pairs {
			view.LeftItems = append(view.LeftItems, ColumnItemView{
				Text:       pair.Left,
				SpriteName: pair.LeftSpriteName,
			})
		}
		order := ex.Matching.ShuffledRightOrder(rng)
		view.RightOrder = order
		for _, originalIdx := range order {
			pair := ex.Matching.Pairs[originalIdx]
			view.RightItems = append(view.RightItems, ColumnItemView{
				Text:       pair.Right,
				SpriteName: pair.RightSpriteName,
			})
		}
	}

	return view
}

// LevelResponse is the playable view of a whole level
type LevelResponse struct {
	LevelID   int             `json:"level_id"`
	Theme     string          `json:"theme"`
	Exercises []*ExerciseView `json:"exercises"`
}

// NewLevelResponse builds the playable view of a level
func NewLevelResponse(level *domain.Level, rng *rand.Rand) *LevelResponse {
	resp := &LevelResponse{
		LevelID:   level.ID,
		Theme:     level.Theme,
		Exercises: make([]*ExerciseView, 0, len(level.Exercises)),
	}
	for _, ex := range level.Exercises {
		resp.Exercises = append(resp.Exercises, NewExerciseView(ex, rng))
	}
	return resp
}

// StartSessionRequest starts a play session for one level
type StartSessionRequest struct {
	LevelID int `json:"level_id"`
}

// SessionResponse is a snapshot of a running session
type SessionResponse struct {
	SessionID      string        `json:"session_id"`
	LevelID        int           `json:"level_id"`
	State          string        `json:"state"`
	Cursor         int           `json:"cursor"`
	LivesRemaining int           `json:"lives_remaining"`
	MaxLives       int           `json:"max_lives"`
	Progress       float64       `json:"progress"`
	Score          int           `json:"score,omitempty"`
	Stars          int           `json:"stars,omitempty"`
	Exercise       *ExerciseView `json:"exercise,omitempty"`
}

// FlexibleBool accepts JSON true/false as well as the 0/1 integer
// form older clients send.
type FlexibleBool bool

func (b *FlexibleBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = FlexibleBool(asBool)
		return nil
	}
	var asInt int
	if err := json.Unmarshal(data, &asInt); err == nil {
		switch asInt {
		case 0:
			*b = false
		case 1:
			*b = true
		default:
			return fmt.Errorf("boolean integer must be 0 or 1, got %d", asInt)
		}
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into a boolean", string(data))
}

// AnswerRequest is the flat answer form: the field group matching the
// exercise kind must be present, the rest stay empty.
type AnswerRequest struct {
	// Quiz
	OptionIndex *int `json:"option_index,omitempty"`

	// TrueFalse
	IsTrue *FlexibleBool `json:"is_true,omitempty"`

	// FillInBlank: either the full list or the single-blank shorthand
	Answers []string `json:"answers,omitempty"`
	Answer  *string  `json:"answer,omitempty"`

	// Sorting: positional list or item-index-keyed map
	Placements    []int          `json:"placements,omitempty"`
	PlacementsMap map[string]int `json:"placements_map,omitempty"`

	// Matching: positional list or left-index-keyed map, always in
	// original (unshuffled) right indices
	Matches    []int          `json:"matches,omitempty"`
	MatchesMap map[string]int `json:"matches_map,omitempty"`
}

// ToPayload converts the flat request into the typed payload for the
// given exercise kind. A request with no usable field group for the
// kind yields validation errors.
func (r *AnswerRequest) ToPayload(kind domain.ExerciseKind) (domain.AnswerPayload, error) {
	switch kind {
	case domain.KindQuiz:
		if r.OptionIndex == nil {
			return nil, domain.ValidationErrors{domain.NewMissingFieldError("option_index")}
		}
		return domain.OptionAnswer(*r.OptionIndex), nil

	case domain.KindTrueFalse:
		if r.IsTrue == nil {
			return nil, domain.ValidationErrors{domain.NewMissingFieldError("is_true")}
		}
		return domain.BoolAnswer(*r.IsTrue), nil

	case domain.KindFillInBlank:
		if len(r.Answers) > 0 {
			return domain.BlanksAnswer(r.Answers), nil
		}
		if r.Answer != nil {
			return domain.BlankAnswer(*r.Answer), nil
		}
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("answers")}

	case domain.KindSorting:
		if len(r.PlacementsMap) > 0 {
			placements, err := intKeyedMap("placements_map", r.PlacementsMap)
			if err != nil {
				return nil, err
			}
			return domain.PlacementAnswer(placements), nil
		}
		if len(r.Placements) > 0 {
			return domain.PlacementList(r.Placements), nil
		}
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("placements")}

	case domain.KindMatching:
		if len(r.MatchesMap) > 0 {
			matches, err := intKeyedMap("matches_map", r.MatchesMap)
			if err != nil {
				return nil, err
			}
			return domain.MatchAnswer(matches), nil
		}
		if len(r.Matches) > 0 {
			return domain.MatchList(r.Matches), nil
		}
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("matches")}
	}

	return nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported exercise kind %q", kind))
}

// intKeyedMap converts JSON object keys back to integer indices
func intKeyedMap(field string, in map[string]int) (map[int]int, error) {
	out := make(map[int]int, len(in))
	for key, value := range in {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError(field, key)}
		}
		out[idx] = value
	}
	return out, nil
}

// AnswerResponse is the outcome of one submitted answer. Incorrect is
// a result, never an error.
type AnswerResponse struct {
	Correct        bool   `json:"correct"`
	LivesRemaining int    `json:"lives_remaining"`
	State          string `json:"state"`
	Explanation    string `json:"explanation,omitempty"`
}

// AdvanceResponse moves the session to the next exercise, or reports
// the final outcome when the level ends.
type AdvanceResponse struct {
	State    string  `json:"state"`
	Cursor   int     `json:"cursor"`
	Progress float64 `json:"progress"`

	// Populated on completion only
	Score         int           `json:"score,omitempty"`
	Stars         int           `json:"stars,omitempty"`
	NewBestStars  bool          `json:"new_best_stars,omitempty"`
	NewBestTime   bool          `json:"new_best_time,omitempty"`
	LevelUnlocked bool          `json:"level_unlocked,omitempty"`
	Exercise      *ExerciseView `json:"exercise,omitempty"`
}

// LevelResultResponse is the persisted best outcome for one level
type LevelResultResponse struct {
	LevelID  int     `json:"level_id"`
	Stars    int     `json:"stars"`
	BestTime float64 `json:"best_time"` // seconds, negative when never completed
}

// ProgressResponse is the whole persisted progression
type ProgressResponse struct {
	HighestUnlocked int                   `json:"highest_unlocked"`
	Results         []LevelResultResponse `json:"results"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
