package catalog

import (
	"fmt"
	"strings"

	"rse-quest/internal/domain"
	"rse-quest/internal/logger"

	"go.uber.org/zap"
)

// ParseKind resolves a discriminator string to an exercise kind. The
// match is case-insensitive over a small synonym table; missing or
// unrecognized discriminators fall back to Quiz, the documented
// backward-compatibility default of the wire format.
func ParseKind(discriminator string) domain.ExerciseKind {
	switch strings.ToLower(discriminator) {
	case "quiz":
		return domain.KindQuiz
	case "truefalse", "true_false", "true-false":
		return domain.KindTrueFalse
	case "fillinblank", "fill_in_blank", "fill-in-blank", "fillintheblank":
		return domain.KindFillInBlank
	case "sorting", "sort", "categorize":
		return domain.KindSorting
	case "matching", "match", "connect":
		return domain.KindMatching
	default:
		return domain.KindQuiz
	}
}

// ParseExercise converts one flat record into a typed exercise. The
// resolved kind decides which fields are read; common fields are
// copied uniformly afterwards. Records that do not satisfy the kind's
// structural invariants yield a PARSE_ERROR.
func ParseExercise(rec ExerciseRecord) (*domain.Exercise, error) {
	kind := ParseKind(rec.ExerciseType)

	ex := &domain.Exercise{
		ID:          rec.ID,
		Kind:        kind,
		Explanation: rec.Explanation,
		Difficulty:  domain.Difficulty(rec.Difficulty),
		Category:    domain.Category(rec.Category),
		ImageName:   rec.ImageName,
	}

	switch kind {
	case domain.KindQuiz:
		ex.Quiz = &domain.QuizExercise{
			QuestionText:  rec.QuestionText,
			Options:       append([]string(nil), rec.Options...),
			CorrectOption: rec.CorrectOptionIndex,
		}
	case domain.KindTrueFalse:
		ex.TrueFalse = &domain.TrueFalseExercise{
			Statement: rec.Statement,
			IsTrue:    rec.IsTrue,
		}
	case domain.KindFillInBlank:
		ex.FillInBlank = &domain.FillInBlankExercise{
			Template:       rec.SentenceWithBlanks,
			CorrectAnswers: append([]string(nil), rec.CorrectAnswers...),
			WordOptions:    append([]string(nil), rec.WordOptions...),
			CaseSensitive:  rec.CaseSensitive,
		}
	case domain.KindSorting:
		sorting := &domain.SortingExercise{
			Instruction: rec.Instruction,
		}
		for _, cat := range rec.Categories {
			sorting.Categories = append(sorting.Categories, domain.SortCategory{
				Name:     cat.CategoryName,
				IconName: cat.CategoryIconName,
				Color:    cat.CategoryColor,
			})
		}
		for _, item := range rec.Items {
			sorting.Items = append(sorting.Items, domain.SortItem{
				Name:            item.ItemName,
				SpriteName:      item.ItemSpriteName,
				CorrectCategory: item.CorrectCategoryIndex,
			})
		}
		ex.Sorting = sorting
	case domain.KindMatching:
		matching := &domain.MatchingExercise{
			Instruction:  rec.Instruction,
			LeftHeader:   rec.LeftColumnHeader,
			RightHeader:  rec.RightColumnHeader,
			ShuffleRight: rec.ShuffleRightColumn,
		}
		if matching.LeftHeader == "" {
			matching.LeftHeader = "Actions"
		}
		if matching.RightHeader == "" {
			matching.RightHeader = "Impacts"
		}
		for _, pair := range rec.Pairs {
			matching.Pairs = append(matching.Pairs, domain.MatchPair{
				Left:            pair.LeftItem,
				Right:           pair.RightItem,
				LeftSpriteName:  pair.LeftSpriteName,
				RightSpriteName: pair.RightSpriteName,
			})
		}
		ex.Matching = matching
	}

	if err := ex.Validate(); err != nil {
		return nil, domain.NewParseError(
			fmt.Sprintf("malformed %s record", kind), err)
	}

	return ex, nil
}

// ParseLevel converts a raw level record into a typed level. Loading
// is best-effort over the exercise list: a malformed record is logged
// and skipped, the rest of the batch still parses. Callers decide what
// an entirely empty result means for them.
func ParseLevel(rec LevelRecord) *domain.Level {
	level := &domain.Level{
		ID:    rec.LevelID,
		Theme: rec.Theme,
	}

	for i, exRec := range rec.Exercises {
		ex, err := ParseExercise(exRec)
		if err != nil {
			logger.Get().Warn("Skipping malformed exercise record",
				zap.Int("level_id", rec.LevelID),
				zap.Int("record_index", i),
				zap.String("exercise_type", exRec.ExerciseType),
				zap.Error(err),
			)
			continue
		}
		if ex.ID == 0 {
			ex.ID = i + 1
		}
		level.Exercises = append(level.Exercises, ex)
	}

	return level
}

// ExerciseToRecord re-serializes a typed exercise back to the flat
// wire form. Parsing then re-serializing a well-formed record loses no
// kind-specific data.
func ExerciseToRecord(ex *domain.Exercise) ExerciseRecord {
	rec := ExerciseRecord{
		ID:           ex.ID,
		ExerciseType: ex.Kind.String(),
		Explanation:  ex.Explanation,
		Difficulty:   int(ex.Difficulty),
		Category:     int(ex.Category),
		ImageName:    ex.ImageName,
	}

	switch ex.Kind {
	case domain.KindQuiz:
		rec.QuestionText = ex.Quiz.QuestionText
		rec.Options = append([]string(nil), ex.Quiz.Options...)
		rec.CorrectOptionIndex = ex.Quiz.CorrectOption
	case domain.KindTrueFalse:
		rec.Statement = ex.TrueFalse.Statement
		rec.IsTrue = ex.TrueFalse.IsTrue
	case domain.KindFillInBlank:
		rec.SentenceWithBlanks = ex.FillInBlank.Template
		rec.CorrectAnswers = append([]string(nil), ex.FillInBlank.CorrectAnswers...)
		rec.WordOptions = append([]string(nil), ex.FillInBlank.WordOptions...)
		rec.CaseSensitive = ex.FillInBlank.CaseSensitive
	case domain.KindSorting:
		rec.Instruction = ex.Sorting.Instruction
		for _, cat := range ex.Sorting.Categories {
			rec.Categories = append(rec.Categories, SortingCategoryRecord{
				CategoryName:     cat.Name,
				CategoryIconName: cat.IconName,
				CategoryColor:    cat.Color,
			})
		}
		for _, item := range ex.Sorting.Items {
			rec.Items = append(rec.Items, SortableItemRecord{
				ItemName:             item.Name,
				ItemSpriteName:       item.SpriteName,
				CorrectCategoryIndex: item.CorrectCategory,
			})
		}
	case domain.KindMatching:
		rec.Instruction = ex.Matching.Instruction
		rec.LeftColumnHeader = ex.Matching.LeftHeader
		rec.RightColumnHeader = ex.Matching.RightHeader
		rec.ShuffleRightColumn = ex.Matching.ShuffleRight
		for _, pair := range ex.Matching.Pairs {
			rec.Pairs = append(rec.Pairs, MatchPairRecord{
				LeftItem:        pair.Left,
				RightItem:       pair.Right,
				LeftSpriteName:  pair.LeftSpriteName,
				RightSpriteName: pair.RightSpriteName,
			})
		}
	}

	return rec
}

// LevelToRecord re-serializes a typed level back to the wire form
func LevelToRecord(level *domain.Level) LevelRecord {
	rec := LevelRecord{
		LevelID: level.ID,
		Theme:   level.Theme,
	}
	for _, ex := range level.Exercises {
		rec.Exercises = append(rec.Exercises, ExerciseToRecord(ex))
	}
	return rec
}
