package catalog

import (
	"os"
	"testing"

	"rse-quest/internal/config"
	"rse-quest/internal/domain"
	"rse-quest/internal/logger"

	"github.com/stretchr/testify/assert"
)

// TestMain initializes the logger; the parser logs skipped records.
func TestMain(m *testing.M) {
	cfg := &config.Config{}
	if err := logger.Initialize(cfg); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		discriminator string
		want          domain.ExerciseKind
	}{
		{"quiz", domain.KindQuiz},
		{"Quiz", domain.KindQuiz},
		{"truefalse", domain.KindTrueFalse},
		{"true_false", domain.KindTrueFalse},
		{"true-false", domain.KindTrueFalse},
		{"TRUE_FALSE", domain.KindTrueFalse},
		{"fillinblank", domain.KindFillInBlank},
		{"fill_in_blank", domain.KindFillInBlank},
		{"fill-in-blank", domain.KindFillInBlank},
		{"fillintheblank", domain.KindFillInBlank},
		{"sorting", domain.KindSorting},
		{"sort", domain.KindSorting},
		{"categorize", domain.KindSorting},
		{"matching", domain.KindMatching},
		{"match", domain.KindMatching},
		{"connect", domain.KindMatching},
		// Backward-compatibility fallback
		{"", domain.KindQuiz},
		{"unknown-kind", domain.KindQuiz},
	}

	for _, tt := range tests {
		t.Run(tt.discriminator, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.discriminator))
		})
	}
}

func validQuizRecord() ExerciseRecord {
	return ExerciseRecord{
		ExerciseType:       "quiz",
		Explanation:        "Paris est la capitale de la France.",
		Difficulty:         1,
		Category:           2,
		ImageName:          "quiz_paris",
		QuestionText:       "Quelle est la capitale de la France ?",
		Options:            []string{"Paris", "Londres", "Berlin"},
		CorrectOptionIndex: 0,
	}
}

func TestParseExercise_CommonFields(t *testing.T) {
	ex, err := ParseExercise(validQuizRecord())

	assert.NoError(t, err)
	assert.Equal(t, domain.KindQuiz, ex.Kind)
	assert.Equal(t, "Paris est la capitale de la France.", ex.Explanation)
	assert.Equal(t, domain.DifficultyMedium, ex.Difficulty)
	assert.Equal(t, domain.CategoryGovernance, ex.Category)
	assert.Equal(t, "quiz_paris", ex.ImageName)
}

func TestParseExercise_PerKind(t *testing.T) {
	t.Run("truefalse", func(t *testing.T) {
		ex, err := ParseExercise(ExerciseRecord{
			ExerciseType: "true_false",
			Statement:    "La RSE ne concerne que les grandes entreprises.",
			IsTrue:       false,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.KindTrueFalse, ex.Kind)
		assert.NotNil(t, ex.TrueFalse)
		assert.False(t, ex.TrueFalse.IsTrue)
	})

	t.Run("fillinblank", func(t *testing.T) {
		ex, err := ParseExercise(ExerciseRecord{
			ExerciseType:       "fill_in_blank",
			SentenceWithBlanks: "La RSE signifie {0} Sociétale des {1}",
			CorrectAnswers:     []string{"Responsabilité", "Entreprises"},
			WordOptions:        []string{"Responsabilité", "Entreprises", "Rentabilité"},
			CaseSensitive:      false,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.KindFillInBlank, ex.Kind)
		assert.Equal(t, 2, ex.FillInBlank.BlankCount())
	})

	t.Run("sorting", func(t *testing.T) {
		ex, err := ParseExercise(ExerciseRecord{
			ExerciseType: "categorize",
			Instruction:  "Classez chaque action",
			Categories: []SortingCategoryRecord{
				{CategoryName: "Environnement", CategoryColor: "#2E7D32"},
				{CategoryName: "Social"},
			},
			Items: []SortableItemRecord{
				{ItemName: "Tri des déchets", CorrectCategoryIndex: 0},
				{ItemName: "Égalité salariale", CorrectCategoryIndex: 1},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.KindSorting, ex.Kind)
		assert.Len(t, ex.Sorting.Categories, 2)
		assert.Equal(t, "#2E7D32", ex.Sorting.Categories[0].Color)
	})

	t.Run("matching default headers", func(t *testing.T) {
		ex, err := ParseExercise(ExerciseRecord{
			ExerciseType: "connect",
			Instruction:  "Reliez",
			Pairs: []MatchPairRecord{
				{LeftItem: "Covoiturage", RightItem: "Moins de CO2"},
			},
			ShuffleRightColumn: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Actions", ex.Matching.LeftHeader)
		assert.Equal(t, "Impacts", ex.Matching.RightHeader)
		assert.True(t, ex.Matching.ShuffleRight)
	})
}

func TestParseExercise_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rec  ExerciseRecord
	}{
		{"quiz without options", ExerciseRecord{ExerciseType: "quiz", QuestionText: "q"}},
		{"quiz correct index out of bounds", ExerciseRecord{
			ExerciseType: "quiz", QuestionText: "q",
			Options: []string{"a", "b"}, CorrectOptionIndex: 9,
		}},
		{"truefalse without statement", ExerciseRecord{ExerciseType: "truefalse"}},
		{"fillinblank placeholder mismatch", ExerciseRecord{
			ExerciseType:       "fillinblank",
			SentenceWithBlanks: "Un seul trou: {0}",
			CorrectAnswers:     []string{"a", "b"},
		}},
		{"sorting item with bad category index", ExerciseRecord{
			ExerciseType: "sorting", Instruction: "i",
			Categories: []SortingCategoryRecord{{CategoryName: "c"}},
			Items:      []SortableItemRecord{{ItemName: "x", CorrectCategoryIndex: 4}},
		}},
		{"matching without pairs", ExerciseRecord{ExerciseType: "matching", Instruction: "i"}},
		// Fallback resolves to Quiz, whose required fields are absent
		{"unknown discriminator with no quiz fields", ExerciseRecord{ExerciseType: "???"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExercise(tt.rec)
			assert.Error(t, err)
			var domainErr *domain.DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeParseError, domainErr.Code)
		})
	}
}

func TestParseLevel_PartialFailure(t *testing.T) {
	rec := LevelRecord{
		LevelID: 2,
		Theme:   "Empreinte carbone",
		Exercises: []ExerciseRecord{
			validQuizRecord(),
			{ExerciseType: "quiz"}, // malformed, skipped
			{ExerciseType: "truefalse", Statement: "Le télétravail réduit les trajets.", IsTrue: true},
		},
	}

	level := ParseLevel(rec)

	assert.Equal(t, 2, level.ID)
	assert.Equal(t, "Empreinte carbone", level.Theme)
	// The bad record is skipped, the rest of the batch survives
	assert.Len(t, level.Exercises, 2)
	assert.Equal(t, domain.KindQuiz, level.Exercises[0].Kind)
	assert.Equal(t, domain.KindTrueFalse, level.Exercises[1].Kind)
}

func TestParseLevel_AssignsOrdinalIDs(t *testing.T) {
	rec := LevelRecord{
		LevelID:   1,
		Exercises: []ExerciseRecord{validQuizRecord(), validQuizRecord()},
	}

	level := ParseLevel(rec)

	assert.Equal(t, 1, level.Exercises[0].ID)
	assert.Equal(t, 2, level.Exercises[1].ID)
}

func TestRoundTrip(t *testing.T) {
	records := []ExerciseRecord{
		validQuizRecord(),
		{
			ExerciseType: "truefalse",
			Statement:    "La gouvernance est un pilier de la RSE.",
			IsTrue:       true,
			Explanation:  "C'est l'un des piliers ESG.",
		},
		{
			ExerciseType:       "fillinblank",
			SentenceWithBlanks: "La RSE signifie {0} Sociétale des {1}",
			CorrectAnswers:     []string{"Responsabilité", "Entreprises"},
			WordOptions:        []string{"Responsabilité", "Entreprises", "Rentabilité"},
			CaseSensitive:      true,
		},
		{
			ExerciseType: "sorting",
			Instruction:  "Classez",
			Categories: []SortingCategoryRecord{
				{CategoryName: "Environnement", CategoryIconName: "leaf", CategoryColor: "#2E7D32"},
			},
			Items: []SortableItemRecord{
				{ItemName: "Tri", ItemSpriteName: "bin", CorrectCategoryIndex: 0},
			},
		},
		{
			ExerciseType:      "matching",
			Instruction:       "Reliez",
			LeftColumnHeader:  "Gestes",
			RightColumnHeader: "Effets",
			Pairs: []MatchPairRecord{
				{LeftItem: "Covoiturage", RightItem: "Moins de CO2", LeftSpriteName: "car", RightSpriteName: "cloud"},
			},
			ShuffleRightColumn: true,
		},
	}

	for _, rec := range records {
		t.Run(rec.ExerciseType, func(t *testing.T) {
			ex, err := ParseExercise(rec)
			assert.NoError(t, err)

			got := ExerciseToRecord(ex)
			// The canonical discriminator survives, all kind fields intact
			assert.Equal(t, ParseKind(rec.ExerciseType), ParseKind(got.ExerciseType))
			got.ExerciseType = rec.ExerciseType
			assert.Equal(t, rec, got)
		})
	}
}
