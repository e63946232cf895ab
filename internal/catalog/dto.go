// Package catalog parses raw level records into typed domain levels.
// The wire format is a flat union: every record carries the fields of
// all exercise kinds as siblings, with a string discriminator; unused
// fields are simply absent.
package catalog

// ExerciseRecord is the flat wire form of one exercise
type ExerciseRecord struct {
	// Common fields
	ID           int    `json:"id,omitempty"`
	ExerciseType string `json:"exerciseType,omitempty"`
	Explanation  string `json:"explanation,omitempty"`
	Difficulty   int    `json:"difficulty,omitempty"`
	Category     int    `json:"category,omitempty"`
	ImageName    string `json:"imageName,omitempty"`

	// Quiz fields
	QuestionText       string   `json:"questionText,omitempty"`
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex int      `json:"correctOptionIndex,omitempty"`

	// TrueFalse fields
	Statement string `json:"statement,omitempty"`
	IsTrue    bool   `json:"isTrue,omitempty"`

	// FillInBlank fields
	SentenceWithBlanks string   `json:"sentenceWithBlanks,omitempty"`
	CorrectAnswers     []string `json:"correctAnswers,omitempty"`
	WordOptions        []string `json:"wordOptions,omitempty"`
	CaseSensitive      bool     `json:"caseSensitive,omitempty"`

	// Sorting fields
	Instruction string                  `json:"instruction,omitempty"`
	Categories  []SortingCategoryRecord `json:"categories,omitempty"`
	Items       []SortableItemRecord    `json:"items,omitempty"`

	// Matching fields
	LeftColumnHeader   string            `json:"leftColumnHeader,omitempty"`
	RightColumnHeader  string            `json:"rightColumnHeader,omitempty"`
	Pairs              []MatchPairRecord `json:"pairs,omitempty"`
	ShuffleRightColumn bool              `json:"shuffleRightColumn,omitempty"`
}

// SortingCategoryRecord is the wire form of one sorting bucket
type SortingCategoryRecord struct {
	CategoryName     string `json:"categoryName"`
	CategoryIconName string `json:"categoryIconName,omitempty"`
	CategoryColor    string `json:"categoryColor,omitempty"`
}

// SortableItemRecord is the wire form of one sortable item
type SortableItemRecord struct {
	ItemName             string `json:"itemName"`
	ItemSpriteName       string `json:"itemSpriteName,omitempty"`
	CorrectCategoryIndex int    `json:"correctCategoryIndex"`
}

// MatchPairRecord is the wire form of one matching pair
type MatchPairRecord struct {
	LeftItem        string `json:"leftItem"`
	RightItem       string `json:"rightItem"`
	LeftSpriteName  string `json:"leftSpriteName,omitempty"`
	RightSpriteName string `json:"rightSpriteName,omitempty"`
}

// LevelRecord is the wire form of one level with its exercises
type LevelRecord struct {
	LevelID   int              `json:"levelId"`
	Theme     string           `json:"theme"`
	Exercises []ExerciseRecord `json:"exercises"`
}

// CatalogRecord is the wire form of a whole bundled catalog
type CatalogRecord struct {
	Levels []LevelRecord `json:"levels"`
}
