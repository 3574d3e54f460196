package model

import "time"

// QuestionType defines the category of interview question
type QuestionType string

const (
	QuestionTypeBehavioral  QuestionType = "behavioral"
	QuestionTypeTechnical   QuestionType = "technical"
	QuestionTypeSituational QuestionType = "situational"
)

// DifficultyLevel defines how hard a question is
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Question is an interview question. The evaluation pipeline only reads
// Content and Type; everything else belongs to the admin surface.
type Question struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	Title           string          `json:"title" bson:"title"`
	Content         string          `json:"content" bson:"content"`
	Type            QuestionType    `json:"questionType" bson:"questionType"`
	Difficulty      DifficultyLevel `json:"difficultyLevel" bson:"difficultyLevel"`
	ExpectedMinutes int             `json:"expectedDurationMinutes,omitempty" bson:"expectedDurationMinutes,omitempty"`
	Keywords        []string        `json:"keywords,omitempty" bson:"keywords,omitempty"`
	IsActive        bool            `json:"isActive" bson:"isActive"`
	UsageCount      int             `json:"usageCount" bson:"usageCount"`
	AverageScore    *int            `json:"averageScore,omitempty" bson:"averageScore,omitempty"` // running average, see QuestionRepo.UpdateAverageScore
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
