package model

import "time"

// ResponseStatus tracks a response through the evaluation lifecycle.
// Transitions only ever move forward: pending -> processing -> completed|failed.
type ResponseStatus string

const (
	StatusPending    ResponseStatus = "pending"
	StatusProcessing ResponseStatus = "processing"
	StatusCompleted  ResponseStatus = "completed"
	StatusFailed     ResponseStatus = "failed"
)

// InterviewResponse is the persisted record of one submitted answer.
// It is owned by the lifecycle manager for the duration of one evaluation run.
type InterviewResponse struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	UserID     string `json:"userId" bson:"userId"`
	QuestionID string `json:"questionId" bson:"questionId"`

	OriginalText  string `json:"originalText,omitempty" bson:"originalText,omitempty"`
	ProcessedText string `json:"processedText,omitempty" bson:"processedText,omitempty"`

	AudioFilePath           string   `json:"audioFilePath,omitempty" bson:"audioFilePath,omitempty"`
	ResponseDurationSeconds *float64 `json:"responseDurationSeconds,omitempty" bson:"responseDurationSeconds,omitempty"`
	TranscriptionConfidence *float64 `json:"transcriptionConfidence,omitempty" bson:"transcriptionConfidence,omitempty"`

	Status           ResponseStatus `json:"status" bson:"status"`
	ErrorMessage     string         `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	ProcessingTimeMS int64          `json:"processingTimeMs,omitempty" bson:"processingTimeMs,omitempty"`

	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

// Submission is the ephemeral input to the evaluation pipeline. Exactly one
// of Text or Audio is populated.
type Submission struct {
	ResponseID string
	UserID     string
	QuestionID string
	Text       string
	Audio      []byte
	Filename   string
}

// IsAudio reports whether the submission carries an audio payload.
func (s *Submission) IsAudio() bool { return len(s.Audio) > 0 }
