package model

import "time"

// ScoreSummary is the score block of a ResponseAnalysis. While a response is
// still pending/processing (or has failed) it is zeroed, so API consumers see
// one stable shape for the whole lifecycle.
type ScoreSummary struct {
	OverallScore               int     `json:"overall_score"`
	ContentRelevanceScore      int     `json:"content_relevance_score"`
	CommunicationClarityScore  int     `json:"communication_clarity_score"`
	StructureOrganizationScore int     `json:"structure_organization_score"`
	TechnicalAccuracyScore     *int    `json:"technical_accuracy_score"`
	SentimentScore             float64 `json:"sentiment_score"`
	ConfidenceIndicators       int     `json:"confidence_indicators"`
	FillerWordsCount           int     `json:"filler_words_count"`
	WordCount                  int     `json:"word_count"`
	UniqueWordsCount           int     `json:"unique_words_count"`
}

// FeedbackSummary is the feedback block of a ResponseAnalysis.
type FeedbackSummary struct {
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Suggestions      []string `json:"suggestions"`
	DetailedFeedback string   `json:"detailed_feedback"`
	ImprovementTips  string   `json:"improvement_tips"`
}

// ResponseAnalysis is the API view of a response and its evaluation.
type ResponseAnalysis struct {
	ResponseID              string          `json:"response_id"`
	QuestionID              string          `json:"question_id"`
	QuestionTitle           string          `json:"question_title,omitempty"`
	OriginalText            string          `json:"original_text,omitempty"`
	ProcessedText           string          `json:"processed_text,omitempty"`
	ResponseDurationSeconds *float64        `json:"response_duration_seconds,omitempty"`
	TranscriptionConfidence *float64        `json:"transcription_confidence,omitempty"`
	Status                  ResponseStatus  `json:"status"`
	ErrorMessage            string          `json:"error_message,omitempty"`
	ProcessedAt             *time.Time      `json:"processed_at,omitempty"`
	ScoringModelVersion     string          `json:"scoring_model_version,omitempty"`
	Scores                  ScoreSummary    `json:"scores"`
	Feedback                FeedbackSummary `json:"feedback"`
}

// PendingAnalysis builds the placeholder analysis shown while a response is
// still being processed (or after it failed).
func PendingAnalysis(resp *InterviewResponse, questionTitle, detail, tips string) *ResponseAnalysis {
	return &ResponseAnalysis{
		ResponseID:              resp.ID,
		QuestionID:              resp.QuestionID,
		QuestionTitle:           questionTitle,
		OriginalText:            resp.OriginalText,
		ProcessedText:           resp.ProcessedText,
		ResponseDurationSeconds: resp.ResponseDurationSeconds,
		TranscriptionConfidence: resp.TranscriptionConfidence,
		Status:                  resp.Status,
		ErrorMessage:            resp.ErrorMessage,
		Scores:                  ScoreSummary{},
		Feedback: FeedbackSummary{
			Strengths:        []string{},
			Weaknesses:       []string{},
			Suggestions:      []string{},
			DetailedFeedback: detail,
			ImprovementTips:  tips,
		},
	}
}

// CompletedAnalysis builds the full analysis view from a completed response
// and its persisted score.
func CompletedAnalysis(resp *InterviewResponse, score *ResponseScore, questionTitle string) *ResponseAnalysis {
	return &ResponseAnalysis{
		ResponseID:              resp.ID,
		QuestionID:              resp.QuestionID,
		QuestionTitle:           questionTitle,
		OriginalText:            resp.OriginalText,
		ProcessedText:           resp.ProcessedText,
		ResponseDurationSeconds: resp.ResponseDurationSeconds,
		TranscriptionConfidence: resp.TranscriptionConfidence,
		Status:                  resp.Status,
		ProcessedAt:             resp.ProcessedAt,
		ScoringModelVersion:     score.ScoringModelVersion,
		Scores: ScoreSummary{
			OverallScore:               score.OverallScore,
			ContentRelevanceScore:      score.ContentRelevanceScore,
			CommunicationClarityScore:  score.CommunicationClarityScore,
			StructureOrganizationScore: score.StructureOrganizationScore,
			TechnicalAccuracyScore:     score.TechnicalAccuracyScore,
			SentimentScore:             score.SentimentScore,
			ConfidenceIndicators:       score.ConfidenceIndicators,
			FillerWordsCount:           score.FillerWordsCount,
			WordCount:                  score.WordCount,
			UniqueWordsCount:           score.UniqueWordsCount,
		},
		Feedback: FeedbackSummary{
			Strengths:        score.Strengths,
			Weaknesses:       score.Weaknesses,
			Suggestions:      score.Suggestions,
			DetailedFeedback: score.DetailedFeedback,
			ImprovementTips:  score.ImprovementTips,
		},
	}
}
