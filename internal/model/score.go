package model

import "time"

// JudgmentSource tags where an OracleJudgment came from, so downstream code
// can tell a degraded result from a real one without log spelunking.
type JudgmentSource string

const (
	JudgmentSourceOracle   JudgmentSource = "oracle"
	JudgmentSourceFallback JudgmentSource = "fallback"
)

// OracleJudgment is the semantic judgment of a response, either from the
// external scorer or from the length-based fallback. All score fields are
// clamped to [0,100] before this struct is handed out.
type OracleJudgment struct {
	ContentRelevance      int  `json:"content_relevance"`
	CommunicationClarity  int  `json:"communication_clarity"`
	StructureOrganization int  `json:"structure_organization"`
	TechnicalAccuracy     *int `json:"technical_accuracy"`

	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`

	Source JudgmentSource `json:"-"`
}

// MetricsSnapshot holds the deterministic text measurements for one response.
// Same text in, same snapshot out.
type MetricsSnapshot struct {
	WordCount        int     `json:"wordCount"`
	SentenceCount    int     `json:"sentenceCount"`
	UniqueWordCount  int     `json:"uniqueWordCount"`
	AvgWordsPerSent  float64 `json:"avgWordsPerSentence"`
	FillerWordCount  int     `json:"fillerWordCount"`
	FillerWordRatio  float64 `json:"fillerWordRatio"`
	ReadabilityScore float64 `json:"readabilityScore"`

	SentimentScore float64 `json:"sentimentScore"` // [-1,1]
	StructureScore int     `json:"structureScore"` // [0,100]

	HasIntroduction bool `json:"hasIntroduction"`
	HasBody         bool `json:"hasBody"`
	HasConclusion   bool `json:"hasConclusion"`

	ConfidenceScore      float64 `json:"confidenceScore"` // pos/(pos+neg), 0.5 when no indicators
	ConfidenceIndicators int     `json:"confidenceIndicators"`
	HedgingIndicators    int     `json:"hedgingIndicators"`
}

// ResponseScore is the final score record for a completed response.
// Written exactly once, never mutated afterwards.
type ResponseScore struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	ResponseID string `json:"responseId" bson:"responseId"`

	OverallScore               int  `json:"overallScore" bson:"overallScore"`
	ContentRelevanceScore      int  `json:"contentRelevanceScore" bson:"contentRelevanceScore"`
	CommunicationClarityScore  int  `json:"communicationClarityScore" bson:"communicationClarityScore"`
	StructureOrganizationScore int  `json:"structureOrganizationScore" bson:"structureOrganizationScore"`
	TechnicalAccuracyScore     *int `json:"technicalAccuracyScore" bson:"technicalAccuracyScore,omitempty"`

	SentimentScore       float64 `json:"sentimentScore" bson:"sentimentScore"`
	ConfidenceIndicators int     `json:"confidenceIndicators" bson:"confidenceIndicators"`
	FillerWordsCount     int     `json:"fillerWordsCount" bson:"fillerWordsCount"`
	WordCount            int     `json:"wordCount" bson:"wordCount"`
	UniqueWordsCount     int     `json:"uniqueWordsCount" bson:"uniqueWordsCount"`

	Strengths   []string `json:"strengths" bson:"strengths"`
	Weaknesses  []string `json:"weaknesses" bson:"weaknesses"`
	Suggestions []string `json:"suggestions" bson:"suggestions"`

	DetailedFeedback string `json:"detailedFeedback" bson:"detailedFeedback"`
	ImprovementTips  string `json:"improvementTips" bson:"improvementTips"`

	ScoringModelVersion string    `json:"scoringModelVersion" bson:"scoringModelVersion"`
	ScoredAt            time.Time `json:"scoredAt" bson:"scoredAt"`
}
