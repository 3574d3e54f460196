package analysis

import (
	"math"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// maxFillerPenalty caps how much filler words can drag clarity down.
const maxFillerPenalty = 20.0

// AggregateScores reconciles the deterministic metrics with the oracle's
// judgment into the final component scores. Deterministic: same inputs,
// same output.
//
// Rules:
//   - clarity: oracle clarity minus min(20, fillerRatio*100), floored at 0
//   - structure: oracle structure nudged by (heuristic-70)*0.3, clamped
//   - content: oracle value unchanged
//   - overall: floor of the mean of the included components; technical
//     accuracy is included only for technical questions that have a value
func AggregateScores(metrics *model.MetricsSnapshot, judgment *model.OracleJudgment, questionType model.QuestionType) *model.ResponseScore {
	content := clampScore(float64(judgment.ContentRelevance))

	fillerPenalty := math.Min(maxFillerPenalty, metrics.FillerWordRatio*100)
	clarity := clampScore(float64(judgment.CommunicationClarity) - fillerPenalty)

	structureBonus := (float64(metrics.StructureScore) - 70) * 0.3
	structure := clampScore(float64(judgment.StructureOrganization) + structureBonus)

	var technical *int
	if questionType == model.QuestionTypeTechnical && judgment.TechnicalAccuracy != nil {
		t := clampScore(float64(*judgment.TechnicalAccuracy))
		technical = &t
	}

	components := []int{content, clarity, structure}
	if technical != nil {
		components = append(components, *technical)
	}
	sum := 0
	for _, c := range components {
		sum += c
	}
	overall := sum / len(components)

	return &model.ResponseScore{
		OverallScore:               overall,
		ContentRelevanceScore:      content,
		CommunicationClarityScore:  clarity,
		StructureOrganizationScore: structure,
		TechnicalAccuracyScore:     technical,

		SentimentScore:       metrics.SentimentScore,
		ConfidenceIndicators: metrics.ConfidenceIndicators,
		FillerWordsCount:     metrics.FillerWordCount,
		WordCount:            metrics.WordCount,
		UniqueWordsCount:     metrics.UniqueWordCount,
	}
}

// clampScore floors a component score into [0,100].
func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Floor(v))
}
