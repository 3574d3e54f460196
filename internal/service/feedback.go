package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

const (
	maxStrengths   = 5
	maxWeaknesses  = 5
	maxSuggestions = 6
)

// NarrativeRequest carries everything the narrative generator needs for a
// short personalized feedback message.
type NarrativeRequest struct {
	Question   string
	Response   string
	Score      int
	Strengths  []string
	Weaknesses []string
}

// NarrativeGenerator is the capability boundary for personalized feedback
// text. Failures are absorbed by the feedback service, which substitutes a
// template narrative.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req *NarrativeRequest) (string, error)
}

// FeedbackService derives strengths, weaknesses and suggestions from score
// thresholds and obtains a short narrative, falling back to a score-band
// template when the generator is unavailable. Feedback fields are never
// left empty.
type FeedbackService struct {
	narrative NarrativeGenerator
	log       *logrus.Entry
}

// NewFeedbackService creates a feedback service. A nil generator means every
// narrative uses the template path.
func NewFeedbackService(narrative NarrativeGenerator, log *logrus.Entry) *FeedbackService {
	return &FeedbackService{narrative: narrative, log: log}
}

// BuildFeedback fills the feedback fields of the score record in place.
func (s *FeedbackService) BuildFeedback(ctx context.Context, score *model.ResponseScore, question *model.Question, responseText string) {
	score.Strengths = identifyStrengths(score)
	score.Weaknesses = identifyWeaknesses(score, question.Type)
	score.Suggestions = generateSuggestions(score, question.Type)
	score.ImprovementTips = improvementTips(score)
	score.DetailedFeedback = s.narrativeFor(ctx, score, question, responseText)
}

func (s *FeedbackService) narrativeFor(ctx context.Context, score *model.ResponseScore, question *model.Question, responseText string) string {
	if s.narrative == nil {
		return templateNarrative(score.OverallScore, score.Strengths, score.Weaknesses)
	}

	text, err := s.narrative.Generate(ctx, &NarrativeRequest{
		Question:   question.Content,
		Response:   responseText,
		Score:      score.OverallScore,
		Strengths:  score.Strengths,
		Weaknesses: score.Weaknesses,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.log.WithField("error", err.Error()).Warn("narrative generator unavailable, using template")
		}
		return templateNarrative(score.OverallScore, score.Strengths, score.Weaknesses)
	}
	return strings.TrimSpace(text)
}

// identifyStrengths maps component scores to strengths. At least one is
// always returned, even for the weakest input.
func identifyStrengths(score *model.ResponseScore) []string {
	var strengths []string

	switch {
	case score.ContentRelevanceScore >= 80:
		strengths = append(strengths, "Excellent content relevance - directly addressed the question")
	case score.ContentRelevanceScore >= 70:
		strengths = append(strengths, "Good content relevance - mostly addressed the question")
	}

	switch {
	case score.CommunicationClarityScore >= 80:
		strengths = append(strengths, "Clear and articulate communication")
	case score.CommunicationClarityScore >= 70:
		strengths = append(strengths, "Generally clear communication")
	}

	switch {
	case score.StructureOrganizationScore >= 80:
		strengths = append(strengths, "Well-organized and structured response")
	case score.StructureOrganizationScore >= 70:
		strengths = append(strengths, "Good response structure")
	}

	if score.TechnicalAccuracyScore != nil {
		switch {
		case *score.TechnicalAccuracyScore >= 80:
			strengths = append(strengths, "Strong technical accuracy and knowledge")
		case *score.TechnicalAccuracyScore >= 70:
			strengths = append(strengths, "Good technical understanding")
		}
	}

	if score.WordCount >= 100 {
		strengths = append(strengths, "Provided detailed and comprehensive response")
	}
	if score.ConfidenceIndicators >= 3 {
		strengths = append(strengths, "Demonstrated confidence in responses")
	}
	if score.SentimentScore > 0.3 {
		strengths = append(strengths, "Positive and enthusiastic tone")
	}
	if score.WordCount > 0 && float64(score.UniqueWordsCount)/float64(score.WordCount) > 0.7 {
		strengths = append(strengths, "Rich vocabulary and varied expression")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Attempted to provide a response")
		if score.WordCount > 20 {
			strengths = append(strengths, "Provided a substantive answer")
		}
	}

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}

func identifyWeaknesses(score *model.ResponseScore, questionType model.QuestionType) []string {
	var weaknesses []string

	if score.ContentRelevanceScore < 60 {
		weaknesses = append(weaknesses, "Response could be more directly relevant to the question")
	}
	if score.CommunicationClarityScore < 60 {
		weaknesses = append(weaknesses, "Communication could be clearer and more articulate")
	}
	if score.StructureOrganizationScore < 60 {
		weaknesses = append(weaknesses, "Response structure and organization needs improvement")
	}
	if score.TechnicalAccuracyScore != nil && *score.TechnicalAccuracyScore < 60 && questionType == model.QuestionTypeTechnical {
		weaknesses = append(weaknesses, "Technical accuracy and knowledge could be strengthened")
	}
	if score.FillerWordsCount > 5 {
		weaknesses = append(weaknesses, "Reduce use of filler words (um, uh, like)")
	}
	if score.WordCount < 30 {
		weaknesses = append(weaknesses, "Response could be more detailed and comprehensive")
	} else if score.WordCount > 300 {
		weaknesses = append(weaknesses, "Response could be more concise and focused")
	}
	if score.ConfidenceIndicators == 0 {
		weaknesses = append(weaknesses, "Could demonstrate more confidence in responses")
	}
	if score.SentimentScore < -0.2 {
		weaknesses = append(weaknesses, "Could adopt a more positive tone")
	}

	if len(weaknesses) > maxWeaknesses {
		weaknesses = weaknesses[:maxWeaknesses]
	}
	return weaknesses
}

// generateSuggestions pairs each weakness threshold with actionable advice.
func generateSuggestions(score *model.ResponseScore, questionType model.QuestionType) []string {
	var suggestions []string

	if score.ContentRelevanceScore < 70 {
		suggestions = append(suggestions,
			"Practice the STAR method (Situation, Task, Action, Result) for behavioral questions",
			"Ensure you directly answer what is being asked before adding additional context")
	}
	if score.CommunicationClarityScore < 70 {
		suggestions = append(suggestions,
			"Practice speaking slowly and clearly",
			"Use simple, direct language to convey your points")
	}
	if score.StructureOrganizationScore < 70 {
		suggestions = append(suggestions,
			"Start with a brief overview, then provide details, and conclude with key takeaways",
			"Use transition words to connect your ideas smoothly")
	}
	if score.TechnicalAccuracyScore != nil && *score.TechnicalAccuracyScore < 70 && questionType == model.QuestionTypeTechnical {
		suggestions = append(suggestions,
			"Review fundamental concepts related to the question topic",
			"Practice explaining technical concepts in simple terms")
	}
	if score.FillerWordsCount > 3 {
		suggestions = append(suggestions,
			"Practice pausing instead of using filler words",
			"Record yourself speaking to identify and reduce filler word usage")
	}
	if score.WordCount < 50 {
		suggestions = append(suggestions,
			"Provide specific examples to support your points",
			"Elaborate on your thought process and reasoning")
	}
	if score.ConfidenceIndicators < 2 {
		suggestions = append(suggestions,
			"Practice your responses out loud to build confidence",
			"Use definitive language instead of uncertain phrases")
	}

	suggestions = append(suggestions,
		"Practice mock interviews to improve overall performance",
		"Research common interview questions for your field")

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func improvementTips(score *model.ResponseScore) string {
	var tips []string

	if score.CommunicationClarityScore < 70 {
		tips = append(tips, "Practice speaking more clearly and reduce filler words")
	}
	if score.StructureOrganizationScore < 70 {
		tips = append(tips, "Use the STAR method (Situation, Task, Action, Result) to structure your responses")
	}
	if score.WordCount < 50 {
		tips = append(tips, "Provide more detailed responses with specific examples")
	}
	if score.FillerWordsCount > 5 {
		tips = append(tips, "Practice reducing filler words like 'um', 'uh', and 'like'")
	}

	if len(tips) == 0 {
		tips = append(tips, "Continue practicing to maintain your strong performance")
	}

	return strings.Join(tips, "; ")
}

// templateNarrative substitutes for the generator, chosen by score band and
// referencing the top strength and weakness.
func templateNarrative(score int, strengths, weaknesses []string) string {
	var tone string
	switch {
	case score >= 80:
		tone = "Excellent work!"
	case score >= 70:
		tone = "Good job!"
	case score >= 60:
		tone = "Nice effort!"
	default:
		tone = "Keep practicing!"
	}

	var sb strings.Builder
	sb.WriteString(tone)
	sb.WriteString(" ")

	if len(strengths) > 0 {
		sb.WriteString(fmt.Sprintf("Your response showed %s. ", strings.ToLower(strengths[0])))
	}
	if len(weaknesses) > 0 {
		sb.WriteString(fmt.Sprintf("To improve further, focus on %s. ", strings.ToLower(weaknesses[0])))
	}
	sb.WriteString("Keep practicing and you'll continue to improve!")

	return sb.String()
}

// GeminiNarrative generates personalized feedback text with Gemini.
type GeminiNarrative struct {
	gemini *geminiClient
	model  string
}

// NewGeminiNarrative returns a Gemini-backed generator, or nil when no API
// key is configured.
func NewGeminiNarrative(cfg *config.AIConfig) *GeminiNarrative {
	if !cfg.IsEnabled() {
		return nil
	}
	return &GeminiNarrative{
		gemini: newGeminiClient(cfg),
		model:  cfg.Models.Narrative,
	}
}

func (g *GeminiNarrative) Generate(ctx context.Context, req *NarrativeRequest) (string, error) {
	prompt := fmt.Sprintf(`You are a supportive interview coach. Provide encouraging and constructive feedback for this interview response.

Question: %s
Response: %s
Score: %d/100

Key Strengths: %s
Areas for Improvement: %s

Write a personalized, encouraging feedback message that:
1. Acknowledges their strengths
2. Provides specific, actionable advice for improvement
3. Maintains a positive, supportive tone
4. Is 3-4 sentences long`,
		req.Question, req.Response, req.Score,
		strings.Join(req.Strengths, ", "), strings.Join(req.Weaknesses, ", "))

	return g.gemini.generate(ctx, g.model, prompt, false)
}
