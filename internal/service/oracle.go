package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// Oracle is the capability boundary for semantic scoring. Production wiring
// uses Gemini; tests substitute deterministic fixtures.
type Oracle interface {
	Judge(ctx context.Context, responseText, questionContent string, questionType model.QuestionType) (*model.OracleJudgment, error)
}

// ScoringService wraps an Oracle with the availability contract: any oracle
// failure is absorbed into a length-derived fallback judgment so the pipeline
// always completes. The returned judgment's Source tag records which path ran.
type ScoringService struct {
	oracle Oracle
	log    *logrus.Entry
}

// NewScoringService creates a scoring service over the given oracle.
// A nil oracle means every judgment uses the fallback path.
func NewScoringService(oracle Oracle, log *logrus.Entry) *ScoringService {
	return &ScoringService{oracle: oracle, log: log}
}

// Score obtains a judgment for the response. Never fails: oracle errors
// degrade to the fallback judgment.
func (s *ScoringService) Score(ctx context.Context, responseText, questionContent string, questionType model.QuestionType) *model.OracleJudgment {
	if s.oracle == nil {
		return FallbackJudgment(responseText, questionType)
	}

	judgment, err := s.oracle.Judge(ctx, responseText, questionContent, questionType)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("oracle unavailable, using fallback judgment")
		return FallbackJudgment(responseText, questionType)
	}

	judgment.Source = model.JudgmentSourceOracle
	return judgment
}

// FallbackJudgment derives a judgment from response length alone:
// base = clamp(40, 2*wordCount, 85), clarity = base-5, structure = base-10,
// technical = base only for technical questions.
func FallbackJudgment(responseText string, questionType model.QuestionType) *model.OracleJudgment {
	wordCount := len(strings.Fields(responseText))

	base := wordCount * 2
	if base < 40 {
		base = 40
	}
	if base > 85 {
		base = 85
	}

	var technical *int
	if questionType == model.QuestionTypeTechnical {
		t := base
		technical = &t
	}

	return &model.OracleJudgment{
		ContentRelevance:      base,
		CommunicationClarity:  base - 5,
		StructureOrganization: base - 10,
		TechnicalAccuracy:     technical,
		Strengths:             []string{"Response provided", "Attempted to answer", "Used appropriate language"},
		Weaknesses:            []string{"Could be more detailed", "Could improve structure", "Could add examples"},
		Suggestions:           []string{"Provide more specific examples", "Organize response better", "Expand on key points"},
		Source:                model.JudgmentSourceFallback,
	}
}

// GeminiOracle scores responses with one structured-prompt Gemini call.
type GeminiOracle struct {
	gemini *geminiClient
	model  string
}

// NewGeminiOracle returns a Gemini-backed oracle, or nil when no API key is
// configured (callers then run on the fallback path).
func NewGeminiOracle(cfg *config.AIConfig) *GeminiOracle {
	if !cfg.IsEnabled() {
		return nil
	}
	return &GeminiOracle{
		gemini: newGeminiClient(cfg),
		model:  cfg.Models.Scoring,
	}
}

func (o *GeminiOracle) Judge(ctx context.Context, responseText, questionContent string, questionType model.QuestionType) (*model.OracleJudgment, error) {
	prompt := buildScoringPrompt(responseText, questionContent, questionType)

	raw, err := o.gemini.generate(ctx, o.model, prompt, true)
	if err != nil {
		return nil, err
	}

	return parseJudgment(raw)
}

func buildScoringPrompt(responseText, questionContent string, questionType model.QuestionType) string {
	return fmt.Sprintf(`You are an expert interview evaluator. Evaluate this interview response on a scale of 0-100 for each criterion.

Question: %s
Question Type: %s
Response: %s

Provide scores for:
1. Content Relevance (0-100): How well does the response address the question?
2. Communication Clarity (0-100): How clear and articulate is the response?
3. Structure & Organization (0-100): How well-organized is the response?
4. Technical Accuracy (0-100): How technically sound is the response? (only if applicable)

Also provide 3 key strengths, 3 areas for improvement, and 3 specific suggestions.

Return ONLY valid JSON:
{
  "content_relevance": score,
  "communication_clarity": score,
  "structure_organization": score,
  "technical_accuracy": score or null,
  "strengths": ["strength1", "strength2", "strength3"],
  "weaknesses": ["weakness1", "weakness2", "weakness3"],
  "suggestions": ["suggestion1", "suggestion2", "suggestion3"]
}`, questionContent, questionType, responseText)
}

var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

// parseJudgment extracts the JSON judgment from the model output, clamps all
// numeric fields to [0,100] and truncates the string lists to three entries.
func parseJudgment(raw string) (*model.OracleJudgment, error) {
	match := jsonBlock.FindString(raw)
	if match == "" {
		return nil, fmt.Errorf("no JSON object in oracle response")
	}

	var judgment model.OracleJudgment
	if err := json.Unmarshal([]byte(match), &judgment); err != nil {
		return nil, fmt.Errorf("unparseable oracle response: %w", err)
	}

	judgment.ContentRelevance = clampInt(judgment.ContentRelevance)
	judgment.CommunicationClarity = clampInt(judgment.CommunicationClarity)
	judgment.StructureOrganization = clampInt(judgment.StructureOrganization)
	if judgment.TechnicalAccuracy != nil {
		t := clampInt(*judgment.TechnicalAccuracy)
		judgment.TechnicalAccuracy = &t
	}

	judgment.Strengths = truncate(judgment.Strengths, 3)
	judgment.Weaknesses = truncate(judgment.Weaknesses, 3)
	judgment.Suggestions = truncate(judgment.Suggestions, 3)

	return &judgment, nil
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func truncate(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}
