package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type stubOracle struct {
	judgment *model.OracleJudgment
	err      error
}

func (s *stubOracle) Judge(ctx context.Context, responseText, questionContent string, questionType model.QuestionType) (*model.OracleJudgment, error) {
	return s.judgment, s.err
}

func TestFallbackJudgment(t *testing.T) {
	t.Run("short response hits the floor", func(t *testing.T) {
		// 10 words: base = clamp(40, 20, 85) = 40
		j := FallbackJudgment("one two three four five six seven eight nine ten", model.QuestionTypeBehavioral)
		assert.Equal(t, 40, j.ContentRelevance)
		assert.Equal(t, 35, j.CommunicationClarity)
		assert.Equal(t, 30, j.StructureOrganization)
		assert.Nil(t, j.TechnicalAccuracy)
		assert.Equal(t, model.JudgmentSourceFallback, j.Source)
	})

	t.Run("mid-length response scales with word count", func(t *testing.T) {
		words := make([]byte, 0)
		for i := 0; i < 30; i++ {
			words = append(words, []byte("word ")...)
		}
		j := FallbackJudgment(string(words), model.QuestionTypeBehavioral)
		assert.Equal(t, 60, j.ContentRelevance)
		assert.Equal(t, 55, j.CommunicationClarity)
		assert.Equal(t, 50, j.StructureOrganization)
	})

	t.Run("long response hits the ceiling", func(t *testing.T) {
		long := ""
		for i := 0; i < 100; i++ {
			long += "word "
		}
		j := FallbackJudgment(long, model.QuestionTypeBehavioral)
		assert.Equal(t, 85, j.ContentRelevance)
		assert.Equal(t, 80, j.CommunicationClarity)
		assert.Equal(t, 75, j.StructureOrganization)
	})

	t.Run("technical questions get a technical component", func(t *testing.T) {
		j := FallbackJudgment("one two three four five six seven eight nine ten", model.QuestionTypeTechnical)
		require.NotNil(t, j.TechnicalAccuracy)
		assert.Equal(t, 40, *j.TechnicalAccuracy)
	})

	t.Run("generic feedback lists are populated", func(t *testing.T) {
		j := FallbackJudgment("anything", model.QuestionTypeBehavioral)
		assert.NotEmpty(t, j.Strengths)
		assert.NotEmpty(t, j.Weaknesses)
		assert.NotEmpty(t, j.Suggestions)
	})
}

func TestScoringService(t *testing.T) {
	ctx := context.Background()

	t.Run("oracle success is tagged oracle", func(t *testing.T) {
		svc := NewScoringService(&stubOracle{judgment: &model.OracleJudgment{ContentRelevance: 77}}, testLog())
		j := svc.Score(ctx, "response", "question", model.QuestionTypeBehavioral)
		assert.Equal(t, 77, j.ContentRelevance)
		assert.Equal(t, model.JudgmentSourceOracle, j.Source)
	})

	t.Run("oracle failure degrades to fallback", func(t *testing.T) {
		svc := NewScoringService(&stubOracle{err: errors.New("upstream timeout")}, testLog())
		j := svc.Score(ctx, "a short answer", "question", model.QuestionTypeBehavioral)
		assert.Equal(t, model.JudgmentSourceFallback, j.Source)
		assert.Equal(t, 40, j.ContentRelevance)
	})

	t.Run("nil oracle always falls back", func(t *testing.T) {
		svc := NewScoringService(nil, testLog())
		j := svc.Score(ctx, "a short answer", "question", model.QuestionTypeBehavioral)
		assert.Equal(t, model.JudgmentSourceFallback, j.Source)
	})
}

func TestParseJudgment(t *testing.T) {
	t.Run("extracts JSON from surrounding prose", func(t *testing.T) {
		raw := "Here is the evaluation:\n{\"content_relevance\": 88, \"communication_clarity\": 82, \"structure_organization\": 75, \"technical_accuracy\": null, \"strengths\": [\"a\"], \"weaknesses\": [\"b\"], \"suggestions\": [\"c\"]}\nDone."
		j, err := parseJudgment(raw)
		require.NoError(t, err)
		assert.Equal(t, 88, j.ContentRelevance)
		assert.Equal(t, 82, j.CommunicationClarity)
		assert.Equal(t, 75, j.StructureOrganization)
		assert.Nil(t, j.TechnicalAccuracy)
	})

	t.Run("clamps out-of-range scores", func(t *testing.T) {
		raw := `{"content_relevance": 150, "communication_clarity": -5, "structure_organization": 50, "technical_accuracy": 120}`
		j, err := parseJudgment(raw)
		require.NoError(t, err)
		assert.Equal(t, 100, j.ContentRelevance)
		assert.Equal(t, 0, j.CommunicationClarity)
		require.NotNil(t, j.TechnicalAccuracy)
		assert.Equal(t, 100, *j.TechnicalAccuracy)
	})

	t.Run("truncates long lists", func(t *testing.T) {
		raw := `{"strengths": ["a","b","c","d","e"], "weaknesses": [], "suggestions": ["x"]}`
		j, err := parseJudgment(raw)
		require.NoError(t, err)
		assert.Len(t, j.Strengths, 3)
		assert.Empty(t, j.Weaknesses)
		assert.Len(t, j.Suggestions, 1)
	})

	t.Run("rejects output without JSON", func(t *testing.T) {
		_, err := parseJudgment("I cannot evaluate this response.")
		assert.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := parseJudgment(`{"content_relevance": "not a number"}`)
		assert.Error(t, err)
	})
}
