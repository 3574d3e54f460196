package service

import (
	"context"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/analysis"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/worker"
)

const waitFor = 3 * time.Second

// --- in-memory fakes ---

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
	usage     map[string]int
	averages  map[string]int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[string]*model.Question),
		usage:     make(map[string]int),
		averages:  make(map[string]int),
	}
}

func (r *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.questions[id], nil
}

func (r *fakeQuestionRepo) IncrementUsage(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage[id]++
	return nil
}

func (r *fakeQuestionRepo) UpdateAverageScore(ctx context.Context, id string, newScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.averages[id]; ok {
		r.averages[id] = int(math.Round(float64(old+newScore) / 2))
	} else {
		r.averages[id] = newScore
	}
	return nil
}

func (r *fakeQuestionRepo) average(id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	avg, ok := r.averages[id]
	return avg, ok
}

// fakeResponseRepo mimics the mongo-backed repo, including its refusal to
// issue writes on an expired context and the forward-only status filters.
// It also counts status transitions per record.
type fakeResponseRepo struct {
	mu          sync.Mutex
	responses   map[string]*model.InterviewResponse
	transitions map[string]int
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{
		responses:   make(map[string]*model.InterviewResponse),
		transitions: make(map[string]int),
	}
}

func (r *fakeResponseRepo) Create(ctx context.Context, resp *model.InterviewResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *resp
	r.responses[resp.ID] = &cp
	return nil
}

func (r *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.InterviewResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok {
		return nil, nil
	}
	cp := *resp
	return &cp, nil
}

func (r *fakeResponseRepo) GetByUser(ctx context.Context, userID string, offset, limit int64) ([]*model.InterviewResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.InterviewResponse
	for _, resp := range r.responses {
		if resp.UserID == userID {
			cp := *resp
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeResponseRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, resp := range r.responses {
		if resp.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeResponseRepo) MarkProcessing(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return &model.PersistenceError{Op: "mark processing", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok || resp.Status != model.StatusPending {
		return &model.PersistenceError{Op: "mark processing"}
	}
	resp.Status = model.StatusProcessing
	r.transitions[id]++
	return nil
}

func (r *fakeResponseRepo) MarkCompleted(ctx context.Context, id string, processedAt time.Time, processingTimeMS int64) error {
	if err := ctx.Err(); err != nil {
		return &model.PersistenceError{Op: "mark completed", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok || resp.Status != model.StatusProcessing {
		return &model.PersistenceError{Op: "mark completed"}
	}
	resp.Status = model.StatusCompleted
	resp.ProcessedAt = &processedAt
	resp.ProcessingTimeMS = processingTimeMS
	r.transitions[id]++
	return nil
}

func (r *fakeResponseRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	if err := ctx.Err(); err != nil {
		return &model.PersistenceError{Op: "mark failed", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok {
		return nil
	}
	if resp.Status == model.StatusPending || resp.Status == model.StatusProcessing {
		resp.Status = model.StatusFailed
		resp.ErrorMessage = errorMessage
		r.transitions[id]++
	}
	return nil
}

func (r *fakeResponseRepo) SetTranscription(ctx context.Context, id, originalText, processedText, audioPath string, durationSeconds, confidence float64) error {
	if err := ctx.Err(); err != nil {
		return &model.PersistenceError{Op: "set transcription", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok {
		return &model.PersistenceError{Op: "set transcription"}
	}
	resp.OriginalText = originalText
	resp.ProcessedText = processedText
	resp.AudioFilePath = audioPath
	resp.ResponseDurationSeconds = &durationSeconds
	resp.TranscriptionConfidence = &confidence
	return nil
}

func (r *fakeResponseRepo) status(id string) model.ResponseStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resp, ok := r.responses[id]; ok {
		return resp.Status
	}
	return ""
}

func (r *fakeResponseRepo) transitionCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transitions[id]
}

func (r *fakeResponseRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.responses)
}

func (r *fakeResponseRepo) all() []*model.InterviewResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.InterviewResponse, 0, len(r.responses))
	for _, resp := range r.responses {
		cp := *resp
		out = append(out, &cp)
	}
	return out
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores map[string]*model.ResponseScore
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: make(map[string]*model.ResponseScore)}
}

func (r *fakeScoreRepo) Create(ctx context.Context, score *model.ResponseScore) error {
	if err := ctx.Err(); err != nil {
		return &model.PersistenceError{Op: "create score", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if score.ScoredAt.IsZero() {
		score.ScoredAt = time.Now()
	}
	cp := *score
	r.scores[score.ResponseID] = &cp
	return nil
}

func (r *fakeScoreRepo) GetByResponseID(ctx context.Context, responseID string) (*model.ResponseScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[responseID]
	if !ok {
		return nil, nil
	}
	cp := *score
	return &cp, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*model.ResponseAnalysis
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*model.ResponseAnalysis)}
}

func (c *fakeCache) Get(ctx context.Context, responseID string) (*model.ResponseAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[responseID], nil
}

func (c *fakeCache) Set(ctx context.Context, analysis *model.ResponseAnalysis) error {
	if analysis.Status != model.StatusCompleted {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[analysis.ResponseID] = analysis
	return nil
}

type notifierEvent struct {
	UserID  string
	Event   string
	Payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifierEvent
}

func (n *fakeNotifier) NotifyUser(userID, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifierEvent{UserID: userID, Event: event, Payload: payload})
}

func (n *fakeNotifier) eventTypes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Event
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

type stubTranscriber struct {
	result *TranscriptionResult
	err    error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResult, error) {
	return s.result, s.err
}

// blockingTranscriber holds the evaluation until its context expires, the way
// a hung upstream call would.
type blockingTranscriber struct{}

func (blockingTranscriber) Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResult, error) {
	<-ctx.Done()
	return nil, &model.TranscriptionError{Message: "error transcribing audio", Err: ctx.Err()}
}

// --- fixture ---

type serviceFixture struct {
	svc       *ResponseService
	questions *fakeQuestionRepo
	responses *fakeResponseRepo
	scores    *fakeScoreRepo
	cache     *fakeCache
	notifier  *fakeNotifier
	pool      *worker.Pool
}

func newFixture(t *testing.T, transcriber Transcriber, pool *worker.Pool) *serviceFixture {
	t.Helper()

	cfg := &config.Config{
		UploadDir:           t.TempDir(),
		MaxAudioSizeMB:      50,
		AllowedAudioFormats: []string{"mp3", "wav", "m4a", "flac"},
		MinTextLength:       10,
		MaxTextLength:       5000,
	}

	if pool == nil {
		pool = worker.NewPool(2, 16, 5*time.Second, testLog())
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = pool.Shutdown(ctx)
	})

	f := &serviceFixture{
		questions: newFakeQuestionRepo(),
		responses: newFakeResponseRepo(),
		scores:    newFakeScoreRepo(),
		cache:     newFakeCache(),
		notifier:  &fakeNotifier{},
		pool:      pool,
	}

	f.svc = NewResponseService(ResponseServiceDeps{
		Config:      cfg,
		Responses:   f.responses,
		Questions:   f.questions,
		Scores:      f.scores,
		Cache:       f.cache,
		Pool:        pool,
		Transcriber: transcriber,
		Scoring:     NewScoringService(nil, testLog()),
		Feedback:    NewFeedbackService(nil, testLog()),
		Metrics:     analysis.NewMetricsAnalyzer(analysis.DefaultLexicons()),
		Notifier:    f.notifier,
		Log:         testLog(),
	})

	f.seedQuestion("q1", model.QuestionTypeBehavioral)
	return f
}

func (f *serviceFixture) seedQuestion(id string, qt model.QuestionType) {
	f.questions.Create(context.Background(), &model.Question{
		ID:      id,
		Title:   "Tell me about a challenge",
		Content: "Tell me about a challenging project you worked on.",
		Type:    qt,
	})
}

func (f *serviceFixture) waitForStatus(t *testing.T, responseID string, want model.ResponseStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.responses.status(responseID) == want
	}, waitFor, 10*time.Millisecond, "response never reached status %s", want)
}

// --- tests ---

func TestSubmitTextLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	// ten words, fallback judgment base = clamp(40, 20, 85) = 40
	ack, err := f.svc.SubmitText(ctx, "user-1", "q1", "one two three four five six seven eight nine ten")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, ack.Status)
	assert.Zero(t, ack.Scores.OverallScore, "acknowledgment carries no scores")
	assert.NotEmpty(t, ack.ResponseID)

	f.waitForStatus(t, ack.ResponseID, model.StatusCompleted)

	score, err := f.scores.GetByResponseID(ctx, ack.ResponseID)
	require.NoError(t, err)
	require.NotNil(t, score)

	// content 40, clarity 35 (no fillers), structure 30 + (0-70)*0.3 = 9
	assert.Equal(t, 40, score.ContentRelevanceScore)
	assert.Equal(t, 35, score.CommunicationClarityScore)
	assert.Equal(t, 9, score.StructureOrganizationScore)
	assert.Equal(t, 28, score.OverallScore)
	assert.Nil(t, score.TechnicalAccuracyScore)
	assert.Equal(t, ScoringModelVersion, score.ScoringModelVersion)
	assert.NotEmpty(t, score.DetailedFeedback)

	avg, ok := f.questions.average("q1")
	require.True(t, ok, "question average must be updated")
	assert.Equal(t, 28, avg)

	require.Eventually(t, func() bool {
		events := f.notifier.eventTypes()
		return contains(events, EventAnalysisStarted) && contains(events, EventAnalysisComplete)
	}, waitFor, 10*time.Millisecond, "lifecycle events never pushed")

	view, err := f.svc.GetAnalysis(ctx, "user-1", ack.ResponseID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, view.Status)
	assert.Equal(t, 28, view.Scores.OverallScore)
	assert.Equal(t, "Tell me about a challenge", view.QuestionTitle)
}

func TestSubmitTextValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	t.Run("too-short text fails before anything is persisted", func(t *testing.T) {
		_, err := f.svc.SubmitText(ctx, "user-1", "q1", "short")
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Zero(t, f.responses.count())
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := f.svc.SubmitText(ctx, "user-1", "missing", "a perfectly reasonable answer here")
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})
}

func TestSubmitAudioLifecycle(t *testing.T) {
	ctx := context.Background()
	transcriber := &stubTranscriber{result: &TranscriptionResult{
		Text:            "I led the team through a difficult migration and overall it was a success.",
		Confidence:      0.85,
		DurationSeconds: 42.0,
	}}
	f := newFixture(t, transcriber, nil)

	ack, err := f.svc.SubmitAudio(ctx, "user-1", "q1", []byte("audio-bytes"), "answer.mp3")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, ack.Status)

	f.waitForStatus(t, ack.ResponseID, model.StatusCompleted)

	record, err := f.responses.GetByID(ctx, ack.ResponseID)
	require.NoError(t, err)
	assert.Equal(t, transcriber.result.Text, record.OriginalText)
	assert.NotEmpty(t, record.ProcessedText)
	assert.NotEmpty(t, record.AudioFilePath)
	require.NotNil(t, record.ResponseDurationSeconds)
	assert.Equal(t, 42.0, *record.ResponseDurationSeconds)
	require.NotNil(t, record.TranscriptionConfidence)
	assert.Equal(t, 0.85, *record.TranscriptionConfidence)

	view, err := f.svc.GetAnalysis(ctx, "user-1", ack.ResponseID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, view.Status)
	assert.Greater(t, view.Scores.OverallScore, 0)
}

func TestSubmitAudioValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &stubTranscriber{}, nil)

	t.Run("unsupported container rejected before transcription", func(t *testing.T) {
		_, err := f.svc.SubmitAudio(ctx, "user-1", "q1", []byte("audio"), "clip.ogg")
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Zero(t, f.responses.count())
	})

	t.Run("oversized upload rejected", func(t *testing.T) {
		big := make([]byte, 51*1024*1024)
		_, err := f.svc.SubmitAudio(ctx, "user-1", "q1", big, "clip.mp3")
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestTranscriptionFailureIsTerminal(t *testing.T) {
	ctx := context.Background()
	transcriber := &stubTranscriber{err: &model.TranscriptionError{Message: "error transcribing audio"}}
	f := newFixture(t, transcriber, nil)

	ack, err := f.svc.SubmitAudio(ctx, "user-1", "q1", []byte("audio"), "answer.mp3")
	require.NoError(t, err)

	f.waitForStatus(t, ack.ResponseID, model.StatusFailed)

	record, _ := f.responses.GetByID(ctx, ack.ResponseID)
	assert.Equal(t, "Audio transcription failed", record.ErrorMessage)

	score, err := f.scores.GetByResponseID(ctx, ack.ResponseID)
	require.NoError(t, err)
	assert.Nil(t, score, "failed responses never get scores")

	require.Eventually(t, func() bool {
		return contains(f.notifier.eventTypes(), EventAnalysisFailed)
	}, waitFor, 10*time.Millisecond, "failure event never pushed")

	view, err := f.svc.GetAnalysis(ctx, "user-1", ack.ResponseID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, view.Status)
	assert.Equal(t, "Audio transcription failed", view.ErrorMessage)
	assert.Zero(t, view.Scores.OverallScore)
}

func TestTimedOutEvaluationIsMarkedFailed(t *testing.T) {
	ctx := context.Background()
	pool := worker.NewPool(1, 4, 50*time.Millisecond, testLog())
	f := newFixture(t, blockingTranscriber{}, pool)

	ack, err := f.svc.SubmitAudio(ctx, "user-1", "q1", []byte("audio"), "answer.mp3")
	require.NoError(t, err)

	// The task context is already dead by the time the failure is recorded;
	// the status write must still land instead of stranding the record in
	// processing with no error message.
	f.waitForStatus(t, ack.ResponseID, model.StatusFailed)

	record, err := f.responses.GetByID(ctx, ack.ResponseID)
	require.NoError(t, err)
	assert.Equal(t, "Audio transcription failed", record.ErrorMessage)

	require.Eventually(t, func() bool {
		return contains(f.notifier.eventTypes(), EventAnalysisFailed)
	}, waitFor, 10*time.Millisecond, "failure event never pushed")
}

func TestRepeatedSubmissionScoresIdentically(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	const text = "um I think we resolved the incident quickly because the team stayed calm and communicated well"

	first, err := f.svc.SubmitText(ctx, "user-1", "q1", text)
	require.NoError(t, err)
	f.waitForStatus(t, first.ResponseID, model.StatusCompleted)

	second, err := f.svc.SubmitText(ctx, "user-1", "q1", text)
	require.NoError(t, err)
	f.waitForStatus(t, second.ResponseID, model.StatusCompleted)

	a, err := f.scores.GetByResponseID(ctx, first.ResponseID)
	require.NoError(t, err)
	require.NotNil(t, a)
	b, err := f.scores.GetByResponseID(ctx, second.ResponseID)
	require.NoError(t, err)
	require.NotNil(t, b)

	// With the oracle and narrative generator absent, the whole pipeline is
	// deterministic: two runs over the same text must agree on every field.
	assert.Equal(t, a.OverallScore, b.OverallScore)
	assert.Equal(t, a.ContentRelevanceScore, b.ContentRelevanceScore)
	assert.Equal(t, a.CommunicationClarityScore, b.CommunicationClarityScore)
	assert.Equal(t, a.StructureOrganizationScore, b.StructureOrganizationScore)
	assert.Equal(t, a.TechnicalAccuracyScore, b.TechnicalAccuracyScore)
	assert.Equal(t, a.SentimentScore, b.SentimentScore)
	assert.Equal(t, a.ConfidenceIndicators, b.ConfidenceIndicators)
	assert.Equal(t, a.FillerWordsCount, b.FillerWordsCount)
	assert.Equal(t, a.WordCount, b.WordCount)
	assert.Equal(t, a.UniqueWordsCount, b.UniqueWordsCount)
	assert.Equal(t, a.Strengths, b.Strengths)
	assert.Equal(t, a.Weaknesses, b.Weaknesses)
	assert.Equal(t, a.Suggestions, b.Suggestions)
	assert.Equal(t, a.DetailedFeedback, b.DetailedFeedback)

	// pending → processing → completed and nothing after
	assert.LessOrEqual(t, f.responses.transitionCount(first.ResponseID), 2)
	assert.LessOrEqual(t, f.responses.transitionCount(second.ResponseID), 2)
}

func TestQueueFullShedsSubmission(t *testing.T) {
	ctx := context.Background()
	pool := worker.NewPool(1, 1, 5*time.Second, testLog())
	f := newFixture(t, nil, pool)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, pool.Submit(func(ctx context.Context) {}))

	_, err := f.svc.SubmitText(ctx, "user-1", "q1", "a perfectly reasonable answer that is long enough")
	assert.ErrorIs(t, err, ErrServerBusy)

	// the shed record is marked failed, not left pending forever
	records := f.responses.all()
	require.Len(t, records, 1)
	assert.Equal(t, model.StatusFailed, records[0].Status)
	assert.Equal(t, failMsgBusy, records[0].ErrorMessage)

	close(release)
}

func TestGetAnalysisOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	ack, err := f.svc.SubmitText(ctx, "user-1", "q1", "one two three four five six seven eight nine ten")
	require.NoError(t, err)
	f.waitForStatus(t, ack.ResponseID, model.StatusCompleted)

	_, err = f.svc.GetAnalysis(ctx, "user-2", ack.ResponseID)
	assert.ErrorIs(t, err, ErrResponseNotFound)

	_, err = f.svc.GetAnalysis(ctx, "user-1", "no-such-response")
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	first, err := f.svc.SubmitText(ctx, "user-1", "q1", "one two three four five six seven eight nine ten")
	require.NoError(t, err)
	f.waitForStatus(t, first.ResponseID, model.StatusCompleted)

	second, err := f.svc.SubmitText(ctx, "user-1", "q1", "one two three four five six seven eight nine ten")
	require.NoError(t, err)
	f.waitForStatus(t, second.ResponseID, model.StatusCompleted)

	// another user's response must not leak into the page
	_, err = f.svc.SubmitText(ctx, "user-2", "q1", "one two three four five six seven eight nine ten")
	require.NoError(t, err)

	page, err := f.svc.History(ctx, "user-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Responses, 2)
	assert.InDelta(t, 28.0, page.AverageScore, 0.001)
	for _, r := range page.Responses {
		assert.Equal(t, model.StatusCompleted, r.Status)
	}
}

func TestGetQuestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	q, err := f.svc.GetQuestion(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)

	_, err = f.svc.GetQuestion(ctx, "missing")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
