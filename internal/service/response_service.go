package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/analysis"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/cache"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/repository"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/worker"
)

// ScoringModelVersion tags every persisted score with the heuristics revision
// that produced it.
const ScoringModelVersion = "nlp_v1.0"

const (
	msgProcessingText  = "Processing your response. Results will be available shortly."
	msgProcessingAudio = "Processing your audio response. Results will be available shortly."
	msgStillProcessing = "Your response is still being processed. Please check back in a moment."
	msgAnalysisFailed  = "Analysis could not be completed for this response."

	failMsgTranscription = "Audio transcription failed"
	failMsgInternal      = "Analysis failed due to an internal error"
	failMsgBusy          = "Server is busy, please try again later"
)

// terminalWriteTimeout bounds the status writes that must land even after
// the task context expired. A timed-out evaluation still has to reach
// failed; reusing the dead context would strand it in processing.
const terminalWriteTimeout = 10 * time.Second

func terminalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
}

// ResponseServiceDeps collects the collaborators of the lifecycle manager.
type ResponseServiceDeps struct {
	Config      *config.Config
	Responses   repository.ResponseRepo
	Questions   repository.QuestionRepo
	Scores      repository.ScoreRepo
	Cache       cache.AnalysisCache
	Pool        *worker.Pool
	Transcriber Transcriber
	Scoring     *ScoringService
	Feedback    *FeedbackService
	Metrics     *analysis.MetricsAnalyzer
	Notifier    Notifier
	Log         *logrus.Entry
}

// ResponseService owns the evaluation lifecycle: it accepts submissions,
// records them as pending, runs the asynchronous pipeline on the worker pool
// and drives each response forward through pending -> processing ->
// completed|failed. Submitted work is acknowledged before any analysis runs.
type ResponseService struct {
	cfg         *config.Config
	responses   repository.ResponseRepo
	questions   repository.QuestionRepo
	scores      repository.ScoreRepo
	cache       cache.AnalysisCache
	pool        *worker.Pool
	transcriber Transcriber
	scoring     *ScoringService
	feedback    *FeedbackService
	metrics     *analysis.MetricsAnalyzer
	notifier    Notifier
	log         *logrus.Entry

	textNorm       *analysis.Normalizer
	transcriptNorm *analysis.Normalizer
}

func NewResponseService(deps ResponseServiceDeps) *ResponseService {
	return &ResponseService{
		cfg:         deps.Config,
		responses:   deps.Responses,
		questions:   deps.Questions,
		scores:      deps.Scores,
		cache:       deps.Cache,
		pool:        deps.Pool,
		transcriber: deps.Transcriber,
		scoring:     deps.Scoring,
		feedback:    deps.Feedback,
		metrics:     deps.Metrics,
		notifier:    deps.Notifier,
		log:         deps.Log,

		textNorm: analysis.NewNormalizer(deps.Config.MinTextLength, deps.Config.MaxTextLength),
		// Transcripts already passed audio validation; a short but real
		// answer must not be rejected after transcription.
		transcriptNorm: analysis.NewNormalizer(0, deps.Config.MaxTextLength),
	}
}

// SubmitText validates a text answer, records it as pending and enqueues the
// evaluation. The returned analysis is an acknowledgment: status processing,
// zeroed scores.
func (s *ResponseService) SubmitText(ctx context.Context, userID, questionID, text string) (*model.ResponseAnalysis, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	processed, err := s.textNorm.Normalize(text)
	if err != nil {
		return nil, err
	}

	resp := &model.InterviewResponse{
		ID:            uuid.New().String(),
		UserID:        userID,
		QuestionID:    questionID,
		OriginalText:  text,
		ProcessedText: processed,
		Status:        model.StatusPending,
		CreatedAt:     time.Now(),
	}
	if err := s.responses.Create(ctx, resp); err != nil {
		return nil, err
	}

	sub := &model.Submission{
		ResponseID: resp.ID,
		UserID:     userID,
		QuestionID: questionID,
		Text:       processed,
	}
	if err := s.enqueue(ctx, sub, question); err != nil {
		return nil, err
	}

	return s.acknowledge(resp, question.Title, msgProcessingText), nil
}

// SubmitAudio validates the container and size synchronously, records a
// pending response and enqueues transcription plus evaluation. The audio
// bytes never touch the network before validation passes.
func (s *ResponseService) SubmitAudio(ctx context.Context, userID, questionID string, audio []byte, filename string) (*model.ResponseAnalysis, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if err := ValidateAudio(filename, int64(len(audio)), s.cfg.AllowedAudioFormats, s.cfg.MaxAudioSizeMB); err != nil {
		return nil, err
	}

	resp := &model.InterviewResponse{
		ID:         uuid.New().String(),
		UserID:     userID,
		QuestionID: questionID,
		Status:     model.StatusPending,
		CreatedAt:  time.Now(),
	}
	if err := s.responses.Create(ctx, resp); err != nil {
		return nil, err
	}

	sub := &model.Submission{
		ResponseID: resp.ID,
		UserID:     userID,
		QuestionID: questionID,
		Audio:      audio,
		Filename:   filename,
	}
	if err := s.enqueue(ctx, sub, question); err != nil {
		return nil, err
	}

	return s.acknowledge(resp, question.Title, msgProcessingAudio), nil
}

// enqueue hands the submission to the worker pool. A full queue sheds the
// submission: the record is marked failed and the caller gets ErrServerBusy.
func (s *ResponseService) enqueue(ctx context.Context, sub *model.Submission, question *model.Question) error {
	if err := s.questions.IncrementUsage(ctx, question.ID); err != nil {
		s.log.WithField("question_id", question.ID).WithField("error", err.Error()).
			Warn("failed to increment question usage count")
	}

	err := s.pool.Submit(func(taskCtx context.Context) {
		s.evaluate(taskCtx, sub, question)
	})
	if err != nil {
		s.log.WithField("response_id", sub.ResponseID).WithField("error", err.Error()).
			Warn("evaluation queue full, shedding submission")
		if markErr := s.responses.MarkFailed(ctx, sub.ResponseID, failMsgBusy); markErr != nil {
			s.log.WithField("response_id", sub.ResponseID).WithField("error", markErr.Error()).
				Error("failed to mark shed response as failed")
		}
		return ErrServerBusy
	}
	return nil
}

func (s *ResponseService) acknowledge(resp *model.InterviewResponse, questionTitle, detail string) *model.ResponseAnalysis {
	ack := model.PendingAnalysis(resp, questionTitle, detail, "")
	ack.Status = model.StatusProcessing
	return ack
}

// evaluate runs the full pipeline for one submission on a worker goroutine.
// All failure paths converge on fail(); persistence errors are fatal and
// never retried.
func (s *ResponseService) evaluate(ctx context.Context, sub *model.Submission, question *model.Question) {
	start := time.Now()
	log := s.log.WithFields(logrus.Fields{
		"response_id": sub.ResponseID,
		"question_id": sub.QuestionID,
	})

	if err := s.responses.MarkProcessing(ctx, sub.ResponseID); err != nil {
		log.WithField("error", err.Error()).Error("failed to transition response to processing")
		return
	}
	s.notify(sub.UserID, EventAnalysisStarted, map[string]interface{}{
		"response_id": sub.ResponseID,
		"status":      model.StatusProcessing,
	})

	text := sub.Text
	if sub.IsAudio() {
		result, err := s.transcriber.Transcribe(ctx, &TranscriptionRequest{
			Audio:    sub.Audio,
			Filename: sub.Filename,
		})
		if err != nil {
			s.fail(ctx, sub, failMsgTranscription, err)
			return
		}

		processed, err := s.transcriptNorm.Normalize(result.Text)
		if err != nil {
			s.fail(ctx, sub, failMsgTranscription, fmt.Errorf("empty transcript: %w", err))
			return
		}

		audioPath := s.saveAudio(sub, log)
		if err := s.responses.SetTranscription(ctx, sub.ResponseID,
			result.Text, processed, audioPath, result.DurationSeconds, result.Confidence); err != nil {
			s.fail(ctx, sub, failMsgInternal, err)
			return
		}
		text = processed
	}

	metrics := s.metrics.Analyze(text)
	judgment := s.scoring.Score(ctx, text, question.Content, question.Type)

	score := analysis.AggregateScores(metrics, judgment, question.Type)
	score.ResponseID = sub.ResponseID
	score.ScoringModelVersion = ScoringModelVersion

	s.feedback.BuildFeedback(ctx, score, question, text)

	// Completion writes run detached from the task timeout: once scoring is
	// done, the record must not be stranded in processing by an expired ctx.
	writeCtx, cancelWrite := terminalContext(ctx)
	defer cancelWrite()

	if err := s.scores.Create(writeCtx, score); err != nil {
		s.fail(ctx, sub, failMsgInternal, err)
		return
	}

	processedAt := time.Now()
	if err := s.responses.MarkCompleted(writeCtx, sub.ResponseID, processedAt, time.Since(start).Milliseconds()); err != nil {
		s.fail(ctx, sub, failMsgInternal, err)
		return
	}

	if err := s.questions.UpdateAverageScore(writeCtx, question.ID, score.OverallScore); err != nil {
		log.WithField("error", err.Error()).Warn("failed to update question average score")
	}

	record, err := s.responses.GetByID(writeCtx, sub.ResponseID)
	if err != nil || record == nil {
		if err != nil {
			log.WithField("error", err.Error()).Warn("failed to reload completed response")
		}
		record = s.completedRecord(sub, text, processedAt, time.Since(start).Milliseconds())
	}

	view := model.CompletedAnalysis(record, score, question.Title)
	if err := s.cache.Set(writeCtx, view); err != nil {
		log.WithField("error", err.Error()).Warn("failed to cache completed analysis")
	}

	s.notify(sub.UserID, EventAnalysisComplete, view)

	log.WithFields(logrus.Fields{
		"overall_score":   score.OverallScore,
		"judgment_source": judgment.Source,
		"duration_ms":     time.Since(start).Milliseconds(),
	}).Info("response evaluation completed")
}

// fail marks the response failed with a generic user-facing message. The
// underlying error goes to the log only. The write runs on a fresh deadline:
// the caller's context is often the very timeout that caused the failure.
func (s *ResponseService) fail(ctx context.Context, sub *model.Submission, message string, cause error) {
	s.log.WithFields(logrus.Fields{
		"response_id": sub.ResponseID,
		"error":       cause.Error(),
	}).Error("response evaluation failed")

	writeCtx, cancel := terminalContext(ctx)
	defer cancel()

	if err := s.responses.MarkFailed(writeCtx, sub.ResponseID, message); err != nil {
		s.log.WithField("response_id", sub.ResponseID).WithField("error", err.Error()).
			Error("failed to mark response as failed")
	}

	s.notify(sub.UserID, EventAnalysisFailed, map[string]interface{}{
		"response_id": sub.ResponseID,
		"status":      model.StatusFailed,
		"error":       message,
	})
}

// completedRecord rebuilds the response view locally when the post-completion
// reload fails, so the completion event still carries a full analysis.
func (s *ResponseService) completedRecord(sub *model.Submission, text string, processedAt time.Time, processingMS int64) *model.InterviewResponse {
	return &model.InterviewResponse{
		ID:               sub.ResponseID,
		UserID:           sub.UserID,
		QuestionID:       sub.QuestionID,
		OriginalText:     sub.Text,
		ProcessedText:    text,
		Status:           model.StatusCompleted,
		ProcessingTimeMS: processingMS,
		ProcessedAt:      &processedAt,
	}
}

func (s *ResponseService) saveAudio(sub *model.Submission, log *logrus.Entry) string {
	dir := filepath.Join(s.cfg.UploadDir, "user_"+sub.UserID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithField("error", err.Error()).Warn("failed to create upload directory")
		return ""
	}

	path := filepath.Join(dir, sub.ResponseID+"_"+sanitizeFilename(sub.Filename))
	if err := os.WriteFile(path, sub.Audio, 0o644); err != nil {
		log.WithField("error", err.Error()).Warn("failed to store audio file")
		return ""
	}
	return path
}

// sanitizeFilename strips any path components and characters that could
// escape the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "audio"
	}
	return sb.String()
}

// GetAnalysis returns the analysis for one response owned by the user.
// Completed analyses come from the cache when possible; pending, processing
// and failed responses get the stable placeholder shape.
func (s *ResponseService) GetAnalysis(ctx context.Context, userID, responseID string) (*model.ResponseAnalysis, error) {
	record, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.UserID != userID {
		return nil, ErrResponseNotFound
	}

	if record.Status != model.StatusCompleted {
		detail := msgStillProcessing
		if record.Status == model.StatusFailed {
			detail = msgAnalysisFailed
		}
		return model.PendingAnalysis(record, s.questionTitle(ctx, record.QuestionID), detail, ""), nil
	}

	if cached, err := s.cache.Get(ctx, responseID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.WithField("response_id", responseID).WithField("error", err.Error()).
			Warn("analysis cache read failed")
	}

	view, err := s.assembleCompleted(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, view); err != nil {
		s.log.WithField("response_id", responseID).WithField("error", err.Error()).
			Warn("failed to cache completed analysis")
	}
	return view, nil
}

func (s *ResponseService) assembleCompleted(ctx context.Context, record *model.InterviewResponse) (*model.ResponseAnalysis, error) {
	score, err := s.scores.GetByResponseID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		// Completed response with no score record is a data inconsistency;
		// surface it as still processing rather than a 500.
		s.log.WithField("response_id", record.ID).Error("completed response has no score record")
		return model.PendingAnalysis(record, s.questionTitle(ctx, record.QuestionID), msgStillProcessing, ""), nil
	}
	return model.CompletedAnalysis(record, score, s.questionTitle(ctx, record.QuestionID)), nil
}

func (s *ResponseService) questionTitle(ctx context.Context, questionID string) string {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil || question == nil {
		return ""
	}
	return question.Title
}

// HistoryPage is one page of a user's response history with summary stats.
type HistoryPage struct {
	Responses    []*model.ResponseAnalysis `json:"responses"`
	Total        int64                     `json:"total"`
	Page         int                       `json:"page"`
	PerPage      int                       `json:"per_page"`
	AverageScore float64                   `json:"average_score"`
}

// History returns the user's responses newest first with the average overall
// score across the completed ones on the page.
func (s *ResponseService) History(ctx context.Context, userID string, page, perPage int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	records, err := s.responses.GetByUser(ctx, userID, int64((page-1)*perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	total, err := s.responses.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	analyses := make([]*model.ResponseAnalysis, 0, len(records))
	scoreSum, scored := 0, 0

	for _, record := range records {
		title, ok := titles[record.QuestionID]
		if !ok {
			title = s.questionTitle(ctx, record.QuestionID)
			titles[record.QuestionID] = title
		}

		if record.Status != model.StatusCompleted {
			detail := msgStillProcessing
			if record.Status == model.StatusFailed {
				detail = msgAnalysisFailed
			}
			analyses = append(analyses, model.PendingAnalysis(record, title, detail, ""))
			continue
		}

		view, err := s.cache.Get(ctx, record.ID)
		if err != nil || view == nil {
			view, err = s.assembleCompleted(ctx, record)
			if err != nil {
				return nil, err
			}
		}
		analyses = append(analyses, view)
		if view.Status == model.StatusCompleted {
			scoreSum += view.Scores.OverallScore
			scored++
		}
	}

	pageResult := &HistoryPage{
		Responses: analyses,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
	if scored > 0 {
		pageResult.AverageScore = float64(scoreSum) / float64(scored)
	}
	return pageResult, nil
}

// GetQuestion returns a question by id for the read-only question endpoint.
func (s *ResponseService) GetQuestion(ctx context.Context, questionID string) (*model.Question, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

func (s *ResponseService) notify(userID, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyUser(userID, event, payload)
}
