package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// TranscriptionRequest carries one audio submission to the speech-to-text
// boundary.
type TranscriptionRequest struct {
	Audio    []byte
	Filename string
	Language string
}

// TranscriptionResult is what comes back: the transcript, a confidence in
// [0,1] and an estimated duration in seconds. The duration is a coarse
// estimate when the service does not measure it; callers must tolerate low
// precision.
type TranscriptionResult struct {
	Text            string
	Confidence      float64
	DurationSeconds float64
}

// Transcriber is the capability boundary for speech-to-text. Production
// wiring uses a Whisper-compatible API; tests substitute fixtures.
type Transcriber interface {
	Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResult, error)
}

// ValidateAudio fails fast on unsupported containers and oversized uploads
// before anything reaches the external service.
func ValidateAudio(filename string, size int64, allowedFormats []string, maxSizeMB int) error {
	if filename == "" {
		return model.NewValidationError("no filename provided")
	}

	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])
	allowed := false
	for _, f := range allowedFormats {
		if ext == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return model.NewValidationError("file format not supported. Allowed formats: %s", strings.Join(allowedFormats, ", "))
	}

	if maxSizeMB > 0 && size > int64(maxSizeMB)*1024*1024 {
		return model.NewValidationError("file too large. Maximum size: %dMB", maxSizeMB)
	}

	return nil
}

// EstimateDuration approximates audio length from file size when the service
// does not report it: roughly 1MB per minute of typical-quality audio.
func EstimateDuration(sizeBytes int) float64 {
	sizeMB := float64(sizeBytes) / (1024 * 1024)
	return sizeMB * 60.0
}

// WhisperClient talks to a Whisper-compatible transcription endpoint.
type WhisperClient struct {
	endpoint string
	apiKey   string
	model    string
	language string
	client   *http.Client
	timeout  time.Duration
}

// NewWhisperClient builds a transcription client from the AI config.
func NewWhisperClient(cfg *config.AIConfig) *WhisperClient {
	timeout := time.Duration(cfg.TranscribeTimeMS) * time.Millisecond
	return &WhisperClient{
		endpoint: cfg.TranscribeURL,
		apiKey:   cfg.TranscribeKey,
		model:    cfg.TranscribeModel,
		language: cfg.TranscribeLang,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
	}
}

// whisperResponse mirrors the verbose_json response shape. Segments are
// optional; the adapter must not assume they are present.
type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		AvgLogprob float64 `json:"avg_logprob"`
	} `json:"segments"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResult, error) {
	language := req.Language
	if language == "" {
		language = c.language
	}

	var result whisperResponse
	operation := func() error {
		httpReq, err := c.buildRequest(ctx, req, language)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("transcription server error: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("transcription request rejected: status %d", resp.StatusCode))
		}

		if err := json.Unmarshal(body, &result); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding transcription response: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.timeout
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, &model.TranscriptionError{Message: "error transcribing audio", Err: err}
	}

	text := strings.TrimSpace(result.Text)

	duration := result.Duration
	if duration <= 0 {
		duration = EstimateDuration(len(req.Audio))
	}

	return &TranscriptionResult{
		Text:            text,
		Confidence:      confidenceFrom(&result),
		DurationSeconds: duration,
	}, nil
}

func (c *WhisperClient) buildRequest(ctx context.Context, req *TranscriptionRequest, language string) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, err
	}

	w.WriteField("model", c.model)
	w.WriteField("language", language)
	w.WriteField("response_format", "verbose_json")
	if err := w.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return httpReq, nil
}

// confidenceFrom maps per-segment log-probabilities into [0,1] and averages
// them. Without segments it falls back to a length heuristic.
func confidenceFrom(resp *whisperResponse) float64 {
	if len(resp.Segments) > 0 {
		sum := 0.0
		for _, seg := range resp.Segments {
			c := seg.AvgLogprob + 1.0
			if c < 0 {
				c = 0
			}
			if c > 1 {
				c = 1
			}
			sum += c
		}
		return sum / float64(len(resp.Segments))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return 0
	}

	switch wordCount := len(strings.Fields(text)); {
	case wordCount < 5:
		return 0.6
	case wordCount < 20:
		return 0.75
	default:
		return 0.85
	}
}
