package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/service"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/transport/rest/middleware"
)

// InterviewHandler handles interview response endpoints
type InterviewHandler struct {
	responseSvc *service.ResponseService
	maxUpload   int64
}

// NewInterviewHandler creates a new interview handler. maxUploadMB bounds the
// multipart memory/body size for audio submissions.
func NewInterviewHandler(responseSvc *service.ResponseService, maxUploadMB int) *InterviewHandler {
	return &InterviewHandler{
		responseSvc: responseSvc,
		maxUpload:   int64(maxUploadMB) * 1024 * 1024,
	}
}

// SubmitTextRequest is the request body for a text answer
type SubmitTextRequest struct {
	QuestionID   string `json:"question_id"`
	TextResponse string `json:"text_response"`
}

// SubmitText handles POST /api/v1/interview/submit-text
func (h *InterviewHandler) SubmitText(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SubmitTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "question_id is required")
		return
	}

	ack, err := h.responseSvc.SubmitText(r.Context(), userID, req.QuestionID, req.TextResponse)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ack)
}

// SubmitAudio handles POST /api/v1/interview/submit-audio (multipart form
// with question_id and audio_file fields).
func (h *InterviewHandler) SubmitAudio(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1024*1024)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	questionID := r.FormValue("question_id")
	if questionID == "" {
		writeError(w, http.StatusBadRequest, "question_id is required")
		return
	}

	file, header, err := r.FormFile("audio_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio_file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	ack, err := h.responseSvc.SubmitAudio(r.Context(), userID, questionID, audio, header.Filename)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ack)
}

// GetAnalysis handles GET /api/v1/interview/response/{responseId}
func (h *InterviewHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	responseID := mux.Vars(r)["responseId"]

	analysis, err := h.responseSvc.GetAnalysis(r.Context(), userID, responseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// History handles GET /api/v1/interview/history?page=&per_page=
func (h *InterviewHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	history, err := h.responseSvc.History(r.Context(), userID, page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// GetQuestion handles GET /api/v1/interview/questions/{questionId}
func (h *InterviewHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	question, err := h.responseSvc.GetQuestion(r.Context(), questionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// writeServiceError maps service errors onto HTTP statuses. Validation
// failures surface their message; everything else gets a generic body so
// internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrResponseNotFound):
		writeError(w, http.StatusNotFound, "response not found")
	case errors.Is(err, service.ErrServerBusy):
		writeError(w, http.StatusServiceUnavailable, "server busy, try again later")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
