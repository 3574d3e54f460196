package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/logger"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/service"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/transport/rest/handler"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/transport/rest/middleware"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config          *config.Config
	AuthService     *service.AuthService
	ResponseService *service.ResponseService
	WSHub           *ws.Hub
	Log             *logger.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	interviewHandler := handler.NewInterviewHandler(c.ResponseService, c.Config.MaxAudioSizeMB)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Log.WithModule("ws"))

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(requestLogging(c.Log))

	// API v1 routes
	v1 := r.PathPrefix("/api/v1").Subrouter()

	// WebSocket route (token rides in the query param)
	v1.HandleFunc("/ws/interview", wsHandler.InterviewWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Interview routes (require auth)
	interview := v1.PathPrefix("/interview").Subrouter()
	interview.Use(authMW.RequireUser)

	interview.HandleFunc("/submit-text", interviewHandler.SubmitText).Methods("POST", "OPTIONS")
	interview.HandleFunc("/submit-audio", interviewHandler.SubmitAudio).Methods("POST", "OPTIONS")
	interview.HandleFunc("/response/{responseId}", interviewHandler.GetAnalysis).Methods("GET", "OPTIONS")
	interview.HandleFunc("/history", interviewHandler.History).Methods("GET", "OPTIONS")
	interview.HandleFunc("/questions/{questionId}", interviewHandler.GetQuestion).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestLogging(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithRequest(r).Debug("request received")
			next.ServeHTTP(w, r)
		})
	}
}
