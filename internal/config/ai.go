package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Scoring is for per-response semantic judgment (needs to be fast)
	Scoring string `json:"scoring"`

	// Narrative is for personalized feedback text (tone matters more than speed)
	Narrative string `json:"narrative"`
}

// AIConfig holds configuration for the external AI services: the Gemini
// scoring/narrative endpoints and the Whisper-compatible transcription API.
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`

	TranscribeURL    string `json:"transcribeUrl"`
	TranscribeKey    string `json:"-"`
	TranscribeModel  string `json:"transcribeModel"`
	TranscribeLang   string `json:"transcribeLanguage"`
	TranscribeTimeMS int    `json:"transcribeTimeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Models: GeminiModels{
			Scoring:   getEnvOrDefault("GEMINI_MODEL_SCORING", "gemini-2.0-flash"),
			Narrative: getEnvOrDefault("GEMINI_MODEL_NARRATIVE", "gemini-2.0-flash"),
		},
		TimeoutMS: getEnvIntOrDefault("GEMINI_TIMEOUT_MS", 10000),

		TranscribeURL:    getEnvOrDefault("TRANSCRIBE_URL", "https://api.openai.com/v1/audio/transcriptions"),
		TranscribeKey:    os.Getenv("TRANSCRIBE_API_KEY"),
		TranscribeModel:  getEnvOrDefault("TRANSCRIBE_MODEL", "whisper-1"),
		TranscribeLang:   getEnvOrDefault("TRANSCRIBE_LANGUAGE", "en"),
		TranscribeTimeMS: getEnvIntOrDefault("TRANSCRIBE_TIMEOUT_MS", 30000),
	}
}

// IsEnabled returns true if the Gemini API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}
