package service

// Lifecycle event names pushed over WebSocket as an evaluation progresses.
const (
	EventAnalysisStarted  = "analysis_started"
	EventAnalysisComplete = "analysis_complete"
	EventAnalysisFailed   = "analysis_failed"
)

// Notifier pushes lifecycle events to a user's live connections
// (avoids an import cycle with the ws package).
type Notifier interface {
	NotifyUser(userID, event string, payload interface{})
}
