package sse

// SSE event type constants
const (
	EventNavRedirect  = "nav-redirect"
	EventPhaseUpdate  = "phase-update"
	EventRosterUpdate = "roster-update"
	EventScoreUpdate  = "score-update"
	EventVoteCount    = "vote-count"
	EventErrorMessage = "error-message"
)
