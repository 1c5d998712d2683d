package game

const (
	// SSEBufferSize is the buffer size for SSE message channels
	SSEBufferSize = 10

	// SSETimeoutSeconds is the timeout for sending messages to SSE clients
	SSETimeoutSeconds = 1

	// SessionCodeLength is the length of generated session join codes
	SessionCodeLength = 6

	// SessionCodeChars are the characters used for session codes (excluding ambiguous chars)
	SessionCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
