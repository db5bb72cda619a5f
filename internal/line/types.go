package line

import "fmt"

// SendResult is the uniform outcome of a send operation.
// On success, Message holds a human-readable confirmation and GroupID echoes
// the target. On failure, Error holds the diagnostic detail.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	GroupID string `json:"group_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// textMessage is a single text message object in the LINE API wire format.
type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// pushRequest is the body of a push message call.
type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// replyRequest is the body of a reply message call.
type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// LineError represents an error from a LINE client operation
type LineError struct {
	Op  string // Operation that failed (e.g., "initialize", "reply")
	Err error  // Underlying error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %s: %v", e.Op, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
