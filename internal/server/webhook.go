package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yamafumi/line-mcp/internal/instrumentation"
	"github.com/yamafumi/line-mcp/internal/logging"
)

// webhookRequest is the envelope LINE delivers to the webhook endpoint.
type webhookRequest struct {
	Events []webhookEvent `json:"events"`
}

// webhookEvent is a single event within a webhook delivery.
type webhookEvent struct {
	Type       string         `json:"type"`
	ReplyToken string         `json:"replyToken,omitempty"`
	Source     webhookSource  `json:"source"`
	Message    webhookMessage `json:"message"`
}

type webhookSource struct {
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

type webhookMessage struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// webhookResponse is the acknowledgement returned to LINE.
type webhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// WebhookHandler receives LINE platform events.
//
// Its main purpose is operational: it logs the (hashed) user and group ids
// of incoming messages so operators can discover the ids needed for
// configuration. When a message text mentions "userid" and carries a reply
// token, the handler replies with the sender's raw user id in the chat
// itself, which keeps the id out of the logs.
type WebhookHandler struct {
	serverContext *ServerContext
}

// NewWebhookHandler creates a webhook handler bound to the server context.
func NewWebhookHandler(sc *ServerContext) *WebhookHandler {
	return &WebhookHandler{serverContext: sc}
}

// ServeHTTP implements http.Handler.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(webhookResponse{Status: "error", Message: "method not allowed"})
		return
	}

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("failed to decode webhook payload",
			logging.Operation("webhook"),
			logging.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(webhookResponse{Status: "error", Message: err.Error()})
		return
	}

	for _, event := range req.Events {
		h.handleEvent(r, event)
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(webhookResponse{Status: "ok"})
}

// handleEvent processes a single webhook event. Failures are logged, never
// surfaced to LINE; the delivery is acknowledged regardless.
func (h *WebhookHandler) handleEvent(r *http.Request, event webhookEvent) {
	if event.Type != "message" {
		slog.Debug("ignoring webhook event",
			logging.Operation("webhook"),
			logging.Event(event.Type))
		return
	}

	slog.Info("webhook message received",
		logging.Operation("webhook"),
		logging.Event(event.Type),
		slog.String("user_hash", logging.AnonymizeID(event.Source.UserID)),
		logging.GroupHash(event.Source.GroupID),
		slog.Int("text_len", len(event.Message.Text)))

	// Reply with the sender's user id on request. The id goes back into the
	// chat rather than the logs.
	if event.Source.UserID == "" || event.ReplyToken == "" {
		return
	}
	if !strings.Contains(strings.ToLower(event.Message.Text), "userid") {
		return
	}

	reply := "あなたのUser IDは: " + event.Source.UserID
	start := time.Now()
	err := h.serverContext.LineClient().Reply(r.Context(), event.ReplyToken, reply)

	if metrics := h.serverContext.Metrics(); metrics != nil {
		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		metrics.RecordLineAPIOperation(r.Context(), "reply", status, time.Since(start))
	}

	if err != nil {
		slog.Error("failed to send user id reply",
			logging.Operation("webhook"),
			logging.Err(err))
	}
}
