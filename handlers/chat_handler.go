package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MarcusGale/LLM-Router/middleware"
	"github.com/MarcusGale/LLM-Router/services/chat"
	"github.com/MarcusGale/LLM-Router/services/providers"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"github.com/MarcusGale/LLM-Router/services/routing"
	"github.com/MarcusGale/LLM-Router/utils"
	"go.uber.org/zap"
)

// maxBodyBytes caps the size of a chat request body
const maxBodyBytes = 1 << 20

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"dive"`
}

// ChatMessage represents a single chat message. A message without a role is
// a user turn.
type ChatMessage struct {
	Role    string `json:"role,omitempty" validate:"omitempty,oneof=system user assistant"`
	Content string `json:"content"`
}

// ChatResponse carries the routing decision, the answer, and the composed
// renditions of both
type ChatResponse struct {
	ID              string             `json:"id"`
	Model           string             `json:"model"`
	Specs           registry.ModelSpec `json:"specs"`
	Explanation     string             `json:"explanation"`
	Answer          string             `json:"answer"`
	Message         string             `json:"message"`
	MessageMarkdown string             `json:"message_markdown"`
	MessageHTML     string             `json:"message_html"`
	Messages        []ChatMessage      `json:"messages"`
}

// RouteResponse is the body returned by POST /api/v1/route
type RouteResponse struct {
	Model       string             `json:"model"`
	Specs       registry.ModelSpec `json:"specs"`
	Explanation string             `json:"explanation"`
	Fallback    bool               `json:"fallback"`
}

// ChatService defines the interface for turn operations
type ChatService interface {
	// ProcessTurn classifies, routes and answers one turn
	ProcessTurn(ctx context.Context, req *chat.TurnRequest) (*chat.TurnResult, error)

	// Route classifies and routes without answering
	Route(ctx context.Context, conversation []providers.Message) (*routing.Decision, error)
}

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	service ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// HandleChat handles POST /api/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	conversation, ok := h.decodeConversation(w, r, requestID)
	if !ok {
		return
	}

	result, err := h.service.ProcessTurn(ctx, &chat.TurnRequest{
		Messages:  conversation,
		RequestID: requestID,
	})
	if err != nil {
		h.logger.Error("failed to process chat turn",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	response := ChatResponse{
		ID:              result.ID.String(),
		Model:           result.Decision.ModelID.String(),
		Specs:           result.Decision.Spec,
		Explanation:     result.Decision.Explanation,
		Answer:          result.Answer,
		Message:         result.Presentation.Markdown,
		MessageMarkdown: result.Presentation.Markdown,
		MessageHTML:     result.Presentation.HTML,
		Messages:        fromProviderMessages(result.Messages),
	}

	h.logger.Info("chat turn successful",
		zap.String("request_id", requestID),
		zap.String("turn_id", response.ID),
		zap.String("model", response.Model),
		zap.Bool("fallback", result.Decision.Fallback),
		zap.Int("latency_ms", result.LatencyMs))

	if err := utils.WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("failed to write response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// HandleRoute handles POST /api/v1/route
func (h *ChatHandler) HandleRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	conversation, ok := h.decodeConversation(w, r, requestID)
	if !ok {
		return
	}

	decision, err := h.service.Route(ctx, conversation)
	if err != nil {
		h.logger.Error("failed to route conversation",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, RouteResponse{
		Model:       decision.ModelID.String(),
		Specs:       decision.Spec,
		Explanation: decision.Explanation,
		Fallback:    decision.Fallback,
	}); err != nil {
		h.logger.Error("failed to write response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// decodeConversation parses and validates the request body. It writes the
// error response itself and returns false on failure.
func (h *ChatHandler) decodeConversation(w http.ResponseWriter, r *http.Request, requestID string) ([]providers.Message, bool) {
	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: "Invalid request body"})
		return nil, false
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return nil, false
	}

	return toProviderMessages(req.Messages), true
}

func toProviderMessages(in []ChatMessage) []providers.Message {
	out := make([]providers.Message, len(in))
	for i, m := range in {
		role := m.Role
		if role == "" {
			role = providers.RoleUser
		}
		out[i] = providers.Message{Role: role, Content: m.Content}
	}
	return out
}

func fromProviderMessages(in []providers.Message) []ChatMessage {
	out := make([]ChatMessage, len(in))
	for i, m := range in {
		out[i] = ChatMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
