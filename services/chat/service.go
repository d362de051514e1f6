// Package chat runs one conversational turn: pick a model for the latest
// user message, forward the conversation to it, and present the answer.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/MarcusGale/LLM-Router/services"
	"github.com/MarcusGale/LLM-Router/services/completion"
	"github.com/MarcusGale/LLM-Router/services/providers"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"github.com/MarcusGale/LLM-Router/services/routing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router picks the backend model for a message
type Router interface {
	Route(ctx context.Context, message string) (*routing.Decision, error)
}

// Dispatcher forwards a conversation to a backend model
type Dispatcher interface {
	Dispatch(ctx context.Context, model registry.ModelID, conversation []providers.Message) (*completion.Answer, error)
}

// ChatService orchestrates the turn pipeline. It keeps no state between
// turns.
type ChatService struct {
	router     Router
	dispatcher Dispatcher
	presenter  *Presenter
	logger     *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(router Router, dispatcher Dispatcher, presenter *Presenter, logger *zap.Logger) *ChatService {
	return &ChatService{
		router:     router,
		dispatcher: dispatcher,
		presenter:  presenter,
		logger:     logger,
	}
}

// LastUserMessage returns the message the turn is routed on. A conversation
// with no turns, a blank final turn, or no non-blank user message is empty.
func LastUserMessage(conversation []providers.Message) (string, error) {
	if len(conversation) == 0 {
		return "", services.ErrEmptyConversation
	}
	if strings.TrimSpace(conversation[len(conversation)-1].Content) == "" {
		return "", services.ErrEmptyConversation
	}

	for i := len(conversation) - 1; i >= 0; i-- {
		msg := conversation[i]
		if msg.Role == providers.RoleUser {
			if strings.TrimSpace(msg.Content) == "" {
				break
			}
			return msg.Content, nil
		}
	}
	return "", services.ErrEmptyConversation
}

// Route validates the conversation and resolves a decision without calling
// the backend model
func (s *ChatService) Route(ctx context.Context, conversation []providers.Message) (*routing.Decision, error) {
	query, err := LastUserMessage(conversation)
	if err != nil {
		return nil, err
	}
	return s.router.Route(ctx, query)
}

// ProcessTurn runs a full turn. The classifier and the backend are each
// called at most once, in that order; an empty conversation calls neither.
func (s *ChatService) ProcessTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error) {
	pipelineCtx := &PipelineContext{
		Request:   req,
		TurnID:    uuid.New(),
		StartTime: time.Now(),
	}
	turnID := pipelineCtx.TurnID.String()

	// Step 1: Validate conversation
	query, err := LastUserMessage(req.Messages)
	if err != nil {
		s.logger.Info("rejected empty conversation",
			zap.String("turn_id", turnID),
			zap.String("request_id", req.RequestID))
		return nil, err
	}
	pipelineCtx.Query = query

	s.logger.Info("starting turn",
		zap.String("turn_id", turnID),
		zap.String("request_id", req.RequestID),
		zap.Int("messages", len(req.Messages)))

	// Step 2: Classify and route
	decision, err := s.router.Route(ctx, query)
	if err != nil {
		s.logger.Error("routing failed", zap.String("turn_id", turnID), zap.Error(err))
		return nil, err
	}
	pipelineCtx.Decision = decision

	s.logger.Debug("routed turn",
		zap.String("turn_id", turnID),
		zap.String("model", decision.ModelID.String()),
		zap.Bool("fallback", decision.Fallback))

	// Step 3: Dispatch to the chosen model
	answer, err := s.dispatcher.Dispatch(ctx, decision.ModelID, req.Messages)
	if err != nil {
		s.logger.Error("completion failed",
			zap.String("turn_id", turnID),
			zap.String("model", decision.ModelID.String()),
			zap.Error(err))
		return nil, err
	}

	// Step 4: Compose
	presentation, err := s.presenter.Compose(decision, answer.Content)
	if err != nil {
		return nil, services.WrapInternal("failed to compose answer", err)
	}

	result := s.buildResult(pipelineCtx, answer, presentation)

	s.logger.Info("turn completed",
		zap.String("turn_id", turnID),
		zap.String("model", decision.ModelID.String()),
		zap.Int("latency_ms", result.LatencyMs),
		zap.Int("tokens", answer.Usage.TotalTokens))

	return result, nil
}

// buildResult appends the assistant turn to a copy of the conversation
func (s *ChatService) buildResult(pipelineCtx *PipelineContext, answer *completion.Answer, presentation Presentation) *TurnResult {
	req := pipelineCtx.Request

	messages := make([]providers.Message, 0, len(req.Messages)+1)
	messages = append(messages, req.Messages...)
	messages = append(messages, providers.Message{Role: providers.RoleAssistant, Content: answer.Content})

	now := time.Now()
	return &TurnResult{
		ID:           pipelineCtx.TurnID,
		RequestID:    req.RequestID,
		Decision:     *pipelineCtx.Decision,
		Answer:       answer.Content,
		Messages:     messages,
		Presentation: presentation,
		Usage:        answer.Usage,
		LatencyMs:    int(now.Sub(pipelineCtx.StartTime).Milliseconds()),
		CreatedAt:    pipelineCtx.StartTime,
		CompletedAt:  now,
	}
}
