// Package completion sends a routed conversation to the chosen backend model.
package completion

import (
	"context"
	"errors"

	"github.com/MarcusGale/LLM-Router/internal/observability"
	"github.com/MarcusGale/LLM-Router/services"
	"github.com/MarcusGale/LLM-Router/services/providers"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"go.uber.org/zap"
)

const (
	// DefaultMaxTokens bounds the answer length
	DefaultMaxTokens = 1000

	// DefaultSystemPrompt is prepended to every forwarded conversation
	DefaultSystemPrompt = "You are a helpful assistant. Provide direct and concise answers in Markdown format. " +
		"Avoid any conversational fillers or references to your internal processes. " +
		"Do not include any form of an object, like '[object Object]' in your response."
)

// Config holds dispatcher settings
type Config struct {
	MaxTokens    int
	SystemPrompt string
}

// DefaultConfig returns the dispatcher defaults
func DefaultConfig() Config {
	return Config{
		MaxTokens:    DefaultMaxTokens,
		SystemPrompt: DefaultSystemPrompt,
	}
}

// Answer is the backend's reply to a turn
type Answer struct {
	Content      string
	FinishReason string
	Usage        providers.Usage
}

// Dispatcher makes exactly one completion call per turn
type Dispatcher struct {
	client providers.Client
	config Config
	logger *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(client providers.Client, config Config, logger *zap.Logger) *Dispatcher {
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.SystemPrompt == "" {
		config.SystemPrompt = DefaultSystemPrompt
	}
	return &Dispatcher{
		client: client,
		config: config,
		logger: logger,
	}
}

// Messages returns the outbound message list: the system prompt followed by
// a copy of the conversation. The input slice is not modified.
func (d *Dispatcher) Messages(conversation []providers.Message) []providers.Message {
	out := make([]providers.Message, 0, len(conversation)+1)
	out = append(out, providers.Message{Role: providers.RoleSystem, Content: d.config.SystemPrompt})
	return append(out, conversation...)
}

// Dispatch sends the conversation to model. An empty answer is a success;
// any failure is services.ErrCompletionUnavailable.
func (d *Dispatcher) Dispatch(ctx context.Context, model registry.ModelID, conversation []providers.Message) (*Answer, error) {
	logger := observability.FromContext(ctx, d.logger)
	req := &providers.ChatRequest{
		Model:     model.String(),
		Messages:  d.Messages(conversation),
		MaxTokens: d.config.MaxTokens,
	}

	resp, err := d.client.ChatCompletion(ctx, req)
	if err != nil {
		logger.Error("completion call failed",
			zap.String("model", model.String()),
			zap.Error(err))
		return nil, services.ErrCompletionUnavailable.Wrap(err).WithDetail("model", model.String())
	}

	content, ok := resp.FirstContent()
	if !ok {
		logger.Error("completion returned no choices", zap.String("model", model.String()))
		return nil, services.ErrCompletionUnavailable.Wrap(errors.New("response has no choices")).WithDetail("model", model.String())
	}

	logger.Debug("completion received",
		zap.String("model", model.String()),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("latency", resp.Latency))

	return &Answer{
		Content:      content,
		FinishReason: resp.Choices[0].FinishReason,
		Usage:        resp.Usage,
	}, nil
}
