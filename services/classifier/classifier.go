// Package classifier asks a small, fast model which backend should answer a
// message. It returns the model's verdict verbatim; deciding what to do with
// an unusable verdict is the router's job.
package classifier

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
	// DefaultModel is the auxiliary model used for classification
	DefaultModel = "google/gemini-2.5-flash-lite"

	// DefaultMaxTokens bounds the verdict length
	DefaultMaxTokens = 100
)

// Config holds classifier settings
type Config struct {
	Model     string
	MaxTokens int
}

// DefaultConfig returns the classifier defaults
func DefaultConfig() Config {
	return Config{
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
	}
}

// Service classifies messages with one outbound completion call each
type Service struct {
	client providers.Client
	prompt *Prompt
	config Config
	logger *zap.Logger
}

// NewService creates a classifier whose candidates are the registry's
// suggested models
func NewService(client providers.Client, reg *registry.Registry, config Config, logger *zap.Logger) *Service {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	return &Service{
		client: client,
		prompt: NewPrompt(reg.Candidates(), DefaultExamples()),
		config: config,
		logger: logger,
	}
}

// Classify returns the raw verdict for message. Any failure to obtain a
// verdict is reported as services.ErrClassificationUnavailable; no identifier
// is ever guessed here.
func (s *Service) Classify(ctx context.Context, message string) (string, error) {
	logger := observability.FromContext(ctx, s.logger)
	req := &providers.ChatRequest{
		Model: s.config.Model,
		Messages: []providers.Message{
			{Role: providers.RoleUser, Content: s.prompt.Render(message)},
		},
		MaxTokens: s.config.MaxTokens,
	}

	resp, err := s.client.ChatCompletion(ctx, req)
	if err != nil {
		logger.Error("classifier call failed",
			zap.String("classifier_model", s.config.Model),
			zap.Error(err))
		return "", services.ErrClassificationUnavailable.Wrap(err)
	}

	verdict, ok := resp.FirstContent()
	if !ok {
		logger.Error("classifier returned no choices",
			zap.String("classifier_model", s.config.Model))
		return "", services.ErrClassificationUnavailable.Wrap(errors.New("response has no choices"))
	}

	logger.Debug("classifier verdict",
		zap.String("classifier_model", s.config.Model),
		zap.String("verdict", verdict),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Duration("latency", resp.Latency))

	return verdict, nil
}
