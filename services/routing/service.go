package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcusGale/LLM-Router/services"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"go.uber.org/zap"
)

// Classifier names the backend model for a message
type Classifier interface {
	Classify(ctx context.Context, message string) (string, error)
}

// Decision is the routing outcome for one turn
type Decision struct {
	ModelID     registry.ModelID   `json:"model"`
	Spec        registry.ModelSpec `json:"specs"`
	Explanation string             `json:"explanation"`

	// Fallback is set when the verdict was replaced by the default model
	Fallback bool `json:"fallback"`
}

// FailurePolicy says what a classifier outage does to the turn
type FailurePolicy string

const (
	// FailTurn propagates the outage. An unusable verdict still falls back to
	// the default model; only the absence of any verdict aborts.
	FailTurn FailurePolicy = "fail_turn"
)

// RoutingService turns classifier verdicts into decisions. It holds no
// per-request state.
type RoutingService struct {
	classifier Classifier
	registry   *registry.Registry
	policy     FailurePolicy
	logger     *zap.Logger
}

// NewRoutingService creates a new routing service
func NewRoutingService(classifier Classifier, reg *registry.Registry, logger *zap.Logger) *RoutingService {
	return &RoutingService{
		classifier: classifier,
		registry:   reg,
		policy:     FailTurn,
		logger:     logger,
	}
}

// Route classifies message and resolves the verdict against the registry
func (s *RoutingService) Route(ctx context.Context, message string) (*Decision, error) {
	verdict, err := s.classifier.Classify(ctx, message)
	if err != nil {
		if !errors.Is(err, services.ErrClassificationUnavailable) {
			err = services.ErrClassificationUnavailable.Wrap(err)
		}
		return nil, fmt.Errorf("route message: %w", err)
	}

	return s.Resolve(verdict), nil
}

// Resolve maps a raw verdict to a decision. Identifiers outside the registry,
// including empty ones, become the default model with the generic rationale.
func (s *RoutingService) Resolve(verdict string) *Decision {
	candidate := strings.TrimSpace(verdict)

	entry, err := s.registry.Resolve(candidate)
	if err != nil {
		if !errors.Is(err, services.ErrUnknownIdentifier) {
			// Resolve only fails with ErrUnknownIdentifier
			s.logger.Error("unexpected registry error", zap.Error(err))
		}
		def := s.registry.Default()
		s.logger.Info("classifier verdict not in registry, using default model",
			zap.String("verdict", candidate),
			zap.String("model", def.ID.String()))
		return &Decision{
			ModelID:     def.ID,
			Spec:        def.Spec,
			Explanation: registry.GenericExplanation,
			Fallback:    true,
		}
	}

	return &Decision{
		ModelID:     entry.ID,
		Spec:        entry.Spec,
		Explanation: s.registry.ExplanationFor(entry.ID),
	}
}

// Policy returns the classifier failure policy in force
func (s *RoutingService) Policy() FailurePolicy {
	return s.policy
}
