package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MarcusGale/LLM-Router/config"
	"github.com/MarcusGale/LLM-Router/services/chat"
	"github.com/MarcusGale/LLM-Router/services/classifier"
	"github.com/MarcusGale/LLM-Router/services/completion"
	"github.com/MarcusGale/LLM-Router/services/providers"
	"github.com/MarcusGale/LLM-Router/services/providers/openrouter"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"github.com/MarcusGale/LLM-Router/services/routing"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// LogFile is the rotating log sink behind Logger, if one was opened
	LogFile io.Closer

	// Model table
	Models *registry.Registry

	// Completion service clients
	ProviderRegistry *providers.Registry
	Client           providers.Client

	// Pipeline
	Classifier *classifier.Service
	Router     *routing.RoutingService
	Dispatcher *completion.Dispatcher
	Chat       *chat.ChatService
}

// NewDependencies creates and wires up all application dependencies.
// One completion client is built here and shared by the classifier and the
// dispatcher.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize model registry
	deps.Models = registry.New()
	if err := deps.Models.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model registry: %w", err)
	}

	// Initialize completion client
	if err := deps.initProviders(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	deps.initPipeline(cfg, deps.Client)

	logger.Info("all dependencies initialized successfully",
		zap.Int("models", deps.Models.Count()),
		zap.String("default_model", registry.DefaultModelID.String()),
		zap.String("classifier_model", cfg.Classifier.Model))
	return deps, nil
}

// initProviders builds the OpenRouter client
func (d *Dependencies) initProviders(cfg *config.Config) error {
	providerCfg := providers.DefaultProviderConfig()
	providerCfg.APIKey = cfg.OpenRouter.APIKey
	providerCfg.BaseURL = cfg.OpenRouter.BaseURL
	providerCfg.Timeout = cfg.OpenRouter.Timeout
	for k, v := range cfg.OpenRouter.Headers() {
		providerCfg.Headers[k] = v
	}

	client := openrouter.NewAdapter(providerCfg)

	reg := providers.NewRegistry()
	if err := reg.RegisterProvider(client); err != nil {
		return err
	}

	if !client.IsConfigured() {
		d.Logger.Warn("OPENROUTER_API_KEY not set; completion calls will be rejected upstream")
	}

	d.Client = client
	d.ProviderRegistry = reg
	return nil
}

// initPipeline wires classifier, router, dispatcher and chat service around
// client
func (d *Dependencies) initPipeline(cfg *config.Config, client providers.Client) {
	d.Classifier = classifier.NewService(client, d.Models, classifier.Config{
		Model:     cfg.Classifier.Model,
		MaxTokens: cfg.Classifier.MaxTokens,
	}, d.Logger.Named("classifier"))

	d.Router = routing.NewRoutingService(d.Classifier, d.Models, d.Logger.Named("routing"))

	d.Dispatcher = completion.NewDispatcher(client, completion.Config{
		MaxTokens:    cfg.Completion.MaxTokens,
		SystemPrompt: cfg.Completion.SystemPrompt,
	}, d.Logger.Named("completion"))

	d.Chat = chat.NewChatService(d.Router, d.Dispatcher, chat.NewPresenter(), d.Logger.Named("chat"))
}

// Ready reports whether at least one registered completion client has
// credentials
func (d *Dependencies) Ready() bool {
	return d.ProviderRegistry != nil && len(d.ProviderRegistry.ConfiguredProviders()) > 0
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if d.LogFile != nil {
		if err := d.LogFile.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
	}

	return nil
}
