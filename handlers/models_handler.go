package handlers

import (
	"net/http"

	"github.com/MarcusGale/LLM-Router/services/registry"
	"github.com/MarcusGale/LLM-Router/utils"
	"go.uber.org/zap"
)

// ModelInfo is one row of GET /api/v1/models
type ModelInfo struct {
	ID          string             `json:"id"`
	Specs       registry.ModelSpec `json:"specs"`
	Explanation string             `json:"explanation"`
	Capability  string             `json:"capability,omitempty"`

	// Suggested models are offered to the classifier
	Suggested bool `json:"suggested"`
	Default   bool `json:"default"`
}

// ModelsHandler serves the model registry
type ModelsHandler struct {
	models *registry.Registry
	logger *zap.Logger
}

// NewModelsHandler creates a new ModelsHandler
func NewModelsHandler(models *registry.Registry, logger *zap.Logger) *ModelsHandler {
	return &ModelsHandler{
		models: models,
		logger: logger,
	}
}

// HandleList handles GET /api/v1/models
func (h *ModelsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if err := utils.WriteOK(w, ListModels(h.models)); err != nil {
		h.logger.Error("failed to write models response", zap.Error(err))
	}
}

// ListModels renders the registry in table order
func ListModels(models *registry.Registry) []ModelInfo {
	entries := models.Entries()
	out := make([]ModelInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, ModelInfo{
			ID:          e.ID.String(),
			Specs:       e.Spec,
			Explanation: e.Explanation,
			Capability:  e.Capability,
			Suggested:   e.Capability != "",
			Default:     e.ID == registry.DefaultModelID,
		})
	}
	return out
}
