package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MarcusGale/LLM-Router/app"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"go.uber.org/zap"
)

// Version is the service version reported by /api/v1/status
var Version = "0.1.0"

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessCheck reports whether turns can be served: the model table must
// be consistent and the completion client must have credentials
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"status": "ready",
			"checks": map[string]string{},
		}
		checks := response["checks"].(map[string]string)

		// Check model registry
		if deps.Models == nil {
			response["status"] = "not_ready"
			checks["models"] = "not_initialized"
		} else if err := deps.Models.Validate(); err != nil {
			response["status"] = "not_ready"
			checks["models"] = "invalid"
			deps.Logger.Error("model registry check failed", zap.Error(err))
		} else {
			checks["models"] = "ok"
		}

		// Check completion client
		if deps.Ready() {
			checks["openrouter"] = "configured"
		} else {
			response["status"] = "not_ready"
			checks["openrouter"] = "missing_api_key"
		}

		w.Header().Set("Content-Type", "application/json")
		if response["status"] == "ready" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(response)
	}
}

// StatusHandler returns application status information
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"version":       Version,
			"environment":   deps.Config.Environment,
			"providers":     []string{},
			"default_model": registry.DefaultModelID.String(),
		}
		if deps.ProviderRegistry != nil {
			response["providers"] = deps.ProviderRegistry.ListProviders()
			response["configured_providers"] = deps.ProviderRegistry.ConfiguredProviders()
		}
		if deps.Models != nil {
			response["models"] = deps.Models.Count()
		}
		if deps.Router != nil {
			response["classifier_failure_policy"] = deps.Router.Policy()
		}
		if deps.Config != nil {
			response["classifier_model"] = deps.Config.Classifier.Model
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
