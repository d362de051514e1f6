package providers

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrProviderAlreadyRegistered is returned when trying to register a duplicate provider
	ErrProviderAlreadyRegistered = errors.New("provider already registered")
)

// Registry holds the completion clients the process was built with
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
	}
}

// RegisterProvider registers a client under its name
func (r *Registry) RegisterProvider(client Client) error {
	if client == nil {
		return errors.New("provider cannot be nil")
	}

	name := client.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; exists {
		return ErrProviderAlreadyRegistered
	}
	r.clients[name] = client
	return nil
}

// ListProviders returns all registered provider names, sorted
func (r *Registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfiguredProviders returns the names of clients that have credentials
func (r *Registry) ConfiguredProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, client := range r.clients {
		if client.IsConfigured() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
