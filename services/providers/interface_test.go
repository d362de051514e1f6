package providers

import (
	"context"
	"errors"
	"testing"
)

// MockProvider is a test implementation of the Client interface
type MockProvider struct {
	name       string
	configured bool
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name:       name,
		configured: true,
	}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	return &ChatResponse{
		Model: req.Model,
		Choices: []Choice{
			{Message: Message{Role: RoleAssistant, Content: "mock response"}, FinishReason: "stop"},
		},
		Provider: m.name,
	}, nil
}

func (m *MockProvider) IsConfigured() bool {
	return m.configured
}

func TestRegistry_RegisterProvider(t *testing.T) {
	registry := NewRegistry()

	if err := registry.RegisterProvider(NewMockProvider("openrouter")); err != nil {
		t.Fatalf("RegisterProvider() error = %v", err)
	}

	if err := registry.RegisterProvider(NewMockProvider("openrouter")); !errors.Is(err, ErrProviderAlreadyRegistered) {
		t.Errorf("duplicate RegisterProvider() error = %v, want %v", err, ErrProviderAlreadyRegistered)
	}

	if err := registry.RegisterProvider(nil); err == nil {
		t.Error("RegisterProvider(nil) should fail")
	}

	if err := registry.RegisterProvider(NewMockProvider("")); err == nil {
		t.Error("RegisterProvider() with empty name should fail")
	}

	if got := registry.ListProviders(); len(got) != 1 {
		t.Errorf("ListProviders() = %v, want one provider", got)
	}
}

func TestRegistry_ListProviders(t *testing.T) {
	registry := NewRegistry()
	unconfigured := NewMockProvider("b-provider")
	unconfigured.configured = false

	_ = registry.RegisterProvider(NewMockProvider("c-provider"))
	_ = registry.RegisterProvider(unconfigured)
	_ = registry.RegisterProvider(NewMockProvider("a-provider"))

	names := registry.ListProviders()
	want := []string{"a-provider", "b-provider", "c-provider"}
	if len(names) != len(want) {
		t.Fatalf("ListProviders() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListProviders()[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	configured := registry.ConfiguredProviders()
	if len(configured) != 2 || configured[0] != "a-provider" || configured[1] != "c-provider" {
		t.Errorf("ConfiguredProviders() = %v", configured)
	}
}

func TestChatResponse_FirstContent(t *testing.T) {
	tests := []struct {
		name   string
		resp   *ChatResponse
		want   string
		wantOK bool
	}{
		{name: "nil response", resp: nil, want: "", wantOK: false},
		{name: "no choices", resp: &ChatResponse{}, want: "", wantOK: false},
		{
			name:   "empty content",
			resp:   &ChatResponse{Choices: []Choice{{Message: Message{Role: RoleAssistant}}}},
			want:   "",
			wantOK: true,
		},
		{
			name: "first choice wins",
			resp: &ChatResponse{Choices: []Choice{
				{Message: Message{Content: "first"}},
				{Message: Message{Content: "second"}},
			}},
			want:   "first",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.resp.FirstContent()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FirstContent() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProviderError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewProviderError("openrouter", "NETWORK_ERROR", "request failed", 0, cause)

	if err.Error() != "request failed: connection reset" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ProviderError should unwrap to its cause")
	}

	noCause := NewProviderError("openrouter", "INVALID_REQUEST", "bad model", 400, nil)
	if noCause.Error() != "bad model" {
		t.Errorf("Error() = %s, want bad model", noCause.Error())
	}
}
