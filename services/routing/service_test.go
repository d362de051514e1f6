package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/MarcusGale/LLM-Router/services"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockClassifier is a mock implementation of Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func newTestService(c Classifier) (*RoutingService, *registry.Registry) {
	reg := registry.New()
	return NewRoutingService(c, reg, zap.NewNop()), reg
}

func TestRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("simple query end to end", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, _ := newTestService(classifier)
		classifier.On("Classify", ctx, "Write a Python script to reverse a string.").Return("openai/gpt-oss-20b", nil)

		decision, err := svc.Route(ctx, "Write a Python script to reverse a string.")
		require.NoError(t, err)

		assert.Equal(t, &Decision{
			ModelID: "openai/gpt-oss-20b",
			Spec: registry.ModelSpec{
				ContextSize: "131,072",
				Latency:     "0.56s",
				Throughput:  "222.4tps",
				Pricing:     "Free",
			},
			Explanation: "This model was selected for a simple or general-purpose query.",
		}, decision)
		classifier.AssertExpectations(t)
	})

	t.Run("verdict with surrounding whitespace", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, reg := newTestService(classifier)
		classifier.On("Classify", ctx, "Why is the sky blue?").Return("  openai/gpt-5-mini \n", nil)

		decision, err := svc.Route(ctx, "Why is the sky blue?")
		require.NoError(t, err)

		spec, err := reg.Lookup("openai/gpt-5-mini")
		require.NoError(t, err)
		assert.Equal(t, registry.GPT5Mini, decision.ModelID)
		assert.Equal(t, spec, decision.Spec)
		assert.Equal(t, "This model was selected for an advanced reasoning task.", decision.Explanation)
		assert.False(t, decision.Fallback)
	})

	t.Run("hallucinated model falls back to default", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, reg := newTestService(classifier)
		classifier.On("Classify", ctx, "hello").Return("not-a-real-model", nil)

		decision, err := svc.Route(ctx, "hello")
		require.NoError(t, err)

		assert.Equal(t, registry.DefaultModelID, decision.ModelID)
		assert.Equal(t, reg.Default().Spec, decision.Spec)
		assert.Equal(t, registry.GenericExplanation, decision.Explanation)
		assert.True(t, decision.Fallback)
	})

	t.Run("registered model outside the prompt is accepted", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, _ := newTestService(classifier)
		classifier.On("Classify", ctx, "fix my go build").Return("qwen/qwen3-coder", nil)

		decision, err := svc.Route(ctx, "fix my go build")
		require.NoError(t, err)

		assert.Equal(t, registry.Qwen3Coder, decision.ModelID)
		assert.Equal(t, "This model was selected for a code-related question.", decision.Explanation)
	})

	t.Run("classifier outage propagates", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, _ := newTestService(classifier)
		classifier.On("Classify", ctx, "hello").
			Return("", services.ErrClassificationUnavailable.Wrap(errors.New("timeout")))

		decision, err := svc.Route(ctx, "hello")
		assert.Nil(t, decision)
		assert.True(t, errors.Is(err, services.ErrClassificationUnavailable))
	})

	t.Run("untyped classifier error is still classification unavailable", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, _ := newTestService(classifier)
		classifier.On("Classify", ctx, "hello").Return("", errors.New("boom"))

		_, err := svc.Route(ctx, "hello")
		assert.True(t, errors.Is(err, services.ErrClassificationUnavailable))
		assert.True(t, services.IsExternalError(err))
	})

	t.Run("idempotent for a deterministic classifier", func(t *testing.T) {
		classifier := new(MockClassifier)
		svc, _ := newTestService(classifier)
		classifier.On("Classify", ctx, "Explain relativity").Return("openai/gpt-5-mini", nil)

		first, err := svc.Route(ctx, "Explain relativity")
		require.NoError(t, err)
		second, err := svc.Route(ctx, "Explain relativity")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.NotSame(t, first, second)
		classifier.AssertNumberOfCalls(t, "Classify", 2)
	})
}

func TestResolve_Closure(t *testing.T) {
	svc, reg := newTestService(new(MockClassifier))

	verdicts := []string{
		"",
		"   ",
		"\n",
		"openai/gpt-oss-20b",
		"anthropic/claude-sonnet-4",
		"ANTHROPIC/CLAUDE-SONNET-4",
		"Model: openai/gpt-5-mini",
		"openai/gpt-5-mini.",
		"`openai/gpt-5-mini`",
		"qwen/qwen3-coder\n",
		"gpt-4",
		"I think anthropic/claude-sonnet-4 is best because...",
	}

	for _, v := range verdicts {
		t.Run(v, func(t *testing.T) {
			d := svc.Resolve(v)
			_, err := reg.Lookup(d.ModelID.String())
			assert.NoError(t, err, "decision names unregistered model %q", d.ModelID)
			assert.NotEmpty(t, d.Explanation)
		})
	}
}

func TestResolve_ExactMatchOnly(t *testing.T) {
	svc, _ := newTestService(new(MockClassifier))

	tests := []struct {
		verdict  string
		want     registry.ModelID
		fallback bool
	}{
		{verdict: "anthropic/claude-sonnet-4", want: registry.ClaudeSonnet4},
		{verdict: "\tanthropic/claude-sonnet-4\r\n", want: registry.ClaudeSonnet4},
		{verdict: "Anthropic/Claude-Sonnet-4", want: registry.DefaultModelID, fallback: true},
		{verdict: "Model: anthropic/claude-sonnet-4", want: registry.DefaultModelID, fallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.verdict, func(t *testing.T) {
			d := svc.Resolve(tt.verdict)
			assert.Equal(t, tt.want, d.ModelID)
			assert.Equal(t, tt.fallback, d.Fallback)
		})
	}
}

func TestPolicy(t *testing.T) {
	svc, _ := newTestService(new(MockClassifier))

	assert.Equal(t, FailTurn, svc.Policy())
}
