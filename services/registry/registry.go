// Package registry holds the fixed table of backend models the router can
// choose from, together with their published specs and selection rationale.
//
// The table is built once at startup and never mutated, so it is safe for
// concurrent readers without locking.
package registry

import (
	"fmt"

	"github.com/MarcusGale/LLM-Router/services"
)

// ModelID names a backend model as understood by the completion service.
type ModelID string

// Known backend models
const (
	GPTOSS20B     ModelID = "openai/gpt-oss-20b"
	ClaudeSonnet4 ModelID = "anthropic/claude-sonnet-4"
	GPT5Mini      ModelID = "openai/gpt-5-mini"
	Qwen3Coder    ModelID = "qwen/qwen3-coder"
)

// DefaultModelID is used whenever classification names no known model.
const DefaultModelID = GPTOSS20B

// GenericExplanation is the rationale for a model with no dedicated one.
const GenericExplanation = "The model was selected based on the user's request."

// ParseModelID maps a raw identifier onto a known ModelID. Matching is exact.
func ParseModelID(raw string) (ModelID, bool) {
	switch id := ModelID(raw); id {
	case GPTOSS20B, ClaudeSonnet4, GPT5Mini, Qwen3Coder:
		return id, true
	default:
		return "", false
	}
}

// String returns the identifier as sent to the completion service
func (id ModelID) String() string {
	return string(id)
}

// ModelSpec describes a model in human-readable units
type ModelSpec struct {
	ContextSize string `json:"context"`
	Latency     string `json:"latency"`
	Throughput  string `json:"throughput"`
	Pricing     string `json:"pricing"`
}

// Entry is one row of the registry
type Entry struct {
	ID          ModelID
	Spec        ModelSpec
	Explanation string
	// Capability is the one-line description offered to the classifier.
	// Entries without one are routable but never suggested.
	Capability string
}

// Registry is the read-only model table
type Registry struct {
	entries map[ModelID]Entry
	order   []ModelID
}

// New creates the registry with the built-in model table
func New() *Registry {
	r := &Registry{entries: make(map[ModelID]Entry)}
	for _, e := range builtinEntries() {
		r.entries[e.ID] = e
		r.order = append(r.order, e.ID)
	}
	return r
}

func builtinEntries() []Entry {
	return []Entry{
		{
			ID: ClaudeSonnet4,
			Spec: ModelSpec{
				ContextSize: "200,000",
				Latency:     "1.80s",
				Throughput:  "46.41tps",
				Pricing:     "$3/M input, $15/M output",
			},
			Explanation: "This model was selected for a complex coding task.",
			Capability:  "Best for complex and advanced coding tasks.",
		},
		{
			ID: GPT5Mini,
			Spec: ModelSpec{
				ContextSize: "400,000",
				Latency:     "4.08s",
				Throughput:  "55.73tps",
				Pricing:     "$0.25/M input, $2/M output",
			},
			Explanation: "This model was selected for an advanced reasoning task.",
			Capability:  "Best for non-code tasks requiring advanced reasoning or deep analysis.",
		},
		{
			ID: GPTOSS20B,
			Spec: ModelSpec{
				ContextSize: "131,072",
				Latency:     "0.56s",
				Throughput:  "222.4tps",
				Pricing:     "Free",
			},
			Explanation: "This model was selected for a simple or general-purpose query.",
			Capability:  "Best for simple coding tasks and general, non-reasoning questions.",
		},
		{
			ID: Qwen3Coder,
			Spec: ModelSpec{
				ContextSize: "262,000",
				Latency:     "2.39s",
				Throughput:  "68tps",
				Pricing:     "$0.20/M input, $0.80/M output",
			},
			Explanation: "This model was selected for a code-related question.",
		},
	}
}

// Validate checks the registry is self-consistent: every known ModelID has a
// row and the default is one of them.
func (r *Registry) Validate() error {
	for _, id := range []ModelID{GPTOSS20B, ClaudeSonnet4, GPT5Mini, Qwen3Coder} {
		if _, ok := r.entries[id]; !ok {
			return fmt.Errorf("registry has no entry for %s", id)
		}
	}
	if _, ok := r.entries[DefaultModelID]; !ok {
		return fmt.Errorf("default model %s is not registered", DefaultModelID)
	}
	return nil
}

// Lookup returns the spec for a raw identifier
func (r *Registry) Lookup(raw string) (ModelSpec, error) {
	e, err := r.Resolve(raw)
	if err != nil {
		return ModelSpec{}, err
	}
	return e.Spec, nil
}

// Resolve returns the full entry for a raw identifier, or ErrUnknownIdentifier
func (r *Registry) Resolve(raw string) (Entry, error) {
	id, ok := ParseModelID(raw)
	if !ok {
		return Entry{}, services.ErrUnknownIdentifier.Wrap(fmt.Errorf("identifier %q", raw))
	}
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, services.ErrUnknownIdentifier.Wrap(fmt.Errorf("identifier %q has no entry", raw))
	}
	return e, nil
}

// Default returns the entry of DefaultModelID
func (r *Registry) Default() Entry {
	return r.entries[DefaultModelID]
}

// ExplanationFor returns the dedicated rationale for id, or GenericExplanation
func (r *Registry) ExplanationFor(id ModelID) string {
	if e, ok := r.entries[id]; ok && e.Explanation != "" {
		return e.Explanation
	}
	return GenericExplanation
}

// Entries returns all rows in table order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Candidates returns the rows offered to the classifier, in table order
func (r *Registry) Candidates() []Entry {
	var out []Entry
	for _, id := range r.order {
		if e := r.entries[id]; e.Capability != "" {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of registered models
func (r *Registry) Count() int {
	return len(r.entries)
}
