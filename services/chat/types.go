package chat

import (
	"time"

	"github.com/MarcusGale/LLM-Router/services/providers"
	"github.com/MarcusGale/LLM-Router/services/routing"
	"github.com/google/uuid"
)

// TurnRequest is one user turn: the whole conversation so far, ending with
// the new message
type TurnRequest struct {
	Messages []providers.Message `json:"messages"`

	// Request metadata
	RequestID string `json:"request_id,omitempty"`
}

// TurnResult is the outcome of a completed turn
type TurnResult struct {
	ID        uuid.UUID `json:"id"`
	RequestID string    `json:"request_id,omitempty"`

	Decision routing.Decision `json:"decision"`
	Answer   string           `json:"answer"`

	// Messages is the input conversation with the assistant's answer appended
	Messages []providers.Message `json:"messages"`

	Presentation Presentation `json:"presentation"`

	Usage     providers.Usage `json:"usage"`
	LatencyMs int             `json:"latency_ms"`

	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Presentation is the user-facing rendition of a turn
type Presentation struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// PipelineContext tracks state through one turn
type PipelineContext struct {
	Request   *TurnRequest
	TurnID    uuid.UUID
	StartTime time.Time

	Query    string
	Decision *routing.Decision
}
