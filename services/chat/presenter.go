package chat

import (
	"bytes"
	"fmt"

	"github.com/MarcusGale/LLM-Router/services/routing"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const markdownTemplate = `## Model Information

| Property | Value |
|----------|-------|
| Model | %s |
| Context | %s |
| Latency | %s |
| Throughput | %s |
| Pricing | %s |

%s

%s`

// Presenter composes the model information block and the answer into
// Markdown, and renders that Markdown to HTML. Raw HTML in answers is
// omitted by the renderer.
type Presenter struct {
	md goldmark.Markdown
}

// NewPresenter creates a presenter with GitHub-flavored tables enabled
func NewPresenter() *Presenter {
	return &Presenter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Markdown returns the composed Markdown for a decision and answer
func (p *Presenter) Markdown(decision *routing.Decision, answer string) string {
	return fmt.Sprintf(markdownTemplate,
		decision.ModelID,
		decision.Spec.ContextSize,
		decision.Spec.Latency,
		decision.Spec.Throughput,
		decision.Spec.Pricing,
		decision.Explanation,
		answer,
	)
}

// Compose builds both renditions
func (p *Presenter) Compose(decision *routing.Decision, answer string) (Presentation, error) {
	markdown := p.Markdown(decision, answer)

	var buf bytes.Buffer
	if err := p.md.Convert([]byte(markdown), &buf); err != nil {
		return Presentation{}, fmt.Errorf("render markdown: %w", err)
	}

	return Presentation{
		Markdown: markdown,
		HTML:     buf.String(),
	}, nil
}
