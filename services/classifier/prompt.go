package classifier

import (
	"fmt"
	"strings"

	"github.com/MarcusGale/LLM-Router/services/registry"
)

// Example pairs a sample message with the model it should route to
type Example struct {
	Message string
	Model   registry.ModelID
}

// DefaultExamples returns the worked examples embedded in the prompt
func DefaultExamples() []Example {
	return []Example{
		{Message: "Write a full-stack e-commerce API using Node.js and Express.", Model: registry.ClaudeSonnet4},
		{Message: "Explain the theory of relativity to a 5-year-old.", Model: registry.GPT5Mini},
		{Message: "What is the capital of France?", Model: registry.GPTOSS20B},
		{Message: "Write a Python script to reverse a string.", Model: registry.GPTOSS20B},
	}
}

// Prompt is the fixed few-shot routing instruction. Everything but the
// target message is rendered once at construction.
type Prompt struct {
	head string
}

// NewPrompt renders the static part of the routing prompt
func NewPrompt(candidates []registry.Entry, examples []Example) *Prompt {
	var b strings.Builder

	b.WriteString("You are an expert at routing a user's message to the best-suited LLM model. ")
	b.WriteString("Your goal is to identify the most appropriate model based on the complexity and type of the user's request.\n\n")

	b.WriteString("**Available Models:**\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "* **%s**: %s\n", c.ID, c.Capability)
	}

	b.WriteString("\n**Instructions:**\n")
	b.WriteString("Analyze the user's message and return ONLY the model name from the list above. ")
	b.WriteString("Do not include any other text, explanations, or formatting.\n\n")

	b.WriteString("**Examples:**\n")
	for _, ex := range examples {
		fmt.Fprintf(&b, "User: \"%s\"\nModel: %s\n\n", ex.Message, ex.Model)
	}

	b.WriteString("**Your Task:**\n")
	b.WriteString("Route the following message to the best model.\n")

	return &Prompt{head: b.String()}
}

// Render appends the target message to the routing instruction. The message
// is inserted verbatim between double quotes.
func (p *Prompt) Render(message string) string {
	return p.head + fmt.Sprintf("User: \"%s\"\nModel:", message)
}
