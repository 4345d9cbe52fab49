// Package llm wraps the generative text model behind a one-method interface.
// The model is treated as an unreliable external service returning free text,
// never as a typed API.
package llm

import "context"

// TextGenerator produces a free-text completion for a single prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
