package modeladapter

import "github.com/germanamz/llmgate/pkg/apperr"

// PromptInput is the client-facing shape of a Request. Nil sampling fields
// take the defaults.
type PromptInput struct {
	Prompt      *string  `json:"prompt"`
	ModelID     *string  `json:"model_id"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// Request converts the input and validates it.
func (p PromptInput) Request() (Request, error) {
	if p.Prompt == nil {
		return Request{}, apperr.New(apperr.InvalidInput, "prompt is required")
	}
	if p.ModelID == nil {
		return Request{}, apperr.New(apperr.InvalidInput, "model_id is required")
	}

	req := NewRequest(*p.Prompt, *p.ModelID)
	if p.Temperature != nil {
		req.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		req.MaxTokens = *p.MaxTokens
	}
	if p.TopP != nil {
		req.TopP = *p.TopP
	}

	if err := req.Validate(); err != nil {
		return Request{}, err
	}

	return req, nil
}
