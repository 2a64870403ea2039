// Package anthropic provides a Codec for Anthropic Messages models hosted on Bedrock.
package anthropic

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/germanamz/llmgate/pkg/providers/provider"
)

// Version is the anthropic_version Bedrock requires in every request.
const Version = "bedrock-2023-05-31"

var _ provider.Codec = Codec{}

// Codec implements provider.Codec for the Anthropic Messages body format.
type Codec struct{}

// Kind returns provider.Anthropic.
func (Codec) Kind() provider.Kind { return provider.Anthropic }

// EncodeRequest wraps the prompt in a single user message.
func (Codec) EncodeRequest(p provider.Params) ([]byte, error) {
	req := apiRequest{
		AnthropicVersion: Version,
		MaxTokens:        p.MaxTokens,
		Temperature:      p.Temperature,
		TopP:             p.TopP,
		Messages: []apiMessage{
			{Role: "user", Content: p.Prompt},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	return body, nil
}

// DecodeResponse reads the first content block's text and usage.output_tokens.
func (Codec) DecodeResponse(body []byte) (provider.Output, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return provider.Output{}, fmt.Errorf("anthropic: decode response: %w", err)
	}

	if len(resp.Content) == 0 {
		return provider.Output{}, errors.New("anthropic: empty content in response")
	}

	out := provider.Output{Text: resp.Content[0].Text}
	if resp.Usage != nil {
		out.Tokens = resp.Usage.OutputTokens
	}

	return out, nil
}

// --- request types ---

type apiRequest struct {
	AnthropicVersion string       `json:"anthropic_version"`
	MaxTokens        int          `json:"max_tokens"`
	Temperature      float64      `json:"temperature"`
	TopP             float64      `json:"top_p"`
	Messages         []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Content []apiContent `json:"content"`
	Usage   *apiUsage    `json:"usage"`
}

type apiContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiUsage struct {
	InputTokens  *int `json:"input_tokens"`
	OutputTokens *int `json:"output_tokens"`
}
