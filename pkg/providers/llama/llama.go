// Package llama provides a Codec for Meta Llama models hosted on Bedrock.
package llama

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/germanamz/llmgate/pkg/providers/provider"
)

var _ provider.Codec = Codec{}

// Codec implements provider.Codec for the Llama text generation body format.
type Codec struct{}

// Kind returns provider.Llama.
func (Codec) Kind() provider.Kind { return provider.Llama }

// EncodeRequest builds a flat body; max tokens travel as max_gen_len.
func (Codec) EncodeRequest(p provider.Params) ([]byte, error) {
	body, err := json.Marshal(apiRequest{
		Prompt:      p.Prompt,
		Temperature: p.Temperature,
		TopP:        p.TopP,
		MaxGenLen:   p.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("llama: marshal request: %w", err)
	}

	return body, nil
}

// DecodeResponse reads generation and generation_token_count.
func (Codec) DecodeResponse(body []byte) (provider.Output, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return provider.Output{}, fmt.Errorf("llama: decode response: %w", err)
	}

	if resp.Generation == nil {
		return provider.Output{}, errors.New("llama: missing generation in response")
	}

	return provider.Output{
		Text:   *resp.Generation,
		Tokens: resp.GenerationTokenCount,
	}, nil
}

type apiRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxGenLen   int     `json:"max_gen_len"`
}

type apiResponse struct {
	Generation           *string `json:"generation"`
	PromptTokenCount     *int    `json:"prompt_token_count"`
	GenerationTokenCount *int    `json:"generation_token_count"`
	StopReason           string  `json:"stop_reason"`
}
