// Package titan provides a Codec for Amazon Titan Text models.
package titan

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/germanamz/llmgate/pkg/providers/provider"
)

var _ provider.Codec = Codec{}

// Codec implements provider.Codec for the Titan Text body format.
type Codec struct{}

// Kind returns provider.Titan.
func (Codec) Kind() provider.Kind { return provider.Titan }

// EncodeRequest puts the prompt under inputText and the sampling parameters
// under textGenerationConfig.
func (Codec) EncodeRequest(p provider.Params) ([]byte, error) {
	body, err := json.Marshal(apiRequest{
		InputText: p.Prompt,
		TextGenerationConfig: apiGenerationConfig{
			Temperature:   p.Temperature,
			TopP:          p.TopP,
			MaxTokenCount: p.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("titan: marshal request: %w", err)
	}

	return body, nil
}

// DecodeResponse reads the first result's outputText. The token count is
// inputTextTokenCount plus the first result's tokenCount, each 0 when absent.
func (Codec) DecodeResponse(body []byte) (provider.Output, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return provider.Output{}, fmt.Errorf("titan: decode response: %w", err)
	}

	if len(resp.Results) == 0 {
		return provider.Output{}, errors.New("titan: empty results in response")
	}

	first := resp.Results[0]

	return provider.Output{
		Text:   first.OutputText,
		Tokens: provider.Int(resp.InputTextTokenCount + first.TokenCount),
	}, nil
}

type apiRequest struct {
	InputText            string              `json:"inputText"`
	TextGenerationConfig apiGenerationConfig `json:"textGenerationConfig"`
}

type apiGenerationConfig struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
	MaxTokenCount int     `json:"maxTokenCount"`
}

type apiResponse struct {
	InputTextTokenCount int         `json:"inputTextTokenCount"`
	Results             []apiResult `json:"results"`
}

type apiResult struct {
	TokenCount       int    `json:"tokenCount"`
	OutputText       string `json:"outputText"`
	CompletionReason string `json:"completionReason"`
}
