// Package bedrock binds modeladapter.Invoker to the Bedrock Runtime
// InvokeModel API.
package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/germanamz/llmgate/pkg/awsenv"
	"github.com/germanamz/llmgate/pkg/modeladapter"
)

const contentTypeJSON = "application/json"

// RuntimeAPI is the subset of *bedrockruntime.Client the gateway calls.
type RuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

var _ modeladapter.Invoker = (*Client)(nil)

// Client implements modeladapter.Invoker.
type Client struct {
	api RuntimeAPI
}

// New wraps api.
func New(api RuntimeAPI) *Client {
	return &Client{api: api}
}

// NewFromConfig creates a Client backed by a bedrockruntime.Client.
func NewFromConfig(cfg aws.Config) *Client {
	return New(bedrockruntime.NewFromConfig(cfg))
}

// InvokeModel sends body to modelID and returns the raw response body.
// Failures are apperr.Backend errors carrying the service error code.
func (c *Client) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
	})
	if err != nil {
		return nil, awsenv.Classify(err, "Bedrock error", "Error invoking model: ")
	}

	return out.Body, nil
}
