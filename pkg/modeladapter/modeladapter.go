package modeladapter

import (
	"context"
	"errors"
	"time"

	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/providers/provider"
)

// Sampling defaults applied by NewRequest.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
	DefaultTopP        = 0.9

	// MaxTokensLimit is the largest max_tokens value a Request may carry.
	MaxTokensLimit = 4096
)

// Invoker performs one synchronous inference call. The body is already in
// the provider's wire format; the returned bytes are the provider's response
// body.
type Invoker interface {
	InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error)
}

// Request is a provider-agnostic invocation.
type Request struct {
	Prompt      string
	ModelID     string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// NewRequest returns a Request with the default sampling parameters.
func NewRequest(prompt, modelID string) Request {
	return Request{
		Prompt:      prompt,
		ModelID:     modelID,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		TopP:        DefaultTopP,
	}
}

// Validate checks field ranges. It does not check the model identifier;
// that happens during dispatch.
func (r Request) Validate() error {
	switch {
	case r.Prompt == "":
		return apperr.New(apperr.InvalidInput, "prompt must not be empty")
	case r.ModelID == "":
		return apperr.New(apperr.InvalidInput, "model_id is required")
	case r.Temperature < 0 || r.Temperature > 1:
		return apperr.New(apperr.InvalidInput, "temperature must be between 0.0 and 1.0")
	case r.MaxTokens < 1 || r.MaxTokens > MaxTokensLimit:
		return apperr.New(apperr.InvalidInput, "max_tokens must be between 1 and %d", MaxTokensLimit)
	case r.TopP < 0 || r.TopP > 1:
		return apperr.New(apperr.InvalidInput, "top_p must be between 0.0 and 1.0")
	}

	return nil
}

func (r Request) params() provider.Params {
	return provider.Params{
		Prompt:      r.Prompt,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
		TopP:        r.TopP,
	}
}

// Result is the normalized outcome of an invocation. Tokens is nil when the
// provider did not report usage.
type Result struct {
	Text    string
	Tokens  *int
	ModelID string
	Elapsed time.Duration
}

// Adapter selects a codec for each request, sends the encoded body through
// its Invoker and decodes the reply.
type Adapter struct {
	invoker Invoker
}

// New creates an Adapter that sends requests through invoker.
func New(invoker Invoker) *Adapter {
	return &Adapter{invoker: invoker}
}

// Invoke runs one invocation. Errors are *apperr.Error values:
//   - apperr.InvalidInput for an unsupported model or out-of-range parameters,
//     returned before any call to the Invoker
//   - apperr.Backend when the Invoker fails
//   - apperr.Internal when encoding or decoding fails
func (a *Adapter) Invoke(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	codec, ok := Resolve(req.ModelID)
	if !ok {
		return Result{}, apperr.New(apperr.InvalidInput, "Unsupported model: %s", req.ModelID)
	}

	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	body, err := codec.EncodeRequest(req.params())
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, err, "Error invoking model: ")
	}

	raw, err := a.invoker.InvokeModel(ctx, req.ModelID, body)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return Result{}, err
		}
		return Result{}, apperr.Wrap(apperr.Backend, err, "Error invoking model: ")
	}

	out, err := codec.DecodeResponse(raw)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, err, "Error invoking model: ")
	}

	return Result{
		Text:    out.Text,
		Tokens:  out.Tokens,
		ModelID: req.ModelID,
		Elapsed: time.Since(start),
	}, nil
}
