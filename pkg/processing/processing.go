// Package processing delegates CSV column processing to an external Lambda
// function through one synchronous invocation.
package processing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/awsenv"
	"github.com/tidwall/gjson"
)

const errPrefix = "Failed to invoke Lambda: "

// DefaultFunctionName is the processing function used when none is configured.
const DefaultFunctionName = "sumun-preprocess-columns"

// LambdaAPI is the subset of *lambda.Client the delegator calls.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Request names a stored CSV, the target category and the columns to process.
type Request struct {
	CSVKey  string   `json:"csv_key"`
	Target  string   `json:"target"`
	Columns []string `json:"columns"`
}

// envelope is the payload shape the processing function expects.
type envelope struct {
	Body Request `json:"body"`
}

// Delegator invokes the processing function.
type Delegator struct {
	api      LambdaAPI
	function string
}

// New creates a Delegator calling function through api. An empty function
// name falls back to DefaultFunctionName.
func New(api LambdaAPI, function string) *Delegator {
	if function == "" {
		function = DefaultFunctionName
	}

	return &Delegator{api: api, function: function}
}

// NewFromConfig creates a Delegator backed by a lambda.Client built from cfg.
func NewFromConfig(cfg aws.Config, function string) *Delegator {
	return New(lambda.NewFromConfig(cfg), function)
}

// FunctionName returns the invoked function name.
func (d *Delegator) FunctionName() string { return d.function }

// Process invokes the function with {"body": req} and returns its result.
// When the function returns an object with a "data" key, only that value is
// returned; otherwise the whole payload is.
func (d *Delegator) Process(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.Columns == nil {
		req.Columns = []string{}
	}

	payload, err := json.Marshal(envelope{Body: req})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, errPrefix)
	}

	out, err := d.api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(d.function),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, apperr.Prefix(awsenv.Classify(err, "Lambda error", ""), errPrefix)
	}

	if out.FunctionError != nil {
		return nil, &apperr.Error{
			Kind:    apperr.Backend,
			Code:    aws.ToString(out.FunctionError),
			Message: errPrefix + "Lambda error: " + string(out.Payload),
		}
	}

	return unwrap(out.Payload)
}

// unwrap returns the "data" member of an object payload, or the payload itself.
func unwrap(payload []byte) (json.RawMessage, error) {
	if !gjson.ValidBytes(payload) {
		return nil, apperr.Wrap(apperr.Internal, errors.New("function returned a non-JSON payload"), errPrefix)
	}

	res := gjson.ParseBytes(payload)
	if res.IsObject() {
		if data := res.Get("data"); data.Exists() {
			return json.RawMessage(data.Raw), nil
		}
	}

	return json.RawMessage(payload), nil
}
