package processing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/processing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLambda struct {
	out *lambda.InvokeOutput
	err error

	input *lambda.InvokeInput
}

func (f *fakeLambda) Invoke(_ context.Context, params *lambda.InvokeInput, _ ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.input = params
	return f.out, f.err
}

func sampleRequest() processing.Request {
	return processing.Request{
		CSVKey:  "uploads/20241105_120000_data.csv",
		Target:  "alumno",
		Columns: []string{"ÁREA", "GRADO"},
	}
}

func TestNew_DefaultFunctionName(t *testing.T) {
	d := processing.New(&fakeLambda{}, "")
	assert.Equal(t, "sumun-preprocess-columns", d.FunctionName())

	d = processing.New(&fakeLambda{}, "custom")
	assert.Equal(t, "custom", d.FunctionName())
}

func TestProcess_Envelope(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`{"ok":true}`)}}
	d := processing.New(fl, "fn")

	_, err := d.Process(context.Background(), sampleRequest())
	require.NoError(t, err)

	require.NotNil(t, fl.input)
	assert.Equal(t, "fn", aws.ToString(fl.input.FunctionName))
	assert.Equal(t, types.InvocationTypeRequestResponse, fl.input.InvocationType)
	assert.JSONEq(t, `{"body":{"csv_key":"uploads/20241105_120000_data.csv","target":"alumno","columns":["ÁREA","GRADO"]}}`, string(fl.input.Payload))
}

func TestProcess_NilColumnsEncodeAsEmptyList(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`{}`)}}
	d := processing.New(fl, "fn")

	_, err := d.Process(context.Background(), processing.Request{CSVKey: "k", Target: "t"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"body":{"csv_key":"k","target":"t","columns":[]}}`, string(fl.input.Payload))
}

func TestProcess_UnwrapsData(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`{"statusCode":200,"data":{"processed_rows":100}}`)}}
	d := processing.New(fl, "fn")

	got, err := d.Process(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"processed_rows":100}`, string(got))
}

func TestProcess_RawPayloadWithoutData(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"object", `{"statusCode":200,"body":"done"}`},
		{"string", `"done"`},
		{"array", `[1,2,3]`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(tt.payload)}}
			got, err := processing.New(fl, "fn").Process(context.Background(), sampleRequest())
			require.NoError(t, err)
			assert.JSONEq(t, tt.payload, string(got))
		})
	}
}

func TestProcess_DataNull(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`{"data":null}`)}}

	got, err := processing.New(fl, "fn").Process(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "null", string(got))
}

func TestProcess_FunctionError(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"KeyError: 'csv_key'","data":{"partial":true}}`),
	}}

	got, err := processing.New(fl, "fn").Process(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Nil(t, got)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.Backend, appErr.Kind)
	assert.Equal(t, "Unhandled", appErr.Code)
	assert.Contains(t, err.Error(), "Failed to invoke Lambda: Lambda error: ")
	assert.Contains(t, err.Error(), "KeyError")
}

func TestProcess_InvokeError(t *testing.T) {
	fl := &fakeLambda{err: &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "Function not found"}}

	_, err := processing.New(fl, "fn").Process(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.Backend, apperr.KindOf(err))
	assert.Equal(t, "Failed to invoke Lambda: Lambda error (ResourceNotFoundException): Function not found", err.Error())
}

func TestProcess_NonJSONPayload(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`not json`)}}

	_, err := processing.New(fl, "fn").Process(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
}

func TestProcess_ResultIsValidJSON(t *testing.T) {
	fl := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`{"data":[{"col":"ÁREA","values":["a","b"]}]}`)}}

	got, err := processing.New(fl, "fn").Process(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.True(t, json.Valid(got))
}
