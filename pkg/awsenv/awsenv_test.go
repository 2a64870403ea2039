package awsenv_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/awsenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialSource(t *testing.T) {
	tests := []struct {
		name string
		opts awsenv.Options
		want string
	}{
		{"profile wins", awsenv.Options{Profile: "dev", AccessKeyID: "a", SecretAccessKey: "b"}, "profile"},
		{"static keys", awsenv.Options{AccessKeyID: "a", SecretAccessKey: "b"}, "static"},
		{"key without secret", awsenv.Options{AccessKeyID: "a"}, "default"},
		{"nothing", awsenv.Options{}, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.CredentialSource())
		})
	}
}

func TestLoadOptions_Count(t *testing.T) {
	assert.Len(t, awsenv.Options{Region: "us-east-1"}.LoadOptions(), 2)
	assert.Len(t, awsenv.Options{Region: "us-east-1", Profile: "dev"}.LoadOptions(), 3)
	assert.Len(t, awsenv.Options{Region: "us-east-1", AccessKeyID: "a", SecretAccessKey: "b"}.LoadOptions(), 3)
}

func TestLoad_StaticCredentials(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))

	cfg, err := awsenv.Load(context.Background(), awsenv.Options{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}

func TestClassify_APIError(t *testing.T) {
	sdkErr := fmt.Errorf("operation error: %w", &smithy.GenericAPIError{
		Code:    "ValidationException",
		Message: "model not found",
	})

	err := awsenv.Classify(sdkErr, "Bedrock error", "Error invoking model: ")

	assert.Equal(t, apperr.Backend, err.Kind)
	assert.Equal(t, "ValidationException", err.Code)
	assert.Equal(t, "Bedrock error (ValidationException): model not found", err.Error())
	assert.ErrorIs(t, err, sdkErr)
}

func TestClassify_TransportError(t *testing.T) {
	err := awsenv.Classify(errors.New("connection reset"), "Bedrock error", "Error invoking model: ")

	assert.Equal(t, apperr.Backend, err.Kind)
	assert.Empty(t, err.Code)
	assert.Equal(t, "Error invoking model: connection reset", err.Error())
}
