// Package awsenv builds the shared AWS SDK configuration and turns SDK
// errors into apperr values.
package awsenv

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"
	"github.com/germanamz/llmgate/pkg/apperr"
)

// Options selects the region and credential source.
//
// A non-empty Profile wins. Otherwise static keys are used when both are set.
// Otherwise the SDK default chain applies, which resolves to the execution
// role when running inside Lambda.
type Options struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string //nolint:gosec // configuration field, not a hardcoded secret
	SessionToken    string // Optional; set alongside temporary keys.
}

// CredentialSource names the source Load will use for o.
func (o Options) CredentialSource() string {
	switch {
	case o.Profile != "":
		return "profile"
	case o.AccessKeyID != "" && o.SecretAccessKey != "":
		return "static"
	default:
		return "default"
	}
}

// LoadOptions returns the config.LoadOptions functions for o. Retries are
// disabled: every gateway call is attempted exactly once.
func (o Options) LoadOptions() []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(o.Region),
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}

	switch o.CredentialSource() {
	case "profile":
		opts = append(opts, config.WithSharedConfigProfile(o.Profile))
	case "static":
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, o.SessionToken),
		))
	}

	return opts
}

// Load resolves an aws.Config for o.
func Load(ctx context.Context, o Options) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, o.LoadOptions()...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("awsenv: load config: %w", err)
	}

	return cfg, nil
}

// Classify converts an SDK error into an apperr.Backend error. Service API
// errors read "<label> (<code>): <message>"; anything else (transport
// failures, cancellation) reads fallbackPrefix followed by the error text.
func Classify(err error, label, fallbackPrefix string) *apperr.Error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &apperr.Error{
			Kind:    apperr.Backend,
			Code:    apiErr.ErrorCode(),
			Message: fmt.Sprintf("%s (%s): %s", label, apiErr.ErrorCode(), apiErr.ErrorMessage()),
			Err:     err,
		}
	}

	return apperr.Wrap(apperr.Backend, err, fallbackPrefix)
}
