// Package config loads the gateway settings.
//
// Settings are resolved once at startup: built-in defaults, then an optional
// YAML file, then environment variables. The result is read-only for the
// life of the process.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/germanamz/llmgate/pkg/awsenv"
	"gopkg.in/yaml.v3"
)

// Log formats accepted by Settings.LogFormat.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Settings is the flat gateway configuration.
type Settings struct {
	AppName    string `yaml:"app_name"`
	Debug      bool   `yaml:"debug"`
	ListenAddr string `yaml:"listen_addr"`
	LogFormat  string `yaml:"log_format"`

	AWSRegion          string `yaml:"aws_region"`
	AWSAccessKeyID     string `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key"` //nolint:gosec // configuration field, not a hardcoded secret
	AWSSessionToken    string `yaml:"aws_session_token"`     //nolint:gosec // configuration field, not a hardcoded secret
	AWSProfile         string `yaml:"aws_profile"`

	S3BucketName   string `yaml:"s3_bucket_name"`
	S3UploadFolder string `yaml:"s3_upload_folder"`

	LambdaFunctionName string `yaml:"lambda_function_name"`

	CORSOrigins    []string `yaml:"cors_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		AppName:            "LLM Prompt Tester",
		Debug:              true,
		ListenAddr:         ":8000",
		LogFormat:          LogFormatConsole,
		AWSRegion:          "us-east-1",
		S3UploadFolder:     "uploads",
		LambdaFunctionName: "sumun-preprocess-columns",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		MaxUploadBytes: 32 << 20,
	}
}

// Load resolves settings from path (optional; empty skips the file) and the
// process environment. Environment variables referenced as ${VAR} or $VAR in
// the YAML are expanded before parsing.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
		if err != nil {
			return Settings{}, fmt.Errorf("config: load: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
			return Settings{}, fmt.Errorf("config: parse: %w", err)
		}
	}

	if err := s.ApplyEnv(os.LookupEnv); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// ApplyEnv overrides fields from the variables lookup reports as set.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	str("APP_NAME", &s.AppName)
	str("LISTEN_ADDR", &s.ListenAddr)
	str("LOG_FORMAT", &s.LogFormat)
	str("AWS_REGION", &s.AWSRegion)
	str("AWS_ACCESS_KEY_ID", &s.AWSAccessKeyID)
	str("AWS_SECRET_ACCESS_KEY", &s.AWSSecretAccessKey)
	str("AWS_SESSION_TOKEN", &s.AWSSessionToken)
	str("AWS_PROFILE", &s.AWSProfile)
	str("S3_BUCKET_NAME", &s.S3BucketName)
	str("S3_UPLOAD_FOLDER", &s.S3UploadFolder)
	str("LAMBDA_FUNCTION_NAME", &s.LambdaFunctionName)

	if v, ok := lookup("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: DEBUG: %w", err)
		}
		s.Debug = b
	}

	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: MAX_UPLOAD_BYTES: %w", err)
		}
		s.MaxUploadBytes = n
	}

	if v, ok := lookup("CORS_ORIGINS"); ok {
		s.CORSOrigins = splitList(v)
	}

	return nil
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	var errs []error

	if s.AWSRegion == "" {
		errs = append(errs, errors.New("config: aws_region is required"))
	}
	if s.ListenAddr == "" {
		errs = append(errs, errors.New("config: listen_addr is required"))
	}
	if s.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("config: max_upload_bytes must be positive, got %d", s.MaxUploadBytes))
	}
	if s.LogFormat != LogFormatConsole && s.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("config: unknown log_format %q", s.LogFormat))
	}

	return errors.Join(errs...)
}

// AWS returns the credential options for awsenv.Load.
func (s Settings) AWS() awsenv.Options {
	return awsenv.Options{
		Region:          s.AWSRegion,
		Profile:         s.AWSProfile,
		AccessKeyID:     s.AWSAccessKeyID,
		SecretAccessKey: s.AWSSecretAccessKey,
		SessionToken:    s.AWSSessionToken,
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
