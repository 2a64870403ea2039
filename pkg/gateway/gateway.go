// Package gateway is the composition root. It assembles the model adapter,
// the file store and the processing delegator from settings and exposes them
// through the HTTP and MCP frontends.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/germanamz/llmgate/pkg/awsenv"
	"github.com/germanamz/llmgate/pkg/bedrock"
	"github.com/germanamz/llmgate/pkg/config"
	"github.com/germanamz/llmgate/pkg/logging"
	"github.com/germanamz/llmgate/pkg/mcpserver"
	"github.com/germanamz/llmgate/pkg/modeladapter"
	"github.com/germanamz/llmgate/pkg/processing"
	"github.com/germanamz/llmgate/pkg/server"
	"github.com/germanamz/llmgate/pkg/storage"
)

// Gateway holds the services built from one Settings value.
type Gateway struct {
	settings  config.Settings
	log       *slog.Logger
	adapter   *modeladapter.Adapter
	store     *storage.Store
	processor *processing.Delegator
}

// New validates settings, loads AWS configuration and builds the services.
func New(ctx context.Context, settings config.Settings, log *slog.Logger) (*Gateway, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := awsenv.Load(ctx, settings.AWS())
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}

	g := FromAWSConfig(awsCfg, settings, log)
	g.log.InfoContext(ctx, "gateway configured",
		"region", awsCfg.Region,
		"credentials", settings.AWS().CredentialSource(),
		"bucket", settings.S3BucketName,
		"lambda", g.processor.FunctionName(),
	)
	if settings.S3BucketName == "" {
		g.log.WarnContext(ctx, "S3_BUCKET_NAME is not set; upload and listing will fail")
	}

	return g, nil
}

// FromAWSConfig builds the services from an already loaded AWS configuration.
func FromAWSConfig(awsCfg aws.Config, settings config.Settings, log *slog.Logger) *Gateway {
	if log == nil {
		log = logging.Discard()
	}

	return &Gateway{
		settings: settings,
		log:      log,
		adapter:  modeladapter.New(bedrock.NewFromConfig(awsCfg)),
		store: storage.NewFromConfig(awsCfg, storage.Config{
			Bucket: settings.S3BucketName,
			Folder: settings.S3UploadFolder,
			Region: settings.AWSRegion,
		}),
		processor: processing.NewFromConfig(awsCfg, settings.LambdaFunctionName),
	}
}

// Settings returns the settings the gateway was built from.
func (g *Gateway) Settings() config.Settings { return g.settings }

// Handler returns the HTTP frontend.
func (g *Gateway) Handler() http.Handler {
	return server.New(g.adapter, g.store, g.processor, server.Options{
		AppName:        g.settings.AppName,
		CORSOrigins:    g.settings.CORSOrigins,
		MaxUploadBytes: g.settings.MaxUploadBytes,
		Logger:         g.log,
	}).Handler()
}

// MCPServer returns the MCP frontend with every gateway tool registered.
func (g *Gateway) MCPServer() *mcpserver.MCPServer {
	s := mcpserver.New("llmgate", server.Version, g.log)
	s.Register(mcpserver.GatewayTools(g.adapter, g.store, g.processor)...)

	return s
}
