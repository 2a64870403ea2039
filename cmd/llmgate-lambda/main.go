// Command llmgate-lambda runs the HTTP frontend inside AWS Lambda behind an
// API Gateway HTTP API or a function URL.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/germanamz/llmgate/pkg/config"
	"github.com/germanamz/llmgate/pkg/gateway"
	"github.com/germanamz/llmgate/pkg/logging"
)

func main() {
	ctx := context.Background()

	settings, err := config.Load(os.Getenv("LLMGATE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, settings.LogFormat, settings.Debug)

	g, err := gateway.New(ctx, settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(httpadapter.NewV2(g.Handler()).ProxyWithContext)
}
