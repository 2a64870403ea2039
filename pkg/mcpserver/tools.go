package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/germanamz/llmgate/pkg/catalog"
	"github.com/germanamz/llmgate/pkg/modeladapter"
	"github.com/germanamz/llmgate/pkg/processing"
	"github.com/germanamz/llmgate/pkg/storage"
	"github.com/tidwall/gjson"
)

// Prompter runs model invocations.
type Prompter interface {
	Invoke(ctx context.Context, req modeladapter.Request) (modeladapter.Result, error)
}

// Lister lists stored files.
type Lister interface {
	List(ctx context.Context, prefix string) ([]storage.FileInfo, error)
}

// Processor delegates CSV processing.
type Processor interface {
	Process(ctx context.Context, req processing.Request) (json.RawMessage, error)
}

type invokeResult struct {
	ResponseText   string `json:"response_text"`
	ModelID        string `json:"model_id"`
	TokensUsed     *int   `json:"tokens_used"`
	ResponseTimeMS int64  `json:"response_time_ms"`
}

// GatewayTools returns the list_models, invoke_model, list_files and
// process_csv tools backed by the given services.
func GatewayTools(p Prompter, files Lister, proc Processor) []Tool {
	return []Tool{
		{
			Name:        "list_models",
			Description: "List the foundation models the gateway can invoke.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
			Handler: func(context.Context, json.RawMessage) (string, error) {
				return marshal(catalog.Models())
			},
		},
		{
			Name:        "invoke_model",
			Description: "Send a prompt to a Bedrock model and return its completion.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"prompt": {"type": "string", "minLength": 1},
					"model_id": {"type": "string"},
					"temperature": {"type": "number", "minimum": 0, "maximum": 1},
					"max_tokens": {"type": "integer", "minimum": 1, "maximum": 4096},
					"top_p": {"type": "number", "minimum": 0, "maximum": 1}
				},
				"required": ["prompt", "model_id"]
			}`),
			Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
				var in modeladapter.PromptInput
				if err := json.Unmarshal(args, &in); err != nil {
					return "", fmt.Errorf("decode arguments: %w", err)
				}
				req, err := in.Request()
				if err != nil {
					return "", err
				}

				res, err := p.Invoke(ctx, req)
				if err != nil {
					return "", err
				}

				return marshal(invokeResult{
					ResponseText:   res.Text,
					ModelID:        res.ModelID,
					TokensUsed:     res.Tokens,
					ResponseTimeMS: res.Elapsed.Milliseconds(),
				})
			},
		},
		{
			Name:        "list_files",
			Description: "List uploaded CSV files, optionally under a key prefix.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"prefix":{"type":"string"}}}`),
			Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
				list, err := files.List(ctx, gjson.GetBytes(args, "prefix").String())
				if err != nil {
					return "", err
				}
				if list == nil {
					list = []storage.FileInfo{}
				}

				return marshal(list)
			},
		},
		{
			Name:        "process_csv",
			Description: "Run the column processing function over an uploaded CSV file.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"csv_key": {"type": "string"},
					"target": {"type": "string"},
					"columns": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["csv_key", "target", "columns"]
			}`),
			Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
				req, err := processing.ParseRequest(gjson.ParseBytes(args))
				if err != nil {
					return "", err
				}

				data, err := proc.Process(ctx, req)
				if err != nil {
					return "", err
				}

				return string(data), nil
			},
		},
	}
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
