// Package providers groups the Bedrock payload codecs.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/llmgate/pkg/providers/provider]: Params, Output, the Codec interface and the Kind enum
//   - [github.com/germanamz/llmgate/pkg/providers/anthropic]: Anthropic Messages on Bedrock
//   - [github.com/germanamz/llmgate/pkg/providers/llama]: Meta Llama text generation
//   - [github.com/germanamz/llmgate/pkg/providers/titan]: Amazon Titan Text
//
// Codecs do no I/O. Selecting a codec for a model identifier and sending the
// body is the job of [github.com/germanamz/llmgate/pkg/modeladapter].
package providers
