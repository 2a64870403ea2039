// Package modeladapter implements the model invocation adapter.
//
// It contains:
//   - [Request] and [Result], the provider-agnostic input and output of one invocation
//   - [PromptInput], the client-facing form of a Request with optional sampling fields
//   - [Invoker], the single synchronous inference call the adapter depends on
//   - the dispatch table mapping model identifiers to provider codecs ([Resolve])
//   - [Adapter], which ties the three together
//
// The adapter performs at most one Invoker call per [Adapter.Invoke] and keeps
// no state between calls. Codecs live in the providers sub-packages; the AWS
// binding of Invoker lives in package bedrock.
package modeladapter
