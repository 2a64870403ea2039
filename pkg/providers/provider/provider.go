// Package provider holds the provider-neutral types shared by the Bedrock
// payload codecs: sampling parameters, the normalized output and the [Codec]
// contract each vendor package implements.
package provider

// Kind identifies the vendor whose JSON shape a model speaks.
type Kind int

const (
	// Unknown is the kind of any model identifier no codec claims.
	Unknown Kind = iota
	Anthropic
	Llama
	Titan
)

// String returns the vendor name.
func (k Kind) String() string {
	switch k {
	case Anthropic:
		return "anthropic"
	case Llama:
		return "llama"
	case Titan:
		return "titan"
	default:
		return "unknown"
	}
}

// Params are the sampling inputs for a single completion.
type Params struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Output is a provider response reduced to the fields the gateway reports.
// Tokens is nil when the provider did not report a count.
type Output struct {
	Text   string
	Tokens *int
}

// Codec converts between Params/Output and one vendor's wire format.
type Codec interface {
	// Kind returns the vendor this codec speaks for.
	Kind() Kind
	// EncodeRequest serializes p into the vendor request body.
	EncodeRequest(p Params) ([]byte, error)
	// DecodeResponse extracts the text and token count from a vendor response body.
	DecodeResponse(body []byte) (Output, error)
}

// Int returns a pointer to n.
func Int(n int) *int { return &n }
