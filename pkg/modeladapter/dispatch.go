package modeladapter

import (
	"strings"

	"github.com/germanamz/llmgate/pkg/providers/anthropic"
	"github.com/germanamz/llmgate/pkg/providers/llama"
	"github.com/germanamz/llmgate/pkg/providers/provider"
	"github.com/germanamz/llmgate/pkg/providers/titan"
)

// route binds a model identifier substring to a codec.
type route struct {
	match string
	codec provider.Codec
}

// routes is checked in order; the first substring match wins.
var routes = []route{
	{match: "anthropic", codec: anthropic.Codec{}},
	{match: "meta.llama", codec: llama.Codec{}},
	{match: "amazon.titan", codec: titan.Codec{}},
}

// Resolve returns the codec for modelID. The bool is false when no route
// matches.
func Resolve(modelID string) (provider.Codec, bool) {
	for _, r := range routes {
		if strings.Contains(modelID, r.match) {
			return r.codec, true
		}
	}

	return nil, false
}

// KindFor returns the provider kind for modelID, or provider.Unknown.
func KindFor(modelID string) provider.Kind {
	codec, ok := Resolve(modelID)
	if !ok {
		return provider.Unknown
	}

	return codec.Kind()
}
