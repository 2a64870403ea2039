// Package catalog holds the fixed list of models the gateway advertises.
package catalog

// ModelDescriptor describes one hosted model.
type ModelDescriptor struct {
	ModelID     string `json:"model_id"`
	Provider    string `json:"provider"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Supported   bool   `json:"supported"`
}

var models = []ModelDescriptor{
	{
		ModelID:     "us.anthropic.claude-3-5-sonnet-20241022-v2:0",
		Provider:    "Anthropic",
		Name:        "Claude 3.5 Sonnet v2",
		Description: "Most intelligent model, best for complex tasks",
		Supported:   true,
	},
	{
		ModelID:     "meta.llama3-70b-instruct-v1:0",
		Provider:    "Meta",
		Name:        "Llama 3 70B Instruct",
		Description: "Open-weights model tuned for dialogue and reasoning",
		Supported:   true,
	},
	{
		ModelID:     "amazon.titan-text-express-v1",
		Provider:    "Amazon",
		Name:        "Titan Text G1 - Express",
		Description: "Fast general-purpose text generation",
		Supported:   true,
	},
}

// Models returns the catalog. The slice is a copy; callers may modify it.
func Models() []ModelDescriptor {
	out := make([]ModelDescriptor, len(models))
	copy(out, models)

	return out
}
