package llm

// modelAliases maps the short names accepted in WORDIZ_*_MODEL to model IDs,
// per provider. Unknown names are passed through as IDs.
var modelAliases = map[string]map[string]string{
	ProviderAnthropic: {
		"claude-haiku":  "claude-haiku-4-5",
		"claude-sonnet": "claude-sonnet-4-5",
	},
	ProviderOpenAI: {
		"gpt-mini": "gpt-4.1-mini",
		"gpt-nano": "gpt-4.1-nano",
	},
	ProviderGemini: {
		"gemini-flash":      "gemini-2.5-flash",
		"gemini-flash-lite": "gemini-2.0-flash-lite",
		"gemini-pro":        "gemini-2.5-pro",
	},
}

func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}

// ModelCost is the price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the price of a model ID or alias, or nil if unknown.
func LookupCost(model string) *ModelCost {
	for _, aliases := range modelAliases {
		if id, ok := aliases[model]; ok {
			model = id
			break
		}
	}
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the default quiz-generation models and the usual
// alternatives.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},

	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},

	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},

	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
