package model

// ProviderID tags which upstream vendor serves a model. The orchestrator
// selects the matching provider gateway by this tag.
type ProviderID string

const (
	ProviderGroq       ProviderID = "groq"
	ProviderGoogle     ProviderID = "google"
	ProviderOpenRouter ProviderID = "openrouter"
	ProviderFireworks  ProviderID = "fireworks"
)

// AIModel describes an entry in the model catalog. IsAvailable is a hard
// precondition for sending: the orchestrator refuses to open a stream
// against an unavailable model and surfaces a configuration error instead.
type AIModel struct {
	ID            string
	Name          string
	Provider      ProviderID
	Description   string
	ContextLength int
	IsAvailable   bool
	Speed         string
	Capabilities  []string
}

// Models is the built-in model catalog.
var Models = []AIModel{
	{
		ID:            "llama-3.3-70b-versatile",
		Name:          "Llama 3.3 70B (Groq)",
		Provider:      ProviderGroq,
		Description:   "Lightning fast inference with Groq LPU - Recommended",
		ContextLength: 32768,
		IsAvailable:   true,
		Speed:         "fast",
		Capabilities:  []string{"chat", "code", "analysis"},
	},
	{
		ID:            "llama-3.1-8b-instant",
		Name:          "Llama 3.1 8B Instant",
		Provider:      ProviderGroq,
		Description:   "Ultra-fast responses for simple tasks",
		ContextLength: 8192,
		IsAvailable:   true,
		Speed:         "fast",
		Capabilities:  []string{"chat"},
	},
	{
		ID:            "llama3-70b-8192",
		Name:          "Llama 3 70B",
		Provider:      ProviderGroq,
		Description:   "Powerful 70B model with fast inference",
		ContextLength: 8192,
		IsAvailable:   true,
		Speed:         "fast",
		Capabilities:  []string{"chat", "code", "analysis"},
	},
	{
		ID:            "gemma2-9b-it",
		Name:          "Gemma 2 9B",
		Provider:      ProviderGroq,
		Description:   "Google Gemma 2 with Groq speed",
		ContextLength: 8192,
		IsAvailable:   true,
		Speed:         "fast",
		Capabilities:  []string{"chat", "code"},
	},
	{
		ID:            "gemini-2.0-flash",
		Name:          "Gemini 2.0 Flash",
		Provider:      ProviderGoogle,
		Description:   "Google's latest multimodal AI with vision capabilities",
		ContextLength: 1000000,
		IsAvailable:   true,
		Speed:         "fast",
		Capabilities:  []string{"chat", "code", "analysis", "vision"},
	},
	{
		ID:            "gemini-1.5-pro",
		Name:          "Gemini 1.5 Pro",
		Provider:      ProviderGoogle,
		Description:   "Advanced reasoning with massive context window",
		ContextLength: 2000000,
		IsAvailable:   true,
		Speed:         "medium",
		Capabilities:  []string{"chat", "code", "analysis", "vision"},
	},
	{
		ID:            "meta-llama/llama-3.3-70b-instruct:free",
		Name:          "Llama 3.3 70B (OpenRouter)",
		Provider:      ProviderOpenRouter,
		Description:   "Free access to Llama 3.3 via OpenRouter",
		ContextLength: 8192,
		IsAvailable:   true,
		Speed:         "medium",
		Capabilities:  []string{"chat", "code", "analysis"},
	},
	{
		ID:            "google/gemma-2-9b-it:free",
		Name:          "Gemma 2 9B",
		Provider:      ProviderOpenRouter,
		Description:   "Google's efficient open model",
		ContextLength: 8192,
		IsAvailable:   true,
		Speed:         "fast",
		Capabilities:  []string{"chat", "code"},
	},
	{
		ID:            "accounts/sentientfoundation/models/dobby-unhinged-llama-3-3-70b-new",
		Name:          "Dobby Unhinged 70B",
		Provider:      ProviderFireworks,
		Description:   "Powerful 70B parameter model (API suspended)",
		ContextLength: 8192,
		IsAvailable:   false,
		Speed:         "medium",
		Capabilities:  []string{"chat", "code", "analysis", "creative"},
	},
}

// ModelByID looks up a catalog entry by its id.
func ModelByID(id string) (AIModel, bool) {
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return AIModel{}, false
}

// AvailableModels returns the catalog entries that can currently be sent to.
func AvailableModels() []AIModel {
	var out []AIModel
	for _, m := range Models {
		if m.IsAvailable {
			out = append(out, m)
		}
	}
	return out
}

// ModelsByProvider returns the catalog entries served by the given vendor.
func ModelsByProvider(p ProviderID) []AIModel {
	var out []AIModel
	for _, m := range Models {
		if m.Provider == p {
			out = append(out, m)
		}
	}
	return out
}
