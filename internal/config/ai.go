package config

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Question is for first/next question generation (needs to be fast)
	Question string `json:"question"`

	// Eval is for per-answer evaluation (fast, JSON mode)
	Eval string `json:"eval"`

	// Summary is for end-of-interview overall feedback (deep analysis,
	// the one long-running call in the system)
	Summary string `json:"summary"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey           string       `json:"-"` // Never serialize
	BaseURL          string       `json:"baseUrl"`
	Models           GeminiModels `json:"models"`
	TimeoutMS        int          `json:"timeoutMs"`
	SummaryTimeoutMS int          `json:"summaryTimeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  getEnv("GEMINI_API_KEY", ""),
		BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Models: GeminiModels{
			Question: getEnv("GEMINI_MODEL_QUESTION", "gemini-2.0-flash"),
			Eval:     getEnv("GEMINI_MODEL_EVAL", "gemini-2.0-flash"),
			Summary:  getEnv("GEMINI_MODEL_SUMMARY", "gemini-2.0-flash"),
		},
		TimeoutMS:        getEnvAsInt("GEMINI_TIMEOUT_MS", 10000),
		SummaryTimeoutMS: getEnvAsInt("GEMINI_SUMMARY_TIMEOUT_MS", 60000),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}
