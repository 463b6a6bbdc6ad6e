package model

// ================ Config ================
type ClassifierConfig struct {
	Provider    string  `envconfig:"CLASSIFIER_PROVIDER" default:"gemini"`
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"256"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
	Timeout     string  `envconfig:"CLASSIFIER_TIMEOUT" default:"10s"`
}

type SessionConfig struct {
	TTL             string `envconfig:"SESSION_TTL" default:"15m"`
	HistoryMaxTurns int    `envconfig:"SESSION_HISTORY_MAX_TURNS" default:"10"`
}

type AssistantPromptConfig struct {
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"ordering assistant"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"DMS"`
}
