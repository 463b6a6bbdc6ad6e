package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/orderchat-poc/server/internal/assistant/classifier"
	"github.com/orderchat-poc/server/internal/assistant/gateway"
	"github.com/orderchat-poc/server/internal/assistant/model"
	"github.com/orderchat-poc/server/internal/assistant/repo"
	"github.com/orderchat-poc/server/internal/assistant/session"
	"github.com/orderchat-poc/server/internal/assistant/voice"
	"github.com/orderchat-poc/server/internal/core"
	logx "github.com/orderchat-poc/server/pkg/logger"
	pkgredis "github.com/orderchat-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the ordering assistant
// demo, sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// LLM providers. The Gemini key doubles as the default classifier key;
	// OPENAI_API_KEY is used when CLASSIFIER_PROVIDER=openai. The rule
	// provider needs neither.
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	// Assistant configs
	Classifier model.ClassifierConfig
	Session    model.SessionConfig
	Prompt     model.AssistantPromptConfig
}

func main() {
	fmt.Println("Ordering Assistant demo...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	// Transcript storage is optional: without REDIS_URL the session is
	// memory-only and everything else still works.
	var transcriptRepo model.TranscriptRepository
	if os.Getenv("REDIS_URL") != "" {
		var redisCfg pkgredis.Config
		if err := envconfig.Process("", &redisCfg); err != nil {
			log.Fatalf("Failed to process redis config: %v", err)
		}
		rdb, err := redisCfg.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()

		ttl, err := time.ParseDuration(envCfg.Session.TTL)
		if err != nil {
			log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
		}
		transcriptRepo = repo.NewRedisTranscriptRepository(rdb, ttl)
		fmt.Println("Connected to Redis successfully")
	}

	cls, err := classifier.New(ctx, classifier.Config{
		APIKey:          classifierKey(envCfg),
		BaseURL:         classifierBaseURL(envCfg),
		Model:           envCfg.Classifier,
		Prompt:          envCfg.Prompt,
		HistoryMaxTurns: envCfg.Session.HistoryMaxTurns,
	})
	if err != nil {
		log.Fatalf("Failed to build classifier: %v", err)
	}

	sess, err := session.New(session.Options{
		Gateway:    gateway.NewInMemory(nil),
		Classifier: cls,
		Repo:       transcriptRepo,
		Prompt:     envCfg.Prompt,
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	// No platform recognizer on a headless run; the affordance stays disabled.
	mic := voice.NewCapture(nil, sess.SetPendingInput)
	fmt.Printf("Voice capture supported: %v\n", mic.Supported())

	sess.ToggleOpen()
	printNewTurns(sess, 0)

	testUtterances := []struct {
		description string
		utterance   string
	}{
		{description: "Browse the catalog", utterance: "show products"},
		{description: "Add to cart by name and quantity", utterance: "add 2 shirts"},
		{description: "Inspect the cart", utterance: "what's in my cart?"},
		{description: "Ask for help", utterance: "help me please"},
		{description: "Place the order", utterance: "checkout now"},
		{description: "Something the assistant cannot do", utterance: "sing me a song"},
	}

	seen := len(sess.Snapshot().Turns)
	for i, test := range testUtterances {
		fmt.Printf("\n🚀 Turn %d: %s\n", i+1, test.description)
		fmt.Printf("Utterance: %q\n", test.utterance)

		sess.SubmitText(ctx, test.utterance)

		seen = printNewTurns(sess, seen)
		fmt.Println("─────────────────────────────────────────────")

		// slight delay between turns for readability
		time.Sleep(200 * time.Millisecond)
	}

	snap := sess.Snapshot()
	fmt.Printf("\n🎉 Conversation finished: %d turns, quick replies: %v\n", len(snap.Turns), snap.QuickReplies)
}

func classifierKey(cfg AppConfig) string {
	if cfg.Classifier.Provider == "openai" {
		return cfg.OpenAIAPIKey
	}
	return cfg.GeminiAPIKey
}

func classifierBaseURL(cfg AppConfig) string {
	if cfg.Classifier.Provider == "openai" {
		return cfg.OpenAIBaseURL
	}
	return cfg.GeminiBaseURL
}

func printNewTurns(sess *session.Session, seen int) int {
	snap := sess.Snapshot()
	for _, turn := range snap.Turns[seen:] {
		fmt.Printf("[%s] %-9s: %s\n", turn.Clock(), turn.Speaker, turn.Content)
	}
	return len(snap.Turns)
}
