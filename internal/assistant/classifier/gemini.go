package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/orderchat-poc/server/internal/assistant/model"
	errx "github.com/orderchat-poc/server/internal/core/error"
	logx "github.com/orderchat-poc/server/pkg/logger"
)

// Gemini classifies intents with a Gemini chat model.
type Gemini struct {
	chatModel    *gemini.ChatModel
	modelName    string
	systemPrompt string
	timeout      time.Duration
	historyMax   int
}

// NewGemini builds the genai client and chat model for intent classification.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating intent model")
		return nil, fmt.Errorf("error creating intent model: %w", err)
	}

	return &Gemini{
		chatModel:    chatModel,
		modelName:    cfg.Model.Model,
		systemPrompt: renderSystemPrompt(cfg.Prompt),
		timeout:      parseTimeout(cfg.Model.Timeout),
		historyMax:   cfg.HistoryMaxTurns,
	}, nil
}

func (g *Gemini) Classify(ctx context.Context, utterance string, history []model.Turn) (model.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []*schema.Message{
		schema.SystemMessage(g.systemPrompt),
		schema.UserMessage(buildContext(history, utterance, g.historyMax)),
	}

	out, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("intent model call failed")
		return model.Intent{}, errx.WrapClassifier(err)
	}
	if out == nil || out.Content == "" {
		return model.Intent{}, errx.WrapClassifier(fmt.Errorf("empty classifier response"))
	}

	intent, err := DecodeIntent(out.Content)
	if err != nil {
		logx.Warn().Err(err).Str("raw", safeSnippet(out.Content)).Msg("unparsable intent response")
		return model.Intent{}, errx.WrapClassifier(err)
	}

	logx.Debug().
		Str("model", g.modelName).
		Str("action", string(intent.Action)).
		Str("product", intent.Product).
		Int("quantity", intent.Quantity).
		Msg("intent classified")
	return intent, nil
}

const maxErrSnippet = 200

func safeSnippet(s string) string {
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}

var _ Classifier = (*Gemini)(nil)
