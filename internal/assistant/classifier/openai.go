package classifier

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/orderchat-poc/server/internal/assistant/model"
	errx "github.com/orderchat-poc/server/internal/core/error"
	logx "github.com/orderchat-poc/server/pkg/logger"
)

// OpenAI classifies intents through an OpenAI-compatible chat completion API.
type OpenAI struct {
	client       *openai.Client
	modelName    string
	systemPrompt string
	temperature  float32
	maxTokens    int
	timeout      time.Duration
	historyMax   int
}

// NewOpenAI builds the classifier client. BaseURL makes it usable against any
// OpenAI-compatible endpoint.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai classifier requires an api key")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client:       openai.NewClientWithConfig(clientCfg),
		modelName:    cfg.Model.Model,
		systemPrompt: renderSystemPrompt(cfg.Prompt),
		temperature:  cfg.Model.Temperature,
		maxTokens:    cfg.Model.MaxTokens,
		timeout:      parseTimeout(cfg.Model.Timeout),
		historyMax:   cfg.HistoryMaxTurns,
	}, nil
}

func (o *OpenAI) Classify(ctx context.Context, utterance string, history []model.Turn) (model.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelName,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildContext(history, utterance, o.historyMax)},
		},
	})
	if err != nil {
		logx.Error().Err(err).Str("model", o.modelName).Msg("intent model call failed")
		return model.Intent{}, errx.WrapClassifier(err)
	}
	if len(resp.Choices) == 0 {
		return model.Intent{}, errx.WrapClassifier(fmt.Errorf("no choices in classifier response"))
	}

	intent, err := DecodeIntent(resp.Choices[0].Message.Content)
	if err != nil {
		logx.Warn().Err(err).Str("raw", safeSnippet(resp.Choices[0].Message.Content)).Msg("unparsable intent response")
		return model.Intent{}, errx.WrapClassifier(err)
	}
	return intent, nil
}

var _ Classifier = (*OpenAI)(nil)
