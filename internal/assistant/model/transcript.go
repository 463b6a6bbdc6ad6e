package model

import "context"

type TranscriptRepository interface {
	// AppendTurn appends a turn to the stored transcript for the given conversation
	AppendTurn(ctx context.Context, conversationID string, turn Turn) error

	// LoadTurns retrieves the stored transcript for a conversation
	LoadTurns(ctx context.Context, conversationID string) ([]Turn, error)

	// ClearTurns removes all stored turns for a conversation
	ClearTurns(ctx context.Context, conversationID string) error

	// TurnCount returns the number of stored turns in the conversation
	TurnCount(ctx context.Context, conversationID string) (int, error)
}
