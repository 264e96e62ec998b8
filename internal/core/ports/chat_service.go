package ports

import (
	"context"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

// SaveChatInput carries all data needed to persist a chat snapshot.
type SaveChatInput struct {
	UserID   string
	ChatID   string // blank = assign one server-side
	ChatName string
	History  []domain.Message
}

// ChatService defines use-case operations for chat persistence.
type ChatService interface {
	ListChats(ctx context.Context, userID string) ([]domain.ChatSummary, error)
	GetChat(ctx context.Context, userID, chatID string) (*domain.Chat, error)
	// SaveChat appends a new chat entry and returns its chat id. Saving an
	// already-used ChatID appends a second entry rather than overwriting.
	SaveChat(ctx context.Context, input SaveChatInput) (string, error)
}
