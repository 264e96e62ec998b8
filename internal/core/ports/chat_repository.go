package ports

import (
	"context"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

// ChatRepository defines persistence operations for per-user chat records.
// Every operation is scoped to a single owning user document; there is no
// global chat index.
type ChatRepository interface {
	// ListByUser returns chat summaries in stored insertion order.
	// Returns domain.ErrUserNotFound when the user does not exist and an
	// empty slice when the user has no chats.
	ListByUser(ctx context.Context, userID string) ([]domain.ChatSummary, error)
	// FindByID returns the full chat. Returns domain.ErrChatNotFound both
	// when the user does not exist and when the chat is not in that user's
	// collection.
	FindByID(ctx context.Context, userID, chatID string) (*domain.Chat, error)
	// Append atomically adds a chat to the user's collection as a single
	// document update. Returns domain.ErrUserNotFound when the user does
	// not exist. An existing ChatID is not searched for or replaced.
	Append(ctx context.Context, userID string, chat *domain.Chat) error
}
