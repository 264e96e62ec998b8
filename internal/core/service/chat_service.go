package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
	"github.com/divyandj/pdfchat-api/internal/core/ports"
	"github.com/divyandj/pdfchat-api/internal/metrics"
)

// SummaryCache abstracts the chat-list cache (Redis). Cache failures are
// never fatal; callers fall through to the repository.
type SummaryCache interface {
	Get(ctx context.Context, userID string) ([]domain.ChatSummary, bool, error)
	Set(ctx context.Context, userID string, summaries []domain.ChatSummary) error
	Invalidate(ctx context.Context, userID string) error
}

type chatService struct {
	repo  ports.ChatRepository
	cache SummaryCache
	log   zerolog.Logger
}

// NewChatService returns a ChatService. cache may be nil, in which case all
// reads go straight to the repository.
func NewChatService(repo ports.ChatRepository, cache SummaryCache, log zerolog.Logger) ports.ChatService {
	return &chatService{repo: repo, cache: cache, log: log}
}

func (s *chatService) ListChats(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	if s.cache != nil {
		summaries, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("chat cache read failed")
		} else if ok {
			metrics.ChatCacheTotal.WithLabelValues("hit").Inc()
			return summaries, nil
		}
		metrics.ChatCacheTotal.WithLabelValues("miss").Inc()
	}

	summaries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, summaries); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("chat cache write failed")
		}
	}

	return summaries, nil
}

func (s *chatService) GetChat(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	chat, err := s.repo.FindByID(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return chat, nil
}

// SaveChat appends a new chat snapshot to the user's collection. A repeated
// ChatID appends a second entry; the store never searches for or replaces an
// existing one. CreatedAt is assigned here, immutably.
func (s *chatService) SaveChat(ctx context.Context, input ports.SaveChatInput) (string, error) {
	chatID := input.ChatID
	if chatID == "" {
		chatID = uuid.NewString()
	}

	chat := &domain.Chat{
		ChatID:    chatID,
		ChatName:  input.ChatName,
		History:   input.History,
		CreatedAt: time.Now().UTC(),
	}

	timer := prometheus.NewTimer(metrics.ChatSaveDuration)
	err := s.repo.Append(ctx, input.UserID, chat)
	timer.ObserveDuration()
	if err != nil {
		return "", fmt.Errorf("save chat: %w", err)
	}

	metrics.ChatsSavedTotal.Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, input.UserID); err != nil {
			s.log.Warn().Err(err).Str("user_id", input.UserID).Msg("chat cache invalidation failed")
		}
	}

	s.log.Info().
		Str("user_id", input.UserID).
		Str("chat_id", chatID).
		Int("messages", len(input.History)).
		Msg("chat saved")

	return chatID, nil
}
