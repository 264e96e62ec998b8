package handler

import (
	"github.com/divyandj/pdfchat-api/internal/core/domain"
	"github.com/divyandj/pdfchat-api/internal/core/ports"
)

// --- Request → Service input ---

func toSaveInput(req saveChatRequest) ports.SaveChatInput {
	history := make([]domain.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, domain.Message{Role: m.Role, Content: m.Content})
	}
	return ports.SaveChatInput{
		UserID:   req.UserID,
		ChatID:   req.ChatID,
		ChatName: req.ChatName,
		History:  history,
	}
}

// --- Domain → HTTP response ---

func toSummaryResponses(summaries []domain.ChatSummary) []chatSummaryResponse {
	out := make([]chatSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = chatSummaryResponse{
			ChatID:    s.ChatID,
			ChatName:  s.ChatName,
			CreatedAt: s.CreatedAt,
		}
	}
	return out
}

func toDetailResponse(chat *domain.Chat) chatDetailResponse {
	history := make([]messageResponse, len(chat.History))
	for i, m := range chat.History {
		history[i] = messageResponse{Role: m.Role, Content: m.Content}
	}
	return chatDetailResponse{
		ChatID:    chat.ChatID,
		ChatName:  chat.ChatName,
		History:   history,
		CreatedAt: chat.CreatedAt,
	}
}
