package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageRequest struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// saveChatRequest carries the acting identity in the body. That mirrors the
// original wire contract the shipped frontend still speaks; see the save
// handler for how it is reconciled against the token.
type saveChatRequest struct {
	UserID   string           `json:"userId"   validate:"required"`
	ChatID   string           `json:"chatId"`
	ChatName string           `json:"chatName"`
	History  []messageRequest `json:"history"  validate:"dive"`
}

// --- Response types ---
// Response-only types are owned by the transport layer so the JSON contract
// is not coupled to internal service changes.

type messageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatSummaryResponse struct {
	ChatID    string    `json:"chatId"`
	ChatName  string    `json:"chatName"`
	CreatedAt time.Time `json:"createdAt"`
}

type chatDetailResponse struct {
	ChatID    string            `json:"chatId"`
	ChatName  string            `json:"chatName"`
	History   []messageResponse `json:"history"`
	CreatedAt time.Time         `json:"createdAt"`
}

type messageOnlyResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type listChatsResponse struct {
	Message string                `json:"message"`
	Chats   []chatSummaryResponse `json:"chats"`
}

type getChatResponse struct {
	Message string             `json:"message"`
	Chat    chatDetailResponse `json:"chat"`
}
