package domain

import (
	"errors"
	"time"
)

var ErrChatNotFound = errors.New("chat not found")

// Message roles are a contract with the external QA service; the frontend
// sends history back verbatim, so the tags must not be renamed.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation. Its position in the history is its
// only identity.
type Message struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// Chat is one saved conversation, owned by exactly one user and reachable
// only through that user's document. ChatID is caller-supplied and unique
// only within the owner's collection.
type Chat struct {
	ChatID    string    `json:"chatId" bson:"chat_id"`
	ChatName  string    `json:"chatName" bson:"chat_name"`
	History   []Message `json:"history" bson:"history"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// ChatSummary is the lightweight list view; history is intentionally omitted.
type ChatSummary struct {
	ChatID    string    `json:"chatId" bson:"chat_id"`
	ChatName  string    `json:"chatName" bson:"chat_name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
