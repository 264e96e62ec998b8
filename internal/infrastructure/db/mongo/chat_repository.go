package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

// ChatRepository reads and appends the chats array embedded in each user
// document. Consistency rests on Mongo's single-document update guarantee:
// an append is one $push, never a read-modify-write in two calls, so a
// concurrent list can never observe a half-written chat.
type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{coll: db.Collection(usersCollection)}
}

type messageDoc struct {
	Role    string `bson:"role"`
	Content string `bson:"content"`
}

type chatDoc struct {
	ChatID    string       `bson:"chat_id"`
	ChatName  string       `bson:"chat_name"`
	History   []messageDoc `bson:"history"`
	CreatedAt time.Time    `bson:"created_at"`
}

// ListByUser returns summaries in stored array order; Mongo preserves array
// insertion order, so no re-sort happens here.
func (r *ChatRepository) ListByUser(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Chats []chatDoc `bson:"chats"`
	}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"chats.history": 0})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("list chats: %w", err)
	}

	summaries := make([]domain.ChatSummary, 0, len(doc.Chats))
	for _, c := range doc.Chats {
		summaries = append(summaries, domain.ChatSummary{
			ChatID:    c.ChatID,
			ChatName:  c.ChatName,
			CreatedAt: c.CreatedAt,
		})
	}
	return summaries, nil
}

// FindByID resolves a chat within the owner's document only. A missing user
// and a missing chat id produce the same domain.ErrChatNotFound, so probing
// with another user's chat id reveals nothing.
func (r *ChatRepository) FindByID(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrChatNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Positional projection returns the first array element matching the
	// filter, which is the earliest entry when duplicates share a chat id.
	var doc struct {
		Chats []chatDoc `bson:"chats"`
	}
	err = r.coll.FindOne(ctx,
		bson.M{"_id": oid, "chats.chat_id": chatID},
		options.FindOne().SetProjection(bson.M{"chats.$": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("find chat: %w", err)
	}
	if len(doc.Chats) == 0 {
		return nil, domain.ErrChatNotFound
	}

	c := doc.Chats[0]
	history := make([]domain.Message, 0, len(c.History))
	for _, m := range c.History {
		history = append(history, domain.Message{Role: m.Role, Content: m.Content})
	}

	return &domain.Chat{
		ChatID:    c.ChatID,
		ChatName:  c.ChatName,
		History:   history,
		CreatedAt: c.CreatedAt,
	}, nil
}

// Append pushes a chat onto the user's array in one atomic update. No lookup
// for an existing chat id is performed; repeated saves of the same id stack
// additional entries.
func (r *ChatRepository) Append(ctx context.Context, userID string, chat *domain.Chat) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	history := make([]messageDoc, 0, len(chat.History))
	for _, m := range chat.History {
		history = append(history, messageDoc{Role: m.Role, Content: m.Content})
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"chats": chatDoc{
			ChatID:    chat.ChatID,
			ChatName:  chat.ChatName,
			History:   history,
			CreatedAt: chat.CreatedAt,
		}}},
	)
	if err != nil {
		return fmt.Errorf("append chat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
