package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
	"github.com/divyandj/pdfchat-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubChatRepo struct {
	chats map[string][]domain.Chat // keyed by user id
}

func newStubChatRepo(userIDs ...string) *stubChatRepo {
	r := &stubChatRepo{chats: make(map[string][]domain.Chat)}
	for _, id := range userIDs {
		r.chats[id] = []domain.Chat{}
	}
	return r
}

func (r *stubChatRepo) ListByUser(_ context.Context, userID string) ([]domain.ChatSummary, error) {
	chats, ok := r.chats[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	summaries := make([]domain.ChatSummary, 0, len(chats))
	for _, c := range chats {
		summaries = append(summaries, domain.ChatSummary{ChatID: c.ChatID, ChatName: c.ChatName, CreatedAt: c.CreatedAt})
	}
	return summaries, nil
}

func (r *stubChatRepo) FindByID(_ context.Context, userID, chatID string) (*domain.Chat, error) {
	chats, ok := r.chats[userID]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	for _, c := range chats {
		if c.ChatID == chatID {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrChatNotFound
}

func (r *stubChatRepo) Append(_ context.Context, userID string, chat *domain.Chat) error {
	if _, ok := r.chats[userID]; !ok {
		return domain.ErrUserNotFound
	}
	r.chats[userID] = append(r.chats[userID], *chat)
	return nil
}

type stubCache struct {
	entries     map[string][]domain.ChatSummary
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]domain.ChatSummary)}
}

func (c *stubCache) Get(_ context.Context, userID string) ([]domain.ChatSummary, bool, error) {
	s, ok := c.entries[userID]
	return s, ok, nil
}

func (c *stubCache) Set(_ context.Context, userID string, summaries []domain.ChatSummary) error {
	c.entries[userID] = summaries
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func msg(role, content string) domain.Message {
	return domain.Message{Role: role, Content: content}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestChatService_ListChats_FreshUserIsEmptyNotError(t *testing.T) {
	svc := NewChatService(newStubChatRepo("u1"), nil, zerolog.Nop())

	summaries, err := svc.ListChats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(summaries))
	}
}

func TestChatService_ListChats_UnknownUser(t *testing.T) {
	svc := NewChatService(newStubChatRepo("u1"), nil, zerolog.Nop())

	if _, err := svc.ListChats(context.Background(), "nobody"); !errorsIsUserNotFound(err) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChatService_SaveThenGet_PreservesHistoryOrder(t *testing.T) {
	repo := newStubChatRepo("u1")
	svc := NewChatService(repo, nil, zerolog.Nop())

	history := []domain.Message{
		msg(domain.RoleUser, "what is on page 3?"),
		msg(domain.RoleAssistant, "a summary table"),
	}
	chatID, err := svc.SaveChat(context.Background(), ports.SaveChatInput{
		UserID: "u1", ChatID: "c1", ChatName: "Name", History: history,
	})
	if err != nil {
		t.Fatalf("SaveChat returned error: %v", err)
	}
	if chatID != "c1" {
		t.Fatalf("expected chat id c1, got %q", chatID)
	}

	chat, err := svc.GetChat(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("GetChat returned error: %v", err)
	}
	if chat.ChatName != "Name" {
		t.Fatalf("unexpected chat name: %q", chat.ChatName)
	}
	if chat.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be assigned")
	}
	if len(chat.History) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(chat.History))
	}
	for i := range history {
		if chat.History[i] != history[i] {
			t.Fatalf("message %d out of order: got %+v want %+v", i, chat.History[i], history[i])
		}
	}
}

func TestChatService_SaveChat_BlankIDGetsAssigned(t *testing.T) {
	repo := newStubChatRepo("u1")
	svc := NewChatService(repo, nil, zerolog.Nop())

	chatID, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatName: "n"})
	if err != nil {
		t.Fatalf("SaveChat returned error: %v", err)
	}
	if chatID == "" {
		t.Fatalf("expected a generated chat id")
	}
	if _, err := svc.GetChat(context.Background(), "u1", chatID); err != nil {
		t.Fatalf("generated chat id not retrievable: %v", err)
	}
}

func TestChatService_SaveChat_UnknownUser(t *testing.T) {
	svc := NewChatService(newStubChatRepo("u1"), nil, zerolog.Nop())

	_, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "nobody", ChatID: "c1"})
	if !errorsIsUserNotFound(err) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// Repeated saves with the same chat id append a second snapshot rather than
// overwriting. If save ever becomes an upsert this test must change with it.
func TestChatService_SaveChat_DuplicateIDAppends(t *testing.T) {
	repo := newStubChatRepo("u1")
	svc := NewChatService(repo, nil, zerolog.Nop())

	first := []domain.Message{msg(domain.RoleUser, "v1")}
	second := []domain.Message{msg(domain.RoleUser, "v1"), msg(domain.RoleAssistant, "v2")}

	if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatID: "c1", ChatName: "a", History: first}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatID: "c1", ChatName: "b", History: second}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	summaries, err := svc.ListChats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 entries sharing the chat id, got %d", len(summaries))
	}
	if summaries[0].ChatID != "c1" || summaries[1].ChatID != "c1" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	// The earliest snapshot wins on read.
	chat, err := svc.GetChat(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("GetChat returned error: %v", err)
	}
	if len(chat.History) != 1 {
		t.Fatalf("expected the first snapshot's history, got %d messages", len(chat.History))
	}
}

func TestChatService_GetChat_CrossUserIsNotFound(t *testing.T) {
	repo := newStubChatRepo("owner", "intruder")
	svc := NewChatService(repo, nil, zerolog.Nop())

	if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "owner", ChatID: "private"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err := svc.GetChat(context.Background(), "intruder", "private")
	if !errorsIsChatNotFound(err) {
		t.Fatalf("expected ErrChatNotFound for cross-user access, got %v", err)
	}
}

func TestChatService_ListChats_CacheHitSkipsRepo(t *testing.T) {
	cache := newStubCache()
	cached := []domain.ChatSummary{{ChatID: "c1", ChatName: "cached"}}
	cache.entries["u1"] = cached

	// Repo without u1: a cache hit must not touch it.
	svc := NewChatService(newStubChatRepo(), cache, zerolog.Nop())

	summaries, err := svc.ListChats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ChatName != "cached" {
		t.Fatalf("expected cached summaries, got %+v", summaries)
	}
}

func TestChatService_ListChats_CacheMissFillsCache(t *testing.T) {
	cache := newStubCache()
	repo := newStubChatRepo("u1")
	svc := NewChatService(repo, cache, zerolog.Nop())

	if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatID: "c1", ChatName: "n"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := svc.ListChats(context.Background(), "u1"); err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if _, ok := cache.entries["u1"]; !ok {
		t.Fatalf("expected cache to be populated after miss")
	}
}

func TestChatService_SaveChat_InvalidatesCache(t *testing.T) {
	cache := newStubCache()
	cache.entries["u1"] = []domain.ChatSummary{{ChatID: "stale"}}
	svc := NewChatService(newStubChatRepo("u1"), cache, zerolog.Nop())

	if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatID: "c2"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("expected cache invalidation for u1, got %v", cache.invalidated)
	}
}

// hookedChatRepo runs a callback once, after the repository read but before
// the summaries are handed back, standing in for work that interleaves with
// a list in flight.
type hookedChatRepo struct {
	*stubChatRepo
	afterList func()
}

func (r *hookedChatRepo) ListByUser(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	summaries, err := r.stubChatRepo.ListByUser(ctx, userID)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return summaries, err
}

// A save that lands between a list's repository read and its cache fill has
// its invalidation overwritten by the pre-save snapshot. The cached list
// then stays stale until the key expires; freshness is TTL-bounded, not
// read-your-writes.
func TestChatService_ListChats_SaveDuringListStaleUntilExpiry(t *testing.T) {
	cache := newStubCache()
	repo := &hookedChatRepo{stubChatRepo: newStubChatRepo("u1")}
	svc := NewChatService(repo, cache, zerolog.Nop())

	if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatID: "c1", ChatName: "first"}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	repo.afterList = func() {
		if _, err := svc.SaveChat(context.Background(), ports.SaveChatInput{UserID: "u1", ChatID: "c2", ChatName: "second"}); err != nil {
			t.Fatalf("interleaved save failed: %v", err)
		}
	}

	summaries, err := svc.ListChats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected the pre-save snapshot, got %d entries", len(summaries))
	}

	// The pre-save snapshot was written back after the invalidation, so
	// further lists keep serving it.
	summaries, err = svc.ListChats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected the stale cached list, got %d entries", len(summaries))
	}

	// Key expiry is the recovery path: the next list reads through and sees
	// both chats.
	delete(cache.entries, "u1")
	summaries, err = svc.ListChats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListChats returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected both chats after expiry, got %d entries", len(summaries))
	}
}

func errorsIsUserNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound)
}

func errorsIsChatNotFound(err error) bool {
	return errors.Is(err, domain.ErrChatNotFound)
}
