package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"anonu/internal/kv"
	"anonu/internal/models"
	"anonu/internal/repository"
)

type testEnv struct {
	identity  *IdentityService
	ledger    *LedgerService
	handshake *HandshakeService
	chat      *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := kv.NewRedisStoreWithClient(client)
	t.Cleanup(func() { _ = store.Close() })

	logger := zerolog.Nop()
	accounts := repository.NewAccounts(store, "anonu_users_v1")
	posts := repository.NewPosts(store, "anonu_posts_v1")
	chats := repository.NewChats(store, "anonu_chats_v1")

	chat := NewChatService(chats, logger)

	return &testEnv{
		identity:  NewIdentityService(accounts, logger),
		ledger:    NewLedgerService(accounts, posts, logger),
		handshake: NewHandshakeService(store, accounts, posts, chats, chat, logger),
		chat:      chat,
	}
}

func (e *testEnv) register(t *testing.T, email string, role models.Role) models.Account {
	t.Helper()
	account, err := e.identity.Register(context.Background(), email, "pw1", role)
	require.NoError(t, err)
	return account
}

func (e *testEnv) post(t *testing.T, authorID, text string) models.Post {
	t.Helper()
	post, err := e.ledger.CreatePost(context.Background(), authorID, text)
	require.NoError(t, err)
	return post
}
