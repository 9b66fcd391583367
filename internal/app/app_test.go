package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonu/internal/apperrors"
	"anonu/internal/config"
	"anonu/internal/kv"
	"anonu/internal/models"
	"anonu/internal/security"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := kv.NewRedisStoreWithClient(client)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.AppConfig{
		Environment: "test",
		Storage: config.StorageConfig{
			Backend:  "redis",
			UsersKey: "anonu_users_v1",
			PostsKey: "anonu_posts_v1",
			ChatsKey: "anonu_chats_v1",
		},
		Security: config.SecurityConfig{
			SessionSecret: "test-secret",
			SessionTTL:    time.Hour,
		},
	}

	return New(cfg, zerolog.Nop(), store)
}

func TestLoginIssuesSession(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	registered, err := a.Identity.Register(ctx, "a@x.com", "pw1", models.RoleStudent)
	require.NoError(t, err)

	session, err := a.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, session.Account.ID)
	assert.Regexp(t, `^Anonymous #\d{3}$`, session.Alias)

	claims, err := security.ParseSessionToken(session.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.AccountID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, session.Alias, claims.Alias)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.Identity.Register(ctx, "a@x.com", "pw1", models.RoleStudent)
	require.NoError(t, err)

	_, err = a.Login(ctx, "a@x.com", "nope")
	assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))

	_, err = a.Login(ctx, "nobody@x.com", "pw1")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestAppEndToEnd(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	student, err := a.Identity.Register(ctx, "a@x.com", "pw1", models.RoleStudent)
	require.NoError(t, err)
	psych, err := a.Identity.Register(ctx, "b@x.com", "pw2", models.RolePsychologist)
	require.NoError(t, err)

	post, err := a.Ledger.CreatePost(ctx, student.ID, "hello")
	require.NoError(t, err)

	request, err := a.Handshake.OfferHelp(ctx, post.ID, psych.ID)
	require.NoError(t, err)

	chatID, err := a.Handshake.ResolveOffer(ctx, post.ID, request.ID, "accept", student.ID)
	require.NoError(t, err)

	message, err := a.Chat.PostMessage(ctx, chatID, psych.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, models.RolePsychologist, message.Sender)
}
