package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "anonu_users_v1", cfg.Storage.UsersKey)
	assert.Equal(t, "anonu_posts_v1", cfg.Storage.PostsKey)
	assert.Equal(t, "anonu_chats_v1", cfg.Storage.ChatsKey)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 12*time.Hour, cfg.Security.SessionTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ANONU_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
}
