// Package app wires configuration, store backend and services into the one
// object the rendering layer talks to.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"anonu/internal/alias"
	"anonu/internal/config"
	"anonu/internal/kv"
	"anonu/internal/models"
	"anonu/internal/repository"
	"anonu/internal/security"
	"anonu/internal/service"
)

type App struct {
	Identity  *service.IdentityService
	Ledger    *service.LedgerService
	Handshake *service.HandshakeService
	Chat      *service.ChatService

	cfg   *config.AppConfig
	log   zerolog.Logger
	store kv.Store
}

// Session is what the rendering layer holds after a successful login.
type Session struct {
	Token     string
	Account   models.Account
	Alias     string
	ExpiresAt time.Time
}

// New assembles the application over an already-open store.
func New(cfg *config.AppConfig, logger zerolog.Logger, store kv.Store) *App {
	accounts := repository.NewAccounts(store, cfg.Storage.UsersKey)
	posts := repository.NewPosts(store, cfg.Storage.PostsKey)
	chats := repository.NewChats(store, cfg.Storage.ChatsKey)

	chat := service.NewChatService(chats, logger)

	return &App{
		Identity:  service.NewIdentityService(accounts, logger),
		Ledger:    service.NewLedgerService(accounts, posts, logger),
		Handshake: service.NewHandshakeService(store, accounts, posts, chats, chat, logger),
		Chat:      chat,
		cfg:       cfg,
		log:       logger,
		store:     store,
	}
}

// Open connects the configured store backend and assembles the application.
func Open(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (*App, error) {
	var store kv.Store
	switch cfg.Storage.Backend {
	case "redis":
		s, err := kv.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store = s
	case "postgres":
		s, err := kv.NewPostgresStore(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	logger.Info().Str("backend", cfg.Storage.Backend).Msg("store connected")
	return New(cfg, logger, store), nil
}

// Login authenticates and issues the session the rendering layer keeps as
// its current user. The token carries the resolved alias, never the seed.
func (a *App) Login(ctx context.Context, email, password string) (Session, error) {
	account, err := a.Identity.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	displayName := alias.Resolve(account.AliasSeed)
	expiresAt := time.Now().Add(a.cfg.Security.SessionTTL)

	token, err := security.GenerateSessionToken(
		a.cfg.Security.SessionSecret,
		account.ID,
		string(account.Role),
		displayName,
		a.cfg.Security.SessionTTL,
	)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		Account:   account,
		Alias:     displayName,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *App) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

func (a *App) Close() error {
	return a.store.Close()
}
