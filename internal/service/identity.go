// Package service implements the operations the rendering layer drives: the
// identity store, the post/comment ledger, the DM handshake engine and the
// chat provisioner. Every mutating operation re-loads the documents it
// touches and hands its full effect set to a single atomic store write.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"anonu/internal/alias"
	"anonu/internal/apperrors"
	"anonu/internal/ids"
	"anonu/internal/models"
	"anonu/internal/repository"
	"anonu/internal/security"
)

type IdentityService struct {
	accounts *repository.Accounts
	log      zerolog.Logger
}

func NewIdentityService(accounts *repository.Accounts, log zerolog.Logger) *IdentityService {
	return &IdentityService{accounts: accounts, log: log}
}

// Register creates an account with a write-once alias seed derived from the
// new id and the normalized email.
func (s *IdentityService) Register(ctx context.Context, email, password string, role models.Role) (models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.Account{}, apperrors.InvalidInput("email and password are required")
	}
	if !strings.Contains(email, "@") {
		return models.Account{}, apperrors.InvalidInput("email address is not valid")
	}
	if !role.Valid() {
		return models.Account{}, apperrors.InvalidInput("role must be student or psychologist")
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return models.Account{}, err
	}
	if _, exists := repository.FindByEmail(accounts, email); exists {
		return models.Account{}, apperrors.ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return models.Account{}, apperrors.Wrap(apperrors.CodeInternal, "hash password", err)
	}

	id := ids.New("user")
	account := models.Account{
		ID:           id,
		Email:        email,
		Role:         role,
		AliasSeed:    alias.AccountSeed(id, email),
		PasswordHash: hash,
		PendingDm:    []models.PendingDm{},
		CreatedAt:    time.Now().UTC(),
	}

	accounts[id] = account
	if err := s.accounts.Save(ctx, accounts); err != nil {
		return models.Account{}, err
	}

	s.log.Info().Str("account_id", id).Str("role", string(role)).Msg("account registered")
	return account, nil
}

// Authenticate looks the account up by normalized email and verifies the
// password against the stored hash.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return models.Account{}, err
	}

	account, exists := repository.FindByEmail(accounts, email)
	if !exists {
		return models.Account{}, apperrors.ErrAccountNotFound
	}

	ok, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil || !ok {
		s.log.Warn().Str("account_id", account.ID).Msg("failed login attempt")
		return models.Account{}, apperrors.ErrInvalidCredentials
	}

	return account, nil
}

// GetAccount returns the current snapshot of one account.
func (s *IdentityService) GetAccount(ctx context.Context, accountID string) (models.Account, error) {
	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return models.Account{}, err
	}
	account, exists := accounts[accountID]
	if !exists {
		return models.Account{}, apperrors.ErrAccountNotFound
	}
	return account, nil
}
