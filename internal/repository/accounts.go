// Package repository gives each entity collection a thin snapshot interface
// over the key-value store. Nothing here caches: every Load hits the store,
// so an operation always works on the latest persisted state even when
// another instance shares the same backend.
package repository

import (
	"context"
	"strings"

	"anonu/internal/kv"
	"anonu/internal/models"
)

// Accounts holds the registered accounts as a map keyed by account id.
type Accounts struct {
	store kv.Store
	key   string
}

func NewAccounts(store kv.Store, key string) *Accounts {
	return &Accounts{store: store, key: key}
}

// Load fetches a fresh snapshot. An absent document reads as no accounts.
func (r *Accounts) Load(ctx context.Context) (map[string]models.Account, error) {
	accounts := map[string]models.Account{}
	if _, err := r.store.Get(ctx, r.key, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Entry wraps a snapshot for inclusion in an atomic multi-document write.
func (r *Accounts) Entry(accounts map[string]models.Account) kv.Entry {
	return kv.Entry{Key: r.key, Value: accounts}
}

func (r *Accounts) Save(ctx context.Context, accounts map[string]models.Account) error {
	return r.store.Write(ctx, r.Entry(accounts))
}

// FindByEmail matches on the normalized (lowercased) email.
func FindByEmail(accounts map[string]models.Account, email string) (models.Account, bool) {
	email = strings.ToLower(email)
	for _, a := range accounts {
		if a.Email == email {
			return a, true
		}
	}
	return models.Account{}, false
}
