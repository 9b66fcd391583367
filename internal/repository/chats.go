package repository

import (
	"context"

	"anonu/internal/kv"
	"anonu/internal/models"
)

// Chats holds provisioned chats in creation order.
type Chats struct {
	store kv.Store
	key   string
}

func NewChats(store kv.Store, key string) *Chats {
	return &Chats{store: store, key: key}
}

func (r *Chats) Load(ctx context.Context) ([]models.Chat, error) {
	chats := []models.Chat{}
	if _, err := r.store.Get(ctx, r.key, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *Chats) Entry(chats []models.Chat) kv.Entry {
	return kv.Entry{Key: r.key, Value: chats}
}

func (r *Chats) Save(ctx context.Context, chats []models.Chat) error {
	return r.store.Write(ctx, r.Entry(chats))
}

// ChatIndexByID returns the position of the chat in the snapshot, or -1.
func ChatIndexByID(chats []models.Chat, chatID string) int {
	for i := range chats {
		if chats[i].ID == chatID {
			return i
		}
	}
	return -1
}
