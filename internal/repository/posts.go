package repository

import (
	"context"

	"anonu/internal/kv"
	"anonu/internal/models"
)

// Posts holds the feed as an ordered list, newest first.
type Posts struct {
	store kv.Store
	key   string
}

func NewPosts(store kv.Store, key string) *Posts {
	return &Posts{store: store, key: key}
}

func (r *Posts) Load(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if _, err := r.store.Get(ctx, r.key, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *Posts) Entry(posts []models.Post) kv.Entry {
	return kv.Entry{Key: r.key, Value: posts}
}

func (r *Posts) Save(ctx context.Context, posts []models.Post) error {
	return r.store.Write(ctx, r.Entry(posts))
}

// IndexByID returns the position of the post in the snapshot, or -1.
func IndexByID(posts []models.Post, postID string) int {
	for i := range posts {
		if posts[i].ID == postID {
			return i
		}
	}
	return -1
}
