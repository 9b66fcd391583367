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
)

type LedgerService struct {
	accounts *repository.Accounts
	posts    *repository.Posts
	log      zerolog.Logger
}

func NewLedgerService(accounts *repository.Accounts, posts *repository.Posts, log zerolog.Logger) *LedgerService {
	return &LedgerService{accounts: accounts, posts: posts, log: log}
}

// CreatePost publishes a post under a fresh alias seed derived from the
// author's seed plus random entropy, and inserts it at the head of the feed.
func (s *LedgerService) CreatePost(ctx context.Context, authorID, text string) (models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Post{}, apperrors.ErrEmptyText
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return models.Post{}, err
	}
	author, exists := accounts[authorID]
	if !exists {
		return models.Post{}, apperrors.ErrAccountNotFound
	}

	posts, err := s.posts.Load(ctx)
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		ID:         ids.New("post"),
		AuthorID:   author.ID,
		AliasSeed:  alias.ChildSeed("post", author.AliasSeed),
		Text:       text,
		CreatedAt:  time.Now().UTC(),
		Comments:   []models.Comment{},
		DmRequests: []models.DmRequest{},
	}

	posts = append([]models.Post{post}, posts...)
	if err := s.posts.Save(ctx, posts); err != nil {
		return models.Post{}, err
	}

	s.log.Debug().Str("post_id", post.ID).Msg("post published")
	return post, nil
}

// Like bumps the like counter. Open to anyone, logged in or not.
func (s *LedgerService) Like(ctx context.Context, postID string) (int, error) {
	return s.bump(ctx, postID, func(p *models.Post) *int { return &p.Likes })
}

// Report bumps the report counter. It has no further effect; moderation is
// out of scope.
func (s *LedgerService) Report(ctx context.Context, postID string) (int, error) {
	return s.bump(ctx, postID, func(p *models.Post) *int { return &p.Reports })
}

func (s *LedgerService) bump(ctx context.Context, postID string, counter func(*models.Post) *int) (int, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return 0, err
	}
	i := repository.IndexByID(posts, postID)
	if i < 0 {
		return 0, apperrors.ErrPostNotFound
	}

	c := counter(&posts[i])
	*c++
	if err := s.posts.Save(ctx, posts); err != nil {
		return 0, err
	}
	return *c, nil
}

// AddComment appends a comment under its own fresh alias seed, following the
// same unlinkability rule as posts.
func (s *LedgerService) AddComment(ctx context.Context, postID, authorID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, apperrors.ErrEmptyText
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return models.Comment{}, err
	}
	author, exists := accounts[authorID]
	if !exists {
		return models.Comment{}, apperrors.ErrAccountNotFound
	}

	posts, err := s.posts.Load(ctx)
	if err != nil {
		return models.Comment{}, err
	}
	i := repository.IndexByID(posts, postID)
	if i < 0 {
		return models.Comment{}, apperrors.ErrPostNotFound
	}

	comment := models.Comment{
		ID:        ids.New("c"),
		AuthorID:  author.ID,
		AliasSeed: alias.ChildSeed("comment", author.AliasSeed),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	posts[i].Comments = append(posts[i].Comments, comment)
	if err := s.posts.Save(ctx, posts); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// ListPosts returns the feed in stored order, newest first.
func (s *LedgerService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.Load(ctx)
}

func (s *LedgerService) GetPost(ctx context.Context, postID string) (models.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return models.Post{}, err
	}
	i := repository.IndexByID(posts, postID)
	if i < 0 {
		return models.Post{}, apperrors.ErrPostNotFound
	}
	return posts[i], nil
}
