package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonu/internal/alias"
	"anonu/internal/apperrors"
	"anonu/internal/models"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "a@x.com", models.RoleStudent)

	post, err := env.ledger.CreatePost(ctx, author.ID, "  hello  ")
	require.NoError(t, err)

	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.NotEqual(t, author.AliasSeed, post.AliasSeed, "post seed must not be the account seed")
	assert.Empty(t, post.Comments)
	assert.Empty(t, post.DmRequests)
}

func TestCreatePostErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "a@x.com", models.RoleStudent)

	_, err := env.ledger.CreatePost(ctx, author.ID, "   ")
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	_, err = env.ledger.CreatePost(ctx, "user_missing", "hello")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestPostsUnlinkable(t *testing.T) {
	env := newTestEnv(t)

	author := env.register(t, "a@x.com", models.RoleStudent)
	first := env.post(t, author.ID, "first")
	second := env.post(t, author.ID, "second")

	assert.NotEqual(t, first.AliasSeed, second.AliasSeed,
		"two posts from one author must not share an alias seed")

	// Resolving the account seed stays stable while posts carry their own.
	assert.Equal(t, alias.Resolve(author.AliasSeed), alias.Resolve(author.AliasSeed))
}

func TestListPostsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "a@x.com", models.RoleStudent)
	first := env.post(t, author.ID, "first")
	second := env.post(t, author.ID, "second")

	posts, err := env.ledger.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestLikeAndReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "a@x.com", models.RoleStudent)
	post := env.post(t, author.ID, "hello")

	likes, err := env.ledger.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = env.ledger.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	reports, err := env.ledger.Report(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reports)

	stored, err := env.ledger.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Likes)
	assert.Equal(t, 1, stored.Reports)

	_, err = env.ledger.Like(ctx, "post_missing")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "a@x.com", models.RoleStudent)
	other := env.register(t, "b@x.com", models.RoleStudent)
	post := env.post(t, author.ID, "hello")

	comment, err := env.ledger.AddComment(ctx, post.ID, other.ID, "me too")
	require.NoError(t, err)
	assert.Equal(t, other.ID, comment.AuthorID)
	assert.NotEqual(t, other.AliasSeed, comment.AliasSeed)
	assert.NotEqual(t, post.AliasSeed, comment.AliasSeed)

	stored, err := env.ledger.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 1)
	assert.Equal(t, "me too", stored.Comments[0].Text)

	_, err = env.ledger.AddComment(ctx, post.ID, other.ID, "  ")
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	_, err = env.ledger.AddComment(ctx, post.ID, "user_missing", "hi")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	_, err = env.ledger.AddComment(ctx, "post_missing", other.ID, "hi")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
