package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"pressroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndGetByPostAndID(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com", models.RoleAuthor)
	now := time.Now()
	post := seedPost(t, db, author.ID, models.PostStatusPublished, &now)

	comment := &models.Comment{PostID: post.ID, Author: "reader-1", Text: "nice", Status: models.CommentStatusPending}
	require.NoError(t, repo.Create(ctx, comment))

	got, err := repo.GetByPostAndID(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPending, got.Status)
	assert.Equal(t, "nice", got.Text)
}

func TestCommentRepository_CompositeLookupMismatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com", models.RoleAuthor)
	now := time.Now()
	postA := seedPost(t, db, author.ID, models.PostStatusPublished, &now)
	postB := seedPost(t, db, author.ID, models.PostStatusPublished, &now)

	comment := &models.Comment{PostID: postA.ID, Author: "reader-1", Text: "hi", Status: models.CommentStatusPending}
	require.NoError(t, repo.Create(ctx, comment))

	// The comment exists, but not under postB.
	_, err := repo.GetByPostAndID(ctx, postB.ID, comment.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_ListApprovedByPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com", models.RoleAuthor)
	now := time.Now()
	post := seedPost(t, db, author.ID, models.PostStatusPublished, &now)

	older := &models.Comment{PostID: post.ID, Author: "a", Text: "first", Status: models.CommentStatusApproved,
		CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := &models.Comment{PostID: post.ID, Author: "b", Text: "second", Status: models.CommentStatusApproved,
		CreatedAt: time.Now().Add(-1 * time.Hour)}
	pending := &models.Comment{PostID: post.ID, Author: "c", Text: "hidden", Status: models.CommentStatusPending}
	for _, c := range []*models.Comment{older, newer, pending} {
		require.NoError(t, repo.Create(ctx, c))
	}

	comments, err := repo.ListApprovedByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}

func TestCommentRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com", models.RoleAuthor)
	now := time.Now()
	post := seedPost(t, db, author.ID, models.PostStatusPublished, &now)

	comment := &models.Comment{PostID: post.ID, Author: "r", Text: "pending", Status: models.CommentStatusPending}
	require.NoError(t, repo.Create(ctx, comment))

	comment.Status = models.CommentStatusApproved
	require.NoError(t, repo.Update(ctx, comment))

	got, err := repo.GetByPostAndID(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusApproved, got.Status)
}
