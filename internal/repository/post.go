package repository

import (
	"context"
	"errors"

	"pressroom/internal/cache"
	"pressroom/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetPublishedByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID fetches a post in any status. Used by gated operations that run
// their own ownership and lifecycle checks on the result.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetPublishedByID fetches a post only if it is published. Drafts are
// indistinguishable from absent posts here.
func (r *postRepository) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PublishedPostKey(id), &post, cache.PostTTL, func() error {
		err := r.db.WithContext(ctx).
			Where("status = ?", models.PostStatusPublished).
			First(&post, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// feedCacheLimit matches the public feed's default page size. Only that exact
// first page is cached under the shared list key.
const feedCacheLimit = 20

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post

	// The limit is client-controlled; caching any other page size under the
	// shared key would replay a wrongly-sized page to later callers.
	if offset == 0 && limit == feedCacheLimit {
		err := cache.Aside(ctx, cache.PublishedListKey(), &posts, cache.ListTTL, func() error {
			return r.queryPublished(ctx, &posts, limit, offset)
		})
		return posts, err
	}

	if err := r.queryPublished(ctx, &posts, limit, offset); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) queryPublished(ctx context.Context, dest *[]*models.Post, limit, offset int) error {
	err := r.db.WithContext(ctx).
		Where("status = ?", models.PostStatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(dest).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
