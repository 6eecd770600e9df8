package service

import (
	"context"
	"time"

	"pressroom/internal/auth"
	"pressroom/internal/models"
	"pressroom/internal/repository"
)

const (
	maxTitleLen = 300
	maxBodyLen  = 50000

	defaultPageSize = 20
	maxPageSize     = 100
)

type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

type CreatePostInput struct {
	Title string
	Body  string
	Image string
}

// UpdateDraftInput applies a partial edit: nil fields are left untouched.
type UpdateDraftInput struct {
	PostID uint
	Title  *string
	Body   *string
	Image  *string
}

type ListPostsInput struct {
	Limit  int
	Offset int
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

// Create opens a new draft owned by the caller. Authors only; the owner is
// the authenticated identity, never a field of the request.
func (s *PostService) Create(ctx context.Context, actor auth.Identity, in CreatePostInput) (*models.Post, error) {
	if err := auth.RequireRole(actor, models.PostCreators); err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(in.Body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:    in.Title,
		Body:     in.Body,
		Image:    in.Image,
		Status:   models.PostStatusDraft,
		AuthorID: actor.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateDraft edits a post the caller owns, while it is still a draft.
// Ownership is checked before lifecycle state: a non-owner is told Forbidden
// even when the post is published.
func (s *PostService) UpdateDraft(ctx context.Context, actor auth.Identity, in UpdateDraftInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := auth.RequireOwner(actor, post); err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusDraft {
		return nil, models.NewInvalidStateError("Published posts cannot be edited")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = *in.Title
	}
	if in.Body != nil {
		if *in.Body == "" {
			return nil, models.NewValidationError("Body cannot be empty")
		}
		if len(*in.Body) > maxBodyLen {
			return nil, models.NewValidationError("Body too long (max 50000 characters)")
		}
		post.Body = *in.Body
	}
	if in.Image != nil {
		post.Image = *in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Publish moves a post to published and stamps publishedAt. Editors and
// admins only; ownership is irrelevant here.
func (s *PostService) Publish(ctx context.Context, actor auth.Identity, postID uint) (*models.Post, error) {
	if err := auth.RequireRole(actor, models.PostPublishers); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Publishing an already-published post refreshes publishedAt.
	now := s.now()
	post.Status = models.PostStatusPublished
	post.PublishedAt = &now

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete hard-deletes a post in any status. Admins only.
func (s *PostService) Delete(ctx context.Context, actor auth.Identity, postID uint) error {
	if err := auth.RequireRole(actor, models.PostDeleters); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// ListPublished returns the public feed, newest publication first.
func (s *PostService) ListPublished(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListPublished(ctx, limit, offset)
}

// GetPublished returns a single published post. Drafts are NotFound here for
// everyone, the owner included.
func (s *PostService) GetPublished(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetPublishedByID(ctx, postID)
}
