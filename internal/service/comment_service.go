package service

import (
	"context"

	"pressroom/internal/auth"
	"pressroom/internal/models"
	"pressroom/internal/repository"
)

const maxCommentLen = 5000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	PostID uint
	Author string
	Text   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Add records a comment against an existing post. Any authenticated identity
// may comment; the comment always starts pending.
func (s *CommentService) Add(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Author == "" {
		return nil, models.NewValidationError("Author is required")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Text too long (max 5000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		Author: in.Author,
		Text:   in.Text,
		Status: models.CommentStatusPending,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListApproved returns the public comments for a post, newest first. Pending
// comments are invisible here.
func (s *CommentService) ListApproved(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListApprovedByPost(ctx, postID)
}

// Approve moves a pending comment to approved. Editors and admins only. The
// comment is addressed by (post, comment); a comment under a different post
// is NotFound, not Forbidden.
func (s *CommentService) Approve(ctx context.Context, actor auth.Identity, postID, commentID uint) (*models.Comment, error) {
	if err := auth.RequireRole(actor, models.CommentModerators); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByPostAndID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Status = models.CommentStatusApproved
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
