package server

import (
	"pressroom/internal/models"
	"pressroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:postId/comments, the public list of
// approved comments for a post.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListApproved(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /api/posts/:postId/comments. Any authenticated
// identity may comment; the comment starts pending.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	if _, err := s.identity(c); err != nil {
		return nil
	}

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.Context(), service.AddCommentInput{
		PostID: postID,
		Author: req.Author,
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ApproveComment handles POST /api/posts/:postId/comments/:commentId/approve.
// Editors and admins only; the comment is addressed by (post, comment).
func (s *Server) ApproveComment(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.Approve(c.Context(), actor, postID, commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(comment)
}
