package server

import (
	"pressroom/internal/models"
	"pressroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts, the public feed of published posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPublished(c.Context(), service.ListPostsInput{
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost handles GET /api/posts/:postId. Drafts read as 404 for everyone.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPublished(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts. Authors only; the new post is a draft
// owned by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), actor, service.CreatePostInput{
		Title: req.Title,
		Body:  req.Body,
		Image: req.Image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:postId. Owner only, drafts only; absent
// fields are left untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
		Image *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdateDraft(c.Context(), actor, service.UpdateDraftInput{
		PostID: postID,
		Title:  req.Title,
		Body:   req.Body,
		Image:  req.Image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// PublishPost handles POST /api/posts/:postId/publish. Editors and admins only.
func (s *Server) PublishPost(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.Publish(c.Context(), actor, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:postId. Admins only, any status.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.Context(), actor, postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
