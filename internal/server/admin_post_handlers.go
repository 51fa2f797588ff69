// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postBody is the JSON shape shared by create and update requests. Pointer
// fields let PATCH distinguish "absent" from "set to zero value".
type postBody struct {
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	Slug           *string `json:"slug"`
	Tags           *string `json:"tags"`
	Image          *string `json:"image"`
	Published      *bool   `json:"published"`
	CategoryID     *uint   `json:"category_id"`
	PostCategoryID *uint   `json:"post_category_id"`
}

// GetMyPosts handles GET /api/admin/posts: the caller's posts, drafts
// included, newest first.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListOwn(c.Context(), s.authedUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// CreatePost handles POST /api/admin/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		AuthorID:       s.authedUserID(c),
		CategoryID:     req.CategoryID,
		PostCategoryID: req.PostCategoryID,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}
	if req.Image != nil {
		in.Image = *req.Image
	}
	if req.Published != nil {
		in.Published = *req.Published
	}

	post, err := s.postService.Create(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetMyPost handles GET /api/admin/posts/:id. A post belonging to another
// author gets the same 404 as a missing one.
func (s *Server) GetMyPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetOwn(c.Context(), id, s.authedUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PATCH /api/admin/posts/:id with partial update
// semantics: omitted fields keep their values.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdateOwn(c.Context(), service.UpdatePostInput{
		AuthorID:       s.authedUserID(c),
		PostID:         id,
		Title:          req.Title,
		Content:        req.Content,
		Slug:           req.Slug,
		Tags:           req.Tags,
		Image:          req.Image,
		Published:      req.Published,
		CategoryID:     req.CategoryID,
		PostCategoryID: req.PostCategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/admin/posts/:id. The row is removed
// outright; the slug becomes reusable immediately.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeleteOwn(c.Context(), id, s.authedUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
