// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"strings"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedPosts handles GET /api/posts. Only published posts are visible;
// an optional ?tag= query filters by substring match against the raw tags
// field.
func (s *Server) GetPublishedPosts(c *fiber.Ctx) error {
	tag := strings.TrimSpace(c.Query("tag"))

	posts, err := s.postService.ListPublicFeed(c.Context(), tag)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// GetTags handles GET /api/posts/tags: the sorted, deduplicated set of tags
// across published posts.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.postService.TagUniverse(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"tags": tags,
	})
}

// GetPublishedPostBySlug handles GET /api/posts/:slug. Drafts are
// indistinguishable from missing posts.
func (s *Server) GetPublishedPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Slug is required"))
	}

	post, err := s.postService.GetPublishedBySlug(c.Context(), slug)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
