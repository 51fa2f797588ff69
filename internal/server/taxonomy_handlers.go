// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// taxonomyBody is the JSON shape shared by category and post-category
// create/update requests.
type taxonomyBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      *bool  `json:"status"`
}

// taxonomyFilterFromQuery reads the admin list query parameters:
// ?q= substring on name/description, ?status=true|false, ?sort=name.
func taxonomyFilterFromQuery(c *fiber.Ctx) repository.TaxonomyFilter {
	filter := repository.TaxonomyFilter{
		Query:  c.Query("q"),
		SortBy: c.Query("sort"),
	}
	switch c.Query("status") {
	case "true":
		t := true
		filter.Status = &t
	case "false":
		f := false
		filter.Status = &f
	}
	return filter
}

// GetActiveCategories handles GET /api/categories: active entries only.
func (s *Server) GetActiveCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListActiveCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetActivePostCategories handles GET /api/post-categories: active entries
// with their published-post counts.
func (s *Server) GetActivePostCategories(c *fiber.Ctx) error {
	postCategories, err := s.taxonomyService.ListActivePostCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post_categories": postCategories,
		"count":           len(postCategories),
	})
}

// GetPostCategoryDetail handles GET /api/post-categories/:id: an active
// post-category plus its published posts. Inactive entries 404.
func (s *Server) GetPostCategoryDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.taxonomyService.GetPostCategoryDetail(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(detail)
}

// GetCategories handles GET /api/admin/categories with optional filters.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListCategories(c.Context(), taxonomyFilterFromQuery(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory handles POST /api/admin/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req taxonomyBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.taxonomyService.CreateCategory(c.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategory handles GET /api/admin/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.taxonomyService.GetCategory(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(category)
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req taxonomyBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.taxonomyService.UpdateCategory(c.Context(), id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteCategory(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// GetPostCategories handles GET /api/admin/post-categories with optional
// filters.
func (s *Server) GetPostCategories(c *fiber.Ctx) error {
	postCategories, err := s.taxonomyService.ListPostCategories(c.Context(), taxonomyFilterFromQuery(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post_categories": postCategories,
		"count":           len(postCategories),
	})
}

// CreatePostCategory handles POST /api/admin/post-categories
func (s *Server) CreatePostCategory(c *fiber.Ctx) error {
	var req taxonomyBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	postCategory, err := s.taxonomyService.CreatePostCategory(c.Context(), service.PostCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(postCategory)
}

// GetPostCategory handles GET /api/admin/post-categories/:id
func (s *Server) GetPostCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	postCategory, err := s.taxonomyService.GetPostCategory(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(postCategory)
}

// UpdatePostCategory handles PUT /api/admin/post-categories/:id
func (s *Server) UpdatePostCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req taxonomyBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	postCategory, err := s.taxonomyService.UpdatePostCategory(c.Context(), id, service.PostCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(postCategory)
}

// DeletePostCategory handles DELETE /api/admin/post-categories/:id. Posts
// referencing the deleted entry keep their dangling id until edited.
func (s *Server) DeletePostCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeletePostCategory(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post category deleted"})
}
