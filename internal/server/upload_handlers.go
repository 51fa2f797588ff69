// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"io"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/upload. The multipart field is named "file".
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	result, err := s.uploadService.Upload(service.UploadInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// ServeUpload handles GET /api/uploads/:filename. Resolution rejects
// traversal attempts before looking at the filesystem.
func (s *Server) ServeUpload(c *fiber.Ctx) error {
	path, err := s.uploadService.ResolveForServing(c.Params("filename"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.SendFile(path)
}
