package service

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/google/uuid"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultUploadDir   = "/tmp/inkwell/uploads"
	DefaultMaxUploadMB = 5
)

// extByMIME maps the sniffed content type to the stored extension. The map
// doubles as the upload allow-list.
var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadInput is one multipart file as received by the handler.
type UploadInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UploadResult is what the API returns after a successful upload.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// UploadService validates and stores uploaded images. Validation happens
// before any filesystem write so a rejected upload leaves no file behind.
type UploadService struct {
	uploadDir     string
	maxBytes      int64
	publicBaseURL string
}

// NewUploadService creates an UploadService from configuration.
func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := DefaultUploadDir
	maxUploadMB := DefaultMaxUploadMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadMB > 0 {
			maxUploadMB = cfg.MaxUploadMB
		}
	}

	baseURL := ""
	if cfg != nil {
		baseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")
	}

	return &UploadService{
		uploadDir:     uploadDir,
		maxBytes:      int64(maxUploadMB) * 1024 * 1024,
		publicBaseURL: baseURL,
	}
}

// Upload validates the file and persists it under a random uuid-based name
// preserving the (detected) extension.
func (s *UploadService) Upload(in UploadInput) (*UploadResult, error) {
	if len(in.Content) == 0 {
		middleware.UploadRejections.WithLabelValues("empty").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxBytes {
		middleware.UploadRejections.WithLabelValues("size").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	detectedType := normalizeContentType(http.DetectContentType(in.Content))
	ext, allowed := extByMIME[detectedType]
	if !allowed {
		middleware.UploadRejections.WithLabelValues("type").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		middleware.UploadRejections.WithLabelValues("decode").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.uploadDir, filename)

	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(path, in.Content, 0o600); err != nil {
		return nil, models.NewInternalError(err)
	}

	return &UploadResult{
		URL:      s.publicBaseURL + "/api/uploads/" + filename,
		Filename: filename,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// ResolveForServing maps a requested filename to its on-disk path. Filenames
// carrying path separators or ".." are rejected before touching the
// filesystem.
func (s *UploadService) ResolveForServing(filename string) (string, error) {
	if filename == "" ||
		strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) {
		return "", models.NewValidationError("Invalid filename")
	}

	path := filepath.Join(s.uploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Upload", filename)
		}
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// normalizeContentType strips parameters like "; charset=".
func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
