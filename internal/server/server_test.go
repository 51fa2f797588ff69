package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.PostCategory{},
		&models.Post{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against an in-memory sqlite DB and no Redis,
// and mounts the full route table on a bare fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:   "test-secret-test-secret-test-secret",
		Env:         "test",
		UploadDir:   t.TempDir(),
		MaxUploadMB: 1,
	}

	srv, err := NewServerWithDeps(cfg, setupTestDB(t), nil)
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

// createTestUser persists a user with the password "password123" and returns
// it together with a valid bearer token.
func createTestUser(t *testing.T, srv *Server, email string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &models.User{Name: "Test Author", Email: email, Password: string(hashed)}
	if err := srv.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := srv.generateToken(user.ID, user.Name)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	return user, token
}

// doJSON runs a request against the app with an optional bearer token and
// JSON body, and decodes the JSON response into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func seedPost(t *testing.T, srv *Server, authorID uint, slug string, published bool, tags string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     "Post " + slug,
		Content:   "content for " + slug,
		Slug:      slug,
		Tags:      tags,
		Published: published,
		AuthorID:  authorID,
	}
	if err := srv.db.Create(post).Error; err != nil {
		t.Fatalf("seed post %s: %v", slug, err)
	}
	return post
}

func seedCategory(t *testing.T, srv *Server, name string, status bool) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Description: name + " description", Status: status}
	if err := srv.db.Create(category).Error; err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return category
}

func seedPostCategory(t *testing.T, srv *Server, name string, status bool) *models.PostCategory {
	t.Helper()
	postCategory := &models.PostCategory{Name: name, Description: name + " description", Status: status}
	if err := srv.db.Create(postCategory).Error; err != nil {
		t.Fatalf("seed post category %s: %v", name, err)
	}
	return postCategory
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func postSlugs(t *testing.T, payload map[string]any) []string {
	t.Helper()
	rawPosts, ok := payload["posts"].([]any)
	if !ok {
		t.Fatalf("expected posts array in %v", payload)
	}
	slugs := make([]string, 0, len(rawPosts))
	for _, rp := range rawPosts {
		post, ok := rp.(map[string]any)
		if !ok {
			t.Fatalf("unexpected post shape %v", rp)
		}
		slugs = append(slugs, fmt.Sprintf("%v", post["slug"]))
	}
	return slugs
}
