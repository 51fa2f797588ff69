// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample published post for the given
// author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(2, 4, 10, "\n\n"),
		Slug:      fmt.Sprintf("post-%s", gofakeit.UUID()),
		Tags:      "go, web",
		Published: true,
		AuthorID:  author.ID,
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateCategory constructs and persists a sample active category.
func (f *Factory) CreateCategory(overrides ...func(*models.Category)) (*models.Category, error) {
	category := &models.Category{
		Name:        gofakeit.BuzzWord() + " " + gofakeit.NounAbstract(),
		Description: gofakeit.Sentence(8),
		Status:      true,
	}
	for _, override := range overrides {
		override(category)
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreatePostCategory constructs and persists a sample active post category.
func (f *Factory) CreatePostCategory(overrides ...func(*models.PostCategory)) (*models.PostCategory, error) {
	postCategory := &models.PostCategory{
		Name:        gofakeit.BuzzWord() + " " + gofakeit.NounAbstract(),
		Description: gofakeit.Sentence(8),
		Status:      true,
	}
	for _, override := range overrides {
		override(postCategory)
	}
	if err := f.db.Create(postCategory).Error; err != nil {
		return nil, err
	}
	return postCategory, nil
}
